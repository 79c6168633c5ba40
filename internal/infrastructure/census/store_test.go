package census

import (
	"bytes"
	"context"
	"testing"

	"github.com/kirillkom/scheme-advisor/internal/core/domain"
	"github.com/kirillkom/scheme-advisor/internal/infrastructure/storage/localfs"
)

type reloadObserverFake struct {
	districts int
	err       error
	calls     int
}

func (f *reloadObserverFake) ObserveCensusReload(districts int, err error) {
	f.calls++
	f.districts = districts
	f.err = err
}

func TestStoreReloadFromStorage(t *testing.T) {
	storage, err := localfs.New(t.TempDir())
	if err != nil {
		t.Fatalf("localfs.New() error = %v", err)
	}
	raw := buildWorkbook(t, testHeader, districtRow("Pune", 1000), districtRow("Nashik", 2000))
	if err := storage.Save(context.Background(), "census.xlsx", bytes.NewReader(raw)); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	observer := &reloadObserverFake{}
	store := NewStore(storage, "census.xlsx", NewParser(""), observer)

	n, err := store.Reload(context.Background())
	if err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if n != 2 || store.Len() != 2 {
		t.Fatalf("expected 2 districts, got n=%d len=%d", n, store.Len())
	}
	if observer.calls != 1 || observer.districts != 2 || observer.err != nil {
		t.Fatalf("unexpected observer state: %+v", observer)
	}

	record, ok := store.FindDistrict(context.Background(), "  nAsHiK ")
	if !ok {
		t.Fatalf("expected case-insensitive match")
	}
	if record.Population != 2000 {
		t.Fatalf("expected Nashik population 2000, got %d", record.Population)
	}
}

func TestStoreReloadFailureKeepsPreviousTable(t *testing.T) {
	storage, err := localfs.New(t.TempDir())
	if err != nil {
		t.Fatalf("localfs.New() error = %v", err)
	}
	observer := &reloadObserverFake{}
	store := NewStore(storage, "missing.xlsx", NewParser(""), observer)
	store.Replace([]domain.DistrictRecord{{Name: "Pune"}})

	if _, err := store.Reload(context.Background()); err == nil {
		t.Fatalf("expected reload error for missing workbook")
	}
	if observer.err == nil {
		t.Fatalf("expected observer to see the failure")
	}
	if _, ok := store.FindDistrict(context.Background(), "pune"); !ok {
		t.Fatalf("expected previous table to remain active")
	}
}

func TestStoreReplaceFirstRowWins(t *testing.T) {
	store := NewStore(nil, "", nil, nil)

	n := store.Replace([]domain.DistrictRecord{
		{Name: "Aurangabad", Population: 1},
		{Name: "AURANGABAD", Population: 2},
	})
	if n != 1 {
		t.Fatalf("expected duplicates collapsed, got %d", n)
	}
	record, _ := store.FindDistrict(context.Background(), "aurangabad")
	if record.Population != 1 {
		t.Fatalf("expected first row to win, got population %d", record.Population)
	}
}

func TestStoreFindMissingDistrict(t *testing.T) {
	store := NewStore(nil, "", nil, nil)

	if _, ok := store.FindDistrict(context.Background(), "Atlantis"); ok {
		t.Fatalf("expected no match on empty table")
	}
}

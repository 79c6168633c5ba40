// Package census loads the district census workbook and serves lookups from
// an in-memory table that can be swapped atomically on reload.
package census

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/kirillkom/scheme-advisor/internal/core/domain"
	"github.com/kirillkom/scheme-advisor/internal/core/ports"
)

// ReloadObserver receives the outcome of every reload attempt.
type ReloadObserver interface {
	ObserveCensusReload(districts int, err error)
}

type table struct {
	byName map[string]domain.DistrictRecord
}

type Store struct {
	storage  ports.ObjectStorage
	key      string
	parser   ports.CensusParser
	observer ReloadObserver

	current atomic.Pointer[table]
}

func NewStore(storage ports.ObjectStorage, key string, parser ports.CensusParser, observer ReloadObserver) *Store {
	s := &Store{
		storage:  storage,
		key:      key,
		parser:   parser,
		observer: observer,
	}
	s.current.Store(&table{byName: map[string]domain.DistrictRecord{}})
	return s
}

// Reload reads the workbook from storage and swaps it in. On failure the
// previous table stays active.
func (s *Store) Reload(ctx context.Context) (int, error) {
	n, err := s.reload(ctx)
	if s.observer != nil {
		s.observer.ObserveCensusReload(n, err)
	}
	if err != nil {
		slog.Error("census_reload_failed", "key", s.key, "error", err)
		return 0, err
	}
	slog.Info("census_loaded", "key", s.key, "districts", n)
	return n, nil
}

func (s *Store) reload(ctx context.Context) (int, error) {
	reader, err := s.storage.Open(ctx, s.key)
	if err != nil {
		return 0, fmt.Errorf("open census workbook: %w", err)
	}
	defer reader.Close()

	records, err := s.parser.Parse(reader)
	if err != nil {
		return 0, fmt.Errorf("parse census workbook: %w", err)
	}
	return s.Replace(records), nil
}

// Replace installs records as the active table and returns the number of
// distinct districts. When a name repeats, the first row wins.
func (s *Store) Replace(records []domain.DistrictRecord) int {
	byName := make(map[string]domain.DistrictRecord, len(records))
	for _, record := range records {
		key := lookupKey(record.Name)
		if _, exists := byName[key]; exists {
			continue
		}
		byName[key] = record
	}
	s.current.Store(&table{byName: byName})
	return len(byName)
}

func (s *Store) FindDistrict(_ context.Context, name string) (domain.DistrictRecord, bool) {
	record, ok := s.current.Load().byName[lookupKey(name)]
	return record, ok
}

func (s *Store) Len() int {
	return len(s.current.Load().byName)
}

func lookupKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

package census

import (
	"bytes"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

var testHeader = []any{
	"State name", " District name ", "Population", "Male", "Female", "Male_Literate", "Female_Literate",
	"Workers", "Cultivator_Workers", "Agricultural_Workers", "Rural_Households", "Households",
	"Age_Group_50", "Age not stated",
	"Power_Parity_Less_than_Rs_45000", "Power_Parity_Rs_45000_90000", "Power_Parity_Rs_90000_150000",
	"Power_Parity_Rs_150000_330000", "Power_Parity_Above_Rs_545000",
}

func buildWorkbook(t *testing.T, header []any, rows ...[]any) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetRow("Sheet1", "A1", &header); err != nil {
		t.Fatalf("write header: %v", err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("write row %d: %v", i, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

func districtRow(name string, population int) []any {
	return []any{
		"MAHARASHTRA", name, population, population / 2, population / 2, 100, 90,
		400, 100, 80, 700, 1000,
		120, 30,
		100, 150, 300, 200, 250,
	}
}

func TestNormalizeColumn(t *testing.T) {
	cases := map[string]string{
		" District name ":    "District_name",
		"Age not stated":     "Age_not_stated",
		"Female_Literate":    "Female_Literate",
		"Power Parity (Rs.)": "Power_Parity_Rs",
		"Households-Rural %": "HouseholdsRural_",
	}
	for in, want := range cases {
		if got := NormalizeColumn(in); got != want {
			t.Fatalf("NormalizeColumn(%q): expected %q, got %q", in, want, got)
		}
	}
}

func TestParseReadsDistrictRows(t *testing.T) {
	raw := buildWorkbook(t, testHeader, districtRow("Pune", 1000), districtRow("Nashik", 2000))

	records, err := NewParser("").Parse(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	pune := records[0]
	if pune.Name != "Pune" || pune.Population != 1000 || pune.Female != 500 {
		t.Fatalf("unexpected record: %+v", pune)
	}
	if pune.AgeNotStated != 30 || pune.IncomeAbove545k != 250 || pune.Income45kTo90k != 150 {
		t.Fatalf("unexpected income/age fields: %+v", pune)
	}
}

func TestParseSkipsInvalidRows(t *testing.T) {
	bad := districtRow("Broken", 1000)
	bad[2] = "n/a"
	negative := districtRow("Negative", 1000)
	negative[7] = -5
	blank := districtRow("", 1000)

	raw := buildWorkbook(t, testHeader, bad, negative, blank, districtRow("Thane", 500))

	records, err := NewParser("Sheet1").Parse(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(records) != 1 || records[0].Name != "Thane" {
		t.Fatalf("expected only Thane to survive, got %+v", records)
	}
}

func TestParseTreatsEmptyCellsAsZero(t *testing.T) {
	row := districtRow("Wardha", 1000)
	row = row[:len(row)-1]

	raw := buildWorkbook(t, testHeader, row)

	records, err := NewParser("").Parse(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(records) != 1 || records[0].IncomeAbove545k != 0 {
		t.Fatalf("expected trailing empty cell to parse as 0, got %+v", records)
	}
}

func TestParseRequiresColumns(t *testing.T) {
	raw := buildWorkbook(t, []any{"District name", "Population"}, []any{"Pune", 1000})

	_, err := NewParser("").Parse(bytes.NewReader(raw))
	if err == nil {
		t.Fatalf("expected missing column error")
	}
	if !strings.Contains(err.Error(), "Power_Parity_Above_Rs_545000") {
		t.Fatalf("expected missing column list in error, got %v", err)
	}
}

func TestParseRejectsNonWorkbook(t *testing.T) {
	if _, err := NewParser("").Parse(strings.NewReader("not a workbook")); err == nil {
		t.Fatalf("expected error for non-xlsx input")
	}
}

func TestParseUnknownSheet(t *testing.T) {
	raw := buildWorkbook(t, testHeader, districtRow("Pune", 1000))

	if _, err := NewParser("Districts").Parse(bytes.NewReader(raw)); err == nil {
		t.Fatalf("expected error for missing sheet")
	}
}

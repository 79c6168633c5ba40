package census

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/kirillkom/scheme-advisor/internal/core/domain"
)

const (
	colDistrictName        = "District_name"
	colPopulation          = "Population"
	colMale                = "Male"
	colFemale              = "Female"
	colMaleLiterate        = "Male_Literate"
	colFemaleLiterate      = "Female_Literate"
	colWorkers             = "Workers"
	colCultivatorWorkers   = "Cultivator_Workers"
	colAgriculturalWorkers = "Agricultural_Workers"
	colRuralHouseholds     = "Rural_Households"
	colHouseholds          = "Households"
	colAgeGroup50          = "Age_Group_50"
	colAgeNotStated        = "Age_not_stated"
	colIncomeBelow45k      = "Power_Parity_Less_than_Rs_45000"
	colIncome45kTo90k      = "Power_Parity_Rs_45000_90000"
	colIncome90kTo150k     = "Power_Parity_Rs_90000_150000"
	colIncome150kTo330k    = "Power_Parity_Rs_150000_330000"
	colIncomeAbove545k     = "Power_Parity_Above_Rs_545000"
)

// countColumns maps each numeric column to the record field it fills.
var countColumns = []struct {
	name  string
	field func(r *domain.DistrictRecord) *int64
}{
	{colPopulation, func(r *domain.DistrictRecord) *int64 { return &r.Population }},
	{colMale, func(r *domain.DistrictRecord) *int64 { return &r.Male }},
	{colFemale, func(r *domain.DistrictRecord) *int64 { return &r.Female }},
	{colMaleLiterate, func(r *domain.DistrictRecord) *int64 { return &r.MaleLiterate }},
	{colFemaleLiterate, func(r *domain.DistrictRecord) *int64 { return &r.FemaleLiterate }},
	{colWorkers, func(r *domain.DistrictRecord) *int64 { return &r.Workers }},
	{colCultivatorWorkers, func(r *domain.DistrictRecord) *int64 { return &r.CultivatorWorkers }},
	{colAgriculturalWorkers, func(r *domain.DistrictRecord) *int64 { return &r.AgriculturalWorkers }},
	{colRuralHouseholds, func(r *domain.DistrictRecord) *int64 { return &r.RuralHouseholds }},
	{colHouseholds, func(r *domain.DistrictRecord) *int64 { return &r.Households }},
	{colAgeGroup50, func(r *domain.DistrictRecord) *int64 { return &r.AgeGroup50Plus }},
	{colAgeNotStated, func(r *domain.DistrictRecord) *int64 { return &r.AgeNotStated }},
	{colIncomeBelow45k, func(r *domain.DistrictRecord) *int64 { return &r.IncomeBelow45k }},
	{colIncome45kTo90k, func(r *domain.DistrictRecord) *int64 { return &r.Income45kTo90k }},
	{colIncome90kTo150k, func(r *domain.DistrictRecord) *int64 { return &r.Income90kTo150k }},
	{colIncome150kTo330k, func(r *domain.DistrictRecord) *int64 { return &r.Income150kTo330k }},
	{colIncomeAbove545k, func(r *domain.DistrictRecord) *int64 { return &r.IncomeAbove545k }},
}

var nonWordChars = regexp.MustCompile(`[^\p{L}\p{N}_]`)

// NormalizeColumn turns a workbook header such as " District name " into the
// identifier form used for lookups ("District_name").
func NormalizeColumn(header string) string {
	name := strings.ReplaceAll(strings.TrimSpace(header), " ", "_")
	return nonWordChars.ReplaceAllString(name, "")
}

// Parser reads district rows from the census workbook.
type Parser struct {
	sheet string
}

// NewParser reads the named sheet, or the first sheet when sheet is empty.
func NewParser(sheet string) *Parser {
	return &Parser{sheet: strings.TrimSpace(sheet)}
}

func (p *Parser) Parse(r io.Reader) ([]domain.DistrictRecord, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := p.sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheet)
	}

	index, err := columnIndex(rows[0])
	if err != nil {
		return nil, err
	}

	records := make([]domain.DistrictRecord, 0, len(rows)-1)
	skipped := 0
	for i, row := range rows[1:] {
		record, ok, err := parseRow(row, index)
		if err != nil {
			skipped++
			slog.Warn("census_row_skipped", "sheet", sheet, "row", i+2, "error", err)
			continue
		}
		if !ok {
			continue
		}
		records = append(records, record)
	}

	slog.Info("census_parsed", "sheet", sheet, "districts", len(records), "skipped_rows", skipped)
	return records, nil
}

func columnIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, cell := range header {
		name := NormalizeColumn(cell)
		if _, seen := index[name]; !seen {
			index[name] = i
		}
	}

	var missing []string
	if _, ok := index[colDistrictName]; !ok {
		missing = append(missing, colDistrictName)
	}
	for _, col := range countColumns {
		if _, ok := index[col.name]; !ok {
			missing = append(missing, col.name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing census columns: %s", strings.Join(missing, ", "))
	}
	return index, nil
}

// parseRow returns ok=false for rows without a district name.
func parseRow(row []string, index map[string]int) (domain.DistrictRecord, bool, error) {
	name := strings.TrimSpace(cellAt(row, index[colDistrictName]))
	if name == "" {
		return domain.DistrictRecord{}, false, nil
	}

	record := domain.DistrictRecord{Name: name}
	for _, col := range countColumns {
		v, err := parseCount(cellAt(row, index[col.name]))
		if err != nil {
			return domain.DistrictRecord{}, false, fmt.Errorf("district %q column %s: %w", name, col.name, err)
		}
		*col.field(&record) = v
	}
	return record, true, nil
}

func cellAt(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

// parseCount treats an empty cell as zero and rejects non-numeric or negative
// values.
func parseCount(cell string) (int64, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", cell)
	}
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid count: %q", cell)
	}
	return int64(math.Round(v)), nil
}

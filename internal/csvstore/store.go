// SPDX-License-Identifier: MPL-2.0

package csvstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"straycat-cli/internal/costing"
)

// Data file names, kept byte-for-byte compatible with existing café data.
const (
	IngredientsFile  = "食材清單.csv"
	RecipesFile      = "品項清單.csv"
	TimeCostsFile    = "時間成本清單.csv"
	BaseWageFile     = "基本時薪.csv"
	UnitsFile        = "可用單位.csv"
	QuoteResultsFile = "建議售價與利潤結果.csv"
)

var (
	ingredientsHeader = []string{"食材名稱", "單位", "單價"}
	recipesHeader     = []string{"品項名稱", "食材名稱", "用量"}
	timeCostsHeader   = []string{
		"品項名稱", "切份數量", "製作時間(分鐘)", "每份薪資",
		"品項成本", "每份品項成本", "每份建議售價", "每份利潤",
	}
	baseWageHeader     = []string{"基本時薪"}
	unitsHeader        = []string{"單位名稱"}
	quoteResultsHeader = []string{"品項名稱", "數量", "總成本", "總建議售價", "總利潤"}
)

// DefaultUnits are seeded into an empty units file.
var DefaultUnits = []string{"g", "kg", "ml", "L", "pcs"}

// ErrBadHeader is returned when a data file's first row is not the expected
// header, usually a sign the wrong file landed in the data directory.
var ErrBadHeader = errors.New("unexpected csv header")

// Store reads and writes the costing tables under one directory.
type Store struct {
	// Dir is the data directory.
	Dir string
}

// New creates a Store rooted at dir.
func New(dir string) *Store {
	return &Store{Dir: dir}
}

// Init creates the data directory and seeds every missing file: header-only
// tables, the default hourly wage, and the default unit list. Existing files
// are never touched.
func (s *Store) Init() error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	seeds := []struct {
		file    string
		records [][]string
	}{
		{IngredientsFile, [][]string{ingredientsHeader}},
		{RecipesFile, [][]string{recipesHeader}},
		{TimeCostsFile, [][]string{timeCostsHeader}},
		{BaseWageFile, [][]string{baseWageHeader, {formatFloat(costing.DefaultHourlyWage)}}},
		{QuoteResultsFile, [][]string{quoteResultsHeader}},
	}
	for _, seed := range seeds {
		path := s.path(seed.file)
		if _, err := os.Stat(path); err == nil {
			continue
		}
		if err := writeRecords(path, seed.records); err != nil {
			return err
		}
	}

	// The units file is reseeded even when present but empty, matching how
	// a wiped unit list recovers its defaults.
	units, err := s.LoadUnits()
	if err != nil {
		return err
	}
	if len(units) == 0 {
		if err := s.SaveUnits(DefaultUnits); err != nil {
			return err
		}
	}
	return nil
}

// LoadIngredients reads the ingredient catalog.
func (s *Store) LoadIngredients() ([]costing.Ingredient, error) {
	rows, err := s.loadRows(IngredientsFile, ingredientsHeader, 3)
	if err != nil {
		return nil, err
	}

	out := make([]costing.Ingredient, 0, len(rows))
	for _, row := range rows {
		price, err := strconv.ParseFloat(row[2], 64)
		if err != nil {
			return nil, fmt.Errorf("%s: bad price %q for %q: %w", IngredientsFile, row[2], row[0], err)
		}
		out = append(out, costing.Ingredient{Name: row[0], Unit: row[1], UnitPrice: price})
	}
	return out, nil
}

// SaveIngredients writes the ingredient catalog.
func (s *Store) SaveIngredients(catalog []costing.Ingredient) error {
	records := [][]string{ingredientsHeader}
	for _, ing := range catalog {
		records = append(records, []string{ing.Name, ing.Unit, formatFloat(ing.UnitPrice)})
	}
	return writeRecords(s.path(IngredientsFile), records)
}

// LoadRecipes reads the item recipe lines.
func (s *Store) LoadRecipes() ([]costing.RecipeLine, error) {
	rows, err := s.loadRows(RecipesFile, recipesHeader, 3)
	if err != nil {
		return nil, err
	}

	out := make([]costing.RecipeLine, 0, len(rows))
	for _, row := range rows {
		amount, err := strconv.ParseFloat(row[2], 64)
		if err != nil {
			return nil, fmt.Errorf("%s: bad amount %q for %q: %w", RecipesFile, row[2], row[0], err)
		}
		out = append(out, costing.RecipeLine{Item: row[0], Ingredient: row[1], Amount: amount})
	}
	return out, nil
}

// SaveRecipes writes the item recipe lines.
func (s *Store) SaveRecipes(lines []costing.RecipeLine) error {
	records := [][]string{recipesHeader}
	for _, line := range lines {
		records = append(records, []string{line.Item, line.Ingredient, formatFloat(line.Amount)})
	}
	return writeRecords(s.path(RecipesFile), records)
}

// LoadTimeCosts reads the per-item time cost records.
func (s *Store) LoadTimeCosts() ([]costing.TimeCost, error) {
	rows, err := s.loadRows(TimeCostsFile, timeCostsHeader, 8)
	if err != nil {
		return nil, err
	}

	out := make([]costing.TimeCost, 0, len(rows))
	for _, row := range rows {
		portions, err := strconv.Atoi(row[1])
		if err != nil {
			return nil, fmt.Errorf("%s: bad portions %q for %q: %w", TimeCostsFile, row[1], row[0], err)
		}
		floats := make([]float64, 6)
		for i, col := range row[2:8] {
			f, err := strconv.ParseFloat(col, 64)
			if err != nil {
				return nil, fmt.Errorf("%s: bad number %q for %q: %w", TimeCostsFile, col, row[0], err)
			}
			floats[i] = f
		}
		out = append(out, costing.TimeCost{
			Item:             row[0],
			Portions:         portions,
			Minutes:          floats[0],
			WagePerPortion:   floats[1],
			ItemCost:         floats[2],
			CostPerPortion:   floats[3],
			SuggestedPrice:   floats[4],
			ProfitPerPortion: floats[5],
		})
	}
	return out, nil
}

// SaveTimeCosts writes the per-item time cost records.
func (s *Store) SaveTimeCosts(records []costing.TimeCost) error {
	rows := [][]string{timeCostsHeader}
	for _, tc := range records {
		rows = append(rows, []string{
			tc.Item,
			strconv.Itoa(tc.Portions),
			formatFloat(tc.Minutes),
			formatFloat(tc.WagePerPortion),
			formatFloat(tc.ItemCost),
			formatFloat(tc.CostPerPortion),
			formatFloat(tc.SuggestedPrice),
			formatFloat(tc.ProfitPerPortion),
		})
	}
	return writeRecords(s.path(TimeCostsFile), rows)
}

// LoadBaseWage reads the hourly wage, defaulting when the file is missing or
// empty.
func (s *Store) LoadBaseWage() (float64, error) {
	rows, err := s.loadRows(BaseWageFile, baseWageHeader, 1)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return costing.DefaultHourlyWage, nil
	}

	wage, err := strconv.ParseFloat(rows[0][0], 64)
	if err != nil {
		return 0, fmt.Errorf("%s: bad wage %q: %w", BaseWageFile, rows[0][0], err)
	}
	return wage, nil
}

// SaveBaseWage writes the hourly wage.
func (s *Store) SaveBaseWage(wage float64) error {
	return writeRecords(s.path(BaseWageFile), [][]string{baseWageHeader, {formatFloat(wage)}})
}

// LoadUnits reads the allowed measurement units.
func (s *Store) LoadUnits() ([]string, error) {
	rows, err := s.loadRows(UnitsFile, unitsHeader, 1)
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(rows))
	for _, row := range rows {
		out = append(out, row[0])
	}
	return out, nil
}

// SaveUnits writes the allowed measurement units.
func (s *Store) SaveUnits(units []string) error {
	records := [][]string{unitsHeader}
	for _, u := range units {
		records = append(records, []string{u})
	}
	return writeRecords(s.path(UnitsFile), records)
}

// LoadQuoteResults reads the last saved quote.
func (s *Store) LoadQuoteResults() ([]costing.QuoteLine, error) {
	rows, err := s.loadRows(QuoteResultsFile, quoteResultsHeader, 5)
	if err != nil {
		return nil, err
	}

	out := make([]costing.QuoteLine, 0, len(rows))
	for _, row := range rows {
		qty, err := strconv.Atoi(row[1])
		if err != nil {
			return nil, fmt.Errorf("%s: bad quantity %q for %q: %w", QuoteResultsFile, row[1], row[0], err)
		}
		floats := make([]float64, 3)
		for i, col := range row[2:5] {
			f, err := strconv.ParseFloat(col, 64)
			if err != nil {
				return nil, fmt.Errorf("%s: bad number %q for %q: %w", QuoteResultsFile, col, row[0], err)
			}
			floats[i] = f
		}
		out = append(out, costing.QuoteLine{
			Item:        row[0],
			Quantity:    qty,
			TotalCost:   floats[0],
			TotalPrice:  floats[1],
			TotalProfit: floats[2],
		})
	}
	return out, nil
}

// SaveQuoteResults writes a quote.
func (s *Store) SaveQuoteResults(lines []costing.QuoteLine) error {
	records := [][]string{quoteResultsHeader}
	for _, q := range lines {
		records = append(records, []string{
			q.Item,
			strconv.Itoa(q.Quantity),
			formatFloat(q.TotalCost),
			formatFloat(q.TotalPrice),
			formatFloat(q.TotalProfit),
		})
	}
	return writeRecords(s.path(QuoteResultsFile), records)
}

func (s *Store) path(file string) string {
	return filepath.Join(s.Dir, file)
}

// loadRows reads a table's data rows, validating the header and the minimum
// column count. Missing files and header-only files yield no rows.
func (s *Store) loadRows(file string, header []string, minCols int) ([][]string, error) {
	records, err := readRecords(s.path(file))
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	if !equalRow(records[0], header) {
		return nil, fmt.Errorf("%w in %s: got %v", ErrBadHeader, file, records[0])
	}

	rows := records[1:]
	for _, row := range rows {
		if len(row) < minCols {
			return nil, fmt.Errorf("%s: short row %v", file, row)
		}
	}
	return rows, nil
}

func equalRow(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// formatFloat prints numbers the way the data files historically carry them:
// no exponent, no trailing zeros.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// SPDX-License-Identifier: MPL-2.0

package csvstore

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/text/encoding/traditionalchinese"

	"straycat-cli/internal/costing"
	"straycat-cli/internal/testutil"
)

func TestInit_SeedsMissingFiles(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)

	if err := s.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	for _, file := range []string{
		IngredientsFile, RecipesFile, TimeCostsFile,
		BaseWageFile, UnitsFile, QuoteResultsFile,
	} {
		if _, err := os.Stat(filepath.Join(dir, file)); err != nil {
			t.Errorf("%s not seeded: %v", file, err)
		}
	}

	wage, err := s.LoadBaseWage()
	if err != nil {
		t.Fatalf("LoadBaseWage() error = %v", err)
	}
	if wage != costing.DefaultHourlyWage {
		t.Errorf("seeded wage = %v, want %v", wage, costing.DefaultHourlyWage)
	}

	units, err := s.LoadUnits()
	if err != nil {
		t.Fatalf("LoadUnits() error = %v", err)
	}
	if len(units) != len(DefaultUnits) {
		t.Errorf("seeded units = %v, want %v", units, DefaultUnits)
	}
}

func TestInit_PreservesExistingData(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)

	if err := s.SaveBaseWage(250); err != nil {
		t.Fatalf("SaveBaseWage() error = %v", err)
	}
	if err := s.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	wage, err := s.LoadBaseWage()
	if err != nil {
		t.Fatalf("LoadBaseWage() error = %v", err)
	}
	if wage != 250 {
		t.Errorf("Init() overwrote the wage: got %v", wage)
	}
}

func TestIngredients_RoundTrip(t *testing.T) {
	s := New(t.TempDir())
	want := []costing.Ingredient{
		{Name: "麵粉", Unit: "g", UnitPrice: 0.05},
		{Name: "草莓", Unit: "pcs", UnitPrice: 12},
	}

	if err := s.SaveIngredients(want); err != nil {
		t.Fatalf("SaveIngredients() error = %v", err)
	}
	got, err := s.LoadIngredients()
	if err != nil {
		t.Fatalf("LoadIngredients() error = %v", err)
	}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestTimeCosts_RoundTrip(t *testing.T) {
	s := New(t.TempDir())
	want := costing.TimeCost{
		Item:             "草莓蛋糕",
		Portions:         4,
		Minutes:          30,
		WagePerPortion:   24,
		ItemCost:         151,
		CostPerPortion:   37.75,
		SuggestedPrice:   61.75,
		ProfitPerPortion: 24,
	}

	if err := s.SaveTimeCosts([]costing.TimeCost{want}); err != nil {
		t.Fatalf("SaveTimeCosts() error = %v", err)
	}
	got, err := s.LoadTimeCosts()
	if err != nil {
		t.Fatalf("LoadTimeCosts() error = %v", err)
	}
	if len(got) != 1 || got[0] != want {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestQuoteResults_RoundTrip(t *testing.T) {
	s := New(t.TempDir())
	want := costing.QuoteLine{Item: "拿鐵", Quantity: 3, TotalCost: 113.25, TotalPrice: 185.25, TotalProfit: 72}

	if err := s.SaveQuoteResults([]costing.QuoteLine{want}); err != nil {
		t.Fatalf("SaveQuoteResults() error = %v", err)
	}
	got, err := s.LoadQuoteResults()
	if err != nil {
		t.Fatalf("LoadQuoteResults() error = %v", err)
	}
	if len(got) != 1 || got[0] != want {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestLoad_MissingFileIsEmpty(t *testing.T) {
	s := New(t.TempDir())

	got, err := s.LoadIngredients()
	if err != nil {
		t.Fatalf("LoadIngredients() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("missing file should read as empty, got %+v", got)
	}
}

func TestLoad_BadHeader(t *testing.T) {
	dir := t.TempDir()
	testutil.MustWriteFile(t, filepath.Join(dir, IngredientsFile), "a,b,c\nx,y,1\n")

	_, err := New(dir).LoadIngredients()
	if !errors.Is(err, ErrBadHeader) {
		t.Errorf("LoadIngredients() error = %v, want ErrBadHeader", err)
	}
}

func TestLoad_BadNumber(t *testing.T) {
	dir := t.TempDir()
	testutil.MustWriteFile(t, filepath.Join(dir, IngredientsFile), "食材名稱,單位,單價\n麵粉,g,not-a-number\n")

	if _, err := New(dir).LoadIngredients(); err == nil {
		t.Error("LoadIngredients() should fail on a non-numeric price")
	}
}

func TestWrite_EmitsBOM(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)

	if err := s.SaveUnits([]string{"g"}); err != nil {
		t.Fatalf("SaveUnits() error = %v", err)
	}
	data := testutil.MustReadFile(t, filepath.Join(dir, UnitsFile))
	if !bytes.HasPrefix([]byte(data), []byte{0xEF, 0xBB, 0xBF}) {
		t.Error("written file must start with a UTF-8 BOM")
	}
}

func TestRead_AcceptsPlainUTF8(t *testing.T) {
	dir := t.TempDir()
	testutil.MustWriteFile(t, filepath.Join(dir, UnitsFile), "單位名稱\ng\nkg\n")

	units, err := New(dir).LoadUnits()
	if err != nil {
		t.Fatalf("LoadUnits() error = %v", err)
	}
	if len(units) != 2 || units[0] != "g" || units[1] != "kg" {
		t.Errorf("units = %v", units)
	}
}

func TestRead_Big5Fallback(t *testing.T) {
	dir := t.TempDir()

	big5, err := traditionalchinese.Big5.NewEncoder().Bytes([]byte("單位名稱\n克\n"))
	if err != nil {
		t.Fatalf("big5 encode: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, UnitsFile), big5, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	units, err := New(dir).LoadUnits()
	if err != nil {
		t.Fatalf("LoadUnits() error = %v", err)
	}
	if len(units) != 1 || units[0] != "克" {
		t.Errorf("units = %v, want [克]", units)
	}
}

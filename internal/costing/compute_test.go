// SPDX-License-Identifier: MPL-2.0

package costing

import (
	"errors"
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{1.005, 1.0}, // 1.005 is stored just below 1.005
		{1.015, 1.01},
		{3.14159, 3.14},
		{2.675, 2.67},
		{-1.235, -1.24},
		{0, 0},
	}
	for _, tt := range tests {
		if got := Round2(tt.in); !almostEqual(got, tt.want) {
			t.Errorf("Round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestItemCost(t *testing.T) {
	catalog := []Ingredient{
		{Name: "麵粉", Unit: "g", UnitPrice: 0.05},
		{Name: "鮮奶油", Unit: "ml", UnitPrice: 0.3},
		{Name: "草莓", Unit: "pcs", UnitPrice: 12},
	}
	lines := []RecipeLine{
		{Item: "草莓蛋糕", Ingredient: "麵粉", Amount: 200},
		{Item: "草莓蛋糕", Ingredient: "鮮奶油", Amount: 150},
		{Item: "草莓蛋糕", Ingredient: "草莓", Amount: 8},
		{Item: "拿鐵", Ingredient: "鮮奶油", Amount: 30},
	}

	got, err := ItemCost(lines, catalog, "草莓蛋糕")
	if err != nil {
		t.Fatalf("ItemCost() error = %v", err)
	}
	// 200*0.05 + 150*0.3 + 8*12 = 10 + 45 + 96
	if !almostEqual(got, 151) {
		t.Errorf("ItemCost() = %v, want 151", got)
	}
}

func TestItemCost_NoRecipeLines(t *testing.T) {
	got, err := ItemCost(nil, nil, "幽靈品項")
	if err != nil {
		t.Fatalf("ItemCost() error = %v", err)
	}
	if got != 0 {
		t.Errorf("ItemCost() = %v, want 0 for an item with no recipe", got)
	}
}

func TestItemCost_UnknownIngredient(t *testing.T) {
	lines := []RecipeLine{{Item: "拿鐵", Ingredient: "獨角獸奶", Amount: 30}}

	_, err := ItemCost(lines, nil, "拿鐵")
	if !errors.Is(err, ErrUnknownIngredient) {
		t.Errorf("ItemCost() error = %v, want ErrUnknownIngredient", err)
	}
}

func TestComputeTimeCost(t *testing.T) {
	// 30 minutes at 192/hr = 96 labor for the batch; 4 portions.
	tc, err := ComputeTimeCost("草莓蛋糕", 4, 30, 151, DefaultHourlyWage)
	if err != nil {
		t.Fatalf("ComputeTimeCost() error = %v", err)
	}

	if !almostEqual(tc.WagePerPortion, 24) {
		t.Errorf("WagePerPortion = %v, want 24", tc.WagePerPortion)
	}
	if !almostEqual(tc.CostPerPortion, 37.75) {
		t.Errorf("CostPerPortion = %v, want 37.75", tc.CostPerPortion)
	}
	if !almostEqual(tc.SuggestedPrice, 61.75) {
		t.Errorf("SuggestedPrice = %v, want 61.75", tc.SuggestedPrice)
	}
	if !almostEqual(tc.ProfitPerPortion, 24) {
		t.Errorf("ProfitPerPortion = %v, want 24", tc.ProfitPerPortion)
	}
}

func TestComputeTimeCost_ProfitEqualsLaborShare(t *testing.T) {
	tests := []struct {
		name     string
		portions int
		minutes  float64
		itemCost float64
		wage     float64
	}{
		{name: "single portion", portions: 1, minutes: 5, itemCost: 20, wage: 192},
		{name: "large batch", portions: 12, minutes: 90, itemCost: 300, wage: 200},
		{name: "zero minutes", portions: 2, minutes: 0, itemCost: 10, wage: 192},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc, err := ComputeTimeCost("x", tt.portions, tt.minutes, tt.itemCost, tt.wage)
			if err != nil {
				t.Fatalf("ComputeTimeCost() error = %v", err)
			}
			if !almostEqual(tc.ProfitPerPortion, tc.WagePerPortion) {
				t.Errorf("profit %v != labor share %v", tc.ProfitPerPortion, tc.WagePerPortion)
			}
			if !almostEqual(tc.SuggestedPrice, tc.WagePerPortion+tc.CostPerPortion) {
				t.Errorf("price %v != labor %v + cost %v", tc.SuggestedPrice, tc.WagePerPortion, tc.CostPerPortion)
			}
		})
	}
}

func TestComputeTimeCost_Validation(t *testing.T) {
	if _, err := ComputeTimeCost("x", 0, 10, 5, 192); !errors.Is(err, ErrInvalidPortions) {
		t.Errorf("portions=0 error = %v, want ErrInvalidPortions", err)
	}
	if _, err := ComputeTimeCost("x", 1, 10, 5, 0); !errors.Is(err, ErrInvalidWage) {
		t.Errorf("wage=0 error = %v, want ErrInvalidWage", err)
	}
}

func TestBuildQuote(t *testing.T) {
	tc := TimeCost{
		Item:             "草莓蛋糕",
		CostPerPortion:   37.75,
		SuggestedPrice:   61.75,
		ProfitPerPortion: 24,
	}

	q := BuildQuote(tc, 3)
	if q.Quantity != 3 {
		t.Errorf("Quantity = %d", q.Quantity)
	}
	if !almostEqual(q.TotalCost, 113.25) {
		t.Errorf("TotalCost = %v, want 113.25", q.TotalCost)
	}
	if !almostEqual(q.TotalPrice, 185.25) {
		t.Errorf("TotalPrice = %v, want 185.25", q.TotalPrice)
	}
	if !almostEqual(q.TotalProfit, 72) {
		t.Errorf("TotalProfit = %v, want 72", q.TotalProfit)
	}
}

func TestUpsertIngredient(t *testing.T) {
	catalog := []Ingredient{{Name: "麵粉", Unit: "g", UnitPrice: 0.05}}

	catalog = UpsertIngredient(catalog, Ingredient{Name: "麵粉", Unit: "kg", UnitPrice: 48})
	if len(catalog) != 1 {
		t.Fatalf("len = %d, want 1 after upsert of existing name", len(catalog))
	}
	if catalog[0].Unit != "kg" || !almostEqual(catalog[0].UnitPrice, 48) {
		t.Errorf("existing entry not replaced: %+v", catalog[0])
	}

	catalog = UpsertIngredient(catalog, Ingredient{Name: "糖", Unit: "g", UnitPrice: 0.02})
	if len(catalog) != 2 {
		t.Errorf("len = %d, want 2 after upsert of new name", len(catalog))
	}
}

func TestUpsertRecipeLine(t *testing.T) {
	lines := []RecipeLine{{Item: "拿鐵", Ingredient: "鮮奶油", Amount: 30}}

	lines = UpsertRecipeLine(lines, RecipeLine{Item: "拿鐵", Ingredient: "鮮奶油", Amount: 45})
	if len(lines) != 1 || !almostEqual(lines[0].Amount, 45) {
		t.Errorf("same item+ingredient must replace: %+v", lines)
	}

	lines = UpsertRecipeLine(lines, RecipeLine{Item: "拿鐵", Ingredient: "咖啡豆", Amount: 18})
	if len(lines) != 2 {
		t.Errorf("different ingredient must append: %+v", lines)
	}
}

func TestUpsertTimeCost(t *testing.T) {
	records := []TimeCost{{Item: "拿鐵", Portions: 1}}

	records = UpsertTimeCost(records, TimeCost{Item: "拿鐵", Portions: 2})
	if len(records) != 1 || records[0].Portions != 2 {
		t.Errorf("same item must replace: %+v", records)
	}
}

func TestRemoveItem(t *testing.T) {
	lines := []RecipeLine{
		{Item: "拿鐵", Ingredient: "咖啡豆", Amount: 18},
		{Item: "草莓蛋糕", Ingredient: "草莓", Amount: 8},
	}
	records := []TimeCost{{Item: "拿鐵"}, {Item: "草莓蛋糕"}}

	lines, records = RemoveItem(lines, records, "拿鐵")
	if len(lines) != 1 || lines[0].Item != "草莓蛋糕" {
		t.Errorf("recipe lines = %+v", lines)
	}
	if len(records) != 1 || records[0].Item != "草莓蛋糕" {
		t.Errorf("time costs = %+v", records)
	}
}

func TestRemoveIngredient(t *testing.T) {
	catalog := []Ingredient{{Name: "麵粉"}, {Name: "糖"}}

	catalog = RemoveIngredient(catalog, "麵粉")
	if len(catalog) != 1 || catalog[0].Name != "糖" {
		t.Errorf("catalog = %+v", catalog)
	}
}

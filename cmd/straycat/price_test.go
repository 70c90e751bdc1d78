// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"strings"
	"testing"

	"straycat-cli/internal/config"
	"straycat-cli/internal/costing"
	"straycat-cli/internal/csvstore"
)

func setupPriceProject(t *testing.T) *csvstore.Store {
	t.Helper()

	config.Reset()
	t.Cleanup(config.Reset)

	origDir := projectDir
	projectDir = t.TempDir()
	t.Cleanup(func() { projectDir = origDir })

	store := csvstore.New(projectDir)
	if err := store.SaveTimeCosts([]costing.TimeCost{{
		Item: "草莓蛋糕", Portions: 4, Minutes: 30,
		WagePerPortion: 24, ItemCost: 151, CostPerPortion: 37.75,
		SuggestedPrice: 61.75, ProfitPerPortion: 24,
	}}); err != nil {
		t.Fatalf("seed time costs: %v", err)
	}
	return store
}

func TestRunPrice(t *testing.T) {
	setupPriceProject(t)
	priceSave = false

	if err := runPrice(priceCmd, []string{"草莓蛋糕=3"}); err != nil {
		t.Fatalf("runPrice() error = %v", err)
	}
}

func TestRunPrice_SaveWritesResults(t *testing.T) {
	store := setupPriceProject(t)
	priceSave = true
	t.Cleanup(func() { priceSave = false })

	if err := runPrice(priceCmd, []string{"草莓蛋糕=2"}); err != nil {
		t.Fatalf("runPrice() error = %v", err)
	}

	saved, err := store.LoadQuoteResults()
	if err != nil {
		t.Fatalf("LoadQuoteResults() error = %v", err)
	}
	if len(saved) != 1 || saved[0].Quantity != 2 {
		t.Errorf("saved quote = %+v", saved)
	}
	if saved[0].TotalPrice != 123.5 {
		t.Errorf("TotalPrice = %v, want 123.5", saved[0].TotalPrice)
	}
}

func TestRunPrice_BadArgs(t *testing.T) {
	setupPriceProject(t)
	priceSave = false

	tests := []struct {
		name string
		arg  string
		want string
	}{
		{name: "missing equals", arg: "草莓蛋糕", want: "invalid order entry"},
		{name: "bad quantity", arg: "草莓蛋糕=zero", want: "invalid quantity"},
		{name: "zero quantity", arg: "草莓蛋糕=0", want: "invalid quantity"},
		{name: "unknown item", arg: "幽靈品項=1", want: "no time cost recorded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := runPrice(priceCmd, []string{tt.arg})
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("runPrice(%q) error = %v, want %q", tt.arg, err, tt.want)
			}
		})
	}
}

// SPDX-License-Identifier: MPL-2.0

package costing

import (
	"errors"
	"fmt"
	"math"
)

// DefaultHourlyWage is the base hourly wage used when no wage has been
// configured.
const DefaultHourlyWage = 192.0

var (
	// ErrUnknownIngredient is returned when a recipe references an
	// ingredient that is not in the catalog.
	ErrUnknownIngredient = errors.New("ingredient not in catalog")
	// ErrInvalidPortions is returned for a batch size below one serving.
	ErrInvalidPortions = errors.New("portions must be at least 1")
	// ErrInvalidWage is returned for a zero or negative hourly wage.
	ErrInvalidWage = errors.New("hourly wage must be positive")
)

// Round2 rounds to two decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ItemCost sums the ingredient cost of one batch of the item: amount times
// unit price over every recipe line for it. Items with no recipe lines cost
// zero.
func ItemCost(lines []RecipeLine, catalog []Ingredient, item string) (float64, error) {
	prices := make(map[string]float64, len(catalog))
	for _, ing := range catalog {
		prices[ing.Name] = ing.UnitPrice
	}

	var total float64
	for _, line := range lines {
		if line.Item != item {
			continue
		}
		price, ok := prices[line.Ingredient]
		if !ok {
			return 0, fmt.Errorf("%w: %s", ErrUnknownIngredient, line.Ingredient)
		}
		total += line.Amount * price
	}
	return Round2(total), nil
}

// ComputeTimeCost derives the per-portion labor and pricing fields for one
// item. The labor share of a portion is the batch minutes at the per-minute
// wage, split across the batch's portions; the suggested price covers that
// labor plus the portion's ingredient cost, so the per-portion profit at the
// suggested price equals the labor share.
func ComputeTimeCost(item string, portions int, minutes, itemCost, hourlyWage float64) (TimeCost, error) {
	if portions < 1 {
		return TimeCost{}, ErrInvalidPortions
	}
	if hourlyWage <= 0 {
		return TimeCost{}, ErrInvalidWage
	}

	perMinuteWage := hourlyWage / 60
	wagePerPortion := Round2(minutes * perMinuteWage / float64(portions))
	costPerPortion := Round2(itemCost / float64(portions))
	suggestedPrice := Round2(wagePerPortion + costPerPortion)

	return TimeCost{
		Item:             item,
		Portions:         portions,
		Minutes:          minutes,
		WagePerPortion:   wagePerPortion,
		ItemCost:         Round2(itemCost),
		CostPerPortion:   costPerPortion,
		SuggestedPrice:   suggestedPrice,
		ProfitPerPortion: Round2(suggestedPrice - costPerPortion),
	}, nil
}

// BuildQuote prices an order of qty servings of the item.
func BuildQuote(tc TimeCost, qty int) QuoteLine {
	return QuoteLine{
		Item:        tc.Item,
		Quantity:    qty,
		TotalCost:   Round2(tc.CostPerPortion * float64(qty)),
		TotalPrice:  Round2(tc.SuggestedPrice * float64(qty)),
		TotalProfit: Round2(tc.ProfitPerPortion * float64(qty)),
	}
}

// UpsertIngredient replaces the catalog entry with the same name, or appends
// a new one. Order of untouched entries is preserved.
func UpsertIngredient(catalog []Ingredient, ing Ingredient) []Ingredient {
	for i, existing := range catalog {
		if existing.Name == ing.Name {
			catalog[i] = ing
			return catalog
		}
	}
	return append(catalog, ing)
}

// UpsertRecipeLine replaces the line with the same item and ingredient, or
// appends a new one.
func UpsertRecipeLine(lines []RecipeLine, line RecipeLine) []RecipeLine {
	for i, existing := range lines {
		if existing.Item == line.Item && existing.Ingredient == line.Ingredient {
			lines[i] = line
			return lines
		}
	}
	return append(lines, line)
}

// UpsertTimeCost replaces the record with the same item, or appends a new
// one.
func UpsertTimeCost(records []TimeCost, tc TimeCost) []TimeCost {
	for i, existing := range records {
		if existing.Item == tc.Item {
			records[i] = tc
			return records
		}
	}
	return append(records, tc)
}

// RemoveItem deletes every recipe line and time-cost record for the item.
func RemoveItem(lines []RecipeLine, records []TimeCost, item string) ([]RecipeLine, []TimeCost) {
	keptLines := lines[:0]
	for _, line := range lines {
		if line.Item != item {
			keptLines = append(keptLines, line)
		}
	}
	keptRecords := records[:0]
	for _, tc := range records {
		if tc.Item != item {
			keptRecords = append(keptRecords, tc)
		}
	}
	return keptLines, keptRecords
}

// RemoveIngredient deletes a catalog entry by name; recipe lines that still
// reference it will fail the next ItemCost with ErrUnknownIngredient.
func RemoveIngredient(catalog []Ingredient, name string) []Ingredient {
	kept := catalog[:0]
	for _, ing := range catalog {
		if ing.Name != name {
			kept = append(kept, ing)
		}
	}
	return kept
}

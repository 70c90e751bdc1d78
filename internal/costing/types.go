// SPDX-License-Identifier: MPL-2.0

package costing

// Ingredient is a purchasable raw material with its price per unit.
type Ingredient struct {
	// Name identifies the ingredient; names are unique within a catalog.
	Name string
	// Unit is the pricing unit (g, kg, ml, L, pcs).
	Unit string
	// UnitPrice is the cost of one Unit.
	UnitPrice float64
}

// RecipeLine says how much of one ingredient a menu item uses.
type RecipeLine struct {
	// Item is the menu item name.
	Item string
	// Ingredient names an entry in the ingredient catalog.
	Ingredient string
	// Amount is in the ingredient's own unit.
	Amount float64
}

// TimeCost is the per-item labor and pricing record. The derived fields are
// recomputed from the inputs on every change; persisted values are never
// trusted over a recompute.
type TimeCost struct {
	// Item is the menu item name.
	Item string
	// Portions is how many servings one batch yields.
	Portions int
	// Minutes is the batch preparation time.
	Minutes float64
	// WagePerPortion is the labor cost attributed to one serving.
	WagePerPortion float64
	// ItemCost is the ingredient cost of one batch.
	ItemCost float64
	// CostPerPortion is the ingredient cost of one serving.
	CostPerPortion float64
	// SuggestedPrice is labor plus ingredients for one serving.
	SuggestedPrice float64
	// ProfitPerPortion is the margin of one serving at the suggested price.
	ProfitPerPortion float64
}

// QuoteLine is one priced order row.
type QuoteLine struct {
	// Item is the menu item name.
	Item string
	// Quantity is the number of servings ordered.
	Quantity int
	// TotalCost is CostPerPortion times Quantity.
	TotalCost float64
	// TotalPrice is SuggestedPrice times Quantity.
	TotalPrice float64
	// TotalProfit is ProfitPerPortion times Quantity.
	TotalProfit float64
}

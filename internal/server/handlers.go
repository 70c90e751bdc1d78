// SPDX-License-Identifier: MPL-2.0

package server

import (
	"fmt"
	"net/http"
	"strconv"

	"straycat-cli/internal/costing"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/ingredients", http.StatusSeeOther)
}

type ingredientsPage struct {
	Ingredients []costing.Ingredient
	Units       []string
}

func (s *Server) handleIngredients(w http.ResponseWriter, r *http.Request) {
	ingredients, err := s.store.LoadIngredients()
	if err != nil {
		s.fail(w, err, http.StatusInternalServerError)
		return
	}
	units, err := s.store.LoadUnits()
	if err != nil {
		s.fail(w, err, http.StatusInternalServerError)
		return
	}
	s.render(w, "ingredients.html", ingredientsPage{Ingredients: ingredients, Units: units})
}

func (s *Server) handleIngredientUpsert(w http.ResponseWriter, r *http.Request) {
	name := r.FormValue("name")
	unit := r.FormValue("unit")
	price, err := strconv.ParseFloat(r.FormValue("price"), 64)
	if name == "" || err != nil || price < 0 {
		s.fail(w, fmt.Errorf("invalid ingredient form"), http.StatusBadRequest)
		return
	}

	units, err := s.store.LoadUnits()
	if err != nil {
		s.fail(w, err, http.StatusInternalServerError)
		return
	}
	if !contains(units, unit) {
		s.fail(w, fmt.Errorf("unknown unit %q", unit), http.StatusBadRequest)
		return
	}

	catalog, err := s.store.LoadIngredients()
	if err != nil {
		s.fail(w, err, http.StatusInternalServerError)
		return
	}
	catalog = costing.UpsertIngredient(catalog, costing.Ingredient{Name: name, Unit: unit, UnitPrice: price})
	if err := s.store.SaveIngredients(catalog); err != nil {
		s.fail(w, err, http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/ingredients", http.StatusSeeOther)
}

func (s *Server) handleIngredientDelete(w http.ResponseWriter, r *http.Request) {
	name := r.FormValue("name")
	catalog, err := s.store.LoadIngredients()
	if err != nil {
		s.fail(w, err, http.StatusInternalServerError)
		return
	}
	if err := s.store.SaveIngredients(costing.RemoveIngredient(catalog, name)); err != nil {
		s.fail(w, err, http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/ingredients", http.StatusSeeOther)
}

type itemsPage struct {
	Recipes     []costing.RecipeLine
	Ingredients []costing.Ingredient
}

func (s *Server) handleItems(w http.ResponseWriter, r *http.Request) {
	recipes, err := s.store.LoadRecipes()
	if err != nil {
		s.fail(w, err, http.StatusInternalServerError)
		return
	}
	ingredients, err := s.store.LoadIngredients()
	if err != nil {
		s.fail(w, err, http.StatusInternalServerError)
		return
	}
	s.render(w, "items.html", itemsPage{Recipes: recipes, Ingredients: ingredients})
}

func (s *Server) handleItemUpsert(w http.ResponseWriter, r *http.Request) {
	item := r.FormValue("item")
	ingredient := r.FormValue("ingredient")
	amount, err := strconv.ParseFloat(r.FormValue("amount"), 64)
	if item == "" || ingredient == "" || err != nil || amount <= 0 {
		s.fail(w, fmt.Errorf("invalid recipe form"), http.StatusBadRequest)
		return
	}

	catalog, err := s.store.LoadIngredients()
	if err != nil {
		s.fail(w, err, http.StatusInternalServerError)
		return
	}
	if !containsIngredient(catalog, ingredient) {
		s.fail(w, fmt.Errorf("unknown ingredient %q", ingredient), http.StatusBadRequest)
		return
	}

	recipes, err := s.store.LoadRecipes()
	if err != nil {
		s.fail(w, err, http.StatusInternalServerError)
		return
	}
	recipes = costing.UpsertRecipeLine(recipes, costing.RecipeLine{Item: item, Ingredient: ingredient, Amount: amount})
	if err := s.store.SaveRecipes(recipes); err != nil {
		s.fail(w, err, http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/items", http.StatusSeeOther)
}

func (s *Server) handleItemDelete(w http.ResponseWriter, r *http.Request) {
	item := r.FormValue("item")

	recipes, err := s.store.LoadRecipes()
	if err != nil {
		s.fail(w, err, http.StatusInternalServerError)
		return
	}
	records, err := s.store.LoadTimeCosts()
	if err != nil {
		s.fail(w, err, http.StatusInternalServerError)
		return
	}

	recipes, records = costing.RemoveItem(recipes, records, item)
	if err := s.store.SaveRecipes(recipes); err != nil {
		s.fail(w, err, http.StatusInternalServerError)
		return
	}
	if err := s.store.SaveTimeCosts(records); err != nil {
		s.fail(w, err, http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/items", http.StatusSeeOther)
}

type timeCostsPage struct {
	TimeCosts []costing.TimeCost
	Items     []string
	BaseWage  float64
}

func (s *Server) handleTimeCosts(w http.ResponseWriter, r *http.Request) {
	records, err := s.store.LoadTimeCosts()
	if err != nil {
		s.fail(w, err, http.StatusInternalServerError)
		return
	}
	recipes, err := s.store.LoadRecipes()
	if err != nil {
		s.fail(w, err, http.StatusInternalServerError)
		return
	}
	wage, err := s.store.LoadBaseWage()
	if err != nil {
		s.fail(w, err, http.StatusInternalServerError)
		return
	}
	s.render(w, "timecosts.html", timeCostsPage{
		TimeCosts: records,
		Items:     itemNames(recipes),
		BaseWage:  wage,
	})
}

func (s *Server) handleBaseWage(w http.ResponseWriter, r *http.Request) {
	wage, err := strconv.ParseFloat(r.FormValue("wage"), 64)
	if err != nil || wage <= 0 {
		s.fail(w, fmt.Errorf("invalid wage"), http.StatusBadRequest)
		return
	}
	if err := s.store.SaveBaseWage(wage); err != nil {
		s.fail(w, err, http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/timecosts", http.StatusSeeOther)
}

func (s *Server) handleTimeCostUpsert(w http.ResponseWriter, r *http.Request) {
	item := r.FormValue("item")
	portions, perr := strconv.Atoi(r.FormValue("portions"))
	minutes, merr := strconv.ParseFloat(r.FormValue("minutes"), 64)
	if item == "" || perr != nil || merr != nil || minutes < 0 {
		s.fail(w, fmt.Errorf("invalid time cost form"), http.StatusBadRequest)
		return
	}

	recipes, err := s.store.LoadRecipes()
	if err != nil {
		s.fail(w, err, http.StatusInternalServerError)
		return
	}
	catalog, err := s.store.LoadIngredients()
	if err != nil {
		s.fail(w, err, http.StatusInternalServerError)
		return
	}
	wage, err := s.store.LoadBaseWage()
	if err != nil {
		s.fail(w, err, http.StatusInternalServerError)
		return
	}

	itemCost, err := costing.ItemCost(recipes, catalog, item)
	if err != nil {
		s.fail(w, err, http.StatusBadRequest)
		return
	}
	tc, err := costing.ComputeTimeCost(item, portions, minutes, itemCost, wage)
	if err != nil {
		s.fail(w, err, http.StatusBadRequest)
		return
	}

	records, err := s.store.LoadTimeCosts()
	if err != nil {
		s.fail(w, err, http.StatusInternalServerError)
		return
	}
	if err := s.store.SaveTimeCosts(costing.UpsertTimeCost(records, tc)); err != nil {
		s.fail(w, err, http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/timecosts", http.StatusSeeOther)
}

func (s *Server) handleTimeCostDelete(w http.ResponseWriter, r *http.Request) {
	item := r.FormValue("item")

	records, err := s.store.LoadTimeCosts()
	if err != nil {
		s.fail(w, err, http.StatusInternalServerError)
		return
	}
	kept := records[:0]
	for _, tc := range records {
		if tc.Item != item {
			kept = append(kept, tc)
		}
	}
	if err := s.store.SaveTimeCosts(kept); err != nil {
		s.fail(w, err, http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/timecosts", http.StatusSeeOther)
}

type quotePage struct {
	TimeCosts   []costing.TimeCost
	Lines       []costing.QuoteLine
	TotalCost   float64
	TotalPrice  float64
	TotalProfit float64
}

func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	records, err := s.store.LoadTimeCosts()
	if err != nil {
		s.fail(w, err, http.StatusInternalServerError)
		return
	}
	lines, err := s.store.LoadQuoteResults()
	if err != nil {
		s.fail(w, err, http.StatusInternalServerError)
		return
	}
	s.render(w, "quote.html", buildQuotePage(records, lines))
}

// handleQuoteCompute prices the submitted order. The form carries parallel
// "item" and "qty" fields; zero quantities are skipped.
func (s *Server) handleQuoteCompute(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.fail(w, err, http.StatusBadRequest)
		return
	}
	items := r.Form["item"]
	qtys := r.Form["qty"]
	if len(items) == 0 || len(items) != len(qtys) {
		s.fail(w, fmt.Errorf("invalid quote form"), http.StatusBadRequest)
		return
	}

	records, err := s.store.LoadTimeCosts()
	if err != nil {
		s.fail(w, err, http.StatusInternalServerError)
		return
	}
	byItem := make(map[string]costing.TimeCost, len(records))
	for _, tc := range records {
		byItem[tc.Item] = tc
	}

	var lines []costing.QuoteLine
	for i, item := range items {
		qty, err := strconv.Atoi(qtys[i])
		if err != nil || qty < 0 {
			s.fail(w, fmt.Errorf("invalid quantity %q for %q", qtys[i], item), http.StatusBadRequest)
			return
		}
		if qty == 0 {
			continue
		}
		tc, ok := byItem[item]
		if !ok {
			s.fail(w, fmt.Errorf("no time cost defined for %q", item), http.StatusBadRequest)
			return
		}
		lines = append(lines, costing.BuildQuote(tc, qty))
	}

	if err := s.store.SaveQuoteResults(lines); err != nil {
		s.fail(w, err, http.StatusInternalServerError)
		return
	}
	s.render(w, "quote.html", buildQuotePage(records, lines))
}

func buildQuotePage(records []costing.TimeCost, lines []costing.QuoteLine) quotePage {
	page := quotePage{TimeCosts: records, Lines: lines}
	for _, q := range lines {
		page.TotalCost += q.TotalCost
		page.TotalPrice += q.TotalPrice
		page.TotalProfit += q.TotalProfit
	}
	page.TotalCost = costing.Round2(page.TotalCost)
	page.TotalPrice = costing.Round2(page.TotalPrice)
	page.TotalProfit = costing.Round2(page.TotalProfit)
	return page
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func containsIngredient(catalog []costing.Ingredient, name string) bool {
	for _, ing := range catalog {
		if ing.Name == name {
			return true
		}
	}
	return false
}

func itemNames(recipes []costing.RecipeLine) []string {
	seen := make(map[string]bool)
	var names []string
	for _, line := range recipes {
		if !seen[line.Item] {
			seen[line.Item] = true
			names = append(names, line.Item)
		}
	}
	return names
}

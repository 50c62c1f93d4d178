package service

import "github.com/remi/mealtrack/internal/domain"

// ComputeTotals folds a meal's items into per-meal nutrient sums. It is a
// pure function with no failure mode: an empty sequence yields all-zero
// totals. Totals are re-derived on every read and never stored, so they
// cannot drift from the items they summarize.
// Parameters:
//   - items: the meal's currently stored items.
// Returns:
//   - domain.Aggregate: field-wise sums of the four nutrient fields.
func ComputeTotals(items []domain.MealItem) domain.Aggregate {
	var agg domain.Aggregate
	for _, item := range items {
		agg.Calories += item.Calories
		agg.Proteins += item.Proteins
		agg.Carbs += item.Carbs
		agg.Fats += item.Fats
	}
	return agg
}

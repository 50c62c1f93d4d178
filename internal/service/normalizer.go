package service

import (
	"math"
	"strings"

	"github.com/remi/mealtrack/internal/domain"
	"github.com/remi/mealtrack/internal/lookup"
)

// Normalization is pure: no I/O, deterministic for a given input, never an
// error. Defaulting of missing nutrient codes to zero happens here, once,
// at ingestion, so stored data is always fully populated and downstream
// consumers never re-apply defaults. Rounding also happens here (whole
// kcal, whole grams) so stored totals are stable and round-trip exactly.

// NormalizeParserHints converts raw parser hints into canonical food
// records, preserving order. Text and barcode lookups share this path; a
// malformed or empty input normalizes to an empty sequence rather than
// failing.
// Parameters:
//   - hints: raw hints from a parser response; may be nil.
// Returns:
//   - []domain.FoodRecord: one record per usable hint.
func NormalizeParserHints(hints []lookup.Hint) []domain.FoodRecord {
	records := make([]domain.FoodRecord, 0, len(hints))
	for _, hint := range hints {
		label := strings.TrimSpace(hint.Food.Label)
		if label == "" {
			// A hint without a label cannot become a meal item
			continue
		}
		records = append(records, domain.FoodRecord{
			ExternalFoodID: hint.Food.FoodID,
			Label:          label,
			ImageURL:       hint.Food.Image,
			Nutrients:      normalizeNutrients(hint.Food.Nutrients),
		})
	}
	return records
}

// NormalizeAutocomplete converts bare label suggestions into canonical
// food records with no external ID and all-zero nutrients. Such records
// signal "needs enrichment": the caller is expected to run a follow-up
// parser lookup by label before persisting one.
// Parameters:
//   - labels: suggestion strings; may be nil.
// Returns:
//   - []domain.FoodRecord: one zero-nutrient record per non-blank label.
func NormalizeAutocomplete(labels []string) []domain.FoodRecord {
	records := make([]domain.FoodRecord, 0, len(labels))
	for _, label := range labels {
		label = strings.TrimSpace(label)
		if label == "" {
			continue
		}
		records = append(records, domain.FoodRecord{Label: label})
	}
	return records
}

// normalizeNutrients maps Edamam nutrient codes onto the canonical four
// fields. Missing codes default to zero; negative source values clamp to
// zero so a record coming out of normalization is always storable.
func normalizeNutrients(raw map[string]float64) domain.Nutrients {
	return domain.Nutrients{
		Calories: int(roundNonNegative(raw[lookup.NutrientEnergy])),
		Proteins: roundNonNegative(raw[lookup.NutrientProtein]),
		Carbs:    roundNonNegative(raw[lookup.NutrientCarbs]),
		Fats:     roundNonNegative(raw[lookup.NutrientFat]),
	}
}

func roundNonNegative(v float64) float64 {
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	return math.Round(v)
}

package domain

// Nutrients is the canonical four-field nutrient set. Calories are whole
// kcal, macros are whole grams; the normalizer rounds at ingestion so
// stored values round-trip exactly.
type Nutrients struct {
	Calories int     `json:"calories"`
	Proteins float64 `json:"proteins"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
}

// FoodRecord is the normalized representation of a food produced from an
// external lookup result, prior to persistence. It is constructed fresh per
// response, never mutated, and discarded after being copied into a MealItem.
// A record with an empty ExternalFoodID and all-zero nutrients comes from
// an autocomplete suggestion and needs enrichment before persistence.
type FoodRecord struct {
	ExternalFoodID string    `json:"external_food_id"`
	Label          string    `json:"label"`
	ImageURL       string    `json:"image_url,omitempty"`
	Nutrients      Nutrients `json:"nutrients"`
}

// NeedsEnrichment reports whether the record carries no nutrient data and
// should trigger a follow-up parser lookup by label before persistence.
// Parameters: none.
// Returns:
//   - bool: true when the record has no external ID and all-zero nutrients.
func (r FoodRecord) NeedsEnrichment() bool {
	return r.ExternalFoodID == "" && r.Nutrients == (Nutrients{})
}

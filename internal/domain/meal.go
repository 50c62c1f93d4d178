package domain

// Meal is a user-defined named, dated collection of food items.
// The date is an ISO-8601 calendar date string (YYYY-MM-DD); ordering by
// date is lexicographic, which matches chronological order for this format.
type Meal struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"type:text;not null" json:"name"`
	Date string `gorm:"type:text;not null;index:idx_meals_date" json:"date"`
}

// TableName returns the database table name for Meal.
// Parameters: none.
// Returns:
//   - string: table name for GORM mapping.
func (Meal) TableName() string {
	return "meals"
}

// MealItem is one food entry belonging to exactly one meal, carrying the
// nutrient snapshot taken at ingestion time. ExternalFoodID is the opaque
// identifier from the lookup service and is empty for freeform entries.
// Nutrients are stored fully populated: calories in whole kcal, macros in
// whole grams, rounded once by the normalizer before persistence.
type MealItem struct {
	ID             uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	MealID         uint    `gorm:"not null;index:idx_meal_items_meal" json:"meal_id"`
	ExternalFoodID string  `gorm:"type:text" json:"external_food_id"`
	Name           string  `gorm:"type:text;not null" json:"name"`
	Calories       int     `gorm:"not null" json:"calories"`
	Proteins       float64 `gorm:"not null" json:"proteins"`
	Carbs          float64 `gorm:"not null" json:"carbs"`
	Fats           float64 `gorm:"not null" json:"fats"`

	Meal Meal `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// TableName returns the database table name for MealItem.
// Parameters: none.
// Returns:
//   - string: table name for GORM mapping.
func (MealItem) TableName() string {
	return "meal_items"
}

// Aggregate holds the per-meal sums of the four nutrient fields. It is
// always derived from the currently stored items and never persisted.
type Aggregate struct {
	Calories int     `json:"calories"`
	Proteins float64 `json:"proteins"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
}

package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/remi/mealtrack/internal/domain"
)

// dateLayout is the ISO-8601 calendar date format meals are keyed by.
const dateLayout = "2006-01-02"

// MealRepository handles meal and meal item data operations. All mutations
// run against a single-writer embedded store; meal deletion cascades to the
// meal's items inside one transaction so no orphaned item can survive an
// interruption.
type MealRepository struct {
	db *gorm.DB
}

// NewMealRepository creates a new MealRepository.
// Parameters:
//   - db: GORM database handle used for queries.
// Returns:
//   - *MealRepository: repository instance bound to db.
func NewMealRepository(db *gorm.DB) *MealRepository {
	return &MealRepository{db: db}
}

// AddItemParams carries the fields used to create a meal item, either
// copied from a normalized FoodRecord or entered manually. Nutrients not
// supplied default to zero.
type AddItemParams struct {
	ExternalFoodID string
	Name           string
	Calories       int
	Proteins       float64
	Carbs          float64
	Fats           float64
}

// FromFoodRecord builds AddItemParams from a normalized food record.
// Parameters:
//   - rec: normalized lookup result.
// Returns:
//   - AddItemParams: item fields ready for insertion.
func FromFoodRecord(rec domain.FoodRecord) AddItemParams {
	return AddItemParams{
		ExternalFoodID: rec.ExternalFoodID,
		Name:           rec.Label,
		Calories:       rec.Nutrients.Calories,
		Proteins:       rec.Nutrients.Proteins,
		Carbs:          rec.Nutrients.Carbs,
		Fats:           rec.Nutrients.Fats,
	}
}

// CreateMeal inserts a new meal and returns its store-assigned ID.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - name: meal name, must be non-empty after trimming.
//   - date: ISO-8601 calendar date (YYYY-MM-DD).
// Returns:
//   - uint: newly assigned meal ID.
//   - error: domain.ValidationError on bad input, storage error otherwise.
func (r *MealRepository) CreateMeal(ctx context.Context, name, date string) (uint, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, domain.NewValidationError("name", "must not be empty")
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return 0, domain.NewValidationError("date", "must be an ISO-8601 calendar date (YYYY-MM-DD)")
	}

	meal := domain.Meal{Name: name, Date: date}
	if err := r.db.WithContext(ctx).Create(&meal).Error; err != nil {
		return 0, err
	}
	return meal.ID, nil
}

// DeleteMeal removes a meal and all of its items as one atomic unit.
// Deleting a meal that does not exist is a no-op, not an error.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - mealID: meal to delete.
// Returns:
//   - error: non-nil if the transaction fails.
func (r *MealRepository) DeleteMeal(ctx context.Context, mealID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("meal_id = ?", mealID).Delete(&domain.MealItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Meal{}, mealID).Error
	})
}

// AddItem inserts a meal item against an existing meal.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - mealID: owning meal; must reference a live meal.
//   - params: item fields; name must be non-empty, nutrients non-negative.
// Returns:
//   - uint: newly assigned item ID.
//   - error: domain.ValidationError on bad input, storage error otherwise.
func (r *MealRepository) AddItem(ctx context.Context, mealID uint, params AddItemParams) (uint, error) {
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return 0, domain.NewValidationError("name", "must not be empty")
	}
	if params.Calories < 0 {
		return 0, domain.NewValidationError("calories", "must not be negative")
	}
	if params.Proteins < 0 || params.Carbs < 0 || params.Fats < 0 {
		return 0, domain.NewValidationError("nutrients", "must not be negative")
	}

	var item domain.MealItem
	// The existence check and the insert share one transaction so the item
	// can never be created against a meal deleted in between.
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&domain.Meal{}).Where("id = ?", mealID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return domain.NewValidationError("meal_id", "meal does not exist")
		}

		item = domain.MealItem{
			MealID:         mealID,
			ExternalFoodID: params.ExternalFoodID,
			Name:           name,
			Calories:       params.Calories,
			Proteins:       params.Proteins,
			Carbs:          params.Carbs,
			Fats:           params.Fats,
		}
		return tx.Create(&item).Error
	})
	if err != nil {
		return 0, err
	}
	return item.ID, nil
}

// DeleteItem removes a meal item. Removing a non-existent item is a no-op.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - itemID: item to delete.
// Returns:
//   - error: non-nil if the delete fails.
func (r *MealRepository) DeleteItem(ctx context.Context, itemID uint) error {
	return r.db.WithContext(ctx).Delete(&domain.MealItem{}, itemID).Error
}

// ListMeals retrieves all meals ordered newest date first, ties broken by
// descending insertion ID. The ordering is stable and deterministic so the
// UI reproduces the same list across reads.
// Parameters:
//   - ctx: context for cancellation and deadlines.
// Returns:
//   - []domain.Meal: meals in display order.
//   - error: non-nil if the query fails.
func (r *MealRepository) ListMeals(ctx context.Context) ([]domain.Meal, error) {
	var meals []domain.Meal
	if err := r.db.WithContext(ctx).
		Order("date DESC").
		Order("id DESC").
		Find(&meals).Error; err != nil {
		return nil, err
	}
	return meals, nil
}

// GetMealWithItems retrieves a meal and its items in insertion order.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - mealID: meal to fetch.
// Returns:
//   - *domain.Meal: the meal row.
//   - []domain.MealItem: the meal's items, insertion order.
//   - error: domain.NotFoundError if the meal does not exist.
func (r *MealRepository) GetMealWithItems(ctx context.Context, mealID uint) (*domain.Meal, []domain.MealItem, error) {
	var meal domain.Meal
	var items []domain.MealItem

	// Both reads run in one transaction so a concurrent cascade delete is
	// observed either entirely or not at all.
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&meal, mealID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NewNotFoundError("meal", mealID)
			}
			return err
		}
		return tx.Where("meal_id = ?", mealID).Order("id ASC").Find(&items).Error
	})
	if err != nil {
		return nil, nil, err
	}
	return &meal, items, nil
}

// CountItems returns the number of items stored for a meal. Used by tests
// and diagnostics to assert the cascade invariant.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - mealID: owning meal.
// Returns:
//   - int64: number of stored items.
//   - error: non-nil if the query fails.
func (r *MealRepository) CountItems(ctx context.Context, mealID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.MealItem{}).Where("meal_id = ?", mealID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

package service

import (
	"context"

	"github.com/remi/mealtrack/internal/domain"
	"github.com/remi/mealtrack/internal/logger"
	"github.com/remi/mealtrack/internal/repository"
)

// MealSummary is a meal with its derived nutrient totals. Totals are
// computed at read time from the stored items and are never persisted.
type MealSummary struct {
	domain.Meal
	Totals domain.Aggregate `json:"totals"`
}

// MealDetail is a meal with its items and derived totals.
type MealDetail struct {
	domain.Meal
	Items  []domain.MealItem `json:"items"`
	Totals domain.Aggregate  `json:"totals"`
}

// MealService implements the meal use-cases over the repository, attaching
// freshly computed aggregates to every read.
type MealService struct {
	repo *repository.MealRepository
}

// NewMealService creates a new MealService.
// Parameters:
//   - repo: meal repository instance.
// Returns:
//   - *MealService: initialized service.
func NewMealService(repo *repository.MealRepository) *MealService {
	return &MealService{repo: repo}
}

// CreateMeal creates a new empty meal.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - name: meal name.
//   - date: ISO-8601 calendar date.
// Returns:
//   - uint: new meal ID.
//   - error: domain.ValidationError on bad input.
func (s *MealService) CreateMeal(ctx context.Context, name, date string) (uint, error) {
	id, err := s.repo.CreateMeal(ctx, name, date)
	if err != nil {
		return 0, err
	}
	logger.FromContext(ctx).WithField(logger.FieldMealID, id).Infof("Meal created: %s on %s", name, date)
	return id, nil
}

// DeleteMeal deletes a meal and all of its items. Idempotent.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - mealID: meal to delete.
// Returns:
//   - error: non-nil if the delete fails.
func (s *MealService) DeleteMeal(ctx context.Context, mealID uint) error {
	return s.repo.DeleteMeal(ctx, mealID)
}

// AddRecord persists a normalized food record as an item of a meal.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - mealID: owning meal.
//   - rec: normalized food record selected by the user.
// Returns:
//   - uint: new item ID.
//   - error: domain.ValidationError if the meal does not exist.
func (s *MealService) AddRecord(ctx context.Context, mealID uint, rec domain.FoodRecord) (uint, error) {
	return s.repo.AddItem(ctx, mealID, repository.FromFoodRecord(rec))
}

// AddItem persists a manually entered item of a meal.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - mealID: owning meal.
//   - params: item fields.
// Returns:
//   - uint: new item ID.
//   - error: domain.ValidationError on bad input.
func (s *MealService) AddItem(ctx context.Context, mealID uint, params repository.AddItemParams) (uint, error) {
	return s.repo.AddItem(ctx, mealID, params)
}

// DeleteItem removes one item from its meal. Idempotent.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - itemID: item to delete.
// Returns:
//   - error: non-nil if the delete fails.
func (s *MealService) DeleteItem(ctx context.Context, itemID uint) error {
	return s.repo.DeleteItem(ctx, itemID)
}

// ListMeals returns all meals, newest date first, each with totals derived
// from its current items.
// Parameters:
//   - ctx: context for cancellation and deadlines.
// Returns:
//   - []MealSummary: meals with totals in display order.
//   - error: non-nil if a read fails.
func (s *MealService) ListMeals(ctx context.Context) ([]MealSummary, error) {
	meals, err := s.repo.ListMeals(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]MealSummary, 0, len(meals))
	for _, meal := range meals {
		_, items, err := s.repo.GetMealWithItems(ctx, meal.ID)
		if err != nil {
			// The meal may have been deleted between the two reads
			if domain.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		summaries = append(summaries, MealSummary{Meal: meal, Totals: ComputeTotals(items)})
	}
	return summaries, nil
}

// GetMeal returns one meal with its items and derived totals.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - mealID: meal to fetch.
// Returns:
//   - *MealDetail: meal, items in insertion order, and totals.
//   - error: domain.NotFoundError if the meal does not exist.
func (s *MealService) GetMeal(ctx context.Context, mealID uint) (*MealDetail, error) {
	meal, items, err := s.repo.GetMealWithItems(ctx, mealID)
	if err != nil {
		return nil, err
	}
	return &MealDetail{
		Meal:   *meal,
		Items:  items,
		Totals: ComputeTotals(items),
	}, nil
}

package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/remi/mealtrack/internal/repository"
	"github.com/remi/mealtrack/internal/service"
)

// MealHandler handles meal and meal item endpoints.
type MealHandler struct {
	meals *service.MealService
}

// NewMealHandler creates a new meal handler.
// Parameters:
//   - meals: meal service instance.
// Returns:
//   - *MealHandler: initialized handler.
func NewMealHandler(meals *service.MealService) *MealHandler {
	return &MealHandler{meals: meals}
}

type createMealRequest struct {
	Name string `json:"name"`
	Date string `json:"date"`
}

// addItemRequest carries either a selected food record's fields or a
// manual entry. Omitted nutrients default to zero.
type addItemRequest struct {
	ExternalFoodID string  `json:"external_food_id"`
	Name           string  `json:"name"`
	Calories       int     `json:"calories"`
	Proteins       float64 `json:"proteins"`
	Carbs          float64 `json:"carbs"`
	Fats           float64 `json:"fats"`
}

// CreateMeal handles POST /api/v1/meals.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *MealHandler) CreateMeal(c *gin.Context) {
	var req createMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	id, err := h.meals.CreateMeal(c.Request.Context(), req.Name, req.Date)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// ListMeals handles GET /api/v1/meals.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *MealHandler) ListMeals(c *gin.Context) {
	meals, err := h.meals.ListMeals(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"meals": meals})
}

// GetMeal handles GET /api/v1/meals/:id.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *MealHandler) GetMeal(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	detail, err := h.meals.GetMeal(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// DeleteMeal handles DELETE /api/v1/meals/:id. Idempotent: deleting a
// missing meal still returns 204.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *MealHandler) DeleteMeal(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.meals.DeleteMeal(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddItem handles POST /api/v1/meals/:id/items.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *MealHandler) AddItem(c *gin.Context) {
	mealID, ok := parseID(c)
	if !ok {
		return
	}

	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	itemID, err := h.meals.AddItem(c.Request.Context(), mealID, repository.AddItemParams{
		ExternalFoodID: req.ExternalFoodID,
		Name:           req.Name,
		Calories:       req.Calories,
		Proteins:       req.Proteins,
		Carbs:          req.Carbs,
		Fats:           req.Fats,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": itemID})
}

// DeleteItem handles DELETE /api/v1/items/:id. Idempotent.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *MealHandler) DeleteItem(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.meals.DeleteItem(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// parseID reads the :id path parameter as an unsigned integer, writing a
// 400 response on failure.
func parseID(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

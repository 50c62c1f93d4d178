package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/remi/mealtrack/internal/domain"
	"github.com/remi/mealtrack/internal/service"
)

// FoodHandler handles food lookup endpoints.
type FoodHandler struct {
	search *service.FoodSearchService
}

// NewFoodHandler creates a new food handler.
// Parameters:
//   - search: food search service instance.
// Returns:
//   - *FoodHandler: initialized handler.
func NewFoodHandler(search *service.FoodSearchService) *FoodHandler {
	return &FoodHandler{search: search}
}

// Search handles GET /api/v1/foods/search. Accepts either ?q= for a text
// lookup or ?barcode= for a barcode lookup; an empty result is a 200 with
// an empty list, never an error.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *FoodHandler) Search(c *gin.Context) {
	query := c.Query("q")
	barcode := c.Query("barcode")

	if query == "" && barcode == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q or barcode is required"})
		return
	}

	ctx := c.Request.Context()
	var records []domain.FoodRecord
	var err error
	if barcode != "" {
		records, err = h.search.SearchBarcode(ctx, barcode)
	} else {
		records, err = h.search.SearchText(ctx, query)
	}
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"foods": records})
}

// Autocomplete handles GET /api/v1/foods/autocomplete. Each suggestion is
// a label-only record with zero nutrients; the UI is expected to run a
// full search on selection before adding it to a meal.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *FoodHandler) Autocomplete(c *gin.Context) {
	prefix := c.Query("q")
	if prefix == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q is required"})
		return
	}

	records, err := h.search.Suggest(c.Request.Context(), prefix)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": records})
}

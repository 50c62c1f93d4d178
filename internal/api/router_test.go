package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/remi/mealtrack/internal/api/middleware"
	"github.com/remi/mealtrack/internal/config"
	"github.com/remi/mealtrack/internal/lookup"
	"github.com/remi/mealtrack/internal/repository"
	"github.com/remi/mealtrack/internal/service"
)

// stubGateway serves canned parser responses without a network.
type stubGateway struct {
	hints []lookup.Hint
}

func (s *stubGateway) SearchByText(_ context.Context, _ string) (*lookup.ParserResponse, error) {
	return &lookup.ParserResponse{Hints: s.hints}, nil
}

func (s *stubGateway) SearchByBarcode(_ context.Context, _ string) (*lookup.ParserResponse, error) {
	return &lookup.ParserResponse{Hints: s.hints}, nil
}

func (s *stubGateway) Autocomplete(_ context.Context, _ string) ([]string, error) {
	return []string{"apple", "apple pie"}, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	db, err := repository.InitDB(&config.DatabaseConfig{
		Path:            ":memory:",
		AutoMigrate:     true,
		MaxIdleConns:    1,
		MaxOpenConns:    1,
		ConnMaxLifetime: time.Hour,
	})
	if err != nil {
		t.Fatalf("failed to initialize test store: %v", err)
	}

	mealService := service.NewMealService(repository.NewMealRepository(db))
	foodSearch := service.NewFoodSearchService(&stubGateway{
		hints: []lookup.Hint{
			{Food: lookup.Food{
				FoodID: "a1",
				Label:  "Apple",
				Nutrients: map[string]float64{
					"ENERC_KCAL": 95.4,
					"PROCNT":     0.3,
					"CHOCDF":     25.1,
					"FAT":        0.2,
				},
			}},
		},
	})

	return SetupRouter(mealService, foodSearch, middleware.CORSConfig{AllowAllOrigins: true}, "test")
}

func doJSON(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestMealLifecycle(t *testing.T) {
	router := newTestRouter(t)

	// Create a meal
	w := doJSON(t, router, http.MethodPost, "/api/v1/meals", map[string]string{
		"name": "Lunch",
		"date": "2024-05-01",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var created struct {
		ID uint `json:"id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	// Add an item carrying normalized (rounded) nutrients
	w = doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/v1/meals/%d/items", created.ID), map[string]interface{}{
		"external_food_id": "a1",
		"name":             "Apple",
		"calories":         95,
		"carbs":            25,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	// Read the meal back with derived totals
	w = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/v1/meals/%d", created.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var detail struct {
		Name   string `json:"name"`
		Items  []struct {
			Name     string  `json:"name"`
			Calories int     `json:"calories"`
			Carbs    float64 `json:"carbs"`
		} `json:"items"`
		Totals struct {
			Calories int     `json:"calories"`
			Carbs    float64 `json:"carbs"`
		} `json:"totals"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &detail); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(detail.Items) != 1 || detail.Items[0].Name != "Apple" {
		t.Fatalf("unexpected items: %+v", detail.Items)
	}
	if detail.Totals.Calories != 95 || detail.Totals.Carbs != 25 {
		t.Errorf("unexpected totals: %+v", detail.Totals)
	}

	// Delete the meal; read must 404, repeat delete stays 204
	w = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/v1/meals/%d", created.ID), nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	w = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/v1/meals/%d", created.ID), nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", w.Code)
	}
	w = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/v1/meals/%d", created.ID), nil)
	if w.Code != http.StatusNoContent {
		t.Errorf("expected idempotent delete to return 204, got %d", w.Code)
	}
}

func TestValidationErrorsMapTo400(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
	}{
		{
			name:   "empty meal name",
			method: http.MethodPost,
			path:   "/api/v1/meals",
			body:   map[string]string{"name": "  ", "date": "2024-05-01"},
		},
		{
			name:   "bad date",
			method: http.MethodPost,
			path:   "/api/v1/meals",
			body:   map[string]string{"name": "Lunch", "date": "yesterday"},
		},
		{
			name:   "item against nonexistent meal",
			method: http.MethodPost,
			path:   "/api/v1/meals/999/items",
			body:   map[string]interface{}{"name": "Apple"},
		},
		{
			name:   "negative nutrients",
			method: http.MethodPost,
			path:   "/api/v1/meals/999/items",
			body:   map[string]interface{}{"name": "Apple", "calories": -5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, router, tt.method, tt.path, tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d: %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestListMealsNewestFirst(t *testing.T) {
	router := newTestRouter(t)

	for _, meal := range []map[string]string{
		{"name": "Older", "date": "2024-04-30"},
		{"name": "Newer", "date": "2024-05-02"},
	} {
		if w := doJSON(t, router, http.MethodPost, "/api/v1/meals", meal); w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
	}

	w := doJSON(t, router, http.MethodGet, "/api/v1/meals", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp struct {
		Meals []struct {
			Name string `json:"name"`
		} `json:"meals"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Meals) != 2 || resp.Meals[0].Name != "Newer" {
		t.Errorf("expected newest meal first, got %+v", resp.Meals)
	}
}

func TestFoodSearchNormalizesAtTheBoundary(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/v1/foods/search?q=apple", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Foods []struct {
			ExternalFoodID string `json:"external_food_id"`
			Nutrients      struct {
				Calories int     `json:"calories"`
				Carbs    float64 `json:"carbs"`
			} `json:"nutrients"`
		} `json:"foods"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Foods) != 1 {
		t.Fatalf("expected 1 food, got %d", len(resp.Foods))
	}
	if resp.Foods[0].Nutrients.Calories != 95 || resp.Foods[0].Nutrients.Carbs != 25 {
		t.Errorf("expected rounded nutrients, got %+v", resp.Foods[0].Nutrients)
	}

	w = doJSON(t, router, http.MethodGet, "/api/v1/foods/search", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 without q or barcode, got %d", w.Code)
	}
}

func TestAutocompleteReturnsLabelOnlyRecords(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/v1/foods/autocomplete?q=app", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp struct {
		Suggestions []struct {
			Label          string `json:"label"`
			ExternalFoodID string `json:"external_food_id"`
			Nutrients      struct {
				Calories int `json:"calories"`
			} `json:"nutrients"`
		} `json:"suggestions"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Suggestions) != 2 {
		t.Fatalf("expected 2 suggestions, got %d", len(resp.Suggestions))
	}
	for _, s := range resp.Suggestions {
		if s.ExternalFoodID != "" || s.Nutrients.Calories != 0 {
			t.Errorf("expected label-only record, got %+v", s)
		}
	}
}

package api

import (
	"github.com/gin-gonic/gin"

	"github.com/remi/mealtrack/internal/api/handler"
	"github.com/remi/mealtrack/internal/api/middleware"
	"github.com/remi/mealtrack/internal/logger"
	"github.com/remi/mealtrack/internal/service"
)

// SetupRouter configures the Gin router with all routes
func SetupRouter(
	mealService *service.MealService,
	foodSearch *service.FoodSearchService,
	cors middleware.CORSConfig,
	mode string,
) *gin.Engine {
	// Set Gin mode
	switch mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()

	// Add middleware
	r.Use(gin.Recovery())
	r.Use(middleware.LoggerMiddleware(logger.GetDefault()))
	r.Use(middleware.CORS(cors))

	// Create handlers
	healthHandler := handler.NewHealthHandler()
	mealHandler := handler.NewMealHandler(mealService)
	foodHandler := handler.NewFoodHandler(foodSearch)

	// Health check
	r.GET("/health", healthHandler.Health)

	// API v1 routes
	v1 := r.Group("/api/v1")
	{
		// Meals
		v1.POST("/meals", mealHandler.CreateMeal)
		v1.GET("/meals", mealHandler.ListMeals)
		v1.GET("/meals/:id", mealHandler.GetMeal)
		v1.DELETE("/meals/:id", mealHandler.DeleteMeal)

		// Meal items
		v1.POST("/meals/:id/items", mealHandler.AddItem)
		v1.DELETE("/items/:id", mealHandler.DeleteItem)

		// Food lookup
		v1.GET("/foods/search", foodHandler.Search)
		v1.GET("/foods/autocomplete", foodHandler.Autocomplete)
	}

	return r
}

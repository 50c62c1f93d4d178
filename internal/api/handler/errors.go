package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/remi/mealtrack/internal/domain"
	"github.com/remi/mealtrack/internal/lookup"
)

// writeError maps the domain error taxonomy onto HTTP status codes:
// ValidationError -> 400, NotFoundError -> 404, transient lookup failures
// -> 502, anything else -> 500.
func writeError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case domain.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case isTransientLookup(err):
		c.JSON(http.StatusBadGateway, gin.H{"error": "lookup service unavailable"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func isTransientLookup(err error) bool {
	var te *lookup.TransientError
	return errors.As(err, &te)
}

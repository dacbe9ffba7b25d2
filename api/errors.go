package api

import (
	"errors"
	"net/http"

	"github.com/Domenick1991/airsales/internal/domain"
	"github.com/Domenick1991/airsales/internal/validation"
	"github.com/gin-gonic/gin"
)

// statusFor maps domain errors onto HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrSeatsUnavailable):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSONError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}

	var verrs validation.Errors
	if errors.As(err, &verrs) {
		c.JSON(status, gin.H{"error": "validation failed", "fields": verrs})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

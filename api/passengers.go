package api

import (
	"net/http"
	"strconv"

	"github.com/Domenick1991/airsales/internal/repository"
	"github.com/gin-gonic/gin"
)

type PassengerHandler struct {
	passengers repository.PassengerRepository
}

func NewPassengerHandler(passengers repository.PassengerRepository) *PassengerHandler {
	return &PassengerHandler{passengers: passengers}
}

func (h *PassengerHandler) Register(router gin.IRouter) {
	router.GET("/:id", h.get)
}

func (h *PassengerHandler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	passenger, err := h.passengers.GetByID(c.Request.Context(), id)
	if err != nil {
		writeJSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, passenger)
}

package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/Domenick1991/airsales/internal/domain"
	"github.com/Domenick1991/airsales/internal/service/flights"
	"github.com/gin-gonic/gin"
)

type FlightHandler struct {
	service flights.FlightUseCase
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

func (h *FlightHandler) Register(router gin.IRouter) {
	router.GET("", h.list)
	router.GET("/:id", h.get)
}

// list searches when origin and destination are given and lists scheduled flights otherwise.
func (h *FlightHandler) list(c *gin.Context) {
	origin, destination := c.Query("origin"), c.Query("destination")

	var (
		found []domain.Flight
		err   error
	)
	if origin == "" && destination == "" {
		found, err = h.service.ListScheduled(c.Request.Context())
	} else {
		found, err = h.service.Search(c.Request.Context(), origin, destination)
	}
	if err != nil {
		writeJSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, found)
}

func (h *FlightHandler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	flight, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		writeJSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, flight)
}

func normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

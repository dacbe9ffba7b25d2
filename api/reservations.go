package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Domenick1991/airsales/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type ReservationHandler struct {
	service booking.BookingUseCase
}

type createReservationRequest struct {
	PassengerID int64 `json:"passenger_id" binding:"required"`
	FlightID    int64 `json:"flight_id" binding:"required"`
}

type reservationResponse struct {
	ID          int64  `json:"id"`
	Code        string `json:"code"`
	PassengerID int64  `json:"passenger_id"`
	FlightID    int64  `json:"flight_id"`
	Status      string `json:"status"`
	Total       string `json:"total"`
	CreatedAt   string `json:"created_at"`
	VoucherURL  string `json:"voucher_url"`
}

func NewReservationHandler(service booking.BookingUseCase) *ReservationHandler {
	return &ReservationHandler{service: service}
}

func (h *ReservationHandler) Register(router gin.IRouter, bookingLimit gin.HandlerFunc) {
	router.POST("", bookingLimit, h.create)
	router.GET("/:id", h.get)
}

func (h *ReservationHandler) create(c *gin.Context) {
	var req createReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.service.Book(c.Request.Context(), booking.BookInput{
		PassengerID: req.PassengerID,
		FlightID:    req.FlightID,
	})
	if err != nil {
		writeJSONError(c, err)
		return
	}

	c.JSON(http.StatusCreated, reservationResponse{
		ID:          res.ID,
		Code:        res.Code,
		PassengerID: res.PassengerID,
		FlightID:    res.FlightID,
		Status:      string(res.Status),
		Total:       res.Total(),
		CreatedAt:   res.CreatedAt.Format(time.RFC3339),
		VoucherURL:  "/voucher/" + strconv.FormatInt(res.ID, 10),
	})
}

func (h *ReservationHandler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	details, err := h.service.Details(c.Request.Context(), id)
	if err != nil {
		writeJSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

package api

import (
	"context"
	"embed"
	"html/template"
	"net/http"

	"github.com/Domenick1991/airsales/internal/middleware"
	"github.com/Domenick1991/airsales/internal/repository"
	"github.com/Domenick1991/airsales/internal/service/booking"
	"github.com/Domenick1991/airsales/internal/service/flights"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templatesFS embed.FS

type Dependencies struct {
	Flights  flights.FlightUseCase
	Bookings booking.BookingUseCase
	Vouchers VoucherRenderer
	// Passengers backs the read-only passenger lookup; nil leaves the route out.
	Passengers repository.PassengerRepository
	Currency string
	// BookingLimit guards the reservation-creating routes; nil disables it.
	BookingLimit gin.HandlerFunc
	// Health reports backing-store reachability; nil always reports ok.
	Health func(ctx context.Context) error
}

func NewRouter(deps Dependencies) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger())
	r.SetHTMLTemplate(template.Must(template.ParseFS(templatesFS, "templates/*.html")))

	limit := deps.BookingLimit
	if limit == nil {
		limit = func(c *gin.Context) { c.Next() }
	}

	NewPageHandler(deps.Flights, deps.Bookings, deps.Vouchers, deps.Currency).Register(r, limit)

	v1 := r.Group("/api/v1", cors.Default())
	NewFlightHandler(deps.Flights).Register(v1.Group("/flights"))
	NewReservationHandler(deps.Bookings).Register(v1.Group("/reservations"), limit)
	if deps.Passengers != nil {
		NewPassengerHandler(deps.Passengers).Register(v1.Group("/passengers"))
	}

	r.GET("/health", func(c *gin.Context) {
		if deps.Health != nil {
			if err := deps.Health(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return r
}

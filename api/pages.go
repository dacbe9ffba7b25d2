package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Domenick1991/airsales/internal/domain"
	"github.com/Domenick1991/airsales/internal/service/booking"
	"github.com/Domenick1991/airsales/internal/service/flights"
	"github.com/Domenick1991/airsales/internal/voucher"
	"github.com/gin-gonic/gin"
)

const noSeatsNotice = "No hay asientos disponibles para este vuelo."

type VoucherRenderer interface {
	Render(d *domain.ReservationDetails) ([]byte, error)
}

type PageHandler struct {
	flights  flights.FlightUseCase
	bookings booking.BookingUseCase
	vouchers VoucherRenderer
	currency string
}

type page struct {
	Title       string
	Flash       string
	Error       string
	Origin      string
	Destination string
	Flights     []domain.Flight
	Reservation *domain.Reservation
	Currency    string
}

type searchForm struct {
	Origin      string `form:"origen" binding:"required"`
	Destination string `form:"destino" binding:"required"`
}

type reservationForm struct {
	PassengerID int64 `form:"id_pasajero" binding:"required,gt=0"`
	FlightID    int64 `form:"id_vuelo" binding:"required,gt=0"`
}

func NewPageHandler(flightSvc flights.FlightUseCase, bookingSvc booking.BookingUseCase, vouchers VoucherRenderer, currency string) *PageHandler {
	return &PageHandler{flights: flightSvc, bookings: bookingSvc, vouchers: vouchers, currency: currency}
}

func (h *PageHandler) Register(router gin.IRouter, bookingLimit gin.HandlerFunc) {
	router.GET("/", h.index)
	router.POST("/buscar_vuelos", h.search)
	router.GET("/reservas", h.reservations)
	router.POST("/registrores", bookingLimit, h.createReservation)
	router.GET("/voucher/:id", h.voucher)
}

func (h *PageHandler) index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", page{Title: "Inicio", Flash: popFlash(c)})
}

func (h *PageHandler) search(c *gin.Context) {
	var form searchForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "index.html", page{
			Title:       "Inicio",
			Error:       "Ingrese origen y destino.",
			Origin:      form.Origin,
			Destination: form.Destination,
		})
		return
	}

	found, err := h.flights.Search(c.Request.Context(), form.Origin, form.Destination)
	if err != nil {
		h.renderError(c, err)
		return
	}

	// Echo the normalized codes back, as the search used them.
	p := page{Title: "Resultados", Flights: found}
	if len(found) > 0 {
		p.Origin, p.Destination = found[0].Origin, found[0].Destination
	} else {
		p.Origin, p.Destination = normalize(form.Origin), normalize(form.Destination)
	}
	c.HTML(http.StatusOK, "resultados.html", p)
}

func (h *PageHandler) reservations(c *gin.Context) {
	scheduled, err := h.flights.ListScheduled(c.Request.Context())
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.HTML(http.StatusOK, "reserva.html", page{Title: "Reservas", Flash: popFlash(c), Flights: scheduled})
}

func (h *PageHandler) createReservation(c *gin.Context) {
	var form reservationForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "error.html", page{Title: "Solicitud inválida", Error: "Pasajero y vuelo deben ser identificadores numéricos."})
		return
	}

	res, err := h.bookings.Book(c.Request.Context(), booking.BookInput{
		PassengerID: form.PassengerID,
		FlightID:    form.FlightID,
	})
	if errors.Is(err, domain.ErrSeatsUnavailable) {
		setFlash(c, noSeatsNotice)
		c.Redirect(http.StatusSeeOther, "/reservas")
		return
	}
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.HTML(http.StatusOK, "confirmacion.html", page{Title: "Reserva " + res.Code, Reservation: res, Currency: h.currency})
}

func (h *PageHandler) voucher(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.renderError(c, domain.ErrNotFound)
		return
	}

	details, err := h.bookings.Details(c.Request.Context(), id)
	if err != nil {
		h.renderError(c, err)
		return
	}

	doc, err := h.vouchers.Render(details)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+voucher.FileName(details.Reservation.Code)+`"`)
	c.Data(http.StatusOK, voucher.ContentType, doc)
}

func (h *PageHandler) renderError(c *gin.Context, err error) {
	status := statusFor(err)
	title := http.StatusText(status)
	switch status {
	case http.StatusNotFound:
		title = "No encontrado"
	case http.StatusBadRequest:
		title = "Solicitud inválida"
	case http.StatusInternalServerError:
		_ = c.Error(err)
		title = "Error interno"
	}
	p := page{Title: title}
	if status == http.StatusBadRequest {
		p.Error = err.Error()
	}
	c.HTML(status, "error.html", p)
}

package api

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/Domenick1991/airsales/internal/domain"
	"github.com/Domenick1991/airsales/internal/repository"
	"github.com/Domenick1991/airsales/internal/service/booking"
	"github.com/Domenick1991/airsales/internal/service/flights"
	"github.com/Domenick1991/airsales/internal/voucher"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedPricer int64

func (p fixedPricer) Price() int64 { return int64(p) }

type app struct {
	router *gin.Engine
	store  *repository.MemoryStore
	flight domain.Flight
	pass   domain.Passenger
}

func newApp(t *testing.T, seats int) *app {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := repository.NewMemoryStore()
	dep := time.Date(2026, 11, 1, 8, 0, 0, 0, time.UTC)
	f := store.AddFlight(domain.Flight{
		Number: "AA100", Origin: "LIM", Destination: "CUZ", DepartureTime: dep, ArrivalTime: dep.Add(80 * time.Minute),
		Aircraft: "A320", TotalSeats: seats, AvailableSeats: seats,
	})
	store.AddFlight(domain.Flight{
		Number: "AA200", Origin: "LIM", Destination: "AQP", DepartureTime: dep, ArrivalTime: dep.Add(time.Hour),
		TotalSeats: 10, AvailableSeats: 10,
	})
	store.AddFlight(domain.Flight{
		Number: "AA300", Origin: "CUZ", Destination: "LIM", DepartureTime: dep, ArrivalTime: dep.Add(time.Hour),
		TotalSeats: 10, AvailableSeats: 10, Status: domain.FlightStatusCancelled,
	})
	p := store.AddPassenger(domain.Passenger{NationalID: "70123456", FirstNames: "Ana", LastNames: "Quispe", Email: "ana@example.com"})

	router := NewRouter(Dependencies{
		Flights:    flights.NewFlightService(store, nil),
		Bookings:   booking.NewBookingService(store, fixedPricer(25000)),
		Vouchers:   voucher.NewRenderer("S/"),
		Currency:   "S/",
		Passengers: store.Passengers(),
	})
	return &app{router: router, store: store, flight: f, pass: p}
}

func (a *app) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func postForm(target string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestPages_Index(t *testing.T) {
	a := newApp(t, 1)
	w := a.do(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `action="/buscar_vuelos"`)
}

func TestPages_SearchIsExactAndCaseInsensitive(t *testing.T) {
	a := newApp(t, 1)
	w := a.do(postForm("/buscar_vuelos", url.Values{"origen": {"lim"}, "destino": {"cuz"}}))

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "AA100")
	assert.NotContains(t, body, "AA200")
	assert.NotContains(t, body, "AA300")
}

func TestPages_SearchNoMatches(t *testing.T) {
	a := newApp(t, 1)
	w := a.do(postForm("/buscar_vuelos", url.Values{"origen": {"TRU"}, "destino": {"PIU"}}))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No se encontraron vuelos")
	assert.Contains(t, w.Body.String(), "TRU")
}

func TestPages_SearchMissingField(t *testing.T) {
	a := newApp(t, 1)
	w := a.do(postForm("/buscar_vuelos", url.Values{"origen": {"LIM"}}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPages_ReservationsListsScheduledOnly(t *testing.T) {
	a := newApp(t, 1)
	w := a.do(httptest.NewRequest(http.MethodGet, "/reservas", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "AA100")
	assert.Contains(t, body, "AA200")
	assert.NotContains(t, body, "AA300")
}

func TestPages_BookLastSeatThenRedirectWithNotice(t *testing.T) {
	a := newApp(t, 1)
	form := url.Values{"id_pasajero": {"1"}, "id_vuelo": {"1"}}

	w := a.do(postForm("/registrores", form))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "PNR001")
	assert.Contains(t, w.Body.String(), "S/250.00")
	assert.Contains(t, w.Body.String(), "PENDING")
	assert.Contains(t, w.Body.String(), `href="/voucher/1"`)

	f, err := a.store.GetByID(context.Background(), a.flight.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, f.AvailableSeats)

	w = a.do(postForm("/registrores", form))
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/reservas", w.Header().Get("Location"))
	assert.Len(t, a.store.Reservations(), 1)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	req := httptest.NewRequest(http.MethodGet, "/reservas", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w = a.do(req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), noSeatsNotice)
}

func TestPages_BookUnknownFlight(t *testing.T) {
	a := newApp(t, 1)
	w := a.do(postForm("/registrores", url.Values{"id_pasajero": {"1"}, "id_vuelo": {"99"}}))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, a.store.Reservations())
}

func TestPages_BookMalformedForm(t *testing.T) {
	a := newApp(t, 1)
	w := a.do(postForm("/registrores", url.Values{"id_pasajero": {"abc"}, "id_vuelo": {"1"}}))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	f, _ := a.store.GetByID(context.Background(), a.flight.ID)
	assert.Equal(t, 1, f.AvailableSeats)
}

func TestPages_Voucher(t *testing.T) {
	a := newApp(t, 2)
	w := a.do(postForm("/registrores", url.Values{"id_pasajero": {"1"}, "id_vuelo": {"1"}}))
	require.Equal(t, http.StatusOK, w.Code)

	w = a.do(httptest.NewRequest(http.MethodGet, "/voucher/1", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="voucher_PNR001.pdf"`, w.Header().Get("Content-Disposition"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")))
}

func TestPages_VoucherNotFound(t *testing.T) {
	a := newApp(t, 1)

	for _, path := range []string{"/voucher/42", "/voucher/abc"} {
		w := a.do(httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusNotFound, w.Code, path)
		assert.NotEqual(t, "application/pdf", w.Header().Get("Content-Type"))
	}
}

type failingRenderer struct{}

func (failingRenderer) Render(*domain.ReservationDetails) ([]byte, error) {
	return nil, errors.New("font missing")
}

func TestPages_VoucherRenderFailure(t *testing.T) {
	a := newApp(t, 1)
	_, err := a.store.Create(context.Background(), repository.NewReservation{PassengerID: a.pass.ID, FlightID: a.flight.ID, TotalCents: 100})
	require.NoError(t, err)

	r := NewRouter(Dependencies{
		Flights:  flights.NewFlightService(a.store, nil),
		Bookings: booking.NewBookingService(a.store, fixedPricer(1)),
		Vouchers: failingRenderer{},
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/voucher/1", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "font missing")
}

func TestRouter_HealthAndAPI(t *testing.T) {
	a := newApp(t, 3)

	w := a.do(httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = a.do(httptest.NewRequest(http.MethodGet, "/api/v1/flights?origin=lim&destination=cuz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"number":"AA100"`)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", strings.NewReader(`{"passenger_id":1,"flight_id":1}`))
	req.Header.Set("Content-Type", "application/json")
	w = a.do(req)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"PNR001"`)

	w = a.do(httptest.NewRequest(http.MethodGet, "/api/v1/reservations/1", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"first_names":"Ana"`)
}

func TestRouter_HealthUnavailable(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := repository.NewMemoryStore()
	r := NewRouter(Dependencies{
		Flights:  flights.NewFlightService(store, nil),
		Bookings: booking.NewBookingService(store, fixedPricer(1)),
		Vouchers: voucher.NewRenderer("S/"),
		Health:   func(context.Context) error { return errors.New("db unreachable") },
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

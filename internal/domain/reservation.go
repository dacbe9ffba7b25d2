package domain

import (
	"time"

	"github.com/Domenick1991/airsales/internal/pricing"
)

type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "PENDING"
	ReservationStatusConfirmed ReservationStatus = "CONFIRMED"
	ReservationStatusCancelled ReservationStatus = "CANCELLED"
)

type Reservation struct {
	ID          int64             `json:"id"`
	Code        string            `json:"code"`
	PassengerID int64             `json:"passenger_id"`
	FlightID    int64             `json:"flight_id"`
	CreatedAt   time.Time         `json:"created_at"`
	Status      ReservationStatus `json:"status"`
	TotalCents  int64             `json:"total_cents"`
}

// Total renders the price with two decimals, e.g. "123.45".
func (r Reservation) Total() string {
	return pricing.Format(r.TotalCents)
}

// ReservationDetails is a reservation joined with the passenger and flight it references.
type ReservationDetails struct {
	Reservation Reservation `json:"reservation"`
	Passenger   Passenger   `json:"passenger"`
	Flight      Flight      `json:"flight"`
}

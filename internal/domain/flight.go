package domain

import "time"

type FlightStatus string

const (
	FlightStatusScheduled FlightStatus = "SCHEDULED"
	FlightStatusBoarding  FlightStatus = "BOARDING"
	FlightStatusDeparted  FlightStatus = "DEPARTED"
	FlightStatusArrived   FlightStatus = "ARRIVED"
	FlightStatusCancelled FlightStatus = "CANCELLED"
)

type Flight struct {
	ID             int64        `json:"id"`
	Number         string       `json:"number"`
	Origin         string       `json:"origin"`
	Destination    string       `json:"destination"`
	DepartureTime  time.Time    `json:"departure_time"`
	ArrivalTime    time.Time    `json:"arrival_time"`
	Aircraft       string       `json:"aircraft"`
	TotalSeats     int          `json:"total_seats"`
	AvailableSeats int          `json:"available_seats"`
	Status         FlightStatus `json:"status"`
}

// HasSeats reports whether at least one seat can still be sold.
func (f *Flight) HasSeats() bool {
	return f.AvailableSeats > 0
}

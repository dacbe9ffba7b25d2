package domain

import "time"

type Passenger struct {
	ID           int64     `json:"id"`
	NationalID   string    `json:"national_id"`
	FirstNames   string    `json:"first_names"`
	LastNames    string    `json:"last_names"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone,omitempty"`
	RegisteredAt time.Time `json:"registered_at"`
}

func (p Passenger) FullName() string {
	return p.FirstNames + " " + p.LastNames
}

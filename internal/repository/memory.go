package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Domenick1991/airsales/internal/domain"
	"github.com/Domenick1991/airsales/internal/pnr"
)

// MemoryStore keeps flights, passengers and reservations in process memory. It satisfies
// all three repository interfaces and holds its mutex for the whole booking.
type MemoryStore struct {
	mu           sync.RWMutex
	flights      map[int64]domain.Flight
	passengers   map[int64]domain.Passenger
	reservations []domain.Reservation
	lastCode     string
	// next ids never reuse an explicitly stored id
	lastFlightID    int64
	lastPassengerID int64
	now          func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		flights:    make(map[int64]domain.Flight),
		passengers: make(map[int64]domain.Passenger),
		now:        time.Now,
	}
}

// AddFlight stores f, assigning the next id when f.ID is zero.
func (s *MemoryStore) AddFlight(f domain.Flight) domain.Flight {
	s.mu.Lock()
	defer s.mu.Unlock()
	f.ID = nextID(&s.lastFlightID, f.ID)
	if f.Status == "" {
		f.Status = domain.FlightStatusScheduled
	}
	s.flights[f.ID] = f
	return f
}

func (s *MemoryStore) AddPassenger(p domain.Passenger) domain.Passenger {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = nextID(&s.lastPassengerID, p.ID)
	if p.RegisteredAt.IsZero() {
		p.RegisteredAt = s.now()
	}
	s.passengers[p.ID] = p
	return p
}

// nextID returns id, or the next unused id when id is zero, and advances last past it.
func nextID(last *int64, id int64) int64 {
	if id == 0 {
		id = *last + 1
	}
	if id > *last {
		*last = id
	}
	return id
}

// SetLastCode primes the sequence, e.g. with a legacy code.
func (s *MemoryStore) SetLastCode(code string) {
	s.mu.Lock()
	s.lastCode = code
	s.mu.Unlock()
}

func (s *MemoryStore) Reservations() []domain.Reservation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Reservation(nil), s.reservations...)
}

func (s *MemoryStore) Search(_ context.Context, origin, destination string) ([]domain.Flight, error) {
	return s.filter(func(f domain.Flight) bool {
		return f.Origin == origin && f.Destination == destination
	}), nil
}

func (s *MemoryStore) ListByStatus(_ context.Context, status domain.FlightStatus) ([]domain.Flight, error) {
	return s.filter(func(f domain.Flight) bool { return f.Status == status }), nil
}

func (s *MemoryStore) GetByID(_ context.Context, id int64) (*domain.Flight, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.flights[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &f, nil
}

func (s *MemoryStore) Create(_ context.Context, in NewReservation) (*domain.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.flights[in.FlightID]
	if !ok {
		return nil, fmt.Errorf("flight %d: %w", in.FlightID, domain.ErrNotFound)
	}
	if !f.HasSeats() {
		return nil, domain.ErrSeatsUnavailable
	}
	if _, ok := s.passengers[in.PassengerID]; !ok {
		return nil, fmt.Errorf("passenger %d: %w", in.PassengerID, domain.ErrNotFound)
	}

	code := pnr.Next(s.lastCode)
	for _, r := range s.reservations {
		if r.Code == code {
			return nil, fmt.Errorf("booking code %s already issued", code)
		}
	}

	res := domain.Reservation{
		ID:          int64(len(s.reservations) + 1),
		Code:        code,
		PassengerID: in.PassengerID,
		FlightID:    in.FlightID,
		CreatedAt:   s.now().UTC(),
		Status:      domain.ReservationStatusPending,
		TotalCents:  in.TotalCents,
	}
	f.AvailableSeats--
	s.flights[f.ID] = f
	s.reservations = append(s.reservations, res)
	s.lastCode = code
	return &res, nil
}

func (s *MemoryStore) GetDetails(_ context.Context, id int64) (*domain.ReservationDetails, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if id <= 0 || id > int64(len(s.reservations)) {
		return nil, domain.ErrNotFound
	}
	res := s.reservations[id-1]
	return &domain.ReservationDetails{
		Reservation: res,
		Passenger:   s.passengers[res.PassengerID],
		Flight:      s.flights[res.FlightID],
	}, nil
}

func (s *MemoryStore) filter(keep func(domain.Flight) bool) []domain.Flight {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Flight, 0)
	for _, f := range s.flights {
		if keep(f) {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DepartureTime.Equal(out[j].DepartureTime) {
			return out[i].ID < out[j].ID
		}
		return out[i].DepartureTime.Before(out[j].DepartureTime)
	})
	return out
}

// passengerView lets the memory store serve as a PassengerRepository without clashing
// with the flight GetByID method.
type passengerView struct{ s *MemoryStore }

func (v passengerView) GetByID(_ context.Context, id int64) (*domain.Passenger, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	p, ok := v.s.passengers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (s *MemoryStore) Passengers() PassengerRepository {
	return passengerView{s: s}
}

var (
	_ FlightRepository      = (*MemoryStore)(nil)
	_ ReservationRepository = (*MemoryStore)(nil)
)

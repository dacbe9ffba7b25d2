package repository

import (
	"context"
	"errors"

	"github.com/Domenick1991/airsales/internal/domain"
	"github.com/jackc/pgx/v5"
)

type FlightRepository interface {
	Search(ctx context.Context, origin, destination string) ([]domain.Flight, error)
	ListByStatus(ctx context.Context, status domain.FlightStatus) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
}

const flightColumns = `id, number, origin, destination, departure_time, arrival_time, aircraft, total_seats, available_seats, status`

type PGFlightRepository struct {
	db DB
}

func NewFlightRepository(db DB) FlightRepository {
	return &PGFlightRepository{db: db}
}

func (r *PGFlightRepository) Search(ctx context.Context, origin, destination string) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, `SELECT `+flightColumns+` FROM flights WHERE origin=$1 AND destination=$2 ORDER BY departure_time`, origin, destination)
	if err != nil {
		return nil, err
	}
	return scanFlights(rows)
}

func (r *PGFlightRepository) ListByStatus(ctx context.Context, status domain.FlightStatus) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, `SELECT `+flightColumns+` FROM flights WHERE status=$1 ORDER BY departure_time`, status)
	if err != nil {
		return nil, err
	}
	return scanFlights(rows)
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	row := r.db.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE id=$1`, id)
	var f domain.Flight
	if err := scanFlight(row, &f); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &f, nil
}

func scanFlight(row pgx.Row, f *domain.Flight) error {
	return row.Scan(&f.ID, &f.Number, &f.Origin, &f.Destination, &f.DepartureTime, &f.ArrivalTime, &f.Aircraft, &f.TotalSeats, &f.AvailableSeats, &f.Status)
}

func scanFlights(rows pgx.Rows) ([]domain.Flight, error) {
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		var f domain.Flight
		if err := scanFlight(rows, &f); err != nil {
			return nil, err
		}
		flights = append(flights, f)
	}
	return flights, rows.Err()
}

var _ FlightRepository = (*PGFlightRepository)(nil)

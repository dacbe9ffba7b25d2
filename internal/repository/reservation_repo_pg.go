package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/airsales/internal/domain"
	"github.com/Domenick1991/airsales/internal/pnr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
)

// NewReservation carries what the booking flow decides before touching storage.
type NewReservation struct {
	PassengerID int64
	FlightID    int64
	TotalCents  int64
}

type ReservationRepository interface {
	// Create books one seat and records a PENDING reservation as a single unit.
	// It returns domain.ErrNotFound for an unknown flight or passenger and
	// domain.ErrSeatsUnavailable when the flight is full; nothing is written in either case.
	Create(ctx context.Context, in NewReservation) (*domain.Reservation, error)
	GetDetails(ctx context.Context, id int64) (*domain.ReservationDetails, error)
}

type PGReservationRepository struct {
	db DB
}

func NewReservationRepository(db DB) ReservationRepository {
	return &PGReservationRepository{db: db}
}

func (r *PGReservationRepository) Create(ctx context.Context, in NewReservation) (*domain.Reservation, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// The row lock on the flight serializes bookings for it until commit.
	var available int
	if err := tx.QueryRow(ctx, `SELECT available_seats FROM flights WHERE id=$1 FOR UPDATE`, in.FlightID).Scan(&available); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("flight %d: %w", in.FlightID, domain.ErrNotFound)
		}
		return nil, err
	}
	if available <= 0 {
		return nil, domain.ErrSeatsUnavailable
	}

	var last string
	if err := tx.QueryRow(ctx, `SELECT last_code FROM pnr_sequence WHERE id=1 FOR UPDATE`).Scan(&last); err != nil {
		return nil, fmt.Errorf("read pnr sequence: %w", err)
	}
	code := pnr.Next(last)
	if _, err := tx.Exec(ctx, `UPDATE pnr_sequence SET last_code=$1 WHERE id=1`, code); err != nil {
		return nil, fmt.Errorf("advance pnr sequence: %w", err)
	}

	res := &domain.Reservation{
		Code:        code,
		PassengerID: in.PassengerID,
		FlightID:    in.FlightID,
		Status:      domain.ReservationStatusPending,
		TotalCents:  in.TotalCents,
	}
	if err := tx.QueryRow(ctx, `INSERT INTO reservations (code, passenger_id, flight_id, status, total_cents)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`, res.Code, res.PassengerID, res.FlightID, res.Status, res.TotalCents).
		Scan(&res.ID, &res.CreatedAt); err != nil {
		return nil, translateInsertError(err, in)
	}

	if _, err := tx.Exec(ctx, `UPDATE flights SET available_seats = available_seats - 1 WHERE id=$1`, in.FlightID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return res, nil
}

func (r *PGReservationRepository) GetDetails(ctx context.Context, id int64) (*domain.ReservationDetails, error) {
	row := r.db.QueryRow(ctx, `SELECT
		r.id, r.code, r.passenger_id, r.flight_id, r.created_at, r.status, r.total_cents,
		p.id, p.national_id, p.first_names, p.last_names, p.email, p.phone, p.registered_at,
		f.id, f.number, f.origin, f.destination, f.departure_time, f.arrival_time, f.aircraft, f.total_seats, f.available_seats, f.status
		FROM reservations r
		JOIN passengers p ON p.id = r.passenger_id
		JOIN flights f ON f.id = r.flight_id
		WHERE r.id=$1`, id)

	var d domain.ReservationDetails
	res, p, f := &d.Reservation, &d.Passenger, &d.Flight
	if err := row.Scan(
		&res.ID, &res.Code, &res.PassengerID, &res.FlightID, &res.CreatedAt, &res.Status, &res.TotalCents,
		&p.ID, &p.NationalID, &p.FirstNames, &p.LastNames, &p.Email, &p.Phone, &p.RegisteredAt,
		&f.ID, &f.Number, &f.Origin, &f.Destination, &f.DepartureTime, &f.ArrivalTime, &f.Aircraft, &f.TotalSeats, &f.AvailableSeats, &f.Status,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

func translateInsertError(err error, in NewReservation) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgForeignKeyViolation:
		return fmt.Errorf("passenger %d: %w", in.PassengerID, domain.ErrNotFound)
	case pgUniqueViolation:
		return fmt.Errorf("booking code already issued: %w", err)
	}
	return err
}

var _ ReservationRepository = (*PGReservationRepository)(nil)

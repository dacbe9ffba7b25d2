package repository

import (
	"context"
	"errors"

	"github.com/Domenick1991/airsales/internal/domain"
	"github.com/jackc/pgx/v5"
)

type PassengerRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Passenger, error)
}

type PGPassengerRepository struct {
	db DB
}

func NewPassengerRepository(db DB) PassengerRepository {
	return &PGPassengerRepository{db: db}
}

func (r *PGPassengerRepository) GetByID(ctx context.Context, id int64) (*domain.Passenger, error) {
	row := r.db.QueryRow(ctx, `SELECT id, national_id, first_names, last_names, email, phone, registered_at FROM passengers WHERE id=$1`, id)
	var p domain.Passenger
	if err := row.Scan(&p.ID, &p.NationalID, &p.FirstNames, &p.LastNames, &p.Email, &p.Phone, &p.RegisteredAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

var _ PassengerRepository = (*PGPassengerRepository)(nil)

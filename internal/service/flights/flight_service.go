package flights

import (
	"context"
	"strings"

	"github.com/Domenick1991/airsales/internal/cache"
	"github.com/Domenick1991/airsales/internal/domain"
	"github.com/Domenick1991/airsales/internal/logger"
	"github.com/Domenick1991/airsales/internal/repository"
	"github.com/Domenick1991/airsales/internal/validation"
)

type FlightUseCase interface {
	Search(ctx context.Context, origin, destination string) ([]domain.Flight, error)
	ListScheduled(ctx context.Context) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
}

type FlightCache interface {
	GetFlights(ctx context.Context, key string) ([]domain.Flight, error)
	SetFlights(ctx context.Context, key string, flights []domain.Flight) error
}

type SearchInput struct {
	Origin      string `json:"origin" validate:"required"`
	Destination string `json:"destination" validate:"required"`
}

type FlightService struct {
	repo     repository.FlightRepository
	cache    FlightCache
	validate *validation.Validator
}

// NewFlightService accepts a nil cache.
func NewFlightService(repo repository.FlightRepository, cache FlightCache) *FlightService {
	return &FlightService{repo: repo, cache: cache, validate: validation.New()}
}

// Search matches origin and destination exactly after trimming and upper-casing them.
func (s *FlightService) Search(ctx context.Context, origin, destination string) ([]domain.Flight, error) {
	in := SearchInput{Origin: normalizeCode(origin), Destination: normalizeCode(destination)}
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}

	return s.cached(ctx, cache.SearchKey(in.Origin, in.Destination), func() ([]domain.Flight, error) {
		return s.repo.Search(ctx, in.Origin, in.Destination)
	})
}

func (s *FlightService) ListScheduled(ctx context.Context) ([]domain.Flight, error) {
	return s.cached(ctx, cache.ScheduledKey(), func() ([]domain.Flight, error) {
		return s.repo.ListByStatus(ctx, domain.FlightStatusScheduled)
	})
}

func (s *FlightService) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	return s.repo.GetByID(ctx, id)
}

// cached serves key from the cache when possible; cache failures fall through to load.
func (s *FlightService) cached(ctx context.Context, key string, load func() ([]domain.Flight, error)) ([]domain.Flight, error) {
	if s.cache != nil {
		if hit, err := s.cache.GetFlights(ctx, key); err == nil && hit != nil {
			return hit, nil
		} else if err != nil {
			logger.ErrorLogger.WithError(err).WithField("key", key).Warn("flight cache read failed")
		}
	}

	flights, err := load()
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetFlights(ctx, key, flights); err != nil {
			logger.ErrorLogger.WithError(err).WithField("key", key).Warn("flight cache write failed")
		}
	}
	return flights, nil
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

var _ FlightUseCase = (*FlightService)(nil)

package booking

import (
	"context"
	"strconv"

	"github.com/Domenick1991/airsales/internal/domain"
	"github.com/Domenick1991/airsales/internal/kafka"
	"github.com/Domenick1991/airsales/internal/logger"
	"github.com/Domenick1991/airsales/internal/pricing"
	"github.com/Domenick1991/airsales/internal/repository"
	"github.com/Domenick1991/airsales/internal/validation"
	"github.com/sirupsen/logrus"
)

type BookingUseCase interface {
	Book(ctx context.Context, input BookInput) (*domain.Reservation, error)
	Details(ctx context.Context, reservationID int64) (*domain.ReservationDetails, error)
}

type CacheInvalidator interface {
	InvalidateFlights(ctx context.Context) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value any) error
}

type BookInput struct {
	PassengerID int64 `json:"passenger_id" validate:"gt=0"`
	FlightID    int64 `json:"flight_id" validate:"gt=0"`
}

type BookingService struct {
	reservations      repository.ReservationRepository
	pricer            pricing.Pricer
	validate          *validation.Validator
	cache             CacheInvalidator
	producer          Producer
	reservationsTopic string
}

type BookingServiceOption func(*BookingService)

func WithCache(c CacheInvalidator) BookingServiceOption {
	return func(s *BookingService) {
		s.cache = c
	}
}

func WithProducer(p Producer, topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.producer = p
		s.reservationsTopic = topic
	}
}

func NewBookingService(reservations repository.ReservationRepository, pricer pricing.Pricer, opts ...BookingServiceOption) *BookingService {
	service := &BookingService{
		reservations: reservations,
		pricer:       pricer,
		validate:     validation.New(),
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// Book sells one seat on the flight to the passenger. On any error no reservation is
// stored and the seat count is unchanged.
func (s *BookingService) Book(ctx context.Context, input BookInput) (*domain.Reservation, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, err
	}

	res, err := s.reservations.Create(ctx, repository.NewReservation{
		PassengerID: input.PassengerID,
		FlightID:    input.FlightID,
		TotalCents:  s.pricer.Price(),
	})
	if err != nil {
		return nil, err
	}

	log := logger.InfoLogger.WithFields(logrus.Fields{
		"pnr":          res.Code,
		"flight_id":    res.FlightID,
		"passenger_id": res.PassengerID,
	})
	log.Info("reservation created")

	if s.cache != nil {
		if err := s.cache.InvalidateFlights(ctx); err != nil {
			logger.ErrorLogger.WithError(err).WithField("pnr", res.Code).Warn("invalidate flight cache")
		}
	}
	if err := s.publish(ctx, kafka.EventReservationCreated, res); err != nil {
		logger.ErrorLogger.WithError(err).WithField("pnr", res.Code).Warn("publish reservation event")
	}
	return res, nil
}

func (s *BookingService) Details(ctx context.Context, reservationID int64) (*domain.ReservationDetails, error) {
	if reservationID <= 0 {
		return nil, domain.ErrNotFound
	}
	return s.reservations.GetDetails(ctx, reservationID)
}

func (s *BookingService) publish(ctx context.Context, eventType string, res *domain.Reservation) error {
	if s.producer == nil || s.reservationsTopic == "" {
		return nil
	}
	event := kafka.NewReservationEvent(eventType, res)
	return s.producer.Publish(ctx, s.reservationsTopic, strconv.FormatInt(res.FlightID, 10), event)
}

var _ BookingUseCase = (*BookingService)(nil)

package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/airsales/config"
	"github.com/Domenick1991/airsales/internal/domain"
	"github.com/Domenick1991/airsales/internal/email"
	"github.com/Domenick1991/airsales/internal/kafka"
	"github.com/Domenick1991/airsales/internal/logger"
	"github.com/Domenick1991/airsales/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logger.ErrorLogger.Fatalf("load config: %v", err)
	}
	logger.Init(cfg.Log)

	if cfg.Database.Driver != config.DriverPostgres {
		logger.ErrorLogger.Fatal("worker needs the postgres driver to look up reservations")
	}
	if !cfg.Kafka.Enabled() {
		logger.ErrorLogger.Fatal("worker needs kafka.brokers and kafka.reservations_topic")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		logger.ErrorLogger.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	reservations := repository.NewReservationRepository(pool)
	sender := email.NewSender(cfg.SMTP, cfg.Booking.CurrencyPrefix)

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.ReservationsTopic)
	defer consumer.Close()

	logger.InfoLogger.WithField("topic", cfg.Kafka.ReservationsTopic).Info("worker consuming reservation events")

	err = consumer.Consume(ctx, kafka.ReservationHandler(func(ctx context.Context, event kafka.ReservationEvent) error {
		log := logger.InfoLogger.WithFields(logrus.Fields{"event_id": event.ID, "pnr": event.Code, "type": event.Type})
		if event.Type != kafka.EventReservationCreated {
			log.Debug("ignored event")
			return nil
		}

		details, err := reservations.GetDetails(ctx, event.ReservationID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				log.Warn("reservation for event not found")
				return nil
			}
			return err
		}
		if err := sender.SendConfirmation(ctx, details); err != nil {
			// Mail delivery is best-effort; the reservation already exists.
			log.WithError(err).Warn("confirmation email not sent")
		}
		return nil
	}))
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.ErrorLogger.Fatalf("consumer stopped: %v", err)
	}
	logger.InfoLogger.Info("worker stopped")
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/airsales/api"
	"github.com/Domenick1991/airsales/config"
	"github.com/Domenick1991/airsales/internal/bootstrap"
	"github.com/Domenick1991/airsales/internal/cache"
	"github.com/Domenick1991/airsales/internal/domain"
	"github.com/Domenick1991/airsales/internal/kafka"
	"github.com/Domenick1991/airsales/internal/logger"
	"github.com/Domenick1991/airsales/internal/middleware"
	"github.com/Domenick1991/airsales/internal/pricing"
	"github.com/Domenick1991/airsales/internal/repository"
	"github.com/Domenick1991/airsales/internal/service/booking"
	"github.com/Domenick1991/airsales/internal/service/flights"
	"github.com/Domenick1991/airsales/internal/voucher"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
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
	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		flightRepo      repository.FlightRepository
		reservationRepo repository.ReservationRepository
		passengerRepo   repository.PassengerRepository
		healthCheck     func(context.Context) error
	)
	switch cfg.Database.Driver {
	case config.DriverMemory:
		store := repository.NewMemoryStore()
		seedDemo(store)
		flightRepo, reservationRepo, passengerRepo = store, store, store.Passengers()
		logger.InfoLogger.Warn("using in-memory store; data is lost on exit")
	default:
		pool, err := openPool(ctx, cfg.Database)
		if err != nil {
			logger.ErrorLogger.Fatalf("connect postgres: %v", err)
		}
		defer pool.Close()
		flightRepo = repository.NewFlightRepository(pool)
		reservationRepo = repository.NewReservationRepository(pool)
		passengerRepo = repository.NewPassengerRepository(pool)
		healthCheck = pool.Ping
	}

	var (
		flightCache flights.FlightCache
		redisClient *redis.Client
		bookingOpts []booking.BookingServiceOption
	)
	if cfg.Redis.Enabled() {
		redisCache := cache.NewRedisCache(cfg.Redis, cfg.Booking.CacheTTL())
		defer redisCache.Close()
		if err := redisCache.Ping(ctx); err != nil {
			logger.ErrorLogger.WithError(err).Warn("redis unreachable; cache calls will fail over to the database")
		}
		flightCache = redisCache
		redisClient = redisCache.Client()
		bookingOpts = append(bookingOpts, booking.WithCache(redisCache))
	}
	if cfg.Kafka.Enabled() {
		producer := kafka.NewProducer(cfg.Kafka.Brokers)
		defer producer.Close()
		bookingOpts = append(bookingOpts, booking.WithProducer(producer, cfg.Kafka.ReservationsTopic))
	}

	bookingLimit, err := middleware.RateLimit(cfg.Booking.RateLimit, "registrores", redisClient)
	if err != nil {
		logger.ErrorLogger.Fatalf("rate limiter: %v", err)
	}

	flightService := flights.NewFlightService(flightRepo, flightCache)
	bookingService := booking.NewBookingService(reservationRepo, pricing.NewRandomPricer(nil), bookingOpts...)

	router := api.NewRouter(api.Dependencies{
		Flights:      flightService,
		Bookings:     bookingService,
		Vouchers:     voucher.NewRenderer(cfg.Booking.CurrencyPrefix),
		Passengers:   passengerRepo,
		Currency:     cfg.Booking.CurrencyPrefix,
		BookingLimit: bookingLimit,
		Health:       healthCheck,
	})

	if err := bootstrap.Run(ctx, cfg, router, healthCheck); err != nil {
		logger.ErrorLogger.Fatalf("server error: %v", err)
	}
}

func openPool(ctx context.Context, dbCfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(dbCfg.DSN())
	if err != nil {
		return nil, err
	}
	if dbCfg.MaxConns > 0 {
		poolCfg.MaxConns = dbCfg.MaxConns
	}
	poolCfg.MaxConnIdleTime = 30 * time.Minute

	connectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(connectCtx, poolCfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(connectCtx); err != nil {
		pool.Close()
		return nil, err
	}
	if dbCfg.Migrate {
		if err := repository.Migrate(connectCtx, pool); err != nil {
			pool.Close()
			return nil, err
		}
	}
	logger.InfoLogger.WithField("database", dbCfg.Name).Info("connected to postgres")
	return pool, nil
}

func seedDemo(store *repository.MemoryStore) {
	dep := time.Now().Add(48 * time.Hour).Truncate(time.Hour)
	store.AddFlight(domain.Flight{Number: "AA100", Origin: "LIM", Destination: "CUZ", DepartureTime: dep, ArrivalTime: dep.Add(80 * time.Minute), Aircraft: "Airbus A320", TotalSeats: 180, AvailableSeats: 180})
	store.AddFlight(domain.Flight{Number: "AA102", Origin: "CUZ", Destination: "LIM", DepartureTime: dep.Add(3 * time.Hour), ArrivalTime: dep.Add(4*time.Hour + 20*time.Minute), Aircraft: "Airbus A320", TotalSeats: 180, AvailableSeats: 180})
	store.AddFlight(domain.Flight{Number: "AA200", Origin: "LIM", Destination: "AQP", DepartureTime: dep.Add(time.Hour), ArrivalTime: dep.Add(2*time.Hour + 30*time.Minute), Aircraft: "Boeing 737", TotalSeats: 2, AvailableSeats: 2})
	store.AddPassenger(domain.Passenger{NationalID: "70123456", FirstNames: "Ana Lucía", LastNames: "Quispe Mamani", Email: "ana@example.com", Phone: "+51987654321"})
	store.AddPassenger(domain.Passenger{NationalID: "40123457", FirstNames: "Jorge", LastNames: "Ramírez Torres", Email: "jorge@example.com"})
}

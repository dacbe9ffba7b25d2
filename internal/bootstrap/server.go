package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/Domenick1991/airsales/config"
	"github.com/Domenick1991/airsales/internal/logger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

const ServiceName = "airsales"

const (
	healthInterval = 15 * time.Second
	healthTimeout  = 2 * time.Second
)

// HealthCheck reports whether the backing store is reachable. nil means always healthy.
type HealthCheck func(ctx context.Context) error

type Servers struct {
	grpcServer *grpc.Server
	health     *health.Server
	httpServer *http.Server
}

// Run starts the HTTP server and, when configured, the gRPC health server whose status
// follows check. It blocks until ctx is canceled or a server fails.
func Run(ctx context.Context, cfg *config.Config, handler http.Handler, check HealthCheck) error {
	s := newServers(cfg, handler)

	errCh := make(chan error, 2)

	if s.grpcServer != nil {
		lis, err := net.Listen("tcp", cfg.GRPC.Address)
		if err != nil {
			return fmt.Errorf("listen gRPC %s: %w", cfg.GRPC.Address, err)
		}
		s.refreshHealth(ctx, check)
		go s.watchHealth(ctx, check)

		logger.InfoLogger.WithField("address", cfg.GRPC.Address).Info("grpc health server listening")
		go func() { errCh <- s.grpcServer.Serve(lis) }()
	}

	logger.InfoLogger.WithField("address", cfg.HTTP.Address).Info("http server listening")
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return s.shutdown()
	}
}

func newServers(cfg *config.Config, handler http.Handler) *Servers {
	s := &Servers{
		httpServer: &http.Server{
			Addr:              cfg.HTTP.Address,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}

	if cfg.GRPC.Address != "" {
		s.grpcServer = grpc.NewServer()
		s.health = health.NewServer()
		s.health.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
		healthpb.RegisterHealthServer(s.grpcServer, s.health)
	}
	return s
}

func (s *Servers) refreshHealth(ctx context.Context, check HealthCheck) {
	status := healthpb.HealthCheckResponse_SERVING
	if check != nil {
		checkCtx, cancel := context.WithTimeout(ctx, healthTimeout)
		err := check(checkCtx)
		cancel()
		if err != nil {
			logger.ErrorLogger.WithError(err).Warn("health check failed")
			status = healthpb.HealthCheckResponse_NOT_SERVING
		}
	}
	s.health.SetServingStatus(ServiceName, status)
}

func (s *Servers) watchHealth(ctx context.Context, check HealthCheck) {
	if check == nil {
		return
	}
	ticker := time.NewTicker(healthInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.refreshHealth(ctx, check)
		}
	}
}

func (s *Servers) shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if s.grpcServer != nil {
		s.health.Shutdown()
		s.grpcServer.GracefulStop()
	}
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	logger.InfoLogger.Info("servers stopped")
	return nil
}

package bootstrap

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/Domenick1991/airsales/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

func TestNewServers_WithGRPC(t *testing.T) {
	cfg := &config.Config{HTTP: config.HTTPConfig{Address: ":0"}, GRPC: config.GRPCConfig{Address: ":0"}}
	s := newServers(cfg, http.NotFoundHandler())

	require.NotNil(t, s.grpcServer)
	resp, err := s.health.Check(context.Background(), &healthpb.HealthCheckRequest{Service: ServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())
}

func TestNewServers_HTTPOnly(t *testing.T) {
	s := newServers(&config.Config{HTTP: config.HTTPConfig{Address: ":0"}}, http.NotFoundHandler())
	assert.Nil(t, s.grpcServer)
}

func TestRun_StopsOnCancel(t *testing.T) {
	cfg := &config.Config{HTTP: config.HTTPConfig{Address: "127.0.0.1:0"}, GRPC: config.GRPCConfig{Address: "127.0.0.1:0"}}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- Run(ctx, cfg, http.NotFoundHandler(), nil) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRefreshHealth_FollowsCheck(t *testing.T) {
	cfg := &config.Config{HTTP: config.HTTPConfig{Address: ":0"}, GRPC: config.GRPCConfig{Address: ":0"}}
	s := newServers(cfg, http.NotFoundHandler())
	ctx := context.Background()
	req := &healthpb.HealthCheckRequest{Service: ServiceName}

	s.refreshHealth(ctx, func(context.Context) error { return errors.New("connection refused") })
	resp, err := s.health.Check(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, resp.GetStatus())

	s.refreshHealth(ctx, func(context.Context) error { return nil })
	resp, err = s.health.Check(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())

	s.refreshHealth(ctx, nil)
	resp, err = s.health.Check(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())
}

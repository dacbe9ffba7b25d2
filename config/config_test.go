package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte("database:\n  driver: memory\n"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.Address)
	assert.Equal(t, "S/", cfg.Booking.CurrencyPrefix)
	assert.Equal(t, 60, cfg.Booking.FlightsCacheTTL)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Redis.Enabled())
	assert.False(t, cfg.Kafka.Enabled())
	assert.NoError(t, cfg.Validate())
}

func TestValidate_Postgres(t *testing.T) {
	cfg, err := Parse([]byte("database:\n  driver: postgres\n"))
	require.NoError(t, err)

	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database.host")
	assert.Contains(t, err.Error(), "database.name")
}

func TestValidate_UnknownDriver(t *testing.T) {
	cfg, err := Parse([]byte("database:\n  driver: oracle\n"))
	require.NoError(t, err)
	assert.Error(t, cfg.Validate())
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", Name: "airline_sales", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=airline_sales sslmode=disable", d.DSN())
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte(`
http:
  address: ":9000"
database:
  driver: postgres
  host: localhost
  port: 5432
  name: airline_sales
kafka:
  reservations_topic: reservations
`)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	t.Setenv("DATABASE_HOST", "db.internal")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.HTTP.Address)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.Kafka.Enabled())
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

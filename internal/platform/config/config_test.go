package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load(t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, ":8080", cfg.Server.Addr)
		assert.Equal(t, 5*time.Second, cfg.Database.TxTimeout)
		assert.Empty(t, cfg.Database.URL)
		assert.True(t, cfg.UsesDevSigningKey())
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("ROSTER_SERVER_ADDR", ":9090")
		t.Setenv("ROSTER_DATABASE_URL", "postgres://localhost/roster")
		t.Setenv("ROSTER_CACHE_GRID_TTL", "30s")

		cfg, err := Load(t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, ":9090", cfg.Server.Addr)
		assert.Equal(t, "postgres://localhost/roster", cfg.Database.URL)
		assert.Equal(t, 30*time.Second, cfg.Cache.GridTTL)
	})

	t.Run("config file", func(t *testing.T) {
		dir := t.TempDir()
		body := "log:\n  level: debug\nkafka:\n  brokers: [\"localhost:9092\"]\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, "roster.yaml"), []byte(body), 0o600))

		cfg, err := Load(dir)
		require.NoError(t, err)
		assert.Equal(t, "debug", cfg.Log.Level)
		assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
		assert.Equal(t, "roster.audit", cfg.Kafka.AuditTopic)
	})
}

func TestValidate(t *testing.T) {
	cfg := Config{
		Server:   Server{Addr: ":8080"},
		Auth:     Auth{JWTSigningKey: "k"},
		Database: Database{TxTimeout: time.Second},
	}
	require.NoError(t, cfg.Validate())

	bad := cfg
	bad.Auth.JWTSigningKey = ""
	assert.Error(t, bad.Validate())

	bad = cfg
	bad.Kafka = Kafka{Brokers: []string{"b:9092"}}
	assert.Error(t, bad.Validate())
}

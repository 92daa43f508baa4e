package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/geoquiz/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "5175", cfg.Port)
	assert.Equal(t, 3, cfg.CheatTokens)
	assert.Empty(t, cfg.QuestionsFile)
	assert.Equal(t, config.BackendMemory, cfg.Snapshot.Backend)
	assert.Equal(t, 24*time.Hour, cfg.Snapshot.TTL)
	assert.True(t, cfg.Strict)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("PORT", "8080")
	t.Setenv("CHEAT_TOKENS", "5")
	t.Setenv("SNAPSHOT_BACKEND", "sqlite")
	t.Setenv("SNAPSHOT_DSN", "/tmp/geo.db")
	t.Setenv("SNAPSHOT_TTL", "90m")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 5, cfg.CheatTokens)
	assert.Equal(t, config.BackendSQLite, cfg.Snapshot.Backend)
	assert.Equal(t, "/tmp/geo.db", cfg.Snapshot.DSN)
	assert.Equal(t, 90*time.Minute, cfg.Snapshot.TTL)
	assert.False(t, cfg.Strict)
}

func TestLoad_StrictOverride(t *testing.T) {
	t.Setenv("STRICT", "false")
	cfg, err := config.Load()
	require.NoError(t, err)
	assert.False(t, cfg.Strict)
}

func TestValidate(t *testing.T) {
	valid := func() config.Config {
		return config.Config{
			CheatTokens: 3,
			JWTSecret:   "s",
			Snapshot:    config.Snapshot{Backend: config.BackendMemory, TTL: time.Hour},
		}
	}

	c := valid()
	require.NoError(t, c.Validate())

	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{name: "negative tokens", mutate: func(c *config.Config) { c.CheatTokens = -1 }},
		{name: "unknown backend", mutate: func(c *config.Config) { c.Snapshot.Backend = "redis" }},
		{name: "sqlite without dsn", mutate: func(c *config.Config) { c.Snapshot.Backend = config.BackendSQLite }},
		{name: "zero ttl", mutate: func(c *config.Config) { c.Snapshot.TTL = 0 }},
		{name: "empty secret", mutate: func(c *config.Config) { c.JWTSecret = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)
			require.ErrorIs(t, c.Validate(), config.ErrInvalidConfig)
		})
	}
}

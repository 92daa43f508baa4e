package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var ErrInvalidConfig = errors.New("invalid configuration")

const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// Config holds application configuration loaded from .env, config files and environment variables.
type Config struct {
	Env           string   `mapstructure:"env"`            // application environment (local, dev, production)
	Port          string   `mapstructure:"port"`           // HTTP listen port
	LogLevel      string   `mapstructure:"log_level"`      // zerolog level name
	CheatTokens   int      `mapstructure:"cheat_tokens"`   // token budget for a new session
	QuestionsFile string   `mapstructure:"questions_file"` // YAML bank; empty means embedded default
	ClientOrigin  string   `mapstructure:"client_origin"`  // allowed CORS origin
	JWTSecret     string   `mapstructure:"jwt_secret"`     // HMAC key for snapshot tokens
	Strict        bool     `mapstructure:"strict"`         // panic on cheat precondition violations
	Snapshot      Snapshot `mapstructure:"snapshot"`       // snapshot persistence section
}

// Snapshot configures where suspended session indexes are kept.
type Snapshot struct {
	Backend string        `mapstructure:"backend"` // memory | sqlite
	DSN     string        `mapstructure:"dsn"`     // sqlite file path
	TTL     time.Duration `mapstructure:"ttl"`     // lifetime of issued snapshot tokens
}

// Load reads .env (if present), an optional config/config.yaml and the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	v.SetDefault("env", "local")
	v.SetDefault("port", "5175")
	v.SetDefault("log_level", "info")
	v.SetDefault("cheat_tokens", 3)
	v.SetDefault("questions_file", "")
	v.SetDefault("client_origin", "http://localhost:5173")
	v.SetDefault("jwt_secret", "dev_secret_change_me")
	v.SetDefault("snapshot.backend", BackendMemory)
	v.SetDefault("snapshot.dsn", "./data/geoquiz.db")
	v.SetDefault("snapshot.ttl", "24h")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("env", "APP_ENV")
	_ = v.BindEnv("port", "PORT")
	_ = v.BindEnv("log_level", "LOG_LEVEL")
	_ = v.BindEnv("cheat_tokens", "CHEAT_TOKENS")
	_ = v.BindEnv("questions_file", "QUESTIONS_FILE")
	_ = v.BindEnv("client_origin", "CLIENT_ORIGIN")
	_ = v.BindEnv("jwt_secret", "JWT_SECRET")
	_ = v.BindEnv("strict", "STRICT")
	_ = v.BindEnv("snapshot.backend", "SNAPSHOT_BACKEND")
	_ = v.BindEnv("snapshot.dsn", "SNAPSHOT_DSN")
	_ = v.BindEnv("snapshot.ttl", "SNAPSHOT_TTL")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	// strict defaults to on only for local development
	v.SetDefault("strict", v.GetString("env") == "local")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges that viper cannot express.
func (c *Config) Validate() error {
	if c.CheatTokens < 0 {
		return fmt.Errorf("%w: cheat_tokens must be >= 0, got %d", ErrInvalidConfig, c.CheatTokens)
	}
	switch c.Snapshot.Backend {
	case BackendMemory, BackendSQLite:
	default:
		return fmt.Errorf("%w: unknown snapshot backend %q", ErrInvalidConfig, c.Snapshot.Backend)
	}
	if c.Snapshot.Backend == BackendSQLite && c.Snapshot.DSN == "" {
		return fmt.Errorf("%w: snapshot.dsn is required for sqlite", ErrInvalidConfig)
	}
	if c.Snapshot.TTL <= 0 {
		return fmt.Errorf("%w: snapshot.ttl must be positive", ErrInvalidConfig)
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("%w: jwt_secret is empty", ErrInvalidConfig)
	}
	return nil
}

// IsProduction reports whether the app runs in the production environment.
func (c *Config) IsProduction() bool { return c.Env == "production" }

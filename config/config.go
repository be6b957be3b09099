package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	// DevJWTSecret signs sessions in development when no secret is configured.
	DevJWTSecret = "penpot-admin-secret-key-change-in-production"
)

var (
	ErrMissingSecret = errors.New("auth.jwt_secret must be set in production")
	ErrDefaultSecret = errors.New("auth.jwt_secret must not be the development default in production")
	ErrInvalidEnv    = errors.New("env must be development or production")
	ErrInvalidTTL    = errors.New("auth.session_ttl must be positive")
	ErrMissingDSN    = errors.New("database.dsn must be set")
	ErrMissingRedis  = errors.New("events.redis_url is required when events are enabled in production")
)

type Config struct {
	Env      string         `yaml:"env"`
	HTTP     HTTPConfig     `yaml:"http"`
	Log      LogConfig      `yaml:"log"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Events   EventsConfig   `yaml:"events"`
}

type HTTPConfig struct {
	Addr         string        `yaml:"addr"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type DatabaseConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

type AuthConfig struct {
	JWTSecret  string        `yaml:"jwt_secret"`
	SessionTTL time.Duration `yaml:"session_ttl"`
	CookieName string        `yaml:"cookie_name"`
	BcryptCost int           `yaml:"bcrypt_cost"`
}

type EventsConfig struct {
	Enabled  bool   `yaml:"enabled"`
	RedisURL string `yaml:"redis_url"`
}

func Default() Config {
	return Config{
		Env: EnvDevelopment,
		HTTP: HTTPConfig{
			Addr:         ":3000",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Log: LogConfig{
			Level: "debug",
		},
		Database: DatabaseConfig{
			Driver: "sqlite",
			DSN:    "file:data/penpot.db?_pragma=foreign_keys(1)",
		},
		Auth: AuthConfig{
			SessionTTL: 7 * 24 * time.Hour,
			CookieName: "penpot-session",
			BcryptCost: 10,
		},
	}
}

// Load builds the configuration from defaults, the optional YAML file at path
// and environment overrides, then validates it.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFromYAML(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// UsesDevSecret reports whether sessions are signed with the development default
func (c Config) UsesDevSecret() bool {
	return c.Auth.JWTSecret == "" || c.Auth.JWTSecret == DevJWTSecret
}

// SigningSecret returns the secret sessions are signed with
func (c Config) SigningSecret() []byte {
	if c.Auth.JWTSecret == "" {
		return []byte(DevJWTSecret)
	}
	return []byte(c.Auth.JWTSecret)
}

// Validate rejects configurations the service must not start with
func (c Config) Validate() error {
	switch c.Env {
	case EnvDevelopment, EnvProduction:
	default:
		return fmt.Errorf("%w: got %q", ErrInvalidEnv, c.Env)
	}

	if c.IsProduction() {
		if c.Auth.JWTSecret == "" {
			return ErrMissingSecret
		}
		if c.Auth.JWTSecret == DevJWTSecret {
			return ErrDefaultSecret
		}
		if c.Events.Enabled && c.Events.RedisURL == "" {
			return ErrMissingRedis
		}
	}

	if c.Auth.SessionTTL <= 0 {
		return ErrInvalidTTL
	}
	if c.Database.DSN == "" {
		return ErrMissingDSN
	}

	return nil
}

func loadFromYAML(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("unmarshal config yaml: %w", err)
	}

	return nil
}

func applyEnvOverrides(cfg *Config) error {
	overrideString("APP_ENV", &cfg.Env)
	overrideString("HTTP_ADDR", &cfg.HTTP.Addr)
	if err := overrideDuration("HTTP_READ_TIMEOUT", &cfg.HTTP.ReadTimeout); err != nil {
		return err
	}
	if err := overrideDuration("HTTP_WRITE_TIMEOUT", &cfg.HTTP.WriteTimeout); err != nil {
		return err
	}
	if err := overrideDuration("HTTP_IDLE_TIMEOUT", &cfg.HTTP.IdleTimeout); err != nil {
		return err
	}

	overrideString("LOG_LEVEL", &cfg.Log.Level)

	overrideString("DATABASE_DRIVER", &cfg.Database.Driver)
	overrideString("DATABASE_DSN", &cfg.Database.DSN)

	overrideString("JWT_SECRET", &cfg.Auth.JWTSecret)
	overrideString("SESSION_COOKIE", &cfg.Auth.CookieName)
	if err := overrideDuration("SESSION_TTL", &cfg.Auth.SessionTTL); err != nil {
		return err
	}
	if err := overrideInt("BCRYPT_COST", &cfg.Auth.BcryptCost); err != nil {
		return err
	}

	if err := overrideBool("EVENTS_ENABLED", &cfg.Events.Enabled); err != nil {
		return err
	}
	overrideString("REDIS_URL", &cfg.Events.RedisURL)

	return nil
}

func overrideString(key string, dst *string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func overrideDuration(key string, dst *time.Duration) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("parse %s: %w", key, err)
	}
	*dst = d
	return nil
}

func overrideInt(key string, dst *int) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("parse %s: %w", key, err)
	}
	*dst = n
	return nil
}

func overrideBool(key string, dst *bool) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("parse %s: %w", key, err)
	}
	*dst = b
	return nil
}

package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v10"
)

// App holds core runtime configuration shared across services.
type App struct {
	Name                    string        `env:"APP_NAME" envDefault:"escaperoom"`
	Env                     string        `env:"APP_ENV" envDefault:"development"`
	HTTPAddr                string        `env:"HTTP_ADDR" envDefault:"0.0.0.0:8080"`
	LogLevel                string        `env:"LOG_LEVEL" envDefault:"info"`
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_SECONDS" envDefault:"20s"`

	Postgres Postgres
	Redis    Redis
	Security Security
	AI       AI
	Cache    Cache
}

// Postgres captures connection info for the SQL database. URL wins over the
// individual parts when both are set.
type Postgres struct {
	URL         string `env:"DATABASE_URL"`
	Host        string `env:"PG_HOST"`
	Port        int    `env:"PG_PORT" envDefault:"5432"`
	User        string `env:"PG_USER"`
	Password    string `env:"PG_PASSWORD"`
	Database    string `env:"PG_DATABASE"`
	SSLMode     string `env:"PG_SSL_MODE" envDefault:"disable"`
	MaxConns    int    `env:"PG_MAX_CONNS" envDefault:"10"`
	AutoMigrate bool   `env:"PG_AUTO_MIGRATE" envDefault:"false"`
}

// Redis is optional; an empty address disables the story cache.
type Redis struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
	PoolSize int    `env:"REDIS_POOL_SIZE" envDefault:"20"`
}

// Security stores secrets for signing and auth.
type Security struct {
	JWTSecret  string        `env:"JWT_SECRET,notEmpty"`
	AccessTTL  time.Duration `env:"JWT_ACCESS_TTL" envDefault:"24h"`
	BcryptCost int           `env:"BCRYPT_COST" envDefault:"12"`
}

// AI configures the Gemini generation client. Generation is disabled
// without an API key.
type AI struct {
	APIKey      string        `env:"GOOGLE_API_KEY"`
	Model       string        `env:"AI_MODEL" envDefault:"gemini-2.0-flash"`
	BaseURL     string        `env:"AI_BASE_URL" envDefault:"https://generativelanguage.googleapis.com"`
	HTTPTimeout time.Duration `env:"AI_HTTP_TIMEOUT" envDefault:"60s"`
}

// Cache tunes the Redis story cache.
type Cache struct {
	StoryTTL time.Duration `env:"STORY_CACHE_TTL" envDefault:"10m"`
}

var ErrNoDatabase = errors.New("database location missing: set DATABASE_URL or PG_HOST, PG_USER and PG_DATABASE")

// Load parses environment variables into App config.
func Load() (*App, error) {
	cfg := &App{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Postgres.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadPostgres parses only the database section, for tools that need nothing else.
func LoadPostgres() (*Postgres, error) {
	cfg := &Postgres{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse postgres config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// GenerationEnabled reports whether an API key is configured.
func (a AI) GenerationEnabled() bool {
	return a.APIKey != ""
}

// ConnString returns a pgx connection string.
func (p Postgres) ConnString() string {
	if p.URL != "" {
		return p.URL
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(p.User, p.Password),
		Host:   fmt.Sprintf("%s:%d", p.Host, p.Port),
		Path:   "/" + p.Database,
	}
	q := url.Values{}
	q.Set("sslmode", p.SSLMode)
	if p.MaxConns > 0 {
		q.Set("pool_max_conns", fmt.Sprint(p.MaxConns))
	}
	u.RawQuery = q.Encode()
	return u.String()
}

func (p Postgres) validate() error {
	if p.URL != "" {
		return nil
	}
	if p.Host == "" || p.User == "" || p.Database == "" {
		return ErrNoDatabase
	}
	return nil
}

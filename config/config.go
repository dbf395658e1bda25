package config

import (
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is read from the environment, optionally seeded by a .env file.
type Config struct {
	Port           string   `env:"PORT" envDefault:"8080"`
	DatabaseURL    string   `env:"DATABASE_URL,required,notEmpty"`
	JWTSecret      string   `env:"JWT_SECRET,required,notEmpty"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`

	SportsDBKey     string `env:"SPORTSDB_API_KEY" envDefault:"3"`
	SportsDBBaseURL string `env:"SPORTSDB_BASE_URL" envDefault:"https://www.thesportsdb.com/api/v1/json"`
	Season          string `env:"SPORTSDB_SEASON" envDefault:"2025"`
	Timezone        string `env:"SPORTSDB_TIMEZONE" envDefault:"America/Argentina/Buenos_Aires"`

	SyncEnabled  bool   `env:"SYNC_ENABLED" envDefault:"true"`
	SyncSchedule string `env:"SYNC_SCHEDULE" envDefault:"0 */5 * * * *"`

	PredictionCutoff time.Duration `env:"PREDICTION_CUTOFF" envDefault:"10m"`
}

// Load reads .env when present and parses the environment into a Config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	return Parse()
}

func Parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.PredictionCutoff < 0 {
		return nil, fmt.Errorf("PREDICTION_CUTOFF must not be negative, got %s", cfg.PredictionCutoff)
	}
	return &cfg, nil
}

// Location resolves Timezone, falling back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		log.Printf("Unknown timezone %q, using UTC: %v", c.Timezone, err)
		return time.UTC
	}
	return loc
}

package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// MinBcryptCost is the lowest work factor accepted for password hashing.
const MinBcryptCost = 10

type Config struct {
	Port               string        `env:"PORT" envDefault:"4000"`
	GinMode            string        `env:"GIN_MODE" envDefault:"debug"`
	DatabaseURL        string        `env:"DATABASE_URL" envDefault:"./data.sqlite"` // postgres:// URL or SQLite file path
	RedisURL           string        `env:"REDIS_URL"`                               // empty disables the task cache
	TaskCacheTTL       time.Duration `env:"TASK_CACHE_TTL" envDefault:"5m"`
	JWTSecret          string        `env:"JWT_SECRET"`                    // Secret key for JWT token signing
	JWTTTL             int           `env:"JWT_TTL_HOURS" envDefault:"168"` // JWT token expiration time in hours
	BcryptCost         int           `env:"BCRYPT_COST" envDefault:"10"`
	CORSAllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`
}

// Load reads an optional .env file, decodes the environment into a Config
// and validates it.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables or defaults")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	for i, origin := range cfg.CORSAllowedOrigins {
		cfg.CORSAllowedOrigins[i] = strings.TrimSpace(origin)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the server cannot safely start with.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.JWTSecret) == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.JWTTTL <= 0 {
		errs = append(errs, fmt.Errorf("JWT_TTL_HOURS must be positive, got %d", c.JWTTTL))
	}
	if c.BcryptCost < MinBcryptCost || c.BcryptCost > bcrypt.MaxCost {
		errs = append(errs, fmt.Errorf("BCRYPT_COST must be between %d and %d, got %d", MinBcryptCost, bcrypt.MaxCost, c.BcryptCost))
	}
	if strings.TrimSpace(c.DatabaseURL) == "" {
		errs = append(errs, errors.New("DATABASE_URL is required"))
	}
	if c.TaskCacheTTL < 0 {
		errs = append(errs, errors.New("TASK_CACHE_TTL must not be negative"))
	}
	return errors.Join(errs...)
}

// TokenTTL returns the token lifetime as a duration.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.JWTTTL) * time.Hour
}

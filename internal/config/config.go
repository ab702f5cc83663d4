package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Default values for optional settings.
const (
	DefaultAddr        = ":8000"
	DefaultCORSOrigins = "http://localhost:3000"
	DefaultTokenTTL    = 168 * time.Hour // 7 days
)

// requiredVars must all be present at startup, otherwise the process does
// not start.
var requiredVars = []string{"DATABASE_URL", "JWT_SECRET"}

// Config holds all runtime configuration, loaded once at startup.
type Config struct {
	DatabaseURL string
	JWTSecret   string
	Addr        string
	CORSOrigins []string
	TokenTTL    time.Duration
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first if present. It returns an error enumerating
// every missing required variable.
func Load() (*Config, error) {
	// Missing .env is fine, real environments set variables directly.
	_ = godotenv.Load()

	var missing []string
	for _, name := range requiredVars {
		if os.Getenv(name) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	cfg := &Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		Addr:        DefaultAddr,
		TokenTTL:    DefaultTokenTTL,
	}

	if addr := os.Getenv("ADDR"); addr != "" {
		cfg.Addr = addr
	}

	origins := os.Getenv("CORS_ALLOWED_ORIGINS")
	if origins == "" {
		origins = DefaultCORSOrigins
	}
	for _, origin := range strings.Split(origins, ",") {
		if o := strings.TrimSpace(origin); o != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, o)
		}
	}

	if ttl := os.Getenv("TOKEN_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return nil, fmt.Errorf("invalid TOKEN_TTL: %w", err)
		}
		cfg.TokenTTL = d
	}

	return cfg, nil
}

package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the service settings, loaded from environment variables.
type Config struct {
	// Addr is the listen address of the HTTP server.
	Addr string `env:"ADDR" envDefault:":8081"`
	// MaxActiveSessions caps concurrent operator sessions.
	MaxActiveSessions int `env:"MAX_ACTIVE_SESSIONS" envDefault:"2"`
	// SessionIdleExpiry is how long a session survives without a heartbeat.
	SessionIdleExpiry time.Duration `env:"SESSION_IDLE_EXPIRY" envDefault:"10m"`
	// AuthServiceURL points at the users endpoint of the auth service.
	// Empty disables operator validation.
	AuthServiceURL string `env:"AUTH_SERVICE_URL"`
}

// Load parses the configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

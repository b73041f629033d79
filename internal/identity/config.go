package identity

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// Config is the identity-provider service credential, supplied as a single
// JSON blob in the IDENTITY_CONFIG environment variable.
type Config struct {
	ProjectID       string `json:"project_id"`
	JWTSecret       string `json:"jwt_secret"`
	TokenTTLMinutes int    `json:"token_ttl_minutes"`
}

// TokenTTL returns the configured token lifetime, defaulting to one hour.
func (c Config) TokenTTL() time.Duration {
	if c.TokenTTLMinutes <= 0 {
		return time.Hour
	}
	return time.Duration(c.TokenTTLMinutes) * time.Minute
}

// ParseConfig parses the credential blob. Surrounding whitespace is tolerated;
// a missing signing secret is an error.
func ParseConfig(blob string) (Config, error) {
	blob = strings.TrimSpace(blob)
	if blob == "" {
		return Config{}, fmt.Errorf("identity config is empty")
	}

	var cfg Config
	if err := json.Unmarshal([]byte(blob), &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse identity config: %w", err)
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("identity config is missing jwt_secret")
	}
	return cfg, nil
}

// ConfigFromEnv reads and parses IDENTITY_CONFIG.
func ConfigFromEnv() (Config, error) {
	blob, ok := os.LookupEnv("IDENTITY_CONFIG")
	if !ok {
		return Config{}, fmt.Errorf("IDENTITY_CONFIG environment variable is not set")
	}
	return ParseConfig(blob)
}

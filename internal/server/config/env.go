package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with environment variables. A .env file in the
// working directory is loaded first if present; real environment variables
// win over .env values (godotenv does not override existing ones).
//
// Recognized variables:
//
//	GEOSICK_ADDRESS         bind address
//	GEOSICK_DATABASE_DSN    PostgreSQL DSN
//	GEOSICK_SECRET_KEY      JWT signing secret
//	GEOSICK_TOKEN_VALIDITY  access token lifetime, e.g. "15m"
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("GEOSICK_ADDRESS"); v != "" {
		cfg.EndpointAddr = v
	}
	if v := os.Getenv("GEOSICK_DATABASE_DSN"); v != "" {
		cfg.DatabaseDSN = v
	}
	if v := os.Getenv("GEOSICK_SECRET_KEY"); v != "" {
		cfg.SecretKey = v
	}
	if v := os.Getenv("GEOSICK_TOKEN_VALIDITY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.AccessTokenValidityDuration = d
		}
	}
}

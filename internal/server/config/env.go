package config

import (
	"os"
	"time"
)

// parseEnv overlays Config fields from environment variables.
//
// Recognized variables:
//
//	FABLE_ADDR            HTTP bind address (e.g., ":8080")
//	FABLE_DATABASE_DSN    PostgreSQL DSN
//	FABLE_JWT_SECRET      JWT HMAC secret
//	FABLE_TOKEN_VALIDITY  access token lifetime, Go duration (e.g., "168h")
//	FABLE_CIPHER_KEY      32-character AES-256 key
//	FABLE_CIPHER_IV       16-character IV
//
// An unparseable FABLE_TOKEN_VALIDITY is ignored and the previous value kept.
func parseEnv(config *Config) {
	if v := os.Getenv("FABLE_ADDR"); v != "" {
		config.Addr = v
	}
	if v := os.Getenv("FABLE_DATABASE_DSN"); v != "" {
		config.DatabaseDSN = v
	}
	if v := os.Getenv("FABLE_JWT_SECRET"); v != "" {
		config.JWTSecret = v
	}
	if v := os.Getenv("FABLE_TOKEN_VALIDITY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			config.TokenValidityDuration = d
		}
	}
	if v := os.Getenv("FABLE_CIPHER_KEY"); v != "" {
		config.CipherKey = v
	}
	if v := os.Getenv("FABLE_CIPHER_IV"); v != "" {
		config.CipherIV = v
	}
}

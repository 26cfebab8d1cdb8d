// Package config loads application configuration from environment variables.
package config

import (
	"crypto/sha256"
	"fmt"
	"os"
	"strconv"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	ListenAddr string
	DBPath     string
	CORSOrigin string
	CanvasRPS  float64

	// SecretKey is the 32-byte AES-256 key for credential encryption,
	// derived from COURSEPANEL_SECRET_KEY with SHA-256.
	SecretKey []byte
}

// Load reads configuration from environment variables and returns a
// validated Config.
//
// COURSEPANEL_SECRET_KEY is required: a missing key is a configuration
// error, never a runtime fallback -- a generated key would silently make
// every stored token undecryptable after a restart. Optional variables with
// defaults: COURSEPANEL_LISTEN_ADDR (127.0.0.1:8080), COURSEPANEL_DB_PATH
// (coursepanel.db), COURSEPANEL_CORS_ORIGIN (http://localhost:3000),
// COURSEPANEL_CANVAS_RPS (5).
func Load() (*Config, error) {
	secret := os.Getenv("COURSEPANEL_SECRET_KEY")
	if secret == "" {
		return nil, fmt.Errorf("COURSEPANEL_SECRET_KEY is required")
	}
	key := sha256.Sum256([]byte(secret))

	listenAddr := "127.0.0.1:8080"
	if v, ok := os.LookupEnv("COURSEPANEL_LISTEN_ADDR"); ok {
		listenAddr = v
	}

	dbPath := "coursepanel.db"
	if v, ok := os.LookupEnv("COURSEPANEL_DB_PATH"); ok {
		dbPath = v
	}

	corsOrigin := "http://localhost:3000"
	if v, ok := os.LookupEnv("COURSEPANEL_CORS_ORIGIN"); ok {
		corsOrigin = v
	}

	canvasRPS := 5.0
	if v, ok := os.LookupEnv("COURSEPANEL_CANVAS_RPS"); ok {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("COURSEPANEL_CANVAS_RPS has invalid value %q", v)
		}
		canvasRPS = parsed
	}

	return &Config{
		ListenAddr: listenAddr,
		DBPath:     dbPath,
		CORSOrigin: corsOrigin,
		CanvasRPS:  canvasRPS,
		SecretKey:  key[:],
	}, nil
}

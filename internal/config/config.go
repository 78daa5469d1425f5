// SPDX-License-Identifier: EPL-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Catalog sources.
const (
	CatalogStatic = "static"
	CatalogRemote = "remote"
)

var ErrInvalidCatalog = errors.New("config: MPC_CATALOG must be static or remote")

// Config holds all runtime configuration, loaded from environment variables.
type Config struct {
	// SampleBaseURL serves sample files and, for the remote catalog, bank
	// metadata.
	SampleBaseURL string
	Catalog       string
	FetchTimeout  time.Duration

	// Budget for LoadBank when the caller gives none.
	MaxMemoryMB int

	// Master output
	SampleRate int

	StretchQuality  string
	SwingResolution int
}

// Load reads .env from the working directory, when present, and then the
// environment.
func Load() (Config, error) {
	return LoadFile(".env")
}

// LoadFile is Load with an explicit env file. Variables already set in the
// environment win over the file.
func LoadFile(envFile string) (Config, error) {
	if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("load %v: %w", envFile, err)
	}

	cfg := Config{
		SampleBaseURL: envStr("MPC_SAMPLE_BASE_URL", "http://localhost:3000"),
		Catalog:       envStr("MPC_CATALOG", CatalogStatic),
		FetchTimeout:  time.Duration(envInt("MPC_FETCH_TIMEOUT", 30)) * time.Second,

		MaxMemoryMB: envInt("MPC_MAX_MEMORY_MB", 16),
		SampleRate:  envInt("MPC_SAMPLE_RATE", 44100),

		StretchQuality:  envStr("MPC_STRETCH_QUALITY", "standard"),
		SwingResolution: envInt("MPC_SWING_RESOLUTION", 16),
	}

	if cfg.Catalog != CatalogStatic && cfg.Catalog != CatalogRemote {
		return Config{}, fmt.Errorf("%w: got %q", ErrInvalidCatalog, cfg.Catalog)
	}
	return cfg, nil
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

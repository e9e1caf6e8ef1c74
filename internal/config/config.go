package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"go-pipeline-dashboard/pkg/utils"
)

// Config holds the deployment parameters of the dashboard backend
type Config struct {
	// Addr is the listen address, e.g. ":8080"
	Addr string
	// DBPath is the SQLite database file
	DBPath string
	// CORSOrigins is the comma-split allow-list, "*" by default
	CORSOrigins []string
	// FreshnessWindow bounds timeliness rules
	FreshnessWindow time.Duration
	// QualityEmptyBatchZero records empty-batch evaluations as 0% results;
	// when false they are dropped from the result log instead
	QualityEmptyBatchZero bool
	// SeedOnStart installs the sample fixtures when the database is empty
	SeedOnStart bool
}

// Load reads configuration from a .env file (if present) and the
// environment, falling back to defaults that work out of the box
func Load() Config {
	godotenv.Load()

	return Config{
		Addr:                  envOr("ADDR", ":8080"),
		DBPath:                envOr("DB_PATH", "dashboard.db"),
		CORSOrigins:           strings.Split(envOr("CORS_ORIGINS", "*"), ","),
		FreshnessWindow:       utils.ParseDuration(os.Getenv("QUALITY_FRESHNESS_WINDOW"), 7*24*time.Hour),
		QualityEmptyBatchZero: envBool("QUALITY_EMPTY_BATCH_ZERO", true),
		SeedOnStart:           envBool("SEED_ON_START", false),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

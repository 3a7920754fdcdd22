package config

import (
	"os"
	"strconv"

	"driftlens/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Analysis AnalysisConfig
	Paths    PathConfig
}

// DatabaseConfig holds database connection settings. URL may be empty, in
// which case run persistence is disabled.
type DatabaseConfig struct {
	URL string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// AnalysisConfig holds comparison-engine defaults
type AnalysisConfig struct {
	Alpha            float64
	NumericStrategy  string
	DegeneratePolicy string
	Parallelism      int
}

// PathConfig holds file system paths
type PathConfig struct {
	ReferenceFile string
	CandidateFile string
	ReportFile    string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	cfg := &Config{
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		Server: ServerConfig{
			Port:    getEnv("PORT", "8080"),
			GinMode: getEnv("GIN_MODE", "release"),
		},
		Analysis: AnalysisConfig{
			Alpha:            getEnvFloat("ANALYSIS_ALPHA", 0.05),
			NumericStrategy:  getEnv("ANALYSIS_NUMERIC_STRATEGY", "welch"),
			DegeneratePolicy: getEnv("ANALYSIS_DEGENERATE_POLICY", "fail"),
			Parallelism:      getEnvInt("ANALYSIS_PARALLELISM", 0),
		},
		Paths: PathConfig{
			ReferenceFile: os.Getenv("REFERENCE_FILE"),
			CandidateFile: os.Getenv("CANDIDATE_FILE"),
			ReportFile:    getEnv("REPORT_FILE", "report.xlsx"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Analysis.Alpha <= 0 || c.Analysis.Alpha >= 1 {
		return errors.ConfigInvalid("ANALYSIS_ALPHA must be in (0, 1)")
	}
	switch c.Analysis.DegeneratePolicy {
	case "fail", "skip":
	default:
		return errors.ConfigInvalid("ANALYSIS_DEGENERATE_POLICY must be \"fail\" or \"skip\"")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

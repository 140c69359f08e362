package config

import (
	"os"
	"strconv"
	"strings"

	"psychstats/internal/errors"
)

// Config represents the complete application configuration. Data paths
// are explicit here; nothing downstream consults the working directory.
type Config struct {
	Data   DataConfig
	Output OutputConfig
}

// DataConfig holds the experiment input settings
type DataConfig struct {
	// Files lists the experiment data files (CSV or XLSX), one per
	// experiment, concatenated in this order.
	Files []string

	// NTrials is the trial count behind each rate field (default 4).
	NTrials int
}

// OutputConfig holds optional report sinks
type OutputConfig struct {
	CSVPath  string // write the report CSV here when set
	HTMLPath string // write the HTML rendering here when set
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Data: DataConfig{
			Files:   splitList(os.Getenv("DATA_FILES")),
			NTrials: getEnvIntOrDefault("N_TRIALS", 4),
		},
		Output: OutputConfig{
			CSVPath:  os.Getenv("OUTPUT_CSV"),
			HTMLPath: os.Getenv("OUTPUT_HTML"),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if len(config.Data.Files) == 0 {
		return errors.ConfigInvalid("DATA_FILES is required (comma-separated experiment file paths)")
	}
	if config.Data.NTrials < 1 {
		return errors.ConfigInvalid("N_TRIALS must be at least 1")
	}
	return nil
}

func splitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

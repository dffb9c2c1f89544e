package config

import (
	"fmt"
	"os"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// LoadConfig loads and parses the configuration file. Fields missing from the
// file keep their Default values.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func Validate(config *Config) error {
	if config.ArrivalMean <= 0 {
		return fmt.Errorf("arrivalMean must be greater than 0")
	}

	if config.ServiceMean <= 0 {
		return fmt.Errorf("serviceMean must be greater than 0")
	}

	switch config.PreferenceMode {
	case PreferenceModeRandom:
		if config.HighCategoryProbability < 0 || config.HighCategoryProbability > 1 {
			return fmt.Errorf("highCategoryProbability must be between 0 and 1")
		}
	case PreferenceModeEveryNth:
		if config.HighCategoryEvery <= 0 {
			return fmt.Errorf("highCategoryEvery must be greater than 0")
		}
	default:
		return fmt.Errorf("preferenceMode must be either '%s' or '%s'", PreferenceModeRandom, PreferenceModeEveryNth)
	}

	if config.TimeScale <= 0 {
		return fmt.Errorf("timeScale must be greater than 0")
	}

	if config.RunDuration < 0 {
		return fmt.Errorf("runDuration must not be negative")
	}

	if config.MaxClaimRetries < 0 {
		return fmt.Errorf("maxClaimRetries must not be negative")
	}

	if config.ReportSchedule != "" {
		if _, err := cron.ParseStandard(config.ReportSchedule); err != nil {
			return fmt.Errorf("reportSchedule %q: %w", config.ReportSchedule, err)
		}
	}

	return nil
}

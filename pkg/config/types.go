package config

import (
	"time"
)

// Config represents the entire configuration for the consultation simulator
type Config struct {
	// Mean of the exponential inter-arrival time between clients
	ArrivalMean time.Duration `yaml:"arrivalMean"`
	// Mean of the exponential consultation (service) time
	ServiceMean time.Duration `yaml:"serviceMean"`

	PreferenceMode PreferenceMode `yaml:"preferenceMode"`
	// Chance that a client prefers the high-category lawyer (random mode)
	HighCategoryProbability float64 `yaml:"highCategoryProbability"`
	// Every Nth client prefers the high-category lawyer (every-nth mode)
	HighCategoryEvery int `yaml:"highCategoryEvery"`

	// Model time runs TimeScale times faster than wall time
	TimeScale float64 `yaml:"timeScale"`
	// Seed for the random process; 0 picks a time-based seed
	Seed int64 `yaml:"seed"`

	LogFile string `yaml:"logFile"`
	// Wall time the CLI keeps the simulation running; 0 runs until interrupted
	RunDuration time.Duration `yaml:"runDuration"`
	// Cron spec for periodic status reports; empty disables reporting
	ReportSchedule string `yaml:"reportSchedule"`

	// How many times a client retries after a token was granted with no
	// matching free lawyer
	MaxClaimRetries int `yaml:"maxClaimRetries"`
}

// PreferenceMode defines how a client's category preference is decided
type PreferenceMode string

const (
	PreferenceModeRandom   PreferenceMode = "random"
	PreferenceModeEveryNth PreferenceMode = "every-nth"
)

// Default returns the configuration of the original consultation office:
// a client every 3 minutes on average, 10 minute consultations, and one
// client in five asking for the high-category lawyer.
func Default() *Config {
	return &Config{
		ArrivalMean:             3 * time.Minute,
		ServiceMean:             10 * time.Minute,
		PreferenceMode:          PreferenceModeRandom,
		HighCategoryProbability: 0.2,
		HighCategoryEvery:       5,
		TimeScale:               1,
		LogFile:                 "consultation_log.txt",
		MaxClaimRetries:         3,
	}
}

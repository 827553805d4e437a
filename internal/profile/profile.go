package profile

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

// Profile is the runtime configuration for the study core.
type Profile struct {
	// Mode can be "prod" or "dev"
	Mode string
	// Data is the data directory
	Data string
	// Driver is the key-value store driver (sqlite, postgres or memory)
	Driver string
	// DSN points to where studybuddy stores its own data
	DSN string
	// Version is the current version of the core
	Version string

	// AI configuration
	AIEnabled     bool          // STUDYBUDDY_AI_ENABLED (default: false)
	AIAPIKey      string        // STUDYBUDDY_AI_API_KEY
	AIBaseURL     string        // STUDYBUDDY_AI_BASE_URL (default: https://api.openai.com/v1)
	AIModel       string        // STUDYBUDDY_AI_MODEL (default: gpt-4o-mini)
	AITimeout     time.Duration // STUDYBUDDY_AI_TIMEOUT (default: 30s)
	AIMaxTokens   int           // STUDYBUDDY_AI_MAX_TOKENS (default: 1024)
	AITemperature float64       // STUDYBUDDY_AI_TEMPERATURE (default: 0.7)

	// Summary length hints passed to the remote model
	SummaryMaxLength int // STUDYBUDDY_SUMMARY_MAX_LENGTH (default: 150)
	SummaryMinLength int // STUDYBUDDY_SUMMARY_MIN_LENGTH (default: 30)

	// OCR text-extraction configuration
	OCREndpoint string        // STUDYBUDDY_OCR_ENDPOINT
	OCRAPIKey   string        // STUDYBUDDY_OCR_API_KEY
	OCRTimeout  time.Duration // STUDYBUDDY_OCR_TIMEOUT (default: 20s)
}

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// IsAIEnabled returns true if AI is enabled and an API key is configured.
func (p *Profile) IsAIEnabled() bool {
	return p.AIEnabled && p.AIAPIKey != ""
}

// getEnvOrDefault returns the environment variable value or the default value.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getBoolEnv returns true when the environment variable is "true" or "1".
func getBoolEnv(key string) bool {
	v := os.Getenv(key)
	return v == "true" || v == "1"
}

// getIntEnvOrDefault returns the integer environment variable value or the default.
func getIntEnvOrDefault(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultValue
}

// getDurationEnvOrDefault returns the duration environment variable value or the default.
func getDurationEnvOrDefault(key string, defaultValue time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultValue
}

// FromEnv loads configuration from STUDYBUDDY_* environment variables.
// Values already set on the profile act as defaults and are overridden by
// explicit environment variables.
func (p *Profile) FromEnv() {
	p.Mode = getEnvOrDefault("STUDYBUDDY_MODE", defaultString(p.Mode, "dev"))
	p.Data = getEnvOrDefault("STUDYBUDDY_DATA", p.Data)
	p.Driver = getEnvOrDefault("STUDYBUDDY_DRIVER", defaultString(p.Driver, "sqlite"))
	p.DSN = getEnvOrDefault("STUDYBUDDY_DSN", p.DSN)

	if getBoolEnv("STUDYBUDDY_AI_ENABLED") {
		p.AIEnabled = true
	}
	p.AIAPIKey = getEnvOrDefault("STUDYBUDDY_AI_API_KEY", p.AIAPIKey)
	p.AIBaseURL = getEnvOrDefault("STUDYBUDDY_AI_BASE_URL", defaultString(p.AIBaseURL, "https://api.openai.com/v1"))
	p.AIModel = getEnvOrDefault("STUDYBUDDY_AI_MODEL", defaultString(p.AIModel, "gpt-4o-mini"))
	p.AITimeout = getDurationEnvOrDefault("STUDYBUDDY_AI_TIMEOUT", defaultDuration(p.AITimeout, 30*time.Second))
	p.AIMaxTokens = getIntEnvOrDefault("STUDYBUDDY_AI_MAX_TOKENS", defaultInt(p.AIMaxTokens, 1024))
	if p.AITemperature == 0 {
		p.AITemperature = 0.7
	}

	p.SummaryMaxLength = getIntEnvOrDefault("STUDYBUDDY_SUMMARY_MAX_LENGTH", defaultInt(p.SummaryMaxLength, 150))
	p.SummaryMinLength = getIntEnvOrDefault("STUDYBUDDY_SUMMARY_MIN_LENGTH", defaultInt(p.SummaryMinLength, 30))

	p.OCREndpoint = getEnvOrDefault("STUDYBUDDY_OCR_ENDPOINT", p.OCREndpoint)
	p.OCRAPIKey = getEnvOrDefault("STUDYBUDDY_OCR_API_KEY", p.OCRAPIKey)
	p.OCRTimeout = getDurationEnvOrDefault("STUDYBUDDY_OCR_TIMEOUT", defaultDuration(p.OCRTimeout, 20*time.Second))
}

// Validate checks the profile and fills derived defaults.
func (p *Profile) Validate() error {
	if p.Mode != "prod" && p.Mode != "dev" {
		p.Mode = "dev"
	}

	if p.Data == "" {
		if p.Driver == "sqlite" {
			dir, err := os.Getwd()
			if err != nil {
				return errors.Wrap(err, "failed to get working directory")
			}
			p.Data = dir
		}
	} else {
		if _, err := os.Stat(p.Data); err != nil {
			return errors.Wrapf(err, "data directory %q not accessible", p.Data)
		}
	}

	switch p.Driver {
	case "sqlite":
		if p.DSN == "" {
			p.DSN = filepath.Join(p.Data, "studybuddy_"+p.Mode+".db")
		}
	case "postgres":
		if p.DSN == "" {
			return errors.New("dsn is required for postgres driver")
		}
	case "memory":
	default:
		return errors.Errorf("unknown driver %q: only sqlite, postgres and memory are supported", p.Driver)
	}

	return nil
}

func defaultString(v, d string) string {
	if v != "" {
		return v
	}
	return d
}

func defaultInt(v, d int) int {
	if v != 0 {
		return v
	}
	return d
}

func defaultDuration(v, d time.Duration) time.Duration {
	if v != 0 {
		return v
	}
	return d
}

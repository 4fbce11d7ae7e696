package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	// DefaultModel matches the model the tool was built against; any
	// model served by the configured endpoint works.
	DefaultModel = "ministral-3:3b"
	// DefaultBaseURL is Ollama's OpenAI-compatible endpoint.
	DefaultBaseURL = "http://localhost:11434/v1"

	APIKeyPathEnvVar = "LLM_API_KEY_FILE"
	EnvPathVar       = "SCREEN_SOLVER_ENV"
)

type Config struct {
	Model             string
	BaseURL           string
	APIKey            string
	TesseractLang     string
	DebounceMS        int
	SettleMS          int
	TypeDelayMS       int
	EnableFileLogging bool
}

// Load reads configuration from a .env file next to the executable (or the
// file named by SCREEN_SOLVER_ENV), then from the environment. Every value
// has a working default; a bare install needs no configuration at all.
func Load() (*Config, error) {
	if envPath := resolveEnvPath(); envPath != "" {
		_ = godotenv.Load(envPath)
	}

	cfg := &Config{
		Model:             getEnvWithDefault("MODEL", DefaultModel),
		BaseURL:           getEnvWithDefault("LLM_BASE_URL", DefaultBaseURL),
		APIKey:            resolveAPIKey(),
		TesseractLang:     getEnvWithDefault("TESSERACT_LANG", "eng"),
		DebounceMS:        getEnvInt("DEBOUNCE_MS", 140),
		SettleMS:          getEnvInt("SETTLE_MS", 80),
		TypeDelayMS:       getEnvInt("TYPE_DELAY_MS", 300),
		EnableFileLogging: strings.ToLower(os.Getenv("ENABLE_FILE_LOGGING")) == "true",
	}
	return cfg, nil
}

// Debounce is the single-key vs. chord disambiguation interval.
func (c *Config) Debounce() time.Duration { return time.Duration(c.DebounceMS) * time.Millisecond }

// Settle is the wait after hiding the overlay, so its pixels are gone from
// the compositor before the screenshot is taken.
func (c *Config) Settle() time.Duration { return time.Duration(c.SettleMS) * time.Millisecond }

// TypeDelay is the wait after a middle click before synthetic keystrokes
// start, letting click-focus land on the target field.
func (c *Config) TypeDelay() time.Duration { return time.Duration(c.TypeDelayMS) * time.Millisecond }

func resolveEnvPath() string {
	execPath, err := os.Executable()
	if err == nil {
		exeEnv := filepath.Join(filepath.Dir(execPath), ".env")
		if _, err := os.Stat(exeEnv); err == nil {
			return exeEnv
		}
	}
	if alt := os.Getenv(EnvPathVar); alt != "" {
		if _, err := os.Stat(alt); err == nil {
			return alt
		}
	}
	return ""
}

// resolveAPIKey prefers a key file (so the key stays out of the environment)
// and falls back to LLM_API_KEY. Local endpoints typically need neither.
func resolveAPIKey() string {
	if keyPath := strings.TrimSpace(os.Getenv(APIKeyPathEnvVar)); keyPath != "" {
		if data, err := os.ReadFile(keyPath); err == nil {
			if fileKey := strings.TrimSpace(string(data)); fileKey != "" {
				return fileKey
			}
		}
	}
	return os.Getenv("LLM_API_KEY")
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n
}

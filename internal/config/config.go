package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"latexref/internal/corpus"
	"latexref/internal/macros"
)

// Parse error policies.
const (
	ParseErrorsFail = "fail"
	ParseErrorsSkip = "skip"
)

// Config holds all configuration for the application.
type Config struct {
	BookDir     string
	Units       []string
	OutputPath  string
	Denylist    []string
	ParseErrors string // "fail" or "skip"
	StrictLaTeX bool
	DBPath      string // Empty disables run history

	LLMBaseURL     string
	LLMAPIKey      string
	LLMModelName   string
	LLMTemperature float32
	ReferenceDir   string

	LogLevel  slog.Level
	LogFormat string
}

// Load reads configuration from environment variables and returns a Config struct.
// If a .env file exists in the current directory or one of its parents, it is loaded first.
// Environment variables already set take precedence over .env file values.
// Required values are checked per command by ValidateExtract and ValidateReference.
func Load() (*Config, error) {
	loadDotEnv()

	cfg := &Config{
		BookDir:      getEnv("BOOK_DIR", ""),
		Units:        getList("BOOK_UNITS", ",", corpus.DefaultUnits()),
		OutputPath:   getEnv("MACROS_OUTPUT", "macros_used.txt"),
		Denylist:     getList("MACRO_DENYLIST", getEnv("MACRO_DENYLIST_SEP", ","), macros.DefaultDenylist),
		ParseErrors:  strings.ToLower(getEnv("PARSE_ERRORS", ParseErrorsFail)),
		DBPath:       getEnv("DB_PATH", ""),
		LLMBaseURL:   getEnv("LLM_BASE_URL", "https://api.openai.com/v1"),
		LLMAPIKey:    getEnv("CHATGPT_KEY", getEnv("LLM_API_KEY", "")),
		LLMModelName: getEnv("LLM_MODEL", "gpt-4"),
		ReferenceDir: getEnv("REFERENCE_DIR", "."),
		LogFormat:    strings.ToLower(getEnv("LOG_FORMAT", "text")),
	}

	if cfg.ParseErrors != ParseErrorsFail && cfg.ParseErrors != ParseErrorsSkip {
		return nil, fmt.Errorf("PARSE_ERRORS must be %q or %q, got %q", ParseErrorsFail, ParseErrorsSkip, cfg.ParseErrors)
	}

	strict, err := strconv.ParseBool(getEnv("LATEX_STRICT", "false"))
	if err != nil {
		return nil, fmt.Errorf("LATEX_STRICT must be a boolean: %w", err)
	}
	cfg.StrictLaTeX = strict

	temperature, err := strconv.ParseFloat(getEnv("LLM_TEMPERATURE", "0.5"), 32)
	if err != nil {
		return nil, fmt.Errorf("LLM_TEMPERATURE must be a number: %w", err)
	}
	if temperature < 0 || temperature > 2 {
		return nil, fmt.Errorf("LLM_TEMPERATURE must be between 0 and 2")
	}
	cfg.LLMTemperature = float32(temperature)

	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("LOG_LEVEL is invalid: %w", err)
	}

	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}

	return cfg, nil
}

// ValidateExtract checks the values required by the extraction stage.
func (c *Config) ValidateExtract() error {
	if c.BookDir == "" {
		return fmt.Errorf("BOOK_DIR is required")
	}
	if len(c.Units) == 0 {
		return fmt.Errorf("BOOK_UNITS must name at least one folder")
	}
	if c.OutputPath == "" {
		return fmt.Errorf("MACROS_OUTPUT is required")
	}
	return nil
}

// ValidateReference checks the values required by the reference stage.
func (c *Config) ValidateReference() error {
	if c.LLMAPIKey == "" {
		return fmt.Errorf("CHATGPT_KEY (or LLM_API_KEY) is required")
	}
	if c.LLMModelName == "" {
		return fmt.Errorf("LLM_MODEL is required")
	}
	return nil
}

// loadDotEnv loads .env from the current directory, then the nearest parent holding one.
func loadDotEnv() {
	_ = godotenv.Load()

	wd, err := os.Getwd()
	if err != nil {
		return
	}

	dir := wd
	for i := 0; i < 5; i++ { // Limit search depth
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			return
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return // Reached filesystem root
		}
		dir = parent
	}
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getList reads a sep-separated list, trimming blanks around items.
func getList(key, sep string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return append([]string(nil), defaultValue...)
	}

	var items []string
	for _, item := range strings.Split(value, sep) {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

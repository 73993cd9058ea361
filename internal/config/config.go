// Package config loads application configuration from an optional YAML
// file with an environment overlay. Environment values win over file
// values; a .env file is honored when present.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Gemini GeminiConfig `yaml:"gemini"`
	Tavily TavilyConfig `yaml:"tavily"`
	Search SearchConfig `yaml:"search"`
}

type GeminiConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
}

type TavilyConfig struct {
	APIKey     string `yaml:"api_key"`
	BaseURL    string `yaml:"base_url"`
	MaxResults int    `yaml:"max_results"`
}

type SearchConfig struct {
	Workers        int      `yaml:"workers"`
	MaxRetries     int      `yaml:"max_retries"`
	RequestTimeout Duration `yaml:"request_timeout"`
	RateLimitRPS   float64  `yaml:"rate_limit_rps"`
}

// Duration is a time.Duration that unmarshals from YAML strings like "30s".
type Duration time.Duration

func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	out, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(out)
	return nil
}

func defaults() Config {
	return Config{
		Gemini: GeminiConfig{
			Model: "gemini-2.5-flash",
		},
		Tavily: TavilyConfig{
			MaxResults: 15,
		},
		Search: SearchConfig{
			MaxRetries:     2,
			RequestTimeout: Duration(30 * time.Second),
		},
	}
}

// Load builds the effective configuration: defaults, then the YAML file at
// path (optional when path is empty), then environment variables.
func Load(path string) (Config, error) {
	// Missing .env is the common case and not an error.
	_ = godotenv.Load()

	cfg := defaults()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	}

	if err := overlayEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func overlayEnv(cfg *Config) error {
	if v := envString("GEMINI_API_KEY"); v != "" {
		cfg.Gemini.APIKey = v
	}
	if v := envString("GEMINI_MODEL"); v != "" {
		cfg.Gemini.Model = v
	}
	if v := envString("GEMINI_BASE_URL"); v != "" {
		cfg.Gemini.BaseURL = v
	}
	if v := envString("TAVILY_API_KEY"); v != "" {
		cfg.Tavily.APIKey = v
	}
	if v := envString("TAVILY_BASE_URL"); v != "" {
		cfg.Tavily.BaseURL = v
	}

	var err error
	if cfg.Tavily.MaxResults, err = envInt("TAVILY_MAX_RESULTS", cfg.Tavily.MaxResults); err != nil {
		return err
	}
	if cfg.Search.Workers, err = envInt("WORKERS", cfg.Search.Workers); err != nil {
		return err
	}
	if cfg.Search.MaxRetries, err = envInt("MAX_RETRIES", cfg.Search.MaxRetries); err != nil {
		return err
	}
	timeout, err := envDuration("REQUEST_TIMEOUT", cfg.Search.RequestTimeout.Std())
	if err != nil {
		return err
	}
	cfg.Search.RequestTimeout = Duration(timeout)
	if cfg.Search.RateLimitRPS, err = envFloat("RATE_LIMIT_RPS", cfg.Search.RateLimitRPS); err != nil {
		return err
	}
	return nil
}

func envString(varName string) string {
	return strings.TrimSpace(os.Getenv(varName))
}

func envInt(varName string, fallback int) (int, error) {
	v := envString(varName)
	if v == "" {
		return fallback, nil
	}
	out, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s=%q: %w", varName, v, err)
	}
	return out, nil
}

func envFloat(varName string, fallback float64) (float64, error) {
	v := envString(varName)
	if v == "" {
		return fallback, nil
	}
	out, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s=%q: %w", varName, v, err)
	}
	return out, nil
}

func envDuration(varName string, fallback time.Duration) (time.Duration, error) {
	v := envString(varName)
	if v == "" {
		return fallback, nil
	}
	out, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s=%q: %w", varName, v, err)
	}
	return out, nil
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultAPIURL            = "http://localhost:8080/api"
	DefaultPageSize          = 10
	DefaultBackfillDelay     = time.Second
	DefaultRequestsPerSecond = 10.0
	DefaultHTTPTimeout       = 30 * time.Second
	DefaultLogLevel          = "info"
)

type Config struct {
	APIURL            string        `yaml:"api_url"`
	PageSize          int           `yaml:"page_size"`
	BackfillDelay     time.Duration `yaml:"backfill_delay"`
	RequestsPerSecond float64       `yaml:"requests_per_second"`
	HTTPTimeout       time.Duration `yaml:"http_timeout"`
	LogFile           string        `yaml:"log_file"`
	LogLevel          string        `yaml:"log_level"`
	HomeDir           string        `yaml:"home_dir"`
}

// GetHomeDir returns ~/.outreach, where the config, session and log live.
func GetHomeDir() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".outreach")
}

// GetConfigPath returns the default config file location.
func GetConfigPath() string {
	return filepath.Join(GetHomeDir(), "config.yml")
}

func Default() Config {
	home := GetHomeDir()
	return Config{
		APIURL:            DefaultAPIURL,
		PageSize:          DefaultPageSize,
		BackfillDelay:     DefaultBackfillDelay,
		RequestsPerSecond: DefaultRequestsPerSecond,
		HTTPTimeout:       DefaultHTTPTimeout,
		LogFile:           filepath.Join(home, "outreach.log"),
		LogLevel:          DefaultLogLevel,
		HomeDir:           home,
	}
}

// Load layers the defaults, the YAML file at path (missing is fine), a .env
// file in the working directory and OUTREACH_* environment variables.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = GetConfigPath()
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file: %w", err)
		}
	case os.IsNotExist(err):
	default:
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	_ = godotenv.Load()

	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("OUTREACH_API_URL"); v != "" {
		c.APIURL = v
	}
	if v := os.Getenv("OUTREACH_LOG_FILE"); v != "" {
		c.LogFile = v
	}
	if v := os.Getenv("OUTREACH_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("OUTREACH_HOME"); v != "" {
		c.HomeDir = v
	}
	if v := os.Getenv("OUTREACH_PAGE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid OUTREACH_PAGE_SIZE: %w", err)
		}
		c.PageSize = n
	}
	if v := os.Getenv("OUTREACH_BACKFILL_DELAY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid OUTREACH_BACKFILL_DELAY: %w", err)
		}
		c.BackfillDelay = d
	}
	if v := os.Getenv("OUTREACH_HTTP_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid OUTREACH_HTTP_TIMEOUT: %w", err)
		}
		c.HTTPTimeout = d
	}
	if v := os.Getenv("OUTREACH_REQUESTS_PER_SECOND"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid OUTREACH_REQUESTS_PER_SECOND: %w", err)
		}
		c.RequestsPerSecond = f
	}
	return nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.APIURL) == "" {
		return fmt.Errorf("api_url cannot be empty")
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("page_size must be positive, got %d", c.PageSize)
	}
	if c.BackfillDelay < 0 {
		return fmt.Errorf("backfill_delay cannot be negative")
	}
	if c.RequestsPerSecond <= 0 {
		return fmt.Errorf("requests_per_second must be positive")
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	return nil
}

// Save writes the config as YAML, creating the parent directory.
func Save(cfg Config, path string) error {
	if path == "" {
		path = GetConfigPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

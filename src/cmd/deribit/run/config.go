package run

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/jiaming2012/deribit-trading/src/eventservices"
	"github.com/jiaming2012/deribit-trading/src/utils"
)

type Config struct {
	Deribit struct {
		BaseURL       string `yaml:"base_url"`
		ClientID      string `yaml:"client_id"`
		ClientSecret  string `yaml:"client_secret"`
		MaxAttempts   int    `yaml:"max_attempts"`
		RetryDelayMS  int    `yaml:"retry_delay_ms"`
		HttpTimeoutMS int    `yaml:"http_timeout_ms"`
	} `yaml:"deribit"`

	Instruments struct {
		Currency string `yaml:"currency"`
		Kind     string `yaml:"kind"`
	} `yaml:"instruments"`

	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"logging"`

	Telemetry struct {
		Enabled     bool   `yaml:"enabled"`
		ServiceName string `yaml:"service_name"`
	} `yaml:"telemetry"`
}

func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.Deribit.BaseURL = eventservices.DeribitTestnetBaseURL
	cfg.Deribit.MaxAttempts = utils.DefaultMaxAttempts
	cfg.Deribit.RetryDelayMS = int(utils.DefaultRetryDelay / time.Millisecond)
	cfg.Deribit.HttpTimeoutMS = int(utils.DefaultHttpTimeout / time.Millisecond)
	cfg.Instruments.Currency = eventservices.DefaultInstrumentsCurrency
	cfg.Instruments.Kind = eventservices.DefaultInstrumentsKind
	cfg.Logging.Level = "info"
	cfg.Logging.Format = "text"
	cfg.Telemetry.ServiceName = "deribit-trading"
	return cfg
}

// LoadConfig layers an optional yaml file and then the environment over the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("LoadConfig: failed to read %s: %w", path, err)
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("LoadConfig: failed to parse %s: %w", path, err)
		}
	}

	if err := overrideWithEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if !strings.HasPrefix(c.Deribit.BaseURL, "https://") && !strings.HasPrefix(c.Deribit.BaseURL, "http://") {
		return fmt.Errorf("invalid Deribit base url: %q", c.Deribit.BaseURL)
	}

	if c.Deribit.MaxAttempts < 1 {
		return fmt.Errorf("max attempts must be at least 1, got %d", c.Deribit.MaxAttempts)
	}

	if c.Deribit.RetryDelayMS < 0 {
		return fmt.Errorf("retry delay cannot be negative, got %dms", c.Deribit.RetryDelayMS)
	}

	if c.Deribit.HttpTimeoutMS <= 0 {
		return fmt.Errorf("http timeout must be positive, got %dms", c.Deribit.HttpTimeoutMS)
	}

	return nil
}

func (c *Config) RetryDelay() time.Duration {
	return time.Duration(c.Deribit.RetryDelayMS) * time.Millisecond
}

func (c *Config) HttpTimeout() time.Duration {
	return time.Duration(c.Deribit.HttpTimeoutMS) * time.Millisecond
}

func overrideWithEnv(cfg *Config) error {
	if cfg.Deribit.ClientSecret != "" {
		log.Warn("API secret found in config file, prefer the DERIBIT_CLIENT_SECRET environment variable")
	}

	if v := os.Getenv("DERIBIT_CLIENT_ID"); v != "" {
		cfg.Deribit.ClientID = v
	}

	if v := os.Getenv("DERIBIT_CLIENT_SECRET"); v != "" {
		cfg.Deribit.ClientSecret = v
	}

	if v := os.Getenv("DERIBIT_BASE_URL"); v != "" {
		cfg.Deribit.BaseURL = v
	}

	if v := os.Getenv("DERIBIT_MAX_ATTEMPTS"); v != "" {
		attempts, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid DERIBIT_MAX_ATTEMPTS %q: %w", v, err)
		}
		cfg.Deribit.MaxAttempts = attempts
	}

	if v := os.Getenv("DERIBIT_RETRY_DELAY_MS"); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid DERIBIT_RETRY_DELAY_MS %q: %w", v, err)
		}
		cfg.Deribit.RetryDelayMS = ms
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}

	if v := os.Getenv("OTEL_ENABLED"); v != "" {
		cfg.Telemetry.Enabled = v == "true"
	}

	return nil
}

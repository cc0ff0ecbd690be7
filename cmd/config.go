package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"

	"github.com/etnz/capscope"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

// Environment variables read by the configuration.
const (
	EnvDataDir      = "CAPSCOPE_DATA"
	EnvProvider     = "CAPSCOPE_PROVIDER"
	EnvPrices       = "CAPSCOPE_PRICES"
	EnvWorkers      = "CAPSCOPE_WORKERS"
	EnvEODHDKey     = "EODHD_API_KEY"
	EnvTiingoToken  = "TIINGO_API_TOKEN"
	EnvAlpacaKeyID  = "APCA_API_KEY_ID"
	EnvAlpacaSecret = "APCA_API_SECRET_KEY"
	EnvAlpacaFeed   = "APCA_DATA_FEED"
)

// Config is the configuration of the pipeline.
//
// It is read from a YAML file, then overridden by the environment (a .env
// file is loaded first), then by the command line flags.
type Config struct {
	DataDir  string       `yaml:"data_dir" validate:"required"`
	Metadata string       `yaml:"metadata" validate:"required,oneof=eodhd yahoo"`
	Prices   string       `yaml:"prices" validate:"omitempty,oneof=eodhd yahoo tiingo alpaca"`
	Workers  int          `yaml:"workers" validate:"gte=0"`
	Lookback int          `yaml:"lookback" validate:"gte=0"`
	EODHD    EODHDConfig  `yaml:"eodhd"`
	Tiingo   TiingoConfig `yaml:"tiingo"`
	Alpaca   AlpacaConfig `yaml:"alpaca"`
}

type EODHDConfig struct {
	APIKey string `yaml:"api_key"`
}

type TiingoConfig struct {
	Token string `yaml:"token"`
}

type AlpacaConfig struct {
	KeyID     string `yaml:"key_id"`
	SecretKey string `yaml:"secret_key"`
	Feed      string `yaml:"feed" validate:"omitempty,oneof=iex sip delayed_sip otc"`
}

var validate = validator.New()

// DefaultConfig returns the configuration used when nothing is set.
//
// Yahoo needs no API key, but it does not report sectors: every stock ends up
// in the Unknown sector. Use eodhd to rank by sector.
func DefaultConfig() Config {
	return Config{
		DataDir:  "data",
		Metadata: "yahoo",
		Workers:  capscope.DefaultWorkers,
		Lookback: capscope.DefaultLookback,
	}
}

// LoadConfig reads the configuration file at path on top of the defaults and applies the environment.
//
// A missing file (configuration or .env) is not an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("loading .env: %w", err)
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			slog.Debug("no configuration file", "path", path)
		case err != nil:
			return cfg, fmt.Errorf("reading configuration: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parsing configuration %q: %w", path, err)
			}
		}
	}
	if err := cfg.applyEnv(os.Getenv); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyEnv overrides the configuration with the non empty variables returned by getenv.
func (c *Config) applyEnv(getenv func(string) string) error {
	set := func(dst *string, key string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	set(&c.DataDir, EnvDataDir)
	set(&c.Metadata, EnvProvider)
	set(&c.Prices, EnvPrices)
	set(&c.EODHD.APIKey, EnvEODHDKey)
	set(&c.Tiingo.Token, EnvTiingoToken)
	set(&c.Alpaca.KeyID, EnvAlpacaKeyID)
	set(&c.Alpaca.SecretKey, EnvAlpacaSecret)
	set(&c.Alpaca.Feed, EnvAlpacaFeed)
	if v := getenv(EnvWorkers); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvWorkers, v, err)
		}
		c.Workers = n
	}
	return nil
}

// apply overrides the configuration with the non zero fields of x.
func (c *Config) apply(x Config) {
	if x.DataDir != "" {
		c.DataDir = x.DataDir
	}
	if x.Metadata != "" {
		c.Metadata = x.Metadata
	}
	if x.Prices != "" {
		c.Prices = x.Prices
	}
	if x.Workers > 0 {
		c.Workers = x.Workers
	}
	if x.Lookback > 0 {
		c.Lookback = x.Lookback
	}
}

// resolve fills the fields that default to other fields.
func (c *Config) resolve() {
	if c.Prices == "" {
		c.Prices = c.Metadata
	}
}

// Validate checks the configuration values.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

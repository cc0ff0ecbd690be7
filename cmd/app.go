// Package cmd implements the CLI application to rank US stocks by market cap.
package cmd

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/etnz/capscope"
	"github.com/etnz/capscope/alpaca"
	"github.com/etnz/capscope/eodhd"
	"github.com/etnz/capscope/tiingo"
	"github.com/etnz/capscope/yahoo"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&rankCmd{}, "ranking")
	c.Register(&reportCmd{}, "ranking")
	c.Register(&viewCmd{}, "ranking")

	c.Register(&universeCmd{}, "universe")
	c.Register(&updateUniverseCmd{}, "universe")

	c.Register(&topicCmd{}, "help")

	c.Register(c.HelpCommand(), "")
	c.Register(c.FlagsCommand(), "")
	c.Register(c.CommandsCommand(), "")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var dataDir = flag.String("data", "", "Folder of the index membership files (default \"data\")")
var configFile = flag.String("config", "capscope.yaml", "Path to the optional YAML configuration file")

// logLevel is the level of the default logger, see SetupLogging.
var logLevel = new(slog.LevelVar)

// SetupLogging installs the default logger, writing text records to stderr.
func SetupLogging() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))
}

// setVerbose switches the default logger to debug records.
func setVerbose(verbose bool) {
	if verbose {
		logLevel.Set(slog.LevelDebug)
	}
}

// providerFlags are the flags shared by the commands that run the pipeline.
type providerFlags struct {
	metadata string
	prices   string
	workers  int
	lookback int
	verbose  bool
}

func (p *providerFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.metadata, "provider", "", "Metadata provider (eodhd, yahoo)")
	f.StringVar(&p.prices, "prices", "", "Price provider (eodhd, yahoo, tiingo, alpaca), defaults to the metadata provider")
	f.IntVar(&p.workers, "workers", 0, "Number of concurrent metadata requests")
	f.IntVar(&p.lookback, "lookback", 0, "Number of calendar days searched for the last trading day")
	f.BoolVar(&p.verbose, "v", false, "Verbose logging")
}

// pipeline loads the configuration, applies the flags and returns the pipeline it describes.
func (p *providerFlags) pipeline() (*capscope.Pipeline, error) {
	setVerbose(p.verbose)
	cfg, err := LoadConfig(*configFile)
	if err != nil {
		return nil, err
	}
	cfg.apply(Config{
		DataDir:  *dataDir,
		Metadata: p.metadata,
		Prices:   p.prices,
		Workers:  p.workers,
		Lookback: p.lookback,
	})
	cfg.resolve()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg.Pipeline()
}

// Pipeline returns the pipeline described by the configuration.
func (c *Config) Pipeline() (*capscope.Pipeline, error) {
	md, err := c.metadataProvider()
	if err != nil {
		return nil, err
	}
	px, err := c.priceProvider()
	if err != nil {
		return nil, err
	}
	slog.Debug("providers", "metadata", c.Metadata, "prices", c.Prices)
	return &capscope.Pipeline{
		DataDir:  c.DataDir,
		Metadata: md,
		Prices:   px,
		Workers:  c.Workers,
		Lookback: c.Lookback,
	}, nil
}

func (c *Config) metadataProvider() (capscope.MetadataProvider, error) {
	switch c.Metadata {
	case "eodhd":
		if c.EODHD.APIKey == "" {
			return nil, fmt.Errorf("eodhd needs an API key, set %s", EnvEODHDKey)
		}
		return eodhd.New(c.EODHD.APIKey), nil
	case "yahoo":
		return yahoo.New(), nil
	}
	return nil, fmt.Errorf("unknown metadata provider %q", c.Metadata)
}

func (c *Config) priceProvider() (capscope.PriceProvider, error) {
	switch c.Prices {
	case "eodhd":
		if c.EODHD.APIKey == "" {
			return nil, fmt.Errorf("eodhd needs an API key, set %s", EnvEODHDKey)
		}
		return eodhd.New(c.EODHD.APIKey), nil
	case "yahoo":
		return yahoo.New(), nil
	case "tiingo":
		if c.Tiingo.Token == "" {
			return nil, fmt.Errorf("tiingo needs a token, set %s", EnvTiingoToken)
		}
		return tiingo.New(c.Tiingo.Token), nil
	case "alpaca":
		if c.Alpaca.KeyID == "" || c.Alpaca.SecretKey == "" {
			return nil, fmt.Errorf("alpaca needs API keys, set %s and %s", EnvAlpacaKeyID, EnvAlpacaSecret)
		}
		return alpaca.New(alpaca.Options{
			APIKey:    c.Alpaca.KeyID,
			APISecret: c.Alpaca.SecretKey,
			Feed:      c.Alpaca.Feed,
		}), nil
	}
	return nil, fmt.Errorf("unknown price provider %q", c.Prices)
}

// membershipDir returns the folder of the membership files.
func membershipDir() string {
	cfg, err := LoadConfig(*configFile)
	if err != nil {
		slog.Warn("ignoring configuration", "error", err)
		cfg = DefaultConfig()
	}
	cfg.apply(Config{DataDir: *dataDir})
	return cfg.DataDir
}

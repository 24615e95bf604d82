// Package config provides configuration management for mcpayoff.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/bcdannyboy/mcpayoff/logging"
	"github.com/bcdannyboy/mcpayoff/models"
	"github.com/bcdannyboy/mcpayoff/positions"
)

// ErrConfigInvalid wraps every validation failure.
var ErrConfigInvalid = errors.New("invalid configuration")

// EnvPrefix prefixes environment overrides, e.g. MCPAYOFF_SIMULATION_PATHS.
const EnvPrefix = "MCPAYOFF"

// Config holds all application configuration.
type Config struct {
	Simulation SimulationConfig    `mapstructure:"simulation"`
	Logging    logging.LogConfig   `mapstructure:"logging"`
	Tradier    TradierConfig       `mapstructure:"tradier"`
	Slack      SlackConfig         `mapstructure:"slack"`
	Book       []positions.Position `mapstructure:"book"`
}

// SimulationConfig holds the Monte-Carlo engine settings.
type SimulationConfig struct {
	Model            string                 `mapstructure:"model"` // gbm, merton, heston, kou
	Paths            int                    `mapstructure:"paths"`
	Steps            int                    `mapstructure:"steps"`
	Workers          int                    `mapstructure:"workers"`
	Seed             uint64                 `mapstructure:"seed"`
	Spot             float64                `mapstructure:"spot"`
	Rate             float64                `mapstructure:"rate"`
	Maturity         float64                `mapstructure:"maturity"` // years
	SkipDomainErrors bool                   `mapstructure:"skip_domain_errors"`
	Places           int32                  `mapstructure:"places"`
	Params           models.GeneratorParams `mapstructure:",squash"`
}

// TradierConfig holds market data credentials.
type TradierConfig struct {
	Token   string `mapstructure:"token"`
	BaseURL string `mapstructure:"base_url"`
}

// SlackConfig holds Slack bot credentials.
type SlackConfig struct {
	AppToken string `mapstructure:"app_token"`
	BotToken string `mapstructure:"bot_token"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/mcpayoff"
	}
	return filepath.Join(home, ".config", "mcpayoff")
}

func setDefaults(v *viper.Viper) {
	logDefaults := logging.DefaultLogConfig()

	v.SetDefault("simulation.model", "gbm")
	v.SetDefault("simulation.paths", 10000)
	v.SetDefault("simulation.steps", 252)
	v.SetDefault("simulation.workers", 0)
	v.SetDefault("simulation.seed", 0)
	v.SetDefault("simulation.spot", 100.0)
	v.SetDefault("simulation.rate", 0.0379)
	v.SetDefault("simulation.maturity", 1.0)
	v.SetDefault("simulation.skip_domain_errors", false)
	v.SetDefault("simulation.places", 4)
	v.SetDefault("simulation.drift", 0.0379)
	v.SetDefault("simulation.volatility", 0.2)
	v.SetDefault("simulation.jump_intensity", 0.0)
	v.SetDefault("simulation.jump_mean", 0.0)
	v.SetDefault("simulation.jump_volatility", 0.0)
	v.SetDefault("simulation.up_jump_probability", 0.5)
	v.SetDefault("simulation.up_jump_rate", 10.0)
	v.SetDefault("simulation.down_jump_rate", 10.0)
	v.SetDefault("simulation.kappa", 2.0)
	v.SetDefault("simulation.theta", 0.04)
	v.SetDefault("simulation.xi", 0.3)
	v.SetDefault("simulation.rho", -0.7)

	v.SetDefault("logging.level", logDefaults.Level)
	v.SetDefault("logging.console", logDefaults.Console)
	v.SetDefault("logging.file", logDefaults.File)
	v.SetDefault("logging.file_path", logDefaults.FilePath)
	v.SetDefault("logging.max_size", logDefaults.MaxSize)
	v.SetDefault("logging.max_backups", logDefaults.MaxBackups)
	v.SetDefault("logging.max_age", logDefaults.MaxAge)

	v.SetDefault("tradier.token", "")
	v.SetDefault("tradier.base_url", "https://api.tradier.com")
	v.SetDefault("slack.app_token", "")
	v.SetDefault("slack.bot_token", "")
}

// Load reads configuration from path, or from config.{yaml,toml,json} in
// the default directory when path is empty. A missing default file is not
// an error. A .env file in the working directory is loaded first so its
// variables can override file values.
func Load(path string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// plain provider variables, as read from .env
	_ = v.BindEnv("tradier.token", EnvPrefix+"_TRADIER_TOKEN", "TRADIER_KEY")
	_ = v.BindEnv("slack.app_token", EnvPrefix+"_SLACK_APP_TOKEN", "SLACK_APP_TOKEN")
	_ = v.BindEnv("slack.bot_token", EnvPrefix+"_SLACK_BOT_TOKEN", "SLACK_BOT_TOKEN")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(DefaultConfigDir())
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// Validate checks the simulation settings. Book contracts are validated
// when they are priced so one bad position does not block the others.
func (c *Config) Validate() error {
	s := c.Simulation
	switch {
	case s.Paths < 1:
		return fmt.Errorf("%w: simulation.paths must be at least 1", ErrConfigInvalid)
	case s.Steps < 1:
		return fmt.Errorf("%w: simulation.steps must be at least 1", ErrConfigInvalid)
	case s.Workers < 0:
		return fmt.Errorf("%w: simulation.workers must not be negative", ErrConfigInvalid)
	case s.Spot <= 0:
		return fmt.Errorf("%w: simulation.spot must be positive", ErrConfigInvalid)
	case s.Maturity <= 0:
		return fmt.Errorf("%w: simulation.maturity must be positive", ErrConfigInvalid)
	case s.Places < 0:
		return fmt.Errorf("%w: simulation.places must not be negative", ErrConfigInvalid)
	}
	if _, err := models.NewGenerator(s.Model, s.Params); err != nil {
		return fmt.Errorf("%w: simulation: %v", ErrConfigInvalid, err)
	}
	return nil
}

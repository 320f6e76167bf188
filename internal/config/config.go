package config

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const EnvPrefix = "DOCPROC"

// Config holds CLI settings resolved from flags, environment, .env and an
// optional config file, in that order of precedence.
type Config struct {
	BaseURL    string            `mapstructure:"base_url"`
	Headers    map[string]string `mapstructure:"-"`
	Timeout    time.Duration     `mapstructure:"timeout"`
	LogLevel   string            `mapstructure:"log_level"`
	Output     string            `mapstructure:"output"`
	FailLog    string            `mapstructure:"fail_log"`
	Trace      bool              `mapstructure:"trace"`
	RequestIDs bool              `mapstructure:"request_ids"`
}

// flagKeys maps persistent flag names to config keys.
var flagKeys = map[string]string{
	"base-url":    "base_url",
	"timeout":     "timeout",
	"log-level":   "log_level",
	"output":      "output",
	"fail-log":    "fail_log",
	"trace":       "trace",
	"request-ids": "request_ids",
}

// Load resolves the configuration. configFile may be empty. flagHeaders are
// applied last and override headers from every other source.
func Load(flags *pflag.FlagSet, configFile string, flagHeaders map[string]string) (*Config, error) {
	_ = godotenv.Load(".env")

	v := viper.New()

	v.SetDefault("base_url", "")
	v.SetDefault("timeout", "0s")
	v.SetDefault("log_level", "info")
	v.SetDefault("output", "json")
	v.SetDefault("fail_log", "")
	v.SetDefault("trace", false)
	v.SetDefault("request_ids", false)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.Headers = v.GetStringMapString("headers")
	if cfg.Headers == nil {
		cfg.Headers = make(map[string]string)
	}
	envHeaders, err := ParseHeaderList(os.Getenv(EnvPrefix + "_HEADERS"))
	if err != nil {
		return nil, fmt.Errorf("%s_HEADERS: %w", EnvPrefix, err)
	}
	maps.Copy(cfg.Headers, envHeaders)
	maps.Copy(cfg.Headers, flagHeaders)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the settings the CLI cannot run without.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return errors.New("base url is required (flag --base-url or " + EnvPrefix + "_BASE_URL)")
	}

	switch c.Output {
	case "json", "yaml":
	default:
		return fmt.Errorf("unsupported output format: %s", c.Output)
	}

	if c.Timeout < 0 {
		return fmt.Errorf("invalid timeout %s (must not be negative)", c.Timeout)
	}

	return nil
}

// ParseHeaderList parses "Key=Value,Other=Value" into a map.
func ParseHeaderList(s string) (map[string]string, error) {
	headers := make(map[string]string)
	if strings.TrimSpace(s) == "" {
		return headers, nil
	}

	for _, pair := range strings.Split(s, ",") {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid header %q (want key=value)", pair)
		}
		headers[key] = strings.TrimSpace(value)
	}

	return headers, nil
}

// Package config loads orbitcron settings from a YAML file and ORBITCRON_* environment variables.
package config

import (
	"fmt"
	"github.com/spf13/viper"
	"strings"
	"time"
)

// ENV_PREFIX is prepended to every environment variable, e.g. ORBITCRON_HTTP_ADDR.
const ENV_PREFIX = "ORBITCRON"

// Config is the full process configuration.
type Config struct {
	// Password protects the trigger endpoints. Empty disables the check.
	Password string `mapstructure:"password"`

	// Timezone is an IANA zone name cron expressions are evaluated in. Empty or "Local" uses the host zone.
	Timezone string `mapstructure:"timezone"`

	Log     LogConfig     `mapstructure:"log"`
	HTTP    HTTPConfig    `mapstructure:"http"`
	History HistoryConfig `mapstructure:"history"`
	Metrics MetricsConfig `mapstructure:"metrics"`

	// Jobs are declared inline in the config file.
	Jobs []JobConfig `mapstructure:"jobs"`

	// JobsFile optionally points to a separate YAML file with more jobs, see LoadJobs.
	JobsFile string `mapstructure:"jobs_file"`
}

type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

type HTTPConfig struct {
	Addr string `mapstructure:"addr"`
	Path string `mapstructure:"path"`
}

type HistoryConfig struct {
	// Path of the SQLite run history. Empty disables it.
	Path string `mapstructure:"path"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// JobConfig declares a command job.
type JobConfig struct {
	Name       string   `mapstructure:"name" yaml:"name"`
	Schedule   string   `mapstructure:"schedule" yaml:"schedule"`
	Command    []string `mapstructure:"command" yaml:"command"`
	Attributes []string `mapstructure:"attributes" yaml:"attributes"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("password", "")
	v.SetDefault("timezone", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.path", "/cron")
	v.SetDefault("history.path", "")
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("jobs_file", "")
}

// Load reads the configuration.
//
// Values are resolved in this order: environment variables, the YAML file at path
// (skipped when path is empty), defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(ENV_PREFIX)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if !strings.HasPrefix(cfg.HTTP.Path, "/") {
		cfg.HTTP.Path = "/" + cfg.HTTP.Path
	}
	cfg.HTTP.Path = strings.TrimRight(cfg.HTTP.Path, "/")
	if _, err := cfg.Location(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Location resolves Timezone.
func (c *Config) Location() (*time.Location, error) {
	switch c.Timezone {
	case "", "Local":
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// AllJobs returns the inline jobs followed by the jobs of JobsFile.
func (c *Config) AllJobs() ([]JobConfig, error) {
	jobs := append([]JobConfig(nil), c.Jobs...)
	if c.JobsFile == "" {
		return jobs, nil
	}
	extra, err := LoadJobs(c.JobsFile)
	if err != nil {
		return nil, err
	}
	return append(jobs, extra...), nil
}

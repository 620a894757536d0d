package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// Endpoint is the reservations URL of the remote data service.
	Endpoint string        `yaml:"endpoint"`
	Timeout  time.Duration `yaml:"timeout"`
	// Timezone decides what "today" is for booking and the upcoming view.
	Timezone   string `yaml:"timezone"`
	ListenAddr string `yaml:"listen_addr"`
	// RefreshCron schedules background revalidation in `serve`. Empty disables it.
	RefreshCron string `yaml:"refresh_cron"`
	LogLevel    string `yaml:"log_level"`

	Location *time.Location `yaml:"-"`
}

func Default() Config {
	return Config{
		Timeout:     10 * time.Second,
		Timezone:    "America/Santo_Domingo",
		ListenAddr:  ":8080",
		RefreshCron: "*/5 * * * *",
		LogLevel:    "info",
	}
}

// FromEnv loads the file named by REGISTRO_CONFIG, if any, then applies
// REGISTRO_* variables on top.
func FromEnv() (Config, error) {
	return Load(strings.TrimSpace(os.Getenv("REGISTRO_CONFIG")))
}

func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.Endpoint = envDefault("REGISTRO_ENDPOINT", cfg.Endpoint)
	cfg.Timezone = envDefault("REGISTRO_TIMEZONE", cfg.Timezone)
	cfg.ListenAddr = envDefault("REGISTRO_LISTEN_ADDR", cfg.ListenAddr)
	cfg.LogLevel = envDefault("REGISTRO_LOG_LEVEL", cfg.LogLevel)
	// set-but-empty disables the refresh
	if v, ok := os.LookupEnv("REGISTRO_REFRESH_CRON"); ok {
		cfg.RefreshCron = strings.TrimSpace(v)
	}
	if v := strings.TrimSpace(os.Getenv("REGISTRO_TIMEOUT")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid REGISTRO_TIMEOUT: %w", err)
		}
		cfg.Timeout = d
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the fields and resolves Location.
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return errors.New("REGISTRO_ENDPOINT is required")
	}
	u, err := url.Parse(c.Endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("endpoint %q must be an absolute http(s) URL", c.Endpoint)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive (got %s)", c.Timeout)
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return fmt.Errorf("invalid timezone: %w", err)
	}
	c.Location = loc
	if c.RefreshCron != "" {
		if _, err := cron.ParseStandard(c.RefreshCron); err != nil {
			return fmt.Errorf("invalid refresh_cron %q: %w", c.RefreshCron, err)
		}
	}
	return nil
}

func envDefault(k, d string) string {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return d
	}
	return v
}

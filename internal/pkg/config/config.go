// Package config loads service configuration from an optional config.yaml
// and PROPERTYMAP_* environment variables.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides: PROPERTYMAP_MAPS_API_KEY
// sets maps.api_key.
const EnvPrefix = "PROPERTYMAP"

// Config is the full service configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	Database  DatabaseConfig  `mapstructure:"database"`
	NATS      NATSConfig      `mapstructure:"nats"`
	Valkey    ValkeyConfig    `mapstructure:"valkey"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	Maps      MapsConfig      `mapstructure:"maps"`
	Sessions  SessionsConfig  `mapstructure:"sessions"`
}

type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// Addr is the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// DSN renders a pgx connection URL. The password is escaped.
func (d DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:     "/" + d.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(d.SSLMode),
	}
	return u.String()
}

// NATSConfig is optional; an empty URL disables event publishing.
type NATSConfig struct {
	URL string `mapstructure:"url"`
}

// ValkeyConfig is optional; an empty Addr disables the project cache.
type ValkeyConfig struct {
	Addr string `mapstructure:"addr"`
}

type TelemetryConfig struct {
	ServiceName string `mapstructure:"service_name"`
	TempoAddr   string `mapstructure:"tempo_addr"`
	Enabled     bool   `mapstructure:"enabled"`
}

// MapsConfig points at the web mapping service. An empty APIKey disables
// directions, places and street view.
type MapsConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// SessionsConfig controls how long idle map sessions are kept.
type SessionsConfig struct {
	IdleTTL       time.Duration `mapstructure:"idle_ttl"`
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
}

var defaults = map[string]any{
	"server.port":             8080,
	"server.read_timeout":     "10s",
	"server.write_timeout":    "10s",
	"log.level":               "info",
	"log.format":              "json",
	"database.host":           "localhost",
	"database.port":           5432,
	"database.user":           "propertymap",
	"database.password":       "",
	"database.dbname":         "propertymap",
	"database.sslmode":        "disable",
	"nats.url":                "nats://localhost:4222",
	"valkey.addr":             "localhost:6379",
	"telemetry.tempo_addr":    "tempo:4317",
	"telemetry.enabled":       true,
	"maps.api_key":            "",
	"maps.base_url":           "https://maps.googleapis.com",
	"maps.timeout":            "10s",
	"sessions.idle_ttl":       "30m",
	"sessions.sweep_interval": "1m",
}

// Load reads configuration for the named service. configPaths are searched
// for config.yaml in order; "." and "./configs" are used when none are given.
func Load(service string, configPaths ...string) (*Config, error) {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.SetDefault("telemetry.service_name", service)

	if len(configPaths) == 0 {
		configPaths = []string{".", "./configs"}
	}
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range configPaths {
		v.AddConfigPath(p)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(validPort(c.Server.Port), "server.port must be 1-65535, got %d", c.Server.Port)
	check(c.Server.ReadTimeout > 0, "server.read_timeout must be positive")
	check(c.Server.WriteTimeout > 0, "server.write_timeout must be positive")
	check(c.Database.Host != "", "database.host is required")
	check(validPort(c.Database.Port), "database.port must be 1-65535, got %d", c.Database.Port)
	check(c.Database.User != "", "database.user is required")
	check(c.Database.DBName != "", "database.dbname is required")
	check(c.Maps.BaseURL != "", "maps.base_url is required")
	check(c.Maps.Timeout > 0, "maps.timeout must be positive")
	check(c.Sessions.IdleTTL > 0, "sessions.idle_ttl must be positive")
	check(c.Sessions.SweepInterval > 0, "sessions.sweep_interval must be positive")
	check(c.Sessions.SweepInterval <= c.Sessions.IdleTTL, "sessions.sweep_interval must not exceed sessions.idle_ttl")

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %w", errors.Join(errs...))
	}
	return nil
}

func validPort(p int) bool {
	return p > 0 && p <= 65535
}

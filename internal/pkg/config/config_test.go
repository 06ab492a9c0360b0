package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("propertymap-test", t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 8080 || cfg.Server.ReadTimeout != 10*time.Second {
		t.Errorf("unexpected server config %+v", cfg.Server)
	}
	if cfg.Telemetry.ServiceName != "propertymap-test" {
		t.Errorf("expected service name default, got %q", cfg.Telemetry.ServiceName)
	}
	if cfg.Sessions.IdleTTL != 30*time.Minute || cfg.Maps.APIKey != "" {
		t.Errorf("unexpected defaults %+v %+v", cfg.Sessions, cfg.Maps)
	}
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := "server:\n  port: 9090\nmaps:\n  timeout: 3s\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PROPERTYMAP_MAPS_API_KEY", "secret")
	t.Setenv("PROPERTYMAP_LOG_LEVEL", "debug")

	cfg, err := Load("propertymap-test", dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 9090 || cfg.Maps.Timeout != 3*time.Second {
		t.Errorf("file values not applied: %+v %+v", cfg.Server, cfg.Maps)
	}
	if cfg.Maps.APIKey != "secret" || cfg.Log.Level != "debug" {
		t.Errorf("env overrides not applied: %+v %+v", cfg.Maps, cfg.Log)
	}
}

func TestValidate_ReportsAllErrors(t *testing.T) {
	cfg := Config{
		Server:   ServerConfig{Port: 0, ReadTimeout: time.Second, WriteTimeout: time.Second},
		Database: DatabaseConfig{Host: "db", Port: 5432, User: "u", DBName: "d"},
		Maps:     MapsConfig{BaseURL: "", Timeout: time.Second},
		Sessions: SessionsConfig{IdleTTL: time.Minute, SweepInterval: time.Hour},
	}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"server.port", "maps.base_url", "sessions.sweep_interval"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected %q in %v", want, err)
		}
	}
}

func TestDSN_EscapesPassword(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss/word", DBName: "maps", SSLMode: "disable"}
	got := d.DSN()
	want := "postgres://app:p%40ss%2Fword@db:5432/maps?sslmode=disable"
	if got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}

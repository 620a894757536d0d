package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"REGISTRO_CONFIG", "REGISTRO_ENDPOINT", "REGISTRO_TIMEZONE", "REGISTRO_LISTEN_ADDR", "REGISTRO_LOG_LEVEL", "REGISTRO_TIMEOUT"} {
		t.Setenv(k, "")
	}
	t.Setenv("REGISTRO_REFRESH_CRON", "")
	os.Unsetenv("REGISTRO_REFRESH_CRON")
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "registro.yaml")
	if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestFromEnvDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("REGISTRO_ENDPOINT", "https://example.test/api/reservas")
	cfg, err := FromEnv()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Timeout != 10*time.Second || cfg.ListenAddr != ":8080" || cfg.RefreshCron != "*/5 * * * *" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Location == nil || cfg.Location.String() != "America/Santo_Domingo" {
		t.Fatalf("location=%v", cfg.Location)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	p := writeFile(t, `
endpoint: https://file.test/api/reservas
timeout: 3s
timezone: UTC
refresh_cron: "0 * * * *"
`)
	t.Setenv("REGISTRO_CONFIG", p)
	t.Setenv("REGISTRO_ENDPOINT", "https://env.test/api/reservas")
	t.Setenv("REGISTRO_REFRESH_CRON", "")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Endpoint != "https://env.test/api/reservas" {
		t.Errorf("endpoint=%q", cfg.Endpoint)
	}
	if cfg.Timeout != 3*time.Second || cfg.Timezone != "UTC" {
		t.Errorf("file values lost: %+v", cfg)
	}
	if cfg.RefreshCron != "" {
		t.Errorf("empty REGISTRO_REFRESH_CRON did not disable refresh: %q", cfg.RefreshCron)
	}
}

func TestLoadRejects(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"missing endpoint", nil, "REGISTRO_ENDPOINT"},
		{"relative endpoint", map[string]string{"REGISTRO_ENDPOINT": "/api/reservas"}, "absolute"},
		{"bad timezone", map[string]string{"REGISTRO_ENDPOINT": "http://x.test", "REGISTRO_TIMEZONE": "Mars/Olympus"}, "timezone"},
		{"bad timeout", map[string]string{"REGISTRO_ENDPOINT": "http://x.test", "REGISTRO_TIMEOUT": "soon"}, "REGISTRO_TIMEOUT"},
		{"bad cron", map[string]string{"REGISTRO_ENDPOINT": "http://x.test", "REGISTRO_REFRESH_CRON": "every minute"}, "refresh_cron"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range c.env {
				t.Setenv(k, v)
			}
			_, err := Load("")
			if err == nil || !strings.Contains(err.Error(), c.want) {
				t.Fatalf("err=%v, want mention of %q", err, c.want)
			}
		})
	}
}

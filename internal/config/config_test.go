package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(EnvAPIBase, "")

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIBase != defaultAPIBase {
		t.Fatalf("APIBase = %q, want %q", cfg.APIBase, defaultAPIBase)
	}

	wantDataDir, err := expandPath(defaultDataDir)
	if err != nil {
		t.Fatalf("expandPath(defaultDataDir) returned error: %v", err)
	}
	if cfg.DataDir != wantDataDir {
		t.Fatalf("DataDir = %q, want %q", cfg.DataDir, wantDataDir)
	}
	if cfg.CartPath() != filepath.Join(wantDataDir, "cart.db") {
		t.Fatalf("CartPath = %q, want it under %q", cfg.CartPath(), wantDataDir)
	}
	if cfg.Timings != DefaultTimings() {
		t.Fatalf("Timings = %+v, want defaults", cfg.Timings)
	}
	if cfg.PollEvery != defaultPollEvery {
		t.Fatalf("PollEvery = %v, want %v", cfg.PollEvery, defaultPollEvery)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(EnvAPIBase, "")

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
api_base = "  http://10.0.0.5:9999  "
data_dir = "  ~/.bites  "
log_level = " DEBUG "
poll_seconds = 5
requests_per_second = 2.5
request_burst = 4
metrics_addr = "127.0.0.1:9464"

[timings]
debounce_ms = 250
flight_clear_ms = 1000
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIBase != "http://10.0.0.5:9999" {
		t.Fatalf("APIBase = %q, want %q", cfg.APIBase, "http://10.0.0.5:9999")
	}
	if !strings.HasPrefix(cfg.DataDir, home) {
		t.Fatalf("DataDir = %q, want it under HOME %q", cfg.DataDir, home)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.PollEvery != 5*time.Second {
		t.Fatalf("PollEvery = %v, want 5s", cfg.PollEvery)
	}
	if cfg.RequestsPerSecond != 2.5 || cfg.RequestBurst != 4 {
		t.Fatalf("rate = %v/%d, want 2.5/4", cfg.RequestsPerSecond, cfg.RequestBurst)
	}
	if cfg.MetricsAddr != "127.0.0.1:9464" {
		t.Fatalf("MetricsAddr = %q", cfg.MetricsAddr)
	}
	if cfg.Timings.Debounce != 250*time.Millisecond {
		t.Fatalf("Debounce = %v, want 250ms", cfg.Timings.Debounce)
	}
	if cfg.Timings.FlightClear != time.Second {
		t.Fatalf("FlightClear = %v, want 1s", cfg.Timings.FlightClear)
	}
	if cfg.Timings.Reveal != DefaultTimings().Reveal {
		t.Fatalf("Reveal = %v, want default", cfg.Timings.Reveal)
	}
}

func TestLoad_EnvOverridesAPIBase(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(EnvAPIBase, "http://api.internal:8080")

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`api_base = "http://ignored:1"`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIBase != "http://api.internal:8080" {
		t.Fatalf("APIBase = %q, want env override", cfg.APIBase)
	}
}

func TestLoad_EmptyValuesUseDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(EnvAPIBase, "")

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
api_base = "   "
data_dir = ""
poll_seconds = -3
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIBase != defaultAPIBase {
		t.Fatalf("APIBase = %q, want %q", cfg.APIBase, defaultAPIBase)
	}
	wantDataDir, err := expandPath(defaultDataDir)
	if err != nil {
		t.Fatalf("expandPath(defaultDataDir) returned error: %v", err)
	}
	if cfg.DataDir != wantDataDir {
		t.Fatalf("DataDir = %q, want %q", cfg.DataDir, wantDataDir)
	}
	if cfg.PollEvery != defaultPollEvery {
		t.Fatalf("PollEvery = %v, want default", cfg.PollEvery)
	}
}

func TestLoad_InvalidTOMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`api_base = [`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := Load(path)
	if err == nil {
		t.Fatalf("Load returned nil error, want parse error")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("Load error = %q, want it to mention parse config", err.Error())
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/a/b")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("expandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}

func TestPaths_DefaultWhenDirsEmpty(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	var cfg Config
	for name, got := range map[string]string{
		"log":   cfg.LogPath(),
		"cart":  cfg.CartPath(),
		"token": cfg.TokenPath(),
	} {
		if !strings.HasPrefix(got, home) {
			t.Fatalf("%s path = %q, want it under HOME %q", name, got, home)
		}
	}
	if !strings.HasSuffix(cfg.LogPath(), filepath.FromSlash("/foodbites.log")) {
		t.Fatalf("LogPath = %q, want it to end with /foodbites.log", cfg.LogPath())
	}
}

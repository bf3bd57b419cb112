package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Config captures everything foodbites reads from config.toml.
type Config struct {
	APIBase           string
	DataDir           string
	LogDir            string
	LogLevel          string
	PollEvery         time.Duration
	RequestsPerSecond float64
	RequestBurst      int
	MetricsAddr       string
	Timings           Timings
}

// Timings holds the UI choreography delays. They are presentation polish and
// not a backend latency contract.
type Timings struct {
	Debounce     time.Duration
	Reveal       time.Duration
	Scroll       time.Duration
	AddLatency   time.Duration
	FlightClear  time.Duration
	FetchTimeout time.Duration
	Notice       time.Duration
}

// EnvAPIBase overrides api_base when set (directly or through .env).
const EnvAPIBase = "FOODBITES_API_BASE"

const (
	defaultConfigPath  = "~/.config/foodbites/config.toml"
	defaultDataDir     = "~/.local/share/foodbites"
	defaultLogDir      = "~/.local/state/foodbites"
	defaultAPIBase     = "http://localhost:5000"
	defaultLogLevel    = "info"
	defaultPollEvery   = 30 * time.Second
	defaultRPS         = 10
	defaultBurst       = 20
	defaultEnvFilePath = ".env"
)

// DefaultTimings returns the stock delays.
func DefaultTimings() Timings {
	return Timings{
		Debounce:     500 * time.Millisecond,
		Reveal:       300 * time.Millisecond,
		Scroll:       300 * time.Millisecond,
		AddLatency:   300 * time.Millisecond,
		FlightClear:  800 * time.Millisecond,
		FetchTimeout: 10 * time.Second,
		Notice:       3 * time.Second,
	}
}

type rawConfig struct {
	APIBase           string  `toml:"api_base"`
	DataDir           string  `toml:"data_dir"`
	LogDir            string  `toml:"log_dir"`
	LogLevel          string  `toml:"log_level"`
	PollSeconds       int     `toml:"poll_seconds"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	RequestBurst      int     `toml:"request_burst"`
	MetricsAddr       string  `toml:"metrics_addr"`
	Timings           struct {
		DebounceMS     int `toml:"debounce_ms"`
		RevealMS       int `toml:"reveal_ms"`
		ScrollMS       int `toml:"scroll_ms"`
		AddLatencyMS   int `toml:"add_latency_ms"`
		FlightClearMS  int `toml:"flight_clear_ms"`
		FetchTimeoutMS int `toml:"fetch_timeout_ms"`
		NoticeMS       int `toml:"notice_ms"`
	} `toml:"timings"`
}

// Load locates and parses config.toml, falling back to defaults when missing.
// A .env file in the working directory is read first so FOODBITES_API_BASE
// can be set there.
func Load(path string) (Config, error) {
	loadEnvFile(defaultEnvFilePath)

	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := defaults()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			applyEnv(&cfg)
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw rawConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIBase); v != "" {
		cfg.APIBase = v
	}
	if v := strings.TrimSpace(raw.DataDir); v != "" {
		cfg.DataDir = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogDir); v != "" {
		cfg.LogDir = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if raw.PollSeconds > 0 {
		cfg.PollEvery = time.Duration(raw.PollSeconds) * time.Second
	}
	if raw.RequestsPerSecond > 0 {
		cfg.RequestsPerSecond = raw.RequestsPerSecond
	}
	if raw.RequestBurst > 0 {
		cfg.RequestBurst = raw.RequestBurst
	}
	cfg.MetricsAddr = strings.TrimSpace(raw.MetricsAddr)

	t := raw.Timings
	overrideMS(&cfg.Timings.Debounce, t.DebounceMS)
	overrideMS(&cfg.Timings.Reveal, t.RevealMS)
	overrideMS(&cfg.Timings.Scroll, t.ScrollMS)
	overrideMS(&cfg.Timings.AddLatency, t.AddLatencyMS)
	overrideMS(&cfg.Timings.FlightClear, t.FlightClearMS)
	overrideMS(&cfg.Timings.FetchTimeout, t.FetchTimeoutMS)
	overrideMS(&cfg.Timings.Notice, t.NoticeMS)

	applyEnv(&cfg)
	return cfg, nil
}

// LogPath returns the path to the client's own log file.
func (c Config) LogPath() string {
	if strings.TrimSpace(c.LogDir) == "" {
		return mustExpand(defaultLogDir + "/foodbites.log")
	}
	return filepath.Join(c.LogDir, "foodbites.log")
}

// CartPath returns the path to the local cart database.
func (c Config) CartPath() string {
	if strings.TrimSpace(c.DataDir) == "" {
		return mustExpand(defaultDataDir + "/cart.db")
	}
	return filepath.Join(c.DataDir, "cart.db")
}

// TokenPath returns the path to the persisted bearer token.
func (c Config) TokenPath() string {
	if strings.TrimSpace(c.DataDir) == "" {
		return mustExpand(defaultDataDir + "/token")
	}
	return filepath.Join(c.DataDir, "token")
}

func defaults() Config {
	return Config{
		APIBase:           defaultAPIBase,
		DataDir:           mustExpand(defaultDataDir),
		LogDir:            mustExpand(defaultLogDir),
		LogLevel:          defaultLogLevel,
		PollEvery:         defaultPollEvery,
		RequestsPerSecond: defaultRPS,
		RequestBurst:      defaultBurst,
		Timings:           DefaultTimings(),
	}
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvAPIBase)); v != "" {
		cfg.APIBase = v
	}
}

// loadEnvFile never overrides variables already present in the environment.
func loadEnvFile(path string) {
	if _, err := os.Stat(path); err != nil {
		return
	}
	_ = godotenv.Load(path)
}

func overrideMS(dst *time.Duration, ms int) {
	if ms > 0 {
		*dst = time.Duration(ms) * time.Millisecond
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}

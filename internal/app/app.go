package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/five82/foodbites/internal/api"
	"github.com/five82/foodbites/internal/assets"
	"github.com/five82/foodbites/internal/cart"
	"github.com/five82/foodbites/internal/config"
	"github.com/five82/foodbites/internal/logging"
	"github.com/five82/foodbites/internal/metrics"
	"github.com/five82/foodbites/internal/prefs"
	"github.com/five82/foodbites/internal/route"
	"github.com/five82/foodbites/internal/session"
	"github.com/five82/foodbites/internal/state"
	"github.com/five82/foodbites/internal/storefront"
	"github.com/five82/foodbites/internal/ui"
)

// Options configure the foodbites application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/foodbites/prefs.toml
	PollEvery  int    // seconds; zero uses the config value
	APIBase    string // overrides api_base when set
	Token      string // stored as the bearer token before the UI starts
	Start      string // initial location, e.g. "/foods?cuisine=Italian"
}

// Run boots the foodbites TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if base := strings.TrimSpace(opts.APIBase); base != "" {
		cfg.APIBase = base
	}

	logger, closer, err := logging.Open(cfg.LogPath(), cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer func() { _ = closer.Close() }()

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		logger.Warn().Err(err).Msg("load prefs failed, using defaults")
		userPrefs = prefs.Defaults()
	}

	sess, err := session.Open(cfg.TokenPath(), session.WithLogger(logger.With().Str("component", "session").Logger()))
	if err != nil {
		return fmt.Errorf("open session: %w", err)
	}
	if token := strings.TrimSpace(opts.Token); token != "" {
		if err := sess.Set(token); err != nil {
			return fmt.Errorf("store token: %w", err)
		}
	}

	client, err := api.NewClient(cfg.APIBase,
		api.WithSession(sess),
		api.WithLogger(logger.With().Str("component", "api").Logger()),
		api.WithRateLimit(cfg.RequestsPerSecond, cfg.RequestBurst),
	)
	if err != nil {
		return fmt.Errorf("init api client: %w", err)
	}

	cartStore, err := cart.Open(cfg.CartPath())
	if err != nil {
		return fmt.Errorf("open cart: %w", err)
	}
	defer func() { _ = cartStore.Close() }()

	interval := cfg.PollEvery
	if opts.PollEvery > 0 {
		interval = time.Duration(opts.PollEvery) * time.Second
	}

	store := &state.Store{}
	poller := NewPoller(store, client, sess, interval, logger.With().Str("component", "poller").Logger())
	poller.Start(ctx)

	if cfg.MetricsAddr != "" {
		go serveMetrics(ctx, cfg.MetricsAddr, logger)
	}

	logger.Info().
		Str("api_base", client.BaseURL()).
		Bool("signed_in", sess.SignedIn()).
		Dur("poll", interval).
		Msg("foodbites starting")

	uiOpts := ui.Options{
		Context:    ctx,
		Backend:    client,
		Store:      store,
		Session:    sess,
		Cart:       cartStore,
		Poller:     poller,
		Catalog:    assets.Default(),
		Timings:    storefrontTimings(cfg.Timings),
		ThemeName:  userPrefs.Theme,
		SearchType: userPrefs.SearchType,
		PrefsPath:  opts.PrefsPath,
		LogPath:    cfg.LogPath(),
		Logger:     logger.With().Str("component", "ui").Logger(),
		Start:      route.Parse(opts.Start),
	}
	return ui.Run(uiOpts)
}

func serveMetrics(ctx context.Context, addr string, logger zerolog.Logger) {
	logger.Info().Str("addr", addr).Msg("serving metrics")
	if err := metrics.Serve(ctx, addr); err != nil {
		logger.Error().Err(err).Str("addr", addr).Msg("metrics listener stopped")
	}
}

// storefrontTimings maps the configured delays onto the storefront's.
func storefrontTimings(t config.Timings) storefront.Timings {
	return storefront.Timings{
		Debounce:     t.Debounce,
		Reveal:       t.Reveal,
		Scroll:       t.Scroll,
		AddLatency:   t.AddLatency,
		FlightClear:  t.FlightClear,
		FetchTimeout: t.FetchTimeout,
		NoticeTTL:    t.Notice,
	}
}

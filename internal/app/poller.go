package app

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/five82/foodbites/internal/api"
	"github.com/five82/foodbites/internal/state"
	"github.com/five82/foodbites/internal/storefront"
)

const (
	defaultPollInterval = 30 * time.Second
	maxBackoff          = 30 * time.Second
	pollTimeout         = 15 * time.Second
)

// calculateBackoff doubles base once per consecutive failure, capped at
// maxBackoff. A base already above the cap is never shortened.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	ceiling := maxBackoff
	if base > ceiling {
		ceiling = base
	}
	backoff := base
	for i := 0; i < failures; i++ {
		backoff *= 2
		if backoff >= ceiling {
			return ceiling
		}
	}
	return backoff
}

// SignedIn reports whether a credential is present.
type SignedIn interface {
	SignedIn() bool
}

// Poller keeps state.Store's account snapshot fresh.
type Poller struct {
	store    *state.Store
	source   storefront.AccountSource
	session  SignedIn
	interval time.Duration
	log      zerolog.Logger
	kick     chan struct{}
}

// NewPoller builds a Poller. interval <= 0 uses the default.
func NewPoller(store *state.Store, source storefront.AccountSource, session SignedIn, interval time.Duration, log zerolog.Logger) *Poller {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	return &Poller{
		store:    store,
		source:   source,
		session:  session,
		interval: interval,
		log:      log,
		kick:     make(chan struct{}, 1),
	}
}

// Start launches the background goroutine. It returns immediately.
func (p *Poller) Start(ctx context.Context) {
	go func() {
		for {
			p.refresh(ctx)
			wait := calculateBackoff(p.store.Snapshot().ConsecutiveFailures, p.interval)
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			case <-p.kick:
				timer.Stop()
			}
		}
	}()
}

// Kick asks for an immediate refresh, as after signing in or out. Extra
// kicks while one is pending are dropped.
func (p *Poller) Kick() {
	select {
	case p.kick <- struct{}{}:
	default:
	}
}

func (p *Poller) refresh(ctx context.Context) {
	if p.session != nil && !p.session.SignedIn() {
		p.store.Reset()
		return
	}
	ctx, cancel := context.WithTimeout(ctx, pollTimeout)
	defer cancel()

	acct, err := storefront.LoadAccount(ctx, p.source)
	if err != nil {
		if ctx.Err() != nil && ctx.Err() == context.Canceled {
			return
		}
		if api.IsInvalidSession(err) {
			p.store.Reset()
			return
		}
		p.store.Update(nil, err)
		p.log.Warn().Err(err).
			Int("failures", p.store.Snapshot().ConsecutiveFailures).
			Msg("account poll failed")
		return
	}
	p.store.Update(&acct, nil)
	p.log.Debug().Int("orders", acct.OrdersCount).Msg("account refreshed")
}

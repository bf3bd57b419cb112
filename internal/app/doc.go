// Package app provides the orchestration layer for the foodbites client.
//
// # Overview
//
// This package wires together configuration, logging, the session, the cart,
// the API client, the account poller and the UI. It is the composition root
// where every dependency is initialized and connected.
//
// # Startup
//
//  1. Load config.toml (plus FOODBITES_* environment and an optional .env)
//  2. Open the zerolog file logger
//  3. Load UI preferences (theme, home search type)
//  4. Open the persisted session token, storing -token when given
//  5. Build the rate-limited api.Client bound to the session
//  6. Open the SQLite cart
//  7. Start the account poller and, when configured, the metrics listener
//  8. Run the TUI until the user quits or the context is cancelled
//
// # Components
//
//   - app.go: Run and the config-to-storefront timing mapping
//   - poller.go: background goroutine that refreshes the profile and orders
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       ├─────> config.Load()        config + env overrides
//	       ├─────> session.Open()       bearer token on disk
//	       ├─────> api.NewClient()      REST client, 401 interceptor
//	       ├─────> cart.Open()          SQLite cart
//	       ├─────> Poller.Start()       account refresh loop
//	       └─────> ui.Run()             TUI (blocks)
//
//	Poller loop:
//	┌─────────────────────────────────────────┐
//	│  ├─> FetchProfile()                     │
//	│  ├─> FetchMyOrders()                    │
//	│  └─> store.Update()  (atomic)           │
//	│      └─> UI reads store.Snapshot()      │
//	└─────────────────────────────────────────┘
//
// # Polling Behavior
//
// The poller only talks to the backend while a token is present. Signed-out
// ticks reset the account snapshot. An "Invalid Token" rejection is handled
// by the api client, which clears the session; the poller then resets the
// snapshot without counting a failure. Other errors back off exponentially,
// capped at maxBackoff, and a base interval above the cap is never shortened.
// Kick requests an immediate refresh, used after signing in.
//
// # Error Handling
//
// Fatal errors (returned from Run):
//   - config file present but invalid
//   - log, session or cart files that cannot be opened
//   - an invalid api_base
//
// Recoverable errors (logged):
//   - unreadable preferences, replaced by defaults
//   - account refresh failures
//   - the metrics listener stopping
//
// # Usage Example
//
//	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer cancel()
//
//	if err := app.Run(ctx, app.Options{Start: "/foods?cuisine=Italian"}); err != nil {
//		log.Fatalf("foodbites failed: %v", err)
//	}
package app

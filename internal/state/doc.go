// Package state provides thread-safe storage for the signed-in account
// snapshot shared by the background poller and the UI.
//
// # Overview
//
// The poller is the single writer: it calls storefront.LoadAccount on its
// own schedule and hands the result to Update. The UI reads with Snapshot
// whenever it renders the home or profile screens.
//
//	Poller:                        UI:
//	LoadAccount()                  store.Snapshot()
//	store.Update(acct, err) ─────> render header, home, profile
//
// # Update Semantics
//
//	// Success: replace the account
//	store.Update(&acct, nil)
//	→ Account = acct, HasAccount = true, LastError = nil
//
//	// Failure: keep the old account, record the error
//	store.Update(nil, err)
//	→ Account unchanged, LastError = err, ConsecutiveFailures++
//
//	// Signed out
//	store.Reset()
//
// IsOffline reports two or more consecutive failures, which the header
// shows as an offline marker.
//
// # Copying
//
// Update and Snapshot copy the order slices so neither side can mutate the
// other's view. The zero Store is ready to use.
package state

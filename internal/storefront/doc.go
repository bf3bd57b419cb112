// Package storefront holds the screen logic behind the foods and home
// views, independent of rendering.
//
// # Components
//
//   - SearchSync: the search draft and its debounced write into the location
//   - Derive: the pure filter that produces the visible list
//   - Menu: fetch, reveal, highlight and add-to-cart choreography
//   - Dashboard: account loading and ad hoc food/restaurant search
//   - Notices: the toast stack
//
// # Time
//
// Nothing here sleeps. Every delay is requested from a Scheduler, which
// returns a tea.Cmd that delivers a message later. TeaScheduler uses
// tea.Tick; tests use a scheduler that queues messages and releases them
// on demand.
//
// # Stale Responses
//
// Menu and Dashboard stamp each request with a generation number and drop
// any response that does not carry the latest one. The add-to-cart trail
// uses the same idea so an older clear cannot cut a newer add short.
package storefront

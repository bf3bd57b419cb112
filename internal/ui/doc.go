// Package ui is the foodbites terminal storefront built on Bubble Tea.
//
// # Architecture Overview
//
// Model is the root tea.Model. It owns the navigation history and routes
// keys, timers and backend responses to the active screen. The screens
// themselves keep no business logic: the storefront package's Menu,
// Dashboard and Notices controllers decide what to fetch, when results are
// revealed and which toasts are live, and the ui package renders them with
// lipgloss.
//
// # Screens
//
//   - Home: welcome line, account summary and the food/restaurant search
//   - Menu: the foods list with debounced search, cuisine filter and
//     add-to-cart choreography
//   - Cart: the local SQLite cart with remove and empty actions
//   - Orders and Profile: the signed-in account, read from state.Store
//   - Sign in: paste a bearer token issued by the backend
//   - Activity: the tail of the foodbites log file
//
// # Event Flow
//
//  1. Run builds the Model and starts the tea.Program
//  2. A tick re-reads the account snapshot kept fresh by the app poller
//  3. Storefront controllers return commands; their messages come back
//     through Update and are handed to Menu.Update and Dashboard.Update
//  4. LocationMsg from a controller pushes or replaces a history entry
//  5. A session invalidation event routes to the sign-in screen once
//
// # Layout
//
// The nav bar collapses behind the m toggle below LayoutCompactWidth
// columns. Toasts are painted over the bottom-right corner of the content.
package ui

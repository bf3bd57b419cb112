package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which the nav links
	// collapse behind the menu toggle.
	LayoutCompactWidth = 100

	// LayoutDetailWidth is the minimum width to show food descriptions.
	LayoutDetailWidth = 130
)

// Fixed rows around the content area.
const (
	navRows    = 1
	footerRows = 1
	toastWidth = 44
)

// Activity view limits.
const (
	// ActivityTailLines is how many log lines the Activity view keeps.
	ActivityTailLines = 400
)

// Timing constants.
const (
	// DefaultUIInterval is how often the shell re-reads the account snapshot.
	DefaultUIInterval = time.Second
)

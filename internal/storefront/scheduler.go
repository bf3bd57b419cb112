package storefront

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Scheduler turns a delay into a command that delivers msg once the delay
// has elapsed. Every timer in this package goes through one.
type Scheduler interface {
	After(d time.Duration, msg tea.Msg) tea.Cmd
}

// TeaScheduler schedules with tea.Tick.
type TeaScheduler struct{}

// After implements Scheduler.
func (TeaScheduler) After(d time.Duration, msg tea.Msg) tea.Cmd {
	if d <= 0 {
		return func() tea.Msg { return msg }
	}
	return tea.Tick(d, func(time.Time) tea.Msg { return msg })
}

// Timings are the storefront's choreography delays. They are presentation
// polish, not a backend latency contract.
type Timings struct {
	Debounce     time.Duration
	Reveal       time.Duration
	Scroll       time.Duration
	AddLatency   time.Duration
	FlightClear  time.Duration
	FetchTimeout time.Duration
	NoticeTTL    time.Duration
}

// DefaultTimings returns the stock delays.
func DefaultTimings() Timings {
	return Timings{
		Debounce:     500 * time.Millisecond,
		Reveal:       300 * time.Millisecond,
		Scroll:       300 * time.Millisecond,
		AddLatency:   300 * time.Millisecond,
		FlightClear:  800 * time.Millisecond,
		FetchTimeout: 10 * time.Second,
		NoticeTTL:    3 * time.Second,
	}
}

// withDefaults fills zero fields from DefaultTimings. Negative values are
// kept and mean "fire immediately".
func (t Timings) withDefaults() Timings {
	d := DefaultTimings()
	fill := func(dst *time.Duration, def time.Duration) {
		if *dst == 0 {
			*dst = def
		}
	}
	fill(&t.Debounce, d.Debounce)
	fill(&t.Reveal, d.Reveal)
	fill(&t.Scroll, d.Scroll)
	fill(&t.AddLatency, d.AddLatency)
	fill(&t.FlightClear, d.FlightClear)
	fill(&t.FetchTimeout, d.FetchTimeout)
	fill(&t.NoticeTTL, d.NoticeTTL)
	return t
}

package storefront

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/foodbites/internal/route"
)

type searchSettleMsg struct {
	seq  int
	text string
}

// SearchSync keeps the editable search draft and the location's search
// parameter consistent. Edits update the draft at once; the location is
// only written after the draft has been quiet for the debounce window.
type SearchSync struct {
	sched   Scheduler
	delay   time.Duration
	draft   string
	seq     int
	pending bool
}

// NewSearchSync starts with the draft taken from loc.
func NewSearchSync(loc route.Location, sched Scheduler, delay time.Duration) SearchSync {
	return SearchSync{sched: sched, delay: delay, draft: loc.Get(route.ParamSearch)}
}

// Draft returns the current search text.
func (s *SearchSync) Draft() string { return s.draft }

// Pending reports whether a write is waiting for the debounce window.
func (s *SearchSync) Pending() bool { return s.pending }

// Edit records text and schedules a settle. Any earlier pending settle is
// superseded.
func (s *SearchSync) Edit(text string) tea.Cmd {
	s.draft = text
	s.seq++
	s.pending = true
	return s.sched.After(s.delay, searchSettleMsg{seq: s.seq, text: text})
}

// Settle handles a settle message. It returns the location to write, with
// the search parameter set or removed, and true only for the latest edit.
// The caller replaces the current history entry with it.
func (s *SearchSync) Settle(msg tea.Msg, loc route.Location) (route.Location, bool) {
	settle, ok := msg.(searchSettleMsg)
	if !ok || settle.seq != s.seq || !s.pending {
		return loc, false
	}
	s.pending = false
	return loc.With(route.ParamSearch, settle.text), true
}

// Cancel drops any pending write and keeps the draft.
func (s *SearchSync) Cancel() {
	s.seq++
	s.pending = false
}

// Adopt takes the draft from loc and cancels any pending write. Used when
// the location changes from outside the search box.
func (s *SearchSync) Adopt(loc route.Location) {
	s.draft = loc.Get(route.ParamSearch)
	s.seq++
	s.pending = false
}

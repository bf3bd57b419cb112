package route

// History is a navigation stack. The zero value starts at Home.
type History struct {
	entries []Location
}

// NewHistory starts a stack at loc.
func NewHistory(loc Location) *History {
	return &History{entries: []Location{loc}}
}

// Current returns the top entry.
func (h *History) Current() Location {
	if len(h.entries) == 0 {
		return New(Home)
	}
	return h.entries[len(h.entries)-1]
}

// Push adds loc on top. Pushing the current location again is a no-op.
func (h *History) Push(loc Location) {
	if len(h.entries) > 0 && h.Current().Equal(loc) {
		return
	}
	h.entries = append(h.entries, loc)
}

// Replace swaps the top entry for loc. The stack never grows.
func (h *History) Replace(loc Location) {
	if len(h.entries) == 0 {
		h.entries = []Location{loc}
		return
	}
	h.entries[len(h.entries)-1] = loc
}

// Back pops the top entry and reports whether there was one to pop. The
// last entry is never removed.
func (h *History) Back() (Location, bool) {
	if len(h.entries) <= 1 {
		return h.Current(), false
	}
	h.entries = h.entries[:len(h.entries)-1]
	return h.Current(), true
}

// Len returns the number of entries.
func (h *History) Len() int {
	if len(h.entries) == 0 {
		return 1
	}
	return len(h.entries)
}

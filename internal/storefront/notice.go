package storefront

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// NoticeKind classifies a toast.
type NoticeKind int

const (
	NoticeInfo NoticeKind = iota
	NoticeSuccess
	NoticeError
)

func (k NoticeKind) String() string {
	switch k {
	case NoticeSuccess:
		return "success"
	case NoticeError:
		return "error"
	default:
		return "info"
	}
}

// Notice is a transient user-visible message.
type Notice struct {
	ID   int
	Kind NoticeKind
	Text string
	At   time.Time
}

const maxNotices = 5

type noticeExpiredMsg struct{ id int }

// Notices is the toast stack shared by the menu and the dashboard. Each
// pushed notice removes itself after the TTL.
type Notices struct {
	sched  Scheduler
	ttl    time.Duration
	now    func() time.Time
	nextID int
	items  []Notice
}

// NewNotices creates an empty stack.
func NewNotices(sched Scheduler, ttl time.Duration) *Notices {
	if ttl == 0 {
		ttl = DefaultTimings().NoticeTTL
	}
	return &Notices{sched: sched, ttl: ttl, now: time.Now}
}

// Push adds a notice and returns the command that expires it. The oldest
// notice is dropped once the stack is full.
func (n *Notices) Push(kind NoticeKind, text string) tea.Cmd {
	n.nextID++
	notice := Notice{ID: n.nextID, Kind: kind, Text: text, At: n.now()}
	n.items = append(n.items, notice)
	if len(n.items) > maxNotices {
		n.items = n.items[len(n.items)-maxNotices:]
	}
	return n.sched.After(n.ttl, noticeExpiredMsg{id: notice.ID})
}

// Handle consumes expiry messages and reports whether msg was one.
func (n *Notices) Handle(msg tea.Msg) bool {
	expired, ok := msg.(noticeExpiredMsg)
	if !ok {
		return false
	}
	for i, item := range n.items {
		if item.ID == expired.id {
			n.items = append(n.items[:i:i], n.items[i+1:]...)
			break
		}
	}
	return true
}

// Active returns the live notices, oldest first.
func (n *Notices) Active() []Notice {
	out := make([]Notice, len(n.items))
	copy(out, n.items)
	return out
}

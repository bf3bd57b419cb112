package storefront

import (
	"context"
	"errors"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/foodbites/internal/api"
	"github.com/five82/foodbites/internal/cart"
)

type scheduled struct {
	d   time.Duration
	msg tea.Msg
}

// queueScheduler holds timers until the test fires them.
type queueScheduler struct {
	pending []scheduled
	delays  []time.Duration
}

func (q *queueScheduler) After(d time.Duration, msg tea.Msg) tea.Cmd {
	return func() tea.Msg {
		q.pending = append(q.pending, scheduled{d: d, msg: msg})
		q.delays = append(q.delays, d)
		return nil
	}
}

func (q *queueScheduler) take() []scheduled {
	out := q.pending
	q.pending = nil
	return out
}

type updater interface {
	Update(tea.Msg) tea.Cmd
}

// harness runs commands synchronously and routes every produced message
// back into the model under test.
type harness struct {
	sched     *queueScheduler
	model     updater
	delivered []tea.Msg
}

func (h *harness) exec(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case nil:
	case tea.BatchMsg:
		for _, c := range msg {
			h.exec(c)
		}
	default:
		h.deliver(msg)
	}
}

func (h *harness) deliver(msg tea.Msg) {
	h.delivered = append(h.delivered, msg)
	h.exec(h.model.Update(msg))
}

// fire releases the timers queued so far, but not ones they queue in turn.
func (h *harness) fire() {
	for _, s := range h.sched.take() {
		h.deliver(s.msg)
	}
}

// settle fires timers until none remain.
func (h *harness) settle() {
	for len(h.sched.pending) > 0 {
		h.fire()
	}
}

func countOf[T any](msgs []tea.Msg) int {
	n := 0
	for _, m := range msgs {
		if _, ok := m.(T); ok {
			n++
		}
	}
	return n
}

func lastOf[T any](msgs []tea.Msg) (T, bool) {
	var zero T
	for i := len(msgs) - 1; i >= 0; i-- {
		if v, ok := msgs[i].(T); ok {
			return v, true
		}
	}
	return zero, false
}

type fakeMenuSource struct {
	mu      sync.Mutex
	byQuery map[api.FoodQuery][]api.Food
	err     error
	calls   []api.FoodQuery
}

func (f *fakeMenuSource) FetchFoods(_ context.Context, q api.FoodQuery) ([]api.Food, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, q)
	if f.err != nil {
		return nil, f.err
	}
	return f.byQuery[q], nil
}

func (f *fakeMenuSource) SearchRestaurants(_ context.Context, term string) ([]api.Restaurant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, api.FoodQuery{Search: "restaurant:" + term})
	if f.err != nil {
		return nil, f.err
	}
	return []api.Restaurant{{ID: "r1", Name: "Taco Town", Location: "Main St"}}, nil
}

func (f *fakeMenuSource) ImageURL(path string) string {
	return "http://api.test" + path
}

type fakeCart struct {
	added []cart.Item
	err   error
}

func (f *fakeCart) Add(_ context.Context, item cart.Item) error {
	if f.err != nil {
		return f.err
	}
	f.added = append(f.added, item)
	return nil
}

var errBoom = errors.New("boom")

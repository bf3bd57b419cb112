package session

import (
	"sync"
	"time"
)

// Event announces that the backend rejected the stored credential.
type Event struct {
	Reason string
	At     time.Time
}

const subscriberBuffer = 4

type bus struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan Event
}

func (b *bus) subscribe() (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.subs == nil {
		b.subs = make(map[int]chan Event)
	}
	id := b.nextID
	b.nextID++
	ch := make(chan Event, subscriberBuffer)
	b.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if sub, ok := b.subs[id]; ok {
				delete(b.subs, id)
				close(sub)
			}
		})
	}
}

// publish never blocks: a subscriber with a full buffer misses the event
// but already has a pending one telling it the session is gone.
func (b *bus) publish(ev Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

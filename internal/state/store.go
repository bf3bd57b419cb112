package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/foodbites/internal/api"
	"github.com/five82/foodbites/internal/storefront"
)

// Snapshot is the latest account data available to the UI.
type Snapshot struct {
	Account             storefront.Account
	HasAccount          bool
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive poll failures
}

// IsOffline returns true when the backend has been unreachable for multiple polls.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update replaces the stored account. When err is non-nil the previous data
// is kept but the error is recorded for visibility.
func (s *Store) Update(acct *storefront.Account, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.LastUpdated = time.Now()
		s.snapshot.ConsecutiveFailures++
		return
	}

	if acct != nil {
		s.snapshot.Account = cloneAccount(*acct)
		s.snapshot.HasAccount = true
	} else {
		s.snapshot.Account = storefront.Account{}
		s.snapshot.HasAccount = false
	}
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures = 0
}

// Reset forgets everything, as after signing out.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = Snapshot{LastUpdated: time.Now()}
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Account = cloneAccount(s.snapshot.Account)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneAccount(a storefront.Account) storefront.Account {
	if len(a.Orders) == 0 {
		a.Orders = nil
		return a
	}
	orders := make([]api.Order, len(a.Orders))
	for i, o := range a.Orders {
		o.Items = append([]api.OrderItem(nil), o.Items...)
		orders[i] = o
	}
	a.Orders = orders
	return a
}

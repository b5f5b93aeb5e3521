package store

import (
	"sync"

	"github.com/punchamoorthee/paypeer/internal/domain"
)

// Card ids start at 1 to match the seeded fixture; every other entity
// counts from 0.
const (
	FirstCardID         = 1
	FirstTransactionID  = 0
	FirstRequestID      = 0
	FirstNotificationID = 0
)

// State is the whole simulated backend: users keyed by email plus one
// arena per numbered entity kind. A single mutex guards everything;
// the simulator models one logical caller session at a time, the lock
// only keeps the HTTP layer honest. Services lock around each operation
// and use unexported lock-free internals for cross-service calls.
type State struct {
	mu sync.Mutex

	Users         map[string]*domain.User
	Cards         *Arena[domain.PaymentCard]
	Transactions  *Arena[domain.Transaction]
	Requests      *Arena[domain.PaymentRequest]
	Notifications *Arena[domain.Notification]
}

// NewState returns an empty backend with fresh allocators.
func NewState() *State {
	return &State{
		Users:         make(map[string]*domain.User),
		Cards:         NewArena[domain.PaymentCard](FirstCardID),
		Transactions:  NewArena[domain.Transaction](FirstTransactionID),
		Requests:      NewArena[domain.PaymentRequest](FirstRequestID),
		Notifications: NewArena[domain.Notification](FirstNotificationID),
	}
}

// Lock takes the state-wide mutex for the duration of one operation.
func (s *State) Lock() { s.mu.Lock() }

// Unlock releases the state-wide mutex.
func (s *State) Unlock() { s.mu.Unlock() }

// User looks up an identity by email.
func (s *State) User(email string) (*domain.User, bool) {
	u, ok := s.Users[email]
	return u, ok
}

// Package scenario seeds and resets the simulated backend. A scenario is
// the complete backend state as a plain data document; applying one
// replaces everything, so a test harness can reload a known world between
// episodes.
package scenario

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/punchamoorthee/paypeer/internal/domain"
	"github.com/punchamoorthee/paypeer/internal/session"
	"github.com/punchamoorthee/paypeer/internal/store"
	"github.com/shopspring/decimal"
)

// Scenario is a loadable snapshot of the backend.
type Scenario struct {
	CurrentUser   string                           `json:"current_user"`
	Users         map[string]*domain.User          `json:"users"`
	PaymentCards  map[int64]*domain.PaymentCard    `json:"payment_cards"`
	Transactions  map[int64]*domain.Transaction    `json:"transactions"`
	Requests      map[int64]*domain.PaymentRequest `json:"payment_requests"`
	Notifications map[int64]*domain.Notification   `json:"notifications"`
}

// Default is the two-user fixture the simulator boots with: alice with a
// hundred dollars and one debit card, bob with two fifty, friends with
// each other, alice logged in.
func Default() *Scenario {
	return &Scenario{
		CurrentUser: "user1@example.com",
		Users: map[string]*domain.User{
			"user1@example.com": {
				Email:        "user1@example.com",
				FirstName:    "Alice",
				LastName:     "Smith",
				Balance:      decimal.NewFromInt(100),
				Friends:      []string{"user2@example.com"},
				PaymentCards: []int64{1},
			},
			"user2@example.com": {
				Email:     "user2@example.com",
				FirstName: "Bob",
				LastName:  "Johnson",
				Balance:   decimal.NewFromInt(250),
				Friends:   []string{"user1@example.com"},
			},
		},
		PaymentCards: map[int64]*domain.PaymentCard{
			1: {
				ID:          1,
				Owner:       "user1@example.com",
				CardName:    "My Debit Card",
				OwnerName:   "Alice Smith",
				CardNumber:  1234,
				ExpiryYear:  2028,
				ExpiryMonth: 11,
				CVV:         123,
			},
		},
	}
}

// FromFile parses a scenario JSON document.
func FromFile(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	var sc Scenario
	if err := json.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	return &sc, nil
}

// Apply replaces the backend state and active session with deep copies of
// the scenario, so the same Scenario value can seed any number of resets.
func (sc *Scenario) Apply(st *store.State, sess *session.Session) {
	st.Lock()
	defer st.Unlock()

	st.Users = make(map[string]*domain.User, len(sc.Users))
	for email, u := range sc.Users {
		st.Users[email] = u.Clone()
	}
	st.Cards.Restore(cloneMap(sc.PaymentCards, (*domain.PaymentCard).Clone))
	st.Transactions.Restore(cloneMap(sc.Transactions, (*domain.Transaction).Clone))
	st.Requests.Restore(cloneMap(sc.Requests, (*domain.PaymentRequest).Clone))
	st.Notifications.Restore(cloneMap(sc.Notifications, (*domain.Notification).Clone))

	sess.Logout()
	if sc.CurrentUser != "" {
		sess.Login(sc.CurrentUser)
	}
}

func cloneMap[T any](src map[int64]*T, clone func(*T) *T) map[int64]*T {
	out := make(map[int64]*T, len(src))
	for id, item := range src {
		out[id] = clone(item)
	}
	return out
}

package service

import (
	"testing"

	"github.com/punchamoorthee/paypeer/internal/scenario"
	"github.com/punchamoorthee/paypeer/internal/session"
	"github.com/punchamoorthee/paypeer/internal/store"
	"github.com/shopspring/decimal"
)

const (
	alice = "user1@example.com"
	bob   = "user2@example.com"
)

type world struct {
	st       *store.State
	sess     *session.Session
	accounts *Accounts
	ledger   *Ledger
	tx       *Transactions
	requests *Requests
	notify   *Notifications
}

// newWorld seeds the default two-user fixture: alice with $100 and card 1,
// bob with $250, mutual friends.
func newWorld(t *testing.T) *world {
	t.Helper()
	st := store.NewState()
	sess := session.New()
	scenario.Default().Apply(st, sess)

	ledger := NewLedger(st)
	tx := NewTransactions(st, ledger)
	notify := NewNotifications(st)
	return &world{
		st:       st,
		sess:     sess,
		accounts: NewAccounts(st, sess),
		ledger:   ledger,
		tx:       tx,
		requests: NewRequests(st, tx, notify),
		notify:   notify,
	}
}

func (w *world) balance(t *testing.T, email string) decimal.Decimal {
	t.Helper()
	w.st.Lock()
	defer w.st.Unlock()
	user, ok := w.st.User(email)
	if !ok {
		t.Fatalf("user %s missing", email)
	}
	return user.Balance
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func ptr[T any](v T) *T {
	return &v
}

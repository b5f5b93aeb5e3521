package service

import (
	"fmt"

	"github.com/punchamoorthee/paypeer/internal/domain"
	"github.com/punchamoorthee/paypeer/internal/store"
	"github.com/shopspring/decimal"
)

// Ledger tracks per-user balances. Top-ups and withdrawals are funded
// through a payment card the actor owns; the card is only checked for
// existence and ownership, no card network is modeled.
type Ledger struct {
	st *store.State
}

// NewLedger returns a ledger over the shared state.
func NewLedger(st *store.State) *Ledger {
	return &Ledger{st: st}
}

// Balance returns the actor's current balance.
func (l *Ledger) Balance(actor string) (decimal.Decimal, error) {
	l.st.Lock()
	defer l.st.Unlock()

	user, err := requireActor(l.st, actor)
	if err != nil {
		return decimal.Zero, err
	}
	return user.Balance, nil
}

// AddMoney moves amount from the given card onto the actor's balance and
// returns the new balance.
func (l *Ledger) AddMoney(actor string, amount decimal.Decimal, cardID int64) (decimal.Decimal, error) {
	l.st.Lock()
	defer l.st.Unlock()

	user, err := requireActor(l.st, actor)
	if err != nil {
		return decimal.Zero, err
	}
	if err := requirePositive(amount); err != nil {
		return decimal.Zero, err
	}
	if _, err := l.ownedCard(actor, cardID); err != nil {
		return decimal.Zero, err
	}
	l.credit(user, amount)
	return user.Balance, nil
}

// WithdrawMoney moves amount from the actor's balance back onto the given
// card and returns the new balance.
func (l *Ledger) WithdrawMoney(actor string, amount decimal.Decimal, cardID int64) (decimal.Decimal, error) {
	l.st.Lock()
	defer l.st.Unlock()

	user, err := requireActor(l.st, actor)
	if err != nil {
		return decimal.Zero, err
	}
	if err := requirePositive(amount); err != nil {
		return decimal.Zero, err
	}
	if _, err := l.ownedCard(actor, cardID); err != nil {
		return decimal.Zero, err
	}
	if err := l.debit(user, amount); err != nil {
		return decimal.Zero, err
	}
	return user.Balance, nil
}

// credit adds amount to the user's balance. Lock must be held.
func (l *Ledger) credit(user *domain.User, amount decimal.Decimal) {
	user.Balance = user.Balance.Add(amount)
}

// debit removes amount from the user's balance, failing without mutation
// when the balance does not cover it. Lock must be held.
func (l *Ledger) debit(user *domain.User, amount decimal.Decimal) error {
	if user.Balance.LessThan(amount) {
		return fmt.Errorf("%w: balance %s is less than %s",
			ErrInsufficientFunds, user.Balance.StringFixed(2), amount.StringFixed(2))
	}
	user.Balance = user.Balance.Sub(amount)
	return nil
}

// ownedCard resolves cardID and checks the actor owns it. Lock must be held.
func (l *Ledger) ownedCard(actor string, cardID int64) (*domain.PaymentCard, error) {
	card, ok := l.st.Cards.Get(cardID)
	if !ok {
		return nil, fmt.Errorf("%w: card %d", ErrCardNotFound, cardID)
	}
	if card.Owner != actor {
		return nil, fmt.Errorf("%w: card %d belongs to another user", ErrForbidden, cardID)
	}
	return card, nil
}

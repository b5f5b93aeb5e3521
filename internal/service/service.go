// Package service implements the core engines of the simulator: the
// account ledger, the transaction engine, the payment request state
// machine and the notification sink, plus the account/card/friend CRUD
// around them. Every operation takes the acting identity explicitly and
// returns a payload with a typed error; the API edge owns the ambient
// session and the boolean status shapes.
package service

import (
	"fmt"
	"time"

	"github.com/punchamoorthee/paypeer/internal/domain"
	"github.com/punchamoorthee/paypeer/internal/store"
	"github.com/shopspring/decimal"
)

// timestamp is the record creation time: RFC3339 UTC with milliseconds.
// Lexicographic order on these strings is chronological order, which the
// transaction date filters rely on.
func timestamp() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05.000Z")
}

// requireActor resolves the acting identity, failing closed when nobody
// is logged in. Lock must be held.
func requireActor(st *store.State, actor string) (*domain.User, error) {
	if actor == "" {
		return nil, ErrNotAuthenticated
	}
	u, ok := st.User(actor)
	if !ok {
		// A stale session naming a deleted identity is treated the
		// same as no session at all.
		return nil, ErrNotAuthenticated
	}
	return u, nil
}

// errPageCoordinates flags pagination input that is malformed rather
// than merely out of range (out-of-range pages are empty, not errors).
func errPageCoordinates() error {
	return fmt.Errorf("%w: page and page_size must be at least 1", ErrInvalidArgument)
}

// requirePositive rejects zero and negative amounts at the boundary.
func requirePositive(amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidArgument)
	}
	return nil
}

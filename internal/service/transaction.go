package service

import (
	"fmt"
	"sort"
	"strings"

	"github.com/punchamoorthee/paypeer/internal/domain"
	"github.com/punchamoorthee/paypeer/internal/store"
	"github.com/shopspring/decimal"
)

// Transactions records transfers between users and answers filtered,
// sorted, paginated queries over them. Records are immutable after
// creation except for the sender-editable description/privacy and the
// accumulating likes and comments; nothing is ever deleted.
type Transactions struct {
	st     *store.State
	ledger *Ledger
}

// NewTransactions returns the transaction engine over the shared state.
func NewTransactions(st *store.State, ledger *Ledger) *Transactions {
	return &Transactions{st: st, ledger: ledger}
}

// Send transfers amount from the actor to receiver. With no card the
// transfer is balance-funded: the actor's balance must cover it and is
// debited. With a card the actor's balance is untouched. The receiver is
// always credited.
func (t *Transactions) Send(actor, receiver string, amount decimal.Decimal, description string, private bool, cardID *int64) (*domain.Transaction, error) {
	t.st.Lock()
	defer t.st.Unlock()

	if _, err := requireActor(t.st, actor); err != nil {
		return nil, err
	}
	tx, err := t.record(actor, receiver, amount, description, private, cardID)
	if err != nil {
		return nil, err
	}
	return tx.Clone(), nil
}

// record performs the validated transfer and appends the transaction.
// All validation happens before any mutation. Lock must be held.
func (t *Transactions) record(sender, receiver string, amount decimal.Decimal, description string, private bool, cardID *int64) (*domain.Transaction, error) {
	if err := requirePositive(amount); err != nil {
		return nil, err
	}
	senderUser, ok := t.st.User(sender)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, sender)
	}
	receiverUser, ok := t.st.User(receiver)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, receiver)
	}
	if sender == receiver {
		return nil, fmt.Errorf("%w: cannot send money to yourself", ErrInvalidArgument)
	}
	if cardID != nil {
		if _, err := t.ledger.ownedCard(sender, *cardID); err != nil {
			return nil, err
		}
	} else if senderUser.Balance.LessThan(amount) {
		return nil, fmt.Errorf("%w: balance %s is less than %s",
			ErrInsufficientFunds, senderUser.Balance.StringFixed(2), amount.StringFixed(2))
	}

	if cardID == nil {
		senderUser.Balance = senderUser.Balance.Sub(amount)
	}
	t.ledger.credit(receiverUser, amount)

	return t.st.Transactions.Add(func(id int64) *domain.Transaction {
		return &domain.Transaction{
			ID:          id,
			Sender:      sender,
			Receiver:    receiver,
			Amount:      amount,
			Description: description,
			Private:     private,
			CardID:      cardID,
			CreatedAt:   timestamp(),
		}
	}), nil
}

// Get returns one transaction by id.
func (t *Transactions) Get(actor string, id int64) (*domain.Transaction, error) {
	t.st.Lock()
	defer t.st.Unlock()

	if _, err := requireActor(t.st, actor); err != nil {
		return nil, err
	}
	tx, ok := t.st.Transactions.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: transaction %d", ErrTransactionNotFound, id)
	}
	return tx.Clone(), nil
}

// Update changes description and/or privacy. Only the original sender may
// update a transaction.
func (t *Transactions) Update(actor string, id int64, description *string, private *bool) (*domain.Transaction, error) {
	t.st.Lock()
	defer t.st.Unlock()

	if _, err := requireActor(t.st, actor); err != nil {
		return nil, err
	}
	tx, ok := t.st.Transactions.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: transaction %d", ErrTransactionNotFound, id)
	}
	if tx.Sender != actor {
		return nil, fmt.Errorf("%w: only the sender can update a transaction", ErrForbidden)
	}
	if description != nil {
		tx.Description = *description
	}
	if private != nil {
		tx.Private = *private
	}
	return tx.Clone(), nil
}

// Like increments the like counter.
func (t *Transactions) Like(actor string, id int64) (*domain.Transaction, error) {
	t.st.Lock()
	defer t.st.Unlock()

	if _, err := requireActor(t.st, actor); err != nil {
		return nil, err
	}
	tx, ok := t.st.Transactions.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: transaction %d", ErrTransactionNotFound, id)
	}
	tx.Likes++
	return tx.Clone(), nil
}

// Comment appends to the transaction's ordered comment list.
func (t *Transactions) Comment(actor string, id int64, text string) (*domain.Transaction, error) {
	t.st.Lock()
	defer t.st.Unlock()

	if _, err := requireActor(t.st, actor); err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: comment text is required", ErrInvalidArgument)
	}
	tx, ok := t.st.Transactions.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: transaction %d", ErrTransactionNotFound, id)
	}
	tx.Comments = append(tx.Comments, domain.Comment{
		Author:    actor,
		Text:      text,
		CreatedAt: timestamp(),
	})
	return tx.Clone(), nil
}

// Query returns one page of the actor's transactions plus the total match
// count. The sort key and direction are required inputs; equal keys keep
// insertion order.
func (t *Transactions) Query(actor string, q domain.TransactionQuery) ([]*domain.Transaction, int, error) {
	t.st.Lock()
	defer t.st.Unlock()

	if _, err := requireActor(t.st, actor); err != nil {
		return nil, 0, err
	}
	if err := validateQuery(q); err != nil {
		return nil, 0, err
	}

	var matched []*domain.Transaction
	for _, tx := range t.st.Transactions.List() {
		if matches(tx, actor, q) {
			matched = append(matched, tx)
		}
	}
	sortTransactions(matched, q.SortBy, q.Order)

	total := len(matched)
	lo, hi := q.Page.Bounds(total)
	page := make([]*domain.Transaction, 0, hi-lo)
	for _, tx := range matched[lo:hi] {
		page = append(page, tx.Clone())
	}
	return page, total, nil
}

func validateQuery(q domain.TransactionQuery) error {
	switch q.Direction {
	case domain.DirectionAny, domain.DirectionSent, domain.DirectionReceived:
	default:
		return fmt.Errorf("%w: direction must be any, sent or received", ErrInvalidArgument)
	}
	switch q.SortBy {
	case domain.SortByCreatedAt, domain.SortByAmount, domain.SortByLikes:
	default:
		return fmt.Errorf("%w: sort_by must be created_at, amount or likes", ErrInvalidArgument)
	}
	switch q.Order {
	case domain.SortAsc, domain.SortDesc:
	default:
		return fmt.Errorf("%w: sort_order must be asc or desc", ErrInvalidArgument)
	}
	if !q.Page.Valid() {
		return errPageCoordinates()
	}
	return nil
}

func matches(tx *domain.Transaction, actor string, q domain.TransactionQuery) bool {
	sent := tx.Sender == actor
	received := tx.Receiver == actor
	switch q.Direction {
	case domain.DirectionSent:
		if !sent {
			return false
		}
	case domain.DirectionReceived:
		if !received {
			return false
		}
	default:
		if !sent && !received {
			return false
		}
	}
	if q.Counterparty != "" {
		other := tx.Receiver
		if received {
			other = tx.Sender
		}
		if other != q.Counterparty {
			return false
		}
	}
	if q.Description != "" &&
		!strings.Contains(strings.ToLower(tx.Description), strings.ToLower(q.Description)) {
		return false
	}
	if q.CreatedAfter != "" && tx.CreatedAt < q.CreatedAfter {
		return false
	}
	if q.CreatedBefore != "" && tx.CreatedAt > q.CreatedBefore {
		return false
	}
	if q.MinLikes != nil && tx.Likes < *q.MinLikes {
		return false
	}
	if q.MaxLikes != nil && tx.Likes > *q.MaxLikes {
		return false
	}
	if q.MinAmount != nil && tx.Amount.LessThan(*q.MinAmount) {
		return false
	}
	if q.MaxAmount != nil && tx.Amount.GreaterThan(*q.MaxAmount) {
		return false
	}
	if q.Private != nil && tx.Private != *q.Private {
		return false
	}
	return true
}

// sortTransactions orders by the chosen key; SliceStable keeps insertion
// order for equal keys.
func sortTransactions(txs []*domain.Transaction, by domain.SortField, order domain.SortOrder) {
	less := func(a, b *domain.Transaction) bool {
		switch by {
		case domain.SortByAmount:
			return a.Amount.LessThan(b.Amount)
		case domain.SortByLikes:
			return a.Likes < b.Likes
		default:
			return a.CreatedAt < b.CreatedAt
		}
	}
	sort.SliceStable(txs, func(i, j int) bool {
		if order == domain.SortDesc {
			return less(txs[j], txs[i])
		}
		return less(txs[i], txs[j])
	})
}

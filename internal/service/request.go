package service

import (
	"fmt"

	"github.com/punchamoorthee/paypeer/internal/domain"
	"github.com/punchamoorthee/paypeer/internal/store"
	"github.com/shopspring/decimal"
)

// Requests is the payment request state machine. A request starts pending
// and transitions exactly once: approve and deny are terminal statuses on
// a retained record, cancel deletes the record outright. Denial is a
// historical fact the target may want to keep; cancellation corrects an
// ask that was never fulfilled, so nothing remains of it. Every
// transition emits exactly one notification to the counterparty.
type Requests struct {
	st     *store.State
	tx     *Transactions
	notify *Notifications
}

// NewRequests returns the state machine over the shared state.
func NewRequests(st *store.State, tx *Transactions, notify *Notifications) *Requests {
	return &Requests{st: st, tx: tx, notify: notify}
}

// Create opens a pending request asking `to` for amount. No money moves;
// the target is notified.
func (r *Requests) Create(actor, to string, amount decimal.Decimal, description string, private bool) (*domain.PaymentRequest, error) {
	r.st.Lock()
	defer r.st.Unlock()

	requester, err := requireActor(r.st, actor)
	if err != nil {
		return nil, err
	}
	if err := requirePositive(amount); err != nil {
		return nil, err
	}
	if _, ok := r.st.User(to); !ok {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, to)
	}
	if to == actor {
		return nil, fmt.Errorf("%w: cannot request money from yourself", ErrInvalidArgument)
	}

	req := r.st.Requests.Add(func(id int64) *domain.PaymentRequest {
		return &domain.PaymentRequest{
			ID:          id,
			FromUser:    actor,
			ToUser:      to,
			Amount:      amount,
			Description: description,
			Private:     private,
			Status:      domain.RequestPending,
			CreatedAt:   timestamp(),
		}
	})
	r.notify.emit(to, domain.NotifyPaymentRequest,
		fmt.Sprintf("%s requested $%s for %q", requester.DisplayName(), amount.StringFixed(2), description))
	return req.Clone(), nil
}

// Approve pays a pending request. Only the target may approve. The money
// moves target→requester through the transaction engine, reusing the
// request's amount, description and privacy; a card, when given, funds
// the transfer instead of the target's balance. Validation completes
// before any mutation, so a failed approval leaves the request pending
// and every balance untouched.
func (r *Requests) Approve(actor string, id int64, cardID *int64) (*domain.PaymentRequest, error) {
	r.st.Lock()
	defer r.st.Unlock()

	target, err := requireActor(r.st, actor)
	if err != nil {
		return nil, err
	}
	req, err := r.pendingOwnedBy(id, actor, ownerTarget)
	if err != nil {
		return nil, err
	}
	if cardID != nil {
		if _, err := r.tx.ledger.ownedCard(actor, *cardID); err != nil {
			return nil, err
		}
	} else if target.Balance.LessThan(req.Amount) {
		return nil, fmt.Errorf("%w: balance %s is less than %s",
			ErrInsufficientFunds, target.Balance.StringFixed(2), req.Amount.StringFixed(2))
	}

	if _, err := r.tx.record(actor, req.FromUser, req.Amount, req.Description, req.Private, cardID); err != nil {
		return nil, err
	}
	req.Status = domain.RequestApproved
	r.notify.emit(req.FromUser, domain.NotifyPaymentApproved,
		fmt.Sprintf("%s approved your $%s request for %q", target.DisplayName(), req.Amount.StringFixed(2), req.Description))
	return req.Clone(), nil
}

// Deny refuses a pending request. Only the target may deny; no money
// moves and the denied record is kept.
func (r *Requests) Deny(actor string, id int64) (*domain.PaymentRequest, error) {
	r.st.Lock()
	defer r.st.Unlock()

	target, err := requireActor(r.st, actor)
	if err != nil {
		return nil, err
	}
	req, err := r.pendingOwnedBy(id, actor, ownerTarget)
	if err != nil {
		return nil, err
	}
	req.Status = domain.RequestDenied
	r.notify.emit(req.FromUser, domain.NotifyPaymentDenied,
		fmt.Sprintf("%s denied your $%s request for %q", target.DisplayName(), req.Amount.StringFixed(2), req.Description))
	return req.Clone(), nil
}

// Remind nudges the target about a pending request. Only the requester
// may remind; the request itself does not change, so reminding is
// repeatable and each call notifies the target again.
func (r *Requests) Remind(actor string, id int64) (*domain.PaymentRequest, error) {
	r.st.Lock()
	defer r.st.Unlock()

	requester, err := requireActor(r.st, actor)
	if err != nil {
		return nil, err
	}
	req, err := r.pendingOwnedBy(id, actor, ownerRequester)
	if err != nil {
		return nil, err
	}
	r.notify.emit(req.ToUser, domain.NotifyPaymentReminder,
		fmt.Sprintf("Reminder: %s is still waiting on the $%s request for %q", requester.DisplayName(), req.Amount.StringFixed(2), req.Description))
	return req.Clone(), nil
}

// Cancel withdraws a pending request and deletes the record, the one
// destructive transition. Only the requester may cancel; the target is
// notified and the id is never reused.
func (r *Requests) Cancel(actor string, id int64) error {
	r.st.Lock()
	defer r.st.Unlock()

	requester, err := requireActor(r.st, actor)
	if err != nil {
		return err
	}
	req, err := r.pendingOwnedBy(id, actor, ownerRequester)
	if err != nil {
		return err
	}
	r.st.Requests.Delete(req.ID)
	r.notify.emit(req.ToUser, domain.NotifyRequestCanceled,
		fmt.Sprintf("%s canceled the $%s request for %q", requester.DisplayName(), req.Amount.StringFixed(2), req.Description))
	return nil
}

type requestOwner int

const (
	ownerTarget requestOwner = iota
	ownerRequester
)

// pendingOwnedBy resolves a request and enforces the two transition
// preconditions shared by every operation: the right party is acting and
// the request is still pending. Lock must be held.
func (r *Requests) pendingOwnedBy(id int64, actor string, owner requestOwner) (*domain.PaymentRequest, error) {
	req, ok := r.st.Requests.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: payment request %d", ErrRequestNotFound, id)
	}
	switch owner {
	case ownerTarget:
		if req.ToUser != actor {
			return nil, fmt.Errorf("%w: only the request target can do this", ErrForbidden)
		}
	case ownerRequester:
		if req.FromUser != actor {
			return nil, fmt.Errorf("%w: only the requester can do this", ErrForbidden)
		}
	}
	if req.Status != domain.RequestPending {
		return nil, fmt.Errorf("%w: request %d is %s", ErrInvalidState, id, req.Status)
	}
	return req, nil
}

// Get returns one request by id; either party may look at it.
func (r *Requests) Get(actor string, id int64) (*domain.PaymentRequest, error) {
	r.st.Lock()
	defer r.st.Unlock()

	if _, err := requireActor(r.st, actor); err != nil {
		return nil, err
	}
	req, ok := r.st.Requests.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: payment request %d", ErrRequestNotFound, id)
	}
	if req.FromUser != actor && req.ToUser != actor {
		return nil, fmt.Errorf("%w: not a party to this request", ErrForbidden)
	}
	return req.Clone(), nil
}

// ListMine returns every request the actor is a party to, in creation order.
func (r *Requests) ListMine(actor string) ([]*domain.PaymentRequest, error) {
	r.st.Lock()
	defer r.st.Unlock()

	if _, err := requireActor(r.st, actor); err != nil {
		return nil, err
	}
	var out []*domain.PaymentRequest
	for _, req := range r.st.Requests.List() {
		if req.FromUser == actor || req.ToUser == actor {
			out = append(out, req.Clone())
		}
	}
	return out, nil
}

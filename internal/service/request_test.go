package service

import (
	"errors"
	"testing"

	"github.com/punchamoorthee/paypeer/internal/domain"
)

func notificationsFor(t *testing.T, w *world, email string) []*domain.Notification {
	t.Helper()
	notes, _, err := w.notify.Query(email, domain.NotificationQuery{Page: domain.Page{Number: 1, Size: 50}})
	if err != nil {
		t.Fatalf("notifications for %s: %v", email, err)
	}
	return notes
}

func TestCreateRequestNotifiesTarget(t *testing.T) {
	w := newWorld(t)

	req, err := w.requests.Create(alice, bob, dec("30"), "dinner", false)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if req.ID != 0 {
		t.Errorf("first request id = %d, want 0", req.ID)
	}
	if req.Status != domain.RequestPending {
		t.Errorf("status = %s, want pending", req.Status)
	}
	if got := w.balance(t, alice); !got.Equal(dec("100")) {
		t.Errorf("requester balance moved on create: %s", got)
	}

	notes := notificationsFor(t, w, bob)
	if len(notes) != 1 {
		t.Fatalf("bob has %d notifications, want 1", len(notes))
	}
	if notes[0].Kind != domain.NotifyPaymentRequest {
		t.Errorf("kind = %s, want %s", notes[0].Kind, domain.NotifyPaymentRequest)
	}
	if notes[0].Read {
		t.Error("new notification already read")
	}
}

func TestCreateRequestRejectsSelfAndUnknown(t *testing.T) {
	w := newWorld(t)

	if _, err := w.requests.Create(alice, alice, dec("5"), "", false); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("self request err = %v, want ErrInvalidArgument", err)
	}
	if _, err := w.requests.Create(alice, "ghost@example.com", dec("5"), "", false); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("unknown target err = %v, want ErrUserNotFound", err)
	}
	if _, err := w.requests.Create(alice, bob, dec("0"), "", false); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("zero amount err = %v, want ErrInvalidArgument", err)
	}
}

func TestApproveMovesMoneyAndNotifiesRequester(t *testing.T) {
	w := newWorld(t)
	req, err := w.requests.Create(alice, bob, dec("30"), "dinner", false)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := w.requests.Approve(bob, req.ID, nil)
	if err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if got.Status != domain.RequestApproved {
		t.Errorf("status = %s, want approved", got.Status)
	}
	if b := w.balance(t, bob); !b.Equal(dec("220")) {
		t.Errorf("target balance = %s, want 220", b)
	}
	if b := w.balance(t, alice); !b.Equal(dec("130")) {
		t.Errorf("requester balance = %s, want 130", b)
	}

	// The settlement is an ordinary transaction from the target.
	tx, err := w.tx.Get(bob, 0)
	if err != nil {
		t.Fatalf("settlement transaction: %v", err)
	}
	if tx.Sender != bob || tx.Receiver != alice || !tx.Amount.Equal(dec("30")) {
		t.Errorf("settlement = %s->%s %s", tx.Sender, tx.Receiver, tx.Amount)
	}

	notes := notificationsFor(t, w, alice)
	if len(notes) != 1 || notes[0].Kind != domain.NotifyPaymentApproved {
		t.Fatalf("requester notifications = %+v, want one payment_approved", notes)
	}
}

func TestApproveCardFundedKeepsTargetBalance(t *testing.T) {
	w := newWorld(t)
	// Bob asks alice, who approves with her card.
	req, err := w.requests.Create(bob, alice, dec("500"), "laptop", false)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := w.requests.Approve(alice, req.ID, ptr(int64(1))); err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if b := w.balance(t, alice); !b.Equal(dec("100")) {
		t.Errorf("card-funded approval debited balance: %s", b)
	}
	if b := w.balance(t, bob); !b.Equal(dec("750")) {
		t.Errorf("requester balance = %s, want 750", b)
	}
}

func TestApproveInsufficientFundsLeavesRequestPending(t *testing.T) {
	w := newWorld(t)
	req, err := w.requests.Create(bob, alice, dec("150"), "too big", false)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	aliceNotesBefore := len(notificationsFor(t, w, alice))
	bobNotesBefore := len(notificationsFor(t, w, bob))

	_, err = w.requests.Approve(alice, req.ID, nil)
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("err = %v, want ErrInsufficientFunds", err)
	}

	got, err := w.requests.Get(alice, req.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Status != domain.RequestPending {
		t.Errorf("status after failed approve = %s, want pending", got.Status)
	}
	if b := w.balance(t, alice); !b.Equal(dec("100")) {
		t.Errorf("balance moved on failed approve: %s", b)
	}
	if n := len(notificationsFor(t, w, alice)); n != aliceNotesBefore {
		t.Errorf("alice notifications grew on failed approve")
	}
	if n := len(notificationsFor(t, w, bob)); n != bobNotesBefore {
		t.Errorf("bob notifications grew on failed approve")
	}
}

func TestApproveRequiresTarget(t *testing.T) {
	w := newWorld(t)
	req, _ := w.requests.Create(alice, bob, dec("30"), "dinner", false)

	if _, err := w.requests.Approve(alice, req.ID, nil); !errors.Is(err, ErrForbidden) {
		t.Errorf("requester approve err = %v, want ErrForbidden", err)
	}
}

func TestDenyKeepsRecord(t *testing.T) {
	w := newWorld(t)
	req, _ := w.requests.Create(alice, bob, dec("30"), "dinner", false)

	got, err := w.requests.Deny(bob, req.ID)
	if err != nil {
		t.Fatalf("Deny: %v", err)
	}
	if got.Status != domain.RequestDenied {
		t.Errorf("status = %s, want denied", got.Status)
	}
	if b := w.balance(t, alice); !b.Equal(dec("100")) {
		t.Errorf("balance moved on deny: %s", b)
	}
	notes := notificationsFor(t, w, alice)
	if len(notes) != 1 || notes[0].Kind != domain.NotifyPaymentDenied {
		t.Fatalf("requester notifications = %+v, want one payment_denied", notes)
	}

	// Denied is terminal; the record survives but cannot transition again.
	if _, err := w.requests.Approve(bob, req.ID, nil); !errors.Is(err, ErrInvalidState) {
		t.Errorf("approve after deny err = %v, want ErrInvalidState", err)
	}
	if _, err := w.requests.Get(alice, req.ID); err != nil {
		t.Errorf("denied record gone: %v", err)
	}
}

func TestRemindIsRepeatable(t *testing.T) {
	w := newWorld(t)
	req, _ := w.requests.Create(alice, bob, dec("30"), "dinner", false)

	for i := 0; i < 2; i++ {
		if _, err := w.requests.Remind(alice, req.ID); err != nil {
			t.Fatalf("Remind %d: %v", i, err)
		}
	}
	reminders := 0
	for _, note := range notificationsFor(t, w, bob) {
		if note.Kind == domain.NotifyPaymentReminder {
			reminders++
		}
	}
	if reminders != 2 {
		t.Errorf("bob has %d reminders, want 2", reminders)
	}

	if _, err := w.requests.Remind(bob, req.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("target remind err = %v, want ErrForbidden", err)
	}
}

func TestCancelDeletesRecord(t *testing.T) {
	w := newWorld(t)
	req, _ := w.requests.Create(alice, bob, dec("30"), "dinner", false)

	if err := w.requests.Cancel(alice, req.ID); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if _, err := w.requests.Get(alice, req.ID); !errors.Is(err, ErrRequestNotFound) {
		t.Errorf("canceled record err = %v, want ErrRequestNotFound", err)
	}
	if _, err := w.requests.Approve(bob, req.ID, nil); !errors.Is(err, ErrRequestNotFound) {
		t.Errorf("approve after cancel err = %v, want ErrRequestNotFound", err)
	}

	found := false
	for _, note := range notificationsFor(t, w, bob) {
		if note.Kind == domain.NotifyRequestCanceled {
			found = true
		}
	}
	if !found {
		t.Error("target not notified of cancellation")
	}

	// The id is spent: the next request continues the sequence.
	next, _ := w.requests.Create(alice, bob, dec("5"), "again", false)
	if next.ID != req.ID+1 {
		t.Errorf("next request id = %d, want %d", next.ID, req.ID+1)
	}
}

func TestCancelRequiresRequester(t *testing.T) {
	w := newWorld(t)
	req, _ := w.requests.Create(alice, bob, dec("30"), "dinner", false)

	if err := w.requests.Cancel(bob, req.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("target cancel err = %v, want ErrForbidden", err)
	}
}

func TestRequestVisibilityLimitedToParties(t *testing.T) {
	w := newWorld(t)
	req, _ := w.requests.Create(alice, bob, dec("30"), "dinner", false)

	w.st.Lock()
	w.st.Users["carol@example.com"] = &domain.User{
		Email:     "carol@example.com",
		FirstName: "Carol",
		LastName:  "Reed",
	}
	w.st.Unlock()

	if _, err := w.requests.Get("carol@example.com", req.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("outsider Get err = %v, want ErrForbidden", err)
	}
	mine, err := w.requests.ListMine("carol@example.com")
	if err != nil {
		t.Fatalf("ListMine: %v", err)
	}
	if len(mine) != 0 {
		t.Errorf("outsider sees %d requests", len(mine))
	}
}

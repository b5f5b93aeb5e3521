package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// RequestStatus is the lifecycle state of a payment request.
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestDenied   RequestStatus = "denied"
	RequestCanceled RequestStatus = "canceled"
)

// Terminal reports whether the status permits no further transitions.
func (s RequestStatus) Terminal() bool {
	return s == RequestApproved || s == RequestDenied || s == RequestCanceled
}

// NotificationKind tags the request-lifecycle event that produced a notification.
type NotificationKind string

const (
	NotifyPaymentRequest  NotificationKind = "payment_request"
	NotifyPaymentApproved NotificationKind = "payment_approved"
	NotifyPaymentDenied   NotificationKind = "payment_denied"
	NotifyPaymentReminder NotificationKind = "payment_reminder"
	NotifyRequestCanceled NotificationKind = "payment_request_canceled"
)

// User is an identity keyed by email. It owns a balance, a friend list and
// references to the payment cards it holds in the global card store.
type User struct {
	Email        string          `json:"email"`
	FirstName    string          `json:"first_name"`
	LastName     string          `json:"last_name"`
	Balance      decimal.Decimal `json:"balance"`
	Friends      []string        `json:"friends"`
	PaymentCards []int64         `json:"payment_cards"`
}

// DisplayName is the full name, falling back to the email local part.
func (u *User) DisplayName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name != "" {
		return name
	}
	local, _, _ := strings.Cut(u.Email, "@")
	return local
}

// HasFriend reports whether email is in the user's friend list.
func (u *User) HasFriend(email string) bool {
	for _, f := range u.Friends {
		if f == email {
			return true
		}
	}
	return false
}

// HasCard reports whether the user references card id.
func (u *User) HasCard(id int64) bool {
	for _, c := range u.PaymentCards {
		if c == id {
			return true
		}
	}
	return false
}

// PaymentCard is a funding instrument owned by exactly one user.
type PaymentCard struct {
	ID          int64  `json:"id"`
	Owner       string `json:"owner"`
	CardName    string `json:"card_name"`
	OwnerName   string `json:"owner_name"`
	CardNumber  int64  `json:"card_number"`
	ExpiryYear  int    `json:"expiry_year"`
	ExpiryMonth int    `json:"expiry_month"`
	CVV         int    `json:"cvv"`
}

// Comment is one entry in a transaction's ordered comment list.
type Comment struct {
	Author    string `json:"author"`
	Text      string `json:"text"`
	CreatedAt string `json:"created_at"`
}

// Transaction is a completed transfer between two distinct users. After
// creation only the sender may change Description/Private; likes and
// comments accumulate; everything else is immutable and records are
// never deleted.
type Transaction struct {
	ID          int64           `json:"id"`
	Sender      string          `json:"sender"`
	Receiver    string          `json:"receiver"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Private     bool            `json:"private"`
	CardID      *int64          `json:"card_id"` // nil means balance-funded
	CreatedAt   string          `json:"created_at"`
	Likes       int             `json:"likes"`
	Comments    []Comment       `json:"comments"`
}

// PaymentRequest is an outstanding ask for money from FromUser to ToUser.
// It starts pending and transitions exactly once to approved, denied, or
// canceled; cancellation also deletes the record.
type PaymentRequest struct {
	ID          int64           `json:"id"`
	FromUser    string          `json:"from_user"`
	ToUser      string          `json:"to_user"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Private     bool            `json:"private"`
	Status      RequestStatus   `json:"status"`
	CreatedAt   string          `json:"created_at"`
}

// Notification is a one-way event record owned by a single recipient,
// created only as a side effect of payment-request lifecycle transitions.
type Notification struct {
	ID        int64            `json:"id"`
	User      string           `json:"user"`
	Kind      NotificationKind `json:"type"`
	Message   string           `json:"message"`
	Read      bool             `json:"read"`
	CreatedAt string           `json:"created_at"`
}

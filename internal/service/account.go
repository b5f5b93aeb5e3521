package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/punchamoorthee/paypeer/internal/domain"
	"github.com/punchamoorthee/paypeer/internal/session"
	"github.com/punchamoorthee/paypeer/internal/store"
)

// Accounts is the keyed-storage CRUD around the core: profile, friend
// list and payment cards, plus login/logout against the single session.
// No cross-entity invariants here beyond existence and ownership checks.
type Accounts struct {
	st   *store.State
	sess *session.Session
}

// NewAccounts returns the account layer over the shared state and session.
func NewAccounts(st *store.State, sess *session.Session) *Accounts {
	return &Accounts{st: st, sess: sess}
}

// Login makes email the active identity and returns the issued access
// token with the profile.
func (a *Accounts) Login(email string) (string, *domain.User, error) {
	a.st.Lock()
	defer a.st.Unlock()

	user, ok := a.st.User(email)
	if !ok {
		return "", nil, fmt.Errorf("%w: %s", ErrUserNotFound, email)
	}
	token := a.sess.Login(email)
	return token, user.Clone(), nil
}

// Logout clears the active identity.
func (a *Accounts) Logout() {
	a.sess.Logout()
}

// Info returns the actor's profile.
func (a *Accounts) Info(actor string) (*domain.User, error) {
	a.st.Lock()
	defer a.st.Unlock()

	user, err := requireActor(a.st, actor)
	if err != nil {
		return nil, err
	}
	return user.Clone(), nil
}

// UpdateName changes the actor's first and last name.
func (a *Accounts) UpdateName(actor, first, last string) (*domain.User, error) {
	a.st.Lock()
	defer a.st.Unlock()

	user, err := requireActor(a.st, actor)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(first) == "" || strings.TrimSpace(last) == "" {
		return nil, fmt.Errorf("%w: first and last name are required", ErrInvalidArgument)
	}
	user.FirstName = first
	user.LastName = last
	return user.Clone(), nil
}

// Friends returns the actor's friends as full profiles, in list order.
func (a *Accounts) Friends(actor string) ([]*domain.User, error) {
	a.st.Lock()
	defer a.st.Unlock()

	user, err := requireActor(a.st, actor)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.User, 0, len(user.Friends))
	for _, email := range user.Friends {
		if friend, ok := a.st.User(email); ok {
			out = append(out, friend.Clone())
		}
	}
	return out, nil
}

// AddFriend links the actor and email both ways, like the seeded fixture.
func (a *Accounts) AddFriend(actor, email string) error {
	a.st.Lock()
	defer a.st.Unlock()

	user, err := requireActor(a.st, actor)
	if err != nil {
		return err
	}
	friend, ok := a.st.User(email)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUserNotFound, email)
	}
	if email == actor {
		return fmt.Errorf("%w: cannot befriend yourself", ErrInvalidArgument)
	}
	if user.HasFriend(email) {
		return fmt.Errorf("%w: already friends with %s", ErrInvalidArgument, email)
	}
	user.Friends = append(user.Friends, email)
	if !friend.HasFriend(actor) {
		friend.Friends = append(friend.Friends, actor)
	}
	return nil
}

// RemoveFriend unlinks the actor and email both ways.
func (a *Accounts) RemoveFriend(actor, email string) error {
	a.st.Lock()
	defer a.st.Unlock()

	user, err := requireActor(a.st, actor)
	if err != nil {
		return err
	}
	if !user.HasFriend(email) {
		return fmt.Errorf("%w: %s is not a friend", ErrUserNotFound, email)
	}
	user.Friends = removeString(user.Friends, email)
	if friend, ok := a.st.User(email); ok {
		friend.Friends = removeString(friend.Friends, actor)
	}
	return nil
}

// AddCard stores a new payment card for the actor and references it from
// the profile. Expiry and verification code get basic sanity checks; no
// card network is consulted.
func (a *Accounts) AddCard(actor, cardName, ownerName string, cardNumber int64, expiryYear, expiryMonth, cvv int) (*domain.PaymentCard, error) {
	a.st.Lock()
	defer a.st.Unlock()

	user, err := requireActor(a.st, actor)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(cardName) == "" || strings.TrimSpace(ownerName) == "" {
		return nil, fmt.Errorf("%w: card name and owner name are required", ErrInvalidArgument)
	}
	if cardNumber <= 0 {
		return nil, fmt.Errorf("%w: card number is required", ErrInvalidArgument)
	}
	if expiryMonth < 1 || expiryMonth > 12 {
		return nil, fmt.Errorf("%w: expiry month must be 1-12", ErrInvalidArgument)
	}
	year := time.Now().Year()
	if expiryYear < year || expiryYear > year+20 {
		return nil, fmt.Errorf("%w: expiry year must be between %d and %d", ErrInvalidArgument, year, year+20)
	}
	if cvv < 100 || cvv > 9999 {
		return nil, fmt.Errorf("%w: verification code must be 3 or 4 digits", ErrInvalidArgument)
	}

	card := a.st.Cards.Add(func(id int64) *domain.PaymentCard {
		return &domain.PaymentCard{
			ID:          id,
			Owner:       actor,
			CardName:    cardName,
			OwnerName:   ownerName,
			CardNumber:  cardNumber,
			ExpiryYear:  expiryYear,
			ExpiryMonth: expiryMonth,
			CVV:         cvv,
		}
	})
	user.PaymentCards = append(user.PaymentCards, card.ID)
	return card.Clone(), nil
}

// Cards returns the actor's payment cards in the order they were added.
func (a *Accounts) Cards(actor string) ([]*domain.PaymentCard, error) {
	a.st.Lock()
	defer a.st.Unlock()

	user, err := requireActor(a.st, actor)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.PaymentCard, 0, len(user.PaymentCards))
	for _, id := range user.PaymentCards {
		if card, ok := a.st.Cards.Get(id); ok {
			out = append(out, card.Clone())
		}
	}
	return out, nil
}

// DeleteCard removes the card from the global store and the actor's
// reference list. The card id is never reused.
func (a *Accounts) DeleteCard(actor string, id int64) error {
	a.st.Lock()
	defer a.st.Unlock()

	user, err := requireActor(a.st, actor)
	if err != nil {
		return err
	}
	card, ok := a.st.Cards.Get(id)
	if !ok {
		return fmt.Errorf("%w: card %d", ErrCardNotFound, id)
	}
	if card.Owner != actor {
		return fmt.Errorf("%w: card %d belongs to another user", ErrForbidden, id)
	}
	a.st.Cards.Delete(id)
	user.PaymentCards = removeID(user.PaymentCards, id)
	return nil
}

func removeString(list []string, s string) []string {
	out := list[:0]
	for _, v := range list {
		if v != s {
			out = append(out, v)
		}
	}
	return out
}

func removeID(list []int64, id int64) []int64 {
	out := list[:0]
	for _, v := range list {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

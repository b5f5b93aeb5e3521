package domain

// Clone helpers let the store hand out copies of records, so callers can
// serialize results without holding the state lock and scenario fixtures
// survive being applied more than once.

// Clone returns a deep copy of the user.
func (u *User) Clone() *User {
	c := *u
	c.Friends = append([]string(nil), u.Friends...)
	c.PaymentCards = append([]int64(nil), u.PaymentCards...)
	return &c
}

// Clone returns a copy of the card.
func (p *PaymentCard) Clone() *PaymentCard {
	c := *p
	return &c
}

// Clone returns a deep copy of the transaction.
func (t *Transaction) Clone() *Transaction {
	c := *t
	if t.CardID != nil {
		id := *t.CardID
		c.CardID = &id
	}
	c.Comments = append([]Comment(nil), t.Comments...)
	return &c
}

// Clone returns a copy of the request.
func (r *PaymentRequest) Clone() *PaymentRequest {
	c := *r
	return &c
}

// Clone returns a copy of the notification.
func (n *Notification) Clone() *Notification {
	c := *n
	return &c
}

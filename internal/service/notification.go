package service

import (
	"github.com/punchamoorthee/paypeer/internal/domain"
	"github.com/punchamoorthee/paypeer/internal/store"
)

// Notifications is the append-only per-user feed fed by payment-request
// lifecycle transitions. Recipients can query it, flip read flags in bulk
// and purge their own entries; nothing else ever writes to it.
type Notifications struct {
	st *store.State
}

// NewNotifications returns the notification sink over the shared state.
func NewNotifications(st *store.State) *Notifications {
	return &Notifications{st: st}
}

// emit appends an unread notification for recipient. Lock must be held;
// only the request state machine calls this.
func (n *Notifications) emit(recipient string, kind domain.NotificationKind, message string) *domain.Notification {
	return n.st.Notifications.Add(func(id int64) *domain.Notification {
		return &domain.Notification{
			ID:        id,
			User:      recipient,
			Kind:      kind,
			Message:   message,
			CreatedAt: timestamp(),
		}
	})
}

// Query returns one page of the actor's notifications in creation order
// plus the total match count. Read=nil returns both read and unread.
func (n *Notifications) Query(actor string, q domain.NotificationQuery) ([]*domain.Notification, int, error) {
	n.st.Lock()
	defer n.st.Unlock()

	if _, err := requireActor(n.st, actor); err != nil {
		return nil, 0, err
	}
	if !q.Page.Valid() {
		return nil, 0, errPageCoordinates()
	}

	var matched []*domain.Notification
	for _, note := range n.st.Notifications.List() {
		if note.User != actor {
			continue
		}
		if q.Read != nil && note.Read != *q.Read {
			continue
		}
		matched = append(matched, note)
	}

	total := len(matched)
	lo, hi := q.Page.Bounds(total)
	page := make([]*domain.Notification, 0, hi-lo)
	for _, note := range matched[lo:hi] {
		page = append(page, note.Clone())
	}
	return page, total, nil
}

// UnreadCount counts the actor's unread notifications.
func (n *Notifications) UnreadCount(actor string) (int, error) {
	n.st.Lock()
	defer n.st.Unlock()

	if _, err := requireActor(n.st, actor); err != nil {
		return 0, err
	}
	count := 0
	for _, note := range n.st.Notifications.List() {
		if note.User == actor && !note.Read {
			count++
		}
	}
	return count, nil
}

// MarkAll sets the read flag on every notification the actor owns and
// returns how many were touched.
func (n *Notifications) MarkAll(actor string, read bool) (int, error) {
	n.st.Lock()
	defer n.st.Unlock()

	if _, err := requireActor(n.st, actor); err != nil {
		return 0, err
	}
	count := 0
	for _, note := range n.st.Notifications.List() {
		if note.User == actor {
			note.Read = read
			count++
		}
	}
	return count, nil
}

// PurgeAll deletes every notification the actor owns and returns how many
// were removed. Ids are never reused afterwards.
func (n *Notifications) PurgeAll(actor string) (int, error) {
	n.st.Lock()
	defer n.st.Unlock()

	if _, err := requireActor(n.st, actor); err != nil {
		return 0, err
	}
	count := 0
	for _, note := range n.st.Notifications.List() {
		if note.User == actor {
			n.st.Notifications.Delete(note.ID)
			count++
		}
	}
	return count, nil
}

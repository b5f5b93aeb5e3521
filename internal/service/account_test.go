package service

import (
	"errors"
	"testing"
	"time"
)

func TestLoginIssuesTokenAndProfile(t *testing.T) {
	w := newWorld(t)

	token, user, err := w.accounts.Login(bob)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token == "" {
		t.Error("empty access token")
	}
	if user.Email != bob || user.DisplayName() != "Bob Johnson" {
		t.Errorf("profile = %s / %s", user.Email, user.DisplayName())
	}
	if email, _ := w.sess.Current(); email != bob {
		t.Errorf("session identity = %s, want %s", email, bob)
	}

	if _, _, err := w.accounts.Login("ghost@example.com"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("unknown login err = %v, want ErrUserNotFound", err)
	}
}

func TestUpdateName(t *testing.T) {
	w := newWorld(t)

	user, err := w.accounts.UpdateName(alice, "Alicia", "Stone")
	if err != nil {
		t.Fatalf("UpdateName: %v", err)
	}
	if user.DisplayName() != "Alicia Stone" {
		t.Errorf("display name = %q", user.DisplayName())
	}

	if _, err := w.accounts.UpdateName(alice, " ", "Stone"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("blank name err = %v, want ErrInvalidArgument", err)
	}
}

func TestFriendLifecycle(t *testing.T) {
	w := newWorld(t)

	friends, err := w.accounts.Friends(alice)
	if err != nil {
		t.Fatalf("Friends: %v", err)
	}
	if len(friends) != 1 || friends[0].Email != bob {
		t.Fatalf("friends = %+v, want just bob", friends)
	}

	if err := w.accounts.AddFriend(alice, bob); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("duplicate friend err = %v, want ErrInvalidArgument", err)
	}
	if err := w.accounts.AddFriend(alice, alice); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("self friend err = %v, want ErrInvalidArgument", err)
	}

	if err := w.accounts.RemoveFriend(alice, bob); err != nil {
		t.Fatalf("RemoveFriend: %v", err)
	}
	// Unfriending is mutual.
	bobFriends, err := w.accounts.Friends(bob)
	if err != nil {
		t.Fatalf("Friends(bob): %v", err)
	}
	if len(bobFriends) != 0 {
		t.Errorf("bob still has %d friends", len(bobFriends))
	}
	if err := w.accounts.RemoveFriend(alice, bob); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("remove non-friend err = %v, want ErrUserNotFound", err)
	}
}

func TestAddCardValidatesFields(t *testing.T) {
	w := newWorld(t)
	year := time.Now().Year()

	card, err := w.accounts.AddCard(bob, "Travel Card", "Bob Johnson", 5678, year+2, 6, 321)
	if err != nil {
		t.Fatalf("AddCard: %v", err)
	}
	if card.ID != 2 {
		t.Errorf("card id = %d, want 2", card.ID)
	}

	cases := []struct {
		name   string
		card   string
		owner  string
		number int64
		yr     int
		month  int
		cvv    int
	}{
		{"blank name", "", "Bob Johnson", 5678, year + 2, 6, 321},
		{"zero number", "Card", "Bob Johnson", 0, year + 2, 6, 321},
		{"bad month", "Card", "Bob Johnson", 5678, year + 2, 13, 321},
		{"expired year", "Card", "Bob Johnson", 5678, year - 1, 6, 321},
		{"far future year", "Card", "Bob Johnson", 5678, year + 30, 6, 321},
		{"short cvv", "Card", "Bob Johnson", 5678, year + 2, 6, 12},
	}
	for _, tc := range cases {
		if _, err := w.accounts.AddCard(bob, tc.card, tc.owner, tc.number, tc.yr, tc.month, tc.cvv); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("%s: err = %v, want ErrInvalidArgument", tc.name, err)
		}
	}
}

func TestDeleteCardOwnerOnly(t *testing.T) {
	w := newWorld(t)

	if err := w.accounts.DeleteCard(bob, 1); !errors.Is(err, ErrForbidden) {
		t.Errorf("foreign delete err = %v, want ErrForbidden", err)
	}
	if err := w.accounts.DeleteCard(alice, 1); err != nil {
		t.Fatalf("DeleteCard: %v", err)
	}
	cards, err := w.accounts.Cards(alice)
	if err != nil {
		t.Fatalf("Cards: %v", err)
	}
	if len(cards) != 0 {
		t.Errorf("alice still has %d cards", len(cards))
	}
	if err := w.accounts.DeleteCard(alice, 1); !errors.Is(err, ErrCardNotFound) {
		t.Errorf("double delete err = %v, want ErrCardNotFound", err)
	}
}

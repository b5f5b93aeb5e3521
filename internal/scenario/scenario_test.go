package scenario

import (
	"testing"

	"github.com/punchamoorthee/paypeer/internal/session"
	"github.com/punchamoorthee/paypeer/internal/store"
	"github.com/shopspring/decimal"
)

func TestDefaultFixture(t *testing.T) {
	st := store.NewState()
	sess := session.New()
	Default().Apply(st, sess)

	alice, ok := st.User("user1@example.com")
	if !ok {
		t.Fatal("user1@example.com missing")
	}
	if !alice.Balance.Equal(decimal.NewFromInt(100)) {
		t.Errorf("alice balance = %s, want 100", alice.Balance)
	}
	if got := alice.DisplayName(); got != "Alice Smith" {
		t.Errorf("alice display name = %q, want %q", got, "Alice Smith")
	}
	if !alice.HasFriend("user2@example.com") {
		t.Error("alice is not friends with bob")
	}
	if !alice.HasCard(1) {
		t.Error("alice does not reference card 1")
	}

	bob, ok := st.User("user2@example.com")
	if !ok {
		t.Fatal("user2@example.com missing")
	}
	if !bob.Balance.Equal(decimal.NewFromInt(250)) {
		t.Errorf("bob balance = %s, want 250", bob.Balance)
	}

	card, ok := st.Cards.Get(1)
	if !ok {
		t.Fatal("card 1 missing")
	}
	if card.CardName != "My Debit Card" || card.Owner != "user1@example.com" {
		t.Errorf("card 1 = %q owned by %s", card.CardName, card.Owner)
	}

	if email, _ := sess.Current(); email != "user1@example.com" {
		t.Errorf("active identity = %q, want user1@example.com", email)
	}
	if sess.Token() == "" {
		t.Error("no access token issued")
	}
}

func TestApplyResumesAllocatorsPastSeededIDs(t *testing.T) {
	st := store.NewState()
	sess := session.New()
	Default().Apply(st, sess)

	if got := st.Cards.NextID(); got != 2 {
		t.Errorf("next card id = %d, want 2", got)
	}
	if got := st.Transactions.NextID(); got != 0 {
		t.Errorf("next transaction id = %d, want 0", got)
	}
	if got := st.Requests.NextID(); got != 0 {
		t.Errorf("next request id = %d, want 0", got)
	}
	if got := st.Notifications.NextID(); got != 0 {
		t.Errorf("next notification id = %d, want 0", got)
	}
}

func TestApplyIsolatesScenarioFromMutation(t *testing.T) {
	sc := Default()
	st := store.NewState()
	sess := session.New()

	sc.Apply(st, sess)
	alice, _ := st.User("user1@example.com")
	alice.Balance = decimal.Zero
	alice.Friends = nil
	card, _ := st.Cards.Get(1)
	card.CardName = "scribbled"

	sc.Apply(st, sess)
	alice, _ = st.User("user1@example.com")
	if !alice.Balance.Equal(decimal.NewFromInt(100)) {
		t.Errorf("balance after reset = %s, want 100", alice.Balance)
	}
	if !alice.HasFriend("user2@example.com") {
		t.Error("friend list not restored")
	}
	card, _ = st.Cards.Get(1)
	if card.CardName != "My Debit Card" {
		t.Errorf("card name after reset = %q, want %q", card.CardName, "My Debit Card")
	}
}

func TestApplyReplacesSession(t *testing.T) {
	st := store.NewState()
	sess := session.New()
	sess.Login("someone@example.com")
	first := sess.Token()

	Default().Apply(st, sess)
	if email, _ := sess.Current(); email != "user1@example.com" {
		t.Errorf("active identity = %q, want user1@example.com", email)
	}
	if sess.Token() == first {
		t.Error("token not reissued on reset")
	}
}

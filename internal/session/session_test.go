package session

import "testing"

func TestLoginSetsIdentityAndToken(t *testing.T) {
	s := New()
	if _, ok := s.Current(); ok {
		t.Fatal("fresh session has an identity")
	}

	token := s.Login("user1@example.com")
	if token == "" {
		t.Fatal("Login returned empty token")
	}
	email, ok := s.Current()
	if !ok || email != "user1@example.com" {
		t.Fatalf("Current() = %q, %v; want user1@example.com, true", email, ok)
	}
	if s.Token() != token {
		t.Error("Token() does not match the issued token")
	}
}

func TestLoginReplacesPreviousIdentity(t *testing.T) {
	s := New()
	first := s.Login("user1@example.com")
	second := s.Login("user2@example.com")

	if first == second {
		t.Error("token reused across logins")
	}
	if email, _ := s.Current(); email != "user2@example.com" {
		t.Errorf("Current() = %q, want user2@example.com", email)
	}
}

func TestLogoutClearsEverything(t *testing.T) {
	s := New()
	s.Login("user1@example.com")
	s.Logout()

	if _, ok := s.Current(); ok {
		t.Error("identity survives logout")
	}
	if s.Token() != "" {
		t.Error("token survives logout")
	}
}

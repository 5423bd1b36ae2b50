package auth

import (
	"context"
	"testing"
)

func TestManagerEnvTokenWins(t *testing.T) {
	t.Setenv("AGENCYDESK_NO_KEYRING", "1")
	t.Setenv("AGENCYDESK_TOKEN", "env-token")

	m := NewManager("https://api.example.com", t.TempDir())
	tok, err := m.Token(context.Background())
	if err != nil {
		t.Fatalf("Token failed: %v", err)
	}
	if tok != "env-token" {
		t.Errorf("token = %q, want env-token", tok)
	}
}

func TestManagerStoreRoundTrip(t *testing.T) {
	t.Setenv("AGENCYDESK_NO_KEYRING", "1")
	t.Setenv("AGENCYDESK_TOKEN", "")

	m := NewManager("https://api.example.com", t.TempDir())

	if _, err := m.Token(context.Background()); err == nil {
		t.Fatal("Token should fail before SetToken")
	}

	if err := m.SetToken("stored-token", "7"); err != nil {
		t.Fatalf("SetToken failed: %v", err)
	}
	tok, err := m.Token(context.Background())
	if err != nil {
		t.Fatalf("Token failed: %v", err)
	}
	if tok != "stored-token" {
		t.Errorf("token = %q, want stored-token", tok)
	}

	if err := m.ClearToken(); err != nil {
		t.Fatalf("ClearToken failed: %v", err)
	}
	if _, err := m.Token(context.Background()); err == nil {
		t.Error("Token should fail after ClearToken")
	}
}

func TestStoreFileFallbackMultipleOrigins(t *testing.T) {
	t.Setenv("AGENCYDESK_NO_KEYRING", "1")

	s := NewStore(t.TempDir())
	if err := s.Save("a.example.com", &Credentials{Token: "ta"}); err != nil {
		t.Fatal(err)
	}
	if err := s.Save("b.example.com", &Credentials{Token: "tb"}); err != nil {
		t.Fatal(err)
	}

	got, err := s.Load("a.example.com")
	if err != nil {
		t.Fatal(err)
	}
	if got.Token != "ta" {
		t.Errorf("token = %q, want ta", got.Token)
	}

	if err := s.Delete("a.example.com"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Load("a.example.com"); err == nil {
		t.Error("Load should fail after Delete")
	}
	if _, err := s.Load("b.example.com"); err != nil {
		t.Error("deleting one origin should not affect another")
	}
}

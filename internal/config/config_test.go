package config

import (
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	t.Setenv("COOKIE", "session=abc123")

	cfg, err := New()
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if cfg.Cookie != "session=abc123" {
		t.Errorf("Cookie = %q, want %q", cfg.Cookie, "session=abc123")
	}
	if cfg.ListID != DefaultListID {
		t.Errorf("ListID = %q, want default %q", cfg.ListID, DefaultListID)
	}
}

func TestNew_ListIDOverride(t *testing.T) {
	t.Setenv("COOKIE", "session=abc123")
	t.Setenv("SPLITSER_LIST_ID", "11111111-2222-3333-4444-555555555555")

	cfg, err := New()
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if cfg.ListID != "11111111-2222-3333-4444-555555555555" {
		t.Errorf("ListID = %q, want override value", cfg.ListID)
	}
}

func TestNew_MissingCookie(t *testing.T) {
	t.Setenv("COOKIE", "")

	_, err := New()
	if err == nil {
		t.Fatal("Expected error for missing COOKIE, got nil")
	}
	if !strings.Contains(err.Error(), "COOKIE") {
		t.Errorf("Error should name the missing variable, got: %v", err)
	}
}

package engine

import (
	"os"
	"path/filepath"
	"testing"

	"axle/pkg/api"
)

func TestSessionManagerRoundTrip(t *testing.T) {
	storage := t.TempDir()

	sm := NewSessionManager(storage)
	conv, err := sm.Get("web_chat-42")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	conv.Add(api.NewUserMessage("remember me"))
	if err := sm.Save("web_chat-42"); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	// A fresh manager over the same storage restores the history.
	sm2 := NewSessionManager(storage)
	restored, err := sm2.Get("web_chat-42")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if restored.Len() != 1 {
		t.Fatalf("restored %d messages, want 1", restored.Len())
	}
	if got := restored.Messages()[0].Content; got != "remember me" {
		t.Fatalf("content = %q", got)
	}
}

func TestSessionManagerSanitizesIDs(t *testing.T) {
	storage := t.TempDir()

	sm := NewSessionManager(storage)
	conv, err := sm.Get("a/b:c")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	conv.Add(api.NewUserMessage("x"))
	if err := sm.Save("a/b:c"); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(storage, "history_a_b_c.json")); err != nil {
		t.Fatalf("sanitized history file missing: %v", err)
	}
}

func TestSessionManagerCachesConversations(t *testing.T) {
	sm := NewSessionManager("")
	first, err := sm.Get("same")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	second, err := sm.Get("same")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if first != second {
		t.Fatal("expected the same conversation instance")
	}

	// Saving without storage is a no-op, not an error.
	if err := sm.Save("same"); err != nil {
		t.Fatalf("save failed: %v", err)
	}
}

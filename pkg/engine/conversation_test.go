package engine

import (
	"path/filepath"
	"testing"

	"axle/pkg/api"
)

func TestConversationAddAndCopy(t *testing.T) {
	c := NewConversation(api.NewUserMessage("seed"))
	c.Add(api.NewDecision("answer"))

	msgs := c.Messages()
	if len(msgs) != 2 {
		t.Fatalf("len = %d, want 2", len(msgs))
	}

	// Mutating the copy must not leak back into the conversation.
	msgs[0].Content = "tampered"
	if got := c.Messages()[0].Content; got != "seed" {
		t.Fatalf("copy leaked: %q", got)
	}
}

func TestConversationLast(t *testing.T) {
	c := NewConversation()
	if _, ok := c.Last(); ok {
		t.Fatal("empty conversation reported a last message")
	}

	c.Add(api.NewUserMessage("one"), api.NewDecision("two"))
	last, ok := c.Last()
	if !ok || last.Content != "two" {
		t.Fatalf("last = %+v, ok = %v", last, ok)
	}
}

func TestConversationEnsureSystemMessage(t *testing.T) {
	c := NewConversation(api.NewUserMessage("hi"))
	c.EnsureSystemMessage("be helpful")

	msgs := c.Messages()
	if len(msgs) != 2 || msgs[0].Role != api.RoleSystem || msgs[0].Content != "be helpful" {
		t.Fatalf("system message not prepended: %+v", msgs)
	}

	// A second call updates in place instead of stacking.
	c.EnsureSystemMessage("be terse")
	msgs = c.Messages()
	if len(msgs) != 2 || msgs[0].Content != "be terse" {
		t.Fatalf("system message not updated: %+v", msgs)
	}
}

func TestConversationSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conv.json")

	c := NewConversation(
		api.NewUserMessage("question"),
		api.NewDecision("", api.ToolRequest{ID: "r1", Name: "echo", Arguments: map[string]any{"text": "hi"}}),
		api.NewToolResult("r1", "echo", "hi"),
	)
	if err := c.Save(path); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	restored := NewConversation()
	if err := restored.Load(path); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if restored.Len() != c.Len() {
		t.Fatalf("restored %d messages, want %d", restored.Len(), c.Len())
	}

	got := restored.Messages()
	if got[1].Requests[0].ID != "r1" || got[2].RequestID != "r1" {
		t.Fatalf("correlation ids lost: %+v", got)
	}
}

func TestConversationLoadMissingFile(t *testing.T) {
	c := NewConversation()
	if err := c.Load(filepath.Join(t.TempDir(), "absent.json")); err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if c.Len() != 0 {
		t.Fatalf("len = %d, want 0", c.Len())
	}
}

package config

import (
	"context"
	"os"
	"testing"
	"time"
)

func TestWatchSignalsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "system.json", `{"max_cycles": 10}`)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := Watch(ctx, path)

	// Give the watcher a moment to attach before touching the file.
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(path, []byte(`{"max_cycles": 3}`), 0644); err != nil {
		t.Fatalf("rewrite failed: %v", err)
	}

	select {
	case <-ch:
	case <-time.After(3 * time.Second):
		t.Fatal("no reload signal after write")
	}
}

func TestWatchClosesOnCancel(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "system.json", `{}`)

	ctx, cancel := context.WithCancel(context.Background())
	ch := Watch(ctx, path)
	cancel()

	select {
	case _, ok := <-ch:
		if ok {
			// A debounced event may still slip out; the channel must close after.
			select {
			case _, ok2 := <-ch:
				if ok2 {
					t.Fatal("channel still open after cancel")
				}
			case <-time.After(2 * time.Second):
				t.Fatal("channel not closed after cancel")
			}
		}
	case <-time.After(2 * time.Second):
		t.Fatal("channel not closed after cancel")
	}
}

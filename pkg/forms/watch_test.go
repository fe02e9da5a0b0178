package forms_test

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goliatone/go-formdoc/pkg/forms"
)

func TestWatchReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "kontakt"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	var reloads atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- forms.Watch(ctx, dir, 20*time.Millisecond, func() error {
			reloads.Add(1)
			return nil
		}, nil)
	}()

	deadline := time.Now().Add(5 * time.Second)
	for reloads.Load() == 0 && time.Now().Before(deadline) {
		// keep touching the file until the watcher is registered
		if err := os.WriteFile(filepath.Join(dir, "kontakt", "schema.json"), []byte(`{"sections":[]}`), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
		time.Sleep(50 * time.Millisecond)
	}

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("watch: %v", err)
	}
	if reloads.Load() == 0 {
		t.Fatal("expected at least one reload")
	}
}

func TestWatchMissingDir(t *testing.T) {
	err := forms.Watch(context.Background(), filepath.Join(t.TempDir(), "missing"), 0, func() error { return nil }, nil)
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
}

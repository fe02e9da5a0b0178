package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	logtest "github.com/sirupsen/logrus/hooks/test"

	"github.com/goliatone/go-formdoc/pkg/config"
)

func TestRun_StopsOnCancel(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	cfg := config.Default()
	cfg.Server.Addr = "127.0.0.1:0"
	cfg.Uploads.Dir = t.TempDir()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := run(ctx, cfg, logger); err != nil {
		t.Fatalf("run: %v", err)
	}
	if last := hook.LastEntry(); last == nil || last.Message != "server stopped" {
		t.Fatalf("expected shutdown log, got %+v", last)
	}
}

func TestRun_InvalidThemeManifest(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	manifest := filepath.Join(t.TempDir(), "theme.yaml")
	if err := os.WriteFile(manifest, []byte("tokens: [\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := config.Default()
	cfg.Server.Addr = "127.0.0.1:0"
	cfg.Uploads.Dir = t.TempDir()
	cfg.Theme.Manifest = manifest

	if err := run(context.Background(), cfg, logger); err == nil {
		t.Fatal("expected theme manifest error")
	}
}

func TestRun_MissingFormsDir(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	cfg := config.Default()
	cfg.FormsDir = t.TempDir()

	if err := run(context.Background(), cfg, logger); err == nil {
		t.Fatal("expected error for empty forms directory")
	}
}

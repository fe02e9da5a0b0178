package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-formdoc"
	"github.com/goliatone/go-formdoc/pkg/config"
	"github.com/goliatone/go-formdoc/pkg/forms"
	"github.com/goliatone/go-formdoc/pkg/logging"
	"github.com/goliatone/go-formdoc/pkg/orchestrator"
	"github.com/goliatone/go-formdoc/pkg/render"
	"github.com/goliatone/go-formdoc/pkg/server"
	"github.com/goliatone/go-formdoc/pkg/uploads"
)

func main() {
	fs := flag.NewFlagSet("formdoc-server", flag.ExitOnError)
	flags := config.Bind(fs)
	_ = fs.Parse(os.Args[1:])

	cfg, err := flags.Load(fs, os.LookupEnv)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger, err := logging.New(logging.Options{Level: cfg.Log.Level, File: cfg.Log.File})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.WithError(err).Fatal("server stopped")
	}
}

func run(ctx context.Context, cfg config.Config, logger *logrus.Logger) error {
	loader := formdoc.NewLoader(cfg.FormsDir, logger)
	if err := loader.Reload(); err != nil {
		return err
	}
	if cfg.Watch {
		if cfg.FormsDir == "" {
			logger.Warn("watch ignored for the bundled forms")
		} else {
			go func() {
				if err := forms.Watch(ctx, cfg.FormsDir, forms.DefaultDebounce, loader.Reload, logger); err != nil {
					logger.WithError(err).Error("form watcher stopped")
				}
			}()
		}
	}

	options := []orchestrator.Option{
		orchestrator.WithForms(loader.Registry),
		orchestrator.WithDefaultLanguage(cfg.DefaultLanguage),
		orchestrator.WithPDFLanguage(cfg.PDFLanguage),
		orchestrator.WithPDFOptions(cfg.PDFOptions),
		orchestrator.WithLogger(logger),
	}
	if cfg.Theme.Manifest != "" {
		data, err := os.ReadFile(cfg.Theme.Manifest)
		if err != nil {
			return fmt.Errorf("read theme manifest: %w", err)
		}
		manifest, err := render.ParseThemeManifest(data)
		if err != nil {
			return err
		}
		options = append(options, orchestrator.WithTheme(render.ThemeConfig(manifest, cfg.Theme.Variant)))
	}
	gen := orchestrator.New(options...)

	store, err := uploads.New(
		uploads.WithDir(cfg.Uploads.Dir),
		uploads.WithMaxBytes(cfg.Uploads.MaxBytes),
		uploads.WithTTL(cfg.Uploads.TTL.Std()),
		uploads.WithLogger(logger),
	)
	if err != nil {
		return err
	}
	defer store.Close()
	go store.Run(ctx, uploads.DefaultSweepInterval)

	srv, err := server.New(gen, store,
		server.WithLogger(logger),
		server.WithLanguages(cfg.Languages...),
	)
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: srv.Handler(),
	}

	logger.WithFields(logrus.Fields{
		"addr":  cfg.Server.Addr,
		"forms": loader.Registry.List(),
	}).Info("listening")

	errChan := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownGrace.Std())
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Warn("shutdown")
	}
	logger.Info("server stopped")
	return nil
}

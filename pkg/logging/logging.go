// Package logging configures the logrus logger used by the commands.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rifflock/lfshook"
	"github.com/sirupsen/logrus"
)

// TimestampFormat is used by the console and file formatters.
const TimestampFormat = "2006-01-02 15:04:05.000"

// Options configures New.
type Options struct {
	Level string
	// File receives every entry in addition to Output when set.
	File   string
	Output io.Writer
}

// New builds a logger writing text to Output (stderr by default) and,
// when File is set, to that file through an lfshook hook.
func New(opts Options) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: TimestampFormat,
	})

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	logger.SetOutput(out)

	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}
	logger.SetLevel(level)

	if file := strings.TrimSpace(opts.File); file != "" {
		if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
			return nil, fmt.Errorf("logging: create log dir: %w", err)
		}
		paths := lfshook.PathMap{}
		for _, lvl := range logrus.AllLevels {
			paths[lvl] = file
		}
		logger.AddHook(lfshook.NewHook(paths, &logrus.TextFormatter{
			FullTimestamp:    true,
			TimestampFormat:  TimestampFormat,
			DisableColors:    true,
			DisableQuote:     true,
			QuoteEmptyFields: true,
		}))
	}
	return logger, nil
}

// ParseLevel maps a config level to logrus. Empty means info.
func ParseLevel(raw string) (logrus.Level, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return logrus.InfoLevel, nil
	}
	level, err := logrus.ParseLevel(raw)
	if err != nil {
		return logrus.InfoLevel, fmt.Errorf("logging: %w", err)
	}
	return level, nil
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging configures the logrus logger shared by convertxpert.
//
// The terminal UI owns stdout, so by default log lines go to a file in the
// config directory. One-shot CLI commands may log to stderr instead.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/jeranaias/convertxpert/internal/config"
)

var (
	mu     sync.Mutex
	closer io.Closer
)

// Options controls Init.
type Options struct {
	// Level is a logrus level name
	Level string
	// Format is "text" or "json"
	Format string
	// File is the destination path; ignored when Writer is set
	File string
	// Writer overrides File (tests, stderr)
	Writer io.Writer
}

// FromConfig builds Options from the log section of cfg. An empty file name
// resolves to convertxpert.log in the config directory.
func FromConfig(cfg *config.Config) Options {
	opts := Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	}
	if opts.File == "" {
		if dir, err := config.ConfigDir(); err == nil {
			opts.File = filepath.Join(dir, "convertxpert.log")
		}
	}
	return opts
}

// Init configures the standard logrus logger. Calling it again replaces the
// previous output and closes any file opened by the earlier call.
func Init(opts Options) error {
	level, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		level = logrus.InfoLevel
	}

	out := opts.Writer
	var newCloser io.Closer
	if out == nil {
		if opts.File == "" {
			out = io.Discard
		} else {
			if err := os.MkdirAll(filepath.Dir(opts.File), 0755); err != nil {
				return fmt.Errorf("create log directory: %w", err)
			}
			f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
			if err != nil {
				return fmt.Errorf("open log file: %w", err)
			}
			out = f
			newCloser = f
		}
	}

	if opts.Format == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
			},
		})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{
			DisableColors: true,
			FullTimestamp: true,
		})
	}
	logrus.SetLevel(level)
	logrus.SetOutput(out)

	mu.Lock()
	prev := closer
	closer = newCloser
	mu.Unlock()
	if prev != nil {
		prev.Close()
	}
	return nil
}

// Close releases the log file, if any, and routes output to io.Discard.
func Close() error {
	mu.Lock()
	prev := closer
	closer = nil
	mu.Unlock()

	logrus.SetOutput(io.Discard)
	if prev != nil {
		return prev.Close()
	}
	return nil
}

// For returns a logger entry tagged with a component name.
func For(component string) *logrus.Entry {
	return logrus.WithField("component", component)
}

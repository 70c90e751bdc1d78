// SPDX-License-Identifier: MPL-2.0

// Package steplog writes setup diagnostics to the console and, optionally, to
// an append-only log file. The file variant exists so unattended setups leave
// a persistent record of every step and its outcome.
package steplog

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Logger fans diagnostic lines out to a console logger and an optional file
// logger. The file is opened in append mode and never truncated.
type Logger struct {
	console *log.Logger
	file    *log.Logger
	f       *os.File
}

// New creates a Logger writing to out. Verbose lowers the level to Debug.
func New(out io.Writer, verbose bool) *Logger {
	console := log.NewWithOptions(out, log.Options{
		ReportTimestamp: false,
	})
	if verbose {
		console.SetLevel(log.DebugLevel)
	}
	return &Logger{console: console}
}

// AttachFile opens path for appending (creating it if needed) and mirrors all
// subsequent lines to it with timestamps. Returns the error from os.OpenFile
// unchanged so callers can report the path.
func (l *Logger) AttachFile(path string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	l.f = f
	l.file = log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
	})
	l.file.SetLevel(log.DebugLevel)
	return nil
}

// FileAttached reports whether a log file is receiving lines.
func (l *Logger) FileAttached() bool {
	return l.file != nil
}

// Close flushes and closes the attached log file, if any.
func (l *Logger) Close() error {
	if l.f == nil {
		return nil
	}
	err := l.f.Close()
	l.f = nil
	l.file = nil
	return err
}

// Debug logs at debug level (console shows it only in verbose mode).
func (l *Logger) Debug(msg any, kv ...any) {
	l.console.Debug(msg, kv...)
	if l.file != nil {
		l.file.Debug(msg, kv...)
	}
}

// Info logs at info level.
func (l *Logger) Info(msg any, kv ...any) {
	l.console.Info(msg, kv...)
	if l.file != nil {
		l.file.Info(msg, kv...)
	}
}

// Warn logs at warn level.
func (l *Logger) Warn(msg any, kv ...any) {
	l.console.Warn(msg, kv...)
	if l.file != nil {
		l.file.Warn(msg, kv...)
	}
}

// Error logs at error level.
func (l *Logger) Error(msg any, kv ...any) {
	l.console.Error(msg, kv...)
	if l.file != nil {
		l.file.Error(msg, kv...)
	}
}

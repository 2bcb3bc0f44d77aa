// Package testutil holds small helpers shared by package tests.
package testutil

import (
	"context"
	"log/slog"
	"sync"
	"testing"
)

// LogRecord is a captured log record.
type LogRecord struct {
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

// CaptureHandler is a slog.Handler that records every log call so tests can
// assert on structured output.
type CaptureHandler struct {
	mu      sync.Mutex
	records []LogRecord
	t       *testing.T
}

// NewCaptureHandler creates a capture handler. t may be nil.
func NewCaptureHandler(t *testing.T) *CaptureHandler {
	return &CaptureHandler{t: t}
}

// NewCaptureLogger returns a logger writing into a fresh capture handler.
func NewCaptureLogger(t *testing.T) (*slog.Logger, *CaptureHandler) {
	h := NewCaptureHandler(t)
	return slog.New(h), h
}

// Handle implements slog.Handler.
func (h *CaptureHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	attrs := make(map[string]any)
	r.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value.Any()
		return true
	})
	h.records = append(h.records, LogRecord{Level: r.Level, Message: r.Message, Attrs: attrs})

	if h.t != nil {
		h.t.Logf("[%s] %s %v", r.Level, r.Message, attrs)
	}
	return nil
}

// Enabled implements slog.Handler; everything is captured.
func (h *CaptureHandler) Enabled(context.Context, slog.Level) bool { return true }

// WithAttrs implements slog.Handler.
func (h *CaptureHandler) WithAttrs([]slog.Attr) slog.Handler { return h }

// WithGroup implements slog.Handler.
func (h *CaptureHandler) WithGroup(string) slog.Handler { return h }

// Records returns a copy of the captured records.
func (h *CaptureHandler) Records() []LogRecord {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]LogRecord, len(h.records))
	copy(out, h.records)
	return out
}

// HasMessage reports whether any record carries the message.
func (h *CaptureHandler) HasMessage(msg string) bool {
	for _, r := range h.Records() {
		if r.Message == msg {
			return true
		}
	}
	return false
}

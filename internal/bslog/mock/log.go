package mock

import (
	"context"
	"log/slog"
	"sync"
	"testing"
)

// TestingHandler captures logs for testing
type TestingHandler struct {
	mu    sync.Mutex
	Logs  []LogEntry
	TB    testing.TB
	attrs []slog.Attr
	root  *TestingHandler
}

type LogEntry struct {
	Level   slog.Level
	Message string
	Attrs   []slog.Attr
}

// Attr returns the value of the named attribute, if present.
func (e LogEntry) Attr(key string) (slog.Value, bool) {
	for _, a := range e.Attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return slog.Value{}, false
}

func (h *TestingHandler) Enabled(_ context.Context, level slog.Level) bool {
	return true
}

func (h *TestingHandler) Handle(_ context.Context, r slog.Record) error {
	attrs := append([]slog.Attr{}, h.attrs...)
	r.Attrs(func(attr slog.Attr) bool {
		attrs = append(attrs, attr)
		return true
	})

	root := h.rootHandler()
	root.mu.Lock()
	defer root.mu.Unlock()
	root.Logs = append(root.Logs, LogEntry{
		Level:   r.Level,
		Message: r.Message,
		Attrs:   attrs,
	})
	return nil
}

func (h *TestingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &TestingHandler{
		TB:    h.TB,
		attrs: append(append([]slog.Attr{}, h.attrs...), attrs...),
		root:  h.rootHandler(),
	}
}

func (h *TestingHandler) WithGroup(name string) slog.Handler {
	return h
}

// Messages returns the messages logged at the given level, in order.
func (h *TestingHandler) Messages(level slog.Level) []string {
	root := h.rootHandler()
	root.mu.Lock()
	defer root.mu.Unlock()

	var msgs []string
	for _, l := range root.Logs {
		if l.Level == level {
			msgs = append(msgs, l.Message)
		}
	}
	return msgs
}

// Entries returns a copy of all captured entries.
func (h *TestingHandler) Entries() []LogEntry {
	root := h.rootHandler()
	root.mu.Lock()
	defer root.mu.Unlock()
	return append([]LogEntry{}, root.Logs...)
}

func (h *TestingHandler) rootHandler() *TestingHandler {
	if h.root != nil {
		return h.root
	}
	return h
}

// NewTestLogger creates a logger whose output is captured by the returned handler.
func NewTestLogger(tb testing.TB) (*slog.Logger, *TestingHandler) {
	handler := &TestingHandler{TB: tb}
	return slog.New(handler), handler
}

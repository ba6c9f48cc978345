package logging

import (
	"context"
	"log/slog"
	"strings"
	"sync"
)

// Entry is a captured log record.
type Entry struct {
	Level   slog.Level
	Message string
	Attrs   map[string]string
}

type entries struct {
	mu   sync.Mutex
	list []Entry
}

// RecordingHandler implements slog.Handler and keeps the log
// records in memory, so that tests can inspect what was reported.
//
//	rec := logging.NewRecordingHandler(slog.LevelDebug)
//	logger := slog.New(rec)
//	// ... convert with logger ...
//	rec.Count(slog.LevelWarn)
type RecordingHandler struct {
	level    slog.Leveler
	store    *entries
	preAttrs []slog.Attr
	groups   []string
}

// NewRecordingHandler returns a handler capturing records at or above `level`.
func NewRecordingHandler(level slog.Leveler) *RecordingHandler {
	if level == nil {
		level = slog.LevelDebug
	}
	return &RecordingHandler{level: level, store: &entries{}}
}

func (h *RecordingHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *RecordingHandler) prefixed(key string) string {
	if len(h.groups) == 0 {
		return key
	}
	return strings.Join(h.groups, ".") + "." + key
}

func (h *RecordingHandler) Handle(_ context.Context, r slog.Record) error {
	entry := Entry{Level: r.Level, Message: r.Message, Attrs: map[string]string{}}
	for _, attr := range h.preAttrs {
		entry.Attrs[attr.Key] = attr.Value.String()
	}
	r.Attrs(func(attr slog.Attr) bool {
		entry.Attrs[h.prefixed(attr.Key)] = attr.Value.String()
		return true
	})

	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	h.store.list = append(h.store.list, entry)
	return nil
}

// WithAttrs returns a handler sharing the same storage.
func (h *RecordingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := *h
	out.preAttrs = append([]slog.Attr(nil), h.preAttrs...)
	for _, attr := range attrs {
		// groups opened later do not apply
		out.preAttrs = append(out.preAttrs, slog.Attr{Key: h.prefixed(attr.Key), Value: attr.Value})
	}
	return &out
}

// WithGroup returns a handler sharing the same storage.
func (h *RecordingHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	out := *h
	out.groups = append(append([]string(nil), h.groups...), name)
	return &out
}

// Entries returns a copy of the captured records.
func (h *RecordingHandler) Entries() []Entry {
	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	return append([]Entry(nil), h.store.list...)
}

// Count returns the number of records with the given level.
func (h *RecordingHandler) Count(level slog.Level) int {
	n := 0
	for _, e := range h.Entries() {
		if e.Level == level {
			n++
		}
	}
	return n
}

// Contains returns true if a record message contains `s`.
func (h *RecordingHandler) Contains(s string) bool {
	for _, e := range h.Entries() {
		if strings.Contains(e.Message, s) {
			return true
		}
	}
	return false
}

// Reset discards the captured records.
func (h *RecordingHandler) Reset() {
	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	h.store.list = nil
}

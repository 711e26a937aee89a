package runner

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// DedupHandler suppresses consecutive log records that repeat the same
// message at the same level. When a different record arrives, the number
// of suppressed repeats is reported before it. Snapping a long wellpath
// can otherwise emit the same warning once per point.
type DedupHandler struct {
	inner slog.Handler

	mu        sync.Mutex
	lastMsg   string
	lastLevel slog.Level
	count     int
}

// NewDedupHandler wraps inner with consecutive-duplicate suppression.
func NewDedupHandler(inner slog.Handler) *DedupHandler {
	return &DedupHandler{inner: inner}
}

func (h *DedupHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *DedupHandler) Handle(ctx context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.count > 0 && r.Message == h.lastMsg && r.Level == h.lastLevel {
		h.count++
		return nil
	}
	if err := h.reportLocked(ctx); err != nil {
		return err
	}
	h.lastMsg = r.Message
	h.lastLevel = r.Level
	h.count = 1
	return h.inner.Handle(ctx, r)
}

func (h *DedupHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return NewDedupHandler(h.inner.WithAttrs(attrs))
}

func (h *DedupHandler) WithGroup(name string) slog.Handler {
	return NewDedupHandler(h.inner.WithGroup(name))
}

// Flush reports repeats that are still pending. Call after the last log
// statement of a run.
func (h *DedupHandler) Flush() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	err := h.reportLocked(context.Background())
	h.lastMsg = ""
	h.count = 0
	return err
}

func (h *DedupHandler) reportLocked(ctx context.Context) error {
	if h.count <= 1 {
		return nil
	}
	r := slog.NewRecord(time.Now(), h.lastLevel, "suppressed similar messages", 0)
	r.AddAttrs(slog.Int("count", h.count-1), slog.String("message", h.lastMsg))
	return h.inner.Handle(ctx, r)
}

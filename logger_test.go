package spv

import (
	"context"
	"log/slog"
	"sync"
	"testing"
)

// recordingHandler captures log records so tests can assert on advisory
// diagnostics.
type recordingHandler struct {
	mu      sync.Mutex
	records []slog.Record
}

func (h *recordingHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *recordingHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	h.records = append(h.records, r)
	h.mu.Unlock()
	return nil
}

func (h *recordingHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *recordingHandler) WithGroup(string) slog.Handler      { return h }

func (h *recordingHandler) messages() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.records))
	for i, r := range h.records {
		out[i] = r.Message
	}
	return out
}

// captureLogs installs a recording logger for the duration of the test.
func captureLogs(t *testing.T) *recordingHandler {
	t.Helper()
	h := &recordingHandler{}
	SetLogger(slog.New(h))
	t.Cleanup(func() { SetLogger(nil) })
	return h
}

func TestSetLoggerNilRestoresSilence(t *testing.T) {
	SetLogger(nil)
	if Logger() == nil {
		t.Fatal("Logger returned nil after SetLogger(nil)")
	}
	// The nop logger must report disabled at every level.
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("nop logger reports enabled")
	}
}

func TestLoggerConcurrentSet(t *testing.T) {
	t.Cleanup(func() { SetLogger(nil) })
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				SetLogger(slog.Default())
				Logger().Debug("spv: probe")
			}
		}()
	}
	wg.Wait()
}

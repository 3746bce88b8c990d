// Package logging contains the Loki slog handler used to ship catalog
// API logs to a Grafana Loki instance without blocking request handling.
package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"
)

const flushInterval = 5 * time.Second

// LokiHandler is a custom slog.Handler that sends logs directly to Loki via HTTP.
// It batches logs and sends them asynchronously to avoid blocking the application.
type LokiHandler struct {
	url       string
	labels    map[string]string
	client    *http.Client
	level     slog.Level
	enabled   bool
	batchSize int

	mu         sync.Mutex
	batch      []lokiEntry
	flushTimer *time.Timer

	attrs []slog.Attr
}

type lokiEntry struct {
	timestamp time.Time
	line      string
}

type lokiPushRequest struct {
	Streams []lokiStream `json:"streams"`
}

type lokiStream struct {
	Stream map[string]string `json:"stream"`
	Values [][]string        `json:"values"`
}

// NewLokiHandler creates a new handler that sends logs to Loki.
// url: Loki endpoint (e.g., "http://localhost:3100")
// labels: Static labels to attach to all logs (e.g., {"app": "bighammer-catalog"})
// batchSize: Number of logs to batch before sending (0 = send immediately)
func NewLokiHandler(url string, labels map[string]string, batchSize int, enabled bool, level slog.Level) *LokiHandler {
	if labels == nil {
		labels = make(map[string]string)
	}

	h := &LokiHandler{
		url:       url + "/loki/api/v1/push",
		labels:    labels,
		client:    &http.Client{Timeout: 5 * time.Second},
		batch:     make([]lokiEntry, 0, batchSize),
		batchSize: batchSize,
		enabled:   enabled,
		level:     level,
	}

	if batchSize > 0 && enabled {
		h.flushTimer = time.AfterFunc(flushInterval, h.periodicFlush)
	}

	return h
}

// Enabled reports whether the handler handles records at the given level.
func (h *LokiHandler) Enabled(_ context.Context, level slog.Level) bool {
	return h.enabled && level >= h.level
}

// Handle handles the Record.
func (h *LokiHandler) Handle(_ context.Context, r slog.Record) error {
	if !h.enabled {
		return nil
	}

	logData := map[string]any{
		"time":  r.Time.Format(time.RFC3339Nano),
		"level": r.Level.String(),
		"msg":   r.Message,
	}
	for _, a := range h.attrs {
		logData[a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		logData[a.Key] = a.Value.Any()
		return true
	})

	logJSON, err := json.Marshal(logData)
	if err != nil {
		return fmt.Errorf("failed to marshal log to JSON: %w", err)
	}

	h.mu.Lock()
	h.batch = append(h.batch, lokiEntry{timestamp: r.Time, line: string(logJSON)})
	shouldFlush := h.batchSize == 0 || len(h.batch) >= h.batchSize
	h.mu.Unlock()

	if shouldFlush {
		return h.flush()
	}
	return nil
}

// WithAttrs returns a new Handler whose attributes consist of
// both the receiver's attributes and the arguments.
func (h *LokiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	clone := *h
	clone.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &clone
}

// WithGroup returns a new Handler with the given group appended to
// the receiver's existing groups.
func (h *LokiHandler) WithGroup(name string) slog.Handler {
	// Groups are not supported; attributes are kept flat
	return h
}

// flush sends all batched logs to Loki
func (h *LokiHandler) flush() error {
	h.mu.Lock()
	if len(h.batch) == 0 {
		h.mu.Unlock()
		return nil
	}
	entries := make([]lokiEntry, len(h.batch))
	copy(entries, h.batch)
	h.batch = h.batch[:0]
	h.mu.Unlock()

	// Loki expects [timestamp_in_nanoseconds, log_line]
	values := make([][]string, len(entries))
	for i, entry := range entries {
		values[i] = []string{
			strconv.FormatInt(entry.timestamp.UnixNano(), 10),
			entry.line,
		}
	}

	return h.push(lokiPushRequest{
		Streams: []lokiStream{{Stream: h.labels, Values: values}},
	})
}

// push sends the push request to Loki via HTTP
func (h *LokiHandler) push(req lokiPushRequest) error {
	jsonData, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal push request: %w", err)
	}

	httpReq, err := http.NewRequest(http.MethodPost, h.url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create HTTP request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(httpReq)
	if err != nil {
		// A down Loki must never fail the application
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		io.Copy(io.Discard, resp.Body)
	}
	return nil
}

// periodicFlush is called by the timer to flush logs periodically
func (h *LokiHandler) periodicFlush() {
	_ = h.flush()
	if h.flushTimer != nil {
		h.flushTimer.Reset(flushInterval)
	}
}

// Close flushes any remaining logs and stops the periodic flush timer
func (h *LokiHandler) Close() error {
	if h.flushTimer != nil {
		h.flushTimer.Stop()
	}
	return h.flush()
}

package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestMultiHandlerFansOut(t *testing.T) {
	var first, second bytes.Buffer
	h := NewMultiHandler(
		slog.NewTextHandler(&first, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewTextHandler(&second, &slog.HandlerOptions{Level: slog.LevelInfo}),
	)

	logger := slog.New(h)
	logger.Info("import completed", "layouts", 3)

	for name, buf := range map[string]*bytes.Buffer{"first": &first, "second": &second} {
		if !strings.Contains(buf.String(), "import completed") {
			t.Errorf("%s handler missed the record: %q", name, buf.String())
		}
	}
}

func TestMultiHandlerRespectsPerHandlerLevels(t *testing.T) {
	var debugSink, infoSink bytes.Buffer
	h := NewMultiHandler(
		slog.NewTextHandler(&debugSink, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewTextHandler(&infoSink, &slog.HandlerOptions{Level: slog.LevelInfo}),
	)

	if !h.Enabled(context.Background(), slog.LevelDebug) {
		t.Fatal("handler must be enabled when any sink accepts the level")
	}

	slog.New(h).Debug("schema walk", "table", "orders")
	if !strings.Contains(debugSink.String(), "schema walk") {
		t.Error("debug sink missed a debug record")
	}
	if infoSink.Len() != 0 {
		t.Errorf("info sink must skip debug records, got %q", infoSink.String())
	}
}

func TestMultiHandlerWithAttrs(t *testing.T) {
	var buf bytes.Buffer
	h := NewMultiHandler(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	slog.New(h).With("run_id", 7).Info("import started")
	if !strings.Contains(buf.String(), "run_id=7") {
		t.Errorf("attrs lost in fan-out: %q", buf.String())
	}
}

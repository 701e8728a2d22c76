package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestNewHandlerJSONWhenNotTerminal(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(NewHandler(&buf, false, false))
	l.Debug("hidden")
	l.Info("shown", "frames", 3)

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("output is not a single JSON record: %v (%q)", err, buf.String())
	}
	if rec["msg"] != "shown" {
		t.Errorf("msg = %v, want shown", rec["msg"])
	}
	if rec["frames"] != float64(3) {
		t.Errorf("frames = %v, want 3", rec["frames"])
	}
}

func TestNewHandlerTextVerbose(t *testing.T) {
	var buf bytes.Buffer
	slog.New(NewHandler(&buf, true, true)).Debug("visible")

	out := buf.String()
	if !strings.Contains(out, "level=DEBUG") || !strings.Contains(out, "msg=visible") {
		t.Errorf("output = %q", out)
	}
	if !strings.Contains(out, "source=") {
		t.Errorf("verbose output has no source: %q", out)
	}
}

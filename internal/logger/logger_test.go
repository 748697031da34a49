package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
)

func TestNew_WritesServiceFields(t *testing.T) {
	var buf bytes.Buffer
	l := New("orderdesk", "debug", &buf)
	l.Debug("hello", "action", "test")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not json: %v (%s)", err, buf.String())
	}
	if entry["service"] != "orderdesk" || entry["action"] != "test" || entry["msg"] != "hello" {
		t.Fatalf("unexpected entry: %v", entry)
	}
	if entry["hostname"] == "" {
		t.Fatalf("hostname missing")
	}
}

func TestNew_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := New("orderdesk", "warn", &buf)
	l.Info("dropped")
	if buf.Len() != 0 {
		t.Fatalf("info should be filtered at warn level: %s", buf.String())
	}
}

func TestContextRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	l := New("orderdesk", "info", &buf)
	ctx := WithContext(context.Background(), l)
	if FromContext(ctx) != l {
		t.Fatalf("expected logger from context")
	}
	if FromContext(context.Background()) == nil {
		t.Fatalf("expected default logger")
	}
}

package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"
)

func TestComponentTagAndPrefix(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)

	log := New("dispatch")
	log.Info("delivered %d events", 3)

	var line struct {
		Level     string `json:"level"`
		Component string `json:"component"`
		Message   string `json:"message"`
	}
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("output is not a JSON line: %v (%s)", err, buf.String())
	}
	if line.Level != "info" {
		t.Fatalf("level = %q", line.Level)
	}
	if line.Component != "dispatch" {
		t.Fatalf("component = %q", line.Component)
	}
	if !strings.HasPrefix(line.Message, "[fluxbot:dispatch] ") {
		t.Fatalf("message missing prefix: %q", line.Message)
	}
	if !strings.Contains(line.Message, "delivered 3 events") {
		t.Fatalf("message = %q", line.Message)
	}
}

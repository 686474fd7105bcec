package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestProductionLoggerWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log := newWithWriter("production", &buf)

	log.AgentCall("Lead Intelligence Assistant", 12, errors.New("gateway timeout"))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected a JSON line, got %q: %v", buf.String(), err)
	}
	if entry["msg"] != "agent_call" || entry["level"] != "WARN" {
		t.Errorf("unexpected entry %v", entry)
	}
	if entry["error"] != "gateway timeout" {
		t.Errorf("expected error attribute, got %v", entry["error"])
	}
}

func TestProductionLoggerDropsDebug(t *testing.T) {
	var buf bytes.Buffer
	newWithWriter("production", &buf).Debug("noisy")
	if buf.Len() != 0 {
		t.Errorf("expected debug to be filtered, got %q", buf.String())
	}

	buf.Reset()
	newWithWriter("Development", &buf).Debug("noisy")
	if !strings.Contains(buf.String(), "msg=noisy") {
		t.Errorf("expected text debug line, got %q", buf.String())
	}
}

func TestAuthEventFailureCarriesReason(t *testing.T) {
	var buf bytes.Buffer
	newWithWriter("production", &buf).AuthEvent("sign_in", "a@example.com", false, "bad password")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if entry["reason"] != "bad password" || entry["success"] != false {
		t.Errorf("unexpected entry %v", entry)
	}
}

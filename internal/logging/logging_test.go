package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestDefaultDiscards(t *testing.T) {
	if L() == nil {
		t.Fatal("expected a default logger")
	}
}

func TestSetupText(t *testing.T) {
	var buf bytes.Buffer
	l, err := Setup(Config{Level: "debug", Output: &buf})
	if err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	if L() != l {
		t.Error("Setup should install the logger")
	}
	if l.GetLevel() != logrus.DebugLevel {
		t.Errorf("expected debug level, got %v", l.GetLevel())
	}

	L().WithField("preset", "reference").Debug("evaluate")
	out := buf.String()
	if !strings.Contains(out, "evaluate") || !strings.Contains(out, "preset=reference") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestSetupJSON(t *testing.T) {
	var buf bytes.Buffer
	if _, err := Setup(Config{Format: "json", Output: &buf}); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	L().WithFields(logrus.Fields{"steps": 10}).Info("sweep")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected json line, got %q: %v", buf.String(), err)
	}
	if entry["msg"] != "sweep" || entry["steps"] != float64(10) {
		t.Errorf("unexpected entry %v", entry)
	}
}

func TestSetupLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	if _, err := Setup(Config{Level: "warn", Output: &buf}); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	L().Info("hidden")
	if buf.Len() != 0 {
		t.Errorf("info should be filtered at warn, got %q", buf.String())
	}
}

func TestSetupErrors(t *testing.T) {
	before := L()
	tests := []Config{
		{Level: "loud"},
		{Format: "xml"},
	}
	for _, cfg := range tests {
		if _, err := Setup(cfg); err == nil {
			t.Errorf("expected error for %+v", cfg)
		}
	}
	if L() != before {
		t.Error("failed setup replaced the logger")
	}
}

package logging

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestNewJSONLoggerAddsServiceAndFiltersLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, "scheme-advisor-api", "WARN")

	logger.Info("census_loaded", "districts", 640)
	if buf.Len() != 0 {
		t.Fatalf("expected info to be filtered at warn level, got %s", buf.String())
	}

	logger.Warn("postal_lookup_failed", "failure", "timeout")
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if entry["service"] != "scheme-advisor-api" || entry["msg"] != "postal_lookup_failed" {
		t.Fatalf("unexpected log entry %v", entry)
	}
}

func TestParseLevelDefaultsToInfo(t *testing.T) {
	if got := parseLevel("verbose"); got.String() != "INFO" {
		t.Fatalf("expected INFO, got %s", got)
	}
}

//go:build unit

package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"go-blog-app/internal/config"
	"strings"
	"testing"
)

func TestLoggerFormats(t *testing.T) {
	t.Run("console format is human readable", func(t *testing.T) {
		var buf bytes.Buffer
		log := New(config.LogConfig{Level: "info", Format: "console"}, &buf)

		log.Info("post created")

		output := buf.String()
		if !strings.Contains(output, "post created") {
			t.Errorf("expected log output to contain 'post created', got %q", output)
		}
		if strings.Contains(output, "{") {
			t.Errorf("expected console format, got json-like output: %s", output)
		}
	})

	t.Run("json format carries level, message and error", func(t *testing.T) {
		var buf bytes.Buffer
		log := New(config.LogConfig{Level: "error", Format: "json"}, &buf)

		log.Error(errors.New("connection refused"), "failed to reach database")

		var entry map[string]interface{}
		if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
			t.Fatalf("failed to unmarshal log output as json: %v\noutput: %s", err, buf.String())
		}
		if entry["level"] != "error" {
			t.Errorf("expected log level 'error', got %v", entry["level"])
		}
		if entry["message"] != "failed to reach database" {
			t.Errorf("expected message 'failed to reach database', got %v", entry["message"])
		}
		if entry["error"] != "connection refused" {
			t.Errorf("expected error 'connection refused', got %v", entry["error"])
		}
	})
}

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(config.LogConfig{Level: "warn", Format: "console"}, &buf)

	log.Info("below threshold")
	log.Warn("at threshold")

	output := buf.String()
	if strings.Contains(output, "below threshold") {
		t.Error("info level log should have been filtered out")
	}
	if !strings.Contains(output, "at threshold") {
		t.Error("warn level log should have appeared")
	}
}

func TestLoggerWithFields(t *testing.T) {
	var buf bytes.Buffer
	log := New(config.LogConfig{Level: "info", Format: "json"}, &buf)

	log.With(map[string]interface{}{"post_id": 42}).Info("post updated")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to unmarshal log output as json: %v", err)
	}
	if entry["post_id"] != float64(42) {
		t.Errorf("expected field post_id=42, got %v", entry["post_id"])
	}
}

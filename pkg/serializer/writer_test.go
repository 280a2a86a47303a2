/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package serializer

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

type testReport struct {
	OS      string   `json:"os" yaml:"os"`
	Allowed []string `json:"allowed" yaml:"allowed"`
	Passed  bool     `json:"passed" yaml:"passed"`
	Note    *string  `json:"note" yaml:"note"`
}

func sampleReport() testReport {
	return testReport{OS: "linux", Allowed: []string{"linux", "windows"}, Passed: true}
}

func TestWriter_SerializeJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := NewWriter(FormatJSON, &buf).Serialize(context.Background(), sampleReport()); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	var got testReport
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("Failed to unmarshal JSON: %v", err)
	}
	if got.OS != "linux" || len(got.Allowed) != 2 || !got.Passed {
		t.Errorf("Unexpected data: %+v", got)
	}
}

func TestWriter_SerializeYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := NewWriter(FormatYAML, &buf).Serialize(context.Background(), sampleReport()); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	var got testReport
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("Failed to unmarshal YAML: %v", err)
	}
	if got.OS != "linux" || got.Allowed[1] != "windows" {
		t.Errorf("Unexpected data: %+v", got)
	}
}

func TestWriter_SerializeTable(t *testing.T) {
	var buf bytes.Buffer
	if err := NewWriter(FormatTable, &buf).Serialize(context.Background(), sampleReport()); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if !strings.HasPrefix(lines[0], "FIELD") {
		t.Errorf("expected header row, got %q", lines[0])
	}

	for _, want := range []string{"allowed[0]", "allowed[1]", "windows", "note", "os", "passed", "true"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}

	// rows are sorted by field name
	if !strings.HasPrefix(lines[1], "allowed[0]") {
		t.Errorf("expected first row to be allowed[0], got %q", lines[1])
	}
}

func TestWriter_SerializeTable_Nested(t *testing.T) {
	var buf bytes.Buffer
	data := map[string]any{
		"metadata": map[string]string{"version": "v1"},
		"kind":     "OSRangeValidation",
	}
	if err := NewWriter(FormatTable, &buf).Serialize(context.Background(), data); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	if !strings.Contains(buf.String(), "metadata.version") {
		t.Errorf("expected dotted key, got:\n%s", buf.String())
	}
}

func TestWriter_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	if err := NewWriter(FormatJSON, &buf).Serialize(ctx, sampleReport()); err == nil {
		t.Error("expected error for canceled context")
	}
	if buf.Len() != 0 {
		t.Error("expected no output for canceled context")
	}
}

func TestNewWriter_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := NewWriter(Format("xml"), &buf).Serialize(context.Background(), sampleReport()); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	if !json.Valid(buf.Bytes()) {
		t.Errorf("expected JSON fallback, got %q", buf.String())
	}
}

func TestWriter_Close(t *testing.T) {
	w := NewStdoutWriter(FormatJSON)
	if err := w.Close(); err != nil {
		t.Errorf("Close on stdout writer should not error: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Multiple Close calls should not error: %v", err)
	}
	if err := w.Serialize(context.Background(), "x"); err == nil {
		t.Error("expected error serializing to a closed writer")
	}
}

func TestNewFileWriterOrStdout(t *testing.T) {
	for _, path := range []string{"", "-", "  "} {
		s, err := NewFileWriterOrStdout(FormatJSON, path)
		if err != nil {
			t.Fatalf("NewFileWriterOrStdout(%q) failed: %v", path, err)
		}
		if c, ok := s.(Closer); ok {
			if err := c.Close(); err != nil {
				t.Errorf("Close failed for %q: %v", path, err)
			}
		}
	}

	path := filepath.Join(t.TempDir(), "report.yaml")
	s, err := NewFileWriterOrStdout(FormatYAML, path)
	if err != nil {
		t.Fatalf("NewFileWriterOrStdout failed: %v", err)
	}
	if err := s.Serialize(context.Background(), sampleReport()); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	if err := s.(Closer).Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !strings.Contains(string(data), "os: linux") {
		t.Errorf("unexpected file content: %s", data)
	}

	if _, err := NewFileWriterOrStdout(FormatJSON, "/nonexistent/path/report.json"); err == nil {
		t.Error("expected error for invalid path")
	}
}

func TestFormat_IsUnknown(t *testing.T) {
	tests := []struct {
		format Format
		want   bool
	}{
		{FormatJSON, false},
		{FormatYAML, false},
		{FormatTable, false},
		{Format("xml"), true},
		{Format(""), true},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			if got := tt.format.IsUnknown(); got != tt.want {
				t.Errorf("Format(%q).IsUnknown() = %v, want %v", tt.format, got, tt.want)
			}
		})
	}
}

func TestSupportedFormats(t *testing.T) {
	if got := SupportedFormats(); len(got) != 3 {
		t.Errorf("SupportedFormats() = %v, want 3 formats", got)
	}
}

func TestRespondJSON(t *testing.T) {
	w := httptest.NewRecorder()
	RespondJSON(w, http.StatusPreconditionFailed, sampleReport())

	if w.Code != http.StatusPreconditionFailed {
		t.Fatalf("expected status %d, got %d", http.StatusPreconditionFailed, w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected application/json, got %q", ct)
	}

	var got testReport
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
}

func TestRespondJSON_EncodingError(t *testing.T) {
	w := httptest.NewRecorder()
	RespondJSON(w, http.StatusOK, map[string]any{"bad": make(chan int)})

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
	}
}

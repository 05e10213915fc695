package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestLogger_Log(t *testing.T) {
	var buf bytes.Buffer
	logger := New(LevelInfo, &buf)

	tests := []struct {
		name    string
		level   Level
		message string
		fields  Fields
		err     error
		want    bool // should log
	}{
		{
			name:    "info message",
			level:   LevelInfo,
			message: "loaded courses",
			fields:  Fields{"count": 3},
			want:    true,
		},
		{
			name:    "debug below threshold",
			level:   LevelDebug,
			message: "debug message",
			want:    false,
		},
		{
			name:    "error with err",
			level:   LevelError,
			message: "export failed",
			err:     errors.New("disk full"),
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := buf.Len()
			logger.log(tt.level, tt.message, tt.fields, tt.err)
			logged := buf.Len() > before

			if logged != tt.want {
				t.Errorf("log() logged = %v, want %v", logged, tt.want)
			}
		})
	}
}

func TestLogger_Entry(t *testing.T) {
	var buf bytes.Buffer
	New(LevelDebug, &buf).Error("export failed", Fields{"path": "courses.json"}, errors.New("disk full"))

	var entry LogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, buf.String())
	}

	if entry.Level != "ERROR" {
		t.Errorf("Level = %q, want ERROR", entry.Level)
	}
	if entry.Message != "export failed" {
		t.Errorf("Message = %q, want %q", entry.Message, "export failed")
	}
	if entry.Error != "disk full" {
		t.Errorf("Error = %q, want %q", entry.Error, "disk full")
	}
	if entry.Fields["path"] != "courses.json" {
		t.Errorf("Fields[path] = %v, want courses.json", entry.Fields["path"])
	}
	if _, err := time.Parse(time.RFC3339, entry.Timestamp); err != nil {
		t.Errorf("Timestamp %q is not RFC 3339: %v", entry.Timestamp, err)
	}
	if !strings.HasSuffix(buf.String(), "\n") {
		t.Error("log line not newline terminated")
	}
}

func TestLogger_Levels(t *testing.T) {
	tests := []struct {
		name      string
		minLevel  Level
		logLevel  Level
		shouldLog bool
	}{
		{"debug logs at debug", LevelDebug, LevelDebug, true},
		{"info logs at debug", LevelDebug, LevelInfo, true},
		{"debug doesn't log at info", LevelInfo, LevelDebug, false},
		{"info doesn't log at warn", LevelWarn, LevelInfo, false},
		{"error always logs", LevelDebug, LevelError, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			New(tt.minLevel, &buf).log(tt.logLevel, "test", nil, nil)

			if logged := buf.Len() > 0; logged != tt.shouldLog {
				t.Errorf("shouldLog = %v, want %v", logged, tt.shouldLog)
			}
		})
	}
}

func TestLogger_NilOutput(t *testing.T) {
	// Must not panic
	New(LevelDebug, nil).Info("discarded", nil)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    Level
		wantErr bool
	}{
		{input: "debug", want: LevelDebug},
		{input: "INFO", want: LevelInfo},
		{input: " Warn ", want: LevelWarn},
		{input: "error", want: LevelError},
		{input: "trace", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestMetrics_Counter(t *testing.T) {
	m := NewMetrics()

	m.IncrCounter("courses.loaded")
	m.IncrCounter("courses.loaded")
	m.AddCounter("courses.loaded", 3)

	if got := m.Snapshot().Counters["courses.loaded"]; got != 5 {
		t.Errorf("Counter = %v, want 5", got)
	}
}

func TestMetrics_Timing(t *testing.T) {
	m := NewMetrics()

	m.RecordTiming("export.write", 100*time.Millisecond)
	m.RecordTiming("export.write", 200*time.Millisecond)
	m.RecordTiming("export.write", 150*time.Millisecond)

	stats := m.Snapshot().Timings["export.write"]
	if stats.Count != 3 {
		t.Errorf("Count = %d, want 3", stats.Count)
	}
	if stats.Min != 100*time.Millisecond {
		t.Errorf("Min = %v, want 100ms", stats.Min)
	}
	if stats.Max != 200*time.Millisecond {
		t.Errorf("Max = %v, want 200ms", stats.Max)
	}
	if stats.Total != 450*time.Millisecond {
		t.Errorf("Total = %v, want 450ms", stats.Total)
	}
}

func TestSnapshot_Fields(t *testing.T) {
	m := NewMetrics()
	m.AddCounter("courses.exported", 2)
	m.RecordTiming("source.load", 1500*time.Millisecond)

	fields := m.Snapshot().Fields()

	if fields["courses.exported"] != int64(2) {
		t.Errorf("courses.exported = %v, want 2", fields["courses.exported"])
	}
	if fields["source.load.total_ms"] != int64(1500) {
		t.Errorf("source.load.total_ms = %v, want 1500", fields["source.load.total_ms"])
	}
}

func TestSnapshot_IsCopy(t *testing.T) {
	m := NewMetrics()
	m.IncrCounter("a")

	snap := m.Snapshot()
	m.IncrCounter("a")

	if snap.Counters["a"] != 1 {
		t.Errorf("snapshot counter changed to %d after later update", snap.Counters["a"])
	}
}

package logger

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestSetup_DisabledByDefault(t *testing.T) {
	l, f, err := Setup(Options{})
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	if f != nil {
		t.Error("Expected nil log file when debug=false")
		f.Close()
	}
	if l.Out != io.Discard {
		t.Errorf("Expected logger output to be io.Discard, got %v", l.Out)
	}
	if log.Writer() != io.Discard {
		t.Errorf("Expected std log output to be io.Discard, got %v", log.Writer())
	}
}

func TestSetup_EnabledWithDebug(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	l, f, err := Setup(Options{Debug: true, Dir: dir, Level: "debug"})
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	if f == nil {
		t.Fatal("Expected non-nil log file when debug=true")
	}
	defer f.Close()

	l.WithField("id", "user-1").Debug("released")
	log.Println("std message")

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "id=user-1") {
		t.Errorf("Expected structured field in log, got %q", data)
	}
	if !strings.Contains(string(data), "std message") {
		t.Error("Expected std log output in the same file")
	}
	if l.Out == os.Stdout || l.Out == os.Stderr {
		t.Error("Log output must not be stdout or stderr")
	}
}

func TestSetup_Rotation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, make([]byte, MaxSize+1), 0o644); err != nil {
		t.Fatalf("write large log: %v", err)
	}

	_, f, err := Setup(Options{Debug: true, Dir: dir})
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	defer f.Close()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	rotatedFound := false
	for _, e := range entries {
		if e.Name() != FileName && filepath.Ext(e.Name()) == ".log" {
			rotatedFound = true
		}
	}
	if !rotatedFound {
		t.Error("Expected to find rotated log file")
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat new log: %v", err)
	}
	if info.Size() > MaxSize {
		t.Errorf("Expected new log file below %d bytes, got %d", MaxSize, info.Size())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want logrus.Level
	}{
		{"", logrus.InfoLevel},
		{"debug", logrus.DebugLevel},
		{"WARN", logrus.WarnLevel},
		{"nonsense", logrus.InfoLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFormatterJSON(t *testing.T) {
	l := logrus.New()
	var buf bytes.Buffer
	l.SetOutput(&buf)
	l.SetFormatter(Formatter("JSON"))
	l.WithField("layer", 2).Info("seeded")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON line, got %q: %v", buf.String(), err)
	}
	if entry["msg"] != "seeded" || entry["layer"] != float64(2) {
		t.Errorf("unexpected entry %v", entry)
	}
}

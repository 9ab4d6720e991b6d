package main

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoggingDisabledByDefault(t *testing.T) {
	t.Chdir(t.TempDir())

	if f := setupLogging(false); f != nil {
		f.Close()
		t.Error("Expected no log file without -debug")
	}
	if log.Writer() != io.Discard {
		t.Error("Expected log output discarded without -debug")
	}
	if _, err := os.Stat(logDir); !os.IsNotExist(err) {
		t.Error("Expected no logs directory without -debug")
	}
}

func TestLoggingWritesWhenEnabled(t *testing.T) {
	t.Chdir(t.TempDir())

	f := setupLogging(true)
	if f == nil {
		t.Fatal("Expected a log file with -debug")
	}
	defer f.Close()

	log.Println("deck session opened")

	data, err := os.ReadFile(filepath.Join(logDir, logFileName))
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "deck session opened") {
		t.Errorf("Log file missing written entry, got %q", data)
	}
}

func TestLoggingRotatesOversizedFile(t *testing.T) {
	t.Chdir(t.TempDir())

	if err := os.MkdirAll(logDir, 0755); err != nil {
		t.Fatalf("Failed to create logs directory: %v", err)
	}
	path := filepath.Join(logDir, logFileName)
	oversized := int64(maxLogSize + 1)
	if err := os.WriteFile(path, make([]byte, oversized), 0644); err != nil {
		t.Fatalf("Failed to seed oversized log: %v", err)
	}

	f := setupLogging(true)
	if f == nil {
		t.Fatal("Expected a log file with -debug")
	}
	defer f.Close()

	// The oversized file moves aside intact and a fresh one takes its name
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Failed to stat fresh log file: %v", err)
	}
	if info.Size() != 0 {
		t.Errorf("Fresh log file has %d bytes, want empty", info.Size())
	}

	entries, err := os.ReadDir(logDir)
	if err != nil {
		t.Fatalf("Failed to read logs directory: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected rotated plus fresh log, got %d files", len(entries))
	}
	for _, entry := range entries {
		if entry.Name() == logFileName {
			continue
		}
		ri, err := entry.Info()
		if err != nil {
			t.Fatalf("Failed to stat rotated log: %v", err)
		}
		if ri.Size() != oversized {
			t.Errorf("Rotated log has %d bytes, want original %d", ri.Size(), oversized)
		}
	}
}

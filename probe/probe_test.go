package probe

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// writeWav writes a minimal canonical PCM16 mono WAV file
func writeWav(t *testing.T, path string, seconds float64) {
	t.Helper()
	const rate = 8000
	n := int(seconds * rate)
	dataSize := n * 2

	var buf bytes.Buffer
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+dataSize))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1))
	binary.Write(&buf, binary.LittleEndian, uint16(1))
	binary.Write(&buf, binary.LittleEndian, uint32(rate))
	binary.Write(&buf, binary.LittleEndian, uint32(rate*2))
	binary.Write(&buf, binary.LittleEndian, uint16(2))
	binary.Write(&buf, binary.LittleEndian, uint16(16))
	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(dataSize))
	buf.Write(make([]byte, dataSize))

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("Failed to write test wav: %v", err)
	}
}

// TestProbeWav verifies header metadata extraction
func TestProbeWav(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tone.wav")
	writeWav(t, path, 0.5)

	info, err := Probe(path)
	if err != nil {
		t.Fatalf("Probe failed: %v", err)
	}
	if info.Format != "wav" {
		t.Errorf("Format %q, want wav", info.Format)
	}
	if info.SampleRate != 8000 {
		t.Errorf("SampleRate %d, want 8000", info.SampleRate)
	}
	if info.Channels != 1 {
		t.Errorf("Channels %d, want 1", info.Channels)
	}
	if info.Duration < 450*time.Millisecond || info.Duration > 550*time.Millisecond {
		t.Errorf("Duration %v, want ~500ms", info.Duration)
	}
}

// TestProbeMissing verifies a missing file fails fast
func TestProbeMissing(t *testing.T) {
	if _, err := Probe(filepath.Join(t.TempDir(), "absent.wav")); err == nil {
		t.Error("Expected error for missing file")
	}
}

// TestProbeUnsupported verifies the extension filter
func TestProbeUnsupported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("text"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Probe(path); !errors.Is(err, ErrUnsupported) {
		t.Errorf("Expected ErrUnsupported, got %v", err)
	}
}

// TestProbeNoPlayback verifies aac-family files get the distinct error
func TestProbeNoPlayback(t *testing.T) {
	path := filepath.Join(t.TempDir(), "song.aac")
	if err := os.WriteFile(path, []byte{0xff, 0xf1}, 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Probe(path); !errors.Is(err, ErrNoPlayback) {
		t.Errorf("Expected ErrNoPlayback, got %v", err)
	}
}

// TestProbeMalformedWav verifies a bad header is rejected
func TestProbeMalformedWav(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.wav")
	if err := os.WriteFile(path, []byte("RIFFnope"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Probe(path); err == nil {
		t.Error("Expected error for malformed wav")
	}
}

// TestAccepts verifies the playable-extension filter
func TestAccepts(t *testing.T) {
	for _, path := range []string{"a.wav", "b.MP3", "c.ogg", "d.oga", "e.flac"} {
		if !Accepts(path) {
			t.Errorf("Accepts(%q) = false, want true", path)
		}
	}
	for _, path := range []string{"a.txt", "b.aac", "c.m4a", "noext"} {
		if Accepts(path) {
			t.Errorf("Accepts(%q) = true, want false", path)
		}
	}
}

// TestScan verifies directory listing filters and sorts
func TestScan(t *testing.T) {
	dir := t.TempDir()
	writeWav(t, filepath.Join(dir, "b.wav"), 0.1)
	writeWav(t, filepath.Join(dir, "a.wav"), 0.1)
	os.WriteFile(filepath.Join(dir, "readme.md"), []byte("x"), 0644)
	os.Mkdir(filepath.Join(dir, "sub.wav"), 0755)

	files, err := Scan(dir)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("Scan found %d files, want 2: %v", len(files), files)
	}
	if filepath.Base(files[0]) != "a.wav" || filepath.Base(files[1]) != "b.wav" {
		t.Errorf("Scan order %v, want sorted a.wav b.wav", files)
	}
}

// Package probe validates a selected audio file before it is handed to the
// playback engine, so a bad pick fails fast at selection time instead of
// surfacing mid-load. Each format's own decoder reads the headers; nothing
// is decoded beyond them except where the container demands it.
package probe

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	gowav "github.com/go-audio/wav"
	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"
	"github.com/mewkiz/flac"
)

// Info describes a probed audio file
type Info struct {
	Format     string
	SampleRate int
	Channels   int
	Duration   time.Duration // zero when the container doesn't carry a length
}

// Sentinel errors
var (
	// ErrUnsupported marks a file outside the accepted audio formats
	ErrUnsupported = errors.New("unsupported file type")

	// ErrNoPlayback marks a recognized audio format the playback engine
	// cannot decode (aac/mpeg family)
	ErrNoPlayback = errors.New("format recognized but not playable")
)

// Accepts reports whether the extension belongs to a playable format
func Accepts(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav", ".mp3", ".ogg", ".oga", ".flac":
		return true
	}
	return false
}

// Probe opens and header-validates the file. A missing file or a
// malformed header returns an error immediately.
func Probe(path string) (Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, fmt.Errorf("select file: %w", err)
	}
	defer f.Close()

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".wav":
		return probeWav(f)
	case ".mp3":
		return probeMp3(f)
	case ".ogg", ".oga":
		return probeVorbis(f)
	case ".flac":
		return probeFlac(f)
	case ".aac", ".m4a", ".mpga", ".mpeg":
		return Info{}, fmt.Errorf("%s: %w", ext, ErrNoPlayback)
	default:
		return Info{}, fmt.Errorf("%s: %w", ext, ErrUnsupported)
	}
}

func probeWav(f *os.File) (Info, error) {
	d := gowav.NewDecoder(f)
	d.ReadInfo()
	if !d.IsValidFile() {
		return Info{}, fmt.Errorf("wav header: %w", ErrUnsupported)
	}

	info := Info{
		Format:     "wav",
		SampleRate: int(d.SampleRate),
		Channels:   int(d.NumChans),
	}
	if dur, err := d.Duration(); err == nil {
		info.Duration = dur
	}
	return info, nil
}

func probeMp3(f *os.File) (Info, error) {
	d, err := gomp3.NewDecoder(f)
	if err != nil {
		return Info{}, fmt.Errorf("mp3 header: %w", err)
	}

	info := Info{
		Format:     "mp3",
		SampleRate: d.SampleRate(),
		Channels:   2, // go-mp3 always outputs stereo
	}
	// Length is decoded bytes: 2 channels of int16 per frame
	if n := d.Length(); n > 0 && d.SampleRate() > 0 {
		frames := n / 4
		info.Duration = time.Duration(frames) * time.Second / time.Duration(d.SampleRate())
	}
	return info, nil
}

func probeVorbis(f *os.File) (Info, error) {
	r, err := oggvorbis.NewReader(f)
	if err != nil {
		return Info{}, fmt.Errorf("ogg header: %w", err)
	}

	info := Info{
		Format:     "ogg",
		SampleRate: r.SampleRate(),
		Channels:   r.Channels(),
	}
	if n := r.Length(); n > 0 && r.SampleRate() > 0 {
		info.Duration = time.Duration(n) * time.Second / time.Duration(r.SampleRate())
	}
	return info, nil
}

func probeFlac(f *os.File) (Info, error) {
	stream, err := flac.New(f)
	if err != nil {
		return Info{}, fmt.Errorf("flac header: %w", err)
	}
	defer stream.Close()

	info := Info{
		Format:     "flac",
		SampleRate: int(stream.Info.SampleRate),
		Channels:   int(stream.Info.NChannels),
	}
	if stream.Info.NSamples > 0 && stream.Info.SampleRate > 0 {
		info.Duration = time.Duration(stream.Info.NSamples) * time.Second / time.Duration(stream.Info.SampleRate)
	}
	return info, nil
}

// Scan lists playable files in dir, sorted by name. Used by the UI to
// cycle through sources.
func Scan(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !Accepts(e.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	return files, nil
}

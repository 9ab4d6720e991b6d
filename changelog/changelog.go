// Package changelog reads release notes from a local markdown file for the
// in-app changelog view. Parse failures are surfaced as errors distinct
// from read failures; the UI renders either as a fallback line.
package changelog

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// Release is one changelog entry
type Release struct {
	Version string
	Date    string
	Notes   []string
}

// ErrMalformed marks a release heading missing its version or date
var ErrMalformed = errors.New("malformed changelog entry")

// headingRe matches "## [1.2.0] - 2026-08-01"
var headingRe = regexp.MustCompile(`^## \[([^\]]+)\] - (\S.*)$`)

// Load reads and parses the changelog at path
func Load(path string) ([]Release, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read changelog: %w", err)
	}
	return Parse(data)
}

// Parse extracts releases from markdown. Lines outside release headings
// and their bullet notes are ignored.
func Parse(data []byte) ([]Release, error) {
	var releases []Release
	var current *Release

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t")

		if strings.HasPrefix(line, "## ") {
			m := headingRe.FindStringSubmatch(line)
			if m == nil {
				return nil, fmt.Errorf("%w: %q", ErrMalformed, line)
			}
			releases = append(releases, Release{Version: m[1], Date: m[2]})
			current = &releases[len(releases)-1]
			continue
		}

		if current != nil && strings.HasPrefix(line, "- ") {
			current.Notes = append(current.Notes, strings.TrimPrefix(line, "- "))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read changelog: %w", err)
	}

	if len(releases) == 0 {
		return nil, fmt.Errorf("%w: no release headings", ErrMalformed)
	}
	return releases, nil
}

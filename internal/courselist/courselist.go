// Package courselist loads the newline-delimited course code file that
// drives a run. Codes are trimmed, upper-cased and deduplicated keeping
// first-seen order; blank lines and #-comments are skipped.
package courselist

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// CommentMarker starts a comment line in the course file
const CommentMarker = "#"

// ConfigError is a fatal configuration failure: the course file is missing
// or unreadable, so the run cannot proceed.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("course list %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Load reads the course code file at path. An empty file yields an empty,
// non-nil slice; a missing or unreadable file yields a *ConfigError.
func Load(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}
	defer f.Close()

	codes, err := parse(f)
	if err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}
	return codes, nil
}

// Normalize canonicalizes a course code for matching and reporting
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// NormalizeAll normalizes and deduplicates a list of codes, keeping the
// order codes were first seen in. Used both by Load and for codes passed
// directly on the command line.
func NormalizeAll(codes []string) []string {
	seen := make(map[string]bool, len(codes))
	out := make([]string, 0, len(codes))
	for _, code := range codes {
		normalized := Normalize(code)
		if normalized == "" || seen[normalized] {
			continue
		}
		seen[normalized] = true
		out = append(out, normalized)
	}
	return out
}

func parse(r io.Reader) ([]string, error) {
	var codes []string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, CommentMarker) {
			continue
		}
		codes = append(codes, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading course list: %w", err)
	}

	return NormalizeAll(codes), nil
}

package textproc

import (
	"os"
	"strings"

	pterrors "github.com/arlis-topics/pubtopics/internal/errors"
)

// StopwordSet excludes raw tokens before any other filter runs.
type StopwordSet map[string]struct{}

// Contains reports whether tok is a stopword. A nil set contains
// nothing.
func (s StopwordSet) Contains(tok string) bool {
	if s == nil {
		return false
	}
	_, ok := s[tok]
	return ok
}

// NewStopwordSet builds a set from raw tokens.
func NewStopwordSet(tokens ...string) StopwordSet {
	s := make(StopwordSet, len(tokens))
	for _, tok := range tokens {
		s[tok] = struct{}{}
	}
	return s
}

// LoadStopwords reads a stopword file: one raw token per line, UTF-8,
// no normalization. An unreadable file is a configuration error and
// fatal before processing starts.
func LoadStopwords(path string) (StopwordSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, pterrors.Wrap(pterrors.ErrCodeStopwordsUnreadable, err).
			WithDetail("path", path)
	}
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	s := make(StopwordSet, len(lines))
	for _, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}
		s[line] = struct{}{}
	}
	return s, nil
}

// ABOUTME: Deterministic overlapping text splitter for document ingestion
// ABOUTME: Prefers paragraph/newline/sentence/word breaks before hard cuts
package chunker

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrOverlapTooLarge is returned when overlap >= max size, which could
// never make progress through the text.
var ErrOverlapTooLarge = errors.New("chunker: overlap must be smaller than max size")

// DefaultMaxSize is the default number of characters per segment.
const DefaultMaxSize = 300

// DefaultOverlap is the default number of characters shared between
// consecutive segments.
const DefaultOverlap = 50

// separators, in preference order. A segment breaks at the last occurrence
// of the highest-priority separator found near the end of its window.
var separators = []string{"\n\n", "\n", ". ", " "}

// Splitter splits raw text into overlapping segments of bounded size.
type Splitter struct {
	maxSize int
	overlap int
}

// New creates a Splitter. overlap >= maxSize can never make progress, so it
// is rejected here rather than looping at ingest time.
func New(maxSize, overlap int) (*Splitter, error) {
	if maxSize <= 0 {
		return nil, fmt.Errorf("chunker: max size must be positive, got %d", maxSize)
	}
	if overlap < 0 {
		return nil, fmt.Errorf("chunker: overlap must be non-negative, got %d", overlap)
	}
	if overlap >= maxSize {
		return nil, fmt.Errorf("%w: overlap %d, max size %d", ErrOverlapTooLarge, overlap, maxSize)
	}
	return &Splitter{maxSize: maxSize, overlap: overlap}, nil
}

// Split returns the segments of text in document order. Identical input
// always yields the identical sequence; blank input yields none. Every
// non-blank input yields at least one segment.
func (s *Splitter) Split(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	n := len(text)
	step := s.maxSize - s.overlap
	var segments []string

	start := 0
	for start < n {
		end := start + s.maxSize
		if end >= n {
			end = n
		} else if p := boundary(text[start:end], step); p > 0 {
			end = start + p
		} else {
			// Hard cut: back off to a rune boundary so multi-byte
			// characters are never split.
			for end > start+1 && !utf8.RuneStart(text[end]) {
				end--
			}
		}

		if seg := strings.TrimSpace(text[start:end]); seg != "" {
			segments = append(segments, seg)
		}
		if end == n {
			break
		}

		next := end - s.overlap
		if next <= start {
			next = start + 1
		}
		for next < n && !utf8.RuneStart(text[next]) {
			next++
		}
		start = next
	}

	return segments
}

// Split is a convenience wrapper for one-off splits.
func Split(text string, maxSize, overlap int) ([]string, error) {
	s, err := New(maxSize, overlap)
	if err != nil {
		return nil, err
	}
	return s.Split(text), nil
}

// boundary returns the cut position inside window, or -1 when no separator
// falls at or after min. Cutting before min would shrink segments below the
// step size and inflate the segment count.
func boundary(window string, min int) int {
	for _, sep := range separators {
		if i := strings.LastIndex(window, sep); i >= min {
			return i + len(sep)
		}
	}
	return -1
}

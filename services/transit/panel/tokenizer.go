package panel

import (
	"errors"
	"strings"
)

var (
	// ErrNoTimestampsFound is returned if the panel text contains no HH:MM timestamp lines.
	ErrNoTimestampsFound = errors.New("no timestamps found in panel text")
)

// Segment is a contiguous span of panel text anchored on a timestamp line.
type Segment struct {
	Timestamp Clock
	Lines     []string
}

// Text joins the lines of the segment with newlines.
func (s *Segment) Text() string {
	return strings.Join(s.Lines, "\n")
}

// Tokenize splits panel text into timestamp-anchored segments.
// Lines preceding the first timestamp are the panel header and are not part of any segment.
func Tokenize(text string) ([]*Segment, error) {
	var segments []*Segment
	var current *Segment

	for _, line := range panelLines(text) {
		if ts, err := ParseClock(line); err == nil {
			current = &Segment{
				Timestamp: ts,
			}
			segments = append(segments, current)
			continue
		}

		if current == nil {
			continue
		}
		current.Lines = append(current.Lines, line)
	}

	if len(segments) < 1 {
		return nil, ErrNoTimestampsFound
	}
	return segments, nil
}

// HeaderLines returns the lines preceding the first timestamp line.
func HeaderLines(text string) []string {
	var header []string
	for _, line := range panelLines(text) {
		if _, err := ParseClock(line); err == nil {
			break
		}
		header = append(header, line)
	}
	return header
}

// panelLines returns the trimmed, non-empty lines of the text.
func panelLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(strings.Replace(text, "\r\n", "\n", -1), "\n") {
		line = strings.TrimSpace(line)
		if len(line) < 1 {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

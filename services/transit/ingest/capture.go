package ingest

import (
	"encoding/json"
	"errors"
	"io"
	"os"
	"strings"
	"time"

	"github.com/japandatascience/timeline-mapping/services/transit/panel"
)

// CaptureSuffix is the file name suffix the scraper uses for panel captures.
const CaptureSuffix = ".panel.json"

var (
	// ErrEmptyCapture is returned if a capture has neither panel text nor panel markup.
	ErrEmptyCapture = errors.New("capture has no panel content")
)

// Capture is the envelope the scraper writes for each directions search.
type Capture struct {
	Origin      string     `json:"origin"`
	Destination string     `json:"destination"`
	ArrivalTime *time.Time `json:"arrival_time,omitempty"`
	// PanelText is the innerText of the directions panel. It is preferred over PanelHTML.
	PanelText string `json:"panel_text,omitempty"`
	PanelHTML string `json:"panel_html,omitempty"`
}

// ReadCapture decodes a capture envelope.
func ReadCapture(r io.Reader) (*Capture, error) {
	c := &Capture{}
	if err := json.NewDecoder(r).Decode(c); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadCapture reads the capture stored at the supplied path.
func LoadCapture(path string) (*Capture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadCapture(f)
}

// Text returns the panel text of the capture, extracting it from the markup if needed.
func (c *Capture) Text() (string, error) {
	if len(strings.TrimSpace(c.PanelText)) > 0 {
		return c.PanelText, nil
	}
	if len(strings.TrimSpace(c.PanelHTML)) > 0 {
		return panel.TextFromHTML(strings.NewReader(c.PanelHTML))
	}
	return "", ErrEmptyCapture
}

// Arrival returns the requested arrival time, or the zero time if none was requested.
func (c *Capture) Arrival() time.Time {
	if c.ArrivalTime == nil {
		return time.Time{}
	}
	return *c.ArrivalTime
}

// IsCapturePath returns true if the path names a panel capture file.
func IsCapturePath(path string) bool {
	return strings.HasSuffix(path, CaptureSuffix)
}

package panel

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	// Lines longer than this are descriptive text, not the line summary.
	maxLineSummaryLength = 50
)

var (
	summaryRegex   = regexp.MustCompile(`(\d{1,2}:\d{2})[^-–]*[-–]\s*(\d{1,2}:\d{2})\s*\(([^)]*)\)`)
	fareRegex      = regexp.MustCompile(`([\d,]+)\s*円`)
	lineTokenRegex = regexp.MustCompile(`([^、\s]+線)`)
)

// Header is the summary printed above the step-by-step directions,
// for example "9:35 (火曜日) - 9:58 （23 分）".
type Header struct {
	Departure    Clock
	Arrival      Clock
	HasTimes     bool
	TotalMinutes int
	HasTotal     bool
	Lines        []string
	FareYen      int
}

// ParseHeader extracts the trip summary from the lines preceding the first timestamp.
func ParseHeader(lines []string) *Header {
	h := &Header{}

	for _, line := range lines {
		folded := foldWidth(line)

		if !h.HasTimes {
			if matched := summaryRegex.FindStringSubmatch(folded); matched != nil {
				dep, depErr := ParseClock(matched[1])
				arr, arrErr := ParseClock(matched[2])
				if depErr == nil && arrErr == nil {
					h.Departure = dep
					h.Arrival = arr
					h.HasTimes = true
				}

				if total, ok := ParseDuration(matched[3]); ok {
					h.TotalMinutes = total
					h.HasTotal = true
				}
				continue
			}
		}

		if h.FareYen == 0 {
			if matched := fareRegex.FindStringSubmatch(folded); matched != nil {
				fare, err := strconv.Atoi(strings.Replace(matched[1], ",", "", -1))
				if err == nil {
					h.FareYen = fare
				}
			}
		}

		// The line summary is a short row of line names with no station or clock on it.
		if strings.Contains(line, lineSuffix) &&
			!strings.Contains(line, stationSuffix) &&
			utf8.RuneCountInString(line) < maxLineSummaryLength {
			for _, matched := range lineTokenRegex.FindAllStringSubmatch(line, -1) {
				h.Lines = append(h.Lines, matched[1])
			}
		}
	}

	return h
}

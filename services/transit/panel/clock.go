package panel

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/width"
)

const (
	minutesPerDay = 24 * 60
)

var (
	// ErrInvalidClock is returned if a string is not a strict HH:MM time of day.
	ErrInvalidClock = errors.New("invalid clock value")

	clockRegex    = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
	hoursRegex    = regexp.MustCompile(`(\d+)\s*時間`)
	minutesRegex  = regexp.MustCompile(`(\d+)\s*分`)
	durationRegex = regexp.MustCompile(`\d+\s*(時間|分)`)
)

// Clock is a wall-clock time of day as printed by the directions panel.
// No timezone is attached; the panel already renders times in the viewer's local time.
type Clock struct {
	Hour   int
	Minute int
}

// ParseClock converts a strict HH:MM (or H:MM) token into a Clock.
// Anything other than the bare token, including surrounding text, is rejected.
func ParseClock(s string) (Clock, error) {
	matched := clockRegex.FindStringSubmatch(s)
	if matched == nil {
		return Clock{}, ErrInvalidClock
	}

	hour, _ := strconv.Atoi(matched[1])
	minute, _ := strconv.Atoi(matched[2])
	if hour > 23 || minute > 59 {
		return Clock{}, ErrInvalidClock
	}

	return Clock{
		Hour:   hour,
		Minute: minute,
	}, nil
}

// MinuteOfDay returns the number of minutes since midnight.
func (c Clock) MinuteOfDay() int {
	return c.Hour*60 + c.Minute
}

// Add returns the clock shifted by the supplied number of minutes, wrapping at midnight.
func (c Clock) Add(minutes int) Clock {
	m := (c.MinuteOfDay() + minutes) % minutesPerDay
	if m < 0 {
		m += minutesPerDay
	}
	return Clock{
		Hour:   m / 60,
		Minute: m % 60,
	}
}

// String formats the clock the way the panel prints it (9:05, 23:58).
func (c Clock) String() string {
	return fmt.Sprintf("%d:%02d", c.Hour, c.Minute)
}

// MinutesBetween returns the non-negative number of minutes from one clock to another.
// If to is earlier in the day than from, the interval is assumed to cross midnight.
func MinutesBetween(from, to Clock) int {
	delta := to.MinuteOfDay() - from.MinuteOfDay()
	if delta < 0 {
		delta += minutesPerDay
	}
	return delta
}

// ParseDuration extracts a duration phrase such as "約 3 分" or "1 時間 7 分" from the text.
func ParseDuration(text string) (int, bool) {
	text = foldWidth(text)
	if !durationRegex.MatchString(text) {
		return 0, false
	}

	total := 0
	if matched := hoursRegex.FindStringSubmatch(text); matched != nil {
		hours, _ := strconv.Atoi(matched[1])
		total += hours * 60
	}
	if matched := minutesRegex.FindStringSubmatch(text); matched != nil {
		minutes, _ := strconv.Atoi(matched[1])
		total += minutes
	}

	return total, true
}

// foldWidth maps full-width digits and punctuation onto their ASCII forms.
// The panel mixes both, particularly inside parentheses: （23 分）.
func foldWidth(s string) string {
	return strings.TrimSpace(width.Fold.String(s))
}

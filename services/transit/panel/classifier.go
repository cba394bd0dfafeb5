package panel

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	walkIndicator = "徒歩"
	stationSuffix = "駅"
	lineSuffix    = "線"
	postalMark    = "〒"
)

var (
	lineNameRegex  = regexp.MustCompile(`^.*?線`)
	stopCountRegex = regexp.MustCompile(`(\d+)\s*駅`)
	distanceRegex  = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(km|m)\b`)
)

// StepKind identifies the role a segment plays in the route.
type StepKind int

const (
	// StepWalkToStation is the walk from the origin to the first boarding point.
	StepWalkToStation StepKind = iota
	// StepTransit is a ride on a single vehicle.
	StepTransit
	// StepTransferWalk is a walk between alighting one vehicle and boarding the next.
	StepTransferWalk
	// StepWalkFromStation is the walk from the last alighting point to the destination.
	StepWalkFromStation
)

// String presents the caller with a human readable version of this enum.
func (k StepKind) String() string {
	switch k {
	case StepWalkToStation:
		return "walk_to_station"
	case StepTransit:
		return "transit"
	case StepTransferWalk:
		return "transfer_walk"
	case StepWalkFromStation:
		return "walk_from_station"
	default:
		return "unknown"
	}
}

// IsWalk returns true for all of the walking kinds.
func (k StepKind) IsWalk() bool {
	return k == StepWalkToStation || k == StepTransferWalk || k == StepWalkFromStation
}

// Step is a segment that has been recognized as either a walk or a transit ride.
type Step struct {
	Kind      StepKind
	Timestamp Clock
	// Station is the first station named in the segment, without the trailing 駅.
	Station string

	WalkMinutes    int
	HasWalkMinutes bool
	DistanceMeters int

	Line           string
	RideMinutes    int
	HasRideMinutes bool
	StopCount      int
}

// Classify labels each segment as a walk or transit step.
// Segments that match neither heuristic are returned in dropped, in input order.
//
// The walking check runs before the transit check. Some walking segments also mention
// a line name, and those must stay walks.
func Classify(segments []*Segment) ([]*Step, []*Segment) {
	var steps []*Step
	var dropped []*Segment

	for idx, seg := range segments {
		text := seg.Text()

		if strings.Contains(text, walkIndicator) {
			steps = append(steps, walkStep(seg, walkKindForPosition(idx, len(segments))))
			continue
		}

		if strings.Contains(text, stationSuffix) {
			if line := lineName(text); len(line) > 0 {
				steps = append(steps, transitStep(seg, line))
				continue
			}
		}

		dropped = append(dropped, seg)
	}

	return steps, dropped
}

func walkKindForPosition(idx int, count int) StepKind {
	if idx == 0 {
		return StepWalkToStation
	} else if idx == count-1 {
		return StepWalkFromStation
	}
	return StepTransferWalk
}

func walkStep(seg *Segment, kind StepKind) *Step {
	step := &Step{
		Kind:      kind,
		Timestamp: seg.Timestamp,
		Station:   stationName(seg.Lines),
	}

	for _, line := range seg.Lines {
		if !step.HasWalkMinutes {
			if minutes, ok := ParseDuration(line); ok {
				step.WalkMinutes = minutes
				step.HasWalkMinutes = true
			}
		}
		if step.DistanceMeters == 0 {
			step.DistanceMeters = parseDistance(line)
		}
	}

	return step
}

func transitStep(seg *Segment, line string) *Step {
	step := &Step{
		Kind:      StepTransit,
		Timestamp: seg.Timestamp,
		Station:   stationName(seg.Lines),
		Line:      line,
	}

	for _, l := range seg.Lines {
		folded := foldWidth(l)

		if matched := stopCountRegex.FindStringSubmatch(folded); matched != nil && step.StopCount == 0 {
			step.StopCount, _ = strconv.Atoi(matched[1])
			continue
		}
		if !step.HasRideMinutes {
			if minutes, ok := ParseDuration(folded); ok {
				step.RideMinutes = minutes
				step.HasRideMinutes = true
			}
		}
	}

	return step
}

// lineName returns the leading run of the first line that names a line, up to and including
// the first line suffix. Service qualifiers follow the suffix, so "銀座線各停渋谷行" yields "銀座線"
// and "小田急線各停本厚木行" yields "小田急線".
func lineName(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, postalMark) {
			continue
		}
		if matched := lineNameRegex.FindString(line); len(matched) > 0 {
			return matched
		}
	}
	return ""
}

// stationName returns the first line naming a station, normalized.
func stationName(lines []string) string {
	for _, line := range lines {
		if isStationLine(line) {
			return NormalizeStation(line)
		}
	}
	return ""
}

func isStationLine(line string) bool {
	if !strings.Contains(line, stationSuffix) {
		return false
	}
	if strings.HasPrefix(line, postalMark) || strings.Contains(line, walkIndicator) {
		return false
	}

	// Station names may contain 分 (国分寺, 分倍河原); only a duration phrase disqualifies the line.
	folded := foldWidth(line)
	return !durationRegex.MatchString(folded) && !stopCountRegex.MatchString(folded)
}

// NormalizeStation strips the trailing station suffix from a station name.
func NormalizeStation(name string) string {
	name = strings.TrimSpace(name)
	return strings.TrimSpace(strings.TrimSuffix(name, stationSuffix))
}

// parseDistance returns the walking distance in metres, or 0 if none is present.
func parseDistance(line string) int {
	matched := distanceRegex.FindStringSubmatch(foldWidth(line))
	if matched == nil {
		return 0
	}

	val, err := strconv.ParseFloat(matched[1], 64)
	if err != nil {
		return 0
	}
	if matched[2] == "km" {
		val *= 1000
	}
	return int(val + 0.5)
}

package panel

import (
	"errors"
)

var (
	// ErrEmptyRoute is returned if there are no classified steps to assemble.
	ErrEmptyRoute = errors.New("no route steps to assemble")
)

// Assembly carries the intermediate results of assembling a route.
type Assembly struct {
	// Steps are the classified steps after walk kinds were corrected for their position.
	Steps []*Step
	// ComputedMinutes is the end-to-end duration summed from walks, waits and rides.
	ComputedMinutes int
	// TotalDrift is the header total minus ComputedMinutes, when the header has a total.
	TotalDrift int
	// Departure and Arrival come from the header when it has times. Otherwise the trip starts
	// at the first step and arrives the route total later.
	Departure Clock
	Arrival   Clock
}

// Assemble stitches the classified steps into a route.
// The header may be nil; when it carries a total, that total is used verbatim.
func Assemble(steps []*Step, header *Header) (*Route, *Assembly, error) {
	if len(steps) < 1 {
		return nil, nil, ErrEmptyRoute
	}
	if header == nil {
		header = &Header{}
	}

	steps = normalizeKinds(steps)
	offsets := timelineOffsets(steps)

	route := newRoute()
	var legOffsets []int

	for idx, step := range steps {
		switch step.Kind {
		case StepWalkToStation:
			route.Details.WalkToStation += walkMinutes(steps, offsets, idx, header)
		case StepWalkFromStation:
			route.Details.WalkFromStation += walkMinutes(steps, offsets, idx, header)
		case StepTransferWalk:
			if len(route.Details.Trains) < 1 {
				continue
			}
			// The line this walk leads to is only known once the next transit step is reached.
			prev := route.Details.Trains[len(route.Details.Trains)-1]
			if prev.TransferAfter == nil {
				prev.TransferAfter = &Transfer{}
			}
			prev.TransferAfter.WalkMinutes += walkMinutes(steps, offsets, idx, header)
		case StepTransit:
			leg := &Leg{
				Line:        step.Line,
				From:        stationOrUnknown(step.Station),
				To:          alightingStation(steps, idx),
				RideMinutes: rideMinutes(steps, offsets, idx, header),
			}

			if count := len(route.Details.Trains); count > 0 {
				prev := route.Details.Trains[count-1]
				if steps[idx-1].Kind == StepTransferWalk && prev.TransferAfter != nil {
					prev.TransferAfter.NextLine = leg.Line
				}

				ready := legOffsets[count-1] + prev.RideMinutes
				if prev.TransferAfter != nil {
					ready += prev.TransferAfter.WalkMinutes
				}
				wait := offsets[idx] - ready
				if wait < 0 {
					wait = 0
				}
				leg.WaitMinutes = &wait
			}

			route.Details.Trains = append(route.Details.Trains, leg)
			legOffsets = append(legOffsets, offsets[idx])
		}
	}

	if !route.WalkOnly() {
		route.Details.StationUsed = route.Details.Trains[0].From
	}

	assembly := &Assembly{
		Steps:           steps,
		ComputedMinutes: computedMinutes(route),
	}

	if header.HasTotal {
		route.TotalMinutes = header.TotalMinutes
		assembly.TotalDrift = header.TotalMinutes - assembly.ComputedMinutes
	} else {
		route.TotalMinutes = assembly.ComputedMinutes
	}

	if header.HasTimes {
		assembly.Departure = header.Departure
		assembly.Arrival = header.Arrival
	} else {
		assembly.Departure = steps[0].Timestamp
		assembly.Arrival = steps[0].Timestamp.Add(route.TotalMinutes)
	}

	return route, assembly, nil
}

// normalizeKinds corrects the positional walk labels against the transit steps around them.
// A walk before the first ride is a walk to the station, a walk after the last ride is a walk
// from the station, and anything in between is a transfer. Positional labels count dropped
// segments, so on a walk-only route the first walk is the walk to the station and any later
// walk is the walk from it. The input steps are not modified.
func normalizeKinds(steps []*Step) []*Step {
	first, last := -1, -1
	for idx, step := range steps {
		if step.Kind == StepTransit {
			if first < 0 {
				first = idx
			}
			last = idx
		}
	}

	ret := make([]*Step, 0, len(steps))
	seenWalk := false
	for idx, step := range steps {
		s := *step
		if s.Kind.IsWalk() {
			switch {
			case first < 0 && !seenWalk:
				s.Kind = StepWalkToStation
			case first < 0:
				s.Kind = StepWalkFromStation
			case idx < first:
				s.Kind = StepWalkToStation
			case idx > last:
				s.Kind = StepWalkFromStation
			default:
				s.Kind = StepTransferWalk
			}
			seenWalk = true
		}
		ret = append(ret, &s)
	}
	return ret
}

// timelineOffsets unrolls the step timestamps into minutes elapsed since the first step.
func timelineOffsets(steps []*Step) []int {
	offsets := make([]int, len(steps))
	for idx := 1; idx < len(steps); idx++ {
		offsets[idx] = offsets[idx-1] + MinutesBetween(steps[idx-1].Timestamp, steps[idx].Timestamp)
	}
	return offsets
}

// untilNext returns the minutes from the step to the next step, or to the header arrival
// time for the final step.
func untilNext(steps []*Step, offsets []int, idx int, header *Header) (int, bool) {
	if idx+1 < len(steps) {
		return offsets[idx+1] - offsets[idx], true
	}
	if header.HasTimes {
		return MinutesBetween(steps[idx].Timestamp, header.Arrival), true
	}
	return 0, false
}

func walkMinutes(steps []*Step, offsets []int, idx int, header *Header) int {
	if steps[idx].HasWalkMinutes {
		return steps[idx].WalkMinutes
	}
	minutes, _ := untilNext(steps, offsets, idx, header)
	return minutes
}

func rideMinutes(steps []*Step, offsets []int, idx int, header *Header) int {
	if idx+1 < len(steps) {
		return offsets[idx+1] - offsets[idx]
	}
	if steps[idx].HasRideMinutes {
		return steps[idx].RideMinutes
	}
	minutes, _ := untilNext(steps, offsets, idx, header)
	return minutes
}

// alightingStation resolves where a ride ends: the station named by the following step,
// else the boarding station of the next ride.
func alightingStation(steps []*Step, idx int) string {
	if idx+1 < len(steps) && len(steps[idx+1].Station) > 0 {
		return steps[idx+1].Station
	}
	for _, step := range steps[idx+1:] {
		if step.Kind == StepTransit && len(step.Station) > 0 {
			return step.Station
		}
	}
	return UnknownStation
}

func stationOrUnknown(station string) string {
	if len(station) < 1 {
		return UnknownStation
	}
	return station
}

func computedMinutes(r *Route) int {
	total := r.Details.WalkToStation + r.Details.WalkFromStation
	for _, leg := range r.Details.Trains {
		total += leg.RideMinutes
		if leg.WaitMinutes != nil {
			total += *leg.WaitMinutes
		}
		if leg.TransferAfter != nil {
			total += leg.TransferAfter.WalkMinutes
		}
	}
	return total
}

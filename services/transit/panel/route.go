package panel

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// UnknownStation is used when a leg's station cannot be resolved from the panel.
	UnknownStation = "unknown"
)

var (
	// ErrNegativeDuration is returned by Validate if any duration is below zero.
	ErrNegativeDuration = errors.New("route contains a negative duration")
	// ErrFirstLegWait is returned by Validate if the first leg carries a wait time.
	ErrFirstLegWait = errors.New("first leg has a wait time")
)

// Route is the assembled commute, serialized in the shape the timeline renderer consumes.
// The total is taken from the panel header when present and is not reconciled with the legs.
type Route struct {
	TotalMinutes int          `json:"total_time"`
	Details      RouteDetails `json:"details"`
}

// RouteDetails holds the walking and riding breakdown of a route.
type RouteDetails struct {
	WalkToStation   int    `json:"walk_to_station"`
	StationUsed     string `json:"station_used"`
	Trains          []*Leg `json:"trains"`
	WalkFromStation int    `json:"walk_from_station"`
}

// Leg is one boarded vehicle.
type Leg struct {
	Line        string `json:"line"`
	RideMinutes int    `json:"time"`
	From        string `json:"from"`
	To          string `json:"to"`
	// WaitMinutes is never set on the first leg.
	WaitMinutes   *int      `json:"wait_time,omitempty"`
	TransferAfter *Transfer `json:"transfer_after,omitempty"`
}

// Transfer is the walk following a leg and the line it leads to.
type Transfer struct {
	WalkMinutes int    `json:"time"`
	NextLine    string `json:"to_line"`
}

func newRoute() *Route {
	return &Route{
		Details: RouteDetails{
			Trains: []*Leg{},
		},
	}
}

// WalkOnly returns true if the route has no transit legs.
func (r *Route) WalkOnly() bool {
	return len(r.Details.Trains) < 1
}

// Validate checks the invariants every assembled route must hold.
func (r *Route) Validate() error {
	if r.TotalMinutes < 0 || r.Details.WalkToStation < 0 || r.Details.WalkFromStation < 0 {
		return ErrNegativeDuration
	}

	for idx, leg := range r.Details.Trains {
		if leg.RideMinutes < 0 {
			return ErrNegativeDuration
		}
		if leg.WaitMinutes != nil {
			if idx == 0 {
				return ErrFirstLegWait
			}
			if *leg.WaitMinutes < 0 {
				return ErrNegativeDuration
			}
		}
		if leg.TransferAfter != nil && leg.TransferAfter.WalkMinutes < 0 {
			return ErrNegativeDuration
		}
	}

	return nil
}

// Copy returns a deep copy of the route.
func (r *Route) Copy() *Route {
	if r == nil {
		return nil
	}

	ret := &Route{
		TotalMinutes: r.TotalMinutes,
		Details: RouteDetails{
			WalkToStation:   r.Details.WalkToStation,
			StationUsed:     r.Details.StationUsed,
			WalkFromStation: r.Details.WalkFromStation,
			Trains:          make([]*Leg, 0, len(r.Details.Trains)),
		},
	}

	for _, leg := range r.Details.Trains {
		l := *leg
		if leg.WaitMinutes != nil {
			wait := *leg.WaitMinutes
			l.WaitMinutes = &wait
		}
		if leg.TransferAfter != nil {
			transfer := *leg.TransferAfter
			l.TransferAfter = &transfer
		}
		ret.Details.Trains = append(ret.Details.Trains, &l)
	}

	return ret
}

// String summarizes the route on a single line.
func (r *Route) String() string {
	parts := []string{
		fmt.Sprintf("walk %d", r.Details.WalkToStation),
	}
	for _, leg := range r.Details.Trains {
		part := fmt.Sprintf("%s %s->%s %d", leg.Line, leg.From, leg.To, leg.RideMinutes)
		if leg.WaitMinutes != nil {
			part = fmt.Sprintf("wait %d, %s", *leg.WaitMinutes, part)
		}
		parts = append(parts, part)
		if leg.TransferAfter != nil {
			parts = append(parts, fmt.Sprintf("transfer %d", leg.TransferAfter.WalkMinutes))
		}
	}
	parts = append(parts, fmt.Sprintf("walk %d", r.Details.WalkFromStation))

	return fmt.Sprintf("%d min: %s", r.TotalMinutes, strings.Join(parts, ", "))
}

package panel

import (
	"go.uber.org/zap"
)

// Result is everything recovered from a single panel capture.
type Result struct {
	Route  *Route
	Header *Header
	Steps  []*Step
	// Dropped holds the segments that matched neither the walking nor the transit heuristic.
	Dropped []*Segment
	// TotalDrift is the header total minus the duration summed from the steps.
	TotalDrift int
	Departure  Clock
	Arrival    Clock
}

// Parser turns directions panel text into routes.
// It keeps no state between calls and is safe for concurrent use.
type Parser struct {
	logger *zap.Logger
}

// NewParser creates a new panel parser.
func NewParser(logger *zap.Logger) *Parser {
	return &Parser{
		logger: logger,
	}
}

// Parse tokenizes, classifies and assembles the supplied panel text.
func (p *Parser) Parse(text string) (*Result, error) {
	segments, err := Tokenize(text)
	if err != nil {
		p.logger.Info("unable to tokenize panel text",
			zap.Error(err),
		)
		return nil, err
	}

	header := ParseHeader(HeaderLines(text))
	steps, dropped := Classify(segments)

	for _, seg := range dropped {
		p.logger.Info("dropping unclassified segment",
			zap.String("timestamp", seg.Timestamp.String()),
			zap.Strings("lines", seg.Lines),
		)
	}

	route, assembly, err := Assemble(steps, header)
	if err != nil {
		p.logger.Info("unable to assemble route",
			zap.Int("segment_count", len(segments)),
			zap.Int("dropped_count", len(dropped)),
			zap.Error(err),
		)
		return nil, err
	}

	if header.HasTotal && assembly.TotalDrift != 0 {
		p.logger.Warn("header total differs from step durations",
			zap.Int("header_minutes", header.TotalMinutes),
			zap.Int("computed_minutes", assembly.ComputedMinutes),
			zap.Int("drift", assembly.TotalDrift),
		)
	}

	if err := route.Validate(); err != nil {
		p.logger.Warn("assembled route failed validation",
			zap.String("route", route.String()),
			zap.Error(err),
		)
		return nil, err
	}

	for _, leg := range route.Details.Trains {
		if leg.From == UnknownStation || leg.To == UnknownStation {
			p.logger.Debug("leg has unresolved station",
				zap.String("line", leg.Line),
				zap.String("from", leg.From),
				zap.String("to", leg.To),
			)
		}
	}

	return &Result{
		Route:      route,
		Header:     header,
		Steps:      assembly.Steps,
		Dropped:    dropped,
		TotalDrift: assembly.TotalDrift,
		Departure:  assembly.Departure,
		Arrival:    assembly.Arrival,
	}, nil
}

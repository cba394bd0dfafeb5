// Package export flattens parsed routes into one CSV row per leg for spreadsheet analysis.
package export

import (
	"io"

	"github.com/gocarina/gocsv"
	"github.com/japandatascience/timeline-mapping/services/transit/panel"
)

// LegRecord is a single leg of a route along with the route-level fields it belongs to.
// Walk-only routes produce a single record with an empty line.
type LegRecord struct {
	Label           string `csv:"label"`
	TotalMinutes    int    `csv:"total_time"`
	WalkToStation   int    `csv:"walk_to_station"`
	StationUsed     string `csv:"station_used"`
	WalkFromStation int    `csv:"walk_from_station"`
	Sequence        int    `csv:"leg"`
	Line            string `csv:"line"`
	From            string `csv:"from"`
	To              string `csv:"to"`
	RideMinutes     int    `csv:"time"`
	WaitMinutes     int    `csv:"wait_time"`
	TransferMinutes int    `csv:"transfer_time"`
	TransferToLine  string `csv:"transfer_to_line"`
}

// Records flattens the route into records tagged with the supplied label.
func Records(label string, r *panel.Route) []*LegRecord {
	base := LegRecord{
		Label:           label,
		TotalMinutes:    r.TotalMinutes,
		WalkToStation:   r.Details.WalkToStation,
		StationUsed:     r.Details.StationUsed,
		WalkFromStation: r.Details.WalkFromStation,
	}

	if r.WalkOnly() {
		rec := base
		return []*LegRecord{&rec}
	}

	var records []*LegRecord
	for idx, leg := range r.Details.Trains {
		rec := base
		rec.Sequence = idx + 1
		rec.Line = leg.Line
		rec.From = leg.From
		rec.To = leg.To
		rec.RideMinutes = leg.RideMinutes
		if leg.WaitMinutes != nil {
			rec.WaitMinutes = *leg.WaitMinutes
		}
		if leg.TransferAfter != nil {
			rec.TransferMinutes = leg.TransferAfter.WalkMinutes
			rec.TransferToLine = leg.TransferAfter.NextLine
		}
		records = append(records, &rec)
	}
	return records
}

// WriteCSV writes the records, with a header row, to the supplied writer.
func WriteCSV(w io.Writer, records []*LegRecord) error {
	return gocsv.Marshal(records, w)
}

// ReadCSV reads records previously written by WriteCSV.
func ReadCSV(r io.Reader) ([]*LegRecord, error) {
	var records []*LegRecord
	if err := gocsv.Unmarshal(r, &records); err != nil {
		return nil, err
	}
	return records, nil
}

package routecache

import (
	"strings"
	"time"
)

// Fingerprint identifies a commute search: where it starts, where it ends,
// and roughly when it has to arrive.
type Fingerprint struct {
	Origin      string
	Destination string
	// ArrivalBucket is the arrival time rounded down to the bucket size, in UTC, or empty
	// if the search had no arrival time.
	ArrivalBucket string
}

// NewFingerprint normalizes the supplied addresses and buckets the arrival time.
// A bucket of zero keeps the arrival time to the second.
func NewFingerprint(origin, destination string, arrival time.Time, bucket time.Duration) Fingerprint {
	fp := Fingerprint{
		Origin:      NormalizeAddress(origin),
		Destination: NormalizeAddress(destination),
	}

	if !arrival.IsZero() {
		if bucket > 0 {
			arrival = arrival.Truncate(bucket)
		}
		fp.ArrivalBucket = arrival.UTC().Format(time.RFC3339)
	}

	return fp
}

// Key returns the string the fingerprint is stored under.
func (fp Fingerprint) Key() string {
	return strings.Join([]string{fp.Origin, fp.Destination, fp.ArrivalBucket}, "|")
}

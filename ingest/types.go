package ingest

import (
	"errors"
	"time"
)

// ErrNoRows is returned when no usable alert rows were found across all
// configured sources. An empty dataset must fail loudly rather than
// produce a misleading empty document.
var ErrNoRows = errors.New("no usable alert rows in input")

// RawRecord is one alert-state snapshot row. Many snapshots may exist
// for one logical alert; deduplication picks the one with the latest
// LastModified value.
type RawRecord struct {
	AlertID      string
	RouteID      string
	RouteType    string // GTFS route_type code: "0", "1" or "2"
	Cause        string
	CauseDetail  string
	Effect       string
	EffectDetail string
	Severity     string
	Start        string // active period start, ISO-ish datetime
	End          string // active period end, may be empty
	StartDate    string // YYYY-MM-DD, may be empty (derived if so)
	LastModified string
}

// AlertEvent is the canonical, deduplicated representation of one
// logical alert. Exactly one event exists per alert id; it is read-only
// input to every downstream aggregator.
type AlertEvent struct {
	ID            string
	RouteID       string
	RouteTypeName string
	Cause         string
	Effect        string
	Severity      string
	Start         time.Time
	End           time.Time // zero when the active period is open
	Month         string    // YYYY-MM of Start
	Weekday       int       // 0=Monday .. 6=Sunday
	Hour          int       // 0-23 of Start
	StartDate     string    // YYYY-MM-DD of Start
	DurationHrs   float64   // clamped to [0, MaxDurationHours]
	HasDuration   bool      // false when End is missing
}

// ParseStats counts what happened while reading row sources.
type ParseStats struct {
	Files          int
	Rows           int
	SkippedNonRail int
	Malformed      int
}

// Merge folds another source's stats into s.
func (s *ParseStats) Merge(other ParseStats) {
	s.Files += other.Files
	s.Rows += other.Rows
	s.SkippedNonRail += other.SkippedNonRail
	s.Malformed += other.Malformed
}

// Timestamp layouts accepted in snapshot exports.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseTimestamp parses an ISO-ish datetime string from an export row.
func ParseTimestamp(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

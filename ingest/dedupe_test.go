package ingest

import (
	"reflect"
	"testing"
)

func TestDeduplicateKeepsLatestSnapshot(t *testing.T) {
	early := RawRecord{
		AlertID: "A1", RouteID: "Red", RouteType: "1",
		Cause: "ACCIDENT", Effect: "DELAY", Severity: "WARNING",
		Start: "2025-03-01T08:00:00Z", LastModified: "2025-03-01T08:05:00Z",
	}
	late := early
	late.Severity = "SEVERE"
	late.Effect = "SUSPENSION"
	late.LastModified = "2025-03-01T12:00:00Z"

	tests := []struct {
		name    string
		records []RawRecord
		want    RawRecord
	}{
		{name: "later snapshot wins", records: []RawRecord{early, late}, want: late},
		{name: "order independent", records: []RawRecord{late, early}, want: late},
		{name: "verbatim duplicate is idempotent", records: []RawRecord{late, late, late}, want: late},
		{name: "earlier re-export does not demote winner", records: []RawRecord{late, early, early}, want: late},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			winners := Deduplicate(tt.records)
			if len(winners) != 1 {
				t.Fatalf("expected 1 winner, got %d", len(winners))
			}
			got := winners["A1"]
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("winner mismatch:\n got %+v\nwant %+v", got, tt.want)
			}
		})
	}
}

// Every field of the winner must come from the single row carrying the
// latest last-modified timestamp, with no cross-row field mixing.
func TestDeduplicateFieldConsistency(t *testing.T) {
	first := RawRecord{
		AlertID: "A2", RouteID: "Orange", RouteType: "1",
		Cause: "MAINTENANCE", CauseDetail: "TRACK_WORK",
		Effect: "DELAY", EffectDetail: "DELAY", Severity: "INFO",
		Start: "2025-04-02T06:00:00Z", End: "2025-04-02T09:00:00Z",
		StartDate: "2025-04-02", LastModified: "2025-04-01T23:00:00Z",
	}
	second := RawRecord{
		AlertID: "A2", RouteID: "Orange", RouteType: "1",
		Cause: "TECHNICAL_PROBLEM", CauseDetail: "SIGNAL_PROBLEM",
		Effect: "NO_SERVICE", EffectDetail: "SUSPENSION", Severity: "SEVERE",
		Start: "2025-04-02T06:30:00Z", End: "2025-04-02T11:00:00Z",
		StartDate: "2025-04-02", LastModified: "2025-04-02T07:00:00Z",
	}

	winners := Deduplicate([]RawRecord{first, second})
	if got := winners["A2"]; !reflect.DeepEqual(got, second) {
		t.Errorf("winner mixed fields across rows:\n got %+v\nwant %+v", got, second)
	}
}

func TestDeduplicateTieKeepsFirstSeen(t *testing.T) {
	a := RawRecord{AlertID: "A3", Severity: "INFO", Start: "2025-01-01T00:00:00Z", LastModified: "2025-01-01T01:00:00Z"}
	b := a
	b.Severity = "SEVERE"

	winners := Deduplicate([]RawRecord{a, b})
	if winners["A3"].Severity != "INFO" {
		t.Errorf("tie should keep first seen row, got severity %q", winners["A3"].Severity)
	}
}

func TestDeduplicateDistinctAlerts(t *testing.T) {
	records := []RawRecord{
		{AlertID: "X", LastModified: "2025-01-01T00:00:00Z"},
		{AlertID: "Y", LastModified: "2025-01-02T00:00:00Z"},
		{AlertID: "X", LastModified: "2025-01-03T00:00:00Z"},
	}
	winners := Deduplicate(records)
	if len(winners) != 2 {
		t.Fatalf("expected 2 distinct alerts, got %d", len(winners))
	}
}

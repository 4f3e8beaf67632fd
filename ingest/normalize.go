package ingest

import "sort"

// MaxDurationHours caps alert durations; anything longer (or negative)
// is treated as an outlier and clamped, never discarded.
const MaxDurationHours = 720.0

// DefaultSeverity is assumed when an export row carries no severity.
const DefaultSeverity = "INFO"

// Normalize builds the canonical AlertEvent for a winning record. It
// returns false when the record has no parsable start instant and
// therefore cannot be placed in any aggregate.
func Normalize(rec RawRecord) (AlertEvent, bool) {
	start, ok := ParseTimestamp(rec.Start)
	if !ok {
		return AlertEvent{}, false
	}

	ev := AlertEvent{
		ID:            rec.AlertID,
		RouteID:       rec.RouteID,
		RouteTypeName: RouteTypeNames[rec.RouteType],
		Cause:         CauseAxis.Resolve(rec.CauseDetail, rec.Cause),
		Effect:        EffectAxis.Resolve(rec.EffectDetail, rec.Effect),
		Severity:      rec.Severity,
		Start:         start,
		Month:         start.Format("2006-01"),
		Weekday:       (int(start.Weekday()) + 6) % 7, // Monday=0
		Hour:          start.Hour(),
		StartDate:     rec.StartDate,
	}
	if ev.Severity == "" {
		ev.Severity = DefaultSeverity
	}
	if ev.StartDate == "" {
		ev.StartDate = start.Format("2006-01-02")
	}

	if end, ok := ParseTimestamp(rec.End); ok {
		ev.End = end
		hrs := end.Sub(start).Hours()
		if hrs < 0 {
			hrs = 0
		} else if hrs > MaxDurationHours {
			hrs = MaxDurationHours
		}
		ev.DurationHrs = hrs
		ev.HasDuration = true
	}
	return ev, true
}

// NormalizeWinners converts the dedup winners into events ordered by
// alert id, so downstream aggregation is deterministic run to run.
func NormalizeWinners(winners map[string]RawRecord) []AlertEvent {
	ids := make([]string, 0, len(winners))
	for id := range winners {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	events := make([]AlertEvent, 0, len(ids))
	for _, id := range ids {
		if ev, ok := Normalize(winners[id]); ok {
			events = append(events, ev)
		}
	}
	return events
}

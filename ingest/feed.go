package ingest

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"
)

// ReadFeedSnapshotDir ingests raw GTFS-RT ServiceAlerts FeedMessage
// snapshots (*.pb) as an additional row source. Each snapshot file is
// one export of the whole alerts feed; the feed header timestamp serves
// as the rows' last-modified value so deduplication prefers the newest
// snapshot, exactly as with the CSV exports derived from the same feed.
func ReadFeedSnapshotDir(dir string) ([]RawRecord, ParseStats, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, ParseStats{}, fmt.Errorf("read snapshot dir: %w", err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(strings.ToLower(e.Name()), ".pb") {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)

	var out []RawRecord
	var stats ParseStats
	for _, path := range files {
		b, err := os.ReadFile(path)
		if err != nil {
			log.Printf("WARNING: skipping %s: %v", path, err)
			continue
		}
		recs, st := parseFeedSnapshot(b)
		out = append(out, recs...)
		stats.Merge(st)
	}
	return out, stats, nil
}

// ParseFeedSnapshot converts one serialized FeedMessage into rows, one
// per rail route an alert informs.
func ParseFeedSnapshot(data []byte) ([]RawRecord, ParseStats, error) {
	var fm gtfsrtpb.FeedMessage
	if err := proto.Unmarshal(data, &fm); err != nil {
		return nil, ParseStats{}, fmt.Errorf("unmarshal feed snapshot: %w", err)
	}
	recs, stats := feedMessageToRecords(&fm)
	return recs, stats, nil
}

func parseFeedSnapshot(data []byte) ([]RawRecord, ParseStats) {
	recs, stats, err := ParseFeedSnapshot(data)
	if err != nil {
		log.Printf("WARNING: %v", err)
		return nil, ParseStats{Files: 1}
	}
	return recs, stats
}

func feedMessageToRecords(fm *gtfsrtpb.FeedMessage) ([]RawRecord, ParseStats) {
	stats := ParseStats{Files: 1}

	var snapshotTime time.Time
	if fm.Header != nil && fm.Header.Timestamp != nil {
		snapshotTime = time.Unix(int64(*fm.Header.Timestamp), 0).UTC()
	} else {
		snapshotTime = time.Now().UTC()
	}
	lastModified := snapshotTime.Format(time.RFC3339)

	var out []RawRecord
	for _, e := range fm.Entity {
		if e.Alert == nil {
			continue
		}
		a := e.Alert
		base := RawRecord{LastModified: lastModified}
		if e.Id != nil {
			base.AlertID = *e.Id
		}
		if a.Cause != nil {
			base.Cause = a.Cause.String()
		}
		if a.Effect != nil {
			base.Effect = a.Effect.String()
		}
		if a.SeverityLevel != nil && *a.SeverityLevel != gtfsrtpb.Alert_UNKNOWN_SEVERITY {
			base.Severity = a.SeverityLevel.String()
		}
		if len(a.ActivePeriod) > 0 {
			ap := a.ActivePeriod[0]
			if ap.Start != nil {
				start := time.Unix(int64(*ap.Start), 0).UTC()
				base.Start = start.Format(time.RFC3339)
				base.StartDate = start.Format("2006-01-02")
			}
			if ap.End != nil {
				base.End = time.Unix(int64(*ap.End), 0).UTC().Format(time.RFC3339)
			}
		}

		for _, ie := range a.InformedEntity {
			if ie.RouteId == nil {
				continue
			}
			stats.Rows++
			rec := base
			rec.RouteID = *ie.RouteId
			if ie.RouteType != nil {
				rec.RouteType = strconv.Itoa(int(*ie.RouteType))
			} else {
				rec.RouteType = inferRouteTypeCode(rec.RouteID)
			}
			if !IsRailRouteType(rec.RouteType) {
				stats.SkippedNonRail++
				continue
			}
			if rec.AlertID == "" {
				stats.Malformed++
				continue
			}
			if _, ok := ParseTimestamp(rec.Start); !ok {
				stats.Malformed++
				continue
			}
			out = append(out, rec)
		}
	}
	return out, stats
}

// inferRouteTypeCode maps a known route id back to its route_type code
// when the informed entity omits one. Unknown routes stay out of scope.
func inferRouteTypeCode(routeID string) string {
	if !IsKnownRoute(routeID) {
		return ""
	}
	switch RouteTypeNameForRoute(routeID) {
	case "Commuter Rail":
		return "2"
	case "Green Line":
		return "0"
	default:
		return "1"
	}
}

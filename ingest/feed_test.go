package ingest

import (
	"testing"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"
)

func buildAlertFeed(t *testing.T, headerTS uint64, entities []*gtfsrtpb.FeedEntity) []byte {
	t.Helper()
	fm := &gtfsrtpb.FeedMessage{
		Header: &gtfsrtpb.FeedHeader{
			GtfsRealtimeVersion: proto.String("2.0"),
			Timestamp:           proto.Uint64(headerTS),
		},
		Entity: entities,
	}
	data, err := proto.Marshal(fm)
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func TestParseFeedSnapshot(t *testing.T) {
	routeType := int32(1)
	entity := &gtfsrtpb.FeedEntity{
		Id: proto.String("A100"),
		Alert: &gtfsrtpb.Alert{
			ActivePeriod: []*gtfsrtpb.TimeRange{{
				Start: proto.Uint64(1740993000), // 2025-03-03T09:10:00Z
				End:   proto.Uint64(1741000200), // +2h
			}},
			InformedEntity: []*gtfsrtpb.EntitySelector{{
				RouteId:   proto.String("Red"),
				RouteType: &routeType,
			}},
			Cause:         gtfsrtpb.Alert_ACCIDENT.Enum(),
			Effect:        gtfsrtpb.Alert_SIGNIFICANT_DELAYS.Enum(),
			SeverityLevel: gtfsrtpb.Alert_SEVERE.Enum(),
		},
	}
	data := buildAlertFeed(t, 1741003200, []*gtfsrtpb.FeedEntity{entity})

	records, stats, err := ParseFeedSnapshot(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	rec := records[0]
	if rec.AlertID != "A100" || rec.RouteID != "Red" || rec.RouteType != "1" {
		t.Errorf("identity fields wrong: %+v", rec)
	}
	if rec.Cause != "ACCIDENT" || rec.Effect != "SIGNIFICANT_DELAYS" || rec.Severity != "SEVERE" {
		t.Errorf("category fields wrong: %+v", rec)
	}
	if rec.Start != "2025-03-03T09:10:00Z" || rec.End != "2025-03-03T11:10:00Z" {
		t.Errorf("active period wrong: start=%q end=%q", rec.Start, rec.End)
	}
	if rec.StartDate != "2025-03-03" {
		t.Errorf("start date = %q, want 2025-03-03", rec.StartDate)
	}
	// snapshot time is the rows' last-modified value
	if rec.LastModified != "2025-03-03T12:00:00Z" {
		t.Errorf("last modified = %q, want header timestamp", rec.LastModified)
	}
	if stats.Rows != 1 || stats.SkippedNonRail != 0 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestParseFeedSnapshotDropsNonRail(t *testing.T) {
	busType := int32(3)
	entity := &gtfsrtpb.FeedEntity{
		Id: proto.String("B1"),
		Alert: &gtfsrtpb.Alert{
			ActivePeriod: []*gtfsrtpb.TimeRange{{Start: proto.Uint64(1740993000)}},
			InformedEntity: []*gtfsrtpb.EntitySelector{{
				RouteId:   proto.String("39"),
				RouteType: &busType,
			}},
		},
	}
	data := buildAlertFeed(t, 1741003200, []*gtfsrtpb.FeedEntity{entity})

	records, stats, err := ParseFeedSnapshot(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 0 {
		t.Fatalf("expected bus alert to be dropped, got %+v", records)
	}
	if stats.SkippedNonRail != 1 {
		t.Errorf("skipped non-rail = %d, want 1", stats.SkippedNonRail)
	}
}

func TestParseFeedSnapshotInfersRouteType(t *testing.T) {
	entity := &gtfsrtpb.FeedEntity{
		Id: proto.String("C1"),
		Alert: &gtfsrtpb.Alert{
			ActivePeriod:   []*gtfsrtpb.TimeRange{{Start: proto.Uint64(1740993000)}},
			InformedEntity: []*gtfsrtpb.EntitySelector{{RouteId: proto.String("CR-Lowell")}},
		},
	}
	data := buildAlertFeed(t, 1741003200, []*gtfsrtpb.FeedEntity{entity})

	records, _, err := ParseFeedSnapshot(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 || records[0].RouteType != "2" {
		t.Fatalf("expected CR- prefix to infer commuter rail, got %+v", records)
	}
}

func TestParseFeedSnapshotGarbage(t *testing.T) {
	if _, _, err := ParseFeedSnapshot([]byte("not a protobuf")); err == nil {
		t.Error("expected unmarshal error")
	}
}

// Package ingest turns alert snapshot exports into canonical alert events.
//
// Rows arrive from two sources: monthly CSV exports and optional raw
// GTFS-RT ServiceAlerts protobuf snapshots. Both produce the same
// RawRecord stream. Because a later file can carry a newer snapshot of
// an alert first seen in an earlier file, every row must be read before
// deduplication picks the winning snapshot per alert id; only winners
// are normalized into AlertEvents.
package ingest

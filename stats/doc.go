// Package stats aggregates canonical alert events across independent
// grouping dimensions and computes duration statistics and route
// reliability grades.
//
// Each grouping dimension owns its own set of already-counted composite
// keys, so re-feeding an event (or overlapping snapshot exports) never
// double-counts: any one alert contributes exactly 1 to each dimension.
package stats

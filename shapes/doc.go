// Package shapes fetches and decodes route geometry.
//
// Encoded polylines come from an external shape provider (the MBTA V3
// API, optionally fronted by a local sqlite cache); decoding reproduces
// the standard Google encoded-polyline algorithm at 1e-5 precision. The
// branch is independent of alert aggregation: any failure degrades to
// an empty or partial feature collection, never a failed run.
package shapes

package shapes

import (
	"log"
	"sort"

	"github.com/theoremus-urban-solutions/rail-alerts-digest/ingest"
)

// FeatureProperties describe one route's rendering metadata.
type FeatureProperties struct {
	RouteID     string `json:"routeId"`
	Color       string `json:"color"`
	DisplayName string `json:"displayName"`
	RouteType   string `json:"routeType"`
}

// Geometry is a GeoJSON LineString or MultiLineString.
type Geometry struct {
	Type        string `json:"type"`
	Coordinates any    `json:"coordinates"`
}

// Feature is one route's geometry feature.
type Feature struct {
	Type       string            `json:"type"`
	Properties FeatureProperties `json:"properties"`
	Geometry   Geometry          `json:"geometry"`
}

// FeatureCollection is the routeShapes document value.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// EmptyCollection is the degraded result when geometry could not be
// fetched; the run still produces a valid document.
func EmptyCollection() FeatureCollection {
	return FeatureCollection{Type: "FeatureCollection", Features: []Feature{}}
}

// BuildFeatureCollection decodes each route's encoded polylines into a
// geometry feature. Undecodable polylines are logged and skipped;
// routes with no decodable geometry are omitted.
func BuildFeatureCollection(encodedByRoute map[string][]string) FeatureCollection {
	fc := EmptyCollection()

	routeIDs := make([]string, 0, len(encodedByRoute))
	for id := range encodedByRoute {
		routeIDs = append(routeIDs, id)
	}
	sort.Strings(routeIDs)

	for _, routeID := range routeIDs {
		var lines [][][2]float64
		for _, enc := range encodedByRoute[routeID] {
			coords, err := Decode(enc)
			if err != nil {
				log.Printf("WARNING: route %s: %v", routeID, err)
				continue
			}
			if len(coords) > 0 {
				lines = append(lines, coords)
			}
		}
		if len(lines) == 0 {
			continue
		}

		geom := Geometry{Type: "MultiLineString", Coordinates: lines}
		if len(lines) == 1 {
			geom = Geometry{Type: "LineString", Coordinates: lines[0]}
		}
		fc.Features = append(fc.Features, Feature{
			Type: "Feature",
			Properties: FeatureProperties{
				RouteID:     routeID,
				Color:       ingest.RouteColor(routeID),
				DisplayName: ingest.RouteDisplayName(routeID),
				RouteType:   ingest.RouteTypeNameForRoute(routeID),
			},
			Geometry: geom,
		})
	}
	return fc
}

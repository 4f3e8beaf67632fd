package ingest

import "strings"

// Rail-only scope: the three admitted GTFS route_type codes.
var RouteTypeNames = map[string]string{
	"0": "Green Line",
	"1": "Subway",
	"2": "Commuter Rail",
}

const fallbackRouteColor = "#80276C"

// MBTA official colors.
var routeColors = map[string]string{
	"Red": "#DA291C", "Orange": "#ED8B00", "Blue": "#003DA5",
	"Green-B": "#00843D", "Green-C": "#00843D", "Green-D": "#00843D", "Green-E": "#00843D",
	"Mattapan":     "#DA291C",
	"CR-Worcester": "#80276C", "CR-Fitchburg": "#80276C", "CR-Franklin": "#80276C",
	"CR-Providence": "#80276C", "CR-Newburyport": "#80276C", "CR-NewBedford": "#80276C",
	"CR-Haverhill": "#80276C", "CR-Lowell": "#80276C", "CR-Kingston": "#80276C",
	"CR-Greenbush": "#80276C", "CR-Fairmount": "#80276C", "CR-Needham": "#80276C",
	"CR-Middleborough": "#80276C", "CR-Foxboro": "#80276C",
}

var routeDisplayNames = map[string]string{
	"Red": "Red Line", "Orange": "Orange Line", "Blue": "Blue Line",
	"Green-B": "Green Line B", "Green-C": "Green Line C",
	"Green-D": "Green Line D", "Green-E": "Green Line E",
	"Mattapan":     "Mattapan Trolley",
	"CR-Worcester": "Worcester Line", "CR-Fitchburg": "Fitchburg Line",
	"CR-Franklin": "Franklin/Foxboro Line", "CR-Providence": "Providence/Stoughton Line",
	"CR-Newburyport": "Newburyport/Rockport Line", "CR-NewBedford": "New Bedford Line",
	"CR-Haverhill": "Haverhill Line", "CR-Lowell": "Lowell Line",
	"CR-Kingston": "Kingston Line", "CR-Greenbush": "Greenbush Line",
	"CR-Fairmount": "Fairmount Line", "CR-Needham": "Needham Line",
	"CR-Middleborough": "Middleborough Line", "CR-Foxboro": "Foxboro Line",
}

// IsRailRouteType reports whether the raw route_type code is in scope.
func IsRailRouteType(code string) bool {
	_, ok := RouteTypeNames[code]
	return ok
}

// RouteColor returns the official color for a route id.
func RouteColor(routeID string) string {
	if c, ok := routeColors[routeID]; ok {
		return c
	}
	return fallbackRouteColor
}

// RouteDisplayName returns the rider-facing name for a route id.
func RouteDisplayName(routeID string) string {
	if n, ok := routeDisplayNames[routeID]; ok {
		return n
	}
	return routeID
}

// IsKnownRoute reports whether routeID has a display table entry. Only
// known routes are worth a shape lookup.
func IsKnownRoute(routeID string) bool {
	_, ok := routeColors[routeID]
	return ok
}

// RouteTypeNameForRoute infers the route-type name from a route id,
// used for shape features where no alert row supplies the code.
func RouteTypeNameForRoute(routeID string) string {
	switch {
	case strings.HasPrefix(routeID, "CR-"):
		return "Commuter Rail"
	case strings.HasPrefix(routeID, "Green-"), routeID == "Mattapan":
		return "Green Line"
	default:
		return "Subway"
	}
}

// RouteTypeNameList returns the display names of the admitted route
// types in code order.
func RouteTypeNameList() []string {
	return []string{RouteTypeNames["0"], RouteTypeNames["1"], RouteTypeNames["2"]}
}

package ingest

// CategoryAxis resolves raw category codes to display names by trying
// an ordered list of lookup tables, ending in a constant sentinel.
type CategoryAxis struct {
	tables   []map[string]string // tried in order: detail, then generic
	sentinel string
	// skipDetail lists detail codes that merely echo "unknown" and
	// should defer to the generic table.
	skipDetail map[string]bool
}

// Resolve maps (detailCode, genericCode) to a display name. It never
// fails; unresolvable codes get the axis sentinel.
func (a CategoryAxis) Resolve(detailCode, genericCode string) string {
	codes := []string{detailCode, genericCode}
	for i, table := range a.tables {
		code := codes[i]
		if code == "" || (i == 0 && a.skipDetail[code]) {
			continue
		}
		if name, ok := table[code]; ok {
			return name
		}
	}
	return a.sentinel
}

// Sentinel returns the axis fallback name.
func (a CategoryAxis) Sentinel() string { return a.sentinel }

// CauseAxis resolves cause / cause_detail codes. The detail table is
// richer and preferred, except when the detail merely echoes
// UNKNOWN_CAUSE back.
var CauseAxis = CategoryAxis{
	tables:     []map[string]string{causeDetailDisplay, causeDisplay},
	sentinel:   "Unknown",
	skipDetail: map[string]bool{"UNKNOWN_CAUSE": true},
}

// EffectAxis resolves effect / effect_detail codes.
var EffectAxis = CategoryAxis{
	tables:   []map[string]string{effectDetailDisplay, effectDisplay},
	sentinel: "Other",
}

// cause_detail -> display name (preferred over the generic cause field)
var causeDetailDisplay = map[string]string{
	"DISABLED_TRAIN":           "Disabled Train",
	"SIGNAL_PROBLEM":           "Signal Problem",
	"SIGNAL_ISSUE":             "Signal Problem",
	"MAINTENANCE":              "Maintenance",
	"POLICE_ACTION":            "Police Activity",
	"POLICE_ACTIVITY":          "Police Activity",
	"MEDICAL_EMERGENCY":        "Medical Emergency",
	"SWITCH_PROBLEM":           "Switch Problem",
	"POWER_PROBLEM":            "Power Problem",
	"ACCIDENT":                 "Accident",
	"FIRE_DEPARTMENT_ACTIVITY": "Fire Dept Activity",
	"TRACK_PROBLEM":            "Track Problem",
	"SINGLE_TRACKING":          "Single Tracking",
	"TRACK_WORK":               "Track Work",
	"CONSTRUCTION":             "Construction",
	"SNOW":                     "Weather",
	"SLIPPERY_RAIL":            "Weather",
	"WEATHER":                  "Weather",
	"FLOODING":                 "Weather",
	"TRAFFIC":                  "Traffic",
	"FIRE":                     "Fire",
	"HEAVY_RIDERSHIP":          "Heavy Ridership",
	"SPECIAL_EVENT":            "Special Event",
	"HOLIDAY":                  "Special Event",
	"MECHANICAL_ISSUE":         "Mechanical Issue",
	"SPEED_RESTRICTION":        "Speed Restriction",
	"UNKNOWN_CAUSE":            "Unknown",
}

// Fallback: generic cause field -> display name
var causeDisplay = map[string]string{
	"CONSTRUCTION": "Construction", "MAINTENANCE": "Maintenance",
	"UNKNOWN_CAUSE": "Unknown", "OTHER_CAUSE": "Other",
	"TECHNICAL_PROBLEM": "Technical Problem", "POLICE_ACTIVITY": "Police Activity",
	"ACCIDENT": "Accident", "WEATHER": "Weather",
	"MEDICAL_EMERGENCY": "Medical Emergency", "STRIKE": "Strike",
	"DEMONSTRATION": "Demonstration", "FIRE": "Fire", "FLOOD": "Weather",
	"POWER_PROBLEM": "Power Problem", "SPECIAL_EVENT": "Special Event", "TRAFFIC": "Traffic",
}

// effect_detail -> display name (preferred over the generic effect field)
var effectDetailDisplay = map[string]string{
	"DELAY":             "Delay",
	"TRACK_CHANGE":      "Track Change",
	"CANCELLATION":      "Cancellation",
	"SERVICE_CHANGE":    "Service Change",
	"SHUTTLE":           "Shuttle",
	"ESCALATOR_CLOSURE": "Escalator Closure",
	"ELEVATOR_CLOSURE":  "Elevator Closure",
	"SUSPENSION":        "Suspension",
	"SCHEDULE_CHANGE":   "Schedule Change",
	"STATION_ISSUE":     "Station Issue",
	"STATION_CLOSURE":   "Station Closure",
	"EXTRA_SERVICE":     "Extra Service",
}

// Fallback: generic effect field -> display name
var effectDisplay = map[string]string{
	"DETOUR": "Detour", "ACCESSIBILITY_ISSUE": "Accessibility Issue",
	"OTHER_EFFECT": "Other", "STOP_MOVED": "Stop Moved",
	"UNKNOWN_EFFECT": "Unknown", "SIGNIFICANT_DELAYS": "Significant Delays",
	"NO_SERVICE": "No Service", "MODIFIED_SERVICE": "Modified Service",
	"ADDITIONAL_SERVICE": "Additional Service", "REDUCED_SERVICE": "Reduced Service",
	"SHUTTLE": "Shuttle", "STOP_CLOSURE": "Stop Closure",
	"STATION_CLOSURE": "Station Closure", "DELAY": "Delay",
	"SUSPENSION": "Suspension", "SERVICE_CHANGE": "Service Change",
	"SNOW_ROUTE": "Snow Route", "TRACK_CHANGE": "Track Change",
	"SCHEDULE_CHANGE": "Schedule Change", "CANCELLATION": "Cancellation",
	"EXTRA_SERVICE": "Extra Service", "STATION_ISSUE": "Station Issue",
	"BIKE_ISSUE": "Bike Issue", "PARKING_ISSUE": "Parking Issue",
	"DOCK_ISSUE": "Dock Issue", "ELEVATOR_CLOSURE": "Elevator Closure",
	"ESCALATOR_CLOSURE": "Escalator Closure", "POLICY_CHANGE": "Policy Change",
	"FARE_CHANGE": "Fare Change",
}

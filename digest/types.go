package digest

import (
	"github.com/theoremus-urban-solutions/rail-alerts-digest/shapes"
	"github.com/theoremus-urban-solutions/rail-alerts-digest/stats"
)

// DataRange is the first and last month label covered by the input.
type DataRange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Summary is the headline card of the dashboard.
type Summary struct {
	TotalAlerts      int    `json:"totalAlerts"`
	TotalAlertMonths int    `json:"totalAlertMonths"`
	TopRoute         string `json:"topRoute"`
	TopCause         string `json:"topCause"`
}

// RouteTypeAggregate is the scoped sub-aggregate under byRouteType.
type RouteTypeAggregate struct {
	Causes          []string            `json:"causes"`
	Effects         []string            `json:"effects"`
	CauseTotals     map[string]int      `json:"causeTotals"`
	EffectTotals    map[string]int      `json:"effectTotals"`
	MonthlyCause    map[string][]int    `json:"monthlyCause"`
	MonthlySeverity map[string][]int    `json:"monthlySeverity"`
	MonthlyEffect   map[string][]int    `json:"monthlyEffect"`
	Heatmap         stats.Heatmap       `json:"heatmap"`
	Duration        stats.DurationStats `json:"duration"`
}

// RouteRow is one routeTable record. SevereCount (the "severe" field)
// and DayCount store the grade's raw numerator and denominator so a
// consumer applying a narrower time window can recompute the rate.
type RouteRow struct {
	ID          string              `json:"id"`
	Type        string              `json:"type"`
	Count       int                 `json:"count"`
	AvgSev      float64             `json:"avgSev"`
	TopCause    string              `json:"topCause"`
	TopEffect   string              `json:"topEffect"`
	Severe      int                 `json:"severe"`
	Warning     int                 `json:"warning"`
	Info        int                 `json:"info"`
	Months      map[string]int      `json:"months"`
	MonthlySev  map[string][]int    `json:"monthlySev"`
	Color       string              `json:"color"`
	DisplayName string              `json:"displayName"`
	Duration    stats.DurationStats `json:"duration"`
	Grade       string              `json:"grade"`
	DayCount    int                 `json:"dayCount"`
}

// Document is the self-describing summary the visualization client
// consumes. All month-aligned arrays share the ordering of Months.
type Document struct {
	Generated        string                        `json:"generated"`
	DataRange        DataRange                     `json:"dataRange"`
	Summary          Summary                       `json:"summary"`
	Months           []string                      `json:"months"`
	DaysPerMonth     []int                         `json:"daysPerMonth"`
	Causes           []string                      `json:"causes"`
	Effects          []string                      `json:"effects"`
	CauseTotals      map[string]int                `json:"causeTotals"`
	EffectTotals     map[string]int                `json:"effectTotals"`
	MonthlyCause     map[string][]int              `json:"monthlyCause"`
	MonthlySeverity  map[string][]int              `json:"monthlySeverity"`
	MonthlyRouteType map[string][]int              `json:"monthlyRouteType"`
	MonthlyEffect    map[string][]int              `json:"monthlyEffect"`
	Heatmap          stats.Heatmap                 `json:"heatmap"`
	ByRouteType      map[string]RouteTypeAggregate `json:"byRouteType"`
	RouteTable       []RouteRow                    `json:"routeTable"`
	RouteTypeNames   []string                      `json:"routeTypeNames"`
	RouteShapes      shapes.FeatureCollection      `json:"routeShapes"`
	Duration         stats.DurationStats           `json:"duration"`
}

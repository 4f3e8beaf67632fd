package digest

import (
	"math"
	"sort"
	"time"

	"github.com/theoremus-urban-solutions/rail-alerts-digest/ingest"
	"github.com/theoremus-urban-solutions/rail-alerts-digest/shapes"
	"github.com/theoremus-urban-solutions/rail-alerts-digest/stats"
)

var severityLevels = []string{"INFO", "WARNING", "SEVERE"}

// Assemble merges the aggregated views and the route geometry into the
// output document.
func Assemble(agg *stats.Aggregator, routeShapes shapes.FeatureCollection, generatedAt time.Time) *Document {
	months := agg.Months()

	daysPerMonth := make([]int, len(months))
	totalDays := 0
	for i, m := range months {
		daysPerMonth[i] = DaysInMonth(m)
		totalDays += daysPerMonth[i]
	}

	topCauses := rankNames(agg.Global.CauseTotals)
	topEffects := rankNames(agg.Global.EffectTotals)

	routeTypeNames := make([]string, 0, len(agg.ByRouteType))
	for name := range agg.ByRouteType {
		routeTypeNames = append(routeTypeNames, name)
	}
	sort.Strings(routeTypeNames)

	byRouteType := make(map[string]RouteTypeAggregate, len(agg.ByRouteType))
	for _, name := range routeTypeNames {
		scope := agg.ByRouteType[name]
		causes := rankNames(scope.CauseTotals)
		effects := rankNames(scope.EffectTotals)
		byRouteType[name] = RouteTypeAggregate{
			Causes:          causes,
			Effects:         effects,
			CauseTotals:     scope.CauseTotals,
			EffectTotals:    scope.EffectTotals,
			MonthlyCause:    buildSeries(scope.MonthlyCause, causes, months),
			MonthlySeverity: buildSeries(scope.MonthlySeverity, severityLevels, months),
			MonthlyEffect:   buildSeries(scope.MonthlyEffect, effects, months),
			Heatmap:         scope.Heatmap,
			Duration:        stats.SummarizeDurations(scope.Durations),
		}
	}

	routeTable := buildRouteTable(agg, months, totalDays)

	doc := &Document{
		Generated: generatedAt.Format(time.RFC3339),
		Summary: Summary{
			TotalAlerts:      agg.TotalAlerts(),
			TotalAlertMonths: agg.AlertMonths(),
		},
		Months:           months,
		DaysPerMonth:     daysPerMonth,
		Causes:           topCauses,
		Effects:          topEffects,
		CauseTotals:      agg.Global.CauseTotals,
		EffectTotals:     agg.Global.EffectTotals,
		MonthlyCause:     buildSeries(agg.Global.MonthlyCause, topCauses, months),
		MonthlySeverity:  buildSeries(agg.Global.MonthlySeverity, severityLevels, months),
		MonthlyRouteType: buildSeries(agg.MonthlyRouteType, routeTypeNames, months),
		MonthlyEffect:    buildSeries(agg.Global.MonthlyEffect, topEffects, months),
		Heatmap:          agg.Global.Heatmap,
		ByRouteType:      byRouteType,
		RouteTable:       routeTable,
		RouteTypeNames:   ingest.RouteTypeNameList(),
		RouteShapes:      routeShapes,
		Duration:         stats.SummarizeDurations(agg.Global.Durations),
	}
	if len(months) > 0 {
		doc.DataRange = DataRange{From: months[0], To: months[len(months)-1]}
	}
	if len(routeTable) > 0 {
		doc.Summary.TopRoute = routeTable[0].ID
	}
	if len(topCauses) > 0 {
		doc.Summary.TopCause = topCauses[0]
	}
	return doc
}

func buildRouteTable(agg *stats.Aggregator, months []string, totalDays int) []RouteRow {
	rows := make([]RouteRow, 0, len(agg.Routes))
	for routeID, rr := range agg.Routes {
		weighted := 0.0
		for sev, n := range rr.Severities {
			weighted += stats.SeverityWeight(sev) * float64(n)
		}
		total := rr.Count
		if total < 1 {
			total = 1
		}

		monthCounts := make(map[string]int, len(months))
		for _, m := range months {
			monthCounts[m] = rr.Months[m]
		}
		monthlySev := make(map[string][]int, len(severityLevels))
		for _, sev := range severityLevels {
			series := make([]int, len(months))
			for i, m := range months {
				if c, ok := rr.MonthlySeverity[m]; ok {
					series[i] = c[sev]
				}
			}
			monthlySev[sev] = series
		}

		rtType := rr.RouteType
		if rtType == "" {
			rtType = "Unknown"
		}
		severe := rr.Severities["SEVERE"]
		rows = append(rows, RouteRow{
			ID:          routeID,
			Type:        rtType,
			Count:       rr.Count,
			AvgSev:      round2(weighted / float64(total)),
			TopCause:    topName(rr.Causes),
			TopEffect:   topName(rr.Effects),
			Severe:      severe,
			Warning:     rr.Severities["WARNING"],
			Info:        rr.Severities["INFO"],
			Months:      monthCounts,
			MonthlySev:  monthlySev,
			Color:       ingest.RouteColor(routeID),
			DisplayName: ingest.RouteDisplayName(routeID),
			Duration:    stats.SummarizeDurations(rr.Durations),
			Grade:       stats.GradeFromCounts(severe, totalDays),
			DayCount:    totalDays,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].ID < rows[j].ID
	})
	return rows
}

// buildSeries aligns a monthly counter to the month axis for each
// category name.
func buildSeries(mc stats.MonthlyCounter, names, months []string) map[string][]int {
	out := make(map[string][]int, len(names))
	for _, name := range names {
		series := make([]int, len(months))
		for i, m := range months {
			if c, ok := mc[m]; ok {
				series[i] = c[name]
			}
		}
		out[name] = series
	}
	return out
}

// rankNames orders names by descending count, ties alphabetical.
func rankNames(c stats.Counter) []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if c[names[i]] != c[names[j]] {
			return c[names[i]] > c[names[j]]
		}
		return names[i] < names[j]
	})
	return names
}

func topName(c stats.Counter) string {
	ranked := rankNames(c)
	if len(ranked) == 0 {
		return ""
	}
	return ranked[0]
}

// DaysInMonth returns the calendar length of a YYYY-MM label,
// leap-aware; unparsable labels report 30.
func DaysInMonth(label string) int {
	t, err := time.Parse("2006-01", label)
	if err != nil {
		return 30
	}
	return t.AddDate(0, 1, -1).Day()
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

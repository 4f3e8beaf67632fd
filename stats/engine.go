package stats

import (
	"sort"

	"github.com/theoremus-urban-solutions/rail-alerts-digest/ingest"
)

// Counter tallies occurrences per display name.
type Counter map[string]int

// MonthlyCounter tallies per month label, then per display name.
type MonthlyCounter map[string]Counter

// Heatmap is a day-of-week x hour-of-day occurrence matrix,
// rows Monday..Sunday, columns 0..23.
type Heatmap [7][24]int

// Inc bumps a monthly counter cell.
func (m MonthlyCounter) Inc(month, name string) {
	c, ok := m[month]
	if !ok {
		c = Counter{}
		m[month] = c
	}
	c[name]++
}

// Scope holds the counters shared by the global view and each
// per-route-type view.
type Scope struct {
	MonthlyCause    MonthlyCounter
	MonthlySeverity MonthlyCounter
	MonthlyEffect   MonthlyCounter
	CauseTotals     Counter
	EffectTotals    Counter
	SeverityTotals  Counter
	Heatmap         Heatmap
	Durations       []float64
}

func newScope() *Scope {
	return &Scope{
		MonthlyCause:    MonthlyCounter{},
		MonthlySeverity: MonthlyCounter{},
		MonthlyEffect:   MonthlyCounter{},
		CauseTotals:     Counter{},
		EffectTotals:    Counter{},
		SeverityTotals:  Counter{},
	}
}

func (s *Scope) count(ev ingest.AlertEvent) {
	s.MonthlyCause.Inc(ev.Month, ev.Cause)
	s.MonthlySeverity.Inc(ev.Month, ev.Severity)
	s.MonthlyEffect.Inc(ev.Month, ev.Effect)
	s.CauseTotals[ev.Cause]++
	s.EffectTotals[ev.Effect]++
	s.SeverityTotals[ev.Severity]++
	if ev.HasDuration {
		s.Durations = append(s.Durations, ev.DurationHrs)
	}
}

// RouteRollup accumulates the per-route view behind the route table.
type RouteRollup struct {
	RouteType       string
	Count           int
	Causes          Counter
	Effects         Counter
	Severities      Counter
	Months          Counter
	MonthlySeverity MonthlyCounter
	Durations       []float64
}

// Composite dedup keys, one type per grouping dimension.
type (
	globalKey    struct{ alert, month string }
	routeTypeKey struct{ alert, month, routeType string }
	routeKey     struct{ alert, month, route string }
	heatmapKey   struct{ alert, date string }
	heatmapRTKey struct{ alert, date, routeType string }
)

// Aggregator owns all in-run aggregation state: the four grouping
// dimensions (plus the scoped heatmap) and their dedup key sets. One
// instance serves one batch run and is discarded after assembly.
type Aggregator struct {
	Global           *Scope
	MonthlyRouteType MonthlyCounter
	ByRouteType      map[string]*Scope
	Routes           map[string]*RouteRollup

	months map[string]struct{}
	alerts map[string]struct{}

	seenGlobal    map[globalKey]struct{}
	seenRouteType map[routeTypeKey]struct{}
	seenRoute     map[routeKey]struct{}
	seenHeatmap   map[heatmapKey]struct{}
	seenHeatmapRT map[heatmapRTKey]struct{}
}

// NewAggregator returns an empty aggregator ready for one run.
func NewAggregator() *Aggregator {
	return &Aggregator{
		Global:           newScope(),
		MonthlyRouteType: MonthlyCounter{},
		ByRouteType:      map[string]*Scope{},
		Routes:           map[string]*RouteRollup{},
		months:           map[string]struct{}{},
		alerts:           map[string]struct{}{},
		seenGlobal:       map[globalKey]struct{}{},
		seenRouteType:    map[routeTypeKey]struct{}{},
		seenRoute:        map[routeKey]struct{}{},
		seenHeatmap:      map[heatmapKey]struct{}{},
		seenHeatmapRT:    map[heatmapRTKey]struct{}{},
	}
}

// Add feeds one canonical event into every dimension. Calling Add twice
// with the same event is a no-op the second time; the key sets enforce
// at-most-once counting per dimension.
func (a *Aggregator) Add(ev ingest.AlertEvent) {
	a.months[ev.Month] = struct{}{}
	a.alerts[ev.ID] = struct{}{}

	gk := globalKey{ev.ID, ev.Month}
	if _, dup := a.seenGlobal[gk]; !dup {
		a.seenGlobal[gk] = struct{}{}
		a.Global.count(ev)
		a.MonthlyRouteType.Inc(ev.Month, ev.RouteTypeName)
	}

	rtk := routeTypeKey{ev.ID, ev.Month, ev.RouteTypeName}
	if _, dup := a.seenRouteType[rtk]; !dup {
		a.seenRouteType[rtk] = struct{}{}
		scope, ok := a.ByRouteType[ev.RouteTypeName]
		if !ok {
			scope = newScope()
			a.ByRouteType[ev.RouteTypeName] = scope
		}
		scope.count(ev)
	}

	hk := heatmapKey{ev.ID, ev.StartDate}
	if _, dup := a.seenHeatmap[hk]; !dup {
		a.seenHeatmap[hk] = struct{}{}
		a.Global.Heatmap[ev.Weekday][ev.Hour]++
	}
	hrtk := heatmapRTKey{ev.ID, ev.StartDate, ev.RouteTypeName}
	if _, dup := a.seenHeatmapRT[hrtk]; !dup {
		a.seenHeatmapRT[hrtk] = struct{}{}
		if scope, ok := a.ByRouteType[ev.RouteTypeName]; ok {
			scope.Heatmap[ev.Weekday][ev.Hour]++
		}
	}

	if ev.RouteID == "" {
		return
	}
	rk := routeKey{ev.ID, ev.Month, ev.RouteID}
	if _, dup := a.seenRoute[rk]; dup {
		return
	}
	a.seenRoute[rk] = struct{}{}
	rr, ok := a.Routes[ev.RouteID]
	if !ok {
		rr = &RouteRollup{
			Causes:          Counter{},
			Effects:         Counter{},
			Severities:      Counter{},
			Months:          Counter{},
			MonthlySeverity: MonthlyCounter{},
		}
		a.Routes[ev.RouteID] = rr
	}
	rr.Count++
	rr.Causes[ev.Cause]++
	rr.Effects[ev.Effect]++
	rr.Severities[ev.Severity]++
	rr.Months[ev.Month]++
	rr.MonthlySeverity.Inc(ev.Month, ev.Severity)
	if ev.RouteTypeName != "" {
		rr.RouteType = ev.RouteTypeName
	}
	if ev.HasDuration {
		rr.Durations = append(rr.Durations, ev.DurationHrs)
	}
}

// Months returns the sorted month labels observed.
func (a *Aggregator) Months() []string {
	return sortedKeys(a.months)
}

// TotalAlerts returns the number of distinct alert ids fed in.
func (a *Aggregator) TotalAlerts() int { return len(a.alerts) }

// AlertMonths returns the size of the global (alert, month) key set.
func (a *Aggregator) AlertMonths() int { return len(a.seenGlobal) }

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

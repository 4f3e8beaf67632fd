package stats

// Severity weights for the route table's average-severity column.
// Unrecognized labels weigh as INFO.
var severityWeights = map[string]float64{
	"INFO":    1,
	"WARNING": 2,
	"SEVERE":  3,
}

// SeverityWeight returns the numeric weight of a severity label.
func SeverityWeight(label string) float64 {
	if w, ok := severityWeights[label]; ok {
		return w
	}
	return 1
}

// Grade classifies a route's reliability from its rate of SEVERE alerts
// per calendar day. Upper bounds are half-open: 0.2/day is a B, not an A.
func Grade(severePerDay float64) string {
	switch {
	case severePerDay < 0.2:
		return "A"
	case severePerDay < 1.0:
		return "B"
	case severePerDay < 3.0:
		return "C"
	case severePerDay < 6.0:
		return "D"
	default:
		return "F"
	}
}

// GradeFromCounts derives the grade from the raw numerator/denominator.
// Callers with a narrower time window should recompute the rate from
// the stored severe count and their own day count rather than reuse a
// grade computed over the full period.
func GradeFromCounts(severeCount, dayCount int) string {
	if dayCount <= 0 {
		return Grade(0)
	}
	return Grade(float64(severeCount) / float64(dayCount))
}

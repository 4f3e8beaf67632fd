package stats

import "testing"

func TestGradeBoundaries(t *testing.T) {
	tests := []struct {
		severePerDay float64
		want         string
	}{
		{0, "A"},
		{0.19, "A"},
		{0.2, "B"},
		{0.99, "B"},
		{1.0, "C"},
		{2.99, "C"},
		{3.0, "D"},
		{5.99, "D"},
		{6.0, "F"},
		{42, "F"},
	}

	for _, tt := range tests {
		if got := Grade(tt.severePerDay); got != tt.want {
			t.Errorf("Grade(%v) = %q, want %q", tt.severePerDay, got, tt.want)
		}
	}
}

func TestGradeFromCounts(t *testing.T) {
	tests := []struct {
		name     string
		severe   int
		days     int
		want     string
	}{
		{name: "rate below A threshold", severe: 5, days: 31, want: "A"},
		{name: "one per day", severe: 31, days: 31, want: "C"},
		{name: "zero days does not divide", severe: 10, days: 0, want: "A"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GradeFromCounts(tt.severe, tt.days); got != tt.want {
				t.Errorf("GradeFromCounts(%d, %d) = %q, want %q", tt.severe, tt.days, got, tt.want)
			}
		})
	}
}

func TestSeverityWeight(t *testing.T) {
	if SeverityWeight("SEVERE") != 3 || SeverityWeight("WARNING") != 2 || SeverityWeight("INFO") != 1 {
		t.Error("known severity weights wrong")
	}
	if SeverityWeight("MYSTERY") != 1 {
		t.Error("unknown labels should weigh as INFO")
	}
}

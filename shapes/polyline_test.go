package shapes

import (
	"math"
	"testing"
)

// Reference fixture from Google's polyline encoding documentation.
const referenceEncoded = "_p~iF~ps|U_ulLnnqC_mqNvxq`@"

var referenceDecoded = [][2]float64{
	{-120.2, 38.5},
	{-120.95, 40.7},
	{-126.453, 43.252},
}

func TestDecodeReferencePolyline(t *testing.T) {
	coords, err := Decode(referenceEncoded)
	if err != nil {
		t.Fatal(err)
	}
	if len(coords) != len(referenceDecoded) {
		t.Fatalf("decoded %d points, want %d", len(coords), len(referenceDecoded))
	}
	for i, want := range referenceDecoded {
		got := coords[i]
		if math.Abs(got[0]-want[0]) > 1e-9 || math.Abs(got[1]-want[1]) > 1e-9 {
			t.Errorf("point %d = [%v, %v], want [%v, %v]", i, got[0], got[1], want[0], want[1])
		}
	}
}

func TestDecodeEdgeCases(t *testing.T) {
	tests := []struct {
		name    string
		encoded string
		wantLen int
		wantErr bool
	}{
		{name: "empty string", encoded: "", wantLen: 0},
		{name: "single point", encoded: "_p~iF~ps|U", wantLen: 1},
		{name: "truncated mid-coordinate", encoded: "_p~iF~", wantErr: true},
		{name: "byte below bias", encoded: "_p~iF~ps|U\x1f", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			coords, err := Decode(tt.encoded)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if len(coords) != tt.wantLen {
				t.Errorf("got %d points, want %d", len(coords), tt.wantLen)
			}
		})
	}
}

func TestBuildFeatureCollection(t *testing.T) {
	fc := BuildFeatureCollection(map[string][]string{
		"Red":       {referenceEncoded},
		"CR-Lowell": {referenceEncoded, referenceEncoded},
		"Orange":    {"_p~iF~"}, // undecodable: omitted
	})

	if len(fc.Features) != 2 {
		t.Fatalf("expected 2 features, got %d", len(fc.Features))
	}
	// Sorted by route id: CR-Lowell first.
	cr := fc.Features[0]
	if cr.Properties.RouteID != "CR-Lowell" || cr.Geometry.Type != "MultiLineString" {
		t.Errorf("CR-Lowell feature wrong: %+v", cr)
	}
	if cr.Properties.RouteType != "Commuter Rail" || cr.Properties.DisplayName != "Lowell Line" {
		t.Errorf("CR-Lowell properties wrong: %+v", cr.Properties)
	}
	red := fc.Features[1]
	if red.Properties.RouteID != "Red" || red.Geometry.Type != "LineString" {
		t.Errorf("Red feature wrong: %+v", red)
	}
	if red.Properties.Color != "#DA291C" {
		t.Errorf("Red color = %q", red.Properties.Color)
	}
}

func TestEmptyCollection(t *testing.T) {
	fc := EmptyCollection()
	if fc.Type != "FeatureCollection" || fc.Features == nil || len(fc.Features) != 0 {
		t.Errorf("empty collection malformed: %+v", fc)
	}
}

package resolver

import (
	"testing"

	"github.com/samikd35/RebootEarth-Dana/internal/models"
)

func TestSynthesizeFeaturesDeterministic(t *testing.T) {
	a, zoneA := synthesizeFeatures(9.0320, 38.7469)
	b, zoneB := synthesizeFeatures(9.0320, 38.7469)

	if a != b {
		t.Errorf("same coordinate produced different vectors: %+v vs %+v", a, b)
	}
	if zoneA != zoneB {
		t.Errorf("same coordinate produced different zones: %s vs %s", zoneA, zoneB)
	}
}

func TestSynthesizeFeaturesRoundsCoordinates(t *testing.T) {
	// Both coordinates round to 9.032, so they must share a hash and a
	// vector.
	a, _ := synthesizeFeatures(9.03201, 38.74692)
	b, _ := synthesizeFeatures(9.03202, 38.74694)
	if a != b {
		t.Errorf("coordinates within the rounding step diverged: %+v vs %+v", a, b)
	}
}

func TestSynthesizeFeaturesWithinRanges(t *testing.T) {
	coords := [][2]float64{
		{9.0320, 38.7469},
		{0, 0},
		{-33.8688, 151.2093},
		{51.5074, -0.1278},
		{7.9465, -1.0232},
		{28.6139, 77.2090},
		{-1.2921, 36.8219},
		{13.4967, 39.4697},
	}
	for _, c := range coords {
		features, zoneName := synthesizeFeatures(c[0], c[1])
		if zoneName == "" {
			t.Errorf("synthesizeFeatures(%v, %v) returned empty zone", c[0], c[1])
		}
		for i, v := range features.Values() {
			name := models.FeatureNames[i]
			bounds := models.FeatureRanges[name]
			if v < bounds.Min || v > bounds.Max {
				t.Errorf("synthesizeFeatures(%v, %v) %s = %v, outside [%v, %v]",
					c[0], c[1], name, v, bounds.Min, bounds.Max)
			}
		}
	}
}

func TestZoneFor(t *testing.T) {
	cases := []struct {
		h    float64
		want string
	}{
		{0.0, "Rice"},
		{0.149, "Rice"},
		{0.15, "Maize"},
		{0.30, "Fruit"},
		{0.45, "Legume"},
		{0.60, "Tropical"},
		{0.75, "Cotton/Cash"},
		{0.9999, "Cotton/Cash"},
	}
	for _, tc := range cases {
		if got := zoneFor(tc.h).Name; got != tc.want {
			t.Errorf("zoneFor(%v) = %s, want %s", tc.h, got, tc.want)
		}
	}
}

func TestCoordHashRange(t *testing.T) {
	coords := [][2]float64{{0, 0}, {9.032, 38.7469}, {-89.999, 179.999}, {45.5, -122.6}}
	for _, c := range coords {
		h := coordHash(c[0], c[1])
		if h < 0 || h >= 1 {
			t.Errorf("coordHash(%v, %v) = %v, want [0, 1)", c[0], c[1], h)
		}
	}
}

func TestZoneTableCoversHashSpace(t *testing.T) {
	prev := 0.0
	for _, z := range zoneTable {
		if z.Lower != prev {
			t.Errorf("zone %s starts at %v, want %v (gap or overlap)", z.Name, z.Lower, prev)
		}
		if z.Upper <= z.Lower {
			t.Errorf("zone %s has inverted bounds [%v, %v)", z.Name, z.Lower, z.Upper)
		}
		prev = z.Upper
	}
	if prev != 1.0 {
		t.Errorf("zone table ends at %v, want 1.0", prev)
	}
}

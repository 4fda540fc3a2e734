package wordoverlap

import (
	"math"
	"testing"
)

func TestJaccard(t *testing.T) {
	tests := []struct {
		name     string
		a, b     string
		expected float64
	}{
		{name: "Both empty", a: "", b: "", expected: 0},
		{name: "One empty", a: "", b: "fix potholes", expected: 0},
		{name: "Only short tokens", a: "a to in", b: "a to in", expected: 0},
		{name: "Identical", a: "ban plastic bags", b: "ban plastic bags", expected: 1},
		{name: "Reordered", a: "plastic bags ban", b: "ban plastic bags", expected: 1},
		{name: "Disjoint", a: "improve bike lanes", b: "fix potholes", expected: 0},
		{name: "Short tokens ignored", a: "fix potholes on main st", b: "fix potholes on main street", expected: 3.0 / 4.0},
		{name: "Duplicates collapse", a: "bags bags bags", b: "bags", expected: 1},
		{name: "Partial overlap", a: "ban plastic bags in stores", b: "ban singleuse plastic bags", expected: 3.0 / 5.0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Jaccard(tc.a, tc.b)
			if math.Abs(got-tc.expected) > 1e-9 {
				t.Errorf("Jaccard(%q, %q) = %v, expected %v", tc.a, tc.b, got, tc.expected)
			}
			if rev := Jaccard(tc.b, tc.a); math.Abs(rev-got) > 1e-12 {
				t.Errorf("Jaccard not symmetric: %v vs %v", got, rev)
			}
		})
	}
}

func TestTokensUsesRuneLength(t *testing.T) {
	// "ñu" is two runes but three bytes and must be dropped.
	set := Tokens("ñu calle")
	if _, ok := set["ñu"]; ok {
		t.Errorf("expected two-rune token to be dropped")
	}
	if _, ok := set["calle"]; !ok {
		t.Errorf("expected token %q to be kept", "calle")
	}
}

func TestMetricName(t *testing.T) {
	if New().Name() != Name {
		t.Errorf("unexpected name %q", New().Name())
	}
}

package editdistance

import (
	"math"
	"testing"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		a, b     string
		expected int
	}{
		{a: "", b: "", expected: 0},
		{a: "", b: "abc", expected: 3},
		{a: "kitten", b: "sitting", expected: 3},
		{a: "flaw", b: "lawn", expected: 2},
		{a: "pothole", b: "pothloe", expected: 2},
		{a: "straße", b: "strasse", expected: 2},
	}

	for _, tc := range tests {
		if got := Distance(tc.a, tc.b); got != tc.expected {
			t.Errorf("Distance(%q, %q) = %d, expected %d", tc.a, tc.b, got, tc.expected)
		}
		if got := Distance(tc.b, tc.a); got != tc.expected {
			t.Errorf("Distance(%q, %q) = %d, expected %d", tc.b, tc.a, got, tc.expected)
		}
	}
}

func TestRatio(t *testing.T) {
	tests := []struct {
		name     string
		a, b     string
		expected float64
	}{
		{name: "Both empty", a: "", b: "", expected: 1},
		{name: "Left empty", a: "", b: "potholes", expected: 0},
		{name: "Right empty", a: "potholes", b: "", expected: 0},
		{name: "Equal", a: "fix potholes", b: "fix potholes", expected: 1},
		{name: "One substitution", a: "fix potholes", b: "fix pothodes", expected: 1 - 1.0/12.0},
		{name: "Classic", a: "kitten", b: "sitting", expected: 1 - 3.0/7.0},
		{name: "Completely different", a: "abc", b: "xyz", expected: 0},
		{name: "Rune lengths", a: "café", b: "cafe", expected: 1 - 1.0/4.0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Ratio(tc.a, tc.b)
			if math.Abs(got-tc.expected) > 1e-9 {
				t.Errorf("Ratio(%q, %q) = %v, expected %v", tc.a, tc.b, got, tc.expected)
			}
			if got < 0 || got > 1 {
				t.Errorf("Ratio out of range: %v", got)
			}
		})
	}
}

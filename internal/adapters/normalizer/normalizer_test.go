package normalizer

import (
	"strings"
	"sync"
	"testing"
)

func TestDefaultNormalizer(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "Empty", input: "", expected: ""},
		{name: "Only whitespace", input: " \t\n ", expected: ""},
		{name: "Only punctuation", input: "?!...,", expected: ""},
		{name: "Lower-cases", input: "Fix Potholes", expected: "fix potholes"},
		{name: "Hyphen is removed, not spaced", input: "single-use", expected: "singleuse"},
		{name: "Collapses and trims", input: "  Ban   plastic\tbags \n", expected: "ban plastic bags"},
		{name: "Punctuation between spaces", input: "Parks - and - Rec!", expected: "parks and rec"},
		{name: "Keeps digits", input: "Route 66 bus, #12", expected: "route 66 bus 12"},
		{name: "Keeps non-ASCII letters", input: "Straße in München", expected: "straße in münchen"},
		{name: "Drops underscore", input: "main_street", expected: "mainstreet"},
	}

	n := NewDefaultNormalizer()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := n.Normalize(tc.input)
			if got != tc.expected {
				t.Errorf("Normalize(%q) = %q, expected %q", tc.input, got, tc.expected)
			}
		})
	}
}

func TestNormalizersAreIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"Ban single-use plastic bags",
		"  FIX   the   potholes!!! on Main St. ",
		"Crème brûlée stand at the Café",
		"İstanbul ΣΊΣΥΦΟΣ",
		"tabs\tand\nnewlines\r\nmixed",
		"emoji 🚲 lanes ✨ now",
	}

	factory := NewNormalizerFactory()
	for _, typ := range []NormalizerType{DefaultNormalizerType, FoldingNormalizerType} {
		n := factory.CreateNormalizer(typ)
		for _, in := range inputs {
			once := n.Normalize(in)
			twice := n.Normalize(once)
			if once != twice {
				t.Errorf("%s: not idempotent for %q: %q then %q", typ, in, once, twice)
			}
			if strings.Contains(once, "  ") || strings.TrimSpace(once) != once {
				t.Errorf("%s: whitespace not collapsed for %q: %q", typ, in, once)
			}
		}
	}
}

func TestFoldingNormalizer(t *testing.T) {
	n := NewFoldingNormalizer()

	if got := n.Normalize("Café Crème"); got != "cafe creme" {
		t.Errorf("expected accents folded, got %q", got)
	}
	if n.Normalize("Señal rota en la Avenida") != n.Normalize("senal rota en la avenida") {
		t.Errorf("expected accented and plain titles to normalize equally")
	}
}

func TestParseType(t *testing.T) {
	tests := []struct {
		input    string
		expected NormalizerType
		wantErr  bool
	}{
		{input: "", expected: DefaultNormalizerType},
		{input: "default", expected: DefaultNormalizerType},
		{input: " Folding ", expected: FoldingNormalizerType},
		{input: "stemming", wantErr: true},
	}

	for _, tc := range tests {
		got, err := ParseType(tc.input)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseType(%q): expected error", tc.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseType(%q): unexpected error: %v", tc.input, err)
		}
		if got != tc.expected {
			t.Errorf("ParseType(%q) = %v, expected %v", tc.input, got, tc.expected)
		}
	}
}

func TestDefaultNormalizerConcurrentUse(t *testing.T) {
	n := NewDefaultNormalizer()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				if got := n.Normalize("Repair the Bridge, please!"); got != "repair the bridge please" {
					t.Errorf("unexpected result under concurrency: %q", got)
					return
				}
			}
		}()
	}
	wg.Wait()
}

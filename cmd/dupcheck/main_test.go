package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const titles = `Ban plastic bags in stores
Improve bike lanes downtown

ban single use plastic bags now
`

func TestRunRanksStdin(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run([]string{"-query", "Ban single-use plastic bags"}, strings.NewReader(titles), &stdout, &stderr)
	if err != nil {
		t.Fatalf("unexpected error: %v (stderr: %s)", err, stderr.String())
	}

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 result lines, got %q", stdout.String())
	}
	if !strings.HasSuffix(lines[0], "4: ban single use plastic bags now") {
		t.Errorf("expected line 4 first, got %q", lines[0])
	}
	if !strings.HasSuffix(lines[1], "1: Ban plastic bags in stores") {
		t.Errorf("expected line 1 second, got %q", lines[1])
	}
}

func TestRunReadsFileAsJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "titles.txt")
	if err := os.WriteFile(path, []byte(titles), 0o600); err != nil {
		t.Fatalf("failed to write titles: %v", err)
	}

	var stdout, stderr bytes.Buffer
	args := []string{"-query", "Ban single-use plastic bags", "-file", path, "-output", "json", "-explain", "-max", "1"}
	if err := run(args, strings.NewReader(""), &stdout, &stderr); err != nil {
		t.Fatalf("unexpected error: %v (stderr: %s)", err, stderr.String())
	}

	var results []matchOutput
	if err := json.Unmarshal(stdout.Bytes(), &results); err != nil {
		t.Fatalf("invalid JSON output %q: %v", stdout.String(), err)
	}
	if len(results) != 1 || results[0].Line != 4 {
		t.Fatalf("expected only line 4, got %+v", results)
	}
	if results[0].Parts == nil || results[0].Parts.Word <= 0 {
		t.Errorf("expected score parts with -explain, got %+v", results[0])
	}
}

func TestRunNoMatches(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run([]string{"-query", "Streetlight broken on Elm"}, strings.NewReader(titles), &stdout, &stderr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(stdout.String(), "No similar titles among 3 candidates") {
		t.Errorf("unexpected output %q", stdout.String())
	}
}

func TestRunDupMode(t *testing.T) {
	tests := []struct {
		name      string
		a, b      string
		duplicate bool
	}{
		{name: "Abbreviation", a: "Fix potholes on Main St", b: "Fix potholes on main street", duplicate: true},
		{name: "Unrelated", a: "Ban plastic bags", b: "Improve bike lanes downtown", duplicate: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if err := run([]string{"-dup", "-output", "json", tc.a, tc.b}, nil, &stdout, &stderr); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			var out compareOutput
			if err := json.Unmarshal(stdout.Bytes(), &out); err != nil {
				t.Fatalf("invalid JSON output %q: %v", stdout.String(), err)
			}
			if out.Duplicate != tc.duplicate {
				t.Errorf("expected duplicate=%t, got %+v", tc.duplicate, out)
			}
		})
	}
}

func TestRunUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "Missing query", args: nil},
		{name: "Dup with one title", args: []string{"-dup", "only one"}},
		{name: "Threshold out of range", args: []string{"-query", "x", "-threshold", "2"}},
		{name: "Unknown normalizer", args: []string{"-query", "x", "-normalizer", "stemming"}},
		{name: "Unknown output", args: []string{"-query", "x", "-output", "xml"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			err := run(tc.args, strings.NewReader(""), &stdout, &stderr)
			if !errors.Is(err, errUsage) {
				t.Errorf("expected usage error, got %v", err)
			}
			if !strings.Contains(stderr.String(), "Usage: dupcheck") {
				t.Errorf("expected usage text on stderr, got %q", stderr.String())
			}
		})
	}
}

package services

import (
	"strconv"
	"testing"
)

func TestParseFloatPointer(t *testing.T) {
	cases := []struct {
		in   string
		want *float64
	}{
		{"2.5", floatPtr(2.5)},
		{"2,5", floatPtr(2.5)},
		{"  0,931 ", floatPtr(0.931)},
		{"0", floatPtr(0)},
		{"", nil},
		{"   ", nil},
		{"n/a", nil},
	}

	for _, tc := range cases {
		got := parseFloatPointer(tc.in)
		if (got == nil) != (tc.want == nil) {
			t.Errorf("parseFloatPointer(%q) = %v, want %v", tc.in, got, tc.want)
			continue
		}
		if got != nil && *got != *tc.want {
			t.Errorf("parseFloatPointer(%q) = %v, want %v", tc.in, *got, *tc.want)
		}
	}
}

func TestParseFloatPointerIdempotent(t *testing.T) {
	for _, in := range []string{"2.5", "2,5", "0,931", "14", "3.14159"} {
		first := parseFloatPointer(in)
		if first == nil {
			t.Fatalf("parseFloatPointer(%q) returned nil", in)
		}
		second := parseFloatPointer(strconv.FormatFloat(*first, 'f', -1, 64))
		if second == nil || *second != *first {
			t.Errorf("parseFloatPointer not idempotent for %q: %v then %v", in, *first, second)
		}
	}
}

func TestParseIntPointer(t *testing.T) {
	if got := parseIntPointer("151"); got == nil || *got != 151 {
		t.Errorf("parseIntPointer(\"151\") = %v, want 151", got)
	}
	if got := parseIntPointer("0"); got == nil || *got != 0 {
		t.Errorf("parseIntPointer(\"0\") = %v, want 0", got)
	}
	// An empty cell is unknown, not zero.
	if got := parseIntPointer(""); got != nil {
		t.Errorf("parseIntPointer(\"\") = %v, want nil", *got)
	}
	if got := parseIntPointer("12.5"); got != nil {
		t.Errorf("parseIntPointer(\"12.5\") = %v, want nil", *got)
	}
}

func TestSplitDelimited(t *testing.T) {
	got := splitDelimited("  a ;; b ; ", ";")
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("splitDelimited returned %v, want [a b]", got)
	}
	if got := splitDelimited("", ";"); got != nil {
		t.Errorf("splitDelimited on empty input returned %v, want nil", got)
	}
}

func TestParseCategoryEntry(t *testing.T) {
	entry := parseCategoryEntry("Applied Mathematics (Q1)")
	if entry == nil || entry.Name != "Applied Mathematics" {
		t.Fatalf("unexpected entry: %+v", entry)
	}
	if entry.Quartile == nil || *entry.Quartile != "Q1" {
		t.Fatalf("expected quartile Q1, got %v", entry.Quartile)
	}

	entry = parseCategoryEntry("Ethics")
	if entry == nil || entry.Name != "Ethics" || entry.Quartile != nil {
		t.Fatalf("expected Ethics with nil quartile, got %+v", entry)
	}

	// Only the trailing (Qn) is a quartile; inner parentheses belong to the name.
	entry = parseCategoryEntry("Statistics, Probability (Misc.) (Q2)")
	if entry == nil || entry.Name != "Statistics, Probability (Misc.)" {
		t.Fatalf("unexpected name: %+v", entry)
	}
	if entry.Quartile == nil || *entry.Quartile != "Q2" {
		t.Fatalf("expected quartile Q2, got %v", entry.Quartile)
	}

	if entry := parseCategoryEntry(""); entry != nil {
		t.Fatalf("expected nil entry for empty input, got %+v", entry)
	}
}

func TestParseCategoryList(t *testing.T) {
	entries := parseCategoryList("Applied Mathematics (Q1); Modeling and Simulation (Q1); Ethics")
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[1].Name != "Modeling and Simulation" {
		t.Errorf("unexpected second entry: %+v", entries[1])
	}
	if entries[2].Quartile != nil {
		t.Errorf("expected nil quartile for Ethics, got %v", *entries[2].Quartile)
	}
}

func TestParseISSNList(t *testing.T) {
	got := parseISSNList("17936314, 02196913")
	if len(got) != 2 || got[0] != "17936314" || got[1] != "02196913" {
		t.Errorf("parseISSNList returned %v", got)
	}
	if got := parseISSNList(""); got != nil {
		t.Errorf("parseISSNList on empty input returned %v, want nil", got)
	}
}

func TestNormalizeQuartile(t *testing.T) {
	if got := normalizeQuartile("q2"); got == nil || *got != "Q2" {
		t.Errorf("normalizeQuartile(\"q2\") = %v", got)
	}
	if got := normalizeQuartile("Q5"); got != nil {
		t.Errorf("normalizeQuartile(\"Q5\") = %v, want nil", *got)
	}
	if got := normalizeQuartile(""); got != nil {
		t.Errorf("normalizeQuartile(\"\") = %v, want nil", *got)
	}
}

func floatPtr(v float64) *float64 { return &v }

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

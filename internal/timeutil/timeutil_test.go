package timeutil

import (
	"errors"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	parsed, err := ParseDate("2024-01-02")
	if err != nil {
		t.Fatalf("expected parse to succeed, got %v", err)
	}
	if got := FormatDate(parsed); got != "2024-01-02" {
		t.Fatalf("expected formatted date to round-trip, got %s", got)
	}
}

func TestFormatDateUsesLocation(t *testing.T) {
	loc := time.FixedZone("test", -5*60*60)
	value := time.Date(2024, 1, 2, 23, 0, 0, 0, loc)
	if got := FormatDate(value); got != "2024-01-02" {
		t.Fatalf("expected formatted date, got %s", got)
	}
}

func TestIsDate(t *testing.T) {
	cases := map[string]bool{
		"2025-05-01": true,
		"2025-5-1":   false,
		"2025-02-30": false,
		"":           false,
		"not-a-date": false,
	}
	for in, want := range cases {
		if got := IsDate(in); got != want {
			t.Fatalf("IsDate(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestMonthOf(t *testing.T) {
	month, err := MonthOf("2025-05-17")
	if err != nil || month != "2025-05" {
		t.Fatalf("expected 2025-05, got %q (%v)", month, err)
	}
	if _, err := MonthOf("bad"); err == nil {
		t.Fatal("expected error for malformed date")
	}
}

func TestResolveLocation(t *testing.T) {
	if ResolveLocation("") != time.Local {
		t.Fatal("expected local for empty name")
	}
	if ResolveLocation("Not/AZone") != time.Local {
		t.Fatal("expected local for unknown zone")
	}
	if loc := ResolveLocation("UTC"); loc.String() != "UTC" {
		t.Fatalf("expected UTC, got %s", loc)
	}
}

func TestToInstantKeepsCallerLocation(t *testing.T) {
	loc := time.FixedZone("IST", 5*60*60+30*60)
	day := time.Date(2025, 5, 1, 22, 15, 0, 0, loc)

	got, err := ToInstant(day, 8, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2025, 5, 1, 8, 30, 0, 0, loc)
	if !got.Equal(want) || got.Location() != loc {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestToInstantRejectsOutOfRange(t *testing.T) {
	day := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	for _, tc := range []struct{ h, m int }{{24, 0}, {-1, 0}, {10, 60}, {10, -1}} {
		if _, err := ToInstant(day, tc.h, tc.m); !errors.Is(err, ErrInvalidTimeComponents) {
			t.Fatalf("expected ErrInvalidTimeComponents for %d:%d, got %v", tc.h, tc.m, err)
		}
	}
}

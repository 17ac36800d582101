package utils

import (
	"testing"
	"time"
)

func TestParseDecimalAcceptsCommaAndDot(t *testing.T) {
	cases := map[string]float64{
		"38,27":  38.27,
		"38.27":  38.27,
		" 1.05 ": 1.05,
		"0,83":   0.83,
	}
	for in, want := range cases {
		got, err := ParseDecimal(in)
		if err != nil {
			t.Fatalf("ParseDecimal(%q) error: %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseDecimal(%q) = %v, want %v", in, got, want)
		}
	}
	if _, err := ParseDecimal("abc"); err == nil {
		t.Fatalf("expected error for non-number")
	}
	if _, err := ParseDecimal(""); err == nil {
		t.Fatalf("expected error for empty input")
	}
}

func TestDisplayPriceFloors(t *testing.T) {
	if got := DisplayPrice(85.99, "€"); got != "85 €" {
		t.Fatalf("got %q", got)
	}
	if got := DisplayPrice(-3, "$"); got != "0 $" {
		t.Fatalf("got %q", got)
	}
}

func TestCombineDateClock(t *testing.T) {
	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	got, err := CombineDateClock(day, "09:45")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Hour() != 9 || got.Minute() != 45 || got.Day() != 14 {
		t.Fatalf("unexpected result %v", got)
	}
	if _, err := CombineDateClock(day, "9h45"); err == nil {
		t.Fatalf("expected error for malformed clock")
	}
	if FormatDateTR(got) != "14.03.2026" {
		t.Fatalf("FormatDateTR = %s", FormatDateTR(got))
	}
}

func TestSplitList(t *testing.T) {
	got := SplitList(" a@x.com, b@x.com;;\n c@x.com ")
	if len(got) != 3 || got[0] != "a@x.com" || got[2] != "c@x.com" {
		t.Fatalf("unexpected split %v", got)
	}
}

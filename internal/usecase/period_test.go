package usecase

import (
	"testing"
	"time"
)

func TestGetStartDateBounds(t *testing.T) {
	cases := []struct {
		period   string
		min, max time.Duration
	}{
		{"1d", 23 * time.Hour, 25 * time.Hour},
		{"5d", time.Duration(4.9 * float64(day)), time.Duration(5.1 * float64(day))},
		{"1y", 364 * day, 366 * day},
		{"unknown", 29 * day, 31 * day},
	}

	for _, tc := range cases {
		now := time.Now()
		diff := now.Sub(GetStartDate(tc.period))
		if diff <= tc.min || diff >= tc.max {
			t.Fatalf("period %s: offset %v outside (%v, %v)", tc.period, diff, tc.min, tc.max)
		}
	}
}

func TestGetStartDateMax(t *testing.T) {
	got := GetStartDate("max").UTC()
	if got.Year() != 1970 || got.Month() != time.January || got.Day() != 1 {
		t.Fatalf("unexpected max start %v", got)
	}
	if !got.Equal(time.Unix(0, 0)) {
		t.Fatalf("expected unix epoch, got %v", got)
	}
}

func TestStartDateFixedClock(t *testing.T) {
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	want := map[string]time.Time{
		"1d":  now.AddDate(0, 0, -1),
		"5d":  now.AddDate(0, 0, -5),
		"1mo": now.AddDate(0, 0, -30),
		"3mo": now.AddDate(0, 0, -90),
		"6mo": now.AddDate(0, 0, -180),
		"1y":  now.AddDate(0, 0, -365),
		"2y":  now.AddDate(0, 0, -730),
		"5y":  now.AddDate(0, 0, -1825),
		"":    now.AddDate(0, 0, -30),
	}
	for period, w := range want {
		if got := StartDate(period, now); !got.Equal(w) {
			t.Fatalf("period %q: got %v want %v", period, got, w)
		}
	}
	if !StartDate("unknown-token", now).Equal(StartDate("1mo", now)) {
		t.Fatalf("unknown token should behave like 1mo")
	}
}

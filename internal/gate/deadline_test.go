package gate

import (
	"testing"
	"time"
)

var fixedNow = time.Date(2026, time.March, 10, 15, 30, 0, 0, time.UTC)

func TestDaysUntilDeadlineAt(t *testing.T) {
	cases := []struct {
		name string
		date string
		days int
		ok   bool
	}{
		{"same day", "2026-03-10", 0, true},
		{"tomorrow", "2026-03-11", 1, true},
		{"fifteen days out", "2026-03-25", 15, true},
		{"month boundary", "2026-04-09", 30, true},
		{"past deadline", "2026-03-01", -9, true},
		{"far future", "2026-06-08", 90, true},
		{"empty", "", 0, false},
		{"whitespace", "   ", 0, false},
		{"wrong shape", "03/25/2026", 0, false},
		{"not a date", "soon", 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			days, ok := DaysUntilDeadlineAt(tc.date, fixedNow)
			if ok != tc.ok {
				t.Fatalf("ok = %t, want %t", ok, tc.ok)
			}
			if ok && days != tc.days {
				t.Fatalf("days = %d, want %d", days, tc.days)
			}
		})
	}
}

func TestDaysUntilDeadlineIgnoresTimeOfDay(t *testing.T) {
	lateNight := time.Date(2026, time.March, 10, 23, 59, 0, 0, time.UTC)
	days, ok := DaysUntilDeadlineAt("2026-03-11", lateNight)
	if !ok || days != 1 {
		t.Fatalf("expected 1 day regardless of clock time, got %d (ok=%t)", days, ok)
	}
}

func TestBadgeText(t *testing.T) {
	cases := []struct {
		days int
		want string
	}{
		{0, "TODAY - Deadline Day!"},
		{1, "1 Day Remaining"},
		{2, "2 Days Remaining"},
		{30, "30 Days Remaining"},
	}
	for _, tc := range cases {
		if got := BadgeText(tc.days); got != tc.want {
			t.Fatalf("BadgeText(%d) = %q, want %q", tc.days, got, tc.want)
		}
	}
}

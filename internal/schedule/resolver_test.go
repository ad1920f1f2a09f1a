package schedule

import (
	"errors"
	"testing"
	"time"
)

func TestResolvePresets(t *testing.T) {
	cases := []struct {
		expr string
		want time.Duration
	}{
		{"* * * * *", time.Minute},
		{"*/10 * * * *", 10 * time.Minute},
		{"*/30 * * * *", 30 * time.Minute},
		{"0 * * * *", time.Hour},
		{"0 */6 * * *", 6 * time.Hour},
		{"0 */12 * * *", 12 * time.Hour},
		{"  */10   * * *  * ", 10 * time.Minute}, // whitespace normalized
	}

	for _, tc := range cases {
		h, err := Resolve(tc.expr)
		if err != nil {
			t.Fatalf("Resolve(%q): %v", tc.expr, err)
		}
		if h.Kind != KindInterval {
			t.Fatalf("Resolve(%q): kind = %v, want interval", tc.expr, h.Kind)
		}
		period, ok := h.Interval()
		if !ok || period != tc.want {
			t.Errorf("Resolve(%q): period = %v, want %v", tc.expr, period, tc.want)
		}
		if ms := period.Milliseconds(); ms != tc.want.Milliseconds() {
			t.Errorf("Resolve(%q): %d ms, want %d ms", tc.expr, ms, tc.want.Milliseconds())
		}

		now := time.Date(2024, 5, 1, 12, 34, 56, 0, time.UTC)
		if got := h.Next(now); !got.Equal(now.Add(tc.want)) {
			t.Errorf("Next(%q) = %v, want %v", tc.expr, got, now.Add(tc.want))
		}
	}
}

func TestResolveCron(t *testing.T) {
	h, err := Resolve("30 4 * * *")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if h.Kind != KindCron {
		t.Fatalf("kind = %v, want cron", h.Kind)
	}
	if _, ok := h.Interval(); ok {
		t.Fatal("cron handle reported an interval")
	}

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	next := h.Next(now)
	want := time.Date(2024, 5, 2, 4, 30, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Errorf("Next = %v, want %v", next, want)
	}

	// strictly after now, even when now matches the expression
	onSpot := time.Date(2024, 5, 1, 4, 30, 0, 0, time.UTC)
	if got := h.Next(onSpot); !got.After(onSpot) {
		t.Errorf("Next(%v) = %v, not strictly after", onSpot, got)
	}
}

func TestResolveCronUsesUTC(t *testing.T) {
	h, err := Resolve("0 8 * * *")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	loc := time.FixedZone("UTC+5", 5*3600)
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, loc) // 05:00 UTC
	next := h.Next(now)
	want := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Errorf("Next = %v, want %v (UTC evaluation)", next.UTC(), want)
	}
}

func TestResolveInvalid(t *testing.T) {
	for _, expr := range []string{
		"",
		"not a schedule",
		"* * *",
		"61 * * * *",
		"* * * * * *", // six fields: seconds resolution not accepted
	} {
		_, err := Resolve(expr)
		if err == nil {
			t.Errorf("Resolve(%q): expected error", expr)
			continue
		}
		if !errors.Is(err, ErrInvalidSchedule) {
			t.Errorf("Resolve(%q): error %v does not wrap ErrInvalidSchedule", expr, err)
		}
	}
}

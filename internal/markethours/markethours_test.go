package markethours

import (
	"testing"
	"time"
)

func art(month time.Month, day, hour, min int) time.Time {
	return time.Date(2026, month, day, hour, min, 0, 0, ART)
}

func TestIsMarketOpen(t *testing.T) {
	cases := []struct {
		name string
		t    time.Time
		want bool
	}{
		{"mid-session Tuesday", art(time.September, 1, 14, 0), true},
		{"at the open", art(time.September, 1, 11, 0), true},
		{"minute before open", art(time.September, 1, 10, 59), false},
		{"at the close", art(time.September, 1, 17, 0), false},
		{"minute before close", art(time.September, 1, 16, 59), true},
		{"Saturday", art(time.September, 5, 14, 0), false},
		{"Sunday", art(time.September, 6, 14, 0), false},
		{"Independence Day", art(time.July, 9, 14, 0), false},
		{"Christmas", art(time.December, 25, 14, 0), false},
	}
	for _, tc := range cases {
		if got := IsMarketOpen(tc.t); got != tc.want {
			t.Errorf("%s: IsMarketOpen=%v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestIsTradingDay(t *testing.T) {
	if IsTradingDay(art(time.May, 25, 12, 0)) {
		t.Error("May Revolution Day should not be a trading day")
	}
	if !IsTradingDay(art(time.May, 26, 12, 0)) {
		t.Error("the day after a holiday should be a trading day")
	}
}

func TestNextOpen(t *testing.T) {
	// Before the open on a trading day: today's open.
	got := NextOpen(art(time.September, 1, 9, 0))
	want := art(time.September, 1, 11, 0)
	if !got.Equal(want) {
		t.Errorf("NextOpen before open = %v, want %v", got, want)
	}

	// After the close: the next trading day.
	got = NextOpen(art(time.September, 1, 18, 0))
	want = art(time.September, 2, 11, 0)
	if !got.Equal(want) {
		t.Errorf("NextOpen after close = %v, want %v", got, want)
	}

	// Friday evening skips the weekend.
	got = NextOpen(art(time.September, 4, 18, 0))
	want = art(time.September, 7, 11, 0)
	if !got.Equal(want) {
		t.Errorf("NextOpen Friday evening = %v, want %v", got, want)
	}
}

func TestTimeUntilClose(t *testing.T) {
	if d := TimeUntilClose(art(time.September, 1, 16, 0)); d != time.Hour {
		t.Errorf("TimeUntilClose=%v, want 1h", d)
	}
	if d := TimeUntilClose(art(time.September, 1, 18, 0)); d != 0 {
		t.Errorf("TimeUntilClose after close=%v, want 0", d)
	}
}

package config

import (
	"reflect"
	"testing"
)

func TestParseWatchlist(t *testing.T) {
	c := &Config{Watchlist: "aapl, MSFT ,,GOOGL,msft"}
	got := c.ParseWatchlist()
	want := []string{"AAPL", "MSFT", "GOOGL"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseWatchlist=%v, want %v", got, want)
	}
}

func TestLoadDefaults(t *testing.T) {
	c := Load()
	if c.RetentionDays != 90 {
		t.Errorf("RetentionDays=%d, want 90", c.RetentionDays)
	}
	if c.HistoryDays != 400 {
		t.Errorf("HistoryDays=%d, want 400", c.HistoryDays)
	}
	if c.CacheTTLMinutes != 30 {
		t.Errorf("CacheTTLMinutes=%d, want 30", c.CacheTTLMinutes)
	}
	if len(c.ParseWatchlist()) == 0 {
		t.Error("default watchlist is empty")
	}
}

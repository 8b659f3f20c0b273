package markethours

import (
	"fmt"
	"time"
)

// ART is the Argentina Time location (UTC-3, no DST).
var ART = time.FixedZone("ART", -3*3600)

// BYMA continuous session hours in ART.
const (
	OpenHour    = 11
	OpenMinute  = 0
	CloseHour   = 17
	CloseMinute = 0
)

// IsMarketOpen returns true if t falls within BYMA trading hours
// (11:00 AM – 5:00 PM ART, Mon–Fri, excluding holidays).
func IsMarketOpen(t time.Time) bool {
	art := t.In(ART)
	wd := art.Weekday()
	if wd == time.Saturday || wd == time.Sunday {
		return false
	}
	if IsHoliday(art) {
		return false
	}
	hm := art.Hour()*60 + art.Minute()
	return hm >= OpenHour*60+OpenMinute && hm < CloseHour*60+CloseMinute
}

// IsWeekday returns true if t is Mon–Fri.
func IsWeekday(t time.Time) bool {
	wd := t.In(ART).Weekday()
	return wd >= time.Monday && wd <= time.Friday
}

// IsTradingDay returns true if t is a weekday and not a holiday.
func IsTradingDay(t time.Time) bool {
	art := t.In(ART)
	return IsWeekday(art) && !IsHoliday(art)
}

// NextOpen returns the next market open time (11:00 AM ART on the next
// trading day). If t is before today's open on a trading day, returns
// today's open.
func NextOpen(t time.Time) time.Time {
	art := t.In(ART)

	// Try today first
	todayOpen := time.Date(art.Year(), art.Month(), art.Day(), OpenHour, OpenMinute, 0, 0, ART)
	if art.Before(todayOpen) && IsTradingDay(art) {
		return todayOpen
	}

	// Otherwise find the next trading day
	d := art.AddDate(0, 0, 1)
	for i := 0; i < 10; i++ { // max 10 days ahead (holidays + weekends)
		if IsTradingDay(d) {
			return time.Date(d.Year(), d.Month(), d.Day(), OpenHour, OpenMinute, 0, 0, ART)
		}
		d = d.AddDate(0, 0, 1)
	}
	// Fallback: next day
	return time.Date(art.Year(), art.Month(), art.Day()+1, OpenHour, OpenMinute, 0, 0, ART)
}

// TodayClose returns today's market close time (5:00 PM ART).
func TodayClose(t time.Time) time.Time {
	art := t.In(ART)
	return time.Date(art.Year(), art.Month(), art.Day(), CloseHour, CloseMinute, 0, 0, ART)
}

// TimeUntilClose returns the duration until today's close.
// Returns 0 if the market is already closed.
func TimeUntilClose(t time.Time) time.Duration {
	cl := TodayClose(t)
	d := cl.Sub(t.In(ART))
	if d < 0 {
		return 0
	}
	return d
}

// TimeUntilOpen returns the duration until the next market open.
func TimeUntilOpen(t time.Time) time.Duration {
	return NextOpen(t).Sub(t.In(ART))
}

// StatusString returns a human-readable market status.
func StatusString(t time.Time) string {
	if IsMarketOpen(t) {
		d := TimeUntilClose(t)
		return fmt.Sprintf("Market Open — closes in %s", fmtDur(d))
	}
	next := NextOpen(t)
	d := next.Sub(t)
	art := next.In(ART)
	return fmt.Sprintf("Market Closed — opens %s %s (%s)",
		art.Weekday().String()[:3], art.Format("15:04"), fmtDur(d))
}

func fmtDur(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh%dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

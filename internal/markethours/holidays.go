package markethours

import "time"

// BYMA holidays for 2026.
// Source: Argentine national holiday calendar.
// Format: month, day pairs.
var bymaHolidays2026 = []struct {
	month time.Month
	day   int
}{
	{time.January, 1},   // New Year's Day
	{time.February, 16}, // Carnival Monday
	{time.February, 17}, // Carnival Tuesday
	{time.March, 24},    // Day of Remembrance for Truth and Justice
	{time.April, 2},     // Malvinas Veterans Day
	{time.April, 3},     // Good Friday
	{time.May, 1},       // Labour Day
	{time.May, 25},      // May Revolution Day
	{time.June, 17},     // Güemes Day
	{time.July, 9},      // Independence Day
	{time.August, 17},   // San Martín Day
	{time.October, 12},  // Day of Respect for Cultural Diversity
	{time.November, 23}, // National Sovereignty Day (moved)
	{time.December, 8},  // Immaculate Conception
	{time.December, 25}, // Christmas
}

// pre-compute for fast lookup
var holidaySet map[string]bool

func init() {
	holidaySet = make(map[string]bool, len(bymaHolidays2026))
	for _, h := range bymaHolidays2026 {
		key := dateKey(2026, h.month, h.day)
		holidaySet[key] = true
	}
}

// IsHoliday returns true if the date (in ART) is a BYMA holiday.
func IsHoliday(t time.Time) bool {
	art := t.In(ART)
	return holidaySet[dateKey(art.Year(), art.Month(), art.Day())]
}

func dateKey(year int, month time.Month, day int) string {
	return time.Date(year, month, day, 0, 0, 0, 0, ART).Format("2006-01-02")
}

package exam

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Session start times used by Chalmers: morning sittings begin 08:30,
// afternoon sittings 14:00.
const (
	morningHour   = 8
	morningMinute = 30
	afternoonHour = 14
)

// sweMonths maps the Swedish month abbreviations used in the syllabus
// tables to calendar months
var sweMonths = map[string]time.Month{
	"jan": time.January,
	"feb": time.February,
	"mar": time.March,
	"apr": time.April,
	"maj": time.May,
	"jun": time.June,
	"jul": time.July,
	"aug": time.August,
	"sep": time.September,
	"okt": time.October,
	"nov": time.November,
	"dec": time.December,
}

// location is the zone exam times are published in. Exam sittings are
// Swedish local time; fall back to the process zone if the zone database
// is missing.
var location = func() *time.Location {
	loc, err := time.LoadLocation("Europe/Stockholm")
	if err != nil {
		return time.Local
	}
	return loc
}()

// ParseDate parses a date cell from a syllabus examination table, such as
// "14 jan 2025 am" or "2 jun 2025 pm". The fourth field selects the
// sitting: "am" starts 08:30, anything else 14:00.
func ParseDate(s string) (time.Time, error) {
	fields := strings.Fields(strings.TrimSpace(s))
	if len(fields) < 4 {
		return time.Time{}, fmt.Errorf("date %q: expected day, month, year and session", s)
	}

	day, err := strconv.Atoi(fields[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q: bad day: %w", s, err)
	}

	month, ok := sweMonths[strings.ToLower(fields[1])]
	if !ok {
		return time.Time{}, fmt.Errorf("date %q: unknown month %q", s, fields[1])
	}

	year, err := strconv.Atoi(fields[2])
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q: bad year: %w", s, err)
	}

	hour, minute := afternoonHour, 0
	if strings.EqualFold(fields[3], "am") {
		hour, minute = morningHour, morningMinute
	}

	return time.Date(year, month, day, hour, minute, 0, 0, location), nil
}

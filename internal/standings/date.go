package standings

import (
	"regexp"
	"strconv"
	"time"
)

var (
	// day, month, 2 or 4 digit year: "26/2/26", "26.02.2026", "1-3-26"
	datePattern = regexp.MustCompile(`(\d{1,2})[./-](\d{1,2})[./-](\d{4}|\d{2})`)
	// 24-hour clock: "09:30", "9:30"
	timePattern = regexp.MustCompile(`(\d{1,2}):(\d{2})`)
)

// NormalizeStartTime combines a loosely formatted date and time of day into a UTC instant.
// Returns false if either string does not match or the result is not a real date/time.
func NormalizeStartTime(dateText, clockText string) (time.Time, bool) {
	dm := datePattern.FindStringSubmatch(dateText)
	tm := timePattern.FindStringSubmatch(clockText)
	if dm == nil || tm == nil {
		return time.Time{}, false
	}

	day, _ := strconv.Atoi(dm[1])
	month, _ := strconv.Atoi(dm[2])
	year, _ := strconv.Atoi(dm[3])
	hour, _ := strconv.Atoi(tm[1])
	minute, _ := strconv.Atoi(tm[2])

	if len(dm[3]) == 2 {
		year += 2000
	}

	if month < 1 || month > 12 || hour > 23 || minute > 59 || day < 1 {
		return time.Time{}, false
	}

	t := time.Date(year, time.Month(month), day, hour, minute, 0, 0, time.UTC)
	// time.Date normalizes overflow (Feb 30 -> Mar 2); reject instead
	if t.Day() != day || t.Month() != time.Month(month) {
		return time.Time{}, false
	}

	return t, true
}

// Package format renders timestamps, dates and figures for the dashboard.
package format

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/heartmarshall/pudiya/internal/domain"
)

const (
	day   = 24 * time.Hour
	week  = 7 * day
	month = 30 * day
	year  = 365 * day
)

// RelativeTime describes how long before now t happened.
func RelativeTime(t, now time.Time) string {
	if t.IsZero() {
		return "Unknown"
	}

	elapsed := now.Sub(t)
	switch {
	case elapsed < time.Minute:
		return "Just now"
	case elapsed < time.Hour:
		return ago(int(elapsed/time.Minute), "minute")
	case elapsed < day:
		return ago(int(elapsed/time.Hour), "hour")
	case elapsed < week:
		return ago(int(elapsed/day), "day")
	case elapsed < 5*week:
		return ago(int(elapsed/week), "week")
	case elapsed < 12*month:
		return ago(int(elapsed/month), "month")
	default:
		// 360-364 days is past the month range but short of a full year.
		return ago(max(1, int(elapsed/year)), "year")
	}
}

// RelativeTimePtr is RelativeTime for optional timestamps.
func RelativeTimePtr(t *time.Time, now time.Time) string {
	if t == nil {
		return "Unknown"
	}
	return RelativeTime(*t, now)
}

func ago(n int, unit string) string {
	if n == 1 {
		return "1 " + unit + " ago"
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}

// DateDisplay renders an ISO date or timestamp as "Jan 2, 2006". Blank input
// yields "Not set"; anything unparsable is returned as is.
func DateDisplay(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return "Not set"
	}
	d, err := domain.ParseCalendarDate(raw)
	if err != nil {
		return raw
	}
	return CalendarDateDisplay(d)
}

// CalendarDateDisplay renders d as "Jan 2, 2006".
func CalendarDateDisplay(d domain.CalendarDate) string {
	if d.IsZero() {
		return "Not set"
	}
	return d.Time().Format("Jan 2, 2006")
}

// Count groups thousands: 1284 => "1,284".
func Count(n int) string {
	s := strconv.Itoa(n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var b strings.Builder
	lead := len(s) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(s[:lead])
	for i := lead; i < len(s); i += 3 {
		b.WriteByte(',')
		b.WriteString(s[i : i+3])
	}

	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// Currency formats whole dollars: 18200 => "$18,200".
func Currency(amount int) string {
	if amount < 0 {
		return "-$" + Count(-amount)
	}
	return "$" + Count(amount)
}

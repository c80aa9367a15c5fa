package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// CalendarDate is a date without a time of day or location. The zero value
// means "not set".
type CalendarDate struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) CalendarDate {
	y, m, d := t.Date()
	return CalendarDate{Year: y, Month: m, Day: d}
}

// ParseCalendarDate parses an ISO date ("2006-01-02") or an RFC 3339
// timestamp, keeping only the date part. An empty string yields the zero date.
func ParseCalendarDate(s string) (CalendarDate, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return CalendarDate{}, nil
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		return DateOf(t), nil
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return DateOf(t), nil
		}
	}
	return CalendarDate{}, fmt.Errorf("parse date %q: unrecognized format", s)
}

// IsZero reports whether the date is unset.
func (d CalendarDate) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// String returns the ISO form "YYYY-MM-DD", or "" for the zero date.
func (d CalendarDate) String() string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Time returns midnight UTC of the date.
func (d CalendarDate) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// Before reports whether d is strictly earlier than o.
func (d CalendarDate) Before(o CalendarDate) bool {
	return d.Time().Before(o.Time())
}

// MarshalJSON encodes the date as "YYYY-MM-DD", or null when unset.
func (d CalendarDate) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts every representation understood by NormalizeDate.
func (d *CalendarDate) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("decode date: %w", err)
	}
	nd, err := NormalizeDate(raw)
	if err != nil {
		return err
	}
	*d = nd
	return nil
}

// timestamper is implemented by external timestamp types (for example
// protobuf timestamps).
type timestamper interface {
	AsTime() time.Time
}

// NormalizeDate converts any wire representation of a date into a
// CalendarDate:
//   - nil or "" (absent) yields the zero date
//   - strings: ISO date or RFC 3339 timestamp
//   - time.Time and *time.Time: the date in the value's own location
//   - numbers: epoch milliseconds, interpreted in UTC
//   - timestamp objects {"seconds": n, "nanoseconds": n} (or the
//     "_seconds"/"_nanoseconds" spelling), interpreted in UTC
//   - values with an AsTime() time.Time method, interpreted in UTC
func NormalizeDate(v any) (CalendarDate, error) {
	switch x := v.(type) {
	case nil:
		return CalendarDate{}, nil
	case CalendarDate:
		return x, nil
	case *CalendarDate:
		if x == nil {
			return CalendarDate{}, nil
		}
		return *x, nil
	case string:
		return ParseCalendarDate(x)
	case time.Time:
		if x.IsZero() {
			return CalendarDate{}, nil
		}
		return DateOf(x), nil
	case *time.Time:
		if x == nil || x.IsZero() {
			return CalendarDate{}, nil
		}
		return DateOf(*x), nil
	case map[string]any:
		return dateFromTimestampObject(x)
	case timestamper:
		return DateOf(x.AsTime().UTC()), nil
	}

	if ms, ok := toInt64(v); ok {
		return DateOf(time.UnixMilli(ms).UTC()), nil
	}
	return CalendarDate{}, fmt.Errorf("normalize date: unsupported representation %T", v)
}

func dateFromTimestampObject(m map[string]any) (CalendarDate, error) {
	secRaw, ok := m["seconds"]
	if !ok {
		secRaw, ok = m["_seconds"]
	}
	if !ok {
		return CalendarDate{}, fmt.Errorf("normalize date: timestamp object without seconds")
	}
	sec, ok := toInt64(secRaw)
	if !ok {
		return CalendarDate{}, fmt.Errorf("normalize date: invalid seconds %v", secRaw)
	}

	var nsec int64
	if nRaw, ok := m["nanoseconds"]; ok {
		nsec, _ = toInt64(nRaw)
	} else if nRaw, ok := m["_nanoseconds"]; ok {
		nsec, _ = toInt64(nRaw)
	}
	return DateOf(time.Unix(sec, nsec).UTC()), nil
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint32:
		return int64(n), true
	case float32:
		return int64(n), true
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return int64(n), true
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		if f, err := n.Float64(); err == nil {
			return int64(f), true
		}
	case string:
		i, err := strconv.ParseInt(n, 10, 64)
		return i, err == nil
	}
	return 0, false
}

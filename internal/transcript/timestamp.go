package transcript

import (
	"math"
	"strings"
	"time"
)

// TimestampKind identifies which shape a raw log timestamp arrived in.
type TimestampKind int

const (
	// TimestampAbsent means the record carried no usable timestamp field.
	TimestampAbsent TimestampKind = iota
	// TimestampNumeric is an epoch-millisecond number.
	TimestampNumeric
	// TimestampTextual is an ISO-8601 string, possibly with a trailing Z.
	TimestampTextual
)

// Timestamp is the raw timestamp of a session record before normalization.
type Timestamp struct {
	Kind   TimestampKind
	Number float64
	Text   string
}

// isoLayouts are tried in order when parsing textual timestamps. Go accepts
// fractional seconds after the seconds field even when the layout omits them.
var isoLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04Z07:00",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05Z0700",
}

// naiveLayouts carry no offset and are interpreted in local time.
var naiveLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// TimestampFrom classifies a decoded JSON value. Zero, empty strings, null and
// any non-number non-string value count as absent.
func TimestampFrom(v any) Timestamp {
	switch val := v.(type) {
	case float64:
		if val == 0 || math.IsNaN(val) || math.IsInf(val, 0) {
			return Timestamp{}
		}
		return Timestamp{Kind: TimestampNumeric, Number: val}
	case int64:
		if val == 0 {
			return Timestamp{}
		}
		return Timestamp{Kind: TimestampNumeric, Number: float64(val)}
	case int:
		if val == 0 {
			return Timestamp{}
		}
		return Timestamp{Kind: TimestampNumeric, Number: float64(val)}
	case string:
		if val == "" {
			return Timestamp{}
		}
		return Timestamp{Kind: TimestampTextual, Text: val}
	default:
		return Timestamp{}
	}
}

// Millis returns the timestamp as epoch milliseconds. ok is false when the
// timestamp is absent or its text cannot be parsed.
func (ts Timestamp) Millis() (ms int64, ok bool) {
	switch ts.Kind {
	case TimestampNumeric:
		return int64(ts.Number), true
	case TimestampTextual:
		t, err := parseISO(ts.Text)
		if err != nil {
			return 0, false
		}
		return t.UnixMilli(), true
	default:
		return 0, false
	}
}

// NormalizeTimestamp coerces ts into epoch milliseconds, returning fallbackMs
// unchanged when the timestamp is absent or unparseable.
func NormalizeTimestamp(ts Timestamp, fallbackMs int64) int64 {
	if ms, ok := ts.Millis(); ok {
		return ms
	}
	return fallbackMs
}

func parseISO(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "Z") {
		s = strings.TrimSuffix(s, "Z") + "+00:00"
	}

	var err error
	var t time.Time
	for _, layout := range isoLayouts {
		if t, err = time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	for _, layout := range naiveLayouts {
		if t, err = time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

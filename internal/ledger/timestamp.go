package ledger

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DisplayNotAvailable is shown wherever a timestamp could not be parsed.
const DisplayNotAvailable = "N/A"

// ClinicZoneID is the display timezone identifier the fixed offset applies to.
const ClinicZoneID = "Asia/Kolkata"

// ClinicDisplayOffset is the fixed display correction applied when the clinic
// zone is requested. This is a deployment policy constant, not a general
// timezone engine: storage writes naive local time and the deployment region
// is fixed at UTC+5:30.
var ClinicDisplayOffset = 5*time.Hour + 30*time.Minute

// epochSecondsMax is the threshold below which a numeric timestamp is read
// as seconds rather than milliseconds.
const epochSecondsMax = 1e12

// Stamp is a normalized timestamp: an absolute sortable instant plus a
// human-facing rendering. Valid is false when the input was unparsable;
// such stamps sort after every valid one.
type Stamp struct {
	HasTime bool      `json:"hasTime"`
	Valid   bool      `json:"valid"`
	Instant time.Time `json:"instant"`
	Display string    `json:"display"`
}

// SortKey returns the instant in epoch milliseconds. Invalid stamps return
// math.MaxInt64 so they sort last.
func (s Stamp) SortKey() int64 {
	if !s.Valid {
		return math.MaxInt64
	}
	return s.Instant.UnixMilli()
}

var (
	sqlStampRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}(:\d{2})?$`)
	dateOnlyRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	numericRe  = regexp.MustCompile(`^-?\d+(\.\d+)?$`)
)

// fallbackLayouts are tried, in order, for inputs no explicit rule matched.
var fallbackLayouts = []string{
	"2006-01-02 15:04:05 -0700",
	time.RFC1123Z,
	time.RFC1123,
	"02/01/2006 15:04",
	"02/01/2006",
	"Jan 2, 2006 15:04",
	"Jan 2, 2006",
	"2 Jan 2006",
}

// Normalize parses a raw timestamp of unknown encoding and formats it for
// the viewer's local zone. It never fails: unparsable input yields an
// invalid stamp displayed as "N/A".
func Normalize(raw any) Stamp {
	return NormalizeIn(raw, "")
}

// NormalizeIn is Normalize with an explicit display timezone identifier.
// Only ClinicZoneID is recognized; it applies ClinicDisplayOffset to timed
// stamps. Any other value formats in the viewer's local zone.
func NormalizeIn(raw any, displayZone string) Stamp {
	s := parse(raw)
	s.Display = formatStamp(s, displayZone)
	return s
}

func parse(raw any) Stamp {
	switch v := raw.(type) {
	case nil:
		return Stamp{}
	case time.Time:
		if v.IsZero() {
			return Stamp{}
		}
		return Stamp{HasTime: true, Valid: true, Instant: v}
	case float64:
		return fromEpoch(v)
	case float32:
		return fromEpoch(float64(v))
	case int:
		return fromEpoch(float64(v))
	case int64:
		return fromEpoch(float64(v))
	case string:
		return parseString(strings.TrimSpace(v))
	default:
		return Stamp{}
	}
}

func parseString(s string) Stamp {
	if s == "" {
		return Stamp{}
	}

	// 1. ISO-8601: a 'T' separator, with or without a zone marker. Naive
	// T-separated stamps are read as UTC.
	if strings.Contains(s, "T") {
		for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02T15:04"} {
			if t, err := time.Parse(layout, s); err == nil {
				return Stamp{HasTime: true, Valid: true, Instant: t}
			}
		}
	}

	// 2. SQL-style stamps are naive local wall-clock time. Storage writes
	// them without a zone, so re-reading them as UTC would shift every
	// record by the server offset.
	if sqlStampRe.MatchString(s) {
		for _, layout := range []string{"2006-01-02 15:04:05", "2006-01-02 15:04"} {
			if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
				return Stamp{HasTime: true, Valid: true, Instant: t}
			}
		}
	}

	// 3. Bare date: local midnight, no time component.
	if dateOnlyRe.MatchString(s) {
		if t, err := time.ParseInLocation("2006-01-02", s, time.Local); err == nil {
			return Stamp{Valid: true, Instant: t}
		}
	}

	// 4. Numeric string: epoch seconds or milliseconds.
	if numericRe.MatchString(s) {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return fromEpoch(f)
		}
	}

	// 5. Generic fallback. Time presence is inferred from the input shape.
	for _, layout := range fallbackLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return Stamp{
				HasTime: strings.ContainsAny(s, ":"),
				Valid:   true,
				Instant: t,
			}
		}
	}

	return Stamp{}
}

func fromEpoch(v float64) Stamp {
	if math.IsNaN(v) || math.IsInf(v, 0) || v == 0 {
		return Stamp{}
	}
	ms := v
	if math.Abs(v) <= epochSecondsMax {
		ms = v * 1000
	}
	return Stamp{HasTime: true, Valid: true, Instant: time.UnixMilli(int64(ms))}
}

// formatStamp renders a stamp with a 12-hour clock and 2-digit minutes when
// a time component exists, date-only otherwise.
func formatStamp(s Stamp, displayZone string) string {
	if !s.Valid {
		return DisplayNotAvailable
	}
	t := s.Instant
	if s.HasTime {
		if displayZone == ClinicZoneID {
			t = t.UTC().Add(ClinicDisplayOffset)
		} else {
			t = t.Local()
		}
		return t.Format("02 Jan 2006, 3:04 PM")
	}
	return t.Local().Format("02 Jan 2006")
}

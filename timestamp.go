package nwb

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Timestamps are float64 seconds since the Unix epoch, UTC.

// MaxFractionDigits bounds the fractional second digits FormatTimestamp emits.
const MaxFractionDigits = 9

// timestampRegexp accepts "T" or a space between date and time, "." or ","
// as decimal mark and an optional trailing "Z".
var timestampRegexp = regexp.MustCompile(
	`^(\d+)-(\d+)-(\d+)[T ](\d+):(\d+):(\d+)([.,]\d+)?Z?$`)

// FormatTimestamp renders secs as YYYY-MM-DDTHH:MM:SS[.fff]Z with
// fracDigits fractional digits (clamped to 0..MaxFractionDigits).
// The value is rounded, not truncated, to the requested precision.
func FormatTimestamp(secs float64, fracDigits int) string {
	fracDigits = min(max(fracDigits, 0), MaxFractionDigits)

	scale := math.Pow10(fracDigits)
	whole := math.Floor(secs)
	frac := math.Round((secs - whole) * scale)
	if frac >= scale {
		whole++
		frac -= scale
	}

	var b strings.Builder
	b.WriteString(time.Unix(int64(whole), 0).UTC().Format("2006-01-02T15:04:05"))
	if fracDigits > 0 {
		digits := strconv.FormatInt(int64(frac), 10)
		b.WriteByte('.')
		b.WriteString(strings.Repeat("0", fracDigits-len(digits)))
		b.WriteString(digits)
	}
	b.WriteByte('Z')
	return b.String()
}

// ParseTimestamp parses an ISO 8601 like timestamp as written by
// FormatTimestamp and common variants of it:
//
//	2020-01-02T03:04:05Z
//	2020-01-02 03:04:05,5
//	2020-01-02T03:04:05.250
//
// The time is taken as UTC. ok is false when the text does not match or a
// field is out of range; timestamps are often optional, so this is not an error.
func ParseTimestamp(s string) (secs float64, ok bool) {
	m := timestampRegexp.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return math.NaN(), false
	}

	var fields [6]int
	for i := range fields {
		v, err := strconv.Atoi(m[i+1])
		if err != nil {
			return math.NaN(), false
		}
		fields[i] = v
	}
	year, month, day, hour, minute, second := fields[0], fields[1], fields[2], fields[3], fields[4], fields[5]
	if month < 1 || month > 12 || day < 1 || day > daysIn(year, month) ||
		hour > 23 || minute > 59 || second > 59 {
		return math.NaN(), false
	}

	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC).Unix()
	secs = float64(date) + float64(3600*hour+60*minute+second)

	if m[7] != "" {
		frac, err := strconv.ParseFloat("0."+m[7][1:], 64)
		if err != nil {
			return math.NaN(), false
		}
		secs += frac
	}
	return secs, true
}

// TimestampTime converts epoch seconds to a UTC time.Time.
func TimestampTime(secs float64) time.Time {
	whole := math.Floor(secs)
	nanos := math.Round((secs - whole) * 1e9)
	return time.Unix(int64(whole), int64(nanos)).UTC()
}

// TimeTimestamp converts a time.Time to epoch seconds.
func TimeTimestamp(t time.Time) float64 {
	return float64(t.Unix()) + float64(t.Nanosecond())/1e9
}

func daysIn(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

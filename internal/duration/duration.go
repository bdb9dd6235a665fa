// Package duration parses the expiry shorthand users can append to a spoiler
// title or inline query, e.g. "My title/10d".
//
//	s, S  seconds
//	m     minutes
//	M     months (30 days)
//	h, H  hours
//	d, D  days
//	w, W  weeks
//	y, Y  years (365 days)
//
// Lowercase m is minutes and uppercase M is months; every other unit is case
// insensitive.
package duration

import (
	"math"
	"regexp"
	"strconv"
	"time"
)

const (
	Day   = 24 * time.Hour
	Week  = 7 * Day
	Month = 30 * Day
	Year  = 365 * Day
)

var suffix = regexp.MustCompile(`/(\d+)([sSmMhHdDwWyY])$`)

var units = map[string]time.Duration{
	"s": time.Second,
	"S": time.Second,
	"m": time.Minute,
	"M": Month,
	"h": time.Hour,
	"H": time.Hour,
	"d": Day,
	"D": Day,
	"w": Week,
	"W": Week,
	"y": Year,
	"Y": Year,
}

// Parse returns the duration encoded in the trailing shorthand of text.
// The second value is false if there is no shorthand or the amount does not
// fit in a time.Duration.
func Parse(text string) (time.Duration, bool) {
	m := suffix.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}

	amount, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, false
	}

	unit := units[m[2]]
	if amount > math.MaxInt64/int64(unit) {
		return 0, false
	}

	return time.Duration(amount) * unit, true
}

// StripSuffix removes the trailing shorthand from text, if present
func StripSuffix(text string) string {
	loc := suffix.FindStringIndex(text)
	if loc == nil {
		return text
	}
	return text[:loc[0]]
}

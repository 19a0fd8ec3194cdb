// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package timeparse turns natural-language time phrases ("last week",
// "3 months ago") into absolute calendar-day bounds. Unparseable phrases
// degrade to an empty range so other filters still apply.
package timeparse

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the ISO calendar-day layout all ranges are expressed in.
const DateLayout = "2006-01-02"

// Range is a half-open or closed calendar-day bound. Empty fields mean the
// bound is unset. Dates are zero-padded ISO days, so lexical comparison
// equals chronological comparison.
type Range struct {
	After  string
	Before string
}

// IsZero reports whether no bound was derived from the phrase.
func (r Range) IsZero() bool {
	return r.After == "" && r.Before == ""
}

var (
	relativeRe = regexp.MustCompile(`(\d+)\s+(day|week|month)s?\s+ago`)
	isoDateRe  = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)
)

// Parse interprets a natural-language time phrase relative to now. All
// arithmetic happens on the UTC calendar day. A phrase that cannot be
// interpreted yields an empty Range, never an error.
func Parse(phrase string, now time.Time) Range {
	p := strings.ToLower(strings.TrimSpace(phrase))
	if p == "" {
		return Range{}
	}
	today := now.UTC().Truncate(24 * time.Hour)

	switch p {
	case "today":
		return dayRange(today)
	case "yesterday":
		return dayRange(today.AddDate(0, 0, -1))
	case "this week":
		start := weekStart(today)
		return Range{After: format(start), Before: format(start.AddDate(0, 0, 6))}
	case "last week":
		start := weekStart(today).AddDate(0, 0, -7)
		return Range{After: format(start), Before: format(start.AddDate(0, 0, 6))}
	case "this month":
		start := monthStart(today)
		return Range{After: format(start), Before: format(monthEnd(today))}
	case "last month":
		prev := monthStart(today).AddDate(0, 0, -1)
		return Range{After: format(monthStart(prev)), Before: format(monthEnd(prev))}
	}

	// "N days/weeks/months ago" opens a window from that day onward.
	if m := relativeRe.FindStringSubmatch(p); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil && n >= 0 {
			switch m[2] {
			case "day":
				return Range{After: format(today.AddDate(0, 0, -n))}
			case "week":
				return Range{After: format(today.AddDate(0, 0, -n*7))}
			case "month":
				return Range{After: format(SubtractMonths(today, n))}
			}
		}
	}

	// Absolute ISO dates embedded in the phrase pass through verbatim.
	if dates := isoDateRe.FindAllString(p, 2); len(dates) > 0 {
		if len(dates) >= 2 {
			return Range{After: dates[0], Before: dates[1]}
		}
		if strings.Contains(p, "before") || strings.Contains(p, "until") {
			return Range{Before: dates[0]}
		}
		return Range{After: dates[0]}
	}

	return Range{}
}

// SubtractMonths subtracts n calendar months from t, clamping the day to the
// last valid day of the resulting month. Jan 31 minus one month lands on
// Feb 28 (29 in leap years), never rolls into March. The result is a UTC
// midnight instant.
func SubtractMonths(t time.Time, n int) time.Time {
	t = t.UTC()
	year, month, day := t.Date()

	total := int(month) - 1 - n
	year += floorDiv(total, 12)
	month = time.Month(mod(total, 12) + 1)

	if last := daysIn(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// daysIn returns the number of days in the given month.
func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// weekStart returns the Monday of the week containing t.
func weekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset)
}

func monthStart(t time.Time) time.Time {
	year, month, _ := t.Date()
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
}

func monthEnd(t time.Time) time.Time {
	year, month, _ := t.Date()
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)
}

func dayRange(t time.Time) Range {
	d := format(t)
	return Range{After: d, Before: d}
}

func format(t time.Time) string {
	return t.Format(DateLayout)
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

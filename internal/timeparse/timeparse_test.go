// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package timeparse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// Saturday 2026-02-14, mid-afternoon UTC
var refNow = time.Date(2026, 2, 14, 15, 30, 0, 0, time.UTC)

func TestParse_NamedWindows(t *testing.T) {
	tests := []struct {
		phrase string
		want   Range
	}{
		{"today", Range{After: "2026-02-14", Before: "2026-02-14"}},
		{"yesterday", Range{After: "2026-02-13", Before: "2026-02-13"}},
		{"this week", Range{After: "2026-02-09", Before: "2026-02-15"}},
		{"last week", Range{After: "2026-02-02", Before: "2026-02-08"}},
		{"this month", Range{After: "2026-02-01", Before: "2026-02-28"}},
		{"last month", Range{After: "2026-01-01", Before: "2026-01-31"}},
	}

	for _, tt := range tests {
		t.Run(tt.phrase, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.phrase, refNow))
		})
	}
}

func TestParse_RelativeUnits(t *testing.T) {
	tests := []struct {
		phrase string
		want   Range
	}{
		{"7 days ago", Range{After: "2026-02-07"}},
		{"1 day ago", Range{After: "2026-02-13"}},
		{"2 weeks ago", Range{After: "2026-01-31"}},
		{"3 months ago", Range{After: "2025-11-14"}},
	}

	for _, tt := range tests {
		t.Run(tt.phrase, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.phrase, refNow))
		})
	}
}

func TestParse_AbsoluteDates(t *testing.T) {
	assert.Equal(t, Range{After: "2026-01-05"}, Parse("since 2026-01-05", refNow))
	assert.Equal(t, Range{Before: "2026-01-05"}, Parse("before 2026-01-05", refNow))
	assert.Equal(t,
		Range{After: "2026-01-01", Before: "2026-01-31"},
		Parse("between 2026-01-01 and 2026-01-31", refNow))
}

func TestParse_UnparseablePhraseDegradesToEmpty(t *testing.T) {
	for _, phrase := range []string{"", "whenever", "the other day", "soonish"} {
		assert.True(t, Parse(phrase, refNow).IsZero(), "phrase %q", phrase)
	}
}

func TestParse_CaseInsensitive(t *testing.T) {
	assert.Equal(t, Parse("last week", refNow), Parse("Last Week", refNow))
}

func TestSubtractMonths_ClampsToLastValidDay(t *testing.T) {
	tests := []struct {
		name   string
		from   time.Time
		months int
		want   string
	}{
		{"jan31 minus 1 lands on dec31", time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC), 1, "2025-12-31"},
		{"mar31 minus 1 lands on feb28", time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC), 1, "2026-02-28"},
		{"mar31 minus 1 leap year", time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC), 1, "2024-02-29"},
		{"may31 minus 1 lands on apr30", time.Date(2026, 5, 31, 0, 0, 0, 0, time.UTC), 1, "2026-04-30"},
		{"cross year boundary", time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC), 14, "2024-12-14"},
		{"zero months is identity", time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC), 0, "2026-02-14"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SubtractMonths(tt.from, tt.months).Format(DateLayout))
		})
	}
}

// Subtracting months from the last day of any month must land on the last
// valid day of the target month, never roll into an adjacent one.
func TestSubtractMonths_LastDayNeverRollsOver(t *testing.T) {
	from := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	for n := 1; n <= 24; n++ {
		got := SubtractMonths(from, n)
		lastDay := time.Date(got.Year(), got.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
		assert.LessOrEqual(t, got.Day(), lastDay)
		wantMonth := mod(int(time.January)-1-n, 12) + 1
		assert.Equal(t, wantMonth, int(got.Month()), "n=%d", n)
	}
}

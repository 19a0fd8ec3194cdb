// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package query

import (
	"time"

	"github.com/devlore/lore-mcp/internal/record"
	"github.com/devlore/lore-mcp/internal/timeparse"
)

// DefaultMaxLookback bounds the accepted range for the `last` parameter.
const DefaultMaxLookback = 3650

// Valid units for the last/unit relative time filter
const (
	UnitDays   = "days"
	UnitWeeks  = "weeks"
	UnitMonths = "months"
)

// Normalizer reconciles the superset parameter bag into one canonical
// filter. The default store path is injected rather than read from a global
// so tests can substitute arbitrary locations.
type Normalizer struct {
	DefaultDBPath string
	MaxLookback   int
}

// NewNormalizer creates a Normalizer with the given default store path.
func NewNormalizer(defaultDBPath string) *Normalizer {
	return &Normalizer{
		DefaultDBPath: defaultDBPath,
		MaxLookback:   DefaultMaxLookback,
	}
}

// Normalize merges the parameter bag into a canonical filter, resolving
// competing time expressions by priority: `when` wins over `last`/`unit`,
// which wins over absolute `date_after`/`date_before`. `about` wins over
// `topic`. Structural violations surface as InvalidParameterError before
// any store access.
func (n *Normalizer) Normalize(p Params, now time.Time) (Canonical, error) {
	c := Canonical{
		Status:         p.Status,
		Author:         p.Author,
		Priority:       p.Priority,
		Category:       p.Category,
		Keywords:       p.Keywords,
		DBPath:         p.DBPath,
		IncludeContent: p.IncludeContent,
	}
	if c.DBPath == "" {
		c.DBPath = n.DefaultDBPath
	}

	if err := n.validateRelative(p); err != nil {
		return Canonical{}, err
	}

	switch {
	case p.When != "":
		// Unparseable phrases intentionally degrade to no time filter.
		r := timeparse.Parse(p.When, now)
		c.DateAfter = r.After
		c.DateBefore = r.Before
	case p.Last > 0:
		c.DateAfter = relativeAfter(p.Last, p.Unit, now)
	default:
		if p.DateAfter != "" && p.DateBefore != "" && p.DateAfter > p.DateBefore {
			return Canonical{}, &record.InvalidParameterError{
				Param: "date_after", Value: p.DateAfter,
				Reason: "must not be later than date_before",
			}
		}
		c.DateAfter = p.DateAfter
		c.DateBefore = p.DateBefore
	}

	// `about` is used verbatim as a topic filter; no term extraction yet.
	if p.About != "" {
		c.Topic = p.About
	} else {
		c.Topic = p.Topic
	}

	return c, nil
}

// validateRelative checks the structural constraints on last/unit.
func (n *Normalizer) validateRelative(p Params) error {
	if p.Last == 0 && p.Unit == "" {
		return nil
	}
	if p.Last == 0 {
		return &record.InvalidParameterError{
			Param: "last", Value: p.Last,
			Reason: "required when unit is set",
		}
	}
	if p.Last < 0 {
		return &record.InvalidParameterError{
			Param: "last", Value: p.Last,
			Reason: "must be a positive integer",
		}
	}
	max := n.MaxLookback
	if max <= 0 {
		max = DefaultMaxLookback
	}
	if p.Last > max {
		return &record.InvalidParameterError{
			Param: "last", Value: p.Last,
			Reason: "exceeds the maximum lookback",
		}
	}
	switch p.Unit {
	case UnitDays, UnitWeeks, UnitMonths:
		return nil
	case "":
		return &record.InvalidParameterError{
			Param: "unit", Value: p.Unit,
			Reason: "required when last is set",
		}
	default:
		return &record.InvalidParameterError{
			Param: "unit", Value: p.Unit,
			Reason: "must be one of days, weeks, months",
		}
	}
}

// relativeAfter computes the dateAfter bound for last/unit using the same
// calendar rule as the natural-language parser: exact day arithmetic for
// days and weeks, clamped calendar-month subtraction for months.
func relativeAfter(last int, unit string, now time.Time) string {
	today := now.UTC().Truncate(24 * time.Hour)
	switch unit {
	case UnitDays:
		return today.AddDate(0, 0, -last).Format(timeparse.DateLayout)
	case UnitWeeks:
		return today.AddDate(0, 0, -last*7).Format(timeparse.DateLayout)
	default:
		return timeparse.SubtractMonths(today, last).Format(timeparse.DateLayout)
	}
}

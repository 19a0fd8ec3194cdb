// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package query normalizes loosely specified query intents into canonical
// filters and executes them against the record store. All filters combine
// with logical AND; keyword lists OR within themselves.
package query

import (
	"context"
	"sort"
	"strings"

	"github.com/devlore/lore-mcp/internal/record"
)

// Engine runs filtered entity queries against an injected record store. It
// never mutates records, so concurrent read-only calls are safe as long as
// the store keeps concurrent reads consistent.
type Engine struct {
	store record.Store
}

// NewEngine creates a query engine backed by the given store.
func NewEngine(store record.Store) *Engine {
	return &Engine{store: store}
}

// QuerySessions returns sessions matching the filter, most recent date
// first. No matches is a count of zero, not an error.
func (e *Engine) QuerySessions(ctx context.Context, f SessionFilter) (*SessionsResult, error) {
	if err := checkDateOrder(f.DateAfter, f.DateBefore); err != nil {
		return nil, err
	}

	sessions, err := e.store.Sessions(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]record.Session, 0, len(sessions))
	for _, s := range sessions {
		if !matchesDate(s.Date, f.DateAfter, f.DateBefore) {
			continue
		}
		if f.Status != "" && s.Status != f.Status {
			continue
		}
		if f.Topic != "" && !containsFuzzy(s.Topics, f.Topic) {
			continue
		}
		if !f.IncludeContent {
			s.Content = ""
		}
		matched = append(matched, s)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].Date != matched[j].Date {
			return matched[i].Date > matched[j].Date
		}
		if !matched[i].Created.Equal(matched[j].Created) {
			return matched[i].Created.After(matched[j].Created)
		}
		return matched[i].ID < matched[j].ID
	})

	return &SessionsResult{Count: len(matched), Sessions: matched}, nil
}

// QueryPlans returns non-pattern plans matching the filter, most recently
// created first.
func (e *Engine) QueryPlans(ctx context.Context, f PlanFilter) (*PlansResult, error) {
	if err := checkDateOrder(f.DateAfter, f.DateBefore); err != nil {
		return nil, err
	}

	plans, err := e.store.Plans(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]record.Plan, 0, len(plans))
	for _, p := range plans {
		if !matchesDate(record.DateOf(p.Created), f.DateAfter, f.DateBefore) {
			continue
		}
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		if f.Author != "" && p.Author != f.Author {
			continue
		}
		if f.Priority != "" && p.Priority != f.Priority {
			continue
		}
		if f.Topic != "" && !containsFuzzy(p.Topics, f.Topic) {
			continue
		}
		if !f.IncludeContent {
			p.Content = ""
		}
		matched = append(matched, p)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if !matched[i].Created.Equal(matched[j].Created) {
			return matched[i].Created.After(matched[j].Created)
		}
		return matched[i].ID < matched[j].ID
	})

	return &PlansResult{Count: len(matched), Plans: matched}, nil
}

// QueryPatterns returns learned patterns matching the filter, most recently
// created first. The store already restricts the set to pattern records and
// remaps type to category; this engine only filters.
func (e *Engine) QueryPatterns(ctx context.Context, f PatternFilter) (*PatternsResult, error) {
	if err := checkDateOrder(f.DateAfter, f.DateBefore); err != nil {
		return nil, err
	}

	patterns, err := e.store.Patterns(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]record.Pattern, 0, len(patterns))
	for _, p := range patterns {
		if !matchesDate(record.DateOf(p.Created), f.DateAfter, f.DateBefore) {
			continue
		}
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.Topic != "" && !containsFuzzy(p.Keywords, f.Topic) {
			continue
		}
		if len(f.Keywords) > 0 && !matchesAnyKeyword(p.Keywords, f.Keywords) {
			continue
		}
		if !f.IncludeContent {
			p.Content = ""
		}
		matched = append(matched, p)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if !matched[i].Created.Equal(matched[j].Created) {
			return matched[i].Created.After(matched[j].Created)
		}
		return matched[i].ID < matched[j].ID
	})

	return &PatternsResult{Count: len(matched), Patterns: matched}, nil
}

// checkDateOrder rejects a bound pair the normalizer should never produce.
func checkDateOrder(after, before string) error {
	if after != "" && before != "" && after > before {
		return &record.QueryError{
			Detail: "date_after " + after + " is later than date_before " + before,
		}
	}
	return nil
}

// matchesDate applies the inclusive bounds to an ISO calendar day. Lexical
// comparison is chronological for zero-padded dates.
func matchesDate(date, after, before string) bool {
	if after != "" && date < after {
		return false
	}
	if before != "" && date > before {
		return false
	}
	return true
}

// containsFuzzy reports whether any value in the set contains the filter as
// a case-insensitive substring.
func containsFuzzy(set []string, filter string) bool {
	needle := strings.ToLower(filter)
	for _, v := range set {
		if strings.Contains(strings.ToLower(v), needle) {
			return true
		}
	}
	return false
}

// matchesAnyKeyword reports whether at least one filter keyword matches the
// record's keyword set (OR within the list).
func matchesAnyKeyword(set, filters []string) bool {
	for _, f := range filters {
		if containsFuzzy(set, f) {
			return true
		}
	}
	return false
}

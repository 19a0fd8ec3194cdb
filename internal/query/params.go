// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package query

import "github.com/devlore/lore-mcp/internal/record"

// Params is the superset parameter bag accepted from callers. Every field is
// optional; several express the same filter in different ways and are
// reconciled by the Normalizer.
type Params struct {
	// Time filters, highest priority first
	When       string `json:"when,omitempty"`        // natural language ("last week")
	Last       int    `json:"last,omitempty"`        // used together with Unit
	Unit       string `json:"unit,omitempty"`        // days, weeks, months
	DateAfter  string `json:"date_after,omitempty"`  // ISO date, passed through
	DateBefore string `json:"date_before,omitempty"` // ISO date, passed through

	// Topic filters; About wins over Topic
	About string `json:"about,omitempty"`
	Topic string `json:"topic,omitempty"`

	// Entity-specific fields, passed through unvalidated
	Status   string   `json:"status,omitempty"`
	Author   string   `json:"author,omitempty"`
	Priority string   `json:"priority,omitempty"`
	Category string   `json:"category,omitempty"`
	Keywords []string `json:"keywords,omitempty"`

	DBPath         string `json:"db_path,omitempty"`
	IncludeContent bool   `json:"include_content,omitempty"`
}

// Canonical is the single normalized filter representation produced by the
// Normalizer. Downstream narrowing turns it into one of the per-entity
// filter types so query functions never see irrelevant fields.
type Canonical struct {
	DateAfter  string
	DateBefore string
	Topic      string

	Status   string
	Author   string
	Priority string
	Category string
	Keywords []string

	DBPath         string
	IncludeContent bool
}

// SessionFilter is the canonical filter narrowed to session fields.
type SessionFilter struct {
	DateAfter      string
	DateBefore     string
	Topic          string
	Status         string
	IncludeContent bool
}

// PlanFilter is the canonical filter narrowed to plan fields.
type PlanFilter struct {
	DateAfter      string
	DateBefore     string
	Topic          string
	Status         string
	Author         string
	Priority       string
	IncludeContent bool
}

// PatternFilter is the canonical filter narrowed to learned-pattern fields.
// Topic and Keywords both match against the pattern's keyword set.
type PatternFilter struct {
	DateAfter      string
	DateBefore     string
	Topic          string
	Category       string
	Keywords       []string
	IncludeContent bool
}

// SessionFilter narrows the canonical filter for session queries.
func (c Canonical) SessionFilter() SessionFilter {
	return SessionFilter{
		DateAfter:      c.DateAfter,
		DateBefore:     c.DateBefore,
		Topic:          c.Topic,
		Status:         c.Status,
		IncludeContent: c.IncludeContent,
	}
}

// PlanFilter narrows the canonical filter for plan queries.
func (c Canonical) PlanFilter() PlanFilter {
	return PlanFilter{
		DateAfter:      c.DateAfter,
		DateBefore:     c.DateBefore,
		Topic:          c.Topic,
		Status:         c.Status,
		Author:         c.Author,
		Priority:       c.Priority,
		IncludeContent: c.IncludeContent,
	}
}

// PatternFilter narrows the canonical filter for pattern queries.
func (c Canonical) PatternFilter() PatternFilter {
	return PatternFilter{
		DateAfter:      c.DateAfter,
		DateBefore:     c.DateBefore,
		Topic:          c.Topic,
		Category:       c.Category,
		Keywords:       c.Keywords,
		IncludeContent: c.IncludeContent,
	}
}

// SessionsResult is the shape returned by QuerySessions.
type SessionsResult struct {
	Count    int              `json:"count"`
	Sessions []record.Session `json:"sessions"`
}

// PlansResult is the shape returned by QueryPlans.
type PlansResult struct {
	Count int           `json:"count"`
	Plans []record.Plan `json:"plans"`
}

// PatternsResult is the shape returned by QueryPatterns.
type PatternsResult struct {
	Count    int              `json:"count"`
	Patterns []record.Pattern `json:"patterns"`
}

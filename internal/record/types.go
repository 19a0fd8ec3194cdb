// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package record

import (
	"context"
	"time"
)

// Kind discriminates the three knowledge record types. It is assigned once
// when records are loaded from the store; query logic must switch on Kind
// rather than inspecting identifiers.
type Kind string

// Record kinds
const (
	KindSession Kind = "session"
	KindPlan    Kind = "plan"
	KindPattern Kind = "pattern"
)

// PatternIDPrefix is the reserved identifier prefix that marks a stored plan
// row as a learned pattern. Only the store boundary is allowed to interpret
// it; everything above sees the Kind discriminant.
const PatternIDPrefix = "pattern-"

// Plan status values (closed set)
const (
	PlanStatusPlanned   = "PLANNED"
	PlanStatusActive    = "ACTIVE"
	PlanStatusPaused    = "PAUSED"
	PlanStatusComplete  = "COMPLETE"
	PlanStatusCancelled = "CANCELLED"
)

// ValidPlanStatuses returns all valid plan status values
func ValidPlanStatuses() []string {
	return []string{
		PlanStatusPlanned,
		PlanStatusActive,
		PlanStatusPaused,
		PlanStatusComplete,
		PlanStatusCancelled,
	}
}

// IsValidPlanStatus checks if a plan status is valid
func IsValidPlanStatus(status string) bool {
	for _, valid := range ValidPlanStatuses() {
		if status == valid {
			return true
		}
	}
	return false
}

// Plan priority values
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// DateLayout is the calendar-day layout used for all date filtering.
// Zero-padded ISO dates compare lexically in chronological order.
const DateLayout = "2006-01-02"

// Session is a dated work-log entry belonging to a project.
type Session struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	Date      string    `json:"date"` // ISO calendar day (UTC)
	Title     string    `json:"title"`
	Status    string    `json:"status"`
	Topics    []string  `json:"topics"`
	Content   string    `json:"content,omitempty"`
	Created   time.Time `json:"created"`
	Updated   time.Time `json:"updated"`
}

// Plan is a longer-lived, status-tracked work item.
type Plan struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	Title     string    `json:"title"`
	Status    string    `json:"status"`
	Author    string    `json:"author"`
	Priority  string    `json:"priority,omitempty"`
	Type      string    `json:"type,omitempty"`
	Topics    []string  `json:"topics"`
	Content   string    `json:"content,omitempty"`
	Created   time.Time `json:"created"`
	Updated   time.Time `json:"updated"`
}

// Pattern is a reusable learned insight. Physically it shares the plan table
// (prefixed identifier, plan type column read as category); the store remaps
// it into this shape so nothing downstream has to know that.
type Pattern struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	Title     string    `json:"title"`
	Category  string    `json:"category,omitempty"`
	Keywords  []string  `json:"keywords"`
	Content   string    `json:"content,omitempty"`
	Created   time.Time `json:"created"`
	Updated   time.Time `json:"updated"`
}

// Store is the read-side interface the query engine and search ranker are
// built on. Implementations must return records in a stable order and are
// expected to be safe for concurrent readers; the engine never mutates.
type Store interface {
	// Sessions returns all sessions, most recent date first.
	Sessions(ctx context.Context) ([]Session, error)
	// Plans returns all non-pattern plans, most recently created first.
	Plans(ctx context.Context) ([]Plan, error)
	// Patterns returns all learned patterns, most recently created first.
	Patterns(ctx context.Context) ([]Pattern, error)
	// Size reports the backing store's on-disk size in bytes. A freshly
	// initialized or absent store reports 0 rather than failing.
	Size() (int64, error)
	// Path returns the store location, for stats and error context.
	Path() string
}

// DateOf extracts the filtering day for a timestamp, in UTC.
func DateOf(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

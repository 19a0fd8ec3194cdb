// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package query

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devlore/lore-mcp/internal/record"
)

// fakeStore is an in-memory record.Store for engine tests
type fakeStore struct {
	sessions []record.Session
	plans    []record.Plan
	patterns []record.Pattern
	size     int64
	path     string
	err      error
}

func (f *fakeStore) Sessions(ctx context.Context) ([]record.Session, error) {
	if f.err != nil {
		return nil, f.err
	}
	return append([]record.Session(nil), f.sessions...), nil
}

func (f *fakeStore) Plans(ctx context.Context) ([]record.Plan, error) {
	if f.err != nil {
		return nil, f.err
	}
	return append([]record.Plan(nil), f.plans...), nil
}

func (f *fakeStore) Patterns(ctx context.Context) ([]record.Pattern, error) {
	if f.err != nil {
		return nil, f.err
	}
	return append([]record.Pattern(nil), f.patterns...), nil
}

func (f *fakeStore) Size() (int64, error) { return f.size, nil }
func (f *fakeStore) Path() string         { return f.path }

func testSessions() []record.Session {
	return []record.Session{
		{
			ID: "ses-1", ProjectID: "proj-1", Date: "2026-02-10",
			Title: "SQLite test harness", Status: "complete",
			Topics:  []string{"testing", "sqlite"},
			Content: "Set up the sqlite fixtures for the store tests.",
			Created: time.Date(2026, 2, 10, 18, 0, 0, 0, time.UTC),
		},
		{
			ID: "ses-2", ProjectID: "proj-1", Date: "2026-02-11",
			Title: "MCP tool wiring", Status: "in-progress",
			Topics:  []string{"testing", "mcp"},
			Content: "Wired the query tools into the MCP server.",
			Created: time.Date(2026, 2, 11, 18, 0, 0, 0, time.UTC),
		},
	}
}

func testPlans() []record.Plan {
	return []record.Plan{
		{
			ID: "plan-1", ProjectID: "proj-1", Title: "Ship search ranking",
			Status: record.PlanStatusActive, Author: "sam", Priority: record.PriorityHigh,
			Topics:  []string{"search", "ranking"},
			Content: "Field-weighted term matching with recency tiebreak.",
			Created: time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC),
		},
		{
			ID: "plan-2", ProjectID: "proj-1", Title: "Store migration cleanup",
			Status: record.PlanStatusComplete, Author: "sam", Priority: record.PriorityMedium,
			Topics:  []string{"database"},
			Content: "Drop the legacy columns.",
			Created: time.Date(2026, 1, 20, 9, 0, 0, 0, time.UTC),
		},
	}
}

func testPatterns() []record.Pattern {
	return []record.Pattern{
		{
			ID: "pattern-1", ProjectID: "proj-1", Title: "Prefer table-driven tests",
			Category: "testing", Keywords: []string{"testing", "go"},
			Content: "Table-driven tests keep fixtures small and intent obvious.",
			Created: time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC),
		},
		{
			ID: "pattern-2", ProjectID: "proj-1", Title: "Index before you sort",
			Category: "database", Keywords: []string{"sqlite", "performance"},
			Content: "Composite indexes beat post-hoc sorting on large stores.",
			Created: time.Date(2026, 1, 25, 9, 0, 0, 0, time.UTC),
		},
	}
}

func newTestEngine() *Engine {
	return NewEngine(&fakeStore{
		sessions: testSessions(),
		plans:    testPlans(),
		patterns: testPatterns(),
		path:     "/tmp/lore-test.db",
	})
}

func TestQuerySessions_DateAfter(t *testing.T) {
	e := newTestEngine()

	result, err := e.QuerySessions(context.Background(), SessionFilter{DateAfter: "2026-02-11"})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Count)
	assert.Equal(t, "ses-2", result.Sessions[0].ID)
}

func TestQuerySessions_Topic(t *testing.T) {
	e := newTestEngine()

	result, err := e.QuerySessions(context.Background(), SessionFilter{Topic: "mcp"})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Count)
	assert.Equal(t, "ses-2", result.Sessions[0].ID)
}

func TestQuerySessions_CombinedFiltersAreAND(t *testing.T) {
	e := newTestEngine()

	result, err := e.QuerySessions(context.Background(), SessionFilter{
		DateAfter: "2026-02-10",
		Topic:     "testing",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Count)

	// Narrowing either leg must shrink the result, never widen it
	result, err = e.QuerySessions(context.Background(), SessionFilter{
		DateAfter: "2026-02-11",
		Topic:     "testing",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Count)
	assert.Equal(t, "ses-2", result.Sessions[0].ID)
}

func TestQuerySessions_TopicMatchIsCaseInsensitiveSubstring(t *testing.T) {
	e := newTestEngine()

	result, err := e.QuerySessions(context.Background(), SessionFilter{Topic: "SQL"})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Count)
	assert.Equal(t, "ses-1", result.Sessions[0].ID)
}

func TestQuerySessions_NoMatchesIsNotAnError(t *testing.T) {
	e := newTestEngine()

	result, err := e.QuerySessions(context.Background(), SessionFilter{Topic: "nonexistent"})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Count)
	assert.Empty(t, result.Sessions)
}

func TestQuerySessions_ContentExcludedByDefault(t *testing.T) {
	e := newTestEngine()

	result, err := e.QuerySessions(context.Background(), SessionFilter{})
	require.NoError(t, err)
	for _, s := range result.Sessions {
		assert.Empty(t, s.Content)
	}

	result, err = e.QuerySessions(context.Background(), SessionFilter{IncludeContent: true})
	require.NoError(t, err)
	for _, s := range result.Sessions {
		assert.NotEmpty(t, s.Content)
	}
}

func TestQuerySessions_OrderedMostRecentFirst(t *testing.T) {
	e := newTestEngine()

	result, err := e.QuerySessions(context.Background(), SessionFilter{})
	require.NoError(t, err)
	require.Equal(t, 2, result.Count)
	assert.Equal(t, "ses-2", result.Sessions[0].ID)
	assert.Equal(t, "ses-1", result.Sessions[1].ID)
}

func TestQuerySessions_Idempotent(t *testing.T) {
	e := newTestEngine()
	f := SessionFilter{Topic: "testing"}

	first, err := e.QuerySessions(context.Background(), f)
	require.NoError(t, err)
	second, err := e.QuerySessions(context.Background(), f)
	require.NoError(t, err)

	assert.Equal(t, first.Count, second.Count)
	assert.Equal(t, first.Sessions, second.Sessions)
}

func TestQuerySessions_InconsistentBoundsIsQueryError(t *testing.T) {
	e := newTestEngine()

	_, err := e.QuerySessions(context.Background(), SessionFilter{
		DateAfter:  "2026-02-12",
		DateBefore: "2026-02-10",
	})
	var qerr *record.QueryError
	require.ErrorAs(t, err, &qerr)
}

func TestQuerySessions_StoreErrorPropagatesUnchanged(t *testing.T) {
	storageErr := &record.StorageError{Path: "/tmp/lore-test.db", Cause: "corrupt", Err: errors.New("file is not a database")}
	e := NewEngine(&fakeStore{err: storageErr})

	_, err := e.QuerySessions(context.Background(), SessionFilter{})
	var serr *record.StorageError
	require.ErrorAs(t, err, &serr)
	assert.Same(t, storageErr, serr)
}

func TestQueryPlans_StatusAuthorPriority(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()

	byStatus, err := e.QueryPlans(ctx, PlanFilter{Status: record.PlanStatusActive})
	require.NoError(t, err)
	assert.Equal(t, 1, byStatus.Count)
	assert.Equal(t, "plan-1", byStatus.Plans[0].ID)

	byAuthor, err := e.QueryPlans(ctx, PlanFilter{Author: "sam"})
	require.NoError(t, err)
	assert.Equal(t, 2, byAuthor.Count)

	byPriority, err := e.QueryPlans(ctx, PlanFilter{Priority: record.PriorityHigh})
	require.NoError(t, err)
	assert.Equal(t, 1, byPriority.Count)
	assert.Equal(t, "plan-1", byPriority.Plans[0].ID)
}

func TestQueryPlans_DateFilterUsesCreatedDay(t *testing.T) {
	e := newTestEngine()

	result, err := e.QueryPlans(context.Background(), PlanFilter{DateAfter: "2026-02-01"})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Count)
	assert.Equal(t, "plan-1", result.Plans[0].ID)
}

func TestQueryPlans_OrderedMostRecentlyCreatedFirst(t *testing.T) {
	e := newTestEngine()

	result, err := e.QueryPlans(context.Background(), PlanFilter{})
	require.NoError(t, err)
	require.Equal(t, 2, result.Count)
	assert.Equal(t, "plan-1", result.Plans[0].ID)
	assert.Equal(t, "plan-2", result.Plans[1].ID)
}

func TestQueryPatterns_Category(t *testing.T) {
	e := newTestEngine()

	result, err := e.QueryPatterns(context.Background(), PatternFilter{Category: "testing"})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Count)
	assert.Equal(t, "pattern-1", result.Patterns[0].ID)
}

func TestQueryPatterns_KeywordsORWithinANDAcross(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()

	// Either keyword matching is enough
	result, err := e.QueryPatterns(ctx, PatternFilter{Keywords: []string{"go", "performance"}})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Count)

	// Keywords AND category must both hold
	result, err = e.QueryPatterns(ctx, PatternFilter{
		Keywords: []string{"go", "performance"},
		Category: "database",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Count)
	assert.Equal(t, "pattern-2", result.Patterns[0].ID)
}

func TestStats_TotalIsSumOfKinds(t *testing.T) {
	e := newTestEngine()

	stats, err := e.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Sessions)
	assert.Equal(t, 2, stats.Plans)
	assert.Equal(t, 2, stats.Learned)
	assert.Equal(t, stats.Sessions+stats.Plans+stats.Learned, stats.Total)
	assert.Equal(t, "/tmp/lore-test.db", stats.DBPath)
}

func TestStats_EmptyStore(t *testing.T) {
	e := NewEngine(&fakeStore{path: "/tmp/empty.db"})

	stats, err := e.Stats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.Sessions)
	assert.Zero(t, stats.Plans)
	assert.Zero(t, stats.Learned)
	assert.Zero(t, stats.Total)
	assert.GreaterOrEqual(t, stats.DBSize, int64(0))
}

// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package search implements relevance-ranked full-text search across all
// record kinds. Scoring is frequency- and field-weighted term matching:
// every term occurrence adds its field weight, so a record with more
// occurrences of the same terms never ranks below one with fewer.
package search

import (
	"context"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/devlore/lore-mcp/internal/record"
)

// Field weights per term occurrence
const (
	titleWeight   = 10.0
	topicWeight   = 8.0
	contentWeight = 2.0
)

// DefaultLimit caps the result list when the caller gives no limit.
const DefaultLimit = 10

// SnippetLength bounds the excerpt returned with each hit, in bytes.
const SnippetLength = 160

// Hit is one ranked search result.
type Hit struct {
	Kind    record.Kind `json:"kind"`
	ID      string      `json:"id"`
	Title   string      `json:"title"`
	Score   float64     `json:"score"`
	Snippet string      `json:"snippet"`

	updated time.Time
}

// Result is the shape returned by SearchContext.
type Result struct {
	Count   int   `json:"count"`
	Results []Hit `json:"results"`
}

// Ranker searches sessions, plans and patterns simultaneously and produces
// one ranked list across all three kinds.
type Ranker struct {
	store record.Store
}

// NewRanker creates a search ranker backed by the given store.
func NewRanker(store record.Store) *Ranker {
	return &Ranker{store: store}
}

// SearchContext matches the query terms against title, topic and content
// fields of every record kind. Results are sorted by descending score, ties
// broken by recency then identifier; limit truncates without reordering.
// An empty or all-whitespace query yields zero hits.
func (r *Ranker) SearchContext(ctx context.Context, query string, limit int) (*Result, error) {
	terms := tokenize(query)
	if len(terms) == 0 {
		return &Result{Count: 0, Results: []Hit{}}, nil
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	sessions, err := r.store.Sessions(ctx)
	if err != nil {
		return nil, err
	}
	plans, err := r.store.Plans(ctx)
	if err != nil {
		return nil, err
	}
	patterns, err := r.store.Patterns(ctx)
	if err != nil {
		return nil, err
	}

	hits := make([]Hit, 0, len(sessions)+len(plans)+len(patterns))
	for _, s := range sessions {
		if h, ok := scoreRecord(record.KindSession, s.ID, s.Title, s.Topics, s.Content, s.Updated, terms); ok {
			hits = append(hits, h)
		}
	}
	for _, p := range plans {
		if h, ok := scoreRecord(record.KindPlan, p.ID, p.Title, p.Topics, p.Content, p.Updated, terms); ok {
			hits = append(hits, h)
		}
	}
	for _, p := range patterns {
		if h, ok := scoreRecord(record.KindPattern, p.ID, p.Title, p.Keywords, p.Content, p.Updated, terms); ok {
			hits = append(hits, h)
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		if !hits[i].updated.Equal(hits[j].updated) {
			return hits[i].updated.After(hits[j].updated)
		}
		return hits[i].ID < hits[j].ID
	})

	if len(hits) > limit {
		hits = hits[:limit]
	}

	return &Result{Count: len(hits), Results: hits}, nil
}

// scoreRecord computes the weighted term-frequency score for one record.
// The second return value is false when no term matches any field.
func scoreRecord(kind record.Kind, id, title string, topics []string, content string, updated time.Time, terms []string) (Hit, bool) {
	lowerTitle := strings.ToLower(title)
	lowerContent := strings.ToLower(content)
	lowerTopics := make([]string, len(topics))
	for i, t := range topics {
		lowerTopics[i] = strings.ToLower(t)
	}

	var score float64
	firstMatch := -1
	for _, term := range terms {
		score += titleWeight * float64(strings.Count(lowerTitle, term))
		for _, topic := range lowerTopics {
			score += topicWeight * float64(strings.Count(topic, term))
		}
		if n := strings.Count(lowerContent, term); n > 0 {
			score += contentWeight * float64(n)
			if idx := strings.Index(lowerContent, term); firstMatch == -1 || idx < firstMatch {
				firstMatch = idx
			}
		}
	}
	if score == 0 {
		return Hit{}, false
	}

	return Hit{
		Kind:    kind,
		ID:      id,
		Title:   title,
		Score:   score,
		Snippet: extractSnippet(content, firstMatch),
		updated: updated,
	}, true
}

// extractSnippet returns a bounded excerpt of content centered on the first
// match, trimmed to word boundaries. Records that matched only on title or
// topics get the head of the content instead.
func extractSnippet(content string, matchIdx int) string {
	if content == "" {
		return ""
	}
	if matchIdx < 0 {
		matchIdx = 0
	}

	start := matchIdx - SnippetLength/2
	if start < 0 {
		start = 0
	}
	end := start + SnippetLength
	if end > len(content) {
		end = len(content)
		if start = end - SnippetLength; start < 0 {
			start = 0
		}
	}

	// Never cut through a multibyte rune at either edge.
	for start < end && !utf8.RuneStart(content[start]) {
		start++
	}
	for end > start && end < len(content) && !utf8.RuneStart(content[end]) {
		end--
	}

	snippet := content[start:end]
	if start > 0 {
		if idx := strings.IndexByte(snippet, ' '); idx >= 0 && idx < len(snippet)-1 {
			snippet = snippet[idx+1:]
		}
		snippet = "..." + snippet
	}
	if end < len(content) {
		if idx := strings.LastIndexByte(snippet, ' '); idx > 0 {
			snippet = snippet[:idx]
		}
		snippet = snippet + "..."
	}
	return strings.TrimSpace(snippet)
}

// tokenize splits the query into lowercase deduplicated terms.
func tokenize(query string) []string {
	fields := strings.Fields(strings.ToLower(query))
	seen := make(map[string]bool, len(fields))
	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		if !seen[f] {
			seen[f] = true
			terms = append(terms, f)
		}
	}
	return terms
}

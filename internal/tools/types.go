// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package tools defines the MCP tool surface over the query engine and
// search ranker. Handlers validate nothing themselves: raw arguments go
// through the normalizer, which owns the parameter contract.
package tools

import (
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/devlore/lore-mcp/internal/database"
	"github.com/devlore/lore-mcp/internal/query"
	"github.com/devlore/lore-mcp/internal/record"
)

// ToolContext holds shared dependencies for all tools
type ToolContext struct {
	Store              record.Store
	Normalizer         *query.Normalizer
	DefaultSearchLimit int
}

// NewToolContext creates a tool context over the default store
func NewToolContext(store record.Store, defaultDBPath string) *ToolContext {
	return &ToolContext{
		Store:      store,
		Normalizer: query.NewNormalizer(defaultDBPath),
	}
}

// storeFor resolves the store for one call. A db_path override opens a
// separate store for the duration of the call; the default path reuses the
// long-lived connection.
func (tc *ToolContext) storeFor(dbPath string) (record.Store, func(), error) {
	if dbPath == "" || dbPath == tc.Store.Path() {
		return tc.Store, func() {}, nil
	}
	store, err := database.Open(dbPath)
	if err != nil {
		return nil, nil, err
	}
	return store, func() { _ = store.Close() }, nil
}

// paramsFromRequest extracts the superset parameter bag from a tool call
func paramsFromRequest(request mcp.CallToolRequest) query.Params {
	return query.Params{
		When:           request.GetString("when", ""),
		Last:           request.GetInt("last", 0),
		Unit:           request.GetString("unit", ""),
		DateAfter:      request.GetString("date_after", ""),
		DateBefore:     request.GetString("date_before", ""),
		About:          request.GetString("about", ""),
		Topic:          request.GetString("topic", ""),
		Status:         request.GetString("status", ""),
		Author:         request.GetString("author", ""),
		Priority:       request.GetString("priority", ""),
		Category:       request.GetString("category", ""),
		Keywords:       request.GetStringSlice("keywords", nil),
		DBPath:         request.GetString("db_path", ""),
		IncludeContent: request.GetBool("include_content", false),
	}
}

// timeFilterOptions returns the shared time/topic parameter definitions
// used by all three query tools.
func timeFilterOptions() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("when",
			mcp.Description("Natural-language time filter. Examples: 'last week', 'this month', '3 days ago'. Overrides last/unit and date bounds."),
		),
		mcp.WithNumber("last",
			mcp.Description("Relative lookback count, used together with 'unit'. Overrides date bounds."),
		),
		mcp.WithString("unit",
			mcp.Description("Lookback unit: days, weeks, or months"),
			mcp.Enum("days", "weeks", "months"),
		),
		mcp.WithString("date_after",
			mcp.Description("Only records on or after this ISO date (YYYY-MM-DD)"),
		),
		mcp.WithString("date_before",
			mcp.Description("Only records on or before this ISO date (YYYY-MM-DD)"),
		),
		mcp.WithString("about",
			mcp.Description("Natural-language topic. Takes precedence over 'topic'."),
		),
		mcp.WithString("topic",
			mcp.Description("Topic filter, case-insensitive substring match"),
		),
		mcp.WithString("db_path",
			mcp.Description("Override the knowledge store location"),
		),
		mcp.WithBoolean("include_content",
			mcp.Description("Include full content bodies in results (default: false)"),
		),
	}
}

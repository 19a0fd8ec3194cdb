// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/devlore/lore-mcp/internal/search"
)

// NewSearchContextTool creates the lore_search_context tool definition
func NewSearchContextTool() mcp.Tool {
	return mcp.NewTool("lore_search_context",
		mcp.WithDescription("Full-text search across sessions, plans and learned patterns at once. Returns one relevance-ranked list with snippets."),
		mcp.WithString("query",
			mcp.Description("Search terms. Matched case-insensitively against titles, topics and content."),
			mcp.Required(),
		),
		mcp.WithNumber("limit",
			mcp.Description("Max results. Default: 10"),
		),
		mcp.WithString("db_path",
			mcp.Description("Override the knowledge store location"),
		),
	)
}

// SearchContextHandler handles the lore_search_context tool
func SearchContextHandler(tc *ToolContext) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		q := request.GetString("query", "")
		if strings.TrimSpace(q) == "" {
			return mcp.NewToolResultError("please provide a non-empty 'query'"), nil
		}
		limit := request.GetInt("limit", tc.DefaultSearchLimit)

		store, release, err := tc.storeFor(request.GetString("db_path", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		defer release()

		result, err := search.NewRanker(store).SearchContext(ctx, q, limit)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		if result.Count == 0 {
			return mcp.NewToolResultText(fmt.Sprintf("No matches for: '%s'", q)), nil
		}

		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("Found %d matches:\n\n", result.Count))
		for i, hit := range result.Results {
			sb.WriteString(fmt.Sprintf("## %d. %s\n", i+1, hit.Title))
			sb.WriteString(fmt.Sprintf("**Kind**: %s | **ID**: `%s` | **Score**: %.1f\n", hit.Kind, hit.ID, hit.Score))
			if hit.Snippet != "" {
				sb.WriteString(fmt.Sprintf("> %s\n", hit.Snippet))
			}
			sb.WriteString("\n")
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

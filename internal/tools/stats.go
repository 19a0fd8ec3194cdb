// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/devlore/lore-mcp/internal/query"
)

// NewGetStatsTool creates the lore_get_stats tool definition
func NewGetStatsTool() mcp.Tool {
	return mcp.NewTool("lore_get_stats",
		mcp.WithDescription("Summarize the knowledge store: record counts per kind and on-disk size."),
		mcp.WithString("db_path",
			mcp.Description("Override the knowledge store location"),
		),
	)
}

// GetStatsHandler handles the lore_get_stats tool
func GetStatsHandler(tc *ToolContext) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		store, release, err := tc.storeFor(request.GetString("db_path", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		defer release()

		stats, err := query.NewEngine(store).Stats(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		out := fmt.Sprintf("# Knowledge Store Stats\n\n"+
			"**Sessions**: %d\n"+
			"**Plans**: %d\n"+
			"**Learned patterns**: %d\n"+
			"**Total records**: %d\n"+
			"**Store size**: %d bytes\n"+
			"**Store path**: %s\n",
			stats.Sessions, stats.Plans, stats.Learned, stats.Total, stats.DBSize, stats.DBPath)

		return mcp.NewToolResultText(out), nil
	}
}

// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package server

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/devlore/lore-mcp/internal/config"
	"github.com/devlore/lore-mcp/internal/record"
	"github.com/devlore/lore-mcp/internal/tools"
)

// MCPServer wraps the mcp-go server with our configuration
type MCPServer struct {
	mcpServer *server.MCPServer
	config    *config.Config
	toolCtx   *tools.ToolContext
}

// NewMCPServer creates a new MCP server instance over the given store
func NewMCPServer(cfg *config.Config, store record.Store) *MCPServer {
	mcpServer := server.NewMCPServer(
		"Lore",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	toolCtx := tools.NewToolContext(store, cfg.Database.SQLitePath)
	toolCtx.Normalizer.MaxLookback = cfg.Query.MaxLookback
	toolCtx.DefaultSearchLimit = cfg.Search.DefaultLimit

	srv := &MCPServer{
		mcpServer: mcpServer,
		config:    cfg,
		toolCtx:   toolCtx,
	}
	srv.registerTools()
	return srv
}

// registerTools registers the five query/search tools
func (s *MCPServer) registerTools() {
	// lore_query_sessions: filtered reads over dated work-log entries
	s.mcpServer.AddTool(tools.NewQuerySessionsTool(), tools.QuerySessionsHandler(s.toolCtx))

	// lore_query_plans: filtered reads over status-tracked work items
	s.mcpServer.AddTool(tools.NewQueryPlansTool(), tools.QueryPlansHandler(s.toolCtx))

	// lore_query_patterns: filtered reads over learned patterns
	s.mcpServer.AddTool(tools.NewQueryPatternsTool(), tools.QueryPatternsHandler(s.toolCtx))

	// lore_search_context: ranked full-text search across all kinds
	s.mcpServer.AddTool(tools.NewSearchContextTool(), tools.SearchContextHandler(s.toolCtx))

	// lore_get_stats: store summary
	s.mcpServer.AddTool(tools.NewGetStatsTool(), tools.GetStatsHandler(s.toolCtx))
}

// GetMCPServer returns the underlying MCP server
func (s *MCPServer) GetMCPServer() *server.MCPServer {
	return s.mcpServer
}

// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/devlore/lore-mcp/internal/query"
	"github.com/devlore/lore-mcp/internal/record"
)

// NewQuerySessionsTool creates the lore_query_sessions tool definition
func NewQuerySessionsTool() mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription("Find development sessions (dated work-log entries). Filter by time ('when', 'last'/'unit', or date bounds), topic, and status. All filters combine with AND."),
		mcp.WithString("status",
			mcp.Description("Session status, exact match. Examples: 'complete', 'in-progress'"),
		),
	}
	opts = append(opts, timeFilterOptions()...)
	return mcp.NewTool("lore_query_sessions", opts...)
}

// QuerySessionsHandler handles the lore_query_sessions tool
func QuerySessionsHandler(tc *ToolContext) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		canonical, err := tc.Normalizer.Normalize(paramsFromRequest(request), time.Now())
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		store, release, err := tc.storeFor(canonical.DBPath)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		defer release()

		result, err := query.NewEngine(store).QuerySessions(ctx, canonical.SessionFilter())
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		return mcp.NewToolResultText(formatSessions(result)), nil
	}
}

// NewQueryPlansTool creates the lore_query_plans tool definition
func NewQueryPlansTool() mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription("Find plans (longer-lived work items). Filter by time, topic, status, author, and priority. All filters combine with AND."),
		mcp.WithString("status",
			mcp.Description("Plan status, exact match: PLANNED, ACTIVE, PAUSED, COMPLETE, CANCELLED"),
			mcp.Enum(record.ValidPlanStatuses()...),
		),
		mcp.WithString("author",
			mcp.Description("Plan author, exact match"),
		),
		mcp.WithString("priority",
			mcp.Description("Plan priority, exact match: high, medium, low"),
			mcp.Enum(record.PriorityHigh, record.PriorityMedium, record.PriorityLow),
		),
	}
	opts = append(opts, timeFilterOptions()...)
	return mcp.NewTool("lore_query_plans", opts...)
}

// QueryPlansHandler handles the lore_query_plans tool
func QueryPlansHandler(tc *ToolContext) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		canonical, err := tc.Normalizer.Normalize(paramsFromRequest(request), time.Now())
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		store, release, err := tc.storeFor(canonical.DBPath)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		defer release()

		result, err := query.NewEngine(store).QueryPlans(ctx, canonical.PlanFilter())
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		return mcp.NewToolResultText(formatPlans(result)), nil
	}
}

// NewQueryPatternsTool creates the lore_query_patterns tool definition
func NewQueryPatternsTool() mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription("Find learned patterns (reusable insights). Filter by time, category, and keywords. Keywords OR-match within the list, AND with everything else."),
		mcp.WithString("category",
			mcp.Description("Pattern category, exact match"),
		),
		mcp.WithArray("keywords",
			mcp.Description("Match patterns carrying at least one of these keywords"),
			mcp.Items(map[string]any{"type": "string"}),
		),
	}
	opts = append(opts, timeFilterOptions()...)
	return mcp.NewTool("lore_query_patterns", opts...)
}

// QueryPatternsHandler handles the lore_query_patterns tool
func QueryPatternsHandler(tc *ToolContext) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		canonical, err := tc.Normalizer.Normalize(paramsFromRequest(request), time.Now())
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		store, release, err := tc.storeFor(canonical.DBPath)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		defer release()

		result, err := query.NewEngine(store).QueryPatterns(ctx, canonical.PatternFilter())
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		return mcp.NewToolResultText(formatPatterns(result)), nil
	}
}

// formatSessions formats session results for output
func formatSessions(result *query.SessionsResult) string {
	if result.Count == 0 {
		return "No sessions found."
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d sessions:\n\n", result.Count))
	for i, s := range result.Sessions {
		sb.WriteString(fmt.Sprintf("## %d. %s\n", i+1, s.Title))
		sb.WriteString(fmt.Sprintf("**Date**: %s | **Status**: %s | **Project**: %s\n", s.Date, s.Status, s.ProjectID))
		if len(s.Topics) > 0 {
			sb.WriteString(fmt.Sprintf("**Topics**: %s\n", strings.Join(s.Topics, ", ")))
		}
		writeContent(&sb, s.Content)
		sb.WriteString("\n")
	}
	return sb.String()
}

// formatPlans formats plan results for output
func formatPlans(result *query.PlansResult) string {
	if result.Count == 0 {
		return "No plans found."
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d plans:\n\n", result.Count))
	for i, p := range result.Plans {
		sb.WriteString(fmt.Sprintf("## %d. %s\n", i+1, p.Title))
		sb.WriteString(fmt.Sprintf("**Status**: %s | **Author**: %s", p.Status, p.Author))
		if p.Priority != "" {
			sb.WriteString(fmt.Sprintf(" | **Priority**: %s", p.Priority))
		}
		sb.WriteString(fmt.Sprintf(" | **Created**: %s\n", p.Created.Format("2006-01-02")))
		if len(p.Topics) > 0 {
			sb.WriteString(fmt.Sprintf("**Topics**: %s\n", strings.Join(p.Topics, ", ")))
		}
		writeContent(&sb, p.Content)
		sb.WriteString("\n")
	}
	return sb.String()
}

// formatPatterns formats pattern results for output
func formatPatterns(result *query.PatternsResult) string {
	if result.Count == 0 {
		return "No patterns found."
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d patterns:\n\n", result.Count))
	for i, p := range result.Patterns {
		sb.WriteString(fmt.Sprintf("## %d. %s\n", i+1, p.Title))
		sb.WriteString(fmt.Sprintf("**Category**: %s | **Created**: %s\n", p.Category, p.Created.Format("2006-01-02")))
		if len(p.Keywords) > 0 {
			sb.WriteString(fmt.Sprintf("**Keywords**: %s\n", strings.Join(p.Keywords, ", ")))
		}
		writeContent(&sb, p.Content)
		sb.WriteString("\n")
	}
	return sb.String()
}

// writeContent appends a content body, truncated for display
func writeContent(sb *strings.Builder, content string) {
	if content == "" {
		return
	}
	if len(content) > 1000 {
		content = content[:1000] + "\n\n... (content truncated)"
	}
	sb.WriteString("\n" + content + "\n")
}

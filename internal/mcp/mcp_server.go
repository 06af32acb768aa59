// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/nowcast/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the Nowcast MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.CacheManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Nowcast Indicator Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: fetch_indicators ---
	s.AddTool(mcp.NewTool("fetch_indicators",
		mcp.WithDescription("Retrieve nowcast indicator estimates for one or more countries as flat records."),
		mcp.WithString("countries", mcp.Description("Comma-separated ISO3 country codes (e.g. 'CIV,SEN')."), mcp.Required()),
		mcp.WithString("level", mcp.Description("Administrative level (national, subnational). Defaults to 'national'."), mcp.Enum("national", "subnational")),
		mcp.WithString("indicator", mcp.Description("Indicator name to filter on (e.g. 'internet_fm_ratio').")),
		mcp.WithString("start", mcp.Description("Inclusive start month as YYYY-MM.")),
		mcp.WithString("end", mcp.Description("Inclusive end month as YYYY-MM.")),
	), h.handleFetchIndicators)

	// --- 2. Tool: fetch_audience ---
	s.AddTool(mcp.NewTool("fetch_audience",
		mcp.WithDescription("Retrieve a demographic audience count from the social-media marketing API."),
		mcp.WithString("country", mcp.Description("ISO3 country code."), mcp.Required()),
		mcp.WithNumber("age_min", mcp.Description("Lower age bound, inclusive.")),
		mcp.WithNumber("age_max", mcp.Description("Upper age bound, inclusive (omit for open-ended).")),
		mcp.WithString("genders", mcp.Description("Audience genders filter."), mcp.Enum("all", "female", "male")),
	), h.handleFetchAudience)

	// --- 3. Tool: evaluate_model ---
	s.AddTool(mcp.NewTool("evaluate_model",
		mcp.WithDescription("Cross-validate a regression model on a local CSV dataset and report per-fold scores."),
		mcp.WithString("data", mcp.Description("Path to the CSV dataset file."), mcp.Required()),
		mcp.WithString("target", mcp.Description("Target column name."), mcp.Required()),
		mcp.WithString("features", mcp.Description("Comma-separated feature column names."), mcp.Required()),
		mcp.WithString("model", mcp.Description("Regression learner (ols, forest). Defaults to 'ols'."), mcp.Enum("ols", "forest")),
		mcp.WithString("strategy", mcp.Description("Partitioning strategy (kfold, group). Defaults to 'kfold'."), mcp.Enum("kfold", "group")),
		mcp.WithNumber("folds", mcp.Description("Number of folds for the kfold strategy.")),
		mcp.WithString("group_column", mcp.Description("Grouping column for the group strategy.")),
		mcp.WithNumber("seed", mcp.Description("Seed for shuffling and stochastic learners.")),
	), h.handleEvaluateModel)

	return s
}

// StartMCPServer starts the Nowcast MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.CacheManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}

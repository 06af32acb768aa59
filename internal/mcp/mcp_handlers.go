package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/huangsam/nowcast/core"
	"github.com/huangsam/nowcast/internal/contract"
	"github.com/huangsam/nowcast/internal/wdlapi"
	"github.com/huangsam/nowcast/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.CacheManager
}

func (h *toolHandler) handleFetchIndicators(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.Countries = contract.SplitCommaList(request.GetString("countries", ""))
	cfg.Level = schema.NationalLevel
	if l := request.GetString("level", ""); l != "" {
		cfg.Level = schema.AdminLevel(l)
	}
	if ind := request.GetString("indicator", ""); ind != "" {
		cfg.Indicator = ind
	}
	if s := request.GetString("start", ""); s != "" {
		cfg.StartDate = s
	}
	if e := request.GetString("end", ""); e != "" {
		cfg.EndDate = e
	}

	client := wdlapi.NewClient(cfg, h.mgr)
	result, err := core.GetFetchResult(ctx, cfg, client)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("retrieval failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(result.Records, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleFetchAudience(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.Countries = []string{request.GetString("country", "")}
	if a := request.GetInt("age_min", 0); a > 0 {
		cfg.AgeMin = a
	}
	if a := request.GetInt("age_max", 0); a > 0 {
		cfg.AgeMax = a
	}
	if g := request.GetString("genders", ""); g != "" {
		cfg.Genders = g
	}

	client := wdlapi.NewClient(cfg, h.mgr)
	query := contract.AudienceQuery{
		Country: cfg.Countries[0],
		AgeMin:  cfg.AgeMin,
		AgeMax:  cfg.AgeMax,
		Genders: cfg.Genders,
	}
	estimate, err := client.FetchAudience(ctx, query)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("audience retrieval failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(estimate, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleEvaluateModel(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.DataFile = request.GetString("data", "")
	cfg.Target = request.GetString("target", "")
	cfg.Features = contract.SplitCommaList(request.GetString("features", ""))
	if m := request.GetString("model", ""); m != "" {
		cfg.Model = schema.ModelKind(m)
	}
	if s := request.GetString("strategy", ""); s != "" {
		cfg.Strategy = schema.SplitStrategy(s)
	}
	if f := request.GetInt("folds", 0); f > 0 {
		cfg.Folds = f
	}
	if g := request.GetString("group_column", ""); g != "" {
		cfg.GroupColumn = g
	}
	if s := request.GetInt("seed", 0); s != 0 {
		cfg.Seed = int64(s)
	}
	cfg.Summary = true

	result, err := core.GetEvaluateResult(cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("evaluation failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

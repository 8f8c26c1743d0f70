package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"

	"github.com/asodi/tracker/client"
	"github.com/asodi/tracker/summary"
	"github.com/asodi/tracker/tracker"
)

// SummaryHandler exposes monthly_summary over the weight and pressure lists.
type SummaryHandler struct {
	set *tracker.Set
	now func() time.Time
}

func NewSummaryHandler(set *tracker.Set) *SummaryHandler {
	return &SummaryHandler{set: set, now: time.Now}
}

// RegisterTools registers monthly_summary.
func (sh *SummaryHandler) RegisterTools(s *server.MCPServer) error {
	s.AddTool(mcp.NewTool("monthly_summary",
		mcp.WithDescription("Chart series and min/max/average of weights or blood pressure for one month"),
		mcp.WithString("kind", mcp.Required(), mcp.Description("Either 'weight' or 'pressure'")),
		mcp.WithNumber("month", mcp.Description("Month 1-12, defaults to the current month")),
		mcp.WithNumber("year", mcp.Description("Four digit year, defaults to the current year")),
	), sh.handleMonthlySummary)
	return nil
}

func (sh *SummaryHandler) handleMonthlySummary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	kind, err := req.RequireString("kind")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	today := sh.now()
	month, err := argInt(req, "month", int(today.Month()))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if month < 1 || month > 12 {
		return mcp.NewToolResultError("month must be between 1 and 12"), nil
	}
	year, err := argInt(req, "year", today.Year())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	start := time.Now()
	switch kind {
	case "weight":
		if err := sh.set.Weights.Refresh(ctx); err != nil {
			log.Error().Err(err).Dur("elapsed", time.Since(start)).Msg("monthly_summary failed")
			return mcp.NewToolResultError(fmt.Sprintf("failed to load weights: %s", client.UserMessage(err))), nil
		}
		return jsonResult(summary.Weights(sh.set.Weights.Records(), time.Month(month), year))
	case "pressure":
		if err := sh.set.Pressures.Refresh(ctx); err != nil {
			log.Error().Err(err).Dur("elapsed", time.Since(start)).Msg("monthly_summary failed")
			return mcp.NewToolResultError(fmt.Sprintf("failed to load pressures: %s", client.UserMessage(err))), nil
		}
		return jsonResult(summary.Pressures(sh.set.Pressures.Records(), time.Month(month), year))
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unknown kind %q, want weight or pressure", kind)), nil
	}
}

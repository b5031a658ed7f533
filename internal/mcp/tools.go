package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/liftstack/liftlog/internal/plates"
	"github.com/liftstack/liftlog/internal/storage"
)

// filterPeriod keeps only rows of the given period type. An empty period
// returns all rows unchanged.
func filterPeriod(rows []storage.HistoryRow, period string) []storage.HistoryRow {
	if period == "" {
		return rows
	}
	filtered := make([]storage.HistoryRow, 0, len(rows))
	for _, row := range rows {
		if row.PeriodType == period {
			filtered = append(filtered, row)
		}
	}
	return filtered
}

// --- Tool definitions ---

var toolGetPersonalRecords = mcp.NewTool("get_personal_records",
	mcp.WithDescription("Personal records per exercise: the heaviest completed weight, when the exercise was first recorded, and an estimated weight curve for 1-30 reps derived from the single-rep maximum."),
)

var toolGetRecoveryStatus = mcp.NewTool("get_recovery_status",
	mcp.WithDescription("Recovery percentage per muscle group based on days since the muscle was last trained and its recovery rate. 100 means fully recovered or never trained."),
)

var toolGetStrengthHistory = mcp.NewTool("get_strength_history",
	mcp.WithDescription("Per-muscle strength history: effort-weighted base weight totals bucketed by day (last 7 days), ISO week (last 4 weeks), and month (last 12 months)."),
	mcp.WithString("period", mcp.Description("Restrict to one bucket size. Defaults to all three."), mcp.Enum("day", "week", "month")),
)

var toolGetVolumeHistory = mcp.NewTool("get_volume_history",
	mcp.WithDescription("Per-muscle volume history: effort-weighted weight x reps tonnage from completed phases, bucketed by day (last 7 days), ISO week (last 4 weeks), and month (last 12 months)."),
	mcp.WithString("period", mcp.Description("Restrict to one bucket size. Defaults to all three."), mcp.Enum("day", "week", "month")),
)

var toolGetSetTypes = mcp.NewTool("get_set_types",
	mcp.WithDescription("All set types with their phase templates: rep ranges, weight modifiers, and target rest periods."),
)

var toolGetDataStats = mcp.NewTool("get_data_stats",
	mcp.WithDescription("Overall training data statistics: execution and phase counts, distinct exercises, first/last activity, and top exercises by tonnage."),
)

var toolGetPlateBreakdown = mcp.NewTool("get_plate_breakdown",
	mcp.WithDescription("Per-side barbell plate breakdown for a target weight using standard plate sizes. Pure calculation, no stored data involved."),
	mcp.WithNumber("weight", mcp.Required(), mcp.Description("Target total weight including the bar")),
	mcp.WithString("unit", mcp.Description("Plate set to use. Defaults to metric (20kg bar)."), mcp.Enum("metric", "imperial")),
)

// --- Tool handlers ---

func (h *handlers) getPersonalRecords(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid := UserIDFromContext(ctx)

	records, err := h.ds.PersonalRecords(ctx, uid)
	if err != nil {
		h.log.Error("mcp get_personal_records", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(records)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getRecoveryStatus(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid := UserIDFromContext(ctx)

	recovery, err := h.ds.RecoveryStatus(ctx, uid)
	if err != nil {
		h.log.Error("mcp get_recovery_status", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(recovery)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getStrengthHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid := UserIDFromContext(ctx)

	rows, err := h.ds.StrengthHistory(ctx, uid)
	if err != nil {
		h.log.Error("mcp get_strength_history", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(filterPeriod(rows, req.GetString("period", "")))
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getVolumeHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid := UserIDFromContext(ctx)

	rows, err := h.ds.VolumeHistory(ctx, uid)
	if err != nil {
		h.log.Error("mcp get_volume_history", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(filterPeriod(rows, req.GetString("period", "")))
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getSetTypes(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	setTypes, err := h.ds.ListSetTypes(ctx)
	if err != nil {
		h.log.Error("mcp get_set_types", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(setTypes)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getDataStats(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid := UserIDFromContext(ctx)

	stats, err := h.ds.GetDataStats(ctx, uid)
	if err != nil {
		h.log.Error("mcp get_data_stats", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(stats)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getPlateBreakdown(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	weight, err := req.RequireFloat("weight")
	if err != nil {
		return mcp.NewToolResultError("weight parameter is required"), nil
	}
	if weight <= 0 {
		return mcp.NewToolResultError("weight must be positive"), nil
	}

	unit, err := plates.ParseUnit(req.GetString("unit", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	breakdown := plates.Calculate(weight, unit, nil)
	result, err := mcp.NewToolResultJSON(breakdown)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

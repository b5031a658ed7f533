package mcp

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

type contextKey int

const userIDKey contextKey = iota

// UserIDFromContext extracts the user ID injected by the transport layer.
func UserIDFromContext(ctx context.Context) int {
	if id, ok := ctx.Value(userIDKey).(int); ok {
		return id
	}
	return 1
}

// WithUserID returns a context with the given user ID.
func WithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("LiftLog", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("LiftLog training data server. Query personal records, muscle recovery, strength and volume history, set type templates, and barbell plate breakdowns. All data is scoped to the authenticated user."),
	)

	h := &handlers{ds: ds, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolGetPersonalRecords, Handler: h.getPersonalRecords},
		server.ServerTool{Tool: toolGetRecoveryStatus, Handler: h.getRecoveryStatus},
		server.ServerTool{Tool: toolGetStrengthHistory, Handler: h.getStrengthHistory},
		server.ServerTool{Tool: toolGetVolumeHistory, Handler: h.getVolumeHistory},
		server.ServerTool{Tool: toolGetSetTypes, Handler: h.getSetTypes},
		server.ServerTool{Tool: toolGetDataStats, Handler: h.getDataStats},
		server.ServerTool{Tool: toolGetPlateBreakdown, Handler: h.getPlateBreakdown},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resRecoveryStatus, Handler: h.recoveryStatus},
		server.ServerResource{Resource: resPersonalRecords, Handler: h.personalRecords},
		server.ServerResource{Resource: resSetTypeCatalog, Handler: h.setTypeCatalog},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

// --- Resource definitions ---

var resRecoveryStatus = mcp.NewResource(
	"liftlog://recovery_status",
	"Recovery Status",
	mcp.WithResourceDescription("Per-muscle recovery percentages based on time since last training"),
	mcp.WithMIMEType("application/json"),
)

var resPersonalRecords = mcp.NewResource(
	"liftlog://personal_records",
	"Personal Records",
	mcp.WithResourceDescription("Best recorded weight per exercise with the estimated weight curve across rep counts"),
	mcp.WithMIMEType("application/json"),
)

var resSetTypeCatalog = mcp.NewResource(
	"liftlog://set_type_catalog",
	"Set Type Catalog",
	mcp.WithResourceDescription("All set types with their phase templates: rep ranges, weight modifiers, and target rest periods"),
	mcp.WithMIMEType("application/json"),
)

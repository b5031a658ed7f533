package mcp

import (
	"context"

	"github.com/liftstack/liftlog/internal/models"
	"github.com/liftstack/liftlog/internal/storage"
)

// DataSource abstracts the analytics layer for MCP tools. Both *storage.DB
// (local database) and HTTPClient (remote via REST API) satisfy this
// interface.
type DataSource interface {
	PersonalRecords(ctx context.Context, userID int) ([]storage.ExerciseRecord, error)
	RecoveryStatus(ctx context.Context, userID int) ([]storage.MuscleRecovery, error)
	StrengthHistory(ctx context.Context, userID int) ([]storage.HistoryRow, error)
	VolumeHistory(ctx context.Context, userID int) ([]storage.HistoryRow, error)
	ListSetTypes(ctx context.Context) ([]models.SetType, error)
	GetDataStats(ctx context.Context, userID int) (*storage.DataStats, error)
}

// Compile-time check: *storage.DB satisfies DataSource.
var _ DataSource = (*storage.DB)(nil)

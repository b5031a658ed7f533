package server

import (
	"context"

	"github.com/google/uuid"
	"github.com/liftstack/liftlog/internal/models"
	"github.com/liftstack/liftlog/internal/storage"
)

// Store is the engine surface the HTTP layer depends on. *storage.DB
// satisfies it; handler tests substitute a stub.
type Store interface {
	RecordExecution(ctx context.Context, in storage.ExecutionInput) (uuid.UUID, error)
	UpsertPhase(ctx context.Context, userID int, executionID uuid.UUID, p storage.PhaseInput) error
	GetExecution(ctx context.Context, userID int, id uuid.UUID) (*models.Execution, error)
	PersonalRecords(ctx context.Context, userID int) ([]storage.ExerciseRecord, error)
	RecoveryStatus(ctx context.Context, userID int) ([]storage.MuscleRecovery, error)
	StrengthHistory(ctx context.Context, userID int) ([]storage.HistoryRow, error)
	VolumeHistory(ctx context.Context, userID int) ([]storage.HistoryRow, error)
	ListSetTypes(ctx context.Context) ([]models.SetType, error)
	GetSetType(ctx context.Context, id int) (*models.SetType, error)
	ListExercises(ctx context.Context) ([]models.Exercise, error)
	GetDataStats(ctx context.Context, userID int) (*storage.DataStats, error)
	GetOrCreateUser(ctx context.Context, login, displayName string) (int, error)
}

// Compile-time check: *storage.DB satisfies Store.
var _ Store = (*storage.DB)(nil)

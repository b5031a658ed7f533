package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/liftstack/liftlog/internal/models"
)

// PhaseInput is the logged performance of one phase.
type PhaseInput struct {
	PhaseNumber       int     `json:"phase_number"`
	ActualReps        int     `json:"actual_reps"`
	ActualWeight      float64 `json:"actual_weight"`
	ActualRestSeconds int     `json:"actual_rest_period_seconds"`
}

// ExecutionInput is everything needed to record one exercise instance.
// PerformedAt is optional; when nil the current time is used. The import
// CLI sets it to preserve historical session dates.
type ExecutionInput struct {
	UserID      int          `json:"user_id"`
	ExerciseID  int          `json:"exercise_id"`
	SetTypeID   int          `json:"set_type_id"`
	BaseWeight  float64      `json:"base_weight"`
	Phases      []PhaseInput `json:"phases"`
	PerformedAt *time.Time   `json:"performed_at,omitempty"`
}

// Validate checks the recorder's input contract: all anchor fields present,
// a non-empty phase list, and no negative performance values.
func (in *ExecutionInput) Validate() error {
	if in.UserID <= 0 {
		return &ValidationError{Field: "user_id", Message: "must be a positive user id"}
	}
	if in.ExerciseID <= 0 {
		return &ValidationError{Field: "exercise_id", Message: "must be a positive exercise id"}
	}
	if in.SetTypeID <= 0 {
		return &ValidationError{Field: "set_type_id", Message: "must be a positive set type id"}
	}
	if in.BaseWeight <= 0 {
		return &ValidationError{Field: "base_weight", Message: "must be greater than zero"}
	}
	if len(in.Phases) == 0 {
		return &ValidationError{Field: "phases", Message: "at least one phase is required"}
	}
	for _, p := range in.Phases {
		if p.PhaseNumber <= 0 {
			return &ValidationError{Field: "phases", Message: fmt.Sprintf("phase number %d must be positive", p.PhaseNumber)}
		}
		if p.ActualReps < 0 {
			return &ValidationError{Field: "phases", Message: fmt.Sprintf("phase %d: reps must not be negative", p.PhaseNumber)}
		}
		if p.ActualWeight < 0 {
			return &ValidationError{Field: "phases", Message: fmt.Sprintf("phase %d: weight must not be negative", p.PhaseNumber)}
		}
		if p.ActualRestSeconds < 0 {
			return &ValidationError{Field: "phases", Message: fmt.Sprintf("phase %d: rest period must not be negative", p.PhaseNumber)}
		}
	}
	return nil
}

// RecordExecution inserts one execution row and upserts its phase rows in a
// single transaction. Re-submitting a phase for an existing execution id
// overwrites the earlier values via the (execution_id, phase_number) unique
// constraint; duplicates are impossible. Any failure rolls back the whole
// write and surfaces as a PersistenceError.
func (db *DB) RecordExecution(ctx context.Context, in ExecutionInput) (uuid.UUID, error) {
	if err := in.Validate(); err != nil {
		return uuid.Nil, err
	}

	performedAt := time.Now()
	if in.PerformedAt != nil {
		performedAt = *in.PerformedAt
	}

	id := uuid.New()
	err := db.withTx(ctx, "record execution", func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO user_set_executions (id, user_id, exercise_id, set_type_id, base_weight, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			id, in.UserID, in.ExerciseID, in.SetTypeID, in.BaseWeight, performedAt)
		if err != nil {
			return &PersistenceError{Op: "insert execution", Err: err}
		}

		for _, p := range in.Phases {
			if err := upsertPhase(ctx, tx, id, p, performedAt); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// UpsertPhase records (or re-records) a single phase of an existing
// execution, marking it completed. Used when phases are logged one at a time
// during a session rather than all at once. The execution must belong to
// userID; otherwise ErrExecutionNotFound is returned.
func (db *DB) UpsertPhase(ctx context.Context, userID int, executionID uuid.UUID, p PhaseInput) error {
	if p.PhaseNumber <= 0 {
		return &ValidationError{Field: "phase_number", Message: "must be positive"}
	}
	if p.ActualReps < 0 || p.ActualWeight < 0 || p.ActualRestSeconds < 0 {
		return &ValidationError{Field: "phases", Message: "performance values must not be negative"}
	}
	return db.withTx(ctx, "upsert phase", func(tx pgx.Tx) error {
		var owner int
		err := tx.QueryRow(ctx,
			`SELECT user_id FROM user_set_executions WHERE id = $1`, executionID).Scan(&owner)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrExecutionNotFound
		}
		if err != nil {
			return &PersistenceError{Op: "load execution", Err: err}
		}
		if owner != userID {
			return ErrExecutionNotFound
		}
		return upsertPhase(ctx, tx, executionID, p, time.Now())
	})
}

// GetExecution loads one execution with its phase rows ordered by phase
// number. Returns ErrExecutionNotFound when the id does not exist or belongs
// to another user.
func (db *DB) GetExecution(ctx context.Context, userID int, id uuid.UUID) (*models.Execution, error) {
	var ex models.Execution
	err := db.Pool.QueryRow(ctx,
		`SELECT id, user_id, exercise_id, set_type_id, base_weight, created_at
		 FROM user_set_executions
		 WHERE id = $1 AND user_id = $2`, id, userID).
		Scan(&ex.ID, &ex.UserID, &ex.ExerciseID, &ex.SetTypeID, &ex.BaseWeight, &ex.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrExecutionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying execution: %w", err)
	}

	rows, err := db.Pool.Query(ctx,
		`SELECT phase_number, actual_reps, actual_weight, actual_rest_period_seconds, completed_at
		 FROM user_set_phase_executions
		 WHERE user_set_execution_id = $1
		 ORDER BY phase_number ASC`, id)
	if err != nil {
		return nil, fmt.Errorf("querying execution phases: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p models.PhaseExecution
		if err := rows.Scan(&p.PhaseNumber, &p.ActualReps, &p.ActualWeight,
			&p.ActualRestSeconds, &p.CompletedAt); err != nil {
			return nil, fmt.Errorf("scanning execution phase: %w", err)
		}
		ex.Phases = append(ex.Phases, p)
	}
	return &ex, rows.Err()
}

// upsertPhase is the one shared insert-or-update primitive for phase rows.
// Concurrent writers racing on the same (execution_id, phase_number) resolve
// at the constraint: last writer wins, never a duplicate row.
func upsertPhase(ctx context.Context, tx pgx.Tx, executionID uuid.UUID, p PhaseInput, completedAt time.Time) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO user_set_phase_executions
			(user_set_execution_id, phase_number, actual_reps, actual_weight, actual_rest_period_seconds, completed_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (user_set_execution_id, phase_number) DO UPDATE SET
			actual_reps = EXCLUDED.actual_reps,
			actual_weight = EXCLUDED.actual_weight,
			actual_rest_period_seconds = EXCLUDED.actual_rest_period_seconds,
			completed_at = EXCLUDED.completed_at`,
		executionID, p.PhaseNumber, p.ActualReps, p.ActualWeight, p.ActualRestSeconds, completedAt)
	if err != nil {
		return &PersistenceError{Op: fmt.Sprintf("upsert phase %d", p.PhaseNumber), Err: err}
	}
	return nil
}

package storage

import (
	"context"
	"fmt"
	"time"
)

// DataStats holds aggregate statistics about one user's training log.
type DataStats struct {
	TotalExecutions   int64          `json:"total_executions"`
	CompletedPhases   int64          `json:"completed_phases"`
	PendingPhases     int64          `json:"pending_phases"`
	DistinctExercises int64          `json:"distinct_exercises"`
	FirstActivity     *time.Time     `json:"first_activity"`
	LastActivity      *time.Time     `json:"last_activity"`
	TopExercises      []ExerciseStat `json:"top_exercises"`
}

// ExerciseStat holds summary numbers for a single exercise.
type ExerciseStat struct {
	Name      string  `json:"name"`
	Sets      int64   `json:"sets"`
	TotalReps int64   `json:"total_reps"`
	Tonnage   float64 `json:"tonnage"`
	MaxWeight float64 `json:"max_weight"`
}

// GetDataStats returns aggregate statistics for a user's stored data.
func (db *DB) GetDataStats(ctx context.Context, userID int) (*DataStats, error) {
	stats := &DataStats{}

	err := db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM user_set_executions WHERE user_id = $1`, userID,
	).Scan(&stats.TotalExecutions)
	if err != nil {
		return nil, fmt.Errorf("counting executions: %w", err)
	}

	err = db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FILTER (WHERE p.completed_at IS NOT NULL),
		        COUNT(*) FILTER (WHERE p.completed_at IS NULL)
		 FROM user_set_phase_executions p
		 JOIN user_set_executions x ON x.id = p.user_set_execution_id
		 WHERE x.user_id = $1`, userID,
	).Scan(&stats.CompletedPhases, &stats.PendingPhases)
	if err != nil {
		return nil, fmt.Errorf("counting phases: %w", err)
	}

	err = db.Pool.QueryRow(ctx,
		`SELECT COUNT(DISTINCT exercise_id), MIN(created_at), MAX(created_at)
		 FROM user_set_executions WHERE user_id = $1`, userID,
	).Scan(&stats.DistinctExercises, &stats.FirstActivity, &stats.LastActivity)
	if err != nil {
		return nil, fmt.Errorf("querying activity range: %w", err)
	}

	rows, err := db.Pool.Query(ctx,
		`SELECT e.name,
		        COUNT(*)::bigint,
		        COALESCE(SUM(p.actual_reps), 0)::bigint,
		        COALESCE(SUM(p.actual_weight * p.actual_reps), 0),
		        COALESCE(MAX(p.actual_weight), 0)
		 FROM user_set_phase_executions p
		 JOIN user_set_executions x ON x.id = p.user_set_execution_id
		 JOIN exercises e ON e.id = x.exercise_id
		 WHERE x.user_id = $1 AND p.completed_at IS NOT NULL
		 GROUP BY e.name
		 ORDER BY SUM(p.actual_weight * p.actual_reps) DESC
		 LIMIT 10`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying top exercises: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s ExerciseStat
		if err := rows.Scan(&s.Name, &s.Sets, &s.TotalReps, &s.Tonnage, &s.MaxWeight); err != nil {
			return nil, fmt.Errorf("scanning exercise stat: %w", err)
		}
		stats.TopExercises = append(stats.TopExercises, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return stats, nil
}

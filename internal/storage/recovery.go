package storage

import (
	"context"
	"fmt"
	"time"
)

// hoursPerDay converts an elapsed duration into fractional days.
const hoursPerDay = 24.0

// MuscleRecovery is one muscle group's recovery snapshot. LastTrained and
// DaysSinceTrained are nil when the user has never trained the muscle; the
// percentage is then the fully-recovered baseline of 100.
type MuscleRecovery struct {
	MuscleGroup        string     `json:"muscle_group"`
	RecoveryRate       float64    `json:"recovery_rate"`
	LastTrained        *time.Time `json:"last_trained_date"`
	DaysSinceTrained   *float64   `json:"days_since_trained"`
	RecoveryPercentage float64    `json:"recovery_percentage"`
}

// RecoveryStatus returns a recovery row for every muscle group with a
// configured recovery rate, trained or not. Groups without a rate are
// excluded since no percentage can be computed for them. The result is an
// as-of-now snapshot; consumers wanting only still-recovering muscles
// filter on percentage < 100 themselves.
func (db *DB) RecoveryStatus(ctx context.Context, userID int) ([]MuscleRecovery, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT mg.name, r.recovery_rate, MAX(p.completed_at)
		 FROM muscle_groups mg
		 JOIN muscle_recovery_rates r ON r.muscle_group_id = mg.id
		 LEFT JOIN exercise_muscle_targets t ON t.muscle_group_id = mg.id
		 LEFT JOIN user_set_executions x ON x.exercise_id = t.exercise_id AND x.user_id = $1
		 LEFT JOIN user_set_phase_executions p
			ON p.user_set_execution_id = x.id AND p.completed_at IS NOT NULL
		 GROUP BY mg.name, r.recovery_rate
		 ORDER BY mg.name ASC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("querying recovery status: %w", err)
	}
	defer rows.Close()

	now := time.Now()
	var result []MuscleRecovery
	for rows.Next() {
		var m MuscleRecovery
		if err := rows.Scan(&m.MuscleGroup, &m.RecoveryRate, &m.LastTrained); err != nil {
			return nil, fmt.Errorf("scanning recovery status: %w", err)
		}
		if m.LastTrained != nil {
			days := now.Sub(*m.LastTrained).Hours() / hoursPerDay
			m.DaysSinceTrained = &days
		}
		m.RecoveryPercentage = recoveryPercentage(m.RecoveryRate, m.DaysSinceTrained)
		result = append(result, m)
	}
	return result, rows.Err()
}

// recoveryPercentage applies the time-decay model: the rate is the fraction
// of full recovery regained per elapsed day, capped at 100. A muscle that
// was never trained is fully recovered.
func recoveryPercentage(rate float64, daysSinceTrained *float64) float64 {
	if daysSinceTrained == nil {
		return 100
	}
	pct := *daysSinceTrained * rate * 100
	if pct > 100 {
		return 100
	}
	if pct < 0 {
		return 0
	}
	return pct
}

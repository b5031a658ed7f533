package storage

import (
	"context"
	"fmt"
	"math"
	"time"
)

// maxCurveReps is the highest rep count the record curve is projected to.
const maxCurveReps = 30

// RepRecord is one point on an exercise's estimated-weight curve.
type RepRecord struct {
	Reps   int     `json:"reps"`
	Weight float64 `json:"weight"`
}

// ExerciseRecord is an exercise's personal-record curve: the heaviest
// completed weight, when the exercise was first logged, and the estimated
// weight for every rep count from 1 to 30.
type ExerciseRecord struct {
	ExerciseName  string      `json:"exercise_name"`
	MaxWeight     float64     `json:"max_weight"`
	FirstRecorded time.Time   `json:"first_recorded"`
	Records       []RepRecord `json:"records"`
}

// PersonalRecords returns the record curve for every exercise the user has
// at least one completed phase for, alphabetical by exercise name. A user
// with no history gets an empty slice, not an error.
func (db *DB) PersonalRecords(ctx context.Context, userID int) ([]ExerciseRecord, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT e.name, MAX(p.actual_weight), MIN(p.completed_at)
		 FROM user_set_phase_executions p
		 JOIN user_set_executions x ON x.id = p.user_set_execution_id
		 JOIN exercises e ON e.id = x.exercise_id
		 WHERE x.user_id = $1 AND p.completed_at IS NOT NULL
		 GROUP BY e.name
		 ORDER BY e.name ASC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("querying personal records: %w", err)
	}
	defer rows.Close()

	var result []ExerciseRecord
	for rows.Next() {
		var r ExerciseRecord
		if err := rows.Scan(&r.ExerciseName, &r.MaxWeight, &r.FirstRecorded); err != nil {
			return nil, fmt.Errorf("scanning personal record: %w", err)
		}
		r.Records = recordCurve(r.MaxWeight)
		result = append(result, r)
	}
	return result, rows.Err()
}

// recordCurve back-projects a max single onto rep counts 1..30.
func recordCurve(maxWeight float64) []RepRecord {
	curve := make([]RepRecord, 0, maxCurveReps)
	for reps := 1; reps <= maxCurveReps; reps++ {
		curve = append(curve, RepRecord{Reps: reps, Weight: estimateWeight(maxWeight, reps)})
	}
	return curve
}

// estimateWeight is the Epley-family back-projection: the single stays
// exact, every higher rep count divides it by (1 + 0.0333*reps) and rounds
// to the nearest whole unit. The curve is non-increasing in reps.
func estimateWeight(maxWeight float64, reps int) float64 {
	if reps <= 1 {
		return maxWeight
	}
	return math.Round(maxWeight / (1 + 0.0333*float64(reps)))
}

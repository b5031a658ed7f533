package storage

import (
	"context"
	"fmt"
	"math"

	"github.com/liftstack/liftlog/internal/models"
)

// ListSetTypes returns the full set-type catalog with each type's phase
// templates ordered by phase number.
func (db *DB) ListSetTypes(ctx context.Context) ([]models.SetType, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT st.id, st.name, t.phase_number, t.rep_range_min, t.rep_range_max,
		        t.weight_modifier, t.target_rest_period_seconds
		 FROM set_types st
		 JOIN set_type_templates t ON t.set_type_id = st.id
		 ORDER BY st.name ASC, t.phase_number ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying set types: %w", err)
	}
	defer rows.Close()

	var result []models.SetType
	byID := make(map[int]int) // set type id -> index in result
	for rows.Next() {
		var id int
		var name string
		var ph models.PhaseTemplate
		if err := rows.Scan(&id, &name, &ph.PhaseNumber, &ph.RepRangeMin, &ph.RepRangeMax,
			&ph.WeightModifier, &ph.TargetRestSeconds); err != nil {
			return nil, fmt.Errorf("scanning set type: %w", err)
		}
		idx, ok := byID[id]
		if !ok {
			result = append(result, models.SetType{ID: id, Name: name})
			idx = len(result) - 1
			byID[id] = idx
		}
		result[idx].Phases = append(result[idx].Phases, ph)
	}
	return result, rows.Err()
}

// GetSetType returns one set type with its ordered phase templates, or nil
// when the id is unknown.
func (db *DB) GetSetType(ctx context.Context, id int) (*models.SetType, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT st.name, t.phase_number, t.rep_range_min, t.rep_range_max,
		        t.weight_modifier, t.target_rest_period_seconds
		 FROM set_types st
		 JOIN set_type_templates t ON t.set_type_id = st.id
		 WHERE st.id = $1
		 ORDER BY t.phase_number ASC`,
		id)
	if err != nil {
		return nil, fmt.Errorf("querying set type %d: %w", id, err)
	}
	defer rows.Close()

	var st *models.SetType
	for rows.Next() {
		var name string
		var ph models.PhaseTemplate
		if err := rows.Scan(&name, &ph.PhaseNumber, &ph.RepRangeMin, &ph.RepRangeMax,
			&ph.WeightModifier, &ph.TargetRestSeconds); err != nil {
			return nil, fmt.Errorf("scanning set type %d: %w", id, err)
		}
		if st == nil {
			st = &models.SetType{ID: id, Name: name}
		}
		st.Phases = append(st.Phases, ph)
	}
	return st, rows.Err()
}

// ListExercises returns the exercise catalog with muscle targets.
func (db *DB) ListExercises(ctx context.Context) ([]models.Exercise, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT e.id, e.name, e.equipment, mg.name, t.effort_percentage
		 FROM exercises e
		 LEFT JOIN exercise_muscle_targets t ON t.exercise_id = e.id
		 LEFT JOIN muscle_groups mg ON mg.id = t.muscle_group_id
		 ORDER BY e.name ASC, mg.name ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying exercises: %w", err)
	}
	defer rows.Close()

	var result []models.Exercise
	byID := make(map[int]int)
	for rows.Next() {
		var ex models.Exercise
		var muscle *string
		var effort *float64
		if err := rows.Scan(&ex.ID, &ex.Name, &ex.Equipment, &muscle, &effort); err != nil {
			return nil, fmt.Errorf("scanning exercise: %w", err)
		}
		idx, ok := byID[ex.ID]
		if !ok {
			result = append(result, ex)
			idx = len(result) - 1
			byID[ex.ID] = idx
		}
		if muscle != nil && effort != nil {
			result[idx].Targets = append(result[idx].Targets,
				models.MuscleTarget{MuscleGroup: *muscle, EffortPercentage: *effort})
		}
	}
	return result, rows.Err()
}

// PlannedPhase is one phase of a prescription expanded against a base
// weight.
type PlannedPhase struct {
	PhaseNumber       int     `json:"phase_number"`
	RepRangeMin       int     `json:"rep_range_min"`
	RepRangeMax       int     `json:"rep_range_max"`
	PlannedWeight     float64 `json:"planned_weight"`
	TargetRestSeconds int     `json:"target_rest_period_seconds"`
}

// PlanPhases expands a set type's templates into concrete planned phases:
// planned weight = base weight x the phase's weight modifier, rounded to
// 0.1 to keep modifier arithmetic presentable.
func PlanPhases(templates []models.PhaseTemplate, baseWeight float64) []PlannedPhase {
	planned := make([]PlannedPhase, 0, len(templates))
	for _, t := range templates {
		planned = append(planned, PlannedPhase{
			PhaseNumber:       t.PhaseNumber,
			RepRangeMin:       t.RepRangeMin,
			RepRangeMax:       t.RepRangeMax,
			PlannedWeight:     math.Round(baseWeight*t.WeightModifier*10) / 10,
			TargetRestSeconds: t.TargetRestSeconds,
		})
	}
	return planned
}

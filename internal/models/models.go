// Package models holds the row types shared between storage, the HTTP
// layer, and the import CLI.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Exercise is immutable reference data: a movement and its equipment tag.
type Exercise struct {
	ID        int            `json:"id"`
	Name      string         `json:"name"`
	Equipment string         `json:"equipment"`
	Targets   []MuscleTarget `json:"targets,omitempty"`
}

// MuscleTarget attributes a fraction of an exercise's working weight to a
// muscle group. Percentages are independent contribution weights and are
// not required to sum to 100 across an exercise's muscles.
type MuscleTarget struct {
	MuscleGroup      string  `json:"muscle_group"`
	EffortPercentage float64 `json:"effort_percentage"`
}

// SetType is a named prescription style (e.g. "Pyramid", "Straight Sets")
// with its ordered phase templates.
type SetType struct {
	ID     int             `json:"id"`
	Name   string          `json:"name"`
	Phases []PhaseTemplate `json:"phases,omitempty"`
}

// PhaseTemplate prescribes one phase of a set type: the rep range, the
// multiplier applied to the base weight, and the rest target.
type PhaseTemplate struct {
	PhaseNumber       int     `json:"phase_number"`
	RepRangeMin       int     `json:"rep_range_min"`
	RepRangeMax       int     `json:"rep_range_max"`
	WeightModifier    float64 `json:"weight_modifier"`
	TargetRestSeconds int     `json:"target_rest_period_seconds"`
}

// Execution is one logged instance of performing an exercise under a set
// type and base weight, with its phase rows.
type Execution struct {
	ID         uuid.UUID        `json:"id"`
	UserID     int              `json:"user_id"`
	ExerciseID int              `json:"exercise_id"`
	SetTypeID  int              `json:"set_type_id"`
	BaseWeight float64          `json:"base_weight"`
	CreatedAt  time.Time        `json:"created_at"`
	Phases     []PhaseExecution `json:"phases,omitempty"`
}

// PhaseExecution is the actual performance of one phase. CompletedAt is nil
// until the phase has been performed; pending phases are excluded from all
// derived analytics.
type PhaseExecution struct {
	PhaseNumber       int        `json:"phase_number"`
	ActualReps        int        `json:"actual_reps"`
	ActualWeight      float64    `json:"actual_weight"`
	ActualRestSeconds int        `json:"actual_rest_period_seconds"`
	CompletedAt       *time.Time `json:"completed_at,omitempty"`
}

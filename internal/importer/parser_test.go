package importer

import (
	"strings"
	"testing"
	"time"
)

const sampleCSV = `date,exercise_id,set_type_id,base_weight,phase_number,actual_reps,actual_weight,actual_rest_seconds
2026-03-02,3,2,100,1,10,60,60
2026-03-02,3,2,100,2,8,80,90
2026-03-02,3,2,100,3,6,100,120
2026-03-02,7,1,80,1,12,80,60
2026-03-04,3,2,102.5,1,10,62.5,60
`

// TestParseGroupsPhases verifies consecutive rows with the same session key
// collapse into one execution with ordered phases.
func TestParseGroupsPhases(t *testing.T) {
	executions, err := Parse(strings.NewReader(sampleCSV), 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(executions) != 3 {
		t.Fatalf("got %d executions, want 3", len(executions))
	}

	first := executions[0]
	if first.UserID != 1 || first.ExerciseID != 3 || first.SetTypeID != 2 || first.BaseWeight != 100 {
		t.Errorf("first execution = %+v", first)
	}
	if len(first.Phases) != 3 {
		t.Fatalf("first execution has %d phases, want 3", len(first.Phases))
	}
	if first.Phases[2].ActualWeight != 100 || first.Phases[2].ActualReps != 6 {
		t.Errorf("phase 3 = %+v", first.Phases[2])
	}

	want := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	if first.PerformedAt == nil || !first.PerformedAt.Equal(want) {
		t.Errorf("performed at = %v, want %v", first.PerformedAt, want)
	}

	// Same exercise on a later date with a bumped base weight is a new
	// execution.
	third := executions[2]
	if third.ExerciseID != 3 || third.BaseWeight != 102.5 || len(third.Phases) != 1 {
		t.Errorf("third execution = %+v", third)
	}
}

// TestParseRFC3339Dates verifies timestamped exports are accepted.
func TestParseRFC3339Dates(t *testing.T) {
	csv := "date,exercise_id,set_type_id,base_weight,phase_number,actual_reps,actual_weight,actual_rest_seconds\n" +
		"2026-03-02T18:30:00Z,3,2,100,1,10,60,60\n"

	executions, err := Parse(strings.NewReader(csv), 1)
	if err != nil {
		t.Fatal(err)
	}
	if executions[0].PerformedAt.Hour() != 18 {
		t.Errorf("performed at = %v, want 18:30", executions[0].PerformedAt)
	}
}

// TestParseRejectsBadInput verifies malformed files fail with the offending
// line in the error.
func TestParseRejectsBadInput(t *testing.T) {
	tests := []struct {
		name    string
		csv     string
		wantErr string
	}{
		{
			"wrong header",
			"when,exercise_id,set_type_id,base_weight,phase_number,actual_reps,actual_weight,actual_rest_seconds\n",
			"header",
		},
		{
			"missing columns",
			"date,exercise_id\n",
			"header",
		},
		{
			"bad date",
			"date,exercise_id,set_type_id,base_weight,phase_number,actual_reps,actual_weight,actual_rest_seconds\n" +
				"yesterday,3,2,100,1,10,60,60\n",
			"line 2",
		},
		{
			"bad reps",
			"date,exercise_id,set_type_id,base_weight,phase_number,actual_reps,actual_weight,actual_rest_seconds\n" +
				"2026-03-02,3,2,100,1,ten,60,60\n",
			"actual_reps",
		},
		{
			"bad weight",
			"date,exercise_id,set_type_id,base_weight,phase_number,actual_reps,actual_weight,actual_rest_seconds\n" +
				"2026-03-02,3,2,heavy,1,10,60,60\n",
			"base_weight",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.csv), 1)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

// TestParseEmptyFile verifies a header-only file yields no executions.
func TestParseEmptyFile(t *testing.T) {
	csv := "date,exercise_id,set_type_id,base_weight,phase_number,actual_reps,actual_weight,actual_rest_seconds\n"
	executions, err := Parse(strings.NewReader(csv), 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(executions) != 0 {
		t.Errorf("got %d executions, want 0", len(executions))
	}
}

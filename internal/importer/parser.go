package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/liftstack/liftlog/internal/storage"
)

// setLogColumns is the required header of a set-log CSV export, in order.
var setLogColumns = []string{
	"date",
	"exercise_id",
	"set_type_id",
	"base_weight",
	"phase_number",
	"actual_reps",
	"actual_weight",
	"actual_rest_seconds",
}

// Parse reads a set-log CSV export and returns execution inputs ready for
// recording. Consecutive rows sharing date, exercise, set type, and base
// weight are grouped into one execution; each row contributes one phase.
// The user ID is stamped onto every execution.
func Parse(r io.Reader, userID int) ([]storage.ExecutionInput, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	if err := checkHeader(header); err != nil {
		return nil, err
	}

	var (
		executions []storage.ExecutionInput
		current    *storage.ExecutionInput
	)

	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		row, err := parseRow(record)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		if current == nil || !sameExecution(current, row) {
			if current != nil {
				executions = append(executions, *current)
			}
			performed := row.date
			current = &storage.ExecutionInput{
				UserID:      userID,
				ExerciseID:  row.exerciseID,
				SetTypeID:   row.setTypeID,
				BaseWeight:  row.baseWeight,
				PerformedAt: &performed,
			}
		}
		current.Phases = append(current.Phases, storage.PhaseInput{
			PhaseNumber:       row.phaseNumber,
			ActualReps:        row.actualReps,
			ActualWeight:      row.actualWeight,
			ActualRestSeconds: row.actualRestSeconds,
		})
	}

	if current != nil {
		executions = append(executions, *current)
	}
	return executions, nil
}

func checkHeader(header []string) error {
	if len(header) != len(setLogColumns) {
		return fmt.Errorf("header has %d columns, want %d (%s)",
			len(header), len(setLogColumns), strings.Join(setLogColumns, ","))
	}
	for i, want := range setLogColumns {
		if strings.TrimSpace(strings.ToLower(header[i])) != want {
			return fmt.Errorf("header column %d is %q, want %q", i+1, header[i], want)
		}
	}
	return nil
}

type setLogRow struct {
	date              time.Time
	exerciseID        int
	setTypeID         int
	baseWeight        float64
	phaseNumber       int
	actualReps        int
	actualWeight      float64
	actualRestSeconds int
}

func parseRow(record []string) (*setLogRow, error) {
	date, err := parseDate(record[0])
	if err != nil {
		return nil, fmt.Errorf("date %q: %w", record[0], err)
	}

	row := &setLogRow{date: date}
	ints := []struct {
		dst  *int
		name string
		val  string
	}{
		{&row.exerciseID, "exercise_id", record[1]},
		{&row.setTypeID, "set_type_id", record[2]},
		{&row.phaseNumber, "phase_number", record[4]},
		{&row.actualReps, "actual_reps", record[5]},
		{&row.actualRestSeconds, "actual_rest_seconds", record[7]},
	}
	for _, f := range ints {
		n, err := strconv.Atoi(strings.TrimSpace(f.val))
		if err != nil {
			return nil, fmt.Errorf("%s %q: not an integer", f.name, f.val)
		}
		*f.dst = n
	}

	if row.baseWeight, err = strconv.ParseFloat(strings.TrimSpace(record[3]), 64); err != nil {
		return nil, fmt.Errorf("base_weight %q: not a number", record[3])
	}
	if row.actualWeight, err = strconv.ParseFloat(strings.TrimSpace(record[6]), 64); err != nil {
		return nil, fmt.Errorf("actual_weight %q: not a number", record[6])
	}
	return row, nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

func sameExecution(in *storage.ExecutionInput, row *setLogRow) bool {
	return in.ExerciseID == row.exerciseID &&
		in.SetTypeID == row.setTypeID &&
		in.BaseWeight == row.baseWeight &&
		in.PerformedAt != nil && in.PerformedAt.Equal(row.date)
}

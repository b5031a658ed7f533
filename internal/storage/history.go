package storage

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
)

// Period bucket granularities for history aggregation. Each carries its own
// lookback window.
const (
	PeriodDay   = "day"
	PeriodWeek  = "week"
	PeriodMonth = "month"
)

// HistoryRow is one aggregated bucket for one muscle group. Buckets with no
// activity produce no row; zero-filling is the caller's concern.
type HistoryRow struct {
	PeriodType  string    `json:"period_type"`
	PeriodStart time.Time `json:"period_start"`
	MuscleGroup string    `json:"muscle_group"`
	Total       float64   `json:"total"`
}

// periods in presentation order, with their lookback starts.
var historyPeriods = []string{PeriodDay, PeriodWeek, PeriodMonth}

const strengthQuery = `
	SELECT date_trunc($1, x.created_at), mg.name,
	       SUM(x.base_weight * t.effort_percentage / 100.0)
	FROM user_set_executions x
	JOIN exercise_muscle_targets t ON t.exercise_id = x.exercise_id
	JOIN muscle_groups mg ON mg.id = t.muscle_group_id
	WHERE x.user_id = $2 AND x.created_at >= $3
	  AND EXISTS (
		SELECT 1 FROM user_set_phase_executions p
		WHERE p.user_set_execution_id = x.id AND p.completed_at IS NOT NULL
	  )
	GROUP BY 1, mg.name
	ORDER BY 1 ASC, mg.name ASC`

const volumeQuery = `
	SELECT date_trunc($1, p.completed_at), mg.name,
	       SUM(p.actual_weight * p.actual_reps * t.effort_percentage / 100.0)
	FROM user_set_phase_executions p
	JOIN user_set_executions x ON x.id = p.user_set_execution_id
	JOIN exercise_muscle_targets t ON t.exercise_id = x.exercise_id
	JOIN muscle_groups mg ON mg.id = t.muscle_group_id
	WHERE x.user_id = $2 AND p.completed_at IS NOT NULL AND p.completed_at >= $3
	GROUP BY 1, mg.name
	ORDER BY 1 ASC, mg.name ASC`

// StrengthHistory aggregates effective weight (base weight scaled by each
// muscle's effort percentage, counted once per execution) into day, week,
// and month buckets over their respective lookback windows.
func (db *DB) StrengthHistory(ctx context.Context, userID int) ([]HistoryRow, error) {
	return db.history(ctx, userID, strengthQuery)
}

// VolumeHistory aggregates effective volume (actual weight x actual reps
// scaled by effort percentage, per completed phase) into the same three
// bucketed windows as StrengthHistory.
func (db *DB) VolumeHistory(ctx context.Context, userID int) ([]HistoryRow, error) {
	return db.history(ctx, userID, volumeQuery)
}

// history fetches the three windows concurrently; they have no ordering
// dependency on each other. Results come back in day, week, month order
// with buckets and muscle groups ascending within each.
func (db *DB) history(ctx context.Context, userID int, query string) ([]HistoryRow, error) {
	now := time.Now()
	buckets := make([][]HistoryRow, len(historyPeriods))

	g, gctx := errgroup.WithContext(ctx)
	for i, period := range historyPeriods {
		g.Go(func() error {
			rows, err := db.historyWindow(gctx, userID, query, period, windowStart(period, now))
			if err != nil {
				return err
			}
			buckets[i] = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var result []HistoryRow
	for _, b := range buckets {
		result = append(result, b...)
	}
	return result, nil
}

func (db *DB) historyWindow(ctx context.Context, userID int, query, period string, start time.Time) ([]HistoryRow, error) {
	rows, err := db.Pool.Query(ctx, query, period, userID, start)
	if err != nil {
		return nil, fmt.Errorf("querying %s history: %w", period, err)
	}
	defer rows.Close()

	var result []HistoryRow
	for rows.Next() {
		r := HistoryRow{PeriodType: period}
		if err := rows.Scan(&r.PeriodStart, &r.MuscleGroup, &r.Total); err != nil {
			return nil, fmt.Errorf("scanning %s history: %w", period, err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// windowStart returns the inclusive lower bound for a period's lookback:
// 7 daily buckets, 4 ISO weeks, or 12 calendar months, each including the
// current (partial) bucket.
func windowStart(period string, now time.Time) time.Time {
	switch period {
	case PeriodDay:
		return startOfDay(now).AddDate(0, 0, -6)
	case PeriodWeek:
		return startOfISOWeek(now).AddDate(0, 0, -7*3)
	case PeriodMonth:
		return startOfMonth(now).AddDate(0, -11, 0)
	}
	return startOfDay(now)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// startOfISOWeek truncates to the most recent Monday, matching Postgres
// date_trunc('week', ...).
func startOfISOWeek(t time.Time) time.Time {
	d := startOfDay(t)
	offset := (int(d.Weekday()) + 6) % 7 // Monday=0 ... Sunday=6
	return d.AddDate(0, 0, -offset)
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

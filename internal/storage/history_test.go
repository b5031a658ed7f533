package storage

import (
	"testing"
	"time"
)

// TestStartOfISOWeek verifies truncation to the most recent Monday across a
// full week, matching Postgres date_trunc('week', ...).
func TestStartOfISOWeek(t *testing.T) {
	// 2026-08-24 is a Monday.
	monday := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		day := monday.AddDate(0, 0, i).Add(15 * time.Hour)
		if got := startOfISOWeek(day); !got.Equal(monday) {
			t.Errorf("startOfISOWeek(%s) = %s, want %s",
				day.Format("2006-01-02 Mon"), got.Format("2006-01-02"), monday.Format("2006-01-02"))
		}
	}

	// A Sunday belongs to the week that started six days earlier, not the
	// next day's week.
	sunday := time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC)
	want := time.Date(2026, 8, 17, 0, 0, 0, 0, time.UTC)
	if got := startOfISOWeek(sunday); !got.Equal(want) {
		t.Errorf("startOfISOWeek(sunday) = %s, want %s", got.Format("2006-01-02"), want.Format("2006-01-02"))
	}
}

// TestWindowStart verifies each period's lookback: 7 days, 4 ISO weeks, and
// 12 calendar months, all inclusive of the current bucket.
func TestWindowStart(t *testing.T) {
	// Wednesday afternoon.
	now := time.Date(2026, 8, 26, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		period string
		want   time.Time
	}{
		{PeriodDay, time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)},
		{PeriodWeek, time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC)},
		{PeriodMonth, time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		if got := windowStart(tt.period, now); !got.Equal(tt.want) {
			t.Errorf("windowStart(%s) = %s, want %s",
				tt.period, got.Format("2006-01-02"), tt.want.Format("2006-01-02"))
		}
	}
}

// TestWindowStartMonthBoundary verifies month lookback from January lands in
// the previous year without day-of-month drift.
func TestWindowStartMonthBoundary(t *testing.T) {
	now := time.Date(2026, 1, 31, 8, 0, 0, 0, time.UTC)
	want := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	if got := windowStart(PeriodMonth, now); !got.Equal(want) {
		t.Errorf("windowStart(month) = %s, want %s", got.Format("2006-01-02"), want.Format("2006-01-02"))
	}
}

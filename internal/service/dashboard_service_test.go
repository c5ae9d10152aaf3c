package service

import (
	"context"
	"testing"
	"time"

	dom "github.com/Collinul/home-task-management-sub001/internal/domain"
	"github.com/Collinul/home-task-management-sub001/internal/repo"
)

func TestPercentChange(t *testing.T) {
	tests := []struct {
		current, previous, want int
	}{
		{0, 0, 0},
		{4, 0, 100},
		{0, 4, -100},
		{6, 4, 50},
		{3, 4, -25},
		{4, 4, 0},
		{1, 3, -67},
	}
	for _, tt := range tests {
		if got := percentChange(tt.current, tt.previous); got != tt.want {
			t.Errorf("percentChange(%d, %d) = %d, want %d", tt.current, tt.previous, got, tt.want)
		}
	}
}

func TestStartOfWeek(t *testing.T) {
	// 2026-08-28 is a Friday.
	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			"friday",
			time.Date(2026, 8, 28, 15, 30, 0, 0, time.UTC),
			time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC),
		},
		{
			"monday maps to itself",
			time.Date(2026, 8, 24, 0, 0, 1, 0, time.UTC),
			time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC),
		},
		{
			"sunday maps to the previous monday",
			time.Date(2026, 8, 30, 23, 59, 0, 0, time.UTC),
			time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := startOfWeek(tt.now); !got.Equal(tt.want) {
				t.Errorf("startOfWeek(%v) = %v, want %v", tt.now, got, tt.want)
			}
		})
	}
}

func TestDashboardBounds(t *testing.T) {
	now := time.Date(2026, 8, 28, 15, 30, 0, 0, time.UTC)
	b := dashboardBounds(now)

	if !b.StartOfToday.Equal(time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("StartOfToday = %v", b.StartOfToday)
	}
	if !b.StartOfTomorrow.Equal(time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("StartOfTomorrow = %v", b.StartOfTomorrow)
	}
	if !b.WeekStart.Equal(time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("WeekStart = %v", b.WeekStart)
	}
	if !b.LastWeekStart.Equal(time.Date(2026, 8, 17, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("LastWeekStart = %v", b.LastWeekStart)
	}
}

func TestRelativeDueLabel(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		due  time.Time
		want string
	}{
		{"later today", time.Date(2026, 8, 28, 15, 4, 0, 0, time.UTC), "Today, 3:04 PM"},
		{"earlier today", time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC), "Today, 9:00 AM"},
		{"tomorrow", time.Date(2026, 8, 29, 8, 30, 0, 0, time.UTC), "Tomorrow, 8:30 AM"},
		{"overdue", time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC), "Overdue (Mon, Aug 24)"},
		{"far future", time.Date(2026, 9, 7, 15, 4, 0, 0, time.UTC), "Mon, Sep 7, 3:04 PM"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RelativeDueLabel(tt.due, now); got != tt.want {
				t.Errorf("RelativeDueLabel(%v) = %q, want %q", tt.due, got, tt.want)
			}
		})
	}
}

func TestDashboardServiceStats(t *testing.T) {
	tasks := &fakeTaskRepo{
		DashboardCountsFn: func(_ context.Context, viewerID int64, b repo.DashboardBounds) (repo.DashboardCounts, error) {
			if !b.WeekStart.Before(b.Now) || !b.LastWeekStart.Before(b.WeekStart) {
				t.Errorf("bounds out of order: %+v", b)
			}
			return repo.DashboardCounts{
				Active:            12,
				Overdue:           2,
				DueToday:          3,
				CompletedThisWeek: 6,
				CompletedLastWeek: 4,
			}, nil
		},
		UpcomingFn: func(_ context.Context, viewerID int64, limit int) ([]dom.Task, error) {
			if limit != 5 {
				t.Errorf("upcoming limit = %d, want 5", limit)
			}
			return []dom.Task{
				{ID: 1, Title: "Dishes", DueDate: time.Now().Add(2 * time.Hour)},
			}, nil
		},
	}
	svc := NewDashboardService(tasks, nil)

	stats, err := svc.Stats(context.Background(), 7)
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.ActiveTasks != 12 || stats.OverdueTasks != 2 || stats.DueToday != 3 {
		t.Errorf("counts = %+v", stats)
	}
	if stats.CompletedThisWeekChange != 50 {
		t.Errorf("change = %d, want 50", stats.CompletedThisWeekChange)
	}
	if len(stats.UpcomingTasks) != 1 || stats.UpcomingTasks[0].DueLabel == "" {
		t.Errorf("upcoming = %+v, want one labeled task", stats.UpcomingTasks)
	}
}

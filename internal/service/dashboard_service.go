package service

import (
	"context"
	"math"
	"strconv"
	"time"

	"github.com/Collinul/home-task-management-sub001/internal/cache"
	dom "github.com/Collinul/home-task-management-sub001/internal/domain"
	"github.com/Collinul/home-task-management-sub001/internal/repo"

	"golang.org/x/sync/singleflight"
)

const upcomingOnDashboard = 5

// DashboardService computes the read-only aggregate for the current caller.
// Stateless beyond the cache; all time boundaries are derived from the wall
// clock at request time.
type DashboardService struct {
	tasks repo.TaskRepo
	cache *cache.TaskCache
	sf    singleflight.Group
}

// NewDashboardService creates a DashboardService. If c is nil, caching is disabled.
func NewDashboardService(tasks repo.TaskRepo, c *cache.TaskCache) *DashboardService {
	return &DashboardService{tasks: tasks, cache: c}
}

// Stats returns the caller's dashboard aggregate.
func (s *DashboardService) Stats(ctx context.Context, userID int64) (dom.DashboardStats, error) {
	if s.cache == nil {
		return s.compute(ctx, userID)
	}
	key := "stats:" + strconv.FormatInt(userID, 10)
	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		if stats, err := s.cache.GetStats(ctx, userID); err == nil && stats != nil {
			return *stats, nil
		}
		stats, err := s.compute(ctx, userID)
		if err != nil {
			return nil, err
		}
		_ = s.cache.SetStats(ctx, userID, stats)
		return stats, nil
	})
	if err != nil {
		return dom.DashboardStats{}, err
	}
	return v.(dom.DashboardStats), nil
}

func (s *DashboardService) compute(ctx context.Context, userID int64) (dom.DashboardStats, error) {
	now := time.Now()
	counts, err := s.tasks.DashboardCounts(ctx, userID, dashboardBounds(now))
	if err != nil {
		return dom.DashboardStats{}, err
	}
	upcoming, err := s.tasks.Upcoming(ctx, userID, upcomingOnDashboard)
	if err != nil {
		return dom.DashboardStats{}, err
	}
	annotated := make([]dom.UpcomingTask, len(upcoming))
	for i, t := range upcoming {
		annotated[i] = dom.UpcomingTask{Task: t, DueLabel: RelativeDueLabel(t.DueDate, now)}
	}
	return dom.DashboardStats{
		ActiveTasks:             counts.Active,
		OverdueTasks:            counts.Overdue,
		DueToday:                counts.DueToday,
		CompletedThisWeek:       counts.CompletedThisWeek,
		CompletedThisWeekChange: percentChange(counts.CompletedThisWeek, counts.CompletedLastWeek),
		UpcomingTasks:           annotated,
	}, nil
}

// dashboardBounds derives the counting boundaries from now, in its location.
func dashboardBounds(now time.Time) repo.DashboardBounds {
	today := startOfDay(now)
	week := startOfWeek(now)
	return repo.DashboardBounds{
		Now:             now,
		StartOfToday:    today,
		StartOfTomorrow: today.AddDate(0, 0, 1),
		WeekStart:       week,
		LastWeekStart:   week.AddDate(0, 0, -7),
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// startOfWeek returns the most recent Monday 00:00 in t's location.
func startOfWeek(t time.Time) time.Time {
	daysSinceMonday := (int(t.Weekday()) + 6) % 7
	return startOfDay(t.AddDate(0, 0, -daysSinceMonday))
}

// percentChange is the week-over-week completion change: 0 when both counts
// are zero, 100 when only the current week is nonzero.
func percentChange(current, previous int) int {
	if previous == 0 {
		if current == 0 {
			return 0
		}
		return 100
	}
	return int(math.Round(float64(current-previous) / float64(previous) * 100))
}

// RelativeDueLabel renders a due date relative to now: "Today, 3:04 PM",
// "Tomorrow, 3:04 PM", "Overdue (Mon, Jan 5)", or the full form
// "Mon, Jan 5, 3:04 PM".
func RelativeDueLabel(due, now time.Time) string {
	due = due.In(now.Location())
	today := startOfDay(now)
	dueDay := startOfDay(due)

	switch {
	case dueDay.Equal(today):
		return "Today, " + due.Format("3:04 PM")
	case dueDay.Equal(today.AddDate(0, 0, 1)):
		return "Tomorrow, " + due.Format("3:04 PM")
	case due.Before(now):
		return "Overdue (" + due.Format("Mon, Jan 2") + ")"
	}
	return due.Format("Mon, Jan 2, 3:04 PM")
}

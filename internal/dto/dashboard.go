package dto

import dom "github.com/Collinul/home-task-management-sub001/internal/domain"

type DashboardStatsResponse struct {
	ActiveTasks             int                    `json:"active_tasks"`
	OverdueTasks            int                    `json:"overdue_tasks"`
	DueToday                int                    `json:"due_today"`
	CompletedThisWeek       int                    `json:"completed_this_week"`
	CompletedThisWeekChange int                    `json:"completed_this_week_change"`
	UpcomingTasks           []UpcomingTaskResponse `json:"upcoming_tasks"`
}

// FromDashboardStats maps the domain aggregate.
func FromDashboardStats(s dom.DashboardStats) DashboardStatsResponse {
	upcoming := make([]UpcomingTaskResponse, len(s.UpcomingTasks))
	for i, u := range s.UpcomingTasks {
		upcoming[i] = UpcomingTaskResponse{TaskResponse: FromTask(u.Task), DueLabel: u.DueLabel}
	}
	return DashboardStatsResponse{
		ActiveTasks:             s.ActiveTasks,
		OverdueTasks:            s.OverdueTasks,
		DueToday:                s.DueToday,
		CompletedThisWeek:       s.CompletedThisWeek,
		CompletedThisWeekChange: s.CompletedThisWeekChange,
		UpcomingTasks:           upcoming,
	}
}

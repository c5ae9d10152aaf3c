package domain

// UpcomingTask is a task annotated with a human-readable relative due label
// ("Today, 3:00 PM", "Overdue (Mon, Jan 5)"). The label is computed from the
// wall clock at request time and never stored.
type UpcomingTask struct {
	Task
	DueLabel string `json:"due_label"`
}

// DashboardStats is the aggregate returned by the dashboard endpoint.
type DashboardStats struct {
	ActiveTasks             int            `json:"active_tasks"`
	OverdueTasks            int            `json:"overdue_tasks"`
	DueToday                int            `json:"due_today"`
	CompletedThisWeek       int            `json:"completed_this_week"`
	CompletedThisWeekChange int            `json:"completed_this_week_change"`
	UpcomingTasks           []UpcomingTask `json:"upcoming_tasks"`
}

// HealthSnapshot holds the per-user counts reported by the health endpoint.
type HealthSnapshot struct {
	Tasks      int
	Categories int
	Households int
}

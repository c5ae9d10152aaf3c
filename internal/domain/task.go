package domain

import "time"

// Priority of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is a known priority.
func (p Priority) Valid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// Rank orders priorities for sorting: high > medium > low.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

// Task is the central domain entity. Owned either by a user or a household.
type Task struct {
	ID               int64
	Title            string
	Description      string
	DueDate          time.Time
	Priority         Priority
	IsCompleted      bool
	CompletedAt      *time.Time
	EstimatedMinutes *int
	ActualMinutes    *int
	CategoryID       int64
	Owner            Owner
	AssignedToID     *int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// History actions recorded in the append-only task log.
const (
	HistoryCreated   = "created"
	HistoryCompleted = "completed"
	HistoryReopened  = "reopened"
)

// TaskHistory is an append-only log entry for a task.
type TaskHistory struct {
	ID        int64
	TaskID    int64
	UserID    int64
	Action    string
	CreatedAt time.Time
}

// RecurrenceRule is stored metadata describing how a task repeats.
// Expansion into future task instances is out of scope; the rule is
// persisted and returned verbatim.
type RecurrenceRule struct {
	TaskID         int64
	Frequency      string
	Interval       int
	DaysOfWeek     []int32
	EndDate        *time.Time
	MaxOccurrences *int
}

// TaskDetail is a task with its related records, the shape of a
// single-task read.
type TaskDetail struct {
	Task
	Category   Category
	Household  *Household
	Assignee   *User
	History    []TaskHistory
	Recurrence *RecurrenceRule
}

// TaskPage is one page of a task listing.
type TaskPage struct {
	Items   []Task
	Total   int
	HasMore bool
}

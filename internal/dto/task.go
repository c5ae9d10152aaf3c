package dto

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	dom "github.com/Collinul/home-task-management-sub001/internal/domain"
)

// DueDate parses due_date from JSON as either date-only ("2006-01-02") or
// RFC3339. Date-only is stored as start of that day in UTC.
type DueDate struct{ t *time.Time }

func (d *DueDate) UnmarshalJSON(data []byte) error {
	var raw *string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil || strings.TrimSpace(*raw) == "" {
		d.t = nil
		return nil
	}
	s := strings.TrimSpace(*raw)
	layouts := []string{
		"2006-01-02",
		time.RFC3339,
		time.RFC3339Nano,
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			if layout == "2006-01-02" {
				parsed = time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC)
			}
			d.t = &parsed
			return nil
		}
	}
	return fmt.Errorf("due_date: use date (YYYY-MM-DD) or RFC3339 datetime")
}

// Ptr returns *time.Time for use in service/domain.
func (d DueDate) Ptr() *time.Time { return d.t }

type RecurrenceRuleRequest struct {
	Frequency      string     `json:"frequency" binding:"required,oneof=daily weekly monthly"`
	Interval       int        `json:"interval" binding:"omitempty,min=1"`
	DaysOfWeek     []int32    `json:"days_of_week" binding:"omitempty,dive,min=0,max=6"`
	EndDate        *time.Time `json:"end_date"`
	MaxOccurrences *int       `json:"max_occurrences" binding:"omitempty,min=1"`
}

type CreateTaskRequest struct {
	Title            string                 `json:"title" binding:"required,min=1,max=200"`
	Description      string                 `json:"description" binding:"max=2000"`
	DueDate          DueDate                `json:"due_date"` // required, checked in service
	Priority         string                 `json:"priority" binding:"omitempty,oneof=low medium high"`
	CategoryID       int64                  `json:"category_id" binding:"required"`
	HouseholdID      int64                  `json:"household_id"` // 0 = personal task
	AssignedToID     *int64                 `json:"assigned_to_id"`
	EstimatedMinutes *int                   `json:"estimated_minutes" binding:"omitempty,min=1"`
	Recurrence       *RecurrenceRuleRequest `json:"recurrence"`
}

type UpdateTaskRequest struct {
	Title            *string  `json:"title" binding:"omitempty,min=1,max=200"`
	Description      *string  `json:"description" binding:"omitempty,max=2000"`
	DueDate          *DueDate `json:"due_date"` // nil = keep, value = set
	Priority         *string  `json:"priority" binding:"omitempty,oneof=low medium high"`
	IsCompleted      *bool    `json:"is_completed"`
	EstimatedMinutes *int     `json:"estimated_minutes" binding:"omitempty,min=1"`
	ActualMinutes    *int     `json:"actual_minutes" binding:"omitempty,min=1"`
	CategoryID       *int64   `json:"category_id"`
	AssignedToID     *int64   `json:"assigned_to_id"`
}

type ListTasksQuery struct {
	Status      string `form:"status" binding:"omitempty,oneof=all pending completed"`
	Priority    string `form:"priority" binding:"omitempty,oneof=low medium high"`
	CategoryID  int64  `form:"category_id"`
	HouseholdID int64  `form:"household_id"`
	Limit       int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Offset      int    `form:"offset" binding:"omitempty,min=0"`
}

type TaskResponse struct {
	ID               int64      `json:"id"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	DueDate          time.Time  `json:"due_date"`
	Priority         string     `json:"priority"`
	IsCompleted      bool       `json:"is_completed"`
	CompletedAt      *time.Time `json:"completed_at"`
	EstimatedMinutes *int       `json:"estimated_minutes"`
	ActualMinutes    *int       `json:"actual_minutes"`
	CategoryID       int64      `json:"category_id"`
	UserID           *int64     `json:"user_id"`
	HouseholdID      *int64     `json:"household_id"`
	AssignedToID     *int64     `json:"assigned_to_id"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

type ListTasksResponse struct {
	Items   []TaskResponse `json:"items"`
	Total   int            `json:"total"`
	HasMore bool           `json:"has_more"`
}

type TaskHistoryResponse struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Action    string    `json:"action"`
	CreatedAt time.Time `json:"created_at"`
}

type RecurrenceRuleResponse struct {
	Frequency      string     `json:"frequency"`
	Interval       int        `json:"interval"`
	DaysOfWeek     []int32    `json:"days_of_week,omitempty"`
	EndDate        *time.Time `json:"end_date,omitempty"`
	MaxOccurrences *int       `json:"max_occurrences,omitempty"`
}

type TaskDetailResponse struct {
	TaskResponse
	Category   CategoryResponse        `json:"category"`
	Household  *HouseholdResponse      `json:"household,omitempty"`
	Assignee   *UserResponse           `json:"assignee,omitempty"`
	History    []TaskHistoryResponse   `json:"history"`
	Recurrence *RecurrenceRuleResponse `json:"recurrence,omitempty"`
}

type UpcomingTaskResponse struct {
	TaskResponse
	DueLabel string `json:"due_label"`
}

type UpcomingTasksResponse struct {
	Items []UpcomingTaskResponse `json:"items"`
}

// FromTask maps the domain task to its response shape, splitting the owner
// union back into the two nullable ID fields clients expect.
func FromTask(t dom.Task) TaskResponse {
	userID, householdID := t.Owner.Columns()
	return TaskResponse{
		ID:               t.ID,
		Title:            t.Title,
		Description:      t.Description,
		DueDate:          t.DueDate,
		Priority:         string(t.Priority),
		IsCompleted:      t.IsCompleted,
		CompletedAt:      t.CompletedAt,
		EstimatedMinutes: t.EstimatedMinutes,
		ActualMinutes:    t.ActualMinutes,
		CategoryID:       t.CategoryID,
		UserID:           userID,
		HouseholdID:      householdID,
		AssignedToID:     t.AssignedToID,
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        t.UpdatedAt,
	}
}

// FromTasks maps a slice of domain tasks.
func FromTasks(list []dom.Task) []TaskResponse {
	out := make([]TaskResponse, len(list))
	for i := range list {
		out[i] = FromTask(list[i])
	}
	return out
}

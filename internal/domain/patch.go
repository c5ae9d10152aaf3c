package domain

import "time"

// CompletionChange reports how a patch affected a task's completion state.
type CompletionChange int

const (
	CompletionUnchanged CompletionChange = iota
	CompletionDone
	CompletionReopened
)

// TaskPatch is an explicit partial update: nil fields are left untouched.
type TaskPatch struct {
	Title            *string
	Description      *string
	DueDate          *time.Time
	Priority         *Priority
	IsCompleted      *bool
	EstimatedMinutes *int
	ActualMinutes    *int
	CategoryID       *int64
	AssignedToID     *int64
}

// Apply merges the patch over t and returns the result. Completing an
// incomplete task stamps CompletedAt with now; reopening clears it.
// Pure function, no storage involved.
func (p TaskPatch) Apply(t Task, now time.Time) (Task, CompletionChange) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.DueDate != nil {
		t.DueDate = *p.DueDate
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.EstimatedMinutes != nil {
		t.EstimatedMinutes = p.EstimatedMinutes
	}
	if p.ActualMinutes != nil {
		t.ActualMinutes = p.ActualMinutes
	}
	if p.CategoryID != nil {
		t.CategoryID = *p.CategoryID
	}
	if p.AssignedToID != nil {
		t.AssignedToID = p.AssignedToID
	}

	change := CompletionUnchanged
	if p.IsCompleted != nil && *p.IsCompleted != t.IsCompleted {
		t.IsCompleted = *p.IsCompleted
		if t.IsCompleted {
			completedAt := now
			t.CompletedAt = &completedAt
			change = CompletionDone
		} else {
			t.CompletedAt = nil
			change = CompletionReopened
		}
	}
	return t, change
}

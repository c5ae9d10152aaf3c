package dto

import (
	"time"

	dom "github.com/Collinul/home-task-management-sub001/internal/domain"
)

type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Emoji       string `json:"emoji" binding:"max=16"`
	Color       string `json:"color" binding:"omitempty,hexcolor"`
	HouseholdID int64  `json:"household_id"` // 0 = personal category
}

type UpdateCategoryRequest struct {
	Name  *string `json:"name" binding:"omitempty,min=1,max=100"`
	Emoji *string `json:"emoji" binding:"omitempty,max=16"`
	Color *string `json:"color" binding:"omitempty,hexcolor"`
}

type InitializeCategoriesRequest struct {
	HouseholdID int64 `json:"household_id"` // 0 = seed the caller's personal scope
}

type CategoryResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Emoji       string    `json:"emoji"`
	Color       string    `json:"color"`
	UserID      *int64    `json:"user_id"`
	HouseholdID *int64    `json:"household_id"`
	IsDefault   bool      `json:"is_default"`
	TaskCount   int       `json:"task_count"`
	CreatedAt   time.Time `json:"created_at"`
}

type ListCategoriesResponse struct {
	Items []CategoryResponse `json:"items"`
}

// FromCategory maps a domain category; TaskCount stays zero unless set by
// the caller.
func FromCategory(c dom.Category) CategoryResponse {
	userID, householdID := c.Owner.Columns()
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Emoji:       c.Emoji,
		Color:       c.Color,
		UserID:      userID,
		HouseholdID: householdID,
		IsDefault:   c.IsDefault,
		CreatedAt:   c.CreatedAt,
	}
}

// FromCategoriesWithCounts maps annotated categories.
func FromCategoriesWithCounts(list []dom.CategoryWithCount) []CategoryResponse {
	out := make([]CategoryResponse, len(list))
	for i, c := range list {
		out[i] = FromCategory(c.Category)
		out[i].TaskCount = c.TaskCount
	}
	return out
}

// FromCategories maps plain categories.
func FromCategories(list []dom.Category) []CategoryResponse {
	out := make([]CategoryResponse, len(list))
	for i := range list {
		out[i] = FromCategory(list[i])
	}
	return out
}

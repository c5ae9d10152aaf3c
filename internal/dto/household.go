package dto

import (
	"time"

	dom "github.com/Collinul/home-task-management-sub001/internal/domain"
)

type CreateHouseholdRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=120"`
	Description string `json:"description" binding:"max=1000"`
}

type InviteMemberRequest struct {
	Email       string `json:"email" binding:"required,email"`
	HouseholdID int64  `json:"household_id" binding:"required"`
	Role        string `json:"role" binding:"omitempty,oneof=admin member"`
}

type MemberResponse struct {
	UserID   int64     `json:"user_id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

type HouseholdResponse struct {
	ID          int64            `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Members     []MemberResponse `json:"members,omitempty"`
	ActiveTasks int              `json:"active_tasks"`
	Categories  int              `json:"categories"`
	CreatedAt   time.Time        `json:"created_at"`
}

type ListHouseholdsResponse struct {
	Items []HouseholdResponse `json:"items"`
}

// FromHousehold maps a bare household without members or counts.
func FromHousehold(h dom.Household) HouseholdResponse {
	return HouseholdResponse{
		ID:          h.ID,
		Name:        h.Name,
		Description: h.Description,
		CreatedAt:   h.CreatedAt,
	}
}

// FromHouseholdDetail maps a household with its member list and counts.
func FromHouseholdDetail(d dom.HouseholdDetail) HouseholdResponse {
	resp := FromHousehold(d.Household)
	resp.ActiveTasks = d.ActiveTasks
	resp.Categories = d.CategoryCount
	resp.Members = make([]MemberResponse, len(d.Members))
	for i, m := range d.Members {
		resp.Members[i] = MemberResponse{
			UserID:   m.UserID,
			Name:     m.Name,
			Email:    m.Email,
			Role:     string(m.Role),
			JoinedAt: m.JoinedAt,
		}
	}
	return resp
}

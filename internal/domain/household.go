package domain

import "time"

// Role of a household member.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool { return r == RoleAdmin || r == RoleMember }

// CanManage reports whether the role may perform admin-only actions:
// inviting members and deleting household-scoped tasks.
func (r Role) CanManage() bool { return r == RoleAdmin }

type Household struct {
	ID          int64
	Name        string
	Description string
	CreatedAt   time.Time
}

// HouseholdMember links a user to a household. Unique per (household, user).
type HouseholdMember struct {
	ID          int64
	HouseholdID int64
	UserID      int64
	Role        Role
	JoinedAt    time.Time
}

// MemberInfo is a membership row joined with the member's user record,
// as shown in household listings.
type MemberInfo struct {
	HouseholdMember
	Name  string
	Email string
}

// HouseholdDetail is a household with its full member list and live counts,
// the shape returned by the household listing.
type HouseholdDetail struct {
	Household
	Members       []MemberInfo
	ActiveTasks   int
	CategoryCount int
}

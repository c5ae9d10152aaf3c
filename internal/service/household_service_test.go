package service

import (
	"context"
	"errors"
	"testing"

	dom "github.com/Collinul/home-task-management-sub001/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestHouseholdServiceCreate(t *testing.T) {
	var gotAdmin int64
	households := &fakeHouseholdRepo{
		CreateWithAdminFn: func(_ context.Context, h dom.Household, adminID int64) (dom.Household, error) {
			h.ID = 5
			gotAdmin = adminID
			return h, nil
		},
	}
	svc := NewHouseholdService(households, &fakeUserRepo{})

	h, err := svc.Create(context.Background(), 7, "  Smith family  ", " shared chores ")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if h.Name != "Smith family" || h.Description != "shared chores" {
		t.Errorf("household = %+v, want trimmed fields", h)
	}
	if gotAdmin != 7 {
		t.Errorf("admin = %d, want the caller", gotAdmin)
	}

	if _, err := svc.Create(context.Background(), 7, "   ", ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("blank name error = %v, want ErrValidation", err)
	}
}

func TestHouseholdServiceInvite(t *testing.T) {
	registered := map[string]dom.User{
		"sam@example.com": {ID: 8, Email: "sam@example.com", Name: "Sam"},
		"kim@example.com": {ID: 9, Email: "kim@example.com", Name: "Kim"},
	}
	users := &fakeUserRepo{
		GetByEmailFn: func(_ context.Context, email string) (dom.User, error) {
			if u, ok := registered[email]; ok {
				return u, nil
			}
			return dom.User{}, pgx.ErrNoRows
		},
	}
	roles := map[[2]int64]dom.Role{
		{5, 7}: dom.RoleAdmin,
		{5, 8}: dom.RoleMember,
	}

	tests := []struct {
		name      string
		caller    int64
		email     string
		role      dom.Role
		wantErr   error
		wantAdded bool
	}{
		{"admin invites new member", 7, "kim@example.com", "", nil, true},
		{"non-admin member", 8, "kim@example.com", "", ErrAdminRequired, false},
		{"outsider", 50, "kim@example.com", "", ErrHouseholdAccess, false},
		{"already a member", 7, "sam@example.com", "", ErrAlreadyMember, false},
		{"unregistered email", 7, "nobody@example.com", "", ErrInviteUnregistered, false},
		{"unknown role", 7, "kim@example.com", "owner", ErrValidation, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			added := false
			households := &fakeHouseholdRepo{
				MemberRoleFn: memberOf(roles),
				AddMemberFn: func(_ context.Context, m dom.HouseholdMember) (dom.HouseholdMember, error) {
					added = true
					m.ID = 100
					return m, nil
				},
			}
			svc := NewHouseholdService(households, users)

			m, err := svc.Invite(context.Background(), tt.caller, tt.email, 5, tt.role)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Invite() error = %v, want %v", err, tt.wantErr)
			}
			if added != tt.wantAdded {
				t.Fatalf("AddMember called = %v, want %v", added, tt.wantAdded)
			}
			if tt.wantErr == nil {
				if m.UserID != 9 || m.Role != dom.RoleMember {
					t.Errorf("member = %+v, want user 9 with default member role", m)
				}
			}
		})
	}
}

func TestHouseholdServiceInviteConcurrentDuplicate(t *testing.T) {
	users := &fakeUserRepo{
		GetByEmailFn: func(_ context.Context, email string) (dom.User, error) {
			return dom.User{ID: 9, Email: email}, nil
		},
	}
	households := &fakeHouseholdRepo{
		MemberRoleFn: memberOf(map[[2]int64]dom.Role{
			{5, 7}: dom.RoleAdmin,
		}),
		AddMemberFn: func(_ context.Context, m dom.HouseholdMember) (dom.HouseholdMember, error) {
			// The invitee slipped in between the membership check and the insert.
			return dom.HouseholdMember{}, &pgconn.PgError{Code: "23505"}
		},
	}
	svc := NewHouseholdService(households, users)

	_, err := svc.Invite(context.Background(), 7, "kim@example.com", 5, dom.RoleMember)
	if !errors.Is(err, ErrAlreadyMember) {
		t.Fatalf("Invite() error = %v, want ErrAlreadyMember", err)
	}
}

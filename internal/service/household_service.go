package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	dom "github.com/Collinul/home-task-management-sub001/internal/domain"
	"github.com/Collinul/home-task-management-sub001/internal/repo"
	"github.com/Collinul/home-task-management-sub001/internal/utils"

	"github.com/jackc/pgx/v5"
)

var (
	ErrAlreadyMember = errors.New("user is already a member of this household")

	// ErrInviteUnregistered marks the deliberately unimplemented flow for
	// inviting an email with no account yet.
	ErrInviteUnregistered = errors.New("inviting unregistered users is not implemented")
)

// InviteGuidance accompanies a 501 on the unregistered-invite stub.
const InviteGuidance = "ask the person to register first, then invite their account email"

type HouseholdService struct {
	households repo.HouseholdRepo
	users      repo.UserRepo
}

func NewHouseholdService(households repo.HouseholdRepo, users repo.UserRepo) *HouseholdService {
	return &HouseholdService{households: households, users: users}
}

// List returns the caller's households with members and counts.
func (s *HouseholdService) List(ctx context.Context, userID int64) ([]dom.HouseholdDetail, error) {
	return s.households.ListForUser(ctx, userID)
}

// Create makes a household with the caller as its first admin member. Both
// rows are written in one transaction.
func (s *HouseholdService) Create(ctx context.Context, userID int64, name, description string) (dom.Household, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return dom.Household{}, fmt.Errorf("%w: name is required", ErrValidation)
	}
	return s.households.CreateWithAdmin(ctx, dom.Household{
		Name:        name,
		Description: strings.TrimSpace(description),
	}, userID)
}

// Invite adds a registered user to the household. Caller must be an admin
// member. Inviting an email with no account is a deliberate stub.
func (s *HouseholdService) Invite(ctx context.Context, callerID int64, email string, householdID int64, role dom.Role) (dom.HouseholdMember, error) {
	if role == "" {
		role = dom.RoleMember
	}
	if !role.Valid() {
		return dom.HouseholdMember{}, fmt.Errorf("%w: unknown role %q", ErrValidation, role)
	}

	callerRole, err := s.households.MemberRole(ctx, householdID, callerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.HouseholdMember{}, ErrHouseholdAccess
		}
		return dom.HouseholdMember{}, err
	}
	if !callerRole.CanManage() {
		return dom.HouseholdMember{}, ErrAdminRequired
	}

	invitee, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.HouseholdMember{}, ErrInviteUnregistered
		}
		return dom.HouseholdMember{}, err
	}

	if _, err := s.households.MemberRole(ctx, householdID, invitee.ID); err == nil {
		return dom.HouseholdMember{}, ErrAlreadyMember
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return dom.HouseholdMember{}, err
	}

	m, err := s.households.AddMember(ctx, dom.HouseholdMember{
		HouseholdID: householdID,
		UserID:      invitee.ID,
		Role:        role,
	})
	if err != nil {
		// Concurrent invite of the same user.
		if utils.IsPGUniqueViolation(err) {
			return dom.HouseholdMember{}, ErrAlreadyMember
		}
		return dom.HouseholdMember{}, err
	}
	return m, nil
}

package service

import (
	"context"

	dom "github.com/Collinul/home-task-management-sub001/internal/domain"
	"github.com/Collinul/home-task-management-sub001/internal/repo"

	"github.com/jackc/pgx/v5"
)

// Function-field fakes: tests set only the methods a path exercises.

type fakeTaskRepo struct {
	ListFn            func(ctx context.Context, viewerID int64, f repo.TaskFilter) ([]dom.Task, int, error)
	GetByIDFn         func(ctx context.Context, viewerID, id int64) (dom.Task, error)
	CreateFn          func(ctx context.Context, t dom.Task) (dom.Task, error)
	UpdateFn          func(ctx context.Context, viewerID int64, t dom.Task) (dom.Task, error)
	DeleteFn          func(ctx context.Context, viewerID, id int64) error
	UpcomingFn        func(ctx context.Context, viewerID int64, limit int) ([]dom.Task, error)
	AddHistoryFn      func(ctx context.Context, h dom.TaskHistory) error
	HistoryFn         func(ctx context.Context, taskID int64, limit int) ([]dom.TaskHistory, error)
	SaveRecurrenceFn  func(ctx context.Context, r dom.RecurrenceRule) error
	RecurrenceFn      func(ctx context.Context, taskID int64) (*dom.RecurrenceRule, error)
	DashboardCountsFn func(ctx context.Context, viewerID int64, b repo.DashboardBounds) (repo.DashboardCounts, error)
}

func (f *fakeTaskRepo) List(ctx context.Context, viewerID int64, fl repo.TaskFilter) ([]dom.Task, int, error) {
	return f.ListFn(ctx, viewerID, fl)
}

func (f *fakeTaskRepo) GetByID(ctx context.Context, viewerID, id int64) (dom.Task, error) {
	return f.GetByIDFn(ctx, viewerID, id)
}

func (f *fakeTaskRepo) Create(ctx context.Context, t dom.Task) (dom.Task, error) {
	return f.CreateFn(ctx, t)
}

func (f *fakeTaskRepo) Update(ctx context.Context, viewerID int64, t dom.Task) (dom.Task, error) {
	return f.UpdateFn(ctx, viewerID, t)
}

func (f *fakeTaskRepo) Delete(ctx context.Context, viewerID, id int64) error {
	return f.DeleteFn(ctx, viewerID, id)
}

func (f *fakeTaskRepo) Upcoming(ctx context.Context, viewerID int64, limit int) ([]dom.Task, error) {
	return f.UpcomingFn(ctx, viewerID, limit)
}

func (f *fakeTaskRepo) AddHistory(ctx context.Context, h dom.TaskHistory) error {
	if f.AddHistoryFn == nil {
		return nil
	}
	return f.AddHistoryFn(ctx, h)
}

func (f *fakeTaskRepo) History(ctx context.Context, taskID int64, limit int) ([]dom.TaskHistory, error) {
	if f.HistoryFn == nil {
		return nil, nil
	}
	return f.HistoryFn(ctx, taskID, limit)
}

func (f *fakeTaskRepo) SaveRecurrence(ctx context.Context, r dom.RecurrenceRule) error {
	return f.SaveRecurrenceFn(ctx, r)
}

func (f *fakeTaskRepo) Recurrence(ctx context.Context, taskID int64) (*dom.RecurrenceRule, error) {
	if f.RecurrenceFn == nil {
		return nil, nil
	}
	return f.RecurrenceFn(ctx, taskID)
}

func (f *fakeTaskRepo) DashboardCounts(ctx context.Context, viewerID int64, b repo.DashboardBounds) (repo.DashboardCounts, error) {
	return f.DashboardCountsFn(ctx, viewerID, b)
}

type fakeCategoryRepo struct {
	ListVisibleFn  func(ctx context.Context, viewerID int64) ([]dom.CategoryWithCount, error)
	GetByIDFn      func(ctx context.Context, viewerID, id int64) (dom.Category, error)
	CreateFn       func(ctx context.Context, c dom.Category) (dom.Category, error)
	UpdateFn       func(ctx context.Context, c dom.Category) (dom.Category, error)
	DeleteFn       func(ctx context.Context, id int64) error
	TaskCountFn    func(ctx context.Context, id int64) (int, error)
	ListByOwnerFn  func(ctx context.Context, o dom.Owner) ([]dom.Category, error)
	SeedDefaultsFn func(ctx context.Context, o dom.Owner, defs []dom.Category) ([]dom.Category, error)
}

func (f *fakeCategoryRepo) ListVisible(ctx context.Context, viewerID int64) ([]dom.CategoryWithCount, error) {
	return f.ListVisibleFn(ctx, viewerID)
}

func (f *fakeCategoryRepo) GetByID(ctx context.Context, viewerID, id int64) (dom.Category, error) {
	return f.GetByIDFn(ctx, viewerID, id)
}

func (f *fakeCategoryRepo) Create(ctx context.Context, c dom.Category) (dom.Category, error) {
	return f.CreateFn(ctx, c)
}

func (f *fakeCategoryRepo) Update(ctx context.Context, c dom.Category) (dom.Category, error) {
	return f.UpdateFn(ctx, c)
}

func (f *fakeCategoryRepo) Delete(ctx context.Context, id int64) error {
	return f.DeleteFn(ctx, id)
}

func (f *fakeCategoryRepo) TaskCount(ctx context.Context, id int64) (int, error) {
	return f.TaskCountFn(ctx, id)
}

func (f *fakeCategoryRepo) ListByOwner(ctx context.Context, o dom.Owner) ([]dom.Category, error) {
	return f.ListByOwnerFn(ctx, o)
}

func (f *fakeCategoryRepo) SeedDefaults(ctx context.Context, o dom.Owner, defs []dom.Category) ([]dom.Category, error) {
	return f.SeedDefaultsFn(ctx, o, defs)
}

type fakeHouseholdRepo struct {
	ListForUserFn     func(ctx context.Context, userID int64) ([]dom.HouseholdDetail, error)
	GetFn             func(ctx context.Context, id int64) (dom.Household, error)
	CreateWithAdminFn func(ctx context.Context, h dom.Household, adminID int64) (dom.Household, error)
	MemberRoleFn      func(ctx context.Context, householdID, userID int64) (dom.Role, error)
	AddMemberFn       func(ctx context.Context, m dom.HouseholdMember) (dom.HouseholdMember, error)
}

func (f *fakeHouseholdRepo) ListForUser(ctx context.Context, userID int64) ([]dom.HouseholdDetail, error) {
	return f.ListForUserFn(ctx, userID)
}

func (f *fakeHouseholdRepo) Get(ctx context.Context, id int64) (dom.Household, error) {
	return f.GetFn(ctx, id)
}

func (f *fakeHouseholdRepo) CreateWithAdmin(ctx context.Context, h dom.Household, adminID int64) (dom.Household, error) {
	return f.CreateWithAdminFn(ctx, h, adminID)
}

func (f *fakeHouseholdRepo) MemberRole(ctx context.Context, householdID, userID int64) (dom.Role, error) {
	return f.MemberRoleFn(ctx, householdID, userID)
}

func (f *fakeHouseholdRepo) AddMember(ctx context.Context, m dom.HouseholdMember) (dom.HouseholdMember, error) {
	return f.AddMemberFn(ctx, m)
}

type fakeUserRepo struct {
	GetByEmailFn func(ctx context.Context, email string) (dom.User, error)
	GetByIDFn    func(ctx context.Context, id int64) (dom.User, error)
	CreateFn     func(ctx context.Context, name, email, passwordHash string) (dom.User, error)
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (dom.User, error) {
	return f.GetByEmailFn(ctx, email)
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (dom.User, error) {
	return f.GetByIDFn(ctx, id)
}

func (f *fakeUserRepo) Create(ctx context.Context, name, email, passwordHash string) (dom.User, error) {
	return f.CreateFn(ctx, name, email, passwordHash)
}

// memberOf builds a MemberRole func backed by a static role table keyed by
// (householdID, userID). Missing pairs behave like non-members.
func memberOf(roles map[[2]int64]dom.Role) func(ctx context.Context, householdID, userID int64) (dom.Role, error) {
	return func(_ context.Context, householdID, userID int64) (dom.Role, error) {
		if role, ok := roles[[2]int64{householdID, userID}]; ok {
			return role, nil
		}
		return "", pgx.ErrNoRows
	}
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Collinul/home-task-management-sub001/internal/cache"
	dom "github.com/Collinul/home-task-management-sub001/internal/domain"
	"github.com/Collinul/home-task-management-sub001/internal/repo"

	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/singleflight"
)

const (
	defaultPageSize  = 20
	maxPageSize      = 100
	historyPageSize  = 10
	defaultUpcoming  = 5
	maxUpcomingLimit = 50
)

// CreateTaskInput carries everything needed to create a task.
type CreateTaskInput struct {
	Title            string
	Description      string
	DueDate          *time.Time
	Priority         dom.Priority
	CategoryID       int64
	HouseholdID      int64 // 0 = personal task
	AssignedToID     *int64
	EstimatedMinutes *int
	Recurrence       *dom.RecurrenceRule
}

type TaskService struct {
	tasks      repo.TaskRepo
	categories repo.CategoryRepo
	households repo.HouseholdRepo
	users      repo.UserRepo
	cache      *cache.TaskCache
	sf         singleflight.Group
}

// NewTaskService creates a TaskService. If c is nil, caching is disabled.
func NewTaskService(tasks repo.TaskRepo, categories repo.CategoryRepo, households repo.HouseholdRepo, users repo.UserRepo, c *cache.TaskCache) *TaskService {
	return &TaskService{tasks: tasks, categories: categories, households: households, users: users, cache: c}
}

func (s *TaskService) Create(ctx context.Context, userID int64, in CreateTaskInput) (dom.Task, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	if in.Title == "" {
		return dom.Task{}, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if in.DueDate == nil {
		return dom.Task{}, fmt.Errorf("%w: due_date is required", ErrValidation)
	}
	if in.CategoryID == 0 {
		return dom.Task{}, fmt.Errorf("%w: category_id is required", ErrValidation)
	}
	if in.Priority == "" {
		in.Priority = dom.PriorityMedium
	}
	if !in.Priority.Valid() {
		return dom.Task{}, fmt.Errorf("%w: unknown priority %q", ErrValidation, in.Priority)
	}

	// A supplied household attributes ownership to the household, and the
	// caller must belong to it.
	owner := dom.PersonalOwner(userID)
	if in.HouseholdID != 0 {
		if _, err := s.households.MemberRole(ctx, in.HouseholdID, userID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return dom.Task{}, ErrHouseholdAccess
			}
			return dom.Task{}, err
		}
		owner = dom.HouseholdOwner(in.HouseholdID)
	}

	if _, err := s.categories.GetByID(ctx, userID, in.CategoryID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Task{}, ErrCategoryAccess
		}
		return dom.Task{}, err
	}

	if in.AssignedToID != nil {
		if err := s.checkAssignee(ctx, owner, *in.AssignedToID); err != nil {
			return dom.Task{}, err
		}
	}

	t, err := s.tasks.Create(ctx, dom.Task{
		Title:            in.Title,
		Description:      in.Description,
		DueDate:          *in.DueDate,
		Priority:         in.Priority,
		EstimatedMinutes: in.EstimatedMinutes,
		CategoryID:       in.CategoryID,
		Owner:            owner,
		AssignedToID:     in.AssignedToID,
	})
	if err != nil {
		return dom.Task{}, err
	}

	if in.Recurrence != nil {
		rule := *in.Recurrence
		rule.TaskID = t.ID
		if rule.Interval <= 0 {
			rule.Interval = 1
		}
		if err := s.tasks.SaveRecurrence(ctx, rule); err != nil {
			return dom.Task{}, err
		}
	}

	if err := s.tasks.AddHistory(ctx, dom.TaskHistory{TaskID: t.ID, UserID: userID, Action: dom.HistoryCreated}); err != nil {
		return dom.Task{}, err
	}
	s.invalidateCache(ctx, userID)
	return t, nil
}

// List returns one page of visible tasks matching the filter, served from
// cache when possible.
func (s *TaskService) List(ctx context.Context, userID int64, f repo.TaskFilter) (dom.TaskPage, error) {
	f = normalizeFilter(f)
	if s.cache == nil {
		return s.listUncached(ctx, userID, f)
	}
	key := "list:" + strconv.FormatInt(userID, 10) + ":" + filterKey(f)
	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		if page, err := s.cache.GetList(ctx, userID, filterKey(f)); err == nil && page != nil {
			return *page, nil
		}
		page, err := s.listUncached(ctx, userID, f)
		if err != nil {
			return nil, err
		}
		_ = s.cache.SetList(ctx, userID, filterKey(f), page)
		return page, nil
	})
	if err != nil {
		return dom.TaskPage{}, err
	}
	return v.(dom.TaskPage), nil
}

func (s *TaskService) listUncached(ctx context.Context, userID int64, f repo.TaskFilter) (dom.TaskPage, error) {
	items, total, err := s.tasks.List(ctx, userID, f)
	if err != nil {
		return dom.TaskPage{}, err
	}
	return dom.TaskPage{
		Items:   items,
		Total:   total,
		HasMore: f.Offset+len(items) < total,
	}, nil
}

// Get returns a task with its nested category, household, assignee, recent
// history and recurrence rule. Invisible tasks are indistinguishable from
// absent ones.
func (s *TaskService) Get(ctx context.Context, userID, id int64) (dom.TaskDetail, error) {
	t, err := s.tasks.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.TaskDetail{}, ErrNotFound
		}
		return dom.TaskDetail{}, err
	}
	detail := dom.TaskDetail{Task: t}

	detail.Category, err = s.categories.GetByID(ctx, userID, t.CategoryID)
	if err != nil {
		return dom.TaskDetail{}, err
	}
	if t.Owner.IsHousehold() {
		h, err := s.households.Get(ctx, t.Owner.HouseholdID)
		if err != nil {
			return dom.TaskDetail{}, err
		}
		detail.Household = &h
	}
	if t.AssignedToID != nil {
		u, err := s.users.GetByID(ctx, *t.AssignedToID)
		if err != nil {
			return dom.TaskDetail{}, err
		}
		u.PasswordHash = ""
		detail.Assignee = &u
	}
	detail.History, err = s.tasks.History(ctx, id, historyPageSize)
	if err != nil {
		return dom.TaskDetail{}, err
	}
	detail.Recurrence, err = s.tasks.Recurrence(ctx, id)
	if err != nil {
		return dom.TaskDetail{}, err
	}
	return detail, nil
}

// Update applies a partial patch. Completing an incomplete task stamps
// completed_at and appends a history row; reopening clears it.
func (s *TaskService) Update(ctx context.Context, userID, id int64, patch dom.TaskPatch) (dom.Task, error) {
	existing, err := s.tasks.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Task{}, ErrNotFound
		}
		return dom.Task{}, err
	}
	if patch.Title != nil {
		trimmed := strings.TrimSpace(*patch.Title)
		if trimmed == "" {
			return dom.Task{}, fmt.Errorf("%w: title cannot be empty", ErrValidation)
		}
		patch.Title = &trimmed
	}
	if patch.Priority != nil && !patch.Priority.Valid() {
		return dom.Task{}, fmt.Errorf("%w: unknown priority %q", ErrValidation, *patch.Priority)
	}
	if patch.CategoryID != nil {
		if _, err := s.categories.GetByID(ctx, userID, *patch.CategoryID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return dom.Task{}, ErrCategoryAccess
			}
			return dom.Task{}, err
		}
	}
	if patch.AssignedToID != nil {
		if err := s.checkAssignee(ctx, existing.Owner, *patch.AssignedToID); err != nil {
			return dom.Task{}, err
		}
	}

	merged, change := patch.Apply(existing, time.Now().UTC())
	t, err := s.tasks.Update(ctx, userID, merged)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Task{}, ErrNotFound
		}
		return dom.Task{}, err
	}

	switch change {
	case dom.CompletionDone:
		err = s.tasks.AddHistory(ctx, dom.TaskHistory{TaskID: t.ID, UserID: userID, Action: dom.HistoryCompleted})
	case dom.CompletionReopened:
		err = s.tasks.AddHistory(ctx, dom.TaskHistory{TaskID: t.ID, UserID: userID, Action: dom.HistoryReopened})
	}
	if err != nil {
		return dom.Task{}, err
	}
	s.invalidateCache(ctx, userID)
	return t, nil
}

// Delete removes a task. Household-scoped tasks require the admin role;
// dependent history and recurrence rows cascade in storage.
func (s *TaskService) Delete(ctx context.Context, userID, id int64) error {
	existing, err := s.tasks.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if existing.Owner.IsHousehold() {
		role, err := s.households.MemberRole(ctx, existing.Owner.HouseholdID, userID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrNotFound
			}
			return err
		}
		if !role.CanManage() {
			return ErrAdminRequired
		}
	}
	if err := s.tasks.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	s.invalidateCache(ctx, userID)
	return nil
}

// Upcoming returns the nearest incomplete tasks annotated with relative due
// labels computed from the current wall clock.
func (s *TaskService) Upcoming(ctx context.Context, userID int64, limit int) ([]dom.UpcomingTask, error) {
	if limit <= 0 {
		limit = defaultUpcoming
	}
	if limit > maxUpcomingLimit {
		limit = maxUpcomingLimit
	}
	list, err := s.tasks.Upcoming(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	out := make([]dom.UpcomingTask, len(list))
	for i, t := range list {
		out[i] = dom.UpcomingTask{Task: t, DueLabel: RelativeDueLabel(t.DueDate, now)}
	}
	return out, nil
}

// checkAssignee requires household scope and membership of the assignee.
func (s *TaskService) checkAssignee(ctx context.Context, owner dom.Owner, assigneeID int64) error {
	if !owner.IsHousehold() {
		return fmt.Errorf("%w: assignee requires a household task", ErrValidation)
	}
	if _, err := s.households.MemberRole(ctx, owner.HouseholdID, assigneeID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: assignee is not a household member", ErrValidation)
		}
		return err
	}
	return nil
}

func (s *TaskService) invalidateCache(ctx context.Context, userID int64) {
	if s.cache != nil {
		_ = s.cache.InvalidateUser(ctx, userID)
	}
}

func normalizeFilter(f repo.TaskFilter) repo.TaskFilter {
	if f.Status == "" {
		f.Status = "all"
	}
	if f.Limit <= 0 {
		f.Limit = defaultPageSize
	}
	if f.Limit > maxPageSize {
		f.Limit = maxPageSize
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return f
}

func filterKey(f repo.TaskFilter) string {
	return fmt.Sprintf("%s:%s:%d:%d:%d:%d",
		f.Status, f.Priority, f.CategoryID, f.HouseholdID, f.Limit, f.Offset)
}

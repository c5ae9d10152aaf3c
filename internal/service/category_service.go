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
	ErrDuplicateCategory = errors.New("category name already in use")
	ErrCategoryInUse     = errors.New("category still has tasks assigned")
)

// CategoryPatch is an explicit partial update for a category.
type CategoryPatch struct {
	Name  *string
	Emoji *string
	Color *string
}

type CategoryService struct {
	categories repo.CategoryRepo
	households repo.HouseholdRepo
}

func NewCategoryService(categories repo.CategoryRepo, households repo.HouseholdRepo) *CategoryService {
	return &CategoryService{categories: categories, households: households}
}

// List returns the caller's visible categories with live task counts.
func (s *CategoryService) List(ctx context.Context, userID int64) ([]dom.CategoryWithCount, error) {
	return s.categories.ListVisible(ctx, userID)
}

// Create makes a category in the caller's personal scope, or in a household
// the caller belongs to. Duplicate names within a scope conflict.
func (s *CategoryService) Create(ctx context.Context, userID int64, name, emoji, color string, householdID int64) (dom.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return dom.Category{}, fmt.Errorf("%w: name is required", ErrValidation)
	}
	owner, err := s.resolveOwner(ctx, userID, householdID)
	if err != nil {
		return dom.Category{}, err
	}
	c, err := s.categories.Create(ctx, dom.Category{
		Name:  name,
		Emoji: emoji,
		Color: color,
		Owner: owner,
	})
	if err != nil {
		if utils.IsPGUniqueViolation(err) {
			return dom.Category{}, ErrDuplicateCategory
		}
		return dom.Category{}, err
	}
	return c, nil
}

// Update applies a partial patch to a visible category.
func (s *CategoryService) Update(ctx context.Context, userID, id int64, patch CategoryPatch) (dom.Category, error) {
	existing, err := s.categories.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Category{}, ErrNotFound
		}
		return dom.Category{}, err
	}
	if patch.Name != nil {
		trimmed := strings.TrimSpace(*patch.Name)
		if trimmed == "" {
			return dom.Category{}, fmt.Errorf("%w: name cannot be empty", ErrValidation)
		}
		existing.Name = trimmed
	}
	if patch.Emoji != nil {
		existing.Emoji = *patch.Emoji
	}
	if patch.Color != nil {
		existing.Color = *patch.Color
	}
	c, err := s.categories.Update(ctx, existing)
	if err != nil {
		if utils.IsPGUniqueViolation(err) {
			return dom.Category{}, ErrDuplicateCategory
		}
		return dom.Category{}, err
	}
	return c, nil
}

// Delete refuses while any task still references the category: callers must
// reassign or remove dependent tasks first.
func (s *CategoryService) Delete(ctx context.Context, userID, id int64) error {
	if _, err := s.categories.GetByID(ctx, userID, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	n, err := s.categories.TaskCount(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrCategoryInUse
	}
	if err := s.categories.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		// The count check races with concurrent task creation; the FK
		// keeps the invariant and we report the same conflict.
		if utils.IsPGForeignKeyViolation(err) {
			return ErrCategoryInUse
		}
		return err
	}
	return nil
}

// EnsureDefaults idempotently seeds the scope's default categories. A scope
// that already has any category is returned unchanged.
func (s *CategoryService) EnsureDefaults(ctx context.Context, userID, householdID int64) ([]dom.Category, error) {
	owner, err := s.resolveOwner(ctx, userID, householdID)
	if err != nil {
		return nil, err
	}
	existing, err := s.categories.ListByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return existing, nil
	}
	return s.categories.SeedDefaults(ctx, owner, dom.DefaultCategories())
}

func (s *CategoryService) resolveOwner(ctx context.Context, userID, householdID int64) (dom.Owner, error) {
	if householdID == 0 {
		return dom.PersonalOwner(userID), nil
	}
	if _, err := s.households.MemberRole(ctx, householdID, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Owner{}, ErrHouseholdAccess
		}
		return dom.Owner{}, err
	}
	return dom.HouseholdOwner(householdID), nil
}

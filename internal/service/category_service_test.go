package service

import (
	"context"
	"errors"
	"testing"

	dom "github.com/Collinul/home-task-management-sub001/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestCategoryServiceCreate(t *testing.T) {
	households := &fakeHouseholdRepo{
		MemberRoleFn: memberOf(map[[2]int64]dom.Role{
			{5, 7}: dom.RoleMember,
		}),
	}

	t.Run("personal scope", func(t *testing.T) {
		var created dom.Category
		categories := &fakeCategoryRepo{
			CreateFn: func(_ context.Context, c dom.Category) (dom.Category, error) {
				c.ID = 1
				created = c
				return c, nil
			},
		}
		svc := NewCategoryService(categories, households)

		_, err := svc.Create(context.Background(), 7, "  Garage  ", "🚗", "#aabbcc", 0)
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if created.Name != "Garage" {
			t.Errorf("name not trimmed: %q", created.Name)
		}
		if created.Owner != dom.PersonalOwner(7) {
			t.Errorf("owner = %+v, want personal", created.Owner)
		}
	})

	t.Run("household scope requires membership", func(t *testing.T) {
		categories := &fakeCategoryRepo{
			CreateFn: func(_ context.Context, c dom.Category) (dom.Category, error) { return c, nil },
		}
		svc := NewCategoryService(categories, households)

		if _, err := svc.Create(context.Background(), 7, "Chores", "", "", 5); err != nil {
			t.Fatalf("member Create() error = %v", err)
		}
		if _, err := svc.Create(context.Background(), 99, "Chores", "", "", 5); !errors.Is(err, ErrHouseholdAccess) {
			t.Fatalf("outsider Create() error = %v, want ErrHouseholdAccess", err)
		}
	})

	t.Run("duplicate name conflicts", func(t *testing.T) {
		categories := &fakeCategoryRepo{
			CreateFn: func(_ context.Context, c dom.Category) (dom.Category, error) {
				return dom.Category{}, &pgconn.PgError{Code: "23505"}
			},
		}
		svc := NewCategoryService(categories, households)

		if _, err := svc.Create(context.Background(), 7, "Cleaning", "", "", 0); !errors.Is(err, ErrDuplicateCategory) {
			t.Fatalf("Create() error = %v, want ErrDuplicateCategory", err)
		}
	})

	t.Run("blank name rejected", func(t *testing.T) {
		svc := NewCategoryService(&fakeCategoryRepo{}, households)
		if _, err := svc.Create(context.Background(), 7, "   ", "", "", 0); !errors.Is(err, ErrValidation) {
			t.Fatalf("Create() error = %v, want ErrValidation", err)
		}
	})
}

func TestCategoryServiceDelete(t *testing.T) {
	visible := func(_ context.Context, viewerID, id int64) (dom.Category, error) {
		return dom.Category{ID: id, Owner: dom.PersonalOwner(viewerID)}, nil
	}

	t.Run("in use is refused", func(t *testing.T) {
		categories := &fakeCategoryRepo{
			GetByIDFn:   visible,
			TaskCountFn: func(_ context.Context, id int64) (int, error) { return 3, nil },
		}
		svc := NewCategoryService(categories, &fakeHouseholdRepo{})

		if err := svc.Delete(context.Background(), 7, 1); !errors.Is(err, ErrCategoryInUse) {
			t.Fatalf("Delete() error = %v, want ErrCategoryInUse", err)
		}
	})

	t.Run("empty deletes", func(t *testing.T) {
		deleted := false
		categories := &fakeCategoryRepo{
			GetByIDFn:   visible,
			TaskCountFn: func(_ context.Context, id int64) (int, error) { return 0, nil },
			DeleteFn: func(_ context.Context, id int64) error {
				deleted = true
				return nil
			},
		}
		svc := NewCategoryService(categories, &fakeHouseholdRepo{})

		if err := svc.Delete(context.Background(), 7, 1); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		if !deleted {
			t.Error("repo Delete never called")
		}
	})

	t.Run("race with concurrent task creation", func(t *testing.T) {
		categories := &fakeCategoryRepo{
			GetByIDFn:   visible,
			TaskCountFn: func(_ context.Context, id int64) (int, error) { return 0, nil },
			DeleteFn: func(_ context.Context, id int64) error {
				return &pgconn.PgError{Code: "23503"}
			},
		}
		svc := NewCategoryService(categories, &fakeHouseholdRepo{})

		if err := svc.Delete(context.Background(), 7, 1); !errors.Is(err, ErrCategoryInUse) {
			t.Fatalf("Delete() error = %v, want ErrCategoryInUse", err)
		}
	})

	t.Run("invisible is not found", func(t *testing.T) {
		categories := &fakeCategoryRepo{
			GetByIDFn: func(_ context.Context, viewerID, id int64) (dom.Category, error) {
				return dom.Category{}, pgx.ErrNoRows
			},
		}
		svc := NewCategoryService(categories, &fakeHouseholdRepo{})

		if err := svc.Delete(context.Background(), 7, 1); !errors.Is(err, ErrNotFound) {
			t.Fatalf("Delete() error = %v, want ErrNotFound", err)
		}
	})
}

func TestCategoryServiceUpdate(t *testing.T) {
	categories := &fakeCategoryRepo{
		GetByIDFn: func(_ context.Context, viewerID, id int64) (dom.Category, error) {
			return dom.Category{ID: id, Name: "Cleaning", Emoji: "🧹", Color: "#60a5fa", Owner: dom.PersonalOwner(viewerID)}, nil
		},
		UpdateFn: func(_ context.Context, c dom.Category) (dom.Category, error) { return c, nil },
	}
	svc := NewCategoryService(categories, &fakeHouseholdRepo{})

	name := " Deep cleaning "
	got, err := svc.Update(context.Background(), 7, 1, CategoryPatch{Name: &name})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if got.Name != "Deep cleaning" {
		t.Errorf("name = %q, want trimmed patch value", got.Name)
	}
	if got.Emoji != "🧹" {
		t.Errorf("emoji = %q, untouched fields must survive a partial patch", got.Emoji)
	}

	empty := "   "
	if _, err := svc.Update(context.Background(), 7, 1, CategoryPatch{Name: &empty}); !errors.Is(err, ErrValidation) {
		t.Fatalf("Update() blank name error = %v, want ErrValidation", err)
	}
}

func TestCategoryServiceEnsureDefaults(t *testing.T) {
	t.Run("seeds an empty scope", func(t *testing.T) {
		seeded := false
		categories := &fakeCategoryRepo{
			ListByOwnerFn: func(_ context.Context, o dom.Owner) ([]dom.Category, error) { return nil, nil },
			SeedDefaultsFn: func(_ context.Context, o dom.Owner, defs []dom.Category) ([]dom.Category, error) {
				seeded = true
				if len(defs) != 9 {
					t.Errorf("len(defs) = %d, want 9 defaults", len(defs))
				}
				if o != dom.PersonalOwner(7) {
					t.Errorf("owner = %+v, want personal", o)
				}
				return defs, nil
			},
		}
		svc := NewCategoryService(categories, &fakeHouseholdRepo{})

		got, err := svc.EnsureDefaults(context.Background(), 7, 0)
		if err != nil {
			t.Fatalf("EnsureDefaults() error = %v", err)
		}
		if !seeded || len(got) != 9 {
			t.Fatalf("got %d categories, seeded=%v", len(got), seeded)
		}
	})

	t.Run("non-empty scope is untouched", func(t *testing.T) {
		existing := []dom.Category{{ID: 1, Name: "Custom"}}
		categories := &fakeCategoryRepo{
			ListByOwnerFn: func(_ context.Context, o dom.Owner) ([]dom.Category, error) { return existing, nil },
			SeedDefaultsFn: func(_ context.Context, o dom.Owner, defs []dom.Category) ([]dom.Category, error) {
				t.Fatal("SeedDefaults called on a non-empty scope")
				return nil, nil
			},
		}
		svc := NewCategoryService(categories, &fakeHouseholdRepo{})

		got, err := svc.EnsureDefaults(context.Background(), 7, 0)
		if err != nil {
			t.Fatalf("EnsureDefaults() error = %v", err)
		}
		if len(got) != 1 || got[0].Name != "Custom" {
			t.Fatalf("got %+v, want the existing set back", got)
		}
	})
}

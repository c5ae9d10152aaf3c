package repo

import (
	"context"

	dom "github.com/Collinul/home-task-management-sub001/internal/domain"
	"github.com/Collinul/home-task-management-sub001/internal/utils"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CategoryRepo interface {
	ListVisible(ctx context.Context, viewerID int64) ([]dom.CategoryWithCount, error)
	GetByID(ctx context.Context, viewerID, id int64) (dom.Category, error)
	Create(ctx context.Context, c dom.Category) (dom.Category, error)
	Update(ctx context.Context, c dom.Category) (dom.Category, error)
	Delete(ctx context.Context, id int64) error
	TaskCount(ctx context.Context, id int64) (int, error)
	ListByOwner(ctx context.Context, o dom.Owner) ([]dom.Category, error)
	SeedDefaults(ctx context.Context, o dom.Owner, defs []dom.Category) ([]dom.Category, error)
}

// visibleCategories mirrors the task predicate for the categories table.
const visibleCategories = `(c.user_id = $1 OR c.household_id IN (
	SELECT hm.household_id FROM household_members hm WHERE hm.user_id = $1))`

const categoryColumns = `c.id, c.name, c.emoji, c.color, c.user_id, c.household_id, c.is_default, c.created_at`

type PGCategoryRepo struct {
	db *pgxpool.Pool
}

func NewPGCategoryRepo(db *pgxpool.Pool) *PGCategoryRepo {
	return &PGCategoryRepo{db: db}
}

func scanCategory(row pgx.Row) (dom.Category, error) {
	var c dom.Category
	var userID, householdID *int64
	err := row.Scan(&c.ID, &c.Name, &c.Emoji, &c.Color, &userID, &householdID, &c.IsDefault, &c.CreatedAt)
	if err != nil {
		return dom.Category{}, err
	}
	owner, err := dom.OwnerFromColumns(userID, householdID)
	if err != nil {
		return dom.Category{}, err
	}
	c.Owner = owner
	return c, nil
}

// ListVisible returns the viewer's categories, each with a live count of the
// tasks the viewer can see that reference it.
func (r *PGCategoryRepo) ListVisible(ctx context.Context, viewerID int64) ([]dom.CategoryWithCount, error) {
	query := `
		SELECT ` + categoryColumns + `, COUNT(t.id)
		FROM categories c
		LEFT JOIN tasks t ON t.category_id = c.id
			AND (t.user_id = $1 OR t.household_id IN (
				SELECT hm.household_id FROM household_members hm WHERE hm.user_id = $1))
		WHERE ` + visibleCategories + `
		GROUP BY c.id
		ORDER BY c.name ASC`
	rows, err := r.db.Query(ctx, query, viewerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.CategoryWithCount
	for rows.Next() {
		var c dom.CategoryWithCount
		var userID, householdID *int64
		if err := rows.Scan(&c.ID, &c.Name, &c.Emoji, &c.Color, &userID, &householdID,
			&c.IsDefault, &c.CreatedAt, &c.TaskCount); err != nil {
			return nil, err
		}
		owner, err := dom.OwnerFromColumns(userID, householdID)
		if err != nil {
			return nil, err
		}
		c.Owner = owner
		list = append(list, c)
	}
	return list, rows.Err()
}

func (r *PGCategoryRepo) GetByID(ctx context.Context, viewerID, id int64) (dom.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories c WHERE c.id = $2 AND ` + visibleCategories
	return scanCategory(r.db.QueryRow(ctx, query, viewerID, id))
}

func (r *PGCategoryRepo) Create(ctx context.Context, c dom.Category) (dom.Category, error) {
	userID, householdID := c.Owner.Columns()
	query := `
		INSERT INTO categories (name, emoji, color, user_id, household_id, is_default)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, name, emoji, color, user_id, household_id, is_default, created_at`
	return scanCategory(r.db.QueryRow(ctx, query,
		c.Name, c.Emoji, c.Color, userID, householdID, c.IsDefault,
	))
}

func (r *PGCategoryRepo) Update(ctx context.Context, c dom.Category) (dom.Category, error) {
	query := `
		UPDATE categories SET name = $2, emoji = $3, color = $4
		WHERE id = $1
		RETURNING id, name, emoji, color, user_id, household_id, is_default, created_at`
	return scanCategory(r.db.QueryRow(ctx, query, c.ID, c.Name, c.Emoji, c.Color))
}

func (r *PGCategoryRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// TaskCount counts every task referencing the category, regardless of
// visibility: a category in use by anyone must not be deleted.
func (r *PGCategoryRepo) TaskCount(ctx context.Context, id int64) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM tasks WHERE category_id = $1`, id).Scan(&n)
	return n, err
}

func (r *PGCategoryRepo) ListByOwner(ctx context.Context, o dom.Owner) ([]dom.Category, error) {
	userID, householdID := o.Columns()
	query := `SELECT ` + categoryColumns + ` FROM categories c
		WHERE ($1::bigint IS NOT NULL AND c.user_id = $1)
		   OR ($2::bigint IS NOT NULL AND c.household_id = $2)
		ORDER BY c.name ASC`
	rows, err := r.db.Query(ctx, query, userID, householdID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// SeedDefaults inserts the default set for the scope inside one transaction.
// The existence re-check runs inside the transaction, and a concurrent
// seeder losing the race on the per-scope unique name index is treated as
// "already seeded".
func (r *PGCategoryRepo) SeedDefaults(ctx context.Context, o dom.Owner, defs []dom.Category) ([]dom.Category, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	userID, householdID := o.Columns()
	var existing int
	err = tx.QueryRow(ctx, `
		SELECT COUNT(*) FROM categories c
		WHERE ($1::bigint IS NOT NULL AND c.user_id = $1)
		   OR ($2::bigint IS NOT NULL AND c.household_id = $2)`,
		userID, householdID,
	).Scan(&existing)
	if err != nil {
		return nil, err
	}
	if existing > 0 {
		return r.ListByOwner(ctx, o)
	}

	for _, def := range defs {
		_, err := tx.Exec(ctx, `
			INSERT INTO categories (name, emoji, color, user_id, household_id, is_default)
			VALUES ($1, $2, $3, $4, $5, TRUE)`,
			def.Name, def.Emoji, def.Color, userID, householdID,
		)
		if err != nil {
			if utils.IsPGUniqueViolation(err) {
				// Another request seeded concurrently; its set wins.
				return r.ListByOwner(ctx, o)
			}
			return nil, err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.ListByOwner(ctx, o)
}

package repo

import (
	"context"

	dom "github.com/Collinul/home-task-management-sub001/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// HealthRepo reports per-user counts for the health endpoint.
type HealthRepo interface {
	Snapshot(ctx context.Context, userID int64) (dom.HealthSnapshot, error)
}

type PGHealthRepo struct {
	db *pgxpool.Pool
}

func NewPGHealthRepo(db *pgxpool.Pool) *PGHealthRepo {
	return &PGHealthRepo{db: db}
}

// Snapshot counts the caller's visible tasks and categories plus their
// memberships in one round trip. Any error here means "unhealthy".
func (r *PGHealthRepo) Snapshot(ctx context.Context, userID int64) (dom.HealthSnapshot, error) {
	var s dom.HealthSnapshot
	err := r.db.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM tasks t WHERE t.user_id = $1 OR t.household_id IN (
				SELECT hm.household_id FROM household_members hm WHERE hm.user_id = $1)),
			(SELECT COUNT(*) FROM categories c WHERE c.user_id = $1 OR c.household_id IN (
				SELECT hm.household_id FROM household_members hm WHERE hm.user_id = $1)),
			(SELECT COUNT(*) FROM household_members m WHERE m.user_id = $1)`,
		userID,
	).Scan(&s.Tasks, &s.Categories, &s.Households)
	return s, err
}

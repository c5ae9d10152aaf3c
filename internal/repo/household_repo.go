package repo

import (
	"context"

	dom "github.com/Collinul/home-task-management-sub001/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type HouseholdRepo interface {
	ListForUser(ctx context.Context, userID int64) ([]dom.HouseholdDetail, error)
	Get(ctx context.Context, id int64) (dom.Household, error)
	CreateWithAdmin(ctx context.Context, h dom.Household, adminID int64) (dom.Household, error)
	MemberRole(ctx context.Context, householdID, userID int64) (dom.Role, error)
	AddMember(ctx context.Context, m dom.HouseholdMember) (dom.HouseholdMember, error)
}

type PGHouseholdRepo struct {
	db *pgxpool.Pool
}

func NewPGHouseholdRepo(db *pgxpool.Pool) *PGHouseholdRepo {
	return &PGHouseholdRepo{db: db}
}

// ListForUser returns the caller's households with member lists and live
// counts of active tasks and categories.
func (r *PGHouseholdRepo) ListForUser(ctx context.Context, userID int64) ([]dom.HouseholdDetail, error) {
	rows, err := r.db.Query(ctx, `
		SELECT h.id, h.name, h.description, h.created_at,
			(SELECT COUNT(*) FROM tasks t WHERE t.household_id = h.id AND NOT t.is_completed),
			(SELECT COUNT(*) FROM categories c WHERE c.household_id = h.id)
		FROM households h
		JOIN household_members me ON me.household_id = h.id AND me.user_id = $1
		ORDER BY h.created_at ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []dom.HouseholdDetail
	ids := make([]int64, 0, 4)
	for rows.Next() {
		var d dom.HouseholdDetail
		if err := rows.Scan(&d.ID, &d.Name, &d.Description, &d.CreatedAt,
			&d.ActiveTasks, &d.CategoryCount); err != nil {
			return nil, err
		}
		list = append(list, d)
		ids = append(ids, d.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return list, nil
	}

	memberRows, err := r.db.Query(ctx, `
		SELECT m.id, m.household_id, m.user_id, m.role, m.joined_at, u.name, u.email
		FROM household_members m
		JOIN users u ON u.id = m.user_id
		WHERE m.household_id = ANY($1)
		ORDER BY m.joined_at ASC`, ids)
	if err != nil {
		return nil, err
	}
	defer memberRows.Close()

	byID := make(map[int64]*dom.HouseholdDetail, len(list))
	for i := range list {
		byID[list[i].ID] = &list[i]
	}
	for memberRows.Next() {
		var m dom.MemberInfo
		if err := memberRows.Scan(&m.ID, &m.HouseholdID, &m.UserID, &m.Role,
			&m.JoinedAt, &m.Name, &m.Email); err != nil {
			return nil, err
		}
		if d, ok := byID[m.HouseholdID]; ok {
			d.Members = append(d.Members, m)
		}
	}
	return list, memberRows.Err()
}

func (r *PGHouseholdRepo) Get(ctx context.Context, id int64) (dom.Household, error) {
	var h dom.Household
	err := r.db.QueryRow(ctx,
		`SELECT id, name, description, created_at FROM households WHERE id = $1`, id,
	).Scan(&h.ID, &h.Name, &h.Description, &h.CreatedAt)
	return h, err
}

// CreateWithAdmin inserts the household and its first admin membership in
// one transaction: no household may ever be observed with zero members.
func (r *PGHouseholdRepo) CreateWithAdmin(ctx context.Context, h dom.Household, adminID int64) (dom.Household, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return dom.Household{}, err
	}
	defer tx.Rollback(ctx)

	var out dom.Household
	err = tx.QueryRow(ctx, `
		INSERT INTO households (name, description)
		VALUES ($1, $2)
		RETURNING id, name, description, created_at`,
		h.Name, h.Description,
	).Scan(&out.ID, &out.Name, &out.Description, &out.CreatedAt)
	if err != nil {
		return dom.Household{}, err
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO household_members (household_id, user_id, role)
		VALUES ($1, $2, $3)`,
		out.ID, adminID, dom.RoleAdmin,
	)
	if err != nil {
		return dom.Household{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return dom.Household{}, err
	}
	return out, nil
}

// MemberRole returns the user's role in the household, or pgx.ErrNoRows if
// they are not a member.
func (r *PGHouseholdRepo) MemberRole(ctx context.Context, householdID, userID int64) (dom.Role, error) {
	var role dom.Role
	err := r.db.QueryRow(ctx,
		`SELECT role FROM household_members WHERE household_id = $1 AND user_id = $2`,
		householdID, userID,
	).Scan(&role)
	return role, err
}

func (r *PGHouseholdRepo) AddMember(ctx context.Context, m dom.HouseholdMember) (dom.HouseholdMember, error) {
	var out dom.HouseholdMember
	err := r.db.QueryRow(ctx, `
		INSERT INTO household_members (household_id, user_id, role)
		VALUES ($1, $2, $3)
		RETURNING id, household_id, user_id, role, joined_at`,
		m.HouseholdID, m.UserID, m.Role,
	).Scan(&out.ID, &out.HouseholdID, &out.UserID, &out.Role, &out.JoinedAt)
	return out, err
}

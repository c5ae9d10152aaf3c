package repo

import (
	"context"
	"fmt"
	"strings"
	"time"

	dom "github.com/Collinul/home-task-management-sub001/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TaskFilter narrows a task listing. Zero values mean "no filter".
type TaskFilter struct {
	Status      string // all | pending | completed
	Priority    dom.Priority
	CategoryID  int64
	HouseholdID int64
	Limit       int
	Offset      int
}

// DashboardBounds carries the time boundaries for dashboard counting,
// computed by the service so the week logic stays testable in Go.
type DashboardBounds struct {
	Now             time.Time
	StartOfToday    time.Time
	StartOfTomorrow time.Time
	WeekStart       time.Time
	LastWeekStart   time.Time
}

// DashboardCounts is the raw count row behind the dashboard stats.
type DashboardCounts struct {
	Active            int
	Overdue           int
	DueToday          int
	CompletedThisWeek int
	CompletedLastWeek int
}

type TaskRepo interface {
	List(ctx context.Context, viewerID int64, f TaskFilter) ([]dom.Task, int, error)
	GetByID(ctx context.Context, viewerID, id int64) (dom.Task, error)
	Create(ctx context.Context, t dom.Task) (dom.Task, error)
	Update(ctx context.Context, viewerID int64, t dom.Task) (dom.Task, error)
	Delete(ctx context.Context, viewerID, id int64) error
	Upcoming(ctx context.Context, viewerID int64, limit int) ([]dom.Task, error)
	AddHistory(ctx context.Context, h dom.TaskHistory) error
	History(ctx context.Context, taskID int64, limit int) ([]dom.TaskHistory, error)
	SaveRecurrence(ctx context.Context, r dom.RecurrenceRule) error
	Recurrence(ctx context.Context, taskID int64) (*dom.RecurrenceRule, error)
	DashboardCounts(ctx context.Context, viewerID int64, b DashboardBounds) (DashboardCounts, error)
}

// visibleTasks is the access predicate applied to every task query: the
// viewer owns the task personally or belongs to its household. $1 is always
// the viewer ID.
const visibleTasks = `(t.user_id = $1 OR t.household_id IN (
	SELECT hm.household_id FROM household_members hm WHERE hm.user_id = $1))`

const taskColumns = `t.id, t.title, t.description, t.due_date, t.priority, t.is_completed,
	t.completed_at, t.estimated_minutes, t.actual_minutes, t.category_id,
	t.user_id, t.household_id, t.assigned_to_id, t.created_at, t.updated_at`

// priorityRank orders high > medium > low in SQL.
const priorityRank = `CASE t.priority WHEN 'high' THEN 3 WHEN 'medium' THEN 2 ELSE 1 END`

type PGTaskRepo struct {
	db *pgxpool.Pool
}

func NewPGTaskRepo(db *pgxpool.Pool) *PGTaskRepo {
	return &PGTaskRepo{db: db}
}

func scanTask(row pgx.Row) (dom.Task, error) {
	var t dom.Task
	var userID, householdID *int64
	err := row.Scan(
		&t.ID, &t.Title, &t.Description, &t.DueDate, &t.Priority, &t.IsCompleted,
		&t.CompletedAt, &t.EstimatedMinutes, &t.ActualMinutes, &t.CategoryID,
		&userID, &householdID, &t.AssignedToID, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return dom.Task{}, err
	}
	owner, err := dom.OwnerFromColumns(userID, householdID)
	if err != nil {
		return dom.Task{}, err
	}
	t.Owner = owner
	return t, nil
}

func scanTasks(rows pgx.Rows) ([]dom.Task, error) {
	defer rows.Close()
	var list []dom.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// List returns one page of visible tasks plus the total match count.
func (r *PGTaskRepo) List(ctx context.Context, viewerID int64, f TaskFilter) ([]dom.Task, int, error) {
	where := []string{visibleTasks}
	args := []any{viewerID}

	switch f.Status {
	case "pending":
		where = append(where, "t.is_completed = FALSE")
	case "completed":
		where = append(where, "t.is_completed = TRUE")
	}
	if f.Priority != "" {
		args = append(args, f.Priority)
		where = append(where, fmt.Sprintf("t.priority = $%d", len(args)))
	}
	if f.CategoryID != 0 {
		args = append(args, f.CategoryID)
		where = append(where, fmt.Sprintf("t.category_id = $%d", len(args)))
	}
	if f.HouseholdID != 0 {
		args = append(args, f.HouseholdID)
		where = append(where, fmt.Sprintf("t.household_id = $%d", len(args)))
	}
	whereSQL := strings.Join(where, " AND ")

	var total int
	if err := r.db.QueryRow(ctx,
		"SELECT COUNT(*) FROM tasks t WHERE "+whereSQL, args...,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, f.Limit)
	limitPos := len(args)
	args = append(args, f.Offset)
	query := fmt.Sprintf(`
		SELECT %s FROM tasks t
		WHERE %s
		ORDER BY t.is_completed ASC, t.due_date ASC, %s DESC, t.created_at DESC
		LIMIT $%d OFFSET $%d`,
		taskColumns, whereSQL, priorityRank, limitPos, limitPos+1)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	list, err := scanTasks(rows)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *PGTaskRepo) GetByID(ctx context.Context, viewerID, id int64) (dom.Task, error) {
	query := fmt.Sprintf(`SELECT %s FROM tasks t WHERE t.id = $2 AND %s`, taskColumns, visibleTasks)
	return scanTask(r.db.QueryRow(ctx, query, viewerID, id))
}

func (r *PGTaskRepo) Create(ctx context.Context, t dom.Task) (dom.Task, error) {
	userID, householdID := t.Owner.Columns()
	query := fmt.Sprintf(`
		INSERT INTO tasks (title, description, due_date, priority, estimated_minutes,
			category_id, user_id, household_id, assigned_to_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING %s`, strings.ReplaceAll(taskColumns, "t.", ""))
	return scanTask(r.db.QueryRow(ctx, query,
		t.Title, t.Description, t.DueDate, t.Priority, t.EstimatedMinutes,
		t.CategoryID, userID, householdID, t.AssignedToID,
	))
}

// Update writes the full merged row. The visibility predicate is repeated
// here so a task that became invisible between read and write cannot be
// touched.
func (r *PGTaskRepo) Update(ctx context.Context, viewerID int64, t dom.Task) (dom.Task, error) {
	query := fmt.Sprintf(`
		UPDATE tasks t SET title = $3, description = $4, due_date = $5, priority = $6,
			is_completed = $7, completed_at = $8, estimated_minutes = $9,
			actual_minutes = $10, category_id = $11, assigned_to_id = $12,
			updated_at = NOW()
		WHERE t.id = $2 AND %s
		RETURNING %s`, visibleTasks, taskColumns)
	return scanTask(r.db.QueryRow(ctx, query,
		viewerID, t.ID, t.Title, t.Description, t.DueDate, t.Priority,
		t.IsCompleted, t.CompletedAt, t.EstimatedMinutes, t.ActualMinutes,
		t.CategoryID, t.AssignedToID,
	))
}

// Delete removes the task; history and recurrence rows cascade in the schema.
func (r *PGTaskRepo) Delete(ctx context.Context, viewerID, id int64) error {
	tag, err := r.db.Exec(ctx,
		fmt.Sprintf(`DELETE FROM tasks t WHERE t.id = $2 AND %s`, visibleTasks),
		viewerID, id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Upcoming returns the nearest incomplete visible tasks by due date, with
// priority breaking ties.
func (r *PGTaskRepo) Upcoming(ctx context.Context, viewerID int64, limit int) ([]dom.Task, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM tasks t
		WHERE %s AND t.is_completed = FALSE
		ORDER BY t.due_date ASC, %s DESC
		LIMIT $2`, taskColumns, visibleTasks, priorityRank)
	rows, err := r.db.Query(ctx, query, viewerID, limit)
	if err != nil {
		return nil, err
	}
	return scanTasks(rows)
}

func (r *PGTaskRepo) AddHistory(ctx context.Context, h dom.TaskHistory) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO task_history (task_id, user_id, action) VALUES ($1, $2, $3)`,
		h.TaskID, h.UserID, h.Action,
	)
	return err
}

func (r *PGTaskRepo) History(ctx context.Context, taskID int64, limit int) ([]dom.TaskHistory, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, task_id, user_id, action, created_at
		FROM task_history WHERE task_id = $1
		ORDER BY created_at DESC, id DESC LIMIT $2`, taskID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.TaskHistory
	for rows.Next() {
		var h dom.TaskHistory
		if err := rows.Scan(&h.ID, &h.TaskID, &h.UserID, &h.Action, &h.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, h)
	}
	return list, rows.Err()
}

func (r *PGTaskRepo) SaveRecurrence(ctx context.Context, rule dom.RecurrenceRule) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO recurrence_rules (task_id, frequency, repeat_interval, days_of_week, end_date, max_occurrences)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (task_id) DO UPDATE SET
			frequency = EXCLUDED.frequency, repeat_interval = EXCLUDED.repeat_interval,
			days_of_week = EXCLUDED.days_of_week, end_date = EXCLUDED.end_date,
			max_occurrences = EXCLUDED.max_occurrences`,
		rule.TaskID, rule.Frequency, rule.Interval, rule.DaysOfWeek, rule.EndDate, rule.MaxOccurrences,
	)
	return err
}

// Recurrence returns the task's rule, or nil if it has none.
func (r *PGTaskRepo) Recurrence(ctx context.Context, taskID int64) (*dom.RecurrenceRule, error) {
	var rule dom.RecurrenceRule
	err := r.db.QueryRow(ctx, `
		SELECT task_id, frequency, repeat_interval, days_of_week, end_date, max_occurrences
		FROM recurrence_rules WHERE task_id = $1`, taskID,
	).Scan(&rule.TaskID, &rule.Frequency, &rule.Interval, &rule.DaysOfWeek, &rule.EndDate, &rule.MaxOccurrences)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

// DashboardCounts computes all dashboard counters in one pass over the
// viewer's visible tasks.
func (r *PGTaskRepo) DashboardCounts(ctx context.Context, viewerID int64, b DashboardBounds) (DashboardCounts, error) {
	query := fmt.Sprintf(`
		SELECT
			COUNT(*) FILTER (WHERE NOT t.is_completed),
			COUNT(*) FILTER (WHERE NOT t.is_completed AND t.due_date < $2),
			COUNT(*) FILTER (WHERE NOT t.is_completed AND t.due_date >= $3 AND t.due_date < $4),
			COUNT(*) FILTER (WHERE t.is_completed AND t.completed_at >= $5),
			COUNT(*) FILTER (WHERE t.is_completed AND t.completed_at >= $6 AND t.completed_at < $5)
		FROM tasks t WHERE %s`, visibleTasks)
	var c DashboardCounts
	err := r.db.QueryRow(ctx, query,
		viewerID, b.Now, b.StartOfToday, b.StartOfTomorrow, b.WeekStart, b.LastWeekStart,
	).Scan(&c.Active, &c.Overdue, &c.DueToday, &c.CompletedThisWeek, &c.CompletedLastWeek)
	return c, err
}

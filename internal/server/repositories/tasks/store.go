package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/dbx"
	"github.com/dmitrijs2005/tasktracker/internal/server/models"
	"github.com/dmitrijs2005/tasktracker/internal/server/repositories/dberr"
)

// store holds the SQL shared by both repositories; only the dialect differs.
type store struct {
	db dbx.DBTX
	d  dialect
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *store) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	task.CreatedAt = normalize(task.CreatedAt)
	task.UpdatedAt = normalize(task.UpdatedAt)
	var due any
	if task.DueDate != nil {
		d := normalize(*task.DueDate)
		task.DueDate = &d
		due = s.d.toDB(d)
	}

	b := newQueryBuilder(s.d)
	query := `INSERT INTO tasks (` + taskColumns + `) VALUES (` +
		b.arg(task.ID) + `, ` + b.arg(task.OwnerID) + `, ` + b.arg(task.Title) + `, ` +
		b.arg(task.Description) + `, ` + b.arg(string(task.Priority)) + `, ` +
		b.arg(string(task.Status)) + `, ` + b.arg(due) + `, ` + b.arg(task.Category) + `, ` +
		b.arg(s.d.toDB(task.CreatedAt)) + `, ` + b.arg(s.d.toDB(task.UpdatedAt)) + `)`

	if _, err := s.db.ExecContext(ctx, query, b.args...); err != nil {
		return nil, dberr.Wrap(err)
	}

	return task, nil
}

func (s *store) FindByID(ctx context.Context, id string) (*models.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b := newQueryBuilder(s.d)
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ` + b.arg(id)

	task, err := s.scanTask(s.db.QueryRowContext(ctx, query, b.args...))
	if err != nil {
		return nil, dberr.Wrap(err)
	}
	return task, nil
}

func (s *store) FindByOwner(ctx context.Context, ownerID string, q models.TaskQuery) ([]*models.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b := newQueryBuilder(s.d)
	query := `SELECT ` + taskColumns + ` FROM tasks` + b.where(ownerID, q.Filter) + orderBy(q.Sort) + b.limit(q.Limit)

	rows, err := s.db.QueryContext(ctx, query, b.args...)
	if err != nil {
		return nil, dberr.Wrap(err)
	}
	defer rows.Close()

	result := make([]*models.Task, 0)
	for rows.Next() {
		task, err := s.scanTask(rows)
		if err != nil {
			return nil, dberr.Wrap(err)
		}
		result = append(result, task)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err)
	}

	return result, nil
}

func (s *store) Update(ctx context.Context, ownerID, id string, patch models.TaskPatch, now time.Time) (*models.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b := newQueryBuilder(s.d)
	query := `UPDATE tasks` + b.set(patch, s.d.toDB(normalize(now))) +
		` WHERE id = ` + b.arg(id) + ` AND owner_id = ` + b.arg(ownerID) +
		` RETURNING ` + taskColumns

	task, err := s.scanTask(s.db.QueryRowContext(ctx, query, b.args...))
	if err != nil {
		return nil, dberr.Wrap(err)
	}
	return task, nil
}

func (s *store) Delete(ctx context.Context, ownerID, id string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	b := newQueryBuilder(s.d)
	query := `DELETE FROM tasks WHERE id = ` + b.arg(id) + ` AND owner_id = ` + b.arg(ownerID)

	res, err := s.db.ExecContext(ctx, query, b.args...)
	if err != nil {
		return false, dberr.Wrap(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, dberr.Wrap(err)
	}
	return n > 0, nil
}

func (s *store) Count(ctx context.Context, ownerID string, f models.TaskFilter) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	b := newQueryBuilder(s.d)
	query := `SELECT COUNT(*) FROM tasks` + b.where(ownerID, f)

	var n int64
	if err := s.db.QueryRowContext(ctx, query, b.args...).Scan(&n); err != nil {
		return 0, dberr.Wrap(err)
	}
	return n, nil
}

func (s *store) CountGrouped(ctx context.Context, ownerID string, field models.GroupField) (map[string]int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	col, err := groupColumn(field)
	if err != nil {
		return nil, err
	}

	b := newQueryBuilder(s.d)
	query := `SELECT ` + col + `, COUNT(*) FROM tasks` + b.where(ownerID, models.TaskFilter{}) + ` GROUP BY ` + col

	rows, err := s.db.QueryContext(ctx, query, b.args...)
	if err != nil {
		return nil, dberr.Wrap(err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var (
			key string
			n   int64
		)
		if err := rows.Scan(&key, &n); err != nil {
			return nil, dberr.Wrap(err)
		}
		counts[key] = n
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err)
	}

	return counts, nil
}

func (s *store) scanTask(row rowScanner) (*models.Task, error) {
	var (
		t                     models.Task
		due, created, updated any
	)
	if err := row.Scan(&t.ID, &t.OwnerID, &t.Title, &t.Description, &t.Priority, &t.Status,
		&due, &t.Category, &created, &updated); err != nil {
		return nil, err
	}

	var err error
	if due != nil {
		d, err := s.d.fromDB(due)
		if err != nil {
			return nil, fmt.Errorf("due_date: %w", err)
		}
		t.DueDate = &d
	}
	if t.CreatedAt, err = s.d.fromDB(created); err != nil {
		return nil, fmt.Errorf("created_at: %w", err)
	}
	if t.UpdatedAt, err = s.d.fromDB(updated); err != nil {
		return nil, fmt.Errorf("updated_at: %w", err)
	}

	return &t, nil
}

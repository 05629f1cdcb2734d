package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/common"
	"github.com/dmitrijs2005/tasktracker/internal/dbx"
	"github.com/dmitrijs2005/tasktracker/internal/logging"
	"github.com/dmitrijs2005/tasktracker/internal/server/metrics"
	"github.com/dmitrijs2005/tasktracker/internal/server/models"
	"github.com/dmitrijs2005/tasktracker/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// CreateTaskInput is the caller-supplied part of a new task. Empty priority,
// status and category get their defaults.
type CreateTaskInput struct {
	Title       string              `validate:"required,max=200"`
	Description string              `validate:"max=5000"`
	Priority    models.TaskPriority `validate:"omitempty,oneof=Low Medium High"`
	Status      models.TaskStatus   `validate:"omitempty,oneof='Not Started' 'In Progress' Completed"`
	DueDate     *time.Time
	Category    string `validate:"max=100"`
}

// TaskService runs every task operation on behalf of an authenticated caller.
// The caller id always comes from the session, never from request data.
type TaskService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	log         logging.Logger
	now         func() time.Time
}

func NewTaskService(db *sql.DB, m repomanager.RepositoryManager, log logging.Logger) *TaskService {
	return &TaskService{
		db:          db,
		repomanager: m,
		log:         log.With("module", "tasks"),
		now:         time.Now,
	}
}

// List returns the caller's tasks matching filter. Without criteria tasks
// come newest first; with any criterion they are ordered by due date,
// earliest first, undated last.
func (s *TaskService) List(ctx context.Context, callerID string, filter *models.TaskFilter) ([]*models.Task, error) {
	q := models.TaskQuery{Sort: models.SortCreatedDesc}
	if filter != nil && !filter.IsZero() {
		q.Filter = *filter
		q.Sort = models.SortDueAsc
	}

	tasks, err := s.repomanager.Tasks(s.db).FindByOwner(ctx, callerID, q)
	if err != nil {
		return nil, fmt.Errorf("error listing tasks: %w", err)
	}
	return tasks, nil
}

// Search finds the caller's tasks whose title or description contains term,
// ignoring case. Surrounding whitespace is dropped from term, so a term of
// only spaces is blank, and a blank term is ErrInvalidQuery.
func (s *TaskService) Search(ctx context.Context, callerID string, term string) ([]*models.Task, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, fmt.Errorf("%w: search term is required", common.ErrInvalidQuery)
	}

	tasks, err := s.repomanager.Tasks(s.db).FindByOwner(ctx, callerID, models.TaskQuery{
		Filter: models.TaskFilter{Search: term},
		Sort:   models.SortCreatedDesc,
	})
	if err != nil {
		return nil, fmt.Errorf("error searching tasks: %w", err)
	}
	return tasks, nil
}

// Get returns one task if the caller owns it.
func (s *TaskService) Get(ctx context.Context, callerID, id string) (*models.Task, error) {
	task, err := s.findOwned(ctx, s.db, callerID, id)
	if err != nil {
		return nil, err
	}
	return task, nil
}

// Create stores a new task owned by the caller.
func (s *TaskService) Create(ctx context.Context, callerID string, in CreateTaskInput) (*models.Task, error) {
	if err := validate.Struct(in); err != nil {
		return nil, validationError(common.ErrInvalidTask, err)
	}

	now := s.now()
	task := &models.Task{
		ID:          uuid.NewString(),
		OwnerID:     callerID,
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Priority:    in.Priority,
		Status:      in.Status,
		DueDate:     in.DueDate,
		Category:    in.Category,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	task.ApplyDefaults()
	if err := task.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidTask, err)
	}

	created, err := s.repomanager.Tasks(s.db).Create(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("error creating task: %w", err)
	}

	metrics.TaskMutations.WithLabelValues("create").Inc()
	s.log.Info(ctx, "task created", "task_id", created.ID, "owner", callerID)
	return created, nil
}

// Update applies patch to a task the caller owns. Fields not set in patch
// are left unchanged.
func (s *TaskService) Update(ctx context.Context, callerID, id string, patch models.TaskPatch) (*models.Task, error) {
	if err := patch.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidTask, err)
	}
	if patch.Title.Set {
		patch.Title.Value = strings.TrimSpace(patch.Title.Value)
	}

	var updated *models.Task
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		current, err := s.findOwned(ctx, tx, callerID, id)
		if err != nil {
			return err
		}
		if patch.Empty() {
			updated = current
			return nil
		}

		updated, err = s.repomanager.Tasks(tx).Update(ctx, callerID, id, patch, s.now())
		if err != nil {
			return fmt.Errorf("error updating task: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.TaskMutations.WithLabelValues("update").Inc()
	s.log.Info(ctx, "task updated", "task_id", id, "owner", callerID)
	return updated, nil
}

// Delete removes a task the caller owns.
func (s *TaskService) Delete(ctx context.Context, callerID, id string) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.findOwned(ctx, tx, callerID, id); err != nil {
			return err
		}

		deleted, err := s.repomanager.Tasks(tx).Delete(ctx, callerID, id)
		if err != nil {
			return fmt.Errorf("error deleting task: %w", err)
		}
		if !deleted {
			return common.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	metrics.TaskMutations.WithLabelValues("delete").Inc()
	s.log.Info(ctx, "task deleted", "task_id", id, "owner", callerID)
	return nil
}

// findOwned loads a task by id and runs the ownership guard on it.
// Malformed ids cannot exist, so they are ErrNotFound rather than a store error.
func (s *TaskService) findOwned(ctx context.Context, db dbx.DBTX, callerID, id string) (*models.Task, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, common.ErrNotFound
	}

	task, err := s.repomanager.Tasks(db).FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := checkOwnership(callerID, task); err != nil {
		s.log.Warn(ctx, "ownership check failed", "task_id", id, "caller", callerID)
		return nil, err
	}
	return task, nil
}

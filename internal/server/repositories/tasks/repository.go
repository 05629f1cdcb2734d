// Package tasks is the task store. Every scan, count and mutation takes the
// owner id as a required argument and adds it to the WHERE clause; the only
// lookup without it is FindByID, whose result goes through the ownership guard.
package tasks

import (
	"context"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, task *models.Task) (*models.Task, error)
	// FindByID returns common.ErrNotFound when no task has this id.
	FindByID(ctx context.Context, id string) (*models.Task, error)
	FindByOwner(ctx context.Context, ownerID string, q models.TaskQuery) ([]*models.Task, error)
	// Update writes the set fields of patch and returns the stored task, or
	// common.ErrNotFound when ownerID has no task with this id.
	Update(ctx context.Context, ownerID, id string, patch models.TaskPatch, now time.Time) (*models.Task, error)
	// Delete reports whether a row was removed.
	Delete(ctx context.Context, ownerID, id string) (bool, error)
	Count(ctx context.Context, ownerID string, f models.TaskFilter) (int64, error)
	// CountGrouped counts ownerID's tasks per distinct value of field.
	CountGrouped(ctx context.Context, ownerID string, field models.GroupField) (map[string]int64, error)
}

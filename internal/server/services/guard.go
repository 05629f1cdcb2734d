package services

import (
	"github.com/dmitrijs2005/tasktracker/internal/common"
	"github.com/dmitrijs2005/tasktracker/internal/server/metrics"
	"github.com/dmitrijs2005/tasktracker/internal/server/models"
)

// checkOwnership allows access to task only for the user who created it.
// Callers fetch the task first, so a missing task is already ErrNotFound by
// the time this runs; an existing task of someone else is ErrForbidden.
func checkOwnership(callerID string, task *models.Task) error {
	if task.OwnerID != callerID {
		metrics.OwnershipDenials.Inc()
		return common.ErrForbidden
	}
	return nil
}

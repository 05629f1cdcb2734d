package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/dbx"
	"github.com/dmitrijs2005/tasktracker/internal/server/models"
	"github.com/dmitrijs2005/tasktracker/internal/timex"
)

// recentlyCompletedLimit is how many completed tasks Stats returns.
const recentlyCompletedLimit = 5

// Stats summarizes the caller's tasks as of ref (now when ref is nil).
//
// Due-date buckets use calendar days in ref's location:
//
//	overdue   due < start of today, not completed
//	today     start of today <= due < start of tomorrow
//	thisWeek  start of tomorrow <= due < next Sunday 00:00
//	future    due >= next Sunday 00:00
//
// The week ends at the instant Saturday ends, exclusive, so a task due at
// exactly next Sunday 00:00 counts as future.
//
// Undated tasks are in no bucket. All counts are read in one transaction.
func (s *TaskService) Stats(ctx context.Context, callerID string, ref *time.Time) (*models.Stats, error) {
	at := s.now()
	if ref != nil {
		at = *ref
	}

	today := timex.StartOfDay(at)
	tomorrow := timex.AddDays(today, 1)
	weekEnd := timex.WeekEnd(at)

	stats := &models.Stats{
		StatusCounts:   make(map[models.TaskStatus]int64, len(models.Statuses)),
		PriorityCounts: make(map[models.TaskPriority]int64, len(models.Priorities)),
	}
	for _, st := range models.Statuses {
		stats.StatusCounts[st] = 0
	}
	for _, p := range models.Priorities {
		stats.PriorityCounts[p] = 0
	}

	completed := models.StatusCompleted
	buckets := []struct {
		dst    *int64
		filter models.TaskFilter
	}{
		{&stats.DueDates.Overdue, models.TaskFilter{
			StatusNot: &completed,
			Due:       &models.DueRange{To: models.Exclusive(today)},
		}},
		{&stats.DueDates.Today, models.TaskFilter{
			Due: &models.DueRange{From: models.Inclusive(today), To: models.Exclusive(tomorrow)},
		}},
		{&stats.DueDates.ThisWeek, models.TaskFilter{
			Due: &models.DueRange{From: models.Inclusive(tomorrow), To: models.Exclusive(weekEnd)},
		}},
		{&stats.DueDates.Future, models.TaskFilter{
			Due: &models.DueRange{From: models.Inclusive(weekEnd)},
		}},
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Tasks(tx)

		byStatus, err := repo.CountGrouped(ctx, callerID, models.GroupByStatus)
		if err != nil {
			return err
		}
		for k, n := range byStatus {
			if st := models.TaskStatus(k); st.Valid() {
				stats.StatusCounts[st] = n
			}
		}

		byPriority, err := repo.CountGrouped(ctx, callerID, models.GroupByPriority)
		if err != nil {
			return err
		}
		for k, n := range byPriority {
			if p := models.TaskPriority(k); p.Valid() {
				stats.PriorityCounts[p] = n
			}
		}

		for _, b := range buckets {
			if *b.dst, err = repo.Count(ctx, callerID, b.filter); err != nil {
				return err
			}
		}

		stats.RecentlyCompleted, err = repo.FindByOwner(ctx, callerID, models.TaskQuery{
			Filter: models.TaskFilter{Status: &completed},
			Sort:   models.SortUpdatedDesc,
			Limit:  recentlyCompletedLimit,
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("error computing stats: %w", err)
	}

	return stats, nil
}

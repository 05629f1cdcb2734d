package tasks

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/common"
	"github.com/dmitrijs2005/tasktracker/internal/server/models"
	"github.com/dmitrijs2005/tasktracker/internal/server/repositories/sqlitetest"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2024, 3, 14, 9, 0, 0, 0, time.UTC)

type fixture struct {
	repo  *SQLiteRepository
	alice string
	bob   string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := sqlitetest.Open(t)
	return &fixture{
		repo:  NewSQLiteRepository(db),
		alice: sqlitetest.CreateUser(t, db, "alice"),
		bob:   sqlitetest.CreateUser(t, db, "bob"),
	}
}

func (f *fixture) add(t *testing.T, owner string, mutate func(*models.Task)) *models.Task {
	t.Helper()
	task := &models.Task{
		ID:        uuid.NewString(),
		OwnerID:   owner,
		Title:     "task",
		CreatedAt: base,
		UpdatedAt: base,
	}
	task.ApplyDefaults()
	if mutate != nil {
		mutate(task)
	}
	created, err := f.repo.Create(context.Background(), task)
	require.NoError(t, err)
	return created
}

func dayOffset(n int) *time.Time {
	d := base.AddDate(0, 0, n)
	return &d
}

func ids(tasks []*models.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func TestSQLite_CreateFindRoundTrip(t *testing.T) {
	f := newFixture(t)
	due := base.Add(36*time.Hour + 123456789)

	created := f.add(t, f.alice, func(task *models.Task) {
		task.Title = "Write report"
		task.Description = "Quarterly numbers"
		task.Priority = models.PriorityHigh
		task.DueDate = &due
	})

	got, err := f.repo.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Title, got.Title)
	assert.Equal(t, f.alice, got.OwnerID)
	assert.Equal(t, models.DefaultCategory, got.Category)
	require.NotNil(t, got.DueDate)
	assert.True(t, got.DueDate.Equal(*created.DueDate))
	assert.True(t, got.DueDate.Equal(due.Truncate(time.Millisecond)))
	assert.True(t, got.CreatedAt.Equal(base))
}

func TestSQLite_Create_UnknownOwner(t *testing.T) {
	f := newFixture(t)

	_, err := f.repo.Create(context.Background(), &models.Task{
		ID: uuid.NewString(), OwnerID: "ghost", Title: "x",
		Priority: models.PriorityLow, Status: models.StatusNotStarted, Category: "c",
		CreatedAt: base, UpdatedAt: base,
	})
	assert.ErrorIs(t, err, common.ErrInvalidTask)
}

func TestSQLite_FindByID_NotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.repo.FindByID(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestSQLite_FindByOwner_ScopedAndNewestFirst(t *testing.T) {
	f := newFixture(t)
	older := f.add(t, f.alice, func(task *models.Task) { task.CreatedAt = base.Add(-time.Hour) })
	newer := f.add(t, f.alice, nil)
	f.add(t, f.bob, nil)

	got, err := f.repo.FindByOwner(context.Background(), f.alice, models.TaskQuery{})
	require.NoError(t, err)
	assert.Equal(t, []string{newer.ID, older.ID}, ids(got))
}

func TestSQLite_FindByOwner_EveryResultMatchesFilter(t *testing.T) {
	f := newFixture(t)
	for i, p := range models.Priorities {
		for j, s := range models.Statuses {
			f.add(t, f.alice, func(task *models.Task) {
				task.Priority = p
				task.Status = s
				task.Category = []string{"Work", "Home"}[(i+j)%2]
				if (i+j)%3 != 0 {
					task.DueDate = dayOffset(i*3 + j - 4)
				}
			})
			f.add(t, f.bob, func(task *models.Task) {
				task.Priority = p
				task.Status = s
				task.Category = "Work"
				task.DueDate = dayOffset(0)
			})
		}
	}

	filters := []models.TaskFilter{
		{Priority: ptr(models.PriorityHigh)},
		{Status: ptr(models.StatusCompleted), Category: ptr("Work")},
		{Due: &models.DueRange{From: models.Inclusive(*dayOffset(-2))}},
		{Due: &models.DueRange{To: models.Inclusive(*dayOffset(1))}},
		{Due: &models.DueRange{From: models.Inclusive(*dayOffset(-1)), To: models.Inclusive(*dayOffset(2))}, Priority: ptr(models.PriorityMedium)},
		{StatusNot: ptr(models.StatusCompleted), Due: &models.DueRange{To: models.Exclusive(*dayOffset(0))}},
	}

	all, err := f.repo.FindByOwner(context.Background(), f.alice, models.TaskQuery{})
	require.NoError(t, err)

	for _, filter := range filters {
		got, err := f.repo.FindByOwner(context.Background(), f.alice, models.TaskQuery{Filter: filter, Sort: models.SortDueAsc})
		require.NoError(t, err)

		want := 0
		for _, task := range all {
			if matches(filter, task) {
				want++
			}
		}
		assert.Len(t, got, want, "filter %+v", filter)

		for _, task := range got {
			assert.Equal(t, f.alice, task.OwnerID)
			assert.True(t, matches(filter, task), "task %+v does not match %+v", task, filter)
		}

		n, err := f.repo.Count(context.Background(), f.alice, filter)
		require.NoError(t, err)
		assert.EqualValues(t, want, n)
	}
}

func TestSQLite_DueRangeInclusiveAndUndatedNeverMatch(t *testing.T) {
	f := newFixture(t)
	start, end := *dayOffset(0), *dayOffset(2)
	onStart := f.add(t, f.alice, func(task *models.Task) { task.DueDate = &start })
	onEnd := f.add(t, f.alice, func(task *models.Task) { task.DueDate = &end })
	f.add(t, f.alice, func(task *models.Task) { task.DueDate = dayOffset(3) })
	f.add(t, f.alice, nil)

	got, err := f.repo.FindByOwner(context.Background(), f.alice, models.TaskQuery{
		Filter: models.TaskFilter{Due: &models.DueRange{From: models.Inclusive(start), To: models.Inclusive(end)}},
		Sort:   models.SortDueAsc,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{onStart.ID, onEnd.ID}, ids(got))
}

func TestSQLite_SortDueAsc_UndatedLast(t *testing.T) {
	f := newFixture(t)
	undated := f.add(t, f.alice, nil)
	late := f.add(t, f.alice, func(task *models.Task) { task.DueDate = dayOffset(5) })
	early := f.add(t, f.alice, func(task *models.Task) { task.DueDate = dayOffset(1) })

	got, err := f.repo.FindByOwner(context.Background(), f.alice, models.TaskQuery{Sort: models.SortDueAsc})
	require.NoError(t, err)
	assert.Equal(t, []string{early.ID, late.ID, undated.ID}, ids(got))
}

func TestSQLite_Search(t *testing.T) {
	f := newFixture(t)
	byTitle := f.add(t, f.alice, func(task *models.Task) { task.Title = "Write REPORT" })
	byDesc := f.add(t, f.alice, func(task *models.Task) {
		task.Title = "Numbers"
		task.Description = "attach the report draft"
		task.CreatedAt = base.Add(time.Minute)
	})
	literal := f.add(t, f.alice, func(task *models.Task) { task.Title = "100% done_now" })
	f.add(t, f.alice, func(task *models.Task) { task.Title = "100 percent done" })
	f.add(t, f.bob, func(task *models.Task) { task.Title = "bob's report" })

	got, err := f.repo.FindByOwner(context.Background(), f.alice, models.TaskQuery{Filter: models.TaskFilter{Search: "report"}})
	require.NoError(t, err)
	assert.Equal(t, []string{byDesc.ID, byTitle.ID}, ids(got))

	got, err = f.repo.FindByOwner(context.Background(), f.alice, models.TaskQuery{Filter: models.TaskFilter{Search: "0% done_"}})
	require.NoError(t, err)
	assert.Equal(t, []string{literal.ID}, ids(got))
}

func TestSQLite_Search_NonASCII(t *testing.T) {
	f := newFixture(t)
	upper := f.add(t, f.alice, func(task *models.Task) { task.Title = "ÉCOLE rapport" })
	inDesc := f.add(t, f.alice, func(task *models.Task) {
		task.Title = "Visit"
		task.Description = "Ärzte in München"
		task.CreatedAt = base.Add(time.Minute)
	})
	f.add(t, f.alice, func(task *models.Task) { task.Title = "ecole without accent" })

	got, err := f.repo.FindByOwner(context.Background(), f.alice, models.TaskQuery{Filter: models.TaskFilter{Search: "école"}})
	require.NoError(t, err)
	assert.Equal(t, []string{upper.ID}, ids(got))

	got, err = f.repo.FindByOwner(context.Background(), f.alice, models.TaskQuery{Filter: models.TaskFilter{Search: "ÄRZTE"}})
	require.NoError(t, err)
	assert.Equal(t, []string{inDesc.ID}, ids(got))
}

func TestSQLite_Update_PartialAndScoped(t *testing.T) {
	f := newFixture(t)
	task := f.add(t, f.alice, func(task *models.Task) {
		task.Title = "Write report"
		task.Description = "draft"
		task.DueDate = dayOffset(1)
		task.Category = "Work"
	})
	later := base.Add(time.Hour)

	_, err := f.repo.Update(context.Background(), f.bob, task.ID, models.TaskPatch{Priority: models.Some(models.PriorityLow)}, later)
	assert.ErrorIs(t, err, common.ErrNotFound)

	got, err := f.repo.Update(context.Background(), f.alice, task.ID, models.TaskPatch{Priority: models.Some(models.PriorityHigh)}, later)
	require.NoError(t, err)

	want := *task
	want.Priority = models.PriorityHigh
	want.UpdatedAt = later
	assert.Equal(t, want.Title, got.Title)
	assert.Equal(t, want.Description, got.Description)
	assert.Equal(t, want.Category, got.Category)
	assert.Equal(t, want.Status, got.Status)
	assert.Equal(t, models.PriorityHigh, got.Priority)
	assert.True(t, got.DueDate.Equal(*want.DueDate))
	assert.True(t, got.CreatedAt.Equal(want.CreatedAt))
	assert.True(t, got.UpdatedAt.Equal(later))

	got, err = f.repo.Update(context.Background(), f.alice, task.ID, models.TaskPatch{
		DueDate:  models.Some[*time.Time](nil),
		Category: models.Some(""),
	}, later)
	require.NoError(t, err)
	assert.Nil(t, got.DueDate)
	assert.Equal(t, "", got.Category)
}

func TestSQLite_DeleteTwice(t *testing.T) {
	f := newFixture(t)
	task := f.add(t, f.alice, nil)

	ok, err := f.repo.Delete(context.Background(), f.bob, task.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = f.repo.Delete(context.Background(), f.alice, task.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = f.repo.Delete(context.Background(), f.alice, task.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLite_CountGrouped(t *testing.T) {
	f := newFixture(t)
	f.add(t, f.alice, func(task *models.Task) { task.Status = models.StatusCompleted })
	f.add(t, f.alice, func(task *models.Task) { task.Status = models.StatusCompleted })
	f.add(t, f.alice, nil)
	f.add(t, f.bob, func(task *models.Task) { task.Status = models.StatusInProgress })

	got, err := f.repo.CountGrouped(context.Background(), f.alice, models.GroupByStatus)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"Completed": 2, "Not Started": 1}, got)

	got, err = f.repo.CountGrouped(context.Background(), f.alice, models.GroupByPriority)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"Medium": 3}, got)
}

func TestSQLite_LimitAndRecentlyUpdated(t *testing.T) {
	f := newFixture(t)
	var want []string
	for i := 0; i < 7; i++ {
		task := f.add(t, f.alice, func(task *models.Task) {
			task.Status = models.StatusCompleted
			task.UpdatedAt = base.Add(time.Duration(i) * time.Minute)
		})
		want = append([]string{task.ID}, want...)
	}

	got, err := f.repo.FindByOwner(context.Background(), f.alice, models.TaskQuery{
		Filter: models.TaskFilter{Status: ptr(models.StatusCompleted)},
		Sort:   models.SortUpdatedDesc,
		Limit:  5,
	})
	require.NoError(t, err)
	assert.Equal(t, want[:5], ids(got))
}

package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/cryptox"
	"github.com/dmitrijs2005/tasktracker/internal/logging"
	"github.com/dmitrijs2005/tasktracker/internal/server/models"
	"github.com/dmitrijs2005/tasktracker/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/tasktracker/internal/server/repositories/sqlitetest"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	cryptox.Cost = bcrypt.MinCost
}

// 2024-03-14 is a Thursday.
var refTime = time.Date(2024, 3, 14, 9, 0, 0, 0, time.UTC)

type env struct {
	db    *sql.DB
	rm    repomanager.RepositoryManager
	tasks *TaskService
	alice string
	bob   string
	clock time.Time
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db := sqlitetest.Open(t)
	e := &env{
		db:    db,
		rm:    repomanager.NewSQLiteRepositoryManager(),
		alice: sqlitetest.CreateUser(t, db, "alice"),
		bob:   sqlitetest.CreateUser(t, db, "bob"),
		clock: refTime,
	}
	e.tasks = NewTaskService(db, e.rm, logging.Nop{})
	e.tasks.now = func() time.Time { return e.clock }
	return e
}

func (e *env) create(t *testing.T, owner string, in CreateTaskInput) *models.Task {
	t.Helper()
	if in.Title == "" {
		in.Title = "task"
	}
	task, err := e.tasks.Create(context.Background(), owner, in)
	require.NoError(t, err)
	return task
}

func at(days int, hours int) *time.Time {
	t := refTime.AddDate(0, 0, days).Add(time.Duration(hours) * time.Hour)
	return &t
}

func ptr[T any](v T) *T { return &v }

func ids(tasks []*models.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

package httpapi

import (
	"net/http"
	"testing"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/api"
	"github.com/dmitrijs2005/tasktracker/internal/common"
	"github.com/dmitrijs2005/tasktracker/internal/cryptox"
	"github.com/dmitrijs2005/tasktracker/internal/logging"
	"github.com/dmitrijs2005/tasktracker/internal/server/auth"
	"github.com/dmitrijs2005/tasktracker/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/tasktracker/internal/server/repositories/sqlitetest"
	"github.com/dmitrijs2005/tasktracker/internal/server/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newStack(t *testing.T) *gin.Engine {
	t.Helper()
	cryptox.Cost = bcrypt.MinCost

	db := sqlitetest.Open(t)
	rm := repomanager.NewSQLiteRepositoryManager()
	us := services.NewUserService(db, rm, auth.NewAuthenticator("k", common.DefaultTokenValidity), logging.Nop{})
	ts := services.NewTaskService(db, rm, logging.Nop{})
	return newRouter(us, ts, &fakeExports{})
}

func registerUser(t *testing.T, r http.Handler, name string) string {
	t.Helper()
	w := do(t, r, "POST", "/api/auth/register", "", api.RegisterRequest{Name: name, Email: name + "@example.com", Password: "secret1"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decode[api.RegisterResponse](t, w).Token
}

func TestE2E_TaskLifecycle(t *testing.T) {
	r := newStack(t)
	alice := registerUser(t, r, "alice")
	bob := registerUser(t, r, "bob")

	due := time.Now().UTC().AddDate(0, 0, -2)
	w := do(t, r, "POST", "/api/tasks", alice, api.CreateTaskRequest{Title: "Write report", Priority: "High", DueDate: &due})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	task := decode[api.Task](t, w)

	w = do(t, r, "GET", "/api/tasks/"+task.ID, bob, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.NotContains(t, w.Body.String(), "Write report")

	w = do(t, r, "GET", "/api/tasks/search?query=report", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]api.Task](t, w), 1)

	w = do(t, r, "GET", "/api/tasks/stats", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	stats := decode[api.StatsResponse](t, w)
	assert.Equal(t, int64(1), stats.DueDates.Overdue)
	assert.Equal(t, int64(1), stats.PriorityCounts["High"])

	w = do(t, r, "PUT", "/api/tasks/"+task.ID, alice, map[string]any{"status": "Completed"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Completed", decode[api.Task](t, w).Status)

	w = do(t, r, "PUT", "/api/tasks/"+task.ID, alice, map[string]any{"dueDate": "2024-03-14"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"dueDate":"2024-03-14T00:00:00Z"`)

	w = do(t, r, "DELETE", "/api/tasks/"+task.ID, alice, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = do(t, r, "DELETE", "/api/tasks/"+task.ID, alice, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, r, "POST", "/api/tasks", alice, api.CreateTaskRequest{Title: ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestE2E_DuplicateRegistration(t *testing.T) {
	r := newStack(t)
	registerUser(t, r, "alice")

	w := do(t, r, "POST", "/api/auth/register", "", api.RegisterRequest{Name: "alice", Email: "alice@example.com", Password: "secret1"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

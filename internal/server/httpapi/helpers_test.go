package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/common"
	"github.com/dmitrijs2005/tasktracker/internal/logging"
	"github.com/dmitrijs2005/tasktracker/internal/server/models"
	"github.com/dmitrijs2005/tasktracker/internal/server/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeUsers accepts the token "good" as user u1.
type fakeUsers struct {
	token string
	user  *models.User
	err   error
}

func (f *fakeUsers) Register(ctx context.Context, in services.RegisterInput) (string, *models.User, error) {
	return f.token, f.user, f.err
}

func (f *fakeUsers) Login(ctx context.Context, email, password string) (string, error) {
	return f.token, f.err
}

func (f *fakeUsers) CurrentUser(ctx context.Context, userID string) (*models.User, error) {
	return f.user, f.err
}

func (f *fakeUsers) Authenticate(token string) (string, error) {
	switch token {
	case "":
		return "", common.ErrMissingCredential
	case "good":
		return "u1", nil
	case "old":
		return "", common.ErrExpiredCredential
	}
	return "", common.ErrInvalidCredential
}

type fakeTasks struct {
	tasks  []*models.Task
	task   *models.Task
	stats  *models.Stats
	err    error
	caller string
	id     string
	filter *models.TaskFilter
	term   string
	in     services.CreateTaskInput
	patch  models.TaskPatch
	ref    *time.Time
}

func (f *fakeTasks) List(ctx context.Context, callerID string, filter *models.TaskFilter) ([]*models.Task, error) {
	f.caller, f.filter = callerID, filter
	return f.tasks, f.err
}

func (f *fakeTasks) Search(ctx context.Context, callerID string, term string) ([]*models.Task, error) {
	f.caller, f.term = callerID, term
	return f.tasks, f.err
}

func (f *fakeTasks) Get(ctx context.Context, callerID, id string) (*models.Task, error) {
	f.caller, f.id = callerID, id
	return f.task, f.err
}

func (f *fakeTasks) Create(ctx context.Context, callerID string, in services.CreateTaskInput) (*models.Task, error) {
	f.caller, f.in = callerID, in
	return f.task, f.err
}

func (f *fakeTasks) Update(ctx context.Context, callerID, id string, patch models.TaskPatch) (*models.Task, error) {
	f.caller, f.id, f.patch = callerID, id, patch
	return f.task, f.err
}

func (f *fakeTasks) Delete(ctx context.Context, callerID, id string) error {
	f.caller, f.id = callerID, id
	return f.err
}

func (f *fakeTasks) Stats(ctx context.Context, callerID string, ref *time.Time) (*models.Stats, error) {
	f.caller, f.ref = callerID, ref
	return f.stats, f.err
}

type fakeExports struct {
	url string
	err error
}

func (f *fakeExports) Export(ctx context.Context, callerID string) (string, error) {
	return f.url, f.err
}

func newRouter(us userSvc, ts taskSvc, es exportSvc) *gin.Engine {
	return NewHTTPServer(":0", logging.Nop{}, us, ts, es).Router()
}

// do sends a request with an optional JSON body and x-auth-token header.
func do(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(common.LegacyTokenHeaderName, token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

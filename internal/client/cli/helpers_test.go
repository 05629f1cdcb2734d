package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/api"
)

var refNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

// stubInputs answers simple-text prompts with answers in order and the
// password prompt with password. Running out of answers yields "".
func stubInputs(t *testing.T, password []byte, answers ...string) *[]string {
	t.Helper()
	origST, origML, origGP := getSimpleText, getMultiline, getPassword
	var prompts []string
	next := func(prompt string) (string, error) {
		prompts = append(prompts, prompt)
		if len(answers) == 0 {
			return "", nil
		}
		a := answers[0]
		answers = answers[1:]
		return a, nil
	}
	getSimpleText = func(_ *bufio.Reader, prompt string, _ io.Writer) (string, error) { return next(prompt) }
	getMultiline = func(_ *bufio.Reader, prompt string, _ io.Writer) (string, error) { return next(prompt) }
	getPassword = func(_ io.Writer) ([]byte, error) { return password, nil }
	t.Cleanup(func() {
		getSimpleText, getMultiline, getPassword = origST, origML, origGP
	})
	return &prompts
}

type fakeClient struct {
	loggedIn bool
	err      error
	pingErr  error

	regName, regEmail string
	regPass           []byte
	loginEmail        string
	loginPass         []byte

	user   *api.User
	tasks  []*api.Task
	task   *api.Task
	stats  *api.StatsResponse
	url    string
	filter *api.FilterTasksRequest
	create *api.CreateTaskRequest
	update *api.UpdateTaskRequest
	term   string
	gotID  string
	delID  string
	closed bool
}

func (f *fakeClient) Close() error { f.closed = true; return nil }

func (f *fakeClient) Ping(ctx context.Context) error { return f.pingErr }

func (f *fakeClient) Register(ctx context.Context, name, email string, password []byte) (*api.User, error) {
	f.regName, f.regEmail, f.regPass = name, email, append([]byte(nil), password...)
	if f.err != nil {
		return nil, f.err
	}
	f.loggedIn = true
	return &api.User{ID: "u1", Name: name, Email: email}, nil
}

func (f *fakeClient) Login(ctx context.Context, email string, password []byte) error {
	f.loginEmail, f.loginPass = email, append([]byte(nil), password...)
	if f.err != nil {
		return f.err
	}
	f.loggedIn = true
	return nil
}

func (f *fakeClient) Logout() { f.loggedIn = false }

func (f *fakeClient) LoggedIn() bool { return f.loggedIn }

func (f *fakeClient) CurrentUser(ctx context.Context) (*api.User, error) {
	if f.user == nil {
		return nil, errors.New("no user")
	}
	return f.user, f.err
}

func (f *fakeClient) ListTasks(ctx context.Context) ([]*api.Task, error) { return f.tasks, f.err }

func (f *fakeClient) FilterTasks(ctx context.Context, req *api.FilterTasksRequest) ([]*api.Task, error) {
	f.filter = req
	return f.tasks, f.err
}

func (f *fakeClient) SearchTasks(ctx context.Context, query string) ([]*api.Task, error) {
	f.term = query
	return f.tasks, f.err
}

func (f *fakeClient) GetTask(ctx context.Context, id string) (*api.Task, error) {
	f.gotID = id
	if f.err != nil {
		return nil, f.err
	}
	return f.task, nil
}

func (f *fakeClient) CreateTask(ctx context.Context, req *api.CreateTaskRequest) (*api.Task, error) {
	f.create = req
	if f.err != nil {
		return nil, f.err
	}
	return &api.Task{ID: "t-new", Title: req.Title}, nil
}

func (f *fakeClient) UpdateTask(ctx context.Context, req *api.UpdateTaskRequest) (*api.Task, error) {
	f.update = req
	if f.err != nil {
		return nil, f.err
	}
	return &api.Task{ID: req.ID}, nil
}

func (f *fakeClient) DeleteTask(ctx context.Context, id string) error {
	f.delID = id
	return f.err
}

func (f *fakeClient) GetStats(ctx context.Context) (*api.StatsResponse, error) { return f.stats, f.err }

func (f *fakeClient) Export(ctx context.Context) (string, error) { return f.url, f.err }

func newTestApp(c *fakeClient) (*App, *bytes.Buffer) {
	var out bytes.Buffer
	return &App{client: c, out: &out, now: func() time.Time { return refNow }}, &out
}

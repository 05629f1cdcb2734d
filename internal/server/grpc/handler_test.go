package grpc

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/api"
	"github.com/dmitrijs2005/tasktracker/internal/common"
	"github.com/dmitrijs2005/tasktracker/internal/server/models"
	"github.com/dmitrijs2005/tasktracker/internal/server/shared"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func authed(userID string) context.Context {
	return shared.WithUserID(context.Background(), userID)
}

func ptr[T any](v T) *T { return &v }

func TestPing_OK(t *testing.T) {
	s := newServer(&fakeUsers{}, &fakeTasks{}, &fakeExports{})
	resp, err := s.Ping(context.Background(), &api.PingRequest{})
	if err != nil {
		t.Fatalf("Ping error: %v", err)
	}
	if resp.Status != "OK" {
		t.Fatalf("unexpected status: %q", resp.Status)
	}
}

func TestRegister_OK(t *testing.T) {
	u := &fakeUsers{token: "tok", user: &models.User{ID: "42", Name: "alice", PasswordHash: "hash"}}
	s := newServer(u, &fakeTasks{}, &fakeExports{})
	resp, err := s.Register(context.Background(), &api.RegisterRequest{Name: "alice", Email: "a@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if resp.Token != "tok" || resp.User.ID != "42" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if u.regIn.Email != "a@example.com" || u.regIn.Password != "secret1" {
		t.Fatalf("input not forwarded: %+v", u.regIn)
	}
}

func TestRegister_Errors(t *testing.T) {
	tests := []struct {
		err  error
		want codes.Code
	}{
		{common.ErrDuplicateCredential, codes.AlreadyExists},
		{common.ErrInvalidUser, codes.InvalidArgument},
		{errors.New("db down"), codes.Internal},
	}
	for _, tt := range tests {
		s := newServer(&fakeUsers{err: tt.err}, &fakeTasks{}, &fakeExports{})
		_, err := s.Register(context.Background(), &api.RegisterRequest{Name: "u"})
		if status.Code(err) != tt.want {
			t.Fatalf("%v: want %v, got %v", tt.err, tt.want, status.Code(err))
		}
	}
}

func TestLogin_OKAndUnauthorized(t *testing.T) {
	s := newServer(&fakeUsers{token: "A"}, &fakeTasks{}, &fakeExports{})
	resp, err := s.Login(context.Background(), &api.LoginRequest{Email: "u@example.com", Password: "x"})
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if resp.Token != "A" {
		t.Fatalf("unexpected token: %q", resp.Token)
	}

	s2 := newServer(&fakeUsers{err: common.ErrUnauthorized}, &fakeTasks{}, &fakeExports{})
	_, err = s2.Login(context.Background(), &api.LoginRequest{Email: "u@example.com", Password: "x"})
	if status.Code(err) != codes.Unauthenticated {
		t.Fatalf("want Unauthenticated, got %v", status.Code(err))
	}
}

func TestCurrentUser(t *testing.T) {
	s := newServer(&fakeUsers{user: &models.User{ID: "u1", Name: "alice"}}, &fakeTasks{}, &fakeExports{})
	resp, err := s.CurrentUser(authed("u1"), &api.CurrentUserRequest{})
	if err != nil {
		t.Fatal(err)
	}
	if resp.User.Name != "alice" {
		t.Fatalf("unexpected user: %+v", resp.User)
	}
}

func TestHandlers_RequireCaller(t *testing.T) {
	s := newServer(&fakeUsers{}, &fakeTasks{}, &fakeExports{})
	ctx := context.Background()

	calls := map[string]func() error{
		"ListTasks": func() error { _, err := s.ListTasks(ctx, &api.ListTasksRequest{}); return err },
		"GetTask":   func() error { _, err := s.GetTask(ctx, &api.GetTaskRequest{ID: "x"}); return err },
		"GetStats":  func() error { _, err := s.GetStats(ctx, &api.GetStatsRequest{}); return err },
		"Export":    func() error { _, err := s.Export(ctx, &api.ExportRequest{}); return err },
	}
	for name, call := range calls {
		if status.Code(call()) != codes.Unauthenticated {
			t.Fatalf("%s without caller must be Unauthenticated", name)
		}
	}
}

func TestListTasks_UsesDefaultOrder(t *testing.T) {
	ts := &fakeTasks{tasks: []*models.Task{{ID: "t1", OwnerID: "u1"}}}
	s := newServer(&fakeUsers{}, ts, &fakeExports{})

	resp, err := s.ListTasks(authed("u1"), &api.ListTasksRequest{})
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Tasks) != 1 || resp.Tasks[0].ID != "t1" {
		t.Fatalf("unexpected tasks: %+v", resp.Tasks)
	}
	if ts.caller != "u1" || ts.filter != nil {
		t.Fatalf("unexpected call: caller=%q filter=%v", ts.caller, ts.filter)
	}
}

func TestFilterTasks(t *testing.T) {
	ts := &fakeTasks{}
	s := newServer(&fakeUsers{}, ts, &fakeExports{})

	resp, err := s.FilterTasks(authed("u1"), &api.FilterTasksRequest{Priority: "High"})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Tasks == nil {
		t.Fatal("empty result must be an empty list")
	}
	if ts.filter == nil || *ts.filter.Priority != models.PriorityHigh {
		t.Fatalf("filter not forwarded: %+v", ts.filter)
	}

	_, err = s.FilterTasks(authed("u1"), &api.FilterTasksRequest{Status: "Done"})
	if status.Code(err) != codes.InvalidArgument {
		t.Fatalf("want InvalidArgument, got %v", status.Code(err))
	}
}

func TestSearchTasks_EmptyQuery(t *testing.T) {
	ts := &fakeTasks{err: common.ErrInvalidQuery}
	s := newServer(&fakeUsers{}, ts, &fakeExports{})

	_, err := s.SearchTasks(authed("u1"), &api.SearchTasksRequest{Query: ""})
	if status.Code(err) != codes.InvalidArgument {
		t.Fatalf("want InvalidArgument, got %v", status.Code(err))
	}
}

func TestGetTask_ErrorCodes(t *testing.T) {
	tests := []struct {
		err  error
		want codes.Code
	}{
		{common.ErrForbidden, codes.PermissionDenied},
		{common.ErrNotFound, codes.NotFound},
		{common.ErrStoreUnavailable, codes.Unavailable},
	}
	for _, tt := range tests {
		s := newServer(&fakeUsers{}, &fakeTasks{err: tt.err}, &fakeExports{})
		_, err := s.GetTask(authed("u1"), &api.GetTaskRequest{ID: "t1"})
		if status.Code(err) != tt.want {
			t.Fatalf("%v: want %v, got %v", tt.err, tt.want, status.Code(err))
		}
	}
}

func TestUpdateTask_ForwardsPartialPatch(t *testing.T) {
	ts := &fakeTasks{task: &models.Task{ID: "t1", Priority: models.PriorityLow}}
	s := newServer(&fakeUsers{}, ts, &fakeExports{})

	resp, err := s.UpdateTask(authed("u1"), &api.UpdateTaskRequest{ID: "t1", Priority: ptr("Low")})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Task.Priority != "Low" {
		t.Fatalf("unexpected task: %+v", resp.Task)
	}
	if !ts.patch.Priority.Set || ts.patch.Title.Set || ts.patch.Status.Set {
		t.Fatalf("unexpected patch: %+v", ts.patch)
	}
}

func TestCreateAndDeleteTask(t *testing.T) {
	ts := &fakeTasks{task: &models.Task{ID: "t1", Title: "x"}}
	s := newServer(&fakeUsers{}, ts, &fakeExports{})

	resp, err := s.CreateTask(authed("u1"), &api.CreateTaskRequest{Title: "x"})
	if err != nil || resp.Task.ID != "t1" {
		t.Fatalf("CreateTask: %+v, %v", resp, err)
	}

	del, err := s.DeleteTask(authed("u1"), &api.DeleteTaskRequest{ID: "t1"})
	if err != nil || del.Msg == "" {
		t.Fatalf("DeleteTask: %+v, %v", del, err)
	}

	ts.err = common.ErrNotFound
	_, err = s.DeleteTask(authed("u1"), &api.DeleteTaskRequest{ID: "t1"})
	if status.Code(err) != codes.NotFound {
		t.Fatalf("want NotFound, got %v", status.Code(err))
	}
}

func TestGetStats_ForwardsReference(t *testing.T) {
	at := time.Date(2024, 3, 14, 9, 0, 0, 0, time.UTC)
	ts := &fakeTasks{stats: &models.Stats{
		StatusCounts:   map[models.TaskStatus]int64{models.StatusNotStarted: 1},
		PriorityCounts: map[models.TaskPriority]int64{models.PriorityHigh: 1},
		DueDates:       models.DueBuckets{Overdue: 1},
	}}
	s := newServer(&fakeUsers{}, ts, &fakeExports{})

	resp, err := s.GetStats(authed("u1"), &api.GetStatsRequest{At: &at})
	if err != nil {
		t.Fatal(err)
	}
	if resp.DueDates.Overdue != 1 || resp.PriorityCounts["High"] != 1 {
		t.Fatalf("unexpected stats: %+v", resp)
	}
	if ts.ref == nil || !ts.ref.Equal(at) {
		t.Fatalf("reference not forwarded: %v", ts.ref)
	}
}

func TestExport(t *testing.T) {
	s := newServer(&fakeUsers{}, &fakeTasks{}, &fakeExports{url: "http://ok"})
	resp, err := s.Export(authed("u1"), &api.ExportRequest{})
	if err != nil || resp.URL != "http://ok" {
		t.Fatalf("Export: %+v, %v", resp, err)
	}

	s2 := newServer(&fakeUsers{}, &fakeTasks{}, &fakeExports{err: common.ErrStoreUnavailable})
	_, err = s2.Export(authed("u1"), &api.ExportRequest{})
	if status.Code(err) != codes.Unavailable {
		t.Fatalf("want Unavailable, got %v", status.Code(err))
	}
}

package client

import (
	"context"

	"github.com/dmitrijs2005/tasktracker/internal/api"
)

// Client is the operation set the CLI needs from the server.
type Client interface {
	Close() error
	Ping(ctx context.Context) error
	Register(ctx context.Context, name, email string, password []byte) (*api.User, error)
	Login(ctx context.Context, email string, password []byte) error
	Logout()
	LoggedIn() bool
	CurrentUser(ctx context.Context) (*api.User, error)
	ListTasks(ctx context.Context) ([]*api.Task, error)
	FilterTasks(ctx context.Context, req *api.FilterTasksRequest) ([]*api.Task, error)
	SearchTasks(ctx context.Context, query string) ([]*api.Task, error)
	GetTask(ctx context.Context, id string) (*api.Task, error)
	CreateTask(ctx context.Context, req *api.CreateTaskRequest) (*api.Task, error)
	UpdateTask(ctx context.Context, req *api.UpdateTaskRequest) (*api.Task, error)
	DeleteTask(ctx context.Context, id string) error
	GetStats(ctx context.Context) (*api.StatsResponse, error)
	Export(ctx context.Context) (string, error)
}

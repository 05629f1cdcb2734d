package grpc

import (
	"context"

	"github.com/dmitrijs2005/tasktracker/internal/api"
	"github.com/dmitrijs2005/tasktracker/internal/common"
	"github.com/dmitrijs2005/tasktracker/internal/server/services"
	"github.com/dmitrijs2005/tasktracker/internal/server/shared"
	"github.com/dmitrijs2005/tasktracker/internal/server/wire"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (s *GRPCServer) Register(ctx context.Context, req *api.RegisterRequest) (*api.RegisterResponse, error) {

	token, user, err := s.users.Register(ctx, services.RegisterInput{Name: req.Name, Email: req.Email, Password: req.Password})
	if err != nil {
		s.logger.Warn(ctx, "registration failed", "error", err.Error())
		return nil, toStatus(err)
	}

	s.logger.Info(ctx, "Registered", "user_id", user.ID)
	return &api.RegisterResponse{Token: token, User: wire.User(user)}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *api.LoginRequest) (*api.LoginResponse, error) {

	token, err := s.users.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, toStatus(err)
	}

	return &api.LoginResponse{Token: token}, nil
}

func (s *GRPCServer) CurrentUser(ctx context.Context, req *api.CurrentUserRequest) (*api.UserResponse, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.users.CurrentUser(ctx, userID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &api.UserResponse{User: wire.User(user)}, nil
}

func (s *GRPCServer) ListTasks(ctx context.Context, req *api.ListTasksRequest) (*api.TasksResponse, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	tasks, err := s.tasks.List(ctx, userID, nil)
	if err != nil {
		return nil, toStatus(err)
	}
	return &api.TasksResponse{Tasks: wire.Tasks(tasks)}, nil
}

func (s *GRPCServer) FilterTasks(ctx context.Context, req *api.FilterTasksRequest) (*api.TasksResponse, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	filter, err := wire.Filter(req)
	if err != nil {
		return nil, toStatus(err)
	}

	tasks, err := s.tasks.List(ctx, userID, filter)
	if err != nil {
		return nil, toStatus(err)
	}
	return &api.TasksResponse{Tasks: wire.Tasks(tasks)}, nil
}

func (s *GRPCServer) SearchTasks(ctx context.Context, req *api.SearchTasksRequest) (*api.TasksResponse, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	tasks, err := s.tasks.Search(ctx, userID, req.Query)
	if err != nil {
		return nil, toStatus(err)
	}
	return &api.TasksResponse{Tasks: wire.Tasks(tasks)}, nil
}

func (s *GRPCServer) GetTask(ctx context.Context, req *api.GetTaskRequest) (*api.TaskResponse, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	task, err := s.tasks.Get(ctx, userID, req.ID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &api.TaskResponse{Task: wire.Task(task)}, nil
}

func (s *GRPCServer) CreateTask(ctx context.Context, req *api.CreateTaskRequest) (*api.TaskResponse, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	task, err := s.tasks.Create(ctx, userID, wire.CreateInput(req))
	if err != nil {
		return nil, toStatus(err)
	}
	return &api.TaskResponse{Task: wire.Task(task)}, nil
}

func (s *GRPCServer) UpdateTask(ctx context.Context, req *api.UpdateTaskRequest) (*api.TaskResponse, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	task, err := s.tasks.Update(ctx, userID, req.ID, wire.Patch(req))
	if err != nil {
		return nil, toStatus(err)
	}
	return &api.TaskResponse{Task: wire.Task(task)}, nil
}

func (s *GRPCServer) DeleteTask(ctx context.Context, req *api.DeleteTaskRequest) (*api.DeleteTaskResponse, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.tasks.Delete(ctx, userID, req.ID); err != nil {
		return nil, toStatus(err)
	}
	return &api.DeleteTaskResponse{Msg: "Task removed"}, nil
}

func (s *GRPCServer) GetStats(ctx context.Context, req *api.GetStatsRequest) (*api.StatsResponse, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	stats, err := s.tasks.Stats(ctx, userID, req.At)
	if err != nil {
		return nil, toStatus(err)
	}
	return wire.Stats(stats), nil
}

func (s *GRPCServer) Export(ctx context.Context, req *api.ExportRequest) (*api.ExportResponse, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	url, err := s.exports.Export(ctx, userID)
	if err != nil {
		s.logger.Error(ctx, "export failed", "error", err.Error())
		return nil, toStatus(err)
	}
	return &api.ExportResponse{URL: url}, nil
}

func (s *GRPCServer) Ping(ctx context.Context, req *api.PingRequest) (*api.PingResponse, error) {

	return &api.PingResponse{Status: "OK"}, nil

}

// callerID reads the user id the access token interceptor stored.
func callerID(ctx context.Context) (string, error) {
	userID, ok := shared.UserIDFromContext(ctx)
	if !ok {
		return "", status.Error(codes.Unauthenticated, common.ErrMissingCredential.Error())
	}
	return userID, nil
}

package client

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/tasktracker/internal/api"
	"github.com/dmitrijs2005/tasktracker/internal/common"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// taskTrackerAPI is the generated-style client surface, replaced in tests.
type taskTrackerAPI interface {
	Register(ctx context.Context, in *api.RegisterRequest, opts ...grpc.CallOption) (*api.RegisterResponse, error)
	Login(ctx context.Context, in *api.LoginRequest, opts ...grpc.CallOption) (*api.LoginResponse, error)
	CurrentUser(ctx context.Context, in *api.CurrentUserRequest, opts ...grpc.CallOption) (*api.UserResponse, error)
	ListTasks(ctx context.Context, in *api.ListTasksRequest, opts ...grpc.CallOption) (*api.TasksResponse, error)
	FilterTasks(ctx context.Context, in *api.FilterTasksRequest, opts ...grpc.CallOption) (*api.TasksResponse, error)
	GetTask(ctx context.Context, in *api.GetTaskRequest, opts ...grpc.CallOption) (*api.TaskResponse, error)
	CreateTask(ctx context.Context, in *api.CreateTaskRequest, opts ...grpc.CallOption) (*api.TaskResponse, error)
	UpdateTask(ctx context.Context, in *api.UpdateTaskRequest, opts ...grpc.CallOption) (*api.TaskResponse, error)
	DeleteTask(ctx context.Context, in *api.DeleteTaskRequest, opts ...grpc.CallOption) (*api.DeleteTaskResponse, error)
	SearchTasks(ctx context.Context, in *api.SearchTasksRequest, opts ...grpc.CallOption) (*api.TasksResponse, error)
	GetStats(ctx context.Context, in *api.GetStatsRequest, opts ...grpc.CallOption) (*api.StatsResponse, error)
	Export(ctx context.Context, in *api.ExportRequest, opts ...grpc.CallOption) (*api.ExportResponse, error)
	Ping(ctx context.Context, in *api.PingRequest, opts ...grpc.CallOption) (*api.PingResponse, error)
}

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      taskTrackerAPI

	mu          sync.RWMutex
	accessToken string
}

var _ Client = (*GRPCClient)(nil)

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	md.Set(common.AccessTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if token := s.token(); token != "" {
		ctx = withAccessToken(ctx, token)
	}

	err := invoker(ctx, method, req, reply, cc, opts...)

	// an expired session cannot be refreshed; the user has to log in again
	if status.Code(err) == codes.Unauthenticated && strings.Contains(status.Convert(err).Message(), common.ErrExpiredCredential.Error()) {
		s.Logout()
	}
	return err
}

func NewTaskTrackerClient(endpointURL string) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}
	err := c.InitGRPCClient()
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient() error {

	conn, err := grpc.NewClient(s.endpointURL,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor))
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = api.NewTaskTrackerClient(conn)
	return nil
}

func (s *GRPCClient) token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

func (s *GRPCClient) setToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = token
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func (s *GRPCClient) LoggedIn() bool {
	return s.token() != ""
}

// Logout forgets the session token. Tokens are stateless, so the server
// needs no call.
func (s *GRPCClient) Logout() {
	s.setToken("")
}

func (s *GRPCClient) Ping(ctx context.Context) error {

	resp, err := s.client.Ping(ctx, &api.PingRequest{})
	if err != nil {
		return s.mapError(err)
	}

	if resp.Status != "OK" {
		return ErrUnavailable
	}

	return nil
}

func (s *GRPCClient) Register(ctx context.Context, name, email string, password []byte) (*api.User, error) {

	resp, err := s.client.Register(ctx, &api.RegisterRequest{Name: name, Email: email, Password: string(password)})
	if err != nil {
		return nil, s.mapError(err)
	}

	s.setToken(resp.Token)
	return resp.User, nil
}

func (s *GRPCClient) Login(ctx context.Context, email string, password []byte) error {

	resp, err := s.client.Login(ctx, &api.LoginRequest{Email: email, Password: string(password)})
	if err != nil {
		return s.mapError(err)
	}

	s.setToken(resp.Token)
	return nil
}

func (s *GRPCClient) CurrentUser(ctx context.Context) (*api.User, error) {
	resp, err := s.client.CurrentUser(ctx, &api.CurrentUserRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.User, nil
}

func (s *GRPCClient) ListTasks(ctx context.Context) ([]*api.Task, error) {
	resp, err := s.client.ListTasks(ctx, &api.ListTasksRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Tasks, nil
}

func (s *GRPCClient) FilterTasks(ctx context.Context, req *api.FilterTasksRequest) ([]*api.Task, error) {
	resp, err := s.client.FilterTasks(ctx, req)
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Tasks, nil
}

func (s *GRPCClient) SearchTasks(ctx context.Context, query string) ([]*api.Task, error) {
	resp, err := s.client.SearchTasks(ctx, &api.SearchTasksRequest{Query: query})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Tasks, nil
}

func (s *GRPCClient) GetTask(ctx context.Context, id string) (*api.Task, error) {
	resp, err := s.client.GetTask(ctx, &api.GetTaskRequest{ID: id})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Task, nil
}

func (s *GRPCClient) CreateTask(ctx context.Context, req *api.CreateTaskRequest) (*api.Task, error) {
	resp, err := s.client.CreateTask(ctx, req)
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Task, nil
}

func (s *GRPCClient) UpdateTask(ctx context.Context, req *api.UpdateTaskRequest) (*api.Task, error) {
	resp, err := s.client.UpdateTask(ctx, req)
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Task, nil
}

func (s *GRPCClient) DeleteTask(ctx context.Context, id string) error {
	if _, err := s.client.DeleteTask(ctx, &api.DeleteTaskRequest{ID: id}); err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) GetStats(ctx context.Context) (*api.StatsResponse, error) {
	resp, err := s.client.GetStats(ctx, &api.GetStatsRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) Export(ctx context.Context) (string, error) {
	resp, err := s.client.Export(ctx, &api.ExportRequest{})
	if err != nil {
		return "", s.mapError(err)
	}
	return resp.URL, nil
}

// mapError keeps the server message and wraps the sentinel matching the
// status code.
func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)

	var sentinel error
	switch st.Code() {
	case codes.Unauthenticated:
		sentinel = ErrUnauthorized
	case codes.PermissionDenied:
		sentinel = ErrForbidden
	case codes.NotFound:
		sentinel = ErrNotFound
	case codes.InvalidArgument:
		sentinel = ErrInvalidInput
	case codes.AlreadyExists:
		sentinel = ErrExists
	case codes.Unavailable, codes.DeadlineExceeded:
		sentinel = ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
	return fmt.Errorf("%w: %s", sentinel, st.Message())
}

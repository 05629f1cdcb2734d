package api

import (
	"context"

	"google.golang.org/grpc"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "tasktracker.TaskTracker"

const (
	MethodRegister    = "Register"
	MethodLogin       = "Login"
	MethodCurrentUser = "CurrentUser"
	MethodListTasks   = "ListTasks"
	MethodFilterTasks = "FilterTasks"
	MethodGetTask     = "GetTask"
	MethodCreateTask  = "CreateTask"
	MethodUpdateTask  = "UpdateTask"
	MethodDeleteTask  = "DeleteTask"
	MethodSearchTasks = "SearchTasks"
	MethodGetStats    = "GetStats"
	MethodExport      = "Export"
	MethodPing        = "Ping"
)

// FullMethod returns the "/service/method" path of a method name.
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// TaskTrackerServer is the server API of the tasktracker service.
type TaskTrackerServer interface {
	Register(context.Context, *RegisterRequest) (*RegisterResponse, error)
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	CurrentUser(context.Context, *CurrentUserRequest) (*UserResponse, error)
	ListTasks(context.Context, *ListTasksRequest) (*TasksResponse, error)
	FilterTasks(context.Context, *FilterTasksRequest) (*TasksResponse, error)
	GetTask(context.Context, *GetTaskRequest) (*TaskResponse, error)
	CreateTask(context.Context, *CreateTaskRequest) (*TaskResponse, error)
	UpdateTask(context.Context, *UpdateTaskRequest) (*TaskResponse, error)
	DeleteTask(context.Context, *DeleteTaskRequest) (*DeleteTaskResponse, error)
	SearchTasks(context.Context, *SearchTasksRequest) (*TasksResponse, error)
	GetStats(context.Context, *GetStatsRequest) (*StatsResponse, error)
	Export(context.Context, *ExportRequest) (*ExportResponse, error)
	Ping(context.Context, *PingRequest) (*PingResponse, error)
}

// ServiceDesc describes the tasktracker service for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*TaskTrackerServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(MethodRegister, TaskTrackerServer.Register),
		unary(MethodLogin, TaskTrackerServer.Login),
		unary(MethodCurrentUser, TaskTrackerServer.CurrentUser),
		unary(MethodListTasks, TaskTrackerServer.ListTasks),
		unary(MethodFilterTasks, TaskTrackerServer.FilterTasks),
		unary(MethodGetTask, TaskTrackerServer.GetTask),
		unary(MethodCreateTask, TaskTrackerServer.CreateTask),
		unary(MethodUpdateTask, TaskTrackerServer.UpdateTask),
		unary(MethodDeleteTask, TaskTrackerServer.DeleteTask),
		unary(MethodSearchTasks, TaskTrackerServer.SearchTasks),
		unary(MethodGetStats, TaskTrackerServer.GetStats),
		unary(MethodExport, TaskTrackerServer.Export),
		unary(MethodPing, TaskTrackerServer.Ping),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "tasktracker",
}

// RegisterTaskTrackerServer registers srv on s.
func RegisterTaskTrackerServer(s grpc.ServiceRegistrar, srv TaskTrackerServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func unary[Req, Resp any](method string, call func(TaskTrackerServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(TaskTrackerServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(method)}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(TaskTrackerServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// TaskTrackerClient is the client API of the tasktracker service. Every call
// uses the JSON codec.
type TaskTrackerClient struct {
	cc grpc.ClientConnInterface
}

func NewTaskTrackerClient(cc grpc.ClientConnInterface) *TaskTrackerClient {
	return &TaskTrackerClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *TaskTrackerClient) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error) {
	return invoke[RegisterResponse](ctx, c.cc, MethodRegister, in, opts)
}

func (c *TaskTrackerClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error) {
	return invoke[LoginResponse](ctx, c.cc, MethodLogin, in, opts)
}

func (c *TaskTrackerClient) CurrentUser(ctx context.Context, in *CurrentUserRequest, opts ...grpc.CallOption) (*UserResponse, error) {
	return invoke[UserResponse](ctx, c.cc, MethodCurrentUser, in, opts)
}

func (c *TaskTrackerClient) ListTasks(ctx context.Context, in *ListTasksRequest, opts ...grpc.CallOption) (*TasksResponse, error) {
	return invoke[TasksResponse](ctx, c.cc, MethodListTasks, in, opts)
}

func (c *TaskTrackerClient) FilterTasks(ctx context.Context, in *FilterTasksRequest, opts ...grpc.CallOption) (*TasksResponse, error) {
	return invoke[TasksResponse](ctx, c.cc, MethodFilterTasks, in, opts)
}

func (c *TaskTrackerClient) GetTask(ctx context.Context, in *GetTaskRequest, opts ...grpc.CallOption) (*TaskResponse, error) {
	return invoke[TaskResponse](ctx, c.cc, MethodGetTask, in, opts)
}

func (c *TaskTrackerClient) CreateTask(ctx context.Context, in *CreateTaskRequest, opts ...grpc.CallOption) (*TaskResponse, error) {
	return invoke[TaskResponse](ctx, c.cc, MethodCreateTask, in, opts)
}

func (c *TaskTrackerClient) UpdateTask(ctx context.Context, in *UpdateTaskRequest, opts ...grpc.CallOption) (*TaskResponse, error) {
	return invoke[TaskResponse](ctx, c.cc, MethodUpdateTask, in, opts)
}

func (c *TaskTrackerClient) DeleteTask(ctx context.Context, in *DeleteTaskRequest, opts ...grpc.CallOption) (*DeleteTaskResponse, error) {
	return invoke[DeleteTaskResponse](ctx, c.cc, MethodDeleteTask, in, opts)
}

func (c *TaskTrackerClient) SearchTasks(ctx context.Context, in *SearchTasksRequest, opts ...grpc.CallOption) (*TasksResponse, error) {
	return invoke[TasksResponse](ctx, c.cc, MethodSearchTasks, in, opts)
}

func (c *TaskTrackerClient) GetStats(ctx context.Context, in *GetStatsRequest, opts ...grpc.CallOption) (*StatsResponse, error) {
	return invoke[StatsResponse](ctx, c.cc, MethodGetStats, in, opts)
}

func (c *TaskTrackerClient) Export(ctx context.Context, in *ExportRequest, opts ...grpc.CallOption) (*ExportResponse, error) {
	return invoke[ExportResponse](ctx, c.cc, MethodExport, in, opts)
}

func (c *TaskTrackerClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, MethodPing, in, opts)
}

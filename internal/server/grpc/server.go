// Package grpc exposes the services over gRPC as the tasktracker.TaskTracker
// service, using the JSON codec from the api package.
package grpc

import (
	"context"
	"net"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/api"
	"github.com/dmitrijs2005/tasktracker/internal/logging"
	"github.com/dmitrijs2005/tasktracker/internal/server/models"
	"github.com/dmitrijs2005/tasktracker/internal/server/services"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

type userSvc interface {
	Register(ctx context.Context, in services.RegisterInput) (string, *models.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	CurrentUser(ctx context.Context, userID string) (*models.User, error)
	Authenticate(token string) (string, error)
}

type taskSvc interface {
	List(ctx context.Context, callerID string, filter *models.TaskFilter) ([]*models.Task, error)
	Search(ctx context.Context, callerID string, term string) ([]*models.Task, error)
	Get(ctx context.Context, callerID, id string) (*models.Task, error)
	Create(ctx context.Context, callerID string, in services.CreateTaskInput) (*models.Task, error)
	Update(ctx context.Context, callerID, id string, patch models.TaskPatch) (*models.Task, error)
	Delete(ctx context.Context, callerID, id string) error
	Stats(ctx context.Context, callerID string, ref *time.Time) (*models.Stats, error)
}

type exportSvc interface {
	Export(ctx context.Context, callerID string) (string, error)
}

type GRPCServer struct {
	address string
	users   userSvc
	tasks   taskSvc
	exports exportSvc
	logger  logging.Logger
}

var _ api.TaskTrackerServer = (*GRPCServer)(nil)

func NewGRPCServer(a string, l logging.Logger, us userSvc, ts taskSvc, es exportSvc) *GRPCServer {
	return &GRPCServer{
		address: a,
		logger:  l.With("module", "grpc_server"),
		users:   us,
		tasks:   ts,
		exports: es,
	}
}

// NewServer builds the grpc.Server with interceptors, the tasktracker
// service and the standard health service registered.
func (s *GRPCServer) NewServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessTokenInterceptor))

	api.RegisterTaskTrackerServer(srv, s)

	hs := health.NewServer()
	hs.SetServingStatus(api.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(srv, hs)

	return srv
}

// Run serves until ctx is cancelled, then stops gracefully.
func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := s.NewServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", s.address)

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}

package grpc

import (
	"context"
	"strings"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/api"
	"github.com/dmitrijs2005/tasktracker/internal/common"
	"github.com/dmitrijs2005/tasktracker/internal/server/metrics"
	"github.com/dmitrijs2005/tasktracker/internal/server/shared"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// publicMethods can be called without a session token.
var publicMethods = map[string]bool{
	api.FullMethod(api.MethodRegister): true,
	api.FullMethod(api.MethodLogin):    true,
	api.FullMethod(api.MethodPing):     true,
}

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {

	if publicMethods[info.FullMethod] || !strings.HasPrefix(info.FullMethod, "/"+api.ServiceName+"/") {
		return handler(ctx, req)
	}

	var accessToken string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		values := md.Get(common.AccessTokenHeaderName)
		if len(values) > 0 {
			accessToken = values[0]
		}
	}

	userID, err := s.users.Authenticate(accessToken)
	if err != nil {
		return nil, toStatus(err)
	}

	return handler(shared.WithUserID(ctx, userID), req)
}

func (s *GRPCServer) loggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()

	resp, err := handler(ctx, req)

	method := info.FullMethod[strings.LastIndex(info.FullMethod, "/")+1:]
	code := status.Code(err)
	elapsed := time.Since(start)

	metrics.RequestsTotal.WithLabelValues("grpc", method, code.String()).Inc()
	metrics.RequestDuration.WithLabelValues("grpc", method).Observe(elapsed.Seconds())

	s.logger.Info(ctx, "grpc request", "method", method, "code", code.String(), "duration", elapsed)
	return resp, err
}

package grpc

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// requestLogInterceptor logs one line per unary call with the resulting
// status code.
func (s *GRPCServer) requestLogInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {

	start := time.Now()
	resp, err := handler(ctx, req)

	s.logger.Info(ctx, "request",
		"method", info.FullMethod,
		"duration", time.Since(start),
		"code", status.Code(err).String(),
	)

	return resp, err
}

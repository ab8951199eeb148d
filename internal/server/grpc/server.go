package grpc

import (
	"context"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/dmitrijs2005/accountsvc/internal/logging"
	"github.com/dmitrijs2005/accountsvc/internal/server/auth"
	"github.com/dmitrijs2005/accountsvc/internal/server/pipeline"
	"github.com/dmitrijs2005/accountsvc/internal/server/rpc"
	"github.com/dmitrijs2005/accountsvc/internal/server/users"
)

type GRPCServer struct {
	rpc.UnimplementedAccountsServer
	address  string
	users    *users.Service
	auth     *auth.Service
	pipeline *pipeline.Pipeline
	logger   logging.Logger
}

func NewGRPCServer(a string, l logging.Logger, us *users.Service, as *auth.Service, p *pipeline.Pipeline) (*GRPCServer, error) {
	return &GRPCServer{
		address:  a,
		logger:   l.With("module", "grpc_server"),
		users:    us,
		auth:     as,
		pipeline: p,
	}, nil
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	// creates gRPC-server
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.requestLogInterceptor))

	// registers services
	rpc.RegisterAccountsServer(srv, s)

	hs := health.NewServer()
	hs.SetServingStatus(rpc.Accounts_ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(srv, hs)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gPRC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", s.address)

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}

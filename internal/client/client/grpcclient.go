package client

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/dmitrijs2005/accountsvc/internal/common"
	"github.com/dmitrijs2005/accountsvc/internal/server/rpc"
)

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      rpc.AccountsClient
	token       string
}

func withBearerToken(ctx context.Context, token string) context.Context {
	if token == "" {
		return ctx
	}
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.AuthorizationHeaderName, "Bearer "+token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) bearerTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	return invoker(withBearerToken(ctx, s.token), method, req, reply, cc, opts...)
}

func NewAccountsClientService(endpointURL string) (*GRPCClient, error) {
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
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(rpc.CodecName)),
		grpc.WithUnaryInterceptor(s.bearerTokenInterceptor),
	)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = rpc.NewAccountsClient(conn)
	return nil
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

// Login authenticates by username and keeps the returned bearer token for
// subsequent calls.
func (s *GRPCClient) Login(ctx context.Context, username, password string) error {

	resp, err := s.client.Authenticate(ctx, &rpc.AuthenticateRequest{Username: username, Password: password})
	if err != nil {
		return s.mapError(err)
	}

	s.token = resp.Token
	return nil
}

func (s *GRPCClient) Me(ctx context.Context) (*rpc.User, error) {

	user, err := s.client.Me(ctx, &rpc.MeRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return user, nil
}

func (s *GRPCClient) Get(ctx context.Context, id string) (*rpc.User, error) {

	user, err := s.client.Get(ctx, &rpc.GetRequest{ID: id})
	if err != nil {
		return nil, s.mapError(err)
	}
	return user, nil
}

func (s *GRPCClient) Create(ctx context.Context, req *rpc.CreateRequest) (*rpc.User, error) {

	user, err := s.client.Create(ctx, req)
	if err != nil {
		return nil, s.mapError(err)
	}
	return user, nil
}

func (s *GRPCClient) Update(ctx context.Context, req *rpc.UpdateRequest) (*rpc.User, error) {

	user, err := s.client.Update(ctx, req)
	if err != nil {
		return nil, s.mapError(err)
	}
	return user, nil
}

func (s *GRPCClient) SetPassword(ctx context.Context, password string) error {

	_, err := s.client.SetPassword(ctx, &rpc.SetPasswordRequest{Password: password})
	if err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) Search(ctx context.Context, req *rpc.SearchRequest) (*rpc.UserList, error) {

	list, err := s.client.Search(ctx, req)
	if err != nil {
		return nil, s.mapError(err)
	}
	return list, nil
}

// mapError translates transport failures to the package sentinel errors;
// everything else passes through with its status intact.
func (s *GRPCClient) mapError(err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	switch st.Code() {
	case codes.Unavailable:
		return ErrUnavailable
	case codes.Unauthenticated:
		return ErrUnauthorized
	}

	return err
}

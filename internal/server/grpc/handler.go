package grpc

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dmitrijs2005/accountsvc/internal/common"
	"github.com/dmitrijs2005/accountsvc/internal/server/pipeline"
	"github.com/dmitrijs2005/accountsvc/internal/server/rpc"
	"github.com/dmitrijs2005/accountsvc/internal/server/users"
)

// statusFromError maps the taxonomy errors to gRPC statuses with fixed
// messages. Anything outside the taxonomy surfaces as a bare internal error.
func statusFromError(err error) error {
	switch {
	case errors.Is(err, common.ErrNotFound):
		return status.Error(codes.NotFound, common.ErrNotFound.Error())
	case errors.Is(err, common.ErrAuthFailed):
		return status.Error(codes.InvalidArgument, common.ErrAuthFailed.Error())
	case errors.Is(err, common.ErrUserExists):
		return status.Error(codes.AlreadyExists, common.ErrUserExists.Error())
	case errors.Is(err, common.ErrValidationFailed):
		return status.Error(codes.InvalidArgument, common.ErrValidationFailed.Error())
	case errors.Is(err, common.ErrUnauthorized):
		return status.Error(codes.Unauthenticated, common.ErrUnauthorized.Error())
	default:
		return status.Error(codes.Internal, "internal error")
	}
}

func (s *GRPCServer) Authenticate(ctx context.Context, req *rpc.AuthenticateRequest) (*rpc.TokenResponse, error) {

	resp, err := s.pipeline.Run(ctx, func(ctx context.Context) (any, error) {
		q := users.Query{
			Username: req.Username,
			Email:    req.Email,
			Phone:    req.Phone,
			OpenID:   req.OpenID,
		}
		user, err := s.users.Authenticate(ctx, q, req.Password)
		if err != nil {
			return nil, err
		}
		token, err := s.auth.Issue(user)
		if err != nil {
			return nil, err
		}
		return &rpc.TokenResponse{Token: token}, nil
	}, nil, nil)

	if err != nil {
		s.logger.Error(ctx, "authentication refused", "error", err)
		return nil, statusFromError(err)
	}
	return resp.(*rpc.TokenResponse), nil
}

func (s *GRPCServer) Create(ctx context.Context, req *rpc.CreateRequest) (*rpc.User, error) {

	resp, err := s.pipeline.Run(ctx, pipeline.StaffRequired(func(ctx context.Context) (any, error) {
		return s.users.Register(ctx, users.CreateParams{
			Username:   req.Username,
			Email:      req.Email,
			Phone:      req.Phone,
			OpenID:     req.OpenID,
			Password:   req.Password,
			ScreenName: req.ScreenName,
			Gender:     req.Gender,
			BirthDay:   req.BirthDay,
			AvatarURL:  req.AvatarURL,
		})
	}), nil, nil)

	if err != nil {
		s.logger.Error(ctx, "registration refused", "error", err)
		return nil, statusFromError(err)
	}

	s.logger.Info(ctx, "registered user", "username", req.Username)
	return resp.(*rpc.User), nil
}

func (s *GRPCServer) Get(ctx context.Context, req *rpc.GetRequest) (*rpc.User, error) {

	resp, err := s.pipeline.Run(ctx, pipeline.LoginRequired(func(ctx context.Context) (any, error) {
		return s.users.Get(ctx, req.ID)
	}), nil, nil)

	if err != nil {
		return nil, statusFromError(err)
	}
	return resp.(*rpc.User), nil
}

func (s *GRPCServer) Me(ctx context.Context, req *rpc.MeRequest) (*rpc.User, error) {

	resp, err := s.pipeline.Run(ctx, pipeline.LoginRequired(func(ctx context.Context) (any, error) {
		return pipeline.PrincipalFromContext(ctx).User, nil
	}), nil, nil)

	if err != nil {
		return nil, statusFromError(err)
	}
	return resp.(*rpc.User), nil
}

func (s *GRPCServer) Update(ctx context.Context, req *rpc.UpdateRequest) (*rpc.User, error) {

	resp, err := s.pipeline.Run(ctx, pipeline.LoginRequired(func(ctx context.Context) (any, error) {
		return s.users.Update(ctx, pipeline.PrincipalFromContext(ctx).User, users.UpdateParams{
			ScreenName: req.ScreenName,
			Gender:     req.Gender,
			BirthDay:   req.BirthDay,
			AvatarURL:  req.AvatarURL,
		})
	}), nil, nil)

	if err != nil {
		return nil, statusFromError(err)
	}
	return resp.(*rpc.User), nil
}

func (s *GRPCServer) SetPassword(ctx context.Context, req *rpc.SetPasswordRequest) (*rpc.SetPasswordResponse, error) {

	_, err := s.pipeline.Run(ctx, pipeline.LoginRequired(func(ctx context.Context) (any, error) {
		user := pipeline.PrincipalFromContext(ctx).User
		if err := s.users.SetPassword(ctx, user, req.Password); err != nil {
			return nil, err
		}
		return &rpc.SetPasswordResponse{}, nil
	}), nil, nil)

	if err != nil {
		return nil, statusFromError(err)
	}
	return &rpc.SetPasswordResponse{}, nil
}

func (s *GRPCServer) Search(ctx context.Context, req *rpc.SearchRequest) (*rpc.UserList, error) {

	resp, err := s.pipeline.Run(ctx, pipeline.StaffRequired(func(ctx context.Context) (any, error) {
		f := users.SearchFilter{
			ScreenName: req.ScreenName,
			Username:   req.Username,
			Phone:      req.Phone,
			Email:      req.Email,
		}
		return s.users.Search(ctx, f, int(req.Page), int(req.PerPage))
	}), nil, nil)

	if err != nil {
		return nil, statusFromError(err)
	}

	shaped := resp.([]any)
	list := &rpc.UserList{Users: make([]*rpc.User, 0, len(shaped))}
	for _, v := range shaped {
		list.Users = append(list.Users, v.(*rpc.User))
	}
	return list, nil
}

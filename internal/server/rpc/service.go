package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Accounts_ServiceName is the fully-qualified service name.
const Accounts_ServiceName = "accounts.Accounts"

// AccountsServer is the server API for the Accounts service.
type AccountsServer interface {
	Authenticate(context.Context, *AuthenticateRequest) (*TokenResponse, error)
	Create(context.Context, *CreateRequest) (*User, error)
	Get(context.Context, *GetRequest) (*User, error)
	Me(context.Context, *MeRequest) (*User, error)
	Update(context.Context, *UpdateRequest) (*User, error)
	SetPassword(context.Context, *SetPasswordRequest) (*SetPasswordResponse, error)
	Search(context.Context, *SearchRequest) (*UserList, error)
}

// UnimplementedAccountsServer can be embedded to have forward-compatible
// implementations.
type UnimplementedAccountsServer struct{}

func (UnimplementedAccountsServer) Authenticate(context.Context, *AuthenticateRequest) (*TokenResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Authenticate not implemented")
}
func (UnimplementedAccountsServer) Create(context.Context, *CreateRequest) (*User, error) {
	return nil, status.Error(codes.Unimplemented, "method Create not implemented")
}
func (UnimplementedAccountsServer) Get(context.Context, *GetRequest) (*User, error) {
	return nil, status.Error(codes.Unimplemented, "method Get not implemented")
}
func (UnimplementedAccountsServer) Me(context.Context, *MeRequest) (*User, error) {
	return nil, status.Error(codes.Unimplemented, "method Me not implemented")
}
func (UnimplementedAccountsServer) Update(context.Context, *UpdateRequest) (*User, error) {
	return nil, status.Error(codes.Unimplemented, "method Update not implemented")
}
func (UnimplementedAccountsServer) SetPassword(context.Context, *SetPasswordRequest) (*SetPasswordResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SetPassword not implemented")
}
func (UnimplementedAccountsServer) Search(context.Context, *SearchRequest) (*UserList, error) {
	return nil, status.Error(codes.Unimplemented, "method Search not implemented")
}

// RegisterAccountsServer registers the service implementation with a gRPC
// server registrar.
func RegisterAccountsServer(s grpc.ServiceRegistrar, srv AccountsServer) {
	s.RegisterService(&Accounts_ServiceDesc, srv)
}

func _Accounts_Authenticate_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(AuthenticateRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AccountsServer).Authenticate(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + Accounts_ServiceName + "/Authenticate",
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AccountsServer).Authenticate(ctx, req.(*AuthenticateRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Accounts_Create_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(CreateRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AccountsServer).Create(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + Accounts_ServiceName + "/Create",
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AccountsServer).Create(ctx, req.(*CreateRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Accounts_Get_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(GetRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AccountsServer).Get(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + Accounts_ServiceName + "/Get",
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AccountsServer).Get(ctx, req.(*GetRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Accounts_Me_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(MeRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AccountsServer).Me(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + Accounts_ServiceName + "/Me",
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AccountsServer).Me(ctx, req.(*MeRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Accounts_Update_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(UpdateRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AccountsServer).Update(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + Accounts_ServiceName + "/Update",
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AccountsServer).Update(ctx, req.(*UpdateRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Accounts_SetPassword_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(SetPasswordRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AccountsServer).SetPassword(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + Accounts_ServiceName + "/SetPassword",
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AccountsServer).SetPassword(ctx, req.(*SetPasswordRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Accounts_Search_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(SearchRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AccountsServer).Search(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + Accounts_ServiceName + "/Search",
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AccountsServer).Search(ctx, req.(*SearchRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// Accounts_ServiceDesc is the grpc.ServiceDesc for the Accounts service.
var Accounts_ServiceDesc = grpc.ServiceDesc{
	ServiceName: Accounts_ServiceName,
	HandlerType: (*AccountsServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Authenticate", Handler: _Accounts_Authenticate_Handler},
		{MethodName: "Create", Handler: _Accounts_Create_Handler},
		{MethodName: "Get", Handler: _Accounts_Get_Handler},
		{MethodName: "Me", Handler: _Accounts_Me_Handler},
		{MethodName: "Update", Handler: _Accounts_Update_Handler},
		{MethodName: "SetPassword", Handler: _Accounts_SetPassword_Handler},
		{MethodName: "Search", Handler: _Accounts_Search_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "accounts.json",
}

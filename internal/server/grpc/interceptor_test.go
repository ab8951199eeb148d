package grpc

import (
	"context"
	"errors"
	"testing"

	"google.golang.org/grpc"
)

func TestRequestLogInterceptor_PassesThrough(t *testing.T) {
	s, _, _ := newTestServer(t)

	info := &grpc.UnaryServerInfo{FullMethod: "/accounts.Accounts/Me"}

	resp, err := s.requestLogInterceptor(context.Background(), nil, info,
		func(ctx context.Context, req interface{}) (interface{}, error) {
			return "ok", nil
		})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp != "ok" {
		t.Fatalf("unexpected response: %v", resp)
	}
}

func TestRequestLogInterceptor_ForwardsError(t *testing.T) {
	s, _, _ := newTestServer(t)

	info := &grpc.UnaryServerInfo{FullMethod: "/accounts.Accounts/Me"}
	boom := errors.New("boom")

	_, err := s.requestLogInterceptor(context.Background(), nil, info,
		func(ctx context.Context, req interface{}) (interface{}, error) {
			return nil, boom
		})
	if !errors.Is(err, boom) {
		t.Fatalf("expected handler error forwarded, got %v", err)
	}
}

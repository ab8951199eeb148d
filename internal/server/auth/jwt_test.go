package auth

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/dmitrijs2005/accountsvc/internal/common"
	"github.com/dmitrijs2005/accountsvc/internal/logging"
	"github.com/dmitrijs2005/accountsvc/internal/server/cache"
	"github.com/dmitrijs2005/accountsvc/internal/server/users"
)

type nopLogger struct{}

func (n nopLogger) Info(context.Context, string, ...any)  {}
func (n nopLogger) Warn(context.Context, string, ...any)  {}
func (n nopLogger) Error(context.Context, string, ...any) {}
func (n nopLogger) With(...any) logging.Logger            { return n }

type fakeSource struct {
	byID       map[string]*users.User
	byUsername map[string]*users.User
	password   string

	getCalls int
}

func (f *fakeSource) Get(_ context.Context, id string) (*users.User, error) {
	f.getCalls++
	if u, ok := f.byID[id]; ok {
		c := *u
		return &c, nil
	}
	return nil, common.ErrNotFound
}

func (f *fakeSource) GetByUsername(_ context.Context, username string) (*users.User, error) {
	if u, ok := f.byUsername[username]; ok {
		c := *u
		return &c, nil
	}
	return nil, common.ErrNotFound
}

func (f *fakeSource) VerifyPassword(_ context.Context, _ *users.User, password string) bool {
	return password == f.password
}

func newTestAuth(t *testing.T, source *fakeSource) (*Service, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(func() { mr.Close() })

	c := cache.New(redis.NewClient(&redis.Options{Addr: mr.Addr()}), time.Minute, nopLogger{})
	return NewService(source, c, "test-secret", nopLogger{}), mr
}

func testUser() *users.User {
	return &users.User{
		ID: "u-1", Username: "alice", Email: "alice@example.com",
		ScreenName: "Alice", Gender: "f", IsStaff: true,
	}
}

func TestIssueAndResolveBearer(t *testing.T) {
	source := &fakeSource{byID: map[string]*users.User{"u-1": testUser()}}
	svc, _ := newTestAuth(t, source)

	token, err := svc.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	got, err := svc.ResolveBearer(context.Background(), token)
	if err != nil {
		t.Fatalf("ResolveBearer error: %v", err)
	}
	if got.ID != "u-1" || got.Username != "alice" {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestResolveBearer_PrimesCaches(t *testing.T) {
	source := &fakeSource{byID: map[string]*users.User{"u-1": testUser()}}
	svc, mr := newTestAuth(t, source)

	token, err := svc.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	if _, err := svc.ResolveBearer(context.Background(), token); err != nil {
		t.Fatalf("ResolveBearer error: %v", err)
	}
	if !mr.Exists(common.TokenCachePrefix + token) {
		t.Fatalf("expected token cache entry")
	}
	if !mr.Exists(common.UserCachePrefix + "u-1") {
		t.Fatalf("expected user cache entry")
	}

	// A second resolve is served without consulting the store.
	calls := source.getCalls
	if _, err := svc.ResolveBearer(context.Background(), token); err != nil {
		t.Fatalf("second ResolveBearer error: %v", err)
	}
	if source.getCalls != calls {
		t.Fatalf("expected cached resolution, store was consulted")
	}
}

func TestResolveBearer_GarbageToken(t *testing.T) {
	svc, _ := newTestAuth(t, &fakeSource{})

	_, err := svc.ResolveBearer(context.Background(), "not-a-jwt")
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestResolveBearer_WrongSignature(t *testing.T) {
	source := &fakeSource{byID: map[string]*users.User{"u-1": testUser()}}
	svc, _ := newTestAuth(t, source)

	otherMr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	defer otherMr.Close()

	other := NewService(source,
		cache.New(redis.NewClient(&redis.Options{Addr: otherMr.Addr()}), time.Minute, nopLogger{}),
		"other-secret", nopLogger{})

	token, err := other.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	if _, err := svc.ResolveBearer(context.Background(), token); !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for foreign signature, got %v", err)
	}
}

func TestResolveBearer_UnknownUser(t *testing.T) {
	svc, _ := newTestAuth(t, &fakeSource{})

	token, err := svc.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	if _, err := svc.ResolveBearer(context.Background(), token); !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for deleted user, got %v", err)
	}
}

func TestResolveBasic(t *testing.T) {
	source := &fakeSource{
		byUsername: map[string]*users.User{"alice": testUser()},
		password:   "correct",
	}
	svc, _ := newTestAuth(t, source)

	creds := base64.StdEncoding.EncodeToString([]byte("alice:correct"))
	got, err := svc.ResolveBasic(context.Background(), creds)
	if err != nil {
		t.Fatalf("ResolveBasic error: %v", err)
	}
	if got.ID != "u-1" {
		t.Fatalf("unexpected user: %+v", got)
	}

	tests := []struct {
		name  string
		creds string
	}{
		{"wrong password", base64.StdEncoding.EncodeToString([]byte("alice:wrong"))},
		{"unknown user", base64.StdEncoding.EncodeToString([]byte("ghost:correct"))},
		{"no separator", base64.StdEncoding.EncodeToString([]byte("alicecorrect"))},
		{"invalid base64", "%%%not-base64%%%"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.ResolveBasic(context.Background(), tt.creds); !errors.Is(err, common.ErrAuthFailed) {
				t.Errorf("expected ErrAuthFailed, got %v", err)
			}
		})
	}
}

func TestInvalidate(t *testing.T) {
	source := &fakeSource{byID: map[string]*users.User{"u-1": testUser()}}
	svc, mr := newTestAuth(t, source)

	token, err := svc.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	if _, err := svc.ResolveBearer(context.Background(), token); err != nil {
		t.Fatalf("ResolveBearer error: %v", err)
	}

	svc.Invalidate(context.Background(), testUser())

	if mr.Exists(common.UserCachePrefix + "u-1") {
		t.Fatalf("expected user cache entry removed")
	}
}

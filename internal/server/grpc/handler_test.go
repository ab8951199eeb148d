package grpc

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/dmitrijs2005/accountsvc/internal/common"
	"github.com/dmitrijs2005/accountsvc/internal/server/auth"
	"github.com/dmitrijs2005/accountsvc/internal/server/cache"
	"github.com/dmitrijs2005/accountsvc/internal/server/config"
	"github.com/dmitrijs2005/accountsvc/internal/server/hashers"
	"github.com/dmitrijs2005/accountsvc/internal/server/pipeline"
	"github.com/dmitrijs2005/accountsvc/internal/server/rpc"
	"github.com/dmitrijs2005/accountsvc/internal/server/users"
)

// memRepo is a minimal in-memory users.Repository for handler tests.
type memRepo struct {
	users map[string]*users.User
}

func newMemRepo() *memRepo {
	return &memRepo{users: map[string]*users.User{}}
}

func (r *memRepo) Create(_ context.Context, user *users.User) (*users.User, error) {
	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email {
			return nil, common.ErrUserExists
		}
	}
	c := *user
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	r.users[c.ID] = &c
	out := c
	return &out, nil
}

func (r *memRepo) FindByID(ctx context.Context, id string) (*users.User, error) {
	return r.FindOne(ctx, users.Query{ID: id})
}

func (r *memRepo) FindOne(_ context.Context, q users.Query) (*users.User, error) {
	if q.IsEmpty() {
		return nil, common.ErrNotFound
	}
	for _, u := range r.users {
		if q.ID != "" && u.ID != q.ID {
			continue
		}
		if q.Username != "" && u.Username != q.Username {
			continue
		}
		if q.Email != "" && u.Email != q.Email {
			continue
		}
		if q.Phone != "" && u.Phone != q.Phone {
			continue
		}
		if q.OpenID != "" && u.OpenID != q.OpenID {
			continue
		}
		c := *u
		return &c, nil
	}
	return nil, common.ErrNotFound
}

func (r *memRepo) Update(_ context.Context, user *users.User) (*users.User, error) {
	stored, ok := r.users[user.ID]
	if !ok {
		return nil, common.ErrNotFound
	}
	stored.ScreenName = user.ScreenName
	stored.Gender = user.Gender
	stored.AvatarURL = user.AvatarURL
	stored.BirthDay = user.BirthDay
	c := *stored
	return &c, nil
}

func (r *memRepo) UpdatePassword(_ context.Context, id, encoded string) error {
	stored, ok := r.users[id]
	if !ok {
		return common.ErrNotFound
	}
	stored.Password = encoded
	return nil
}

func (r *memRepo) Search(_ context.Context, f users.SearchFilter, limit, offset int) ([]*users.User, error) {
	var out []*users.User
	for _, u := range r.users {
		c := *u
		out = append(out, &c)
	}
	return out, nil
}

func newTestServer(t *testing.T) (*GRPCServer, *memRepo, *auth.Service) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(func() { mr.Close() })

	c := cache.New(redis.NewClient(&redis.Options{Addr: mr.Addr()}), time.Minute, nopLogger{})

	repo := newMemRepo()
	cfg := &config.Config{UseFallback: false, CacheTTL: time.Minute}
	us := users.NewService(repo, nil, c, cfg, nopLogger{})
	as := auth.NewService(us, c, "test-secret", nopLogger{})

	p := pipeline.New(nopLogger{},
		[]pipeline.PreHook{
			pipeline.AuthenticationHook(as, nopLogger{}),
			pipeline.ImpersonationHook(repo, nopLogger{}),
		},
		[]pipeline.PostHook{pipeline.ShapingHook()},
	)

	s, err := NewGRPCServer("127.0.0.1:0", nopLogger{}, us, as, p)
	if err != nil {
		t.Fatalf("NewGRPCServer error: %v", err)
	}
	return s, repo, as
}

func seedUser(t *testing.T, repo *memRepo, id, username, password string, staff, super bool) *users.User {
	t.Helper()
	encoded, err := hashers.Encode(password)
	if err != nil {
		t.Fatalf("encode error: %v", err)
	}
	u := &users.User{
		ID: id, Username: username, Password: encoded,
		Email: username + "@example.com", ScreenName: username,
		Gender: "n", IsActive: true, IsStaff: staff, IsSuperuser: super,
		DateJoined: time.Now(),
	}
	repo.users[id] = u
	return u
}

func authedCtx(t *testing.T, as *auth.Service, user *users.User, extra ...string) context.Context {
	t.Helper()
	token, err := as.Issue(user)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	pairs := append([]string{common.AuthorizationHeaderName, "Bearer " + token}, extra...)
	return metadata.NewIncomingContext(context.Background(), metadata.Pairs(pairs...))
}

func wantCode(t *testing.T, err error, code codes.Code) {
	t.Helper()
	if status.Code(err) != code {
		t.Fatalf("expected code %v, got %v (err=%v)", code, status.Code(err), err)
	}
}

func TestAuthenticate(t *testing.T) {
	s, repo, _ := newTestServer(t)
	seedUser(t, repo, "u-1", "alice", "correct", false, false)

	resp, err := s.Authenticate(context.Background(), &rpc.AuthenticateRequest{Username: "alice", Password: "correct"})
	if err != nil {
		t.Fatalf("Authenticate error: %v", err)
	}
	if resp.Token == "" {
		t.Fatalf("expected a signed token")
	}

	_, err = s.Authenticate(context.Background(), &rpc.AuthenticateRequest{Username: "alice", Password: "wrong"})
	wantCode(t, err, codes.InvalidArgument)
	if status.Convert(err).Message() != common.ErrAuthFailed.Error() {
		t.Fatalf("unexpected message: %q", status.Convert(err).Message())
	}
}

func TestMe(t *testing.T) {
	s, repo, as := newTestServer(t)
	alice := seedUser(t, repo, "u-1", "alice", "pw", false, false)

	_, err := s.Me(context.Background(), &rpc.MeRequest{})
	wantCode(t, err, codes.Unauthenticated)

	got, err := s.Me(authedCtx(t, as, alice), &rpc.MeRequest{})
	if err != nil {
		t.Fatalf("Me error: %v", err)
	}
	if got.ID != "u-1" || got.Username != "alice" {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestCreate(t *testing.T) {
	s, repo, as := newTestServer(t)
	staff := seedUser(t, repo, "staff-1", "admin", "pw", true, false)
	regular := seedUser(t, repo, "u-1", "joe", "pw", false, false)

	req := &rpc.CreateRequest{Username: "carol", Email: "carol@example.com", Password: "pw", ScreenName: "Carol"}

	_, err := s.Create(context.Background(), req)
	wantCode(t, err, codes.Unauthenticated)

	_, err = s.Create(authedCtx(t, as, regular), req)
	wantCode(t, err, codes.Unauthenticated)

	got, err := s.Create(authedCtx(t, as, staff), req)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.Username != "carol" || got.ID == "" {
		t.Fatalf("unexpected user: %+v", got)
	}

	_, err = s.Create(authedCtx(t, as, staff), req)
	wantCode(t, err, codes.AlreadyExists)
}

func TestGet(t *testing.T) {
	s, repo, as := newTestServer(t)
	alice := seedUser(t, repo, "u-1", "alice", "pw", false, false)
	seedUser(t, repo, "u-2", "bob", "pw", false, false)

	got, err := s.Get(authedCtx(t, as, alice), &rpc.GetRequest{ID: "u-2"})
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.Username != "bob" {
		t.Fatalf("unexpected user: %+v", got)
	}

	_, err = s.Get(authedCtx(t, as, alice), &rpc.GetRequest{ID: "ghost"})
	wantCode(t, err, codes.NotFound)
}

func TestUpdate(t *testing.T) {
	s, repo, as := newTestServer(t)
	alice := seedUser(t, repo, "u-1", "alice", "pw", false, false)

	got, err := s.Update(authedCtx(t, as, alice), &rpc.UpdateRequest{
		ScreenName: "New Alice", Gender: "MALE", BirthDay: "1999-12-31", AvatarURL: "http://a/1.png",
	})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if got.ScreenName != "New Alice" || got.Gender != "MALE" {
		t.Fatalf("unexpected projection: %+v", got)
	}
	if got.BirthDay != "1999-12-31" {
		t.Fatalf("unexpected birth day: %q", got.BirthDay)
	}
	if repo.users["u-1"].ScreenName != "New Alice" {
		t.Fatalf("expected profile persisted")
	}
}

func TestSetPassword(t *testing.T) {
	s, repo, as := newTestServer(t)
	alice := seedUser(t, repo, "u-1", "alice", "old", false, false)

	if _, err := s.SetPassword(authedCtx(t, as, alice), &rpc.SetPasswordRequest{Password: "new"}); err != nil {
		t.Fatalf("SetPassword error: %v", err)
	}
	if !hashers.Verify(repo.users["u-1"].Password, "new") {
		t.Fatalf("expected password updated")
	}
}

func TestSearch(t *testing.T) {
	s, repo, as := newTestServer(t)
	staff := seedUser(t, repo, "staff-1", "admin", "pw", true, false)
	regular := seedUser(t, repo, "u-1", "joe", "pw", false, false)

	_, err := s.Search(authedCtx(t, as, regular), &rpc.SearchRequest{})
	wantCode(t, err, codes.Unauthenticated)

	got, err := s.Search(authedCtx(t, as, staff), &rpc.SearchRequest{})
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if len(got.Users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(got.Users))
	}
}

func TestImpersonation(t *testing.T) {
	s, repo, as := newTestServer(t)
	super := seedUser(t, repo, "admin-1", "root", "pw", true, true)
	seedUser(t, repo, "u-1", "alice", "pw", false, false)

	got, err := s.Me(authedCtx(t, as, super, common.ImpersonateHeaderName, "u-1"), &rpc.MeRequest{})
	if err != nil {
		t.Fatalf("Me error: %v", err)
	}
	if got.ID != "u-1" {
		t.Fatalf("expected impersonated principal, got %+v", got)
	}

	_, err = s.Me(authedCtx(t, as, super, common.ImpersonateHeaderName, "ghost"), &rpc.MeRequest{})
	wantCode(t, err, codes.InvalidArgument)
}

func TestErrorMessagesAreFixed(t *testing.T) {
	s, _, _ := newTestServer(t)

	_, err := s.Me(context.Background(), &rpc.MeRequest{})
	if status.Convert(err).Message() != common.ErrUnauthorized.Error() {
		t.Fatalf("unexpected message: %q", status.Convert(err).Message())
	}
}

package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/accountsvc/internal/common"
	"github.com/dmitrijs2005/accountsvc/internal/logging"
	"github.com/dmitrijs2005/accountsvc/internal/server/cache"
	"github.com/dmitrijs2005/accountsvc/internal/server/config"
	"github.com/dmitrijs2005/accountsvc/internal/server/fallback"
	"github.com/dmitrijs2005/accountsvc/internal/server/hashers"
)

// CreateParams carries the registration input. When OpenID is set and the
// identifying fields are empty, placeholder username/email/phone values are
// synthesized.
type CreateParams struct {
	Username   string
	Email      string
	Phone      string
	OpenID     string
	Password   string
	ScreenName string
	Gender     string
	BirthDay   string
	AvatarURL  string
}

// UpdateParams carries the mutable profile fields.
type UpdateParams struct {
	ScreenName string
	Gender     string
	BirthDay   string
	AvatarURL  string
}

// Service implements the account operations over the primary store and,
// while the migration window is open, reconciles against the legacy store:
// lookup-through on failed primary auth, write-through on creation, and
// password-change propagation. Every error it returns is one of the
// user-visible kinds in the common package.
type Service struct {
	repo        Repository
	fallback    fallback.Repository
	cache       *cache.Cache
	useFallback bool
	logger      logging.Logger
}

func NewService(repo Repository, fb fallback.Repository, c *cache.Cache, cfg *config.Config, l logging.Logger) *Service {
	return &Service{
		repo:        repo,
		fallback:    fb,
		cache:       c,
		useFallback: cfg.UseFallback,
		logger:      l.With("module", "users"),
	}
}

// Authenticate resolves a user by its identifying fields and verifies the
// password. A failed primary lookup-and-verify for a non-OpenID login falls
// through to the legacy store (see userFromFallback). Any failure surfaces
// as ErrAuthFailed.
func (s *Service) Authenticate(ctx context.Context, q Query, password string) (*User, error) {

	if q.IsEmpty() {
		return nil, common.ErrAuthFailed
	}

	viaOpenID := q.OpenID != ""

	user, err := s.repo.FindOne(ctx, q)
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		s.logger.Error(ctx, "primary store lookup failed", "error", err)
		return nil, common.ErrAuthFailed
	}

	if user == nil || !s.VerifyPassword(ctx, user, password) {
		if viaOpenID {
			return nil, common.ErrAuthFailed
		}
		migrated, ferr := s.userFromFallback(ctx, q, password, user)
		if ferr != nil {
			return nil, common.ErrAuthFailed
		}
		user = migrated
	}

	return user, nil
}

// userFromFallback looks the login up in the legacy store and, on a
// verified match, repairs or creates the corresponding primary record so
// that subsequent logins never consult the legacy store again. Outside the
// migration window it reports not-found.
func (s *Service) userFromFallback(ctx context.Context, q Query, password string, existing *User) (*User, error) {

	if !s.useFallback {
		return nil, common.ErrNotFound
	}

	fq := fallback.Query{Username: q.Username, Email: q.Email, Phone: q.Phone}
	if fq.IsEmpty() {
		return nil, common.ErrNotFound
	}

	legacy, err := s.fallback.FindOne(ctx, fq)
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			s.logger.Error(ctx, "legacy store lookup failed", "error", err)
		}
		return nil, common.ErrNotFound
	}

	if !hashers.Verify(legacy.Password, password) {
		return nil, common.ErrAuthFailed
	}

	encoded, err := hashers.Encode(password)
	if err != nil {
		return nil, fmt.Errorf("encoding password: %w", err)
	}

	if existing != nil {
		// The primary record exists but its password did not match;
		// the verified legacy password wins.
		if err := s.repo.UpdatePassword(ctx, existing.ID, encoded); err != nil {
			return nil, err
		}
		existing.Password = encoded
		s.invalidateCache(ctx, existing.ID)
		return existing, nil
	}

	user := userFromLegacy(legacy)
	user.Password = encoded

	return s.repo.Create(ctx, user)
}

// Register creates a new primary account. During the migration window the
// legacy store is consulted first so that an unmigrated legacy identity
// cannot be shadowed, and the new account is mirrored back best-effort.
func (s *Service) Register(ctx context.Context, p CreateParams) (*User, error) {

	if p.OpenID != "" {
		if err := s.fillPlaceholders(&p); err != nil {
			s.logger.Error(ctx, "placeholder generation failed", "error", err)
			return nil, common.ErrValidationFailed
		}
	}

	if s.useFallback {
		fq := fallback.Query{Username: p.Username, Email: p.Email, Phone: p.Phone}
		if !fq.IsEmpty() {
			_, err := s.fallback.FindOne(ctx, fq)
			if err == nil {
				return nil, common.ErrUserExists
			}
			if !errors.Is(err, common.ErrNotFound) {
				s.logger.Warn(ctx, "legacy existence check failed", "error", err)
			}
		}
	}

	encoded, err := hashers.Encode(p.Password)
	if err != nil {
		s.logger.Error(ctx, "encoding password failed", "error", err)
		return nil, common.ErrValidationFailed
	}

	user := &User{
		ID:         uuid.NewString(),
		Username:   p.Username,
		Password:   encoded,
		Email:      p.Email,
		Phone:      p.Phone,
		OpenID:     p.OpenID,
		ScreenName: p.ScreenName,
		Gender:     ParseGender(p.Gender),
		AvatarURL:  p.AvatarURL,
		BirthDay:   ParseBirthDay(p.BirthDay),
		IsActive:   true,
		DateJoined: time.Now(),
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrUserExists) {
			return nil, common.ErrUserExists
		}
		s.logger.Error(ctx, "create user failed", "error", err)
		return nil, common.ErrValidationFailed
	}

	if s.useFallback {
		s.mirrorToFallback(ctx, created, p.Password)
	}

	return created, nil
}

// Get looks a user up by its opaque ID.
func (s *Service) Get(ctx context.Context, id string) (*User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			s.logger.Error(ctx, "primary store lookup failed", "id", id, "error", err)
		}
		return nil, common.ErrNotFound
	}
	return user, nil
}

// GetByUsername looks a user up by username (Basic authentication path).
func (s *Service) GetByUsername(ctx context.Context, username string) (*User, error) {
	user, err := s.repo.FindOne(ctx, Query{Username: username})
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			s.logger.Error(ctx, "primary store lookup failed", "username", username, "error", err)
		}
		return nil, common.ErrNotFound
	}
	return user, nil
}

// Update overwrites the mutable profile fields and invalidates the user's
// cache entry so the next hydration is fresh.
func (s *Service) Update(ctx context.Context, user *User, p UpdateParams) (*User, error) {

	user.ScreenName = p.ScreenName
	user.Gender = ParseGender(p.Gender)
	user.BirthDay = ParseBirthDay(p.BirthDay)
	user.AvatarURL = p.AvatarURL

	updated, err := s.repo.Update(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		s.logger.Error(ctx, "update user failed", "id", user.ID, "error", err)
		return nil, common.ErrValidationFailed
	}

	s.invalidateCache(ctx, updated.ID)

	return updated, nil
}

// SetPassword re-hashes and persists the password, invalidates the cache
// entry, and propagates the change to the legacy store best-effort.
func (s *Service) SetPassword(ctx context.Context, user *User, password string) error {

	encoded, err := hashers.Encode(password)
	if err != nil {
		s.logger.Error(ctx, "encoding password failed", "error", err)
		return common.ErrValidationFailed
	}

	if err := s.repo.UpdatePassword(ctx, user.ID, encoded); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrNotFound
		}
		s.logger.Error(ctx, "update password failed", "id", user.ID, "error", err)
		return common.ErrValidationFailed
	}
	user.Password = encoded

	s.invalidateCache(ctx, user.ID)

	if s.useFallback {
		s.mirrorPasswordToFallback(ctx, user.ID, password)
	}

	return nil
}

const defaultPerPage = 20

// Search returns a page of users matching the substring filters, most
// recently created first.
func (s *Service) Search(ctx context.Context, f SearchFilter, page, perPage int) ([]*User, error) {

	if page < 1 {
		page = 1
	}
	if perPage <= 0 {
		perPage = defaultPerPage
	}

	result, err := s.repo.Search(ctx, f, perPage, (page-1)*perPage)
	if err != nil {
		s.logger.Error(ctx, "search failed", "error", err)
		return nil, common.ErrValidationFailed
	}

	return result, nil
}

// VerifyPassword checks the plaintext against the user's stored hash. When
// a hash under an outdated scheme verifies, it is re-encoded with the
// current scheme and persisted best-effort: a failed save never fails the
// verification itself.
func (s *Service) VerifyPassword(ctx context.Context, user *User, password string) bool {

	if !hashers.Verify(user.Password, password) {
		return false
	}

	if hashers.NeedsUpdate(user.Password) {
		encoded, err := hashers.Encode(password)
		if err != nil {
			s.logger.Warn(ctx, "password re-encode failed", "id", user.ID, "error", err)
			return true
		}
		if err := s.repo.UpdatePassword(ctx, user.ID, encoded); err != nil {
			s.logger.Warn(ctx, "verify-time password migration failed", "id", user.ID, "error", err)
			return true
		}
		user.Password = encoded
	}

	return true
}

func (s *Service) fillPlaceholders(p *CreateParams) error {
	name, err := common.MakeRandHexString(8)
	if err != nil {
		return err
	}
	digits, err := common.MakeRandDigitString(8)
	if err != nil {
		return err
	}

	p.Username = "wx_" + name
	p.Email = "wx_" + name + "@placeholder.invalid"
	p.Phone = "119" + digits

	return nil
}

// mirrorToFallback writes a newly created account into the legacy store
// under its hash scheme. Failures are logged, never rolled back, never
// surfaced: the primary store is the source of truth going forward.
func (s *Service) mirrorToFallback(ctx context.Context, user *User, password string) {

	encoded, err := hashers.EncodeLegacy(password)
	if err != nil {
		s.logger.Warn(ctx, "legacy password encode failed", "id", user.ID, "error", err)
		return
	}

	legacy := &fallback.User{
		UUID:        user.ID,
		Username:    user.Username,
		Password:    encoded,
		Email:       user.Email,
		Phone:       user.Phone,
		Gender:      user.Gender,
		IsActive:    user.IsActive,
		IsStaff:     user.IsStaff,
		IsSuperuser: user.IsSuperuser,
		DateJoined:  user.DateJoined,
	}

	if err := s.fallback.Create(ctx, legacy); err != nil {
		s.logger.Warn(ctx, "sync user to fallback failed", "id", user.ID, "error", err)
	}
}

func (s *Service) mirrorPasswordToFallback(ctx context.Context, id, password string) {

	_, err := s.fallback.FindByUUID(ctx, id)
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			s.logger.Warn(ctx, "legacy store lookup failed", "id", id, "error", err)
		}
		return
	}

	encoded, err := hashers.EncodeLegacy(password)
	if err != nil {
		s.logger.Warn(ctx, "legacy password encode failed", "id", id, "error", err)
		return
	}

	if err := s.fallback.UpdatePassword(ctx, id, encoded); err != nil {
		s.logger.Warn(ctx, "sync password to fallback failed", "id", id, "error", err)
	}
}

func (s *Service) invalidateCache(ctx context.Context, id string) {
	s.cache.Del(ctx, common.UserCachePrefix+id)
}

// userFromLegacy builds a primary record from a legacy record's public
// projection. The legacy username doubles as the initial screen name.
func userFromLegacy(legacy *fallback.User) *User {
	return &User{
		ID:          legacy.UUID,
		Username:    legacy.Username,
		Email:       legacy.Email,
		Phone:       legacy.Phone,
		ScreenName:  legacy.Username,
		Gender:      legacy.Gender,
		IsActive:    legacy.IsActive,
		IsStaff:     legacy.IsStaff,
		IsSuperuser: legacy.IsSuperuser,
		DateJoined:  legacy.DateJoined,
	}
}

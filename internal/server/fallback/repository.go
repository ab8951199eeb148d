package fallback

import (
	"context"
)

type Repository interface {
	FindOne(ctx context.Context, q Query) (*User, error)
	FindByUUID(ctx context.Context, uuid string) (*User, error)
	Create(ctx context.Context, user *User) error
	UpdatePassword(ctx context.Context, uuid, encoded string) error
}

package users

import (
	"context"
)

// Query identifies a user by any combination of its unique fields. Empty
// fields are ignored; the provided fields are ANDed together.
type Query struct {
	ID       string
	Username string
	Email    string
	Phone    string
	OpenID   string
}

// IsEmpty reports whether no identifying field is set.
func (q Query) IsEmpty() bool {
	return q == Query{}
}

// SearchFilter holds substring filters for the paginated search. Empty
// fields are ignored; the provided fields are ANDed together.
type SearchFilter struct {
	ScreenName string
	Username   string
	Phone      string
	Email      string
}

type Repository interface {
	Create(ctx context.Context, user *User) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	FindOne(ctx context.Context, q Query) (*User, error)
	Update(ctx context.Context, user *User) (*User, error)
	UpdatePassword(ctx context.Context, id, encoded string) error
	Search(ctx context.Context, f SearchFilter, limit, offset int) ([]*User, error)
}

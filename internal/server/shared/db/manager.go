package db

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/accountsvc/internal/server/fallback"
	"github.com/dmitrijs2005/accountsvc/internal/server/users"
)

// RepositoryManager owns the store connections and hands out repositories.
// Fallback returns nil when no legacy store is configured.
type RepositoryManager interface {
	RunMigrations(context.Context) error
	Conn() *sql.DB
	Users() users.Repository
	Fallback() fallback.Repository
}

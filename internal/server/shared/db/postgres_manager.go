package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/dmitrijs2005/accountsvc/internal/server/fallback"
	"github.com/dmitrijs2005/accountsvc/internal/server/migrations"
	"github.com/dmitrijs2005/accountsvc/internal/server/users"
)

type PostgresRepositoryManager struct {
	db       *sql.DB
	users    users.Repository
	fallback fallback.Repository
}

func (m *PostgresRepositoryManager) Conn() *sql.DB {
	return m.db
}

func (m *PostgresRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *PostgresRepositoryManager) Fallback() fallback.Repository {
	return m.fallback
}

// RunMigrations applies the embedded goose migrations to the primary store.
// The legacy store is owned by another system and is never migrated here.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.UpContext(ctx, m.db, "."); err != nil {
		return err
	}

	return nil
}

// NewPostgresRepositoryManager opens the primary store, runs its migrations
// and, when fallbackDSN is set, opens the legacy store alongside it.
func NewPostgresRepositoryManager(dsn string, fallbackDSN string) (RepositoryManager, error) {

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	userRepo, err := users.NewPostgresRepository(db)
	if err != nil {
		return nil, fmt.Errorf("user repo creation error: %w", err)
	}

	m := &PostgresRepositoryManager{
		db:    db,
		users: userRepo,
	}

	if fallbackDSN != "" {
		fdb, err := sql.Open("pgx", fallbackDSN)
		if err != nil {
			return nil, fmt.Errorf("fallback db open error: %w", err)
		}

		fallbackRepo, err := fallback.NewPostgresRepository(fdb)
		if err != nil {
			return nil, fmt.Errorf("fallback repo creation error: %w", err)
		}
		m.fallback = fallbackRepo
	}

	err = m.RunMigrations(context.Background())
	if err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return m, nil
}

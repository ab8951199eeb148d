package fallback

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/accountsvc/internal/common"
	"github.com/dmitrijs2005/accountsvc/internal/dbx"
)

const legacyColumns = `uuid, username, password, email, phone, gender,
	is_active, is_staff, is_superuser, date_joined`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) (*PostgresRepository, error) {
	return &PostgresRepository{db: db}, nil
}

func (r *PostgresRepository) FindOne(ctx context.Context, q Query) (*User, error) {

	var where []string
	var args []any

	add := func(column, value string) {
		if value == "" {
			return
		}
		args = append(args, value)
		where = append(where, column+" = $"+strconv.Itoa(len(args)))
	}

	add("username", q.Username)
	add("email", q.Email)
	add("phone", q.Phone)

	if len(where) == 0 {
		return nil, common.ErrNotFound
	}

	query := fmt.Sprintf(
		`SELECT %s FROM accounts_customuser WHERE %s LIMIT 1`,
		legacyColumns, strings.Join(where, " AND "),
	)

	return r.scanOne(r.db.QueryRowContext(ctx, query, args...))
}

func (r *PostgresRepository) FindByUUID(ctx context.Context, uuid string) (*User, error) {

	query := fmt.Sprintf(
		`SELECT %s FROM accounts_customuser WHERE uuid = $1 LIMIT 1`,
		legacyColumns,
	)

	return r.scanOne(r.db.QueryRowContext(ctx, query, StripUUID(uuid)))
}

func (r *PostgresRepository) Create(ctx context.Context, user *User) error {

	query :=
		`INSERT INTO accounts_customuser (uuid, username, password, email,
		     phone, gender, is_active, is_staff, is_superuser, date_joined)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 `

	_, err := r.db.ExecContext(ctx, query,
		StripUUID(user.UUID), user.Username, user.Password, user.Email,
		nullString(user.Phone), user.Gender, user.IsActive, user.IsStaff,
		user.IsSuperuser, user.DateJoined,
	)
	if err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}

	return nil
}

func (r *PostgresRepository) UpdatePassword(ctx context.Context, uuid, encoded string) error {

	query := `UPDATE accounts_customuser SET password = $2 WHERE uuid = $1`

	result, err := r.db.ExecContext(ctx, query, StripUUID(uuid), encoded)
	if err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}

	return nil
}

func (r *PostgresRepository) scanOne(row *sql.Row) (*User, error) {
	user := &User{}
	var phone sql.NullString

	err := row.Scan(
		&user.UUID, &user.Username, &user.Password, &user.Email, &phone,
		&user.Gender, &user.IsActive, &user.IsStaff, &user.IsSuperuser,
		&user.DateJoined,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	user.UUID = NormalizeUUID(user.UUID)
	user.Phone = phone.String

	return user, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

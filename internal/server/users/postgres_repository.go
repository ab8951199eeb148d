package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrijs2005/accountsvc/internal/common"
	"github.com/dmitrijs2005/accountsvc/internal/dbx"
)

const uniqueViolation = "23505"

const userColumns = `id, username, password, email, phone, openid, screen_name,
	gender, avatar_url, birth_day, is_active, is_staff, is_superuser,
	date_joined, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) (*PostgresRepository, error) {
	return &PostgresRepository{db: db}, nil
}

func (r *PostgresRepository) Create(ctx context.Context, user *User) (*User, error) {

	query :=
		`INSERT INTO users (id, username, password, email, phone, openid,
		     screen_name, gender, avatar_url, birth_day, is_active, is_staff,
		     is_superuser, date_joined, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, now(), now())
		 RETURNING created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.ID, user.Username, user.Password, user.Email,
		nullString(user.Phone), nullString(user.OpenID),
		user.ScreenName, user.Gender, user.AvatarURL, user.BirthDay,
		user.IsActive, user.IsStaff, user.IsSuperuser, user.DateJoined,
	).Scan(&user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, common.ErrUserExists
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*User, error) {
	return r.FindOne(ctx, Query{ID: id})
}

func (r *PostgresRepository) FindOne(ctx context.Context, q Query) (*User, error) {

	where, args := buildWhere(q)
	if len(where) == 0 {
		return nil, common.ErrNotFound
	}

	query := fmt.Sprintf(
		`SELECT %s FROM users WHERE %s LIMIT 1`,
		userColumns, strings.Join(where, " AND "),
	)

	user, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) Update(ctx context.Context, user *User) (*User, error) {

	query :=
		`UPDATE users
		 SET screen_name = $2, gender = $3, avatar_url = $4, birth_day = $5,
		     is_active = $6, updated_at = now()
		 WHERE id = $1
		 RETURNING updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.ID, user.ScreenName, user.Gender, user.AvatarURL, user.BirthDay,
		user.IsActive,
	).Scan(&user.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) UpdatePassword(ctx context.Context, id, encoded string) error {

	query := `UPDATE users SET password = $2, updated_at = now() WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, encoded)
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

func (r *PostgresRepository) Search(ctx context.Context, f SearchFilter, limit, offset int) ([]*User, error) {

	where := []string{"1=1"}
	args := []any{}

	like := func(column, value string) {
		if value == "" {
			return
		}
		args = append(args, "%"+value+"%")
		where = append(where, column+" ILIKE $"+strconv.Itoa(len(args)))
	}

	like("screen_name", f.ScreenName)
	like("username", f.Username)
	like("phone", f.Phone)
	like("email", f.Email)

	args = append(args, limit, offset)

	query := fmt.Sprintf(
		`SELECT %s FROM users WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		userColumns, strings.Join(where, " AND "), len(args)-1, len(args),
	)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	defer rows.Close()

	var result []*User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		result = append(result, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	return result, nil
}

func buildWhere(q Query) ([]string, []any) {
	var where []string
	var args []any

	add := func(column, value string) {
		if value == "" {
			return
		}
		args = append(args, value)
		where = append(where, column+" = $"+strconv.Itoa(len(args)))
	}

	add("id", q.ID)
	add("username", q.Username)
	add("email", q.Email)
	add("phone", q.Phone)
	add("openid", q.OpenID)

	return where, args
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*User, error) {
	user := &User{}
	var phone, openid sql.NullString
	var birthDay sql.NullTime

	err := row.Scan(
		&user.ID, &user.Username, &user.Password, &user.Email,
		&phone, &openid, &user.ScreenName, &user.Gender, &user.AvatarURL,
		&birthDay, &user.IsActive, &user.IsStaff, &user.IsSuperuser,
		&user.DateJoined, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	user.Phone = phone.String
	user.OpenID = openid.String
	if birthDay.Valid {
		t := birthDay.Time
		user.BirthDay = &t
	}

	return user, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

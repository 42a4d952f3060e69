// Package postgres implements the user directory and credential store on
// PostgreSQL. Uniqueness is enforced by constraints, so concurrent writers
// race safely at the database instead of behind a process-local lock.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-blog-admin/internal/model"
)

const uniqueViolation = "23505"

type UserDirectory struct {
	pool *pgxpool.Pool
}

func NewUserDirectory(pool *pgxpool.Pool) *UserDirectory {
	return &UserDirectory{pool: pool}
}

const userColumns = `id, username, email, role, created_at, last_login`

func scanUser(row pgx.Row) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.Role, &u.CreatedAt, &u.LastLogin)
	return u, err
}

func (d *UserDirectory) FindByUsernameOrEmail(ctx context.Context, s string) (model.User, error) {
	u, err := scanUser(d.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = $1 OR email = $1`, s))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.User{}, model.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, &model.StorageError{Op: "find user", Err: err}
	}
	return u, nil
}

func (d *UserDirectory) FindByID(ctx context.Context, id string) (model.User, error) {
	u, err := scanUser(d.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.User{}, model.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, &model.StorageError{Op: "find user by id", Err: err}
	}
	return u, nil
}

func (d *UserDirectory) Insert(ctx context.Context, u model.User) error {
	_, err := d.pool.Exec(ctx,
		`INSERT INTO users (id, username, email, role, created_at, last_login)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		u.ID, u.Username, u.Email, u.Role, u.CreatedAt, u.LastLogin)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return model.ErrUserExists
	}
	if err != nil {
		return &model.StorageError{Op: "insert user", Err: err}
	}
	return nil
}

func (d *UserDirectory) Remove(ctx context.Context, id string) error {
	tag, err := d.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return &model.StorageError{Op: "remove user", Err: err}
	}
	if tag.RowsAffected() == 0 {
		return model.ErrUserNotFound
	}
	return nil
}

func (d *UserDirectory) List(ctx context.Context) ([]model.User, error) {
	rows, err := d.pool.Query(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY username`)
	if err != nil {
		return nil, &model.StorageError{Op: "list users", Err: err}
	}
	defer rows.Close()

	users := make([]model.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, &model.StorageError{Op: "scan user", Err: err}
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, &model.StorageError{Op: "list users", Err: err}
	}
	return users, nil
}

func (d *UserDirectory) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	tag, err := d.pool.Exec(ctx,
		`UPDATE users SET last_login = $2 WHERE id = $1`, id, at)
	if err != nil {
		return &model.StorageError{Op: "touch last login", Err: err}
	}
	if tag.RowsAffected() == 0 {
		return model.ErrUserNotFound
	}
	return nil
}

func (d *UserDirectory) CountAdmins(ctx context.Context) (int, error) {
	var count int
	err := d.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM users WHERE role = $1`, model.RoleAdmin).Scan(&count)
	if err != nil {
		return 0, &model.StorageError{Op: "count admins", Err: fmt.Errorf("count admins: %w", err)}
	}
	return count, nil
}

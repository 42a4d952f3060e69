package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-blog-admin/internal/model"
)

type CredentialStore struct {
	pool *pgxpool.Pool
}

func NewCredentialStore(pool *pgxpool.Pool) *CredentialStore {
	return &CredentialStore{pool: pool}
}

func (s *CredentialStore) Get(ctx context.Context, userID string) (string, bool, error) {
	var hash string
	err := s.pool.QueryRow(ctx,
		`SELECT password_hash FROM credentials WHERE user_id = $1`, userID).Scan(&hash)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, &model.StorageError{Op: "get credential", Err: err}
	}
	return hash, true, nil
}

func (s *CredentialStore) Set(ctx context.Context, userID string, passwordHash string) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO credentials (user_id, password_hash) VALUES ($1, $2)
		 ON CONFLICT (user_id) DO UPDATE SET password_hash = EXCLUDED.password_hash`,
		userID, passwordHash)
	if err != nil {
		return &model.StorageError{Op: "set credential", Err: err}
	}
	return nil
}

func (s *CredentialStore) Remove(ctx context.Context, userID string) error {
	_, err := s.pool.Exec(ctx,
		`DELETE FROM credentials WHERE user_id = $1`, userID)
	if err != nil {
		return &model.StorageError{Op: "remove credential", Err: err}
	}
	return nil
}

package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TokensStore manages opaque bearer tokens. Only the sha256 of a token
// is persisted; the plain token is returned once at login and never
// stored. Tokens have no expiry.
type TokensStore struct {
	db *pgxpool.Pool
}

func hashToken(plain string) string {
	hash := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(hash[:])
}

// Create issues a new token bound to the user and returns the plain text.
func (s *TokensStore) Create(ctx context.Context, userID int64) (string, error) {
	plain := uuid.New().String()

	query := `INSERT INTO auth_tokens (token_hash, user_id) VALUES ($1, $2)`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	if _, err := s.db.Exec(ctx, query, hashToken(plain), userID); err != nil {
		return "", err
	}

	return plain, nil
}

// GetUser resolves a plain bearer token to its user.
func (s *TokensStore) GetUser(ctx context.Context, plain string) (*User, error) {
	query := `
		SELECT u.id, u.username, u.password, u.is_staff, u.created_at
		FROM users u
		JOIN auth_tokens t ON t.user_id = u.id
		WHERE t.token_hash = $1
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	user := &User{}
	err := s.db.QueryRow(ctx, query, hashToken(plain)).Scan(
		&user.ID,
		&user.Username,
		&user.Password.hash,
		&user.IsStaff,
		&user.CreatedAt,
	)
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return nil, ErrNotFound
		default:
			return nil, err
		}
	}

	return user, nil
}

package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Profile struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Bio       string    `json:"bio"`
	Location  string    `json:"location"`
	Website   string    `json:"website"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ProfilesStore struct {
	db *pgxpool.Pool
}

// GetOrCreate returns the user's profile, inserting an empty one on
// first access. Profiles are unique per user.
func (s *ProfilesStore) GetOrCreate(ctx context.Context, userID int64) (*Profile, error) {
	insert := `INSERT INTO profiles (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	if _, err := s.db.Exec(ctx, insert, userID); err != nil {
		return nil, err
	}

	query := `
		SELECT id, user_id, bio, location, website, created_at, updated_at
		FROM profiles
		WHERE user_id = $1
	`

	p := &Profile{}
	err := s.db.QueryRow(ctx, query, userID).Scan(
		&p.ID, &p.UserID, &p.Bio, &p.Location, &p.Website, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return nil, ErrNotFound
		default:
			return nil, err
		}
	}
	return p, nil
}

func (s *ProfilesStore) Update(ctx context.Context, profile *Profile) error {
	query := `
		UPDATE profiles
		SET bio = $1, location = $2, website = $3, updated_at = NOW()
		WHERE id = $4
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	res, err := s.db.Exec(ctx, query, profile.Bio, profile.Location, profile.Website, profile.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *ProfilesStore) List(ctx context.Context, limit, offset int) ([]Profile, int, error) {
	query := `
		SELECT id, user_id, bio, location, website, created_at, updated_at, COUNT(*) OVER() AS total
		FROM profiles
		ORDER BY id
		LIMIT $1 OFFSET $2
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := s.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	profiles := []Profile{}
	total := 0
	for rows.Next() {
		var p Profile
		if err := rows.Scan(
			&p.ID, &p.UserID, &p.Bio, &p.Location, &p.Website,
			&p.CreatedAt, &p.UpdatedAt, &total,
		); err != nil {
			return nil, 0, err
		}
		profiles = append(profiles, p)
	}
	return profiles, total, rows.Err()
}

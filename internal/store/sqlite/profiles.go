package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/accsetupsviewer/server/internal/domain"
	"github.com/accsetupsviewer/server/internal/store"
)

// GetProfile retrieves the profile of a user.
// Returns store.ErrNotFound if the user has not chosen a nickname yet.
func (s *Store) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	var (
		p         domain.Profile
		createdAt string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT user_id, nickname, created_at FROM user_profiles WHERE user_id = ?`, userID).
		Scan(&p.UserID, &p.Nickname, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if p.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateProfile stores a nickname. Profiles are insert-only: a second call for the
// same user returns store.ErrAlreadyExists.
func (s *Store) CreateProfile(ctx context.Context, profile *domain.Profile) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO user_profiles (user_id, nickname, created_at) VALUES (?, ?, ?)`,
		profile.UserID, profile.Nickname, formatTime(profile.CreatedAt))
	if isUniqueViolation(err) {
		return store.ErrAlreadyExists
	}
	return err
}

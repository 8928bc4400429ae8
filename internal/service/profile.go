package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/accsetupsviewer/server/internal/domain"
	domainerrors "github.com/accsetupsviewer/server/internal/errors"
	"github.com/accsetupsviewer/server/internal/normalize"
	"github.com/accsetupsviewer/server/internal/store"
	"github.com/accsetupsviewer/server/internal/validation"
)

// ProfileService manages the public nickname of a user.
type ProfileService struct {
	store     store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewProfileService creates a new profile service.
func NewProfileService(store store.Store, validator *validation.Validator, logger *slog.Logger) *ProfileService {
	return &ProfileService{store: store, validator: validator, logger: logger}
}

// SetNicknameRequest is the payload for choosing a nickname.
type SetNicknameRequest struct {
	Nickname string `json:"nickname" validate:"max=32"`
}

// GetProfile returns the user's profile. A user without a nickname gets an empty, unlocked
// profile rather than an error.
func (s *ProfileService) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	profile, err := s.store.GetProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return &domain.Profile{UserID: userID}, nil
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return profile, nil
}

// SetNickname stores the nickname. It can be set only once.
func (s *ProfileService) SetNickname(ctx context.Context, userID string, req SetNicknameRequest) (*domain.Profile, error) {
	req.Nickname = normalize.Notes(req.Nickname)
	if req.Nickname == "" {
		return nil, domainerrors.Validation("Nickname is required.")
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	profile := &domain.Profile{
		UserID:    userID,
		Nickname:  req.Nickname,
		CreatedAt: time.Now(),
	}
	if err := s.store.CreateProfile(ctx, profile); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.Conflict("Nickname can be set only once.")
		}
		return nil, fmt.Errorf("create profile: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("nickname set", "user_id", userID)
	}
	return profile, nil
}

// RequireNickname returns a NicknameRequired error unless the user has chosen a nickname.
func (s *ProfileService) RequireNickname(ctx context.Context, userID string) error {
	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return err
	}
	if !profile.Locked() {
		return domainerrors.NicknameRequired("Set your nickname to unlock dashboard content.")
	}
	return nil
}

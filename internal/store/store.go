// Package store defines the persistence interface for accounts and the dashboard.
package store

import (
	"context"

	"github.com/accsetupsviewer/server/internal/domain"
)

// DashboardListLimit is how many rows of each kind the dashboard shows.
const DashboardListLimit = 20

// Store defines the interface for all persistence operations.
type Store interface {
	// Lifecycle
	Close() error
	Ping(ctx context.Context) error

	// Users
	CreateUser(ctx context.Context, user *domain.User) error
	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateUser(ctx context.Context, user *domain.User) error

	// Auth sessions
	CreateSession(ctx context.Context, session *domain.Session) error
	GetSession(ctx context.Context, id string) (*domain.Session, error)
	GetSessionByRefreshToken(ctx context.Context, tokenHash string) (*domain.Session, error)
	UpdateSession(ctx context.Context, session *domain.Session) error
	DeleteSession(ctx context.Context, id string) error
	DeleteExpiredSessions(ctx context.Context) (int, error)

	// Profiles
	GetProfile(ctx context.Context, userID string) (*domain.Profile, error)
	CreateProfile(ctx context.Context, profile *domain.Profile) error

	// Manual setups
	CreateManualSetup(ctx context.Context, setup *domain.ManualSetup) error
	ListManualSetups(ctx context.Context, userID string, limit int) ([]*domain.ManualSetup, error)
	DeleteManualSetup(ctx context.Context, userID, id string) error

	// Lap times
	CreateLapTime(ctx context.Context, lap *domain.LapTime) error
	ListLapTimes(ctx context.Context, userID string, limit int) ([]*domain.LapTime, error)
	DeleteLapTime(ctx context.Context, userID, id string) error
}

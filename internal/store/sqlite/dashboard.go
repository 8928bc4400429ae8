package sqlite

import (
	"context"
	"database/sql"

	"github.com/accsetupsviewer/server/internal/domain"
	"github.com/accsetupsviewer/server/internal/store"
)

const manualSetupColumns = `id, user_id, car_key, track_key, setup_name, is_private, notes, json_data, created_at`

func scanManualSetup(scanner interface{ Scan(dest ...any) error }) (*domain.ManualSetup, error) {
	var (
		m         domain.ManualSetup
		private   int
		notes     sql.NullString
		createdAt string
	)
	err := scanner.Scan(&m.ID, &m.UserID, &m.CarKey, &m.TrackKey, &m.Name, &private, &notes, &m.JSONData, &createdAt)
	if err != nil {
		return nil, err
	}
	m.Private = private != 0
	m.Notes = notes.String
	if m.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	return &m, nil
}

// CreateManualSetup inserts a pasted setup.
func (s *Store) CreateManualSetup(ctx context.Context, setup *domain.ManualSetup) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO setups_manual (`+manualSetupColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		setup.ID,
		setup.UserID,
		setup.CarKey,
		setup.TrackKey,
		setup.Name,
		boolToInt(setup.Private),
		nullString(setup.Notes),
		setup.JSONData,
		formatTime(setup.CreatedAt),
	)
	if isUniqueViolation(err) {
		return store.ErrAlreadyExists
	}
	return err
}

// ListManualSetups returns the most recent setups of a user, newest first.
func (s *Store) ListManualSetups(ctx context.Context, userID string, limit int) ([]*domain.ManualSetup, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+manualSetupColumns+` FROM setups_manual
		WHERE user_id = ? ORDER BY created_at DESC, id DESC LIMIT ?`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	setups := make([]*domain.ManualSetup, 0, limit)
	for rows.Next() {
		m, err := scanManualSetup(rows)
		if err != nil {
			return nil, err
		}
		setups = append(setups, m)
	}
	return setups, rows.Err()
}

// DeleteManualSetup removes a setup owned by userID.
// Returns store.ErrNotFound if no such setup belongs to the user.
func (s *Store) DeleteManualSetup(ctx context.Context, userID, id string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM setups_manual WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

const lapTimeColumns = `id, user_id, car_key, track_key, lap_time_ms, is_private, notes, created_at`

func scanLapTime(scanner interface{ Scan(dest ...any) error }) (*domain.LapTime, error) {
	var (
		l         domain.LapTime
		private   int
		notes     sql.NullString
		createdAt string
	)
	err := scanner.Scan(&l.ID, &l.UserID, &l.CarKey, &l.TrackKey, &l.LapTimeMs, &private, &notes, &createdAt)
	if err != nil {
		return nil, err
	}
	l.Private = private != 0
	l.Notes = notes.String
	if l.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	return &l, nil
}

// CreateLapTime inserts a recorded lap.
func (s *Store) CreateLapTime(ctx context.Context, lap *domain.LapTime) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO lap_times (`+lapTimeColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		lap.ID,
		lap.UserID,
		lap.CarKey,
		lap.TrackKey,
		lap.LapTimeMs,
		boolToInt(lap.Private),
		nullString(lap.Notes),
		formatTime(lap.CreatedAt),
	)
	if isUniqueViolation(err) {
		return store.ErrAlreadyExists
	}
	return err
}

// ListLapTimes returns the most recent laps of a user, newest first.
func (s *Store) ListLapTimes(ctx context.Context, userID string, limit int) ([]*domain.LapTime, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+lapTimeColumns+` FROM lap_times
		WHERE user_id = ? ORDER BY created_at DESC, id DESC LIMIT ?`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	laps := make([]*domain.LapTime, 0, limit)
	for rows.Next() {
		l, err := scanLapTime(rows)
		if err != nil {
			return nil, err
		}
		laps = append(laps, l)
	}
	return laps, rows.Err()
}

// DeleteLapTime removes a lap owned by userID.
// Returns store.ErrNotFound if no such lap belongs to the user.
func (s *Store) DeleteLapTime(ctx context.Context, userID, id string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM lap_times WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

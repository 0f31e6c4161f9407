package store

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Session is one run of the interaction loop.
type Session struct {
	ID        string
	Profile   string
	Source    string
	// Settings is the session configuration as JSON.
	Settings  string
	Frames    int
	StartedAt time.Time
	// EndedAt is zero while the session is running.
	EndedAt   time.Time
}

// SessionRepository provides access to journaled sessions.
type SessionRepository struct {
	db *sql.DB
}

// Sessions returns the session repository for this store.
func (s *Store) Sessions() *SessionRepository {
	return &SessionRepository{db: s.db}
}

// Start inserts a running session with a fresh ID. An empty settings string
// is stored as an empty JSON object.
func (r *SessionRepository) Start(profile, source, settings string, at time.Time) (*Session, error) {
	if settings == "" {
		settings = "{}"
	}
	sess := &Session{
		ID:        uuid.New().String(),
		Profile:   profile,
		Source:    source,
		Settings:  settings,
		StartedAt: at,
	}

	_, err := r.db.Exec(
		`INSERT INTO sessions (id, profile, source, settings, started_at) VALUES (?, ?, ?, ?, ?)`,
		sess.ID, sess.Profile, sess.Source, sess.Settings, sess.StartedAt,
	)
	if err != nil {
		return nil, err
	}

	return sess, nil
}

// End records the end time and frame count of a session.
func (r *SessionRepository) End(id string, frames int, at time.Time) error {
	result, err := r.db.Exec(
		`UPDATE sessions SET frames = ?, ended_at = ? WHERE id = ?`,
		frames, at, id,
	)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByID retrieves a session by its ID.
func (r *SessionRepository) GetByID(id string) (*Session, error) {
	row := r.db.QueryRow(
		`SELECT id, profile, source, settings, frames, started_at, ended_at FROM sessions WHERE id = ?`,
		id,
	)

	sess, err := scanSession(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return sess, nil
}

// List retrieves all sessions, newest first.
func (r *SessionRepository) List() ([]*Session, error) {
	rows, err := r.db.Query(
		`SELECT id, profile, source, settings, frames, started_at, ended_at FROM sessions ORDER BY started_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, sess)
	}

	return sessions, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (*Session, error) {
	sess := &Session{}
	var ended sql.NullTime

	if err := row.Scan(&sess.ID, &sess.Profile, &sess.Source, &sess.Settings, &sess.Frames, &sess.StartedAt, &ended); err != nil {
		return nil, err
	}
	if ended.Valid {
		sess.EndedAt = ended.Time
	}
	return sess, nil
}

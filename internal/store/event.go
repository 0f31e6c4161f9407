package store

import (
	"database/sql"
	"time"
)

// EventKind names a journaled occurrence.
type EventKind string

const (
	EventModeOn         EventKind = "mode_on"
	EventModeOff        EventKind = "mode_off"
	EventClick          EventKind = "click"
	EventClosePrompt    EventKind = "close_prompt"
	EventCloseConfirmed EventKind = "close_confirmed"
	EventCloseDeclined  EventKind = "close_declined"
	EventSnapshot       EventKind = "snapshot"
)

// Event is a single journal entry within a session.
type Event struct {
	ID        int64
	SessionID string
	Kind      EventKind
	Slot      int
	Detail    string
	At        time.Time
}

// EventRepository provides access to journaled events.
type EventRepository struct {
	db *sql.DB
}

// Events returns the event repository for this store.
func (s *Store) Events() *EventRepository {
	return &EventRepository{db: s.db}
}

// Record inserts e and sets its ID. A zero At is stamped with the current time.
func (r *EventRepository) Record(e *Event) error {
	if e.At.IsZero() {
		e.At = time.Now()
	}

	result, err := r.db.Exec(
		`INSERT INTO events (session_id, kind, slot, detail, at) VALUES (?, ?, ?, ?, ?)`,
		e.SessionID, string(e.Kind), e.Slot, e.Detail, e.At,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = id
	return nil
}

// ListBySession returns a session's events in insertion order.
func (r *EventRepository) ListBySession(sessionID string) ([]*Event, error) {
	rows, err := r.db.Query(
		`SELECT id, session_id, kind, slot, detail, at FROM events WHERE session_id = ? ORDER BY id`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		e := &Event{}
		var kind string
		if err := rows.Scan(&e.ID, &e.SessionID, &kind, &e.Slot, &e.Detail, &e.At); err != nil {
			return nil, err
		}
		e.Kind = EventKind(kind)
		events = append(events, e)
	}

	return events, rows.Err()
}

// CountByKind tallies a session's events by kind.
func (r *EventRepository) CountByKind(sessionID string) (map[EventKind]int, error) {
	rows, err := r.db.Query(
		`SELECT kind, COUNT(*) FROM events WHERE session_id = ? GROUP BY kind`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[EventKind]int)
	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, err
		}
		counts[EventKind(kind)] = n
	}

	return counts, rows.Err()
}

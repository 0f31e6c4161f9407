package app

import (
	"log"
	"time"

	"github.com/ayusman/mudra/internal/store"
)

// Journal records session events.
type Journal interface {
	Record(kind store.EventKind, slot int, detail string, at time.Time)
}

// storeJournal writes events for one session to the SQLite journal.
type storeJournal struct {
	events    *store.EventRepository
	sessionID string
}

func (j *storeJournal) Record(kind store.EventKind, slot int, detail string, at time.Time) {
	err := j.events.Record(&store.Event{
		SessionID: j.sessionID,
		Kind:      kind,
		Slot:      slot,
		Detail:    detail,
		At:        at,
	})
	if err != nil {
		log.Printf("Failed to journal %s event: %v", kind, err)
	}
}

type nopJournal struct{}

func (nopJournal) Record(store.EventKind, int, string, time.Time) {}

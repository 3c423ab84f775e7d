package store

import (
	"context"
	"fmt"

	"eventhub-backend/internal/database"
	"eventhub-backend/internal/notify"
)

// EventStore answers the attendance queries the notification layer
// depends on. It owns the "active, now-or-future" filter; the deriver
// trusts it but still tolerates stale rows.
type EventStore struct {
	db *database.Database
}

func NewEventStore(db *database.Database) *EventStore {
	return &EventStore{db: db}
}

// UpcomingEventsForUser returns the events the user is registered for,
// filtered to active events with a now-or-future date, ordered by event
// date ascending.
func (s *EventStore) UpcomingEventsForUser(ctx context.Context, userID int64) ([]notify.CandidateEvent, error) {
	query := `
		SELECT e.id, e.title, e.date, e.location
		FROM event_attendance ea
		JOIN events e ON ea.event_id = e.id
		WHERE ea.user_id = $1 AND e.is_active = TRUE AND e.date >= NOW()
		ORDER BY e.date ASC
	`

	rows, err := s.db.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch upcoming events: %w", err)
	}
	defer rows.Close()

	var events []notify.CandidateEvent
	for rows.Next() {
		var event notify.CandidateEvent
		if err := rows.Scan(&event.ID, &event.Title, &event.Date, &event.Location); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

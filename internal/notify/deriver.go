package notify

import (
	"errors"
	"fmt"
	"time"
)

// Notification types.
const (
	TypeReminder = "reminder"
	TypeUpcoming = "upcoming"
)

// ErrMalformedEvent is returned by Derive when every candidate event
// was missing required fields.
var ErrMalformedEvent = errors.New("malformed event data")

// CandidateEvent is an event a user is registered to attend, already
// filtered by the storage layer to active events with a now-or-future
// date.
type CandidateEvent struct {
	ID       int64     `json:"id"`
	Title    string    `json:"title"`
	Date     time.Time `json:"date"`
	Location string    `json:"location"`
}

// NotificationRecord is a derived notification. Records are computed on
// demand and never stored; only their read state survives the request
// (see ReadState).
type NotificationRecord struct {
	NotificationID   string    `json:"notification_id"`
	EventID          int64     `json:"event_id"`
	EventTitle       string    `json:"event_title"`
	EventDate        time.Time `json:"event_date"`
	EventLocation    string    `json:"event_location"`
	NotificationType string    `json:"notification_type"`
	Message          string    `json:"message"`
	DaysUntilEvent   *int      `json:"days_until_event"`
	Open             int       `json:"open"`
	CreatedAt        time.Time `json:"created_at"`
}

// ReadChecker is the read-only view of the read-state tracker the
// deriver needs to stamp records as read or unread.
type ReadChecker interface {
	IsRead(userID int64, notificationID string) bool
}

// Deriver computes notification records from a user's candidate events.
// It performs no I/O and never mutates read state.
type Deriver struct {
	reads ReadChecker

	// Now is the clock used for classification and for the date segment
	// of notification IDs. Tests override it to pin the derivation day.
	Now func() time.Time
}

func NewDeriver(reads ReadChecker) *Deriver {
	return &Deriver{
		reads: reads,
		Now:   time.Now,
	}
}

// Derive builds one notification per qualifying candidate event.
//
// Events starting within 24 hours become reminders, events further out
// become upcoming notices, and events already in the past produce
// nothing (the storage filter should exclude them, but a stale read is
// tolerated rather than faulted). Candidates missing a title, location
// or date are skipped; Derive returns ErrMalformedEvent only when every
// candidate was malformed, so partial results survive bad rows.
//
// Input ordering is preserved. Callers are expected to pre-sort by
// event date ascending.
func (d *Deriver) Derive(userID int64, events []CandidateEvent) ([]NotificationRecord, error) {
	now := d.Now()

	var records []NotificationRecord
	malformed := 0

	for _, event := range events {
		if event.Title == "" || event.Location == "" || event.Date.IsZero() {
			malformed++
			continue
		}

		hoursUntil := event.Date.Sub(now).Hours()
		if hoursUntil < 0 {
			continue
		}

		if hoursUntil <= 24 {
			// At exactly the 24-hour boundary the event counts as
			// next-day, hence 1 rather than 0.
			days := 0
			if hoursUntil >= 24 {
				days = 1
			}
			message := fmt.Sprintf("Reminder! The event '%s' starts at %s in %s",
				event.Title, event.Date.Format("15:04"), event.Location)
			records = append(records, d.newRecord(userID, event, TypeReminder, message, days, now))
			continue
		}

		daysUntil := int(hoursUntil / 24)
		if daysUntil > 0 {
			message := fmt.Sprintf("Your attendance is confirmed for the event '%s' on %s",
				event.Title, event.Date.Format("02/01/2006"))
			records = append(records, d.newRecord(userID, event, TypeUpcoming, message, daysUntil, now))
		}
	}

	if malformed > 0 && malformed == len(events) {
		return nil, ErrMalformedEvent
	}
	return records, nil
}

func (d *Deriver) newRecord(userID int64, event CandidateEvent, notificationType, message string, daysUntil int, now time.Time) NotificationRecord {
	notificationID := NotificationID(userID, event.ID, notificationType, now)

	open := 1
	if d.reads.IsRead(userID, notificationID) {
		open = 0
	}

	return NotificationRecord{
		NotificationID:   notificationID,
		EventID:          event.ID,
		EventTitle:       event.Title,
		EventDate:        event.Date,
		EventLocation:    event.Location,
		NotificationType: notificationType,
		Message:          message,
		DaysUntilEvent:   &daysUntil,
		Open:             open,
		CreatedAt:        now,
	}
}

package notify

import (
	"errors"
	"testing"
	"time"
)

var derivedAt = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestDeriver(tracker *ReadState) *Deriver {
	d := NewDeriver(tracker)
	d.Now = func() time.Time { return derivedAt }
	return d
}

func TestDeriveReminderWithin24Hours(t *testing.T) {
	d := newTestDeriver(NewReadState())

	events := []CandidateEvent{
		{ID: 42, Title: "Launch", Date: derivedAt.Add(10 * time.Hour), Location: "Main Hall"},
	}

	records, err := d.Derive(7, events)
	if err != nil {
		t.Fatalf("Derive returned error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}

	record := records[0]
	if record.NotificationID != "7_42_reminder_20250601" {
		t.Errorf("Unexpected notification ID: %s", record.NotificationID)
	}
	if record.NotificationType != TypeReminder {
		t.Errorf("Expected reminder, got %s", record.NotificationType)
	}
	if record.DaysUntilEvent == nil || *record.DaysUntilEvent != 0 {
		t.Errorf("Expected days_until_event 0, got %v", record.DaysUntilEvent)
	}
	if record.Open != 1 {
		t.Errorf("Expected open 1, got %d", record.Open)
	}
	if record.EventTitle != "Launch" || record.EventLocation != "Main Hall" {
		t.Errorf("Event fields not copied: %+v", record)
	}
}

func TestDeriveReminderAtExactly24Hours(t *testing.T) {
	d := newTestDeriver(NewReadState())

	events := []CandidateEvent{
		{ID: 1, Title: "Boundary", Date: derivedAt.Add(24 * time.Hour), Location: "Room A"},
	}

	records, err := d.Derive(3, events)
	if err != nil {
		t.Fatalf("Derive returned error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}
	if records[0].NotificationType != TypeReminder {
		t.Errorf("Expected reminder at the 24h boundary, got %s", records[0].NotificationType)
	}
	if *records[0].DaysUntilEvent != 1 {
		t.Errorf("Expected days_until_event 1 at the boundary, got %d", *records[0].DaysUntilEvent)
	}
}

func TestDeriveUpcomingBeyond24Hours(t *testing.T) {
	d := newTestDeriver(NewReadState())

	tests := []struct {
		hours    time.Duration
		wantDays int
	}{
		{30 * time.Hour, 1},
		{72 * time.Hour, 3},
		{100 * time.Hour, 4},
	}

	for _, tt := range tests {
		events := []CandidateEvent{
			{ID: 9, Title: "Conference", Date: derivedAt.Add(tt.hours), Location: "Center"},
		}
		records, err := d.Derive(2, events)
		if err != nil {
			t.Fatalf("Derive returned error: %v", err)
		}
		if len(records) != 1 {
			t.Fatalf("Expected 1 record for %v, got %d", tt.hours, len(records))
		}
		if records[0].NotificationType != TypeUpcoming {
			t.Errorf("%v: expected upcoming, got %s", tt.hours, records[0].NotificationType)
		}
		if *records[0].DaysUntilEvent != tt.wantDays {
			t.Errorf("%v: expected %d days, got %d", tt.hours, tt.wantDays, *records[0].DaysUntilEvent)
		}
	}
}

func TestDeriveSkipsPastEvents(t *testing.T) {
	d := newTestDeriver(NewReadState())

	events := []CandidateEvent{
		{ID: 5, Title: "Over", Date: derivedAt.Add(-2 * time.Hour), Location: "Hall"},
		{ID: 6, Title: "Soon", Date: derivedAt.Add(3 * time.Hour), Location: "Hall"},
	}

	records, err := d.Derive(1, events)
	if err != nil {
		t.Fatalf("Derive returned error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Expected past event to be skipped, got %d records", len(records))
	}
	if records[0].EventID != 6 {
		t.Errorf("Wrong event survived: %d", records[0].EventID)
	}
}

func TestDerivePreservesInputOrdering(t *testing.T) {
	d := newTestDeriver(NewReadState())

	events := []CandidateEvent{
		{ID: 1, Title: "First", Date: derivedAt.Add(2 * time.Hour), Location: "A"},
		{ID: 2, Title: "Second", Date: derivedAt.Add(48 * time.Hour), Location: "B"},
		{ID: 3, Title: "Third", Date: derivedAt.Add(96 * time.Hour), Location: "C"},
	}

	records, err := d.Derive(1, events)
	if err != nil {
		t.Fatalf("Derive returned error: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(records))
	}
	for i, want := range []int64{1, 2, 3} {
		if records[i].EventID != want {
			t.Errorf("Position %d: expected event %d, got %d", i, want, records[i].EventID)
		}
	}
}

func TestDeriveIDDeterministicPerDay(t *testing.T) {
	d := newTestDeriver(NewReadState())
	events := []CandidateEvent{
		{ID: 42, Title: "Launch", Date: derivedAt.Add(72 * time.Hour), Location: "Main Hall"},
	}

	first, _ := d.Derive(7, events)
	second, _ := d.Derive(7, events)
	if first[0].NotificationID != second[0].NotificationID {
		t.Errorf("Same-day derivation produced different IDs: %s vs %s",
			first[0].NotificationID, second[0].NotificationID)
	}

	// Deriving on another calendar day changes the ID even though the
	// event and classification are unchanged.
	d.Now = func() time.Time { return derivedAt.Add(24 * time.Hour) }
	nextDay, _ := d.Derive(7, events)
	if nextDay[0].NotificationType != first[0].NotificationType {
		t.Fatalf("Classification changed across days: %s vs %s",
			nextDay[0].NotificationType, first[0].NotificationType)
	}
	if nextDay[0].NotificationID == first[0].NotificationID {
		t.Errorf("Different-day derivation produced identical ID: %s", first[0].NotificationID)
	}
}

func TestDeriveStampsReadState(t *testing.T) {
	tracker := NewReadState()
	d := newTestDeriver(tracker)
	events := []CandidateEvent{
		{ID: 42, Title: "Launch", Date: derivedAt.Add(10 * time.Hour), Location: "Main Hall"},
	}

	tracker.MarkAsRead(7, "7_42_reminder_20250601")

	records, err := d.Derive(7, events)
	if err != nil {
		t.Fatalf("Derive returned error: %v", err)
	}
	if records[0].Open != 0 {
		t.Errorf("Expected open 0 for a read notification, got %d", records[0].Open)
	}
}

func TestDeriveMalformedEvents(t *testing.T) {
	d := newTestDeriver(NewReadState())

	// One malformed candidate among good ones is skipped
	mixed := []CandidateEvent{
		{ID: 1, Title: "", Date: derivedAt.Add(5 * time.Hour), Location: "A"},
		{ID: 2, Title: "Fine", Date: derivedAt.Add(5 * time.Hour), Location: "B"},
	}
	records, err := d.Derive(1, mixed)
	if err != nil {
		t.Fatalf("Partial derivation should not fail: %v", err)
	}
	if len(records) != 1 || records[0].EventID != 2 {
		t.Fatalf("Expected only the well-formed event, got %+v", records)
	}

	// Every candidate malformed is an error
	broken := []CandidateEvent{
		{ID: 1, Title: "", Date: derivedAt.Add(5 * time.Hour), Location: "A"},
		{ID: 2, Title: "No location", Date: derivedAt.Add(5 * time.Hour)},
		{ID: 3, Title: "No date", Location: "C"},
	}
	if _, err := d.Derive(1, broken); !errors.Is(err, ErrMalformedEvent) {
		t.Errorf("Expected ErrMalformedEvent, got %v", err)
	}
}

func TestDeriveEmptyInput(t *testing.T) {
	d := newTestDeriver(NewReadState())
	records, err := d.Derive(1, nil)
	if err != nil {
		t.Fatalf("Derive on empty input returned error: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("Expected no records, got %d", len(records))
	}
}

func TestParseNotificationID(t *testing.T) {
	userID, err := ParseNotificationID("7_42_reminder_20250601")
	if err != nil {
		t.Fatalf("ParseNotificationID returned error: %v", err)
	}
	if userID != 7 {
		t.Errorf("Expected user 7, got %d", userID)
	}

	invalid := []string{"", "noseparator", "abc_42_reminder", "_42"}
	for _, id := range invalid {
		if _, err := ParseNotificationID(id); !errors.Is(err, ErrInvalidNotificationID) {
			t.Errorf("Expected ErrInvalidNotificationID for %q, got %v", id, err)
		}
	}
}

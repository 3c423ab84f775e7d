package models

import (
	"time"
)

type Event struct {
	ID              int64     `json:"id" db:"id"`
	Title           string    `json:"title" db:"title"`
	Description     string    `json:"description" db:"description"`
	Date            time.Time `json:"date" db:"date"`
	Location        string    `json:"location" db:"location"`
	MaxParticipants *int      `json:"max_participants" db:"max_participants"`
	OrganizerID     int64     `json:"organizer_id" db:"organizer_id"`
	IsActive        bool      `json:"is_active" db:"is_active"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

type CreateEventRequest struct {
	Title           string    `json:"title" binding:"required,max=200"`
	Description     string    `json:"description"`
	Date            time.Time `json:"date" binding:"required"`
	Location        string    `json:"location" binding:"required,max=200"`
	MaxParticipants *int      `json:"max_participants"`
}

type UpdateEventRequest struct {
	Title           string    `json:"title" binding:"required,max=200"`
	Description     string    `json:"description"`
	Date            time.Time `json:"date" binding:"required"`
	Location        string    `json:"location" binding:"required,max=200"`
	MaxParticipants *int      `json:"max_participants"`
}

type EventWithOrganizer struct {
	Event
	OrganizerName string `json:"organizer_name" db:"organizer_name"`
}

type Attendee struct {
	UserID       int64     `json:"user_id" db:"user_id"`
	Username     string    `json:"username" db:"username"`
	FullName     string    `json:"full_name" db:"full_name"`
	Attended     bool      `json:"attended" db:"attended"`
	RegisteredAt time.Time `json:"registered_at" db:"registered_at"`
}

func (e *Event) IsUpcoming() bool {
	return e.Date.After(time.Now())
}

func (e *Event) IsPast() bool {
	return e.Date.Before(time.Now())
}

func (e *Event) IsToday() bool {
	today := time.Now()
	return e.Date.Year() == today.Year() &&
		e.Date.Month() == today.Month() &&
		e.Date.Day() == today.Day()
}

package models

import (
	"time"
)

// Comment is a user's comment on an event, carrying a 1-5 rating.
type Comment struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"user_id" db:"user_id"`
	EventID   int64     `json:"event_id" db:"event_id"`
	Content   string    `json:"content" db:"content"`
	Rating    int       `json:"rating" db:"rating"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	// User info for display
	Username string `json:"username,omitempty" db:"username"`
	FullName string `json:"full_name,omitempty" db:"full_name"`
}

type CreateCommentRequest struct {
	EventID int64  `json:"event_id" binding:"required"`
	Content string `json:"content" binding:"required,min=1,max=1000"`
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
}

type UpdateCommentRequest struct {
	Content string `json:"content" binding:"required,min=1,max=1000"`
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
}

// EventShare logs an event being shared out, either to social media or
// by email to a recipient address.
type EventShare struct {
	ID        int64     `json:"id" db:"id"`
	EventID   int64     `json:"event_id" db:"event_id"`
	ShareType string    `json:"share_type" db:"share_type"`
	Recipient *string   `json:"recipient" db:"recipient"`
	SharedAt  time.Time `json:"shared_at" db:"shared_at"`
}

type ShareEventRequest struct {
	EventID   int64   `json:"event_id" binding:"required"`
	ShareType string  `json:"share_type" binding:"required,oneof=social_media email"`
	Recipient *string `json:"recipient"`
}

type UserEventStats struct {
	UserID           int64 `json:"user_id"`
	EventsRegistered int   `json:"events_registered"`
	EventsAttended   int   `json:"events_attended"`
	EventsOrganized  int   `json:"events_organized"`
}

type EventStatistics struct {
	EventID         int64     `json:"event_id"`
	Title           string    `json:"title"`
	Date            time.Time `json:"date"`
	Location        string    `json:"location"`
	TotalRegistered int       `json:"total_registered"`
	TotalAttended   int       `json:"total_attended"`
	AverageRating   *float64  `json:"average_rating"`
	TotalComments   int       `json:"total_comments"`
	TotalShares     int       `json:"total_shares"`
}

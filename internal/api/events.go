package api

import (
	"net/http"
	"strconv"

	"eventhub-backend/internal/middleware"
	"eventhub-backend/internal/models"

	"github.com/gin-gonic/gin"
)

// Event Handlers
func (s *Server) GetEvents(c *gin.Context) {
	ctx := c.Request.Context()

	query := `
		SELECT e.id, e.title, e.description, e.date, e.location, e.max_participants,
			   e.organizer_id, e.is_active, e.created_at, u.full_name as organizer_name
		FROM events e
		JOIN users u ON e.organizer_id = u.id
		WHERE e.is_active = TRUE AND e.date >= NOW()
		ORDER BY e.date ASC
	`

	rows, err := s.db.Pool.Query(ctx, query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch events"})
		return
	}
	defer rows.Close()

	var events []models.EventWithOrganizer
	for rows.Next() {
		var event models.EventWithOrganizer
		err := rows.Scan(
			&event.ID, &event.Title, &event.Description, &event.Date, &event.Location,
			&event.MaxParticipants, &event.OrganizerID, &event.IsActive, &event.CreatedAt,
			&event.OrganizerName,
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan event"})
			return
		}
		events = append(events, event)
	}

	c.JSON(http.StatusOK, events)
}

func (s *Server) GetPastEvents(c *gin.Context) {
	ctx := c.Request.Context()

	query := `
		SELECT e.id, e.title, e.description, e.date, e.location, e.max_participants,
			   e.organizer_id, e.is_active, e.created_at, u.full_name as organizer_name
		FROM events e
		JOIN users u ON e.organizer_id = u.id
		WHERE e.date < NOW()
		ORDER BY e.date DESC
	`

	rows, err := s.db.Pool.Query(ctx, query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch events"})
		return
	}
	defer rows.Close()

	var events []models.EventWithOrganizer
	for rows.Next() {
		var event models.EventWithOrganizer
		err := rows.Scan(
			&event.ID, &event.Title, &event.Description, &event.Date, &event.Location,
			&event.MaxParticipants, &event.OrganizerID, &event.IsActive, &event.CreatedAt,
			&event.OrganizerName,
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan event"})
			return
		}
		events = append(events, event)
	}

	c.JSON(http.StatusOK, events)
}

func (s *Server) GetEvent(c *gin.Context) {
	eventID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event ID"})
		return
	}

	ctx := c.Request.Context()
	var event models.EventWithOrganizer

	query := `
		SELECT e.id, e.title, e.description, e.date, e.location, e.max_participants,
			   e.organizer_id, e.is_active, e.created_at, u.full_name as organizer_name
		FROM events e
		JOIN users u ON e.organizer_id = u.id
		WHERE e.id = $1
	`

	err = s.db.Pool.QueryRow(ctx, query, eventID).Scan(
		&event.ID, &event.Title, &event.Description, &event.Date, &event.Location,
		&event.MaxParticipants, &event.OrganizerID, &event.IsActive, &event.CreatedAt,
		&event.OrganizerName,
	)

	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	c.JSON(http.StatusOK, event)
}

func (s *Server) CreateEvent(c *gin.Context) {
	var req models.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	organizerID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	ctx := c.Request.Context()
	var event models.Event

	query := `
		INSERT INTO events (title, description, date, location, max_participants, organizer_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, title, description, date, location, max_participants, organizer_id, is_active, created_at
	`

	err := s.db.Pool.QueryRow(ctx, query, req.Title, req.Description, req.Date, req.Location, req.MaxParticipants, organizerID).Scan(
		&event.ID, &event.Title, &event.Description, &event.Date, &event.Location,
		&event.MaxParticipants, &event.OrganizerID, &event.IsActive, &event.CreatedAt,
	)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create event"})
		return
	}

	c.JSON(http.StatusCreated, event)
}

func (s *Server) UpdateEvent(c *gin.Context) {
	eventID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event ID"})
		return
	}

	var req models.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	var event models.Event

	query := `
		UPDATE events
		SET title = $1, description = $2, date = $3, location = $4, max_participants = $5
		WHERE id = $6
		RETURNING id, title, description, date, location, max_participants, organizer_id, is_active, created_at
	`

	err = s.db.Pool.QueryRow(ctx, query, req.Title, req.Description, req.Date, req.Location, req.MaxParticipants, eventID).Scan(
		&event.ID, &event.Title, &event.Description, &event.Date, &event.Location,
		&event.MaxParticipants, &event.OrganizerID, &event.IsActive, &event.CreatedAt,
	)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update event"})
		return
	}

	c.JSON(http.StatusOK, event)
}

// DeleteEvent deactivates an event instead of removing the row, so
// attendance history and comments stay intact.
func (s *Server) DeleteEvent(c *gin.Context) {
	eventID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event ID"})
		return
	}

	ctx := c.Request.Context()
	_, err = s.db.Pool.Exec(ctx, "UPDATE events SET is_active = FALSE WHERE id = $1", eventID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete event"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event deleted successfully"})
}

// Attendance Handlers
func (s *Server) RegisterAttendance(c *gin.Context) {
	eventID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event ID"})
		return
	}

	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	ctx := c.Request.Context()

	var active bool
	err = s.db.Pool.QueryRow(ctx, "SELECT is_active FROM events WHERE id = $1", eventID).Scan(&active)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}
	if !active {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Event is no longer active"})
		return
	}

	tag, err := s.db.Pool.Exec(ctx, `
		INSERT INTO event_attendance (user_id, event_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, event_id) DO NOTHING
	`, userID, eventID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register attendance"})
		return
	}
	if tag.RowsAffected() == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Already registered for this event"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Registered successfully", "event_id": eventID, "user_id": userID})
}

func (s *Server) GetEventAttendees(c *gin.Context) {
	eventID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event ID"})
		return
	}

	ctx := c.Request.Context()
	query := `
		SELECT u.id, u.username, u.full_name, ea.attended, ea.registered_at
		FROM event_attendance ea
		JOIN users u ON ea.user_id = u.id
		WHERE ea.event_id = $1
		ORDER BY ea.registered_at ASC
	`

	rows, err := s.db.Pool.Query(ctx, query, eventID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch attendees"})
		return
	}
	defer rows.Close()

	var attendees []models.Attendee
	for rows.Next() {
		var attendee models.Attendee
		err := rows.Scan(&attendee.UserID, &attendee.Username, &attendee.FullName, &attendee.Attended, &attendee.RegisteredAt)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan attendee"})
			return
		}
		attendees = append(attendees, attendee)
	}

	c.JSON(http.StatusOK, gin.H{"attendees": attendees})
}

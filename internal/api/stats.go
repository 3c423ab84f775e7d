package api

import (
	"net/http"
	"strconv"

	"eventhub-backend/internal/models"

	"github.com/gin-gonic/gin"
)

// Stats Handlers
func (s *Server) GetUserStats(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	ctx := c.Request.Context()
	stats := models.UserEventStats{UserID: userID}

	query := `
		SELECT
			(SELECT COUNT(*) FROM event_attendance WHERE user_id = $1) as events_registered,
			(SELECT COUNT(*) FROM event_attendance WHERE user_id = $1 AND attended = TRUE) as events_attended,
			(SELECT COUNT(*) FROM events WHERE organizer_id = $1) as events_organized
	`

	err = s.db.Pool.QueryRow(ctx, query, userID).Scan(
		&stats.EventsRegistered, &stats.EventsAttended, &stats.EventsOrganized,
	)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (s *Server) GetEventStats(c *gin.Context) {
	eventID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event ID"})
		return
	}

	ctx := c.Request.Context()
	stats := models.EventStatistics{EventID: eventID}

	query := `
		SELECT
			e.title,
			e.date,
			e.location,
			(SELECT COUNT(*) FROM event_attendance WHERE event_id = $1) as total_registered,
			(SELECT COUNT(*) FROM event_attendance WHERE event_id = $1 AND attended = TRUE) as total_attended,
			(SELECT AVG(rating) FROM comments WHERE event_id = $1) as average_rating,
			(SELECT COUNT(*) FROM comments WHERE event_id = $1) as total_comments,
			(SELECT COUNT(*) FROM event_shares WHERE event_id = $1) as total_shares
		FROM events e
		WHERE e.id = $1
	`

	err = s.db.Pool.QueryRow(ctx, query, eventID).Scan(
		&stats.Title, &stats.Date, &stats.Location,
		&stats.TotalRegistered, &stats.TotalAttended, &stats.AverageRating,
		&stats.TotalComments, &stats.TotalShares,
	)

	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"eventhub-backend/internal/models"
	"eventhub-backend/internal/notify"

	"github.com/gin-gonic/gin"
)

// EventSource supplies the candidate events the deriver works from:
// events the user is registered for, active, with a now-or-future date,
// ordered by event date ascending.
type EventSource interface {
	UpcomingEventsForUser(ctx context.Context, userID int64) ([]notify.CandidateEvent, error)
}

// NotificationHandler serves the derived-notification endpoints. The
// read-state tracker is injected so the process holds exactly one
// instance and tests can build isolated copies.
type NotificationHandler struct {
	events  EventSource
	tracker *notify.ReadState
	deriver *notify.Deriver
}

func NewNotificationHandler(events EventSource, tracker *notify.ReadState) *NotificationHandler {
	return &NotificationHandler{
		events:  events,
		tracker: tracker,
		deriver: notify.NewDeriver(tracker),
	}
}

// Deriver exposes the underlying deriver, mainly so tests can pin its
// clock.
func (h *NotificationHandler) Deriver() *notify.Deriver {
	return h.deriver
}

func (h *NotificationHandler) GetUserNotifications(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	records, err := h.deriveForUser(c, userID)
	if err != nil {
		return
	}

	ids := notificationIDs(records)
	c.JSON(http.StatusOK, gin.H{
		"user_id":       userID,
		"notifications": records,
		"total":         len(records),
		"unread_count":  h.tracker.UnreadCount(userID, ids),
	})
}

// MarkAsRead marks a single notification as read. The owning user is
// recovered from the notification ID itself.
func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	var req models.MarkAsReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, err := notify.ParseNotificationID(req.NotificationID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification ID format"})
		return
	}

	h.tracker.MarkAsRead(userID, req.NotificationID)
	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read", "notification_id": req.NotificationID})
}

// MarkMultipleAsRead marks a batch of notifications as read. The
// returned count is the number of IDs processed, duplicates included.
func (h *NotificationHandler) MarkMultipleAsRead(c *gin.Context) {
	var req models.MarkMultipleAsReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, err := notify.ParseNotificationID(req.NotificationIDs[0])
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification ID format"})
		return
	}

	count := h.tracker.MarkMultipleAsRead(userID, req.NotificationIDs)
	c.JSON(http.StatusOK, gin.H{"message": "Notifications marked as read", "marked_count": count})
}

// MarkAllAsRead derives a fresh snapshot of the user's current
// notifications and marks every one of them as read.
func (h *NotificationHandler) MarkAllAsRead(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	records, err := h.deriveForUser(c, userID)
	if err != nil {
		return
	}

	count := h.tracker.MarkAllAsRead(userID, notificationIDs(records))
	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked as read", "marked_count": count})
}

func (h *NotificationHandler) GetNotificationStats(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	records, err := h.deriveForUser(c, userID)
	if err != nil {
		return
	}

	ids := notificationIDs(records)
	unread := h.tracker.UnreadCount(userID, ids)

	c.JSON(http.StatusOK, models.NotificationStatsResponse{
		UserID:             userID,
		TotalNotifications: len(ids),
		UnreadCount:        unread,
		ReadCount:          len(ids) - unread,
	})
}

// ClearNotifications drops the user's read state. Clearing a user with
// no tracked state is reported as a distinct outcome, not an error.
func (h *NotificationHandler) ClearNotifications(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	if h.tracker.ClearUser(userID) {
		c.JSON(http.StatusOK, gin.H{"message": "Notifications cleared", "cleared": true})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "No notifications to clear", "cleared": false})
}

// deriveForUser fetches candidates and runs the deriver, writing the
// error response itself when the derivation cannot proceed.
func (h *NotificationHandler) deriveForUser(c *gin.Context, userID int64) ([]notify.NotificationRecord, error) {
	events, err := h.events.UpcomingEventsForUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch events"})
		return nil, err
	}

	records, err := h.deriver.Derive(userID, events)
	if err != nil {
		if errors.Is(err, notify.ErrMalformedEvent) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Event data is malformed"})
			return nil, err
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to derive notifications"})
		return nil, err
	}
	return records, nil
}

func notificationIDs(records []notify.NotificationRecord) []string {
	ids := make([]string, 0, len(records))
	for _, record := range records {
		ids = append(ids, record.NotificationID)
	}
	return ids
}

package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"eventhub-backend/internal/api"
	"eventhub-backend/internal/models"
	"eventhub-backend/internal/notify"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var derivedAt = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type stubEventSource struct {
	events []notify.CandidateEvent
}

func (s *stubEventSource) UpcomingEventsForUser(_ context.Context, _ int64) ([]notify.CandidateEvent, error) {
	return s.events, nil
}

// setupNotificationRouter wires the notification handler with a stub
// event source, a fresh tracker and a pinned clock, no database needed.
func setupNotificationRouter(t *testing.T, events []notify.CandidateEvent) *gin.Engine {
	t.Helper()

	handler := api.NewNotificationHandler(&stubEventSource{events: events}, notify.NewReadState())
	handler.Deriver().Now = func() time.Time { return derivedAt }

	router := gin.New()
	v1 := router.Group("/api/v1")
	notifications := v1.Group("/notifications")
	{
		notifications.GET("/user/:id", handler.GetUserNotifications)
		notifications.POST("/mark-as-read", handler.MarkAsRead)
		notifications.POST("/mark-multiple-as-read", handler.MarkMultipleAsRead)
		notifications.POST("/mark-all-as-read/:id", handler.MarkAllAsRead)
		notifications.GET("/stats/:id", handler.GetNotificationStats)
		notifications.DELETE("/clear/:id", handler.ClearNotifications)
	}
	return router
}

type notificationListResponse struct {
	UserID        int64                       `json:"user_id"`
	Notifications []notify.NotificationRecord `json:"notifications"`
	Total         int                         `json:"total"`
	UnreadCount   int                         `json:"unread_count"`
}

func getNotifications(t *testing.T, router *gin.Engine, userID string) notificationListResponse {
	t.Helper()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1/notifications/user/"+userID, nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Failed to fetch notifications: %d - %s", w.Code, w.Body.String())
	}

	var resp notificationListResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	return resp
}

func postJSON(router *gin.Engine, path string, payload interface{}) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", path, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestGetUserNotificationsReminder(t *testing.T) {
	router := setupNotificationRouter(t, []notify.CandidateEvent{
		{ID: 42, Title: "Launch", Date: derivedAt.Add(10 * time.Hour), Location: "Main Hall"},
	})

	resp := getNotifications(t, router, "7")

	if resp.UserID != 7 || resp.Total != 1 || resp.UnreadCount != 1 {
		t.Fatalf("Unexpected envelope: %+v", resp)
	}

	record := resp.Notifications[0]
	if record.NotificationID != "7_42_reminder_20250601" {
		t.Errorf("Unexpected notification ID: %s", record.NotificationID)
	}
	if record.NotificationType != notify.TypeReminder {
		t.Errorf("Expected reminder, got %s", record.NotificationType)
	}
	if record.DaysUntilEvent == nil || *record.DaysUntilEvent != 0 {
		t.Errorf("Expected days_until_event 0, got %v", record.DaysUntilEvent)
	}
	if record.Open != 1 {
		t.Errorf("Expected open 1, got %d", record.Open)
	}
}

func TestMarkAsReadRoundTrip(t *testing.T) {
	router := setupNotificationRouter(t, []notify.CandidateEvent{
		{ID: 42, Title: "Launch", Date: derivedAt.Add(10 * time.Hour), Location: "Main Hall"},
	})

	w := postJSON(router, "/api/v1/notifications/mark-as-read",
		models.MarkAsReadRequest{NotificationID: "7_42_reminder_20250601"})
	if w.Code != http.StatusOK {
		t.Fatalf("Failed to mark as read: %d - %s", w.Code, w.Body.String())
	}

	// Re-deriving on the same day shows the notification as read
	resp := getNotifications(t, router, "7")
	if resp.Notifications[0].Open != 0 {
		t.Errorf("Expected open 0 after mark-as-read, got %d", resp.Notifications[0].Open)
	}
	if resp.UnreadCount != 0 {
		t.Errorf("Expected unread_count 0, got %d", resp.UnreadCount)
	}
}

func TestMarkAsReadInvalidID(t *testing.T) {
	router := setupNotificationRouter(t, nil)

	for _, id := range []string{"garbage", "abc_42_reminder_20250601"} {
		w := postJSON(router, "/api/v1/notifications/mark-as-read",
			models.MarkAsReadRequest{NotificationID: id})
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400 for %q, got %d - %s", id, w.Code, w.Body.String())
		}
	}
}

func TestMarkMultipleAsReadCountsDuplicates(t *testing.T) {
	router := setupNotificationRouter(t, nil)

	w := postJSON(router, "/api/v1/notifications/mark-multiple-as-read",
		models.MarkMultipleAsReadRequest{
			NotificationIDs: []string{"5_1_reminder_20250101", "5_1_reminder_20250101"},
		})
	if w.Code != http.StatusOK {
		t.Fatalf("Failed to mark multiple: %d - %s", w.Code, w.Body.String())
	}

	var resp map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if count := resp["marked_count"].(float64); count != 2 {
		t.Errorf("Expected marked_count 2 with duplicates, got %v", count)
	}
}

func TestMarkMultipleAsReadEmptyBatch(t *testing.T) {
	router := setupNotificationRouter(t, nil)

	w := postJSON(router, "/api/v1/notifications/mark-multiple-as-read",
		map[string][]string{"notification_ids": {}})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for empty batch, got %d - %s", w.Code, w.Body.String())
	}
}

func TestMarkAllAsReadAndStats(t *testing.T) {
	router := setupNotificationRouter(t, []notify.CandidateEvent{
		{ID: 1, Title: "Soon", Date: derivedAt.Add(5 * time.Hour), Location: "A"},
		{ID: 2, Title: "Later", Date: derivedAt.Add(60 * time.Hour), Location: "B"},
	})

	w := postJSON(router, "/api/v1/notifications/mark-all-as-read/7", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Failed to mark all: %d - %s", w.Code, w.Body.String())
	}

	var marked map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &marked)
	if count := marked["marked_count"].(float64); count != 2 {
		t.Errorf("Expected marked_count 2, got %v", count)
	}

	w = httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1/notifications/stats/7", nil)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("Failed to fetch stats: %d - %s", w.Code, w.Body.String())
	}

	var stats models.NotificationStatsResponse
	json.Unmarshal(w.Body.Bytes(), &stats)
	if stats.TotalNotifications != 2 || stats.ReadCount != 2 || stats.UnreadCount != 0 {
		t.Errorf("Unexpected stats after mark-all: %+v", stats)
	}
}

func TestClearNotifications(t *testing.T) {
	router := setupNotificationRouter(t, []notify.CandidateEvent{
		{ID: 1, Title: "Soon", Date: derivedAt.Add(5 * time.Hour), Location: "A"},
	})

	clear := func() map[string]interface{} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("DELETE", "/api/v1/notifications/clear/7", nil)
		router.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("Clear failed: %d - %s", w.Code, w.Body.String())
		}
		var resp map[string]interface{}
		json.Unmarshal(w.Body.Bytes(), &resp)
		return resp
	}

	// Nothing tracked yet
	if resp := clear(); resp["cleared"].(bool) {
		t.Error("Expected nothing to clear for untouched user")
	}

	postJSON(router, "/api/v1/notifications/mark-all-as-read/7", nil)
	if resp := clear(); !resp["cleared"].(bool) {
		t.Error("Expected clear to report tracked state dropped")
	}

	// Everything is unread again after the clear
	resp := getNotifications(t, router, "7")
	if resp.UnreadCount != 1 {
		t.Errorf("Expected all unread after clear, got unread_count %d", resp.UnreadCount)
	}
}

func TestGetUserNotificationsMalformedEvents(t *testing.T) {
	// A single malformed candidate among good ones yields partial results
	router := setupNotificationRouter(t, []notify.CandidateEvent{
		{ID: 1, Title: "", Date: derivedAt.Add(5 * time.Hour), Location: "A"},
		{ID: 2, Title: "Fine", Date: derivedAt.Add(5 * time.Hour), Location: "B"},
	})

	resp := getNotifications(t, router, "3")
	if resp.Total != 1 {
		t.Errorf("Expected partial results, got %d records", resp.Total)
	}

	// All candidates malformed is a server error
	router = setupNotificationRouter(t, []notify.CandidateEvent{
		{ID: 1, Title: "", Date: derivedAt.Add(5 * time.Hour), Location: "A"},
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1/notifications/user/3", nil)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusInternalServerError {
		t.Errorf("Expected 500 when every candidate is malformed, got %d", w.Code)
	}
}

package notify

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidNotificationID is returned when a notification ID cannot be
// decomposed into its composite-key parts.
var ErrInvalidNotificationID = errors.New("invalid notification id")

// NotificationID builds the composite key for a derived notification:
// "{user_id}_{event_id}_{type}_{YYYYMMDD}". The date segment is the
// derivation date, not the event date, so the same event yields a
// different ID on each calendar day it is derived.
func NotificationID(userID, eventID int64, notificationType string, derivedAt time.Time) string {
	return fmt.Sprintf("%d_%d_%s_%s", userID, eventID, notificationType, derivedAt.Format("20060102"))
}

// ParseNotificationID recovers the owning user ID from a composite
// notification ID. The ID must have at least two underscore-delimited
// segments and the leading segment must be an integer.
func ParseNotificationID(notificationID string) (int64, error) {
	parts := strings.Split(notificationID, "_")
	if len(parts) < 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNotificationID, notificationID)
	}
	userID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNotificationID, notificationID)
	}
	return userID, nil
}

package models

type MarkAsReadRequest struct {
	NotificationID string `json:"notification_id" binding:"required"`
}

type MarkMultipleAsReadRequest struct {
	NotificationIDs []string `json:"notification_ids" binding:"required,min=1"`
}

type NotificationStatsResponse struct {
	UserID             int64 `json:"user_id"`
	TotalNotifications int   `json:"total_notifications"`
	UnreadCount        int   `json:"unread_count"`
	ReadCount          int   `json:"read_count"`
}

package merchant

import (
	"time"
)

type NotificationType string

const (
	NotificationInfo    NotificationType = "info"
	NotificationSuccess NotificationType = "success"
	NotificationWarning NotificationType = "warning"
	NotificationError   NotificationType = "error"
)

type NotificationInput struct {
	Title   string           `json:"title"`
	Message string           `json:"message"`
	Type    NotificationType `json:"type"`
	Read    bool             `json:"read"`
}

type Notification struct {
	ID string `json:"id"`
	NotificationInput
	CreatedAt time.Time `json:"created_at"`
}

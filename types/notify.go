package types

const (
	NotifyTypeUploadStart    = "upload_start"
	NotifyTypeUploadProgress = "upload_progress"
	NotifyTypeUploadFailed   = "upload_failed"
	NotifyTypeUploadEnd      = "upload_end"
)

// Notification represents a notification message structure
type Notification struct {
	Type    string         `json:"type,omitempty"`    // Notification type, e.g. "upload_start", "upload_end", etc.
	Message string         `json:"message,omitempty"` // Localized status line
	Data    map[string]any `json:"data,omitempty"`    // Additional data fields
}

package domain

import "time"

// Notification is a message addressed to a user
// Write-once except for the read flag
type Notification struct {
	ID        int64
	UserID    int64
	Message   string
	IsRead    bool
	CreatedAt time.Time
}

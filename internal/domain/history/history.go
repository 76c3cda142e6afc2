package history

import "time"

// Record is one delivered status-change notification.
type Record struct {
	ID           int64
	HomeworkName string
	Status       string
	Message      string
	SentAt       time.Time
}

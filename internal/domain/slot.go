package domain

import "time"

// Slot a candidate booking window [StartTime, EndTime), derived and never persisted
type Slot struct {
	StartTime time.Time
	EndTime   time.Time
}

// DurationMinutes returns the slot length
func (s Slot) DurationMinutes() int {
	return int(s.EndTime.Sub(s.StartTime) / time.Minute)
}

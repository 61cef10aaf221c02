package models

import "time"

// LeaseExpirySummary lists rooms whose lease ends inside the window.
type LeaseExpirySummary struct {
	GeneratedAt time.Time `json:"generatedAt"`
	WindowDays  int       `json:"windowDays"`
	Rooms       []*Room   `json:"rooms"`
}

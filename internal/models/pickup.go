package models

import "time"

// ServicedBy markers for pickups not attributed to a named agent.
const (
	ServicedByManual  = "Manual (Dashboard)"
	ServicedByUnknown = "Unknown Agent"
)

// PickupRecord is one completed service event. Records are append-only and
// never mutated.
type PickupRecord struct {
	ID         string    `json:"id"`
	BinID      string    `json:"binId"`
	Timestamp  time.Time `json:"timestamp"`
	ServicedBy string    `json:"servicedBy"`
}

package models

import "time"

// SensorLogEntry is one raw sensor submission. The sensor fields (moisture,
// gas, metal, detectedObject) come from the sorter and are opaque to the
// level-update engine; only BinID drives bin state.
type SensorLogEntry struct {
	ID             string    `json:"id"`
	BinID          string    `json:"binId,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
	Moisture       int       `json:"moisture"`
	Gas            int       `json:"gas"`
	Metal          bool      `json:"metal"`
	DetectedObject string    `json:"detectedObject,omitempty"`
}

// LogEntryRequest is the request body for POST /api/log-entry.
type LogEntryRequest struct {
	BinID          string     `json:"binId"`
	Timestamp      *time.Time `json:"timestamp,omitempty"`
	Moisture       int        `json:"moisture"`
	Gas            int        `json:"gas"`
	Metal          bool       `json:"metal"`
	DetectedObject string     `json:"detectedObject"`
}

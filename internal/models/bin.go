package models

import "time"

// Status labels shown on the dashboard.
const (
	StatusOK          = "OK"
	StatusCollectSoon = "Collect Soon"
	StatusFull        = "Full"
)

// Fill-level thresholds for deriving a bin's status.
const (
	FullThreshold        = 80
	CollectSoonThreshold = 60
)

// BinIDs is the fixed set of tracked bins. Bins are never added or removed
// at runtime.
var BinIDs = []string{"metal", "bio", "nonbio"}

type Bin struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	Level               int       `json:"level"`
	Status              string    `json:"status"`
	LastEmpty           time.Time `json:"lastEmpty"`
	AutoDispatchEnabled bool      `json:"autoDispatchEnabled"`
}

// StatusForLevel derives the status label from a fill level. Status is never
// set any other way.
func StatusForLevel(level int) string {
	switch {
	case level >= FullThreshold:
		return StatusFull
	case level >= CollectSoonThreshold:
		return StatusCollectSoon
	default:
		return StatusOK
	}
}

// IsKnownBinID reports whether id belongs to the fixed bin set.
func IsKnownBinID(id string) bool {
	for _, known := range BinIDs {
		if id == known {
			return true
		}
	}
	return false
}

// DispatchRequest is the request body for POST /api/dispatch. BinLevel is a
// pointer so a missing field can be told apart from a level of 0.
type DispatchRequest struct {
	BinID    string `json:"binId"`
	BinName  string `json:"binName"`
	BinLevel *int   `json:"binLevel"`
}

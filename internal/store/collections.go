package store

import (
	"time"

	"wastewatch-backend/internal/models"
)

// CollectionCounts is the response shape for GET /api/collections/today.
type CollectionCounts struct {
	Total  int `json:"total"`
	Metal  int `json:"metal"`
	Bio    int `json:"bio"`
	NonBio int `json:"nonbio"`
}

// CountToday tallies the entries logged since local midnight of now.
// Entries without a recognized binId still count toward the total.
func CountToday(entries []models.SensorLogEntry, now time.Time) CollectionCounts {
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var counts CollectionCounts
	for _, entry := range entries {
		if entry.Timestamp.Before(startOfDay) {
			continue
		}
		counts.Total++
		switch entry.BinID {
		case "metal":
			counts.Metal++
		case "bio":
			counts.Bio++
		case "nonbio":
			counts.NonBio++
		}
	}
	return counts
}

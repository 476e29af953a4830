package registry

import (
	"errors"
	"sync"
	"time"

	"wastewatch-backend/internal/models"

	"github.com/google/uuid"
)

// ErrBinNotFound is returned when an operation references a bin id outside
// the fixed set.
var ErrBinNotFound = errors.New("bin not found")

// Registry owns the in-memory bin table and the pickup history. All of this
// state is process-local and resets on restart; only the sensor log file
// survives. Writes are serialized behind the mutex so readers always see
// whole bin records, never a partially applied update.
type Registry struct {
	mu      sync.RWMutex
	bins    []models.Bin
	pickups []models.PickupRecord
}

// New creates the registry with the three fixed bins, all empty.
func New(now time.Time) *Registry {
	return &Registry{
		bins: []models.Bin{
			{ID: "metal", Name: "Metal Waste", Level: 0, Status: models.StatusOK, LastEmpty: now},
			{ID: "bio", Name: "Biodegradable Waste", Level: 0, Status: models.StatusOK, LastEmpty: now},
			{ID: "nonbio", Name: "Non-Biodegradable Waste", Level: 0, Status: models.StatusOK, LastEmpty: now},
		},
	}
}

// List returns a snapshot of all bins.
func (r *Registry) List() []models.Bin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Bin, len(r.bins))
	copy(out, r.bins)
	return out
}

// Find returns the bin with the given id.
func (r *Registry) Find(id string) (models.Bin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, bin := range r.bins {
		if bin.ID == id {
			return bin, nil
		}
	}
	return models.Bin{}, ErrBinNotFound
}

// Update replaces the bin with the given id by the record produced by
// mutate, and returns the new snapshot. Unknown ids leave the registry
// untouched and return ErrBinNotFound.
func (r *Registry) Update(id string, mutate func(models.Bin) models.Bin) (models.Bin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, bin := range r.bins {
		if bin.ID == id {
			updated := mutate(bin)
			r.bins[i] = updated
			return updated, nil
		}
	}
	return models.Bin{}, ErrBinNotFound
}

// AppendPickup records one completed service event and returns it.
func (r *Registry) AppendPickup(binID, servicedBy string) models.PickupRecord {
	record := models.PickupRecord{
		ID:         "pickup-" + uuid.NewString(),
		BinID:      binID,
		Timestamp:  time.Now(),
		ServicedBy: servicedBy,
	}

	r.mu.Lock()
	r.pickups = append(r.pickups, record)
	r.mu.Unlock()

	return record
}

// Pickups returns the full pickup history, newest first.
func (r *Registry) Pickups() []models.PickupRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.PickupRecord, len(r.pickups))
	for i, record := range r.pickups {
		out[len(r.pickups)-1-i] = record
	}
	return out
}

// PickupsForBin returns the pickup history for one bin, newest first.
func (r *Registry) PickupsForBin(binID string) []models.PickupRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.PickupRecord
	for i := len(r.pickups) - 1; i >= 0; i-- {
		if r.pickups[i].BinID == binID {
			out = append(out, r.pickups[i])
		}
	}
	return out
}

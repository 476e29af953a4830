package engine

import (
	"log"
	"math/rand"

	"wastewatch-backend/internal/models"
	"wastewatch-backend/internal/registry"
	"wastewatch-backend/internal/services"
)

// Dispatcher fans a pickup alert out to every configured agent and reports
// one outcome per recipient.
type Dispatcher interface {
	DispatchToAll(bin models.Bin) []services.DeliveryResult
}

// Sensor fill contribution per reading, percent.
const (
	incrementMin = 15
	incrementMax = 25
)

// Engine applies sensor readings to the bin registry and fires pickup
// alerts when a bin sits at the full threshold with auto-dispatch enabled.
type Engine struct {
	registry   *registry.Registry
	dispatcher Dispatcher // nil disables auto-dispatch
}

func New(reg *registry.Registry, dispatcher Dispatcher) *Engine {
	return &Engine{registry: reg, dispatcher: dispatcher}
}

// ApplyReading bumps the bin by a random sensor increment, clamped to 100,
// re-derives the status, and returns the updated snapshot along with the
// increment applied. Unknown bin ids return registry.ErrBinNotFound and
// change nothing.
//
// If the resulting level is at or above the full threshold and the bin has
// auto-dispatch enabled, a notification batch fires in the background. This
// re-triggers on every qualifying reading; repeated alerts for a bin that
// stays full are accepted at-least-once behavior.
func (e *Engine) ApplyReading(binID string) (models.Bin, int, error) {
	increment := incrementMin + rand.Intn(incrementMax-incrementMin+1)

	updated, err := e.registry.Update(binID, func(bin models.Bin) models.Bin {
		level := bin.Level + increment
		if level > 100 {
			level = 100
		}
		bin.Level = level
		bin.Status = models.StatusForLevel(level)
		return bin
	})
	if err != nil {
		return models.Bin{}, 0, err
	}

	log.Printf("📈 Bin %s: level -> %d%% (+%d%%)", updated.ID, updated.Level, increment)

	if updated.Level >= models.FullThreshold && updated.AutoDispatchEnabled && e.dispatcher != nil {
		log.Printf("🚨 Bin %s is full, triggering auto-dispatch", updated.Name)
		go e.dispatcher.DispatchToAll(updated)
	}

	return updated, increment, nil
}

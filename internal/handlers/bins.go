package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"wastewatch-backend/internal/engine"
	"wastewatch-backend/internal/models"
	"wastewatch-backend/internal/registry"
	"wastewatch-backend/internal/websocket"
	"wastewatch-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
)

// GetBins returns a snapshot of all bins.
func GetBins(reg *registry.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		utils.JSON(w, http.StatusOK, reg.List())
	}
}

// IncrementBin applies one random sensor increment directly to a known bin,
// without a sensor payload. Used by the dashboard's simulation controls.
func IncrementBin(reg *registry.Registry, eng *engine.Engine, hub *websocket.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		binID := chi.URLParam(r, "binId")
		if !models.IsKnownBinID(binID) {
			utils.Error(w, http.StatusBadRequest, "Valid bin ID is required.")
			return
		}

		_, increment, err := eng.ApplyReading(binID)
		if err != nil {
			utils.Error(w, http.StatusNotFound, "Bin not found")
			return
		}

		hub.BroadcastBins(reg.List())
		utils.JSON(w, http.StatusOK, map[string]string{
			"message": fmt.Sprintf("Bin %s level incremented by %d%%.", binID, increment),
		})
	}
}

// ToggleAutoDispatch flips a bin's auto-dispatch flag. Enabling it while the
// bin is already full fires a notification batch before responding.
func ToggleAutoDispatch(reg *registry.Registry, dispatcher engine.Dispatcher, hub *websocket.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		binID := chi.URLParam(r, "binId")

		toggled, err := reg.Update(binID, func(bin models.Bin) models.Bin {
			bin.AutoDispatchEnabled = !bin.AutoDispatchEnabled
			return bin
		})
		if errors.Is(err, registry.ErrBinNotFound) {
			utils.Error(w, http.StatusNotFound, "Bin not found")
			return
		}

		log.Printf("🔔 Auto-dispatch for %s is now %v", toggled.Name, toggled.AutoDispatchEnabled)

		if toggled.AutoDispatchEnabled && toggled.Level >= models.FullThreshold {
			log.Printf("🚨 Bin is already full. Triggering dispatch for %s", toggled.Name)
			if dispatcher != nil {
				dispatcher.DispatchToAll(toggled)
			} else {
				log.Printf("⚠️  Dispatch requested but mail transport is not configured")
			}
		}

		hub.BroadcastBins(reg.List())
		utils.JSON(w, http.StatusOK, toggled)
	}
}

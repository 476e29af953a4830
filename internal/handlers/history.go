package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"wastewatch-backend/internal/models"
	"wastewatch-backend/internal/registry"
	"wastewatch-backend/internal/websocket"
	"wastewatch-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
)

// GetHistory returns all pickup records, newest first.
func GetHistory(reg *registry.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		utils.JSON(w, http.StatusOK, reg.Pickups())
	}
}

// ScheduleBin is the dashboard's manual reset: the bin empties regardless of
// its current level and the pickup is recorded against the manual marker.
func ScheduleBin(reg *registry.Registry, hub *websocket.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		binID := chi.URLParam(r, "binId")

		_, err := reg.Update(binID, func(bin models.Bin) models.Bin {
			bin.Level = 0
			bin.Status = models.StatusForLevel(0)
			bin.LastEmpty = time.Now()
			return bin
		})
		if errors.Is(err, registry.ErrBinNotFound) {
			utils.Error(w, http.StatusNotFound, "Bin not found")
			return
		}

		reg.AppendPickup(binID, models.ServicedByManual)
		hub.BroadcastBins(reg.List())

		utils.JSON(w, http.StatusOK, map[string]string{
			"message": fmt.Sprintf("Pickup scheduled for %s. Bin level reset.", binID),
		})
	}
}

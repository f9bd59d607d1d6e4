package api

import (
	"encoding/json"
	"net/http"
)

func (s *Server) handleParseStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"reports_loaded": s.orchestrator.Library().Len(),
		"queue_depth":    s.orchestrator.QueueDepth(),
		"parse":          s.orchestrator.Stats.Snapshot(),
	})
}

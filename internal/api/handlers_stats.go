package api

import (
	"net/http"
)

func (s *Server) handleEventStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"sessions": s.manager.SessionCount(),
		"events":   s.manager.Stats().Snapshot(),
	})
}

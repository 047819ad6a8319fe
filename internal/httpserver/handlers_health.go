package httpserver

import "net/http"

type healthResponse struct {
	App string       `json:"app"`
	DB  healthDBInfo `json:"db"`
}

type healthDBInfo struct {
	State string `json:"state"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	state := "connected"
	if err := s.db.PingContext(r.Context()); err != nil {
		state = "disconnected"
	}
	writeJSON(w, http.StatusOK, healthResponse{App: "ok", DB: healthDBInfo{State: state}})
}

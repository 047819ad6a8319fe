package httpserver

import (
	"net/http"

	"truckfleet/internal/auth"
	"truckfleet/internal/service"
)

func (s *Server) handleCreateLocation(w http.ResponseWriter, r *http.Request) {
	p, err := auth.RequirePrincipal(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req createLocationRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	l, err := s.locations.Create(r.Context(), p, req.PlaceID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, l)
}

func (s *Server) handleListLocations(w http.ResponseWriter, r *http.Request) {
	p, err := auth.RequirePrincipal(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	q := r.URL.Query()
	page, err := queryInt(q, "page", 1)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	limit, err := queryInt(q, "limit", 10)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.locations.List(r.Context(), p, page, limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleGetLocation(w http.ResponseWriter, r *http.Request) {
	p, err := auth.RequirePrincipal(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	id, err := pathID(r, "Location")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	l, err := s.locations.Get(r.Context(), p, id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (s *Server) handleUpdateLocation(w http.ResponseWriter, r *http.Request) {
	p, err := auth.RequirePrincipal(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	id, err := pathID(r, "Location")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req updateLocationRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	l, err := s.locations.Update(r.Context(), p, id, service.UpdateLocationInput{
		PlaceID: req.PlaceID,
		Address: req.Address,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (s *Server) handleDeleteLocation(w http.ResponseWriter, r *http.Request) {
	p, err := auth.RequirePrincipal(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	id, err := pathID(r, "Location")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.locations.Remove(r.Context(), p, id); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, deletedResponse{Deleted: true})
}

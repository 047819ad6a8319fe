package httpserver

import (
	"net/http"
	"strings"

	"truckfleet/apperr"
	"truckfleet/internal/auth"
	"truckfleet/internal/service"
)

func (s *Server) handleCreateTruck(w http.ResponseWriter, r *http.Request) {
	p, err := auth.RequirePrincipal(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req createTruckRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if strings.TrimSpace(req.Year) == "" || strings.TrimSpace(req.Color) == "" || strings.TrimSpace(req.Plates) == "" {
		s.writeError(w, r, apperr.Invalidf("year, color and plates are required"))
		return
	}

	t, err := s.trucks.Create(r.Context(), p, service.CreateTruckInput{
		Year:   req.Year,
		Color:  req.Color,
		Plates: req.Plates,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

func (s *Server) handleListTrucks(w http.ResponseWriter, r *http.Request) {
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
	limit, err := queryInt(q, "limit", 20)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.trucks.List(r.Context(), p, page, limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleGetTruck(w http.ResponseWriter, r *http.Request) {
	p, err := auth.RequirePrincipal(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	id, err := pathID(r, "Truck")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	t, err := s.trucks.Get(r.Context(), p, id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleUpdateTruck(w http.ResponseWriter, r *http.Request) {
	p, err := auth.RequirePrincipal(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	id, err := pathID(r, "Truck")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req updateTruckRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	t, err := s.trucks.Update(r.Context(), p, id, service.UpdateTruckInput{
		Year:   req.Year,
		Color:  req.Color,
		Plates: req.Plates,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleDeleteTruck(w http.ResponseWriter, r *http.Request) {
	p, err := auth.RequirePrincipal(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	id, err := pathID(r, "Truck")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.trucks.Remove(r.Context(), p, id); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, deletedResponse{Deleted: true})
}

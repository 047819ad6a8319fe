package httpserver

import (
	"net/http"

	"truckfleet/apperr"
	"truckfleet/internal/auth"
	"truckfleet/internal/service"
	"truckfleet/models"
)

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
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

	result, err := s.users.List(r.Context(), p, q.Get("search"), page, limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	p, err := auth.RequirePrincipal(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	id, err := pathID(r, "User")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	u, err := s.users.Get(r.Context(), p, id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	p, err := auth.RequirePrincipal(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	id, err := pathID(r, "User")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req updateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Email != nil && !emailRe.MatchString(*req.Email) {
		s.writeError(w, r, apperr.Invalidf("invalid email"))
		return
	}
	if req.Password != nil && len(*req.Password) < 6 {
		s.writeError(w, r, apperr.Invalidf("password must be at least 6 characters"))
		return
	}
	in := service.UpdateUserInput{Name: req.Name, Email: req.Email, Password: req.Password}
	if req.Role != nil {
		role := models.UserRole(*req.Role)
		if role != models.RoleUser && role != models.RoleAdmin {
			s.writeError(w, r, apperr.Invalidf("role must be one of: user, admin"))
			return
		}
		in.Role = &role
	}

	u, err := s.users.Update(r.Context(), p, id, in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	p, err := auth.RequirePrincipal(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	id, err := pathID(r, "User")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.users.Remove(r.Context(), p, id); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, deletedResponse{Deleted: true})
}

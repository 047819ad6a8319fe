package httpserver

import (
	"net/http"
	"regexp"

	"truckfleet/apperr"
)

var emailRe = regexp.MustCompile(`^\S+@\S+\.\S+$`)

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if !emailRe.MatchString(req.Email) {
		s.writeError(w, r, apperr.Invalidf("invalid email"))
		return
	}
	if len(req.Password) < 6 {
		s.writeError(w, r, apperr.Invalidf("password must be at least 6 characters"))
		return
	}

	token, err := s.auth.Signup(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, tokenResponse{AccessToken: token})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Email == "" || req.Password == "" {
		s.writeError(w, r, apperr.Invalidf("email and password are required"))
		return
	}

	token, err := s.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: token})
}

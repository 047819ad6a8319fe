package auth

import (
	"encoding/json"
	"net/http"
	"strings"

	"truckfleet/apperr"
)

// Middleware returns HTTP middleware that extracts and validates a Bearer
// JWT from the Authorization header and injects the Principal into the
// request context. Route patterns listed in allowUnauthenticated bypass
// authentication (e.g., signup, login, health).
func Middleware(secret string, allowUnauthenticated ...string) func(http.Handler) http.Handler {
	allow := make(map[string]struct{}, len(allowUnauthenticated))
	for _, p := range allowUnauthenticated {
		allow[strings.TrimSpace(p)] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := allow[r.Method+" "+r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}
			token, err := BearerToken(r.Header.Get("Authorization"))
			if err != nil {
				unauthorized(w, err.Error())
				return
			}
			p, err := ParseToken(token, secret)
			if err != nil {
				unauthorized(w, "invalid token")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
		})
	}
}

// RequirePrincipal ensures a principal is present in context. Handlers
// behind Middleware call this instead of reaching into the context directly.
func RequirePrincipal(r *http.Request) (*Principal, error) {
	p, ok := FromContext(r.Context())
	if !ok {
		return nil, apperr.Unauthorized("missing principal")
	}
	return p, nil
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

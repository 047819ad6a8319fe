package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"truckfleet/models"
)

// Principal represents the authenticated caller derived from a verified JWT.
// Normalization of legacy claim shapes happens here, at the boundary; the
// rest of the codebase only ever sees this type.
type Principal struct {
	ID    int64
	Email string
	Role  models.UserRole
}

// IsAdmin reports whether the principal holds the admin role.
func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == models.RoleAdmin
}

type principalKey struct{}

// WithPrincipal stores the principal in context.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// FromContext retrieves the principal from context (if any).
func FromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(*Principal)
	return p, ok
}

// tokenClaims is the JWT payload. The canonical subject claim is "sub";
// "_id" and "userId" are legacy shapes still accepted on parse. They may
// arrive as either JSON strings or numbers, hence the untyped fields.
type tokenClaims struct {
	Email        string `json:"email"`
	Role         string `json:"role"`
	LegacyID     any    `json:"_id,omitempty"`
	LegacyUserID any    `json:"userId,omitempty"`
	jwt.RegisteredClaims
}

// IssueToken signs an HS256 JWT for the given user.
func IssueToken(secret string, ttl time.Duration, u *models.User) (string, error) {
	if secret == "" {
		return "", errors.New("jwt secret is empty")
	}
	if u == nil {
		return "", errors.New("user is nil")
	}
	now := time.Now()
	claims := tokenClaims{
		Email: u.Email,
		Role:  string(u.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(u.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken validates an HS256 JWT and returns the normalized Principal.
func ParseToken(tokenStr, secret string) (*Principal, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is empty")
	}
	var claims tokenClaims
	tok, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		if err == nil {
			err = errors.New("invalid token")
		}
		return nil, err
	}
	id, err := subjectID(&claims)
	if err != nil {
		return nil, err
	}
	role := models.UserRole(strings.ToLower(strings.TrimSpace(claims.Role)))
	if role != models.RoleUser && role != models.RoleAdmin {
		return nil, errors.New("invalid role claim")
	}
	return &Principal{ID: id, Email: claims.Email, Role: role}, nil
}

// subjectID resolves the user id from the canonical "sub" claim, falling
// back to the legacy "_id" and "userId" shapes in that order.
func subjectID(c *tokenClaims) (int64, error) {
	if c.Subject != "" {
		return parseID(c.Subject)
	}
	for _, legacy := range []any{c.LegacyID, c.LegacyUserID} {
		if legacy == nil {
			continue
		}
		return coerceID(legacy)
	}
	return 0, errors.New("token has no subject claim")
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid subject claim %q", s)
	}
	return id, nil
}

func coerceID(v any) (int64, error) {
	switch t := v.(type) {
	case string:
		return parseID(t)
	case float64:
		return parseID(strconv.FormatFloat(t, 'f', -1, 64))
	case json.Number:
		return parseID(t.String())
	default:
		return 0, fmt.Errorf("unsupported subject claim type %T", v)
	}
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, error) {
	if header == "" {
		return "", errors.New("missing authorization header")
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("invalid authorization header")
	}
	return strings.TrimSpace(parts[1]), nil
}

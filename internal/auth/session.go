package auth

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Session carries the caller's bearer credential and role claim through
// the pipeline. It is passed explicitly into every outbound client call;
// expiry is detected by the backends (401), never decided locally.
type Session struct {
	Token string
	Role  string
}

// Valid reports whether the session carries a credential at all.
func (s Session) Valid() bool { return s.Token != "" }

type roleClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// FromRequest extracts the bearer token from the Authorization header.
// The role claim is read without signature verification: this service only
// forwards the credential, the providers behind it are the authority.
func FromRequest(r *http.Request) Session {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || strings.TrimSpace(token) == "" {
		return Session{}
	}
	token = strings.TrimSpace(token)

	claims := &roleClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return Session{Token: token}
	}

	return Session{Token: token, Role: claims.Role}
}

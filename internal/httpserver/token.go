// internal/httpserver/token.go
//
// Session tokens and cookies.
// A token is an HS256 JWT carrying the session ID and the date key the session
// was started on. It expires at the next local midnight, when the puzzle flips.

package httpserver

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/robalobadob/rooted/internal/daily"
)

const sessionCookieName = "rooted_session"

var errNoToken = errors.New("no session token")

// sessionClaims are the JWT claims of a session token.
type sessionClaims struct {
	SID  string `json:"sid"`
	Date string `json:"date"` // YYYY-MM-DD the session belongs to
	jwt.RegisteredClaims
}

// signToken creates a token for session id on date, expiring at the next rollover.
func (s *Server) signToken(id, date string, now time.Time) (string, time.Time, error) {
	exp := daily.NextRollover(now)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		SID:  id,
		Date: date,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	})
	ss, err := t.SignedString([]byte(s.opts.Secret))
	return ss, exp, err
}

// parseToken verifies a token and returns its claims.
func (s *Server) parseToken(tok string) (*sessionClaims, error) {
	if tok == "" {
		return nil, errNoToken
	}
	claims := &sessionClaims{}
	t, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.opts.Secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.opts.Now))
	if err != nil {
		return nil, err
	}
	if !t.Valid || claims.SID == "" {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// setSessionCookie writes the session token cookie with appropriate security attributes.
func (s *Server) setSessionCookie(w http.ResponseWriter, token string, exp time.Time) {
	secure := s.opts.SecureCookies
	sameSite := http.SameSiteLaxMode
	if secure {
		sameSite = http.SameSiteNoneMode // required for third‑party contexts when Secure
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: sameSite,
		Expires:  exp,
	})
}

// bearerOrCookie extracts a bearer token from Authorization header or session cookie.
func bearerOrCookie(r *http.Request) string {
	// Authorization: Bearer <token>
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(sessionCookieName); err == nil {
		return c.Value
	}
	return ""
}

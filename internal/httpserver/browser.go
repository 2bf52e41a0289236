// internal/httpserver/browser.go
//
// Browser identity.
// Each browser gets a long-lived cookie holding an HS256 JWT whose subject is
// a random browser ID. Best scores and games are keyed by that ID, which makes
// the server-side score store behave like the browser's own local storage.
//
// A missing, expired or tampered cookie simply yields a fresh identity.

package httpserver

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	browserCookieName = "ethos_browser"
	browserTTL        = 180 * 24 * time.Hour
)

// ctxBrowserKey is the context key type for the browser ID.
type ctxBrowserKey struct{}

// withBrowser resolves (or mints) the browser ID and stores it in the request context.
func (s *Server) withBrowser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := s.parseBrowserToken(browserToken(r))
		if !ok {
			id = uuid.NewString()
			tok, exp, err := s.signBrowserToken(id)
			if err != nil {
				s.log.Error().Err(err).Msg("sign browser token")
				writeError(w, http.StatusInternalServerError, "sign_failed")
				return
			}
			s.setBrowserCookie(w, tok, exp)
		}
		ctx := context.WithValue(r.Context(), ctxBrowserKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// browserID returns the ID placed in the context by withBrowser.
func browserID(r *http.Request) string {
	id, _ := r.Context().Value(ctxBrowserKey{}).(string)
	return id
}

// signBrowserToken creates an HS256 JWT for id.
func (s *Server) signBrowserToken(id string) (string, time.Time, error) {
	now := s.opts.Now()
	exp := now.Add(browserTTL)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   id,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	ss, err := t.SignedString([]byte(s.opts.BrowserSecret))
	return ss, exp, err
}

// parseBrowserToken validates tok and returns its subject.
func (s *Server) parseBrowserToken(tok string) (string, bool) {
	if tok == "" {
		return "", false
	}
	claims := &jwt.RegisteredClaims{}
	t, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.opts.BrowserSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.opts.Now))
	if err != nil || !t.Valid || claims.Subject == "" {
		return "", false
	}
	return claims.Subject, true
}

// setBrowserCookie writes the identity cookie.
func (s *Server) setBrowserCookie(w http.ResponseWriter, token string, exp time.Time) {
	secure := strings.HasPrefix(s.opts.ClientOrigin, "https://")
	sameSite := http.SameSiteLaxMode
	if secure {
		sameSite = http.SameSiteNoneMode // cross-site front-end needs None + Secure
	}
	http.SetCookie(w, &http.Cookie{
		Name:     browserCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: sameSite,
		Expires:  exp,
	})
}

// browserToken extracts the token from an Authorization bearer header or the cookie.
func browserToken(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(browserCookieName); err == nil {
		return c.Value
	}
	return ""
}

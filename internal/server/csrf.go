package server

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"net/http"

	"github.com/goliatone/go-openaccount/pkg/render"
)

// Double-submit cookie: the page carries a hidden token that must match the
// cookie on submission. Stateless, which suits a service that stores nothing.
const (
	csrfCookieName = "oa_csrf"
	csrfFieldName  = "_csrf"
)

// csrfHidden returns the hidden-field map for a form render, issuing a token
// cookie when the request does not carry one yet.
func (s *Server) csrfHidden(w http.ResponseWriter, r *http.Request) (map[string]string, error) {
	if !s.cfg.CSRF {
		return nil, nil
	}
	token, err := s.csrfToken(w, r)
	if err != nil {
		return nil, err
	}
	return render.MergeHiddenFields(nil, render.CSRFToken(csrfFieldName, token)), nil
}

func (s *Server) csrfToken(w http.ResponseWriter, r *http.Request) (string, error) {
	if cookie, err := r.Cookie(csrfCookieName); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("server: csrf token: %w", err)
	}
	token := hex.EncodeToString(buf)

	http.SetCookie(w, &http.Cookie{
		Name:     csrfCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return token, nil
}

// csrfValid checks the submitted token against the cookie. Call after
// ParseForm.
func (s *Server) csrfValid(r *http.Request) bool {
	if !s.cfg.CSRF {
		return true
	}
	cookie, err := r.Cookie(csrfCookieName)
	if err != nil || cookie.Value == "" {
		return false
	}
	field := r.PostFormValue(csrfFieldName)
	if field == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(cookie.Value), []byte(field)) == 1
}

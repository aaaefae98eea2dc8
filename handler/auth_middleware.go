package handler

import (
	"context"
	"errors"
	"net/http"

	"student-records-api/logger"
	"student-records-api/metrics"
	"student-records-api/render"
	"student-records-api/service"
)

type contextKey string

// SubjectKey carries the authenticated username through the request context.
const SubjectKey contextKey = "subject"

// TokenHeader is the request header API clients present tokens in.
const TokenHeader = "x-access-token"

// SessionCookieName is the cookie carrying the opaque browser session ID.
const SessionCookieName = "session_id"

// AuthMiddleware is the authorization gate around every record operation.
// It resolves the raw token (header first, then session cookie), validates
// it, and either forwards the request with the subject in context or
// short-circuits: a negotiated 401 payload for JSON/XML callers, a redirect
// to the login page for browsers.
type AuthMiddleware struct {
	auth       *service.AuthService
	sessions   *service.SessionService
	negotiator *render.Negotiator
}

func NewAuthMiddleware(auth *service.AuthService, sessions *service.SessionService, negotiator *render.Negotiator) *AuthMiddleware {
	return &AuthMiddleware{auth: auth, sessions: sessions, negotiator: negotiator}
}

func (m *AuthMiddleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := m.resolveToken(r)

		subject, err := m.auth.ValidateToken(token)
		if err != nil {
			m.reject(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), SubjectKey, subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// resolveToken prefers the API header and falls back to the session store.
// The validator itself only ever sees the raw string.
func (m *AuthMiddleware) resolveToken(r *http.Request) string {
	if token := r.Header.Get(TokenHeader); token != "" {
		return token
	}
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	token, err := m.sessions.Token(r.Context(), cookie.Value)
	if err != nil {
		return ""
	}
	return token
}

func (m *AuthMiddleware) reject(w http.ResponseWriter, r *http.Request, err error) {
	kind := "invalid"
	switch {
	case errors.Is(err, service.ErrTokenMissing):
		kind = "missing"
	case errors.Is(err, service.ErrTokenExpired):
		kind = "expired"
	}
	metrics.AuthFailuresTotal.WithLabelValues(kind).Inc()
	logger.Log.WithError(err).WithField("path", r.URL.Path).Warn("Rejected unauthenticated request")

	f := render.ResolveFormat(r)
	if f == render.FormatHTML {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	m.negotiator.Error(w, f, http.StatusUnauthorized, err.Error())
}

package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

const (
	sessionIDKey  contextKey = "session_id"
	sessionHeader            = "X-Session-ID"
	sessionCookie            = "thumbsmith_session"
)

// SessionID resolves the caller's session identity from the X-Session-ID
// header or the session cookie, minting a fresh one when absent. The ID is
// echoed back on both channels so browser and API clients can hold on to it.
func SessionID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sid := r.Header.Get(sessionHeader)
		if sid == "" {
			if c, err := r.Cookie(sessionCookie); err == nil {
				sid = c.Value
			}
		}
		if sid == "" {
			sid = uuid.NewString()
		}

		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookie,
			Value:    sid,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		w.Header().Set(sessionHeader, sid)

		ctx := context.WithValue(r.Context(), sessionIDKey, sid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SessionIDFromContext returns the resolved session ID, or "" outside the
// middleware.
func SessionIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(sessionIDKey).(string); ok {
		return v
	}
	return ""
}

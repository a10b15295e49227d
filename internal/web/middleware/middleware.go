// Package middleware holds the HTTP middleware specific to the storefront
// front-end: request logging and the signed-in / admin gates.
package middleware

import (
	"net/http"
	"net/url"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/buysphere/storefront/internal/platform/observability"
	"github.com/buysphere/storefront/internal/web/session"
)

// RequestLogger logs one structured line per request and seeds the request
// context with the logger so handlers can log with the request id attached.
func RequestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reqLogger := logger.With(zap.String("requestId", chimiddleware.GetReqID(r.Context())))
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			ctx := observability.WithLogger(r.Context(), reqLogger)
			next.ServeHTTP(ww, r.WithContext(ctx))

			reqLogger.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}

// RequireAuth redirects anonymous visitors to the login page, preserving the
// requested URL so login can bounce back.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := session.Get(r)
		if !sess.SignedIn() {
			target := "/login"
			if r.Method == http.MethodGet && r.URL.Path != "/" {
				target += "?next=" + url.QueryEscape(r.URL.RequestURI())
			}
			http.Redirect(w, r, target, http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin hides the admin surface from non-admin sessions. Anonymous
// visitors go to login; signed-in non-admins get the site's 404 page so the
// surface stays undiscoverable. A nil notFound falls back to the plain-text
// handler.
func RequireAdmin(notFound http.HandlerFunc) func(http.Handler) http.Handler {
	if notFound == nil {
		notFound = http.NotFound
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := session.Get(r)
			if !sess.SignedIn() {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
			if !sess.IsAdmin {
				notFound(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

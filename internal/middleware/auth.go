package middleware

import (
	"net/http"
	"strings"

	"promptbase/internal/auth"
	"promptbase/internal/httputil"
)

// Auth verifies the Bearer token when one is present and attaches the
// identity to the request context. Requests without a token proceed as
// anonymous: public browsing needs no session, and the folder-scoped
// operations reject anonymous callers themselves.
func Auth(verifier auth.TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				httputil.RespondError(w, http.StatusUnauthorized, "malformed authorization header")
				return
			}

			claims, err := verifier.VerifyToken(token)
			if err != nil {
				httputil.RespondError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			next.ServeHTTP(w, httputil.WithIdentity(r, claims.GetUserID(), token))
		})
	}
}

// HeaderAuth trusts an X-User-ID header instead of verifying tokens. Local
// mode only; never wired when a JWKS URL is configured.
func HeaderAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if userID := r.Header.Get("X-User-ID"); userID != "" {
				r = httputil.WithIdentity(r, userID, "")
			}
			next.ServeHTTP(w, r)
		})
	}
}

package handler

import (
	"log/slog"
	"net/http"

	"promptbase/internal/auth"
	"promptbase/internal/httputil"
)

// SessionHandler exposes the password sign-in and sign-out flows. OAuth
// sign-in happens on the hosted Supabase flow; clients using it skip this
// handler and send their access token directly.
type SessionHandler struct {
	client   *auth.Client
	registry *EngineRegistry
	logger   *slog.Logger
}

// NewSessionHandler creates a session handler. client is nil in local mode,
// which disables the password flow.
func NewSessionHandler(client *auth.Client, registry *EngineRegistry, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{client: client, registry: registry, logger: logger}
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignIn exchanges credentials for an access token.
// POST /api/session
func (h *SessionHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	if h.client == nil {
		httputil.RespondError(w, http.StatusNotImplemented, "password sign-in is not configured")
		return
	}

	var req signInRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := h.client.PasswordGrant(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.Warn("password sign-in failed", "error", err)
		httputil.RespondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, token)
}

// SignOut revokes the caller's token (best effort) and drops their hosted
// engine so the next request starts anonymous.
// DELETE /api/session
func (h *SessionHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)
	if userID == "" {
		httputil.RespondError(w, http.StatusUnauthorized, "no active session")
		return
	}

	if h.client != nil {
		if token := httputil.GetAccessToken(r); token != "" {
			if err := h.client.Logout(r.Context(), token); err != nil {
				h.logger.Warn("token revocation failed", "error", err)
			}
		}
	}
	h.registry.Invalidate(userID)

	w.WriteHeader(http.StatusNoContent)
}

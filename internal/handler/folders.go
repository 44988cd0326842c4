package handler

import (
	"log/slog"
	"net/http"

	"promptbase/internal/domain/models"
	"promptbase/internal/httputil"
)

// FolderHandler exposes the folder write operations.
type FolderHandler struct {
	registry *EngineRegistry
	logger   *slog.Logger
}

// NewFolderHandler creates a folder handler over the engine registry.
func NewFolderHandler(registry *EngineRegistry, logger *slog.Logger) *FolderHandler {
	return &FolderHandler{registry: registry, logger: logger}
}

// CreateFolder creates a folder for the authenticated viewer.
// POST /api/folders
func (h *FolderHandler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	var req models.CreateFolderRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	hosted := h.registry.engineFor(r.Context(), httputil.GetUserID(r), httputil.GetAccessToken(r))
	hosted.mu.Lock()
	defer hosted.mu.Unlock()

	folder, err := hosted.engine.Actions.CreateFolder(r.Context(), req.Name)
	if err != nil {
		handleError(w, err, hosted.notifier.Drain())
		return
	}
	hosted.notifier.Drain()

	httputil.RespondJSON(w, http.StatusCreated, folder)
}

// DeleteResponse reports a destructive operation's outcome plus the path the
// client should move to afterwards.
type DeleteResponse struct {
	Deleted bool   `json:"deleted"`
	Path    string `json:"path"`
}

// DeleteFolder deletes a folder and its prompts after explicit confirmation
// (confirm=true), navigating away when the folder was active.
// DELETE /api/folders/{id}?confirm=true
func (h *FolderHandler) DeleteFolder(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "folder id is required")
		return
	}

	hosted := h.registry.engineFor(r.Context(), httputil.GetUserID(r), httputil.GetAccessToken(r))
	hosted.mu.Lock()
	defer hosted.mu.Unlock()

	hosted.confirmer.approved = r.URL.Query().Get("confirm") == "true"
	deleted := hosted.engine.DeleteFolderAndNavigate(r.Context(), id)

	if !deleted {
		if messages := hosted.notifier.Drain(); len(messages) > 0 {
			httputil.RespondError(w, http.StatusBadGateway, messages[0])
			return
		}
		// Rejected before any network call: no session or no confirmation.
		httputil.RespondError(w, http.StatusBadRequest, "folder deletion requires a session and confirm=true")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, DeleteResponse{
		Deleted: true,
		Path:    hosted.history.Path(),
	})
}

package handler

import (
	"log/slog"
	"net/http"

	"promptbase/internal/domain/models"
	"promptbase/internal/httputil"
)

// PromptHandler exposes the prompt write operations.
type PromptHandler struct {
	registry *EngineRegistry
	logger   *slog.Logger
}

// NewPromptHandler creates a prompt handler over the engine registry.
func NewPromptHandler(registry *EngineRegistry, logger *slog.Logger) *PromptHandler {
	return &PromptHandler{registry: registry, logger: logger}
}

// SaveResponse is the save outcome plus the path of the prompt's new home.
type SaveResponse struct {
	Result *models.SaveResult `json:"result"`
	Path   string             `json:"path"`
}

// SavePrompt creates or updates a prompt (the body's id decides which) and
// navigates to where it ended up.
// POST /api/prompts
func (h *PromptHandler) SavePrompt(w http.ResponseWriter, r *http.Request) {
	var req models.SavePromptRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	hosted := h.registry.engineFor(r.Context(), httputil.GetUserID(r), httputil.GetAccessToken(r))
	hosted.mu.Lock()
	defer hosted.mu.Unlock()

	result, err := hosted.engine.SavePromptAndNavigate(r.Context(), &req)
	if err != nil {
		handleError(w, err, hosted.notifier.Drain())
		return
	}
	hosted.notifier.Drain()

	status := http.StatusOK
	if req.ID == "" {
		status = http.StatusCreated
	}
	httputil.RespondJSON(w, status, SaveResponse{
		Result: result,
		Path:   hosted.history.Path(),
	})
}

// DeletePrompt deletes a single prompt after explicit confirmation.
// DELETE /api/prompts/{id}?confirm=true
func (h *PromptHandler) DeletePrompt(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "prompt id is required")
		return
	}

	hosted := h.registry.engineFor(r.Context(), httputil.GetUserID(r), httputil.GetAccessToken(r))
	hosted.mu.Lock()
	defer hosted.mu.Unlock()

	hosted.confirmer.approved = r.URL.Query().Get("confirm") == "true"
	deleted := hosted.engine.Actions.DeletePrompt(r.Context(), id)

	if !deleted {
		if messages := hosted.notifier.Drain(); len(messages) > 0 {
			httputil.RespondError(w, http.StatusBadGateway, messages[0])
			return
		}
		httputil.RespondError(w, http.StatusBadRequest, "prompt deletion requires a session and confirm=true")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, DeleteResponse{
		Deleted: true,
		Path:    hosted.history.Path(),
	})
}

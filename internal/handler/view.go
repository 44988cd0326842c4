package handler

import (
	"log/slog"
	"net/http"

	"promptbase/internal/domain/models"
	"promptbase/internal/httputil"
)

// ViewHandler resolves browser paths to rendered view state.
type ViewHandler struct {
	registry *EngineRegistry
	logger   *slog.Logger
}

// NewViewHandler creates a view handler over the engine registry.
func NewViewHandler(registry *EngineRegistry, logger *slog.Logger) *ViewHandler {
	return &ViewHandler{registry: registry, logger: logger}
}

// ViewResponse is the full view state for one location: the canonical path,
// the resolved selector, and everything the presentation layer renders.
type ViewResponse struct {
	Path             string                   `json:"path"`
	Folder           string                   `json:"folder"`
	Context          models.ViewContext       `json:"context"`
	Query            string                   `json:"query,omitempty"`
	Title            string                   `json:"title"`
	Loading          bool                     `json:"loading"`
	Error            string                   `json:"error,omitempty"`
	Folders          []models.Folder          `json:"folders"`
	CommunityFolders []models.CommunityFolder `json:"community_folders"`
	Prompts          []models.Prompt          `json:"prompts"`
}

// GetView navigates the viewer's engine to the requested path and returns
// the resulting view state.
// GET /api/view?path=/my-prompts/frontend&q=react
func (h *ViewHandler) GetView(w http.ResponseWriter, r *http.Request) {
	hosted := h.registry.engineFor(r.Context(), httputil.GetUserID(r), httputil.GetAccessToken(r))
	hosted.mu.Lock()
	defer hosted.mu.Unlock()

	engine := hosted.engine
	if path := r.URL.Query().Get("path"); path != "" {
		// Address-bar navigation: set the location, then let the
		// URL -> state watcher resolve it.
		hosted.history.Set(path)
		engine.Nav.HandleLocationChange()
	}
	engine.Nav.SetQuery(r.URL.Query().Get("q"))

	sel := engine.Nav.Selector()
	resp := ViewResponse{
		Path:             hosted.history.Path(),
		Folder:           sel.Folder,
		Context:          sel.Context,
		Query:            sel.Query,
		Title:            engine.Nav.ActiveFolderName(),
		Loading:          engine.Cache.Loading(),
		Folders:          engine.Cache.Folders(),
		CommunityFolders: engine.Cache.CommunityFolders(),
		Prompts:          engine.FilteredPrompts(),
	}
	if err := engine.Cache.Err(); err != nil {
		resp.Error = err.Error()
	}

	httputil.RespondJSON(w, http.StatusOK, resp)
}

// HealthCheck reports liveness.
// GET /health
func (h *ViewHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

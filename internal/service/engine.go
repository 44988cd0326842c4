package service

import (
	"context"
	"log/slog"

	"promptbase/internal/auth"
	"promptbase/internal/cache"
	"promptbase/internal/domain/models"
	"promptbase/internal/domain/repositories"
	"promptbase/internal/filter"
	"promptbase/internal/nav"
)

// Engine wires the session manager, data cache, navigator and action
// orchestrator into one view-state core. There is exactly one writer per
// piece of state: the cache owns records, the navigator owns the selector,
// the session manager owns identity.
//
// Like its parts, the engine is driven from a single event goroutine.
type Engine struct {
	Sessions *auth.Manager
	Cache    *cache.Cache
	Nav      *nav.Navigator
	Actions  *Actions

	logger *slog.Logger
}

// NewEngine assembles the core. Cache changes re-run deferred navigation
// resolution; session changes trigger a silent background reload so
// re-authentication does not flash a full-page loader.
func NewEngine(
	sessions *auth.Manager,
	folders repositories.FolderRepository,
	prompts repositories.PromptRepository,
	history nav.History,
	notifier Notifier,
	confirmer Confirmer,
	logger *slog.Logger,
) *Engine {
	dataCache := cache.New(folders, prompts, logger)
	navigator := nav.New(history, dataCache, logger)
	actions := NewActions(folders, prompts, dataCache, sessions, notifier, confirmer, logger)

	e := &Engine{
		Sessions: sessions,
		Cache:    dataCache,
		Nav:      navigator,
		Actions:  actions,
		logger:   logger,
	}

	dataCache.OnChange(navigator.Resync)
	sessions.OnChange(func(s *models.Session) {
		e.Cache.Load(context.Background(), s, false)
	})

	return e
}

// Start applies the initial location and performs the first, user-visible
// data load.
func (e *Engine) Start(ctx context.Context) {
	e.Nav.HandleLocationChange()
	e.Cache.Load(ctx, e.Sessions.Current(), true)
}

// FilteredPrompts derives the displayed prompt list for the current
// selector and viewer.
func (e *Engine) FilteredPrompts() []models.Prompt {
	var viewerID string
	if s := e.Sessions.Current(); s != nil {
		viewerID = s.UserID
	}
	return filter.Visible(e.Cache.Prompts(), e.Nav.Selector(), viewerID)
}

// SavePromptAndNavigate saves a prompt and moves the selector to where the
// prompt now lives: its community folder (keyed by name) for public
// prompts, its personal folder otherwise.
func (e *Engine) SavePromptAndNavigate(ctx context.Context, req *models.SavePromptRequest) (*models.SaveResult, error) {
	result, err := e.Actions.SavePrompt(ctx, req)
	if result == nil {
		return nil, err
	}

	if result.IsPublic {
		e.Nav.Select(e.communityFolderFor(result.PromptID), models.ViewCommunity)
	} else {
		e.Nav.Select(result.FolderID, models.ViewPersonal)
	}
	return result, nil
}

// DeleteFolderAndNavigate deletes a folder and, when it was the active
// selection, falls back to the root selector.
func (e *Engine) DeleteFolderAndNavigate(ctx context.Context, id string) bool {
	ok := e.Actions.DeleteFolder(ctx, id)
	if ok && e.Nav.Selector().Folder == id {
		e.Nav.Select(models.SelectorAll, models.ViewPersonal)
	}
	return ok
}

// communityFolderFor resolves a prompt to its virtual community folder id
// (the joined folder name). Falls back to the community landing selector for
// prompts without a joined folder.
func (e *Engine) communityFolderFor(promptID string) string {
	for _, p := range e.Cache.Prompts() {
		if p.ID == promptID {
			if p.Folder != nil {
				return p.Folder.Name
			}
			break
		}
	}
	return models.SelectorPublicCommunity
}

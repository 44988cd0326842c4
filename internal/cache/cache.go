// Package cache owns the authoritative in-memory copies of folders and
// prompts for the current viewer and keeps them consistent with the record
// store, either by reloading or by applying local patches after writes.
//
// The cache is driven from a single event goroutine and is not safe for
// concurrent use; hosts that serve multiple interactions serialize access at
// their own edge.
package cache

import (
	"context"
	"errors"
	"log/slog"

	"promptbase/internal/domain"
	"promptbase/internal/domain/models"
	"promptbase/internal/domain/repositories"
)

// Cache holds the fetched folders and prompts plus the loading/error state
// the presentation layer renders from.
type Cache struct {
	folderRepo repositories.FolderRepository
	promptRepo repositories.PromptRepository
	logger     *slog.Logger

	folders []models.Folder
	prompts []models.Prompt
	loading bool
	err     error

	listeners []func()
}

// New creates an empty cache in the loading state, matching a client that
// has not completed its first fetch yet.
func New(folderRepo repositories.FolderRepository, promptRepo repositories.PromptRepository, logger *slog.Logger) *Cache {
	return &Cache{
		folderRepo: folderRepo,
		promptRepo: promptRepo,
		logger:     logger,
		loading:    true,
	}
}

// OnChange registers a callback fired after every state change, including
// loading-flag transitions. The navigator uses it to retry deferred slug
// resolution.
func (c *Cache) OnChange(fn func()) {
	c.listeners = append(c.listeners, fn)
}

func (c *Cache) notify() {
	for _, fn := range c.listeners {
		fn()
	}
}

// Folders returns the cached folders owned by the current viewer, ordered by
// creation ascending. Callers must not mutate the returned slice.
func (c *Cache) Folders() []models.Folder { return c.folders }

// Prompts returns the cached prompts visible to the current viewer, ordered
// by creation descending. Callers must not mutate the returned slice.
func (c *Cache) Prompts() []models.Prompt { return c.prompts }

// Loading reports whether a user-visible load is in flight.
func (c *Cache) Loading() bool { return c.loading }

// Err returns the persistent fetch-error state, nil when the last load
// succeeded. An empty result is never an error.
func (c *Cache) Err() error { return c.err }

// CommunityFolders derives the virtual community folder list: public prompts
// that carry a joined folder, grouped by folder name. Multiple users'
// folders sharing a display name form one browsable bucket, so
// deduplication is by name and the virtual id IS the name. Callers must not
// treat it as a backend folder id.
func (c *Cache) CommunityFolders() []models.CommunityFolder {
	seen := make(map[string]bool)
	var out []models.CommunityFolder
	for i := range c.prompts {
		p := &c.prompts[i]
		if !p.IsPublic || p.Folder == nil || seen[p.Folder.Name] {
			continue
		}
		seen[p.Folder.Name] = true
		out = append(out, models.CommunityFolder{ID: p.Folder.Name, Name: p.Folder.Name})
	}
	return out
}

// Load fetches folders and prompts for the given session and replaces the
// cached copies. A nil session loads the anonymous view (public prompts,
// no folders). showLoading controls whether the user-visible loading flag is
// toggled; background refreshes on re-auth pass false so the view does not
// flash a full-page loader.
func (c *Cache) Load(ctx context.Context, session *models.Session, showLoading bool) {
	if showLoading {
		c.loading = true
		c.notify()
	}
	c.err = nil

	var folders []models.Folder
	var viewerID string
	if session != nil {
		viewerID = session.UserID
		fetched, err := c.folderRepo.ListByOwner(ctx, session.UserID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			c.fail(err)
			return
		}
		folders = fetched
	}

	prompts, err := c.promptRepo.ListVisible(ctx, viewerID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		c.fail(err)
		return
	}

	c.folders = folders
	c.prompts = prompts
	c.loading = false
	c.logger.Debug("data loaded",
		"folders", len(folders),
		"prompts", len(prompts),
		"anonymous", session == nil,
	)
	c.notify()
}

// fail records the generic data-fetch error state. Previously cached data is
// kept; the presentation layer decides what to render alongside the error.
func (c *Cache) fail(err error) {
	c.logger.Error("data fetch failed", "error", err)
	c.err = &domain.FetchError{Message: "could not load your prompts"}
	c.loading = false
	c.notify()
}

// ApplyFolderCreated appends a freshly inserted folder, preserving creation
// order.
func (c *Cache) ApplyFolderCreated(folder *models.Folder) {
	c.folders = append(c.folders, *folder)
	c.notify()
}

// ApplyFolderDeleted removes the folder and every prompt referencing it,
// mirroring the backend cascade without a refetch.
func (c *Cache) ApplyFolderDeleted(id string) {
	folders := c.folders[:0:0]
	for _, f := range c.folders {
		if f.ID != id {
			folders = append(folders, f)
		}
	}
	prompts := c.prompts[:0:0]
	for _, p := range c.prompts {
		if p.FolderID != id {
			prompts = append(prompts, p)
		}
	}
	c.folders, c.prompts = folders, prompts
	c.notify()
}

// ApplyPromptCreated prepends a freshly inserted prompt, preserving
// descending-creation order.
func (c *Cache) ApplyPromptCreated(prompt *models.Prompt) {
	c.prompts = append([]models.Prompt{*prompt}, c.prompts...)
	c.notify()
}

// ApplyPromptUpdated patches the single matching cache entry in place.
func (c *Cache) ApplyPromptUpdated(prompt *models.Prompt) {
	for i := range c.prompts {
		if c.prompts[i].ID == prompt.ID {
			c.prompts[i] = *prompt
			break
		}
	}
	c.notify()
}

// ApplyPromptDeleted removes the single matching cache entry.
func (c *Cache) ApplyPromptDeleted(id string) {
	prompts := c.prompts[:0:0]
	for _, p := range c.prompts {
		if p.ID != id {
			prompts = append(prompts, p)
		}
	}
	c.prompts = prompts
	c.notify()
}

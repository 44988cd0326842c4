package nav

import (
	"log/slog"

	"promptbase/internal/domain/models"
)

// History abstracts the browser location bar: the current path and pushing a
// new navigable entry. Pushing never replaces or reloads.
type History interface {
	Path() string
	Push(path string)
}

// DataSource exposes the cache state the navigator needs for slug
// resolution: the two folder collections and the loading flag.
type DataSource interface {
	Folders() []models.Folder
	CommunityFolders() []models.CommunityFolder
	Loading() bool
}

// Navigator keeps the (folder selector, view context) pair and the browser
// path bidirectionally synchronized. The two directions are separate
// watchers: HandleLocationChange applies URL -> state, and state changes or
// data changes flow through syncPath for state -> URL. A loading gate and an
// equality check against the current path prevent feedback loops and
// duplicate history entries.
type Navigator struct {
	history History
	data    DataSource
	logger  *slog.Logger

	folder  string
	context models.ViewContext
	query   string

	// pending holds a dynamic route whose slug could not be resolved yet
	// because the relevant collection was not loaded. Resync retries it.
	pending *Route

	// initialized becomes true once the URL -> state direction has been
	// applied at least once (or a caller navigated explicitly). Until then
	// the state -> URL direction stays off, so a background data refresh
	// cannot push the constructor defaults over a deep link.
	initialized bool
}

// New creates a navigator at the root selector.
func New(history History, data DataSource, logger *slog.Logger) *Navigator {
	return &Navigator{
		history: history,
		data:    data,
		logger:  logger,
		folder:  models.SelectorAll,
		context: models.ViewPersonal,
	}
}

// Selector returns the current navigation selector.
func (n *Navigator) Selector() models.Selector {
	return models.Selector{Folder: n.folder, Context: n.context, Query: n.query}
}

// SetQuery updates the free-text search query. The query is not part of the
// path, so no history entry is written.
func (n *Navigator) SetQuery(q string) {
	n.query = q
}

// Select moves to the given folder selector and context, discarding any
// deferred deep link, and pushes the canonical path once data is loaded.
func (n *Navigator) Select(folder string, context models.ViewContext) {
	n.initialized = true
	n.pending = nil
	if n.folder == folder && n.context == context {
		return
	}
	n.folder = folder
	n.context = context
	n.syncPath()
}

// HandleLocationChange applies the current browser path to the selector
// state. Called on initial load and on history back/forward navigation.
func (n *Navigator) HandleLocationChange() {
	n.initialized = true
	route := ParsePath(n.history.Path())

	switch route.Kind {
	case RouteRoot:
		n.pending = nil
		n.folder, n.context = models.SelectorAll, models.ViewPersonal
	case RouteCommunity:
		n.pending = nil
		n.folder, n.context = models.SelectorPublicCommunity, models.ViewCommunity
	case RouteMyPrompts:
		n.pending = nil
		n.folder, n.context = models.SelectorMyPrompts, models.ViewPersonal
	case RoutePersonalFolder, RouteCommunityFolder:
		n.pending = &route
		n.resolvePending()
	}

	// Canonicalize: unmatched paths land on "/", legacy folder paths on
	// their /my-prompts form.
	n.syncPath()
}

// Resync retries deferred slug resolution and re-runs the state -> URL
// direction. The cache calls it whenever the folder collections or the
// loading flag change.
func (n *Navigator) Resync() {
	n.resolvePending()
	n.syncPath()
}

// ActiveFolderName returns the display title for the current selector.
func (n *Navigator) ActiveFolderName() string {
	switch n.folder {
	case models.SelectorAll:
		return "All Prompts"
	case models.SelectorPublicCommunity:
		return "Discover (Community)"
	case models.SelectorMyPrompts:
		return "My Prompts"
	}
	for _, f := range n.data.Folders() {
		if f.ID == n.folder {
			return f.Name
		}
	}
	for _, f := range n.data.CommunityFolders() {
		if f.ID == n.folder {
			return f.Name
		}
	}
	return "General"
}

// resolvePending resolves a deferred dynamic route against the loaded
// collections. While the data is still loading and no match exists the route
// stays pending; once loading has finished with no match, the section's
// default selector wins.
func (n *Navigator) resolvePending() {
	if n.pending == nil {
		return
	}
	route := *n.pending

	switch route.Kind {
	case RoutePersonalFolder:
		if folders := n.data.Folders(); len(folders) > 0 {
			if id := ResolvePersonalSlug(route.Slug, folders); id != models.SelectorAll {
				n.folder, n.context = id, models.ViewPersonal
				n.pending = nil
				return
			}
		}
		if !n.data.Loading() {
			n.logger.Debug("personal folder slug did not resolve", "slug", route.Slug)
			n.folder, n.context = models.SelectorAll, models.ViewPersonal
			n.pending = nil
		}
	case RouteCommunityFolder:
		if community := n.data.CommunityFolders(); len(community) > 0 {
			if id := ResolveCommunitySlug(route.Slug, community); id != models.SelectorPublicCommunity {
				n.folder, n.context = id, models.ViewCommunity
				n.pending = nil
				return
			}
		}
		if !n.data.Loading() {
			n.logger.Debug("community folder slug did not resolve", "slug", route.Slug)
			n.folder, n.context = models.SelectorPublicCommunity, models.ViewCommunity
			n.pending = nil
		}
	}
}

// syncPath pushes the canonical path for the current state when it differs
// from the browser path. Gated while data is loading so an interrupted
// default selector cannot overwrite a deep link before folders are fetched,
// and until the initial location has been applied so a reload finishing
// before HandleLocationChange cannot do the same.
func (n *Navigator) syncPath() {
	if !n.initialized || n.data.Loading() || n.pending != nil {
		return
	}
	want := PathFor(n.Selector(), n.data.Folders(), n.data.CommunityFolders())
	if want != n.history.Path() {
		n.history.Push(want)
	}
}

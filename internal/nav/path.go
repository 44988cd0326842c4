package nav

import (
	"strings"

	"promptbase/internal/domain/models"
)

// RouteKind classifies a parsed browser path.
type RouteKind int

const (
	RouteRoot RouteKind = iota
	RouteCommunity
	RouteMyPrompts
	RoutePersonalFolder  // /my-prompts/{slug} and legacy /folder/{slug}
	RouteCommunityFolder // /community/{slug}
)

// Route is a parsed path before slug resolution. Slug is set only for the
// dynamic-segment kinds.
type Route struct {
	Kind RouteKind
	Slug string
}

// ParsePath classifies a browser path against the canonical path table.
// Unmatched paths fall back to the root route.
func ParsePath(path string) Route {
	switch path {
	case "", "/":
		return Route{Kind: RouteRoot}
	case "/community":
		return Route{Kind: RouteCommunity}
	case "/my-prompts":
		return Route{Kind: RouteMyPrompts}
	}

	if slug, ok := singleSegment(path, "/my-prompts/"); ok {
		return Route{Kind: RoutePersonalFolder, Slug: slug}
	}
	// Backward compatibility for the old /folder/ prefix.
	if slug, ok := singleSegment(path, "/folder/"); ok {
		return Route{Kind: RoutePersonalFolder, Slug: slug}
	}
	if slug, ok := singleSegment(path, "/community/"); ok {
		return Route{Kind: RouteCommunityFolder, Slug: slug}
	}

	return Route{Kind: RouteRoot}
}

// singleSegment extracts a one-segment suffix after prefix, rejecting empty
// or nested segments.
func singleSegment(path, prefix string) (string, bool) {
	rest, ok := strings.CutPrefix(path, prefix)
	if !ok || rest == "" || strings.Contains(rest, "/") {
		return "", false
	}
	return rest, true
}

// PathFor computes the canonical path for a selector, reverse-looking the
// folder name up in the collection the context points at. Selectors that no
// longer resolve (for example a deleted folder) map to the root path.
func PathFor(sel models.Selector, folders []models.Folder, community []models.CommunityFolder) string {
	switch sel.Folder {
	case models.SelectorAll:
		return "/"
	case models.SelectorPublicCommunity:
		return "/community"
	case models.SelectorMyPrompts:
		return "/my-prompts"
	}

	if sel.Context == models.ViewCommunity {
		for _, f := range community {
			if f.ID == sel.Folder {
				return "/community/" + Slugify(f.Name)
			}
		}
		return "/"
	}

	for _, f := range folders {
		if f.ID == sel.Folder {
			return "/my-prompts/" + Slugify(f.Name)
		}
	}
	return "/"
}

// ResolvePersonalSlug returns the id of the personal folder whose name
// slugifies to slug, or SelectorAll when none matches.
func ResolvePersonalSlug(slug string, folders []models.Folder) string {
	for _, f := range folders {
		if Slugify(f.Name) == slug {
			return f.ID
		}
	}
	return models.SelectorAll
}

// ResolveCommunitySlug returns the virtual id (the folder name) of the
// community folder whose name slugifies to slug, or SelectorPublicCommunity
// when none matches.
func ResolveCommunitySlug(slug string, community []models.CommunityFolder) string {
	for _, f := range community {
		if Slugify(f.Name) == slug {
			return f.ID
		}
	}
	return models.SelectorPublicCommunity
}

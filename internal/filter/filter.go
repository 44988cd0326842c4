// Package filter derives the displayed prompt list from the raw prompt set
// and the navigation selector. It is pure: no side effects, no re-sorting,
// byte-identical output for identical input, safe to call on every render.
package filter

import (
	"strings"

	"promptbase/internal/domain/models"
)

// Visible filters prompts for the given selector and viewer. Input order is
// preserved; callers supply prompts pre-sorted by creation descending.
// viewerID is empty for anonymous viewers.
func Visible(prompts []models.Prompt, sel models.Selector, viewerID string) []models.Prompt {
	out := prompts

	// Community context only ever shows public prompts.
	if sel.Context == models.ViewCommunity {
		out = keep(out, func(p *models.Prompt) bool { return p.IsPublic })
	}

	switch sel.Folder {
	case models.SelectorAll:
		// No further restriction.
	case models.SelectorPublicCommunity:
		out = keep(out, func(p *models.Prompt) bool { return p.IsPublic })
	case models.SelectorMyPrompts:
		// Empty for anonymous viewers: no prompt has an empty owner.
		out = keep(out, func(p *models.Prompt) bool {
			return viewerID != "" && p.OwnerID == viewerID
		})
	default:
		if sel.Context == models.ViewCommunity {
			// Community folders are identified by name; older records
			// without a joined folder fall back to folder-id equality.
			out = keep(out, func(p *models.Prompt) bool {
				if p.Folder != nil {
					return p.Folder.Name == sel.Folder
				}
				return p.FolderID == sel.Folder
			})
		} else {
			// Personal folder identity is always by id, never by name.
			out = keep(out, func(p *models.Prompt) bool {
				return p.FolderID == sel.Folder
			})
		}
	}

	if q := strings.TrimSpace(sel.Query); q != "" {
		q = strings.ToLower(q)
		out = keep(out, func(p *models.Prompt) bool {
			return strings.Contains(strings.ToLower(p.Title), q) ||
				strings.Contains(strings.ToLower(p.Content), q)
		})
	}

	return out
}

func keep(prompts []models.Prompt, pred func(*models.Prompt) bool) []models.Prompt {
	out := make([]models.Prompt, 0, len(prompts))
	for i := range prompts {
		if pred(&prompts[i]) {
			out = append(out, prompts[i])
		}
	}
	return out
}

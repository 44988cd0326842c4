package nav

import (
	"testing"

	"promptbase/internal/domain/models"
)

func TestParsePath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected Route
	}{
		{"root", "/", Route{Kind: RouteRoot}},
		{"empty", "", Route{Kind: RouteRoot}},
		{"community landing", "/community", Route{Kind: RouteCommunity}},
		{"my prompts", "/my-prompts", Route{Kind: RouteMyPrompts}},
		{"personal folder", "/my-prompts/work-notes", Route{Kind: RoutePersonalFolder, Slug: "work-notes"}},
		{"legacy folder prefix", "/folder/work-notes", Route{Kind: RoutePersonalFolder, Slug: "work-notes"}},
		{"community folder", "/community/recipes", Route{Kind: RouteCommunityFolder, Slug: "recipes"}},
		{"unknown path falls back to root", "/settings", Route{Kind: RouteRoot}},
		{"nested segment falls back to root", "/my-prompts/a/b", Route{Kind: RouteRoot}},
		{"empty slug falls back to root", "/community/", Route{Kind: RouteRoot}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParsePath(tt.path)
			if got != tt.expected {
				t.Errorf("ParsePath(%q) = %+v, want %+v", tt.path, got, tt.expected)
			}
		})
	}
}

func TestPathFor(t *testing.T) {
	folders := []models.Folder{
		{ID: "f1", Name: "Work Notes"},
		{ID: "f2", Name: "TÜRKÇE Şeker"},
	}
	community := []models.CommunityFolder{
		{ID: "Recipes", Name: "Recipes"},
	}

	tests := []struct {
		name     string
		sel      models.Selector
		expected string
	}{
		{
			name:     "all prompts",
			sel:      models.Selector{Folder: models.SelectorAll, Context: models.ViewPersonal},
			expected: "/",
		},
		{
			name:     "community landing",
			sel:      models.Selector{Folder: models.SelectorPublicCommunity, Context: models.ViewCommunity},
			expected: "/community",
		},
		{
			name:     "my prompts",
			sel:      models.Selector{Folder: models.SelectorMyPrompts, Context: models.ViewPersonal},
			expected: "/my-prompts",
		},
		{
			name:     "personal folder",
			sel:      models.Selector{Folder: "f1", Context: models.ViewPersonal},
			expected: "/my-prompts/work-notes",
		},
		{
			name:     "personal folder with diacritics",
			sel:      models.Selector{Folder: "f2", Context: models.ViewPersonal},
			expected: "/my-prompts/turkce-seker",
		},
		{
			name:     "community folder keyed by name",
			sel:      models.Selector{Folder: "Recipes", Context: models.ViewCommunity},
			expected: "/community/recipes",
		},
		{
			name:     "deleted personal folder maps to root",
			sel:      models.Selector{Folder: "gone", Context: models.ViewPersonal},
			expected: "/",
		},
		{
			name:     "unknown community folder maps to root",
			sel:      models.Selector{Folder: "gone", Context: models.ViewCommunity},
			expected: "/",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PathFor(tt.sel, folders, community)
			if got != tt.expected {
				t.Errorf("PathFor(%+v) = %q, want %q", tt.sel, got, tt.expected)
			}
		})
	}
}

// Every resolvable selector's path parses back to a route that resolves to
// the same selector.
func TestPathRoundTrip(t *testing.T) {
	folders := []models.Folder{
		{ID: "f1", Name: "Work Notes"},
	}
	community := []models.CommunityFolder{
		{ID: "Recipes", Name: "Recipes"},
	}

	selectors := []models.Selector{
		{Folder: models.SelectorAll, Context: models.ViewPersonal},
		{Folder: models.SelectorPublicCommunity, Context: models.ViewCommunity},
		{Folder: models.SelectorMyPrompts, Context: models.ViewPersonal},
		{Folder: "f1", Context: models.ViewPersonal},
		{Folder: "Recipes", Context: models.ViewCommunity},
	}

	for _, sel := range selectors {
		path := PathFor(sel, folders, community)
		route := ParsePath(path)

		var resolved string
		switch route.Kind {
		case RouteRoot:
			resolved = models.SelectorAll
		case RouteCommunity:
			resolved = models.SelectorPublicCommunity
		case RouteMyPrompts:
			resolved = models.SelectorMyPrompts
		case RoutePersonalFolder:
			resolved = ResolvePersonalSlug(route.Slug, folders)
		case RouteCommunityFolder:
			resolved = ResolveCommunitySlug(route.Slug, community)
		}

		if resolved != sel.Folder {
			t.Errorf("selector %+v -> path %q -> folder %q, want %q", sel, path, resolved, sel.Folder)
		}
	}
}

func TestResolvePersonalSlug(t *testing.T) {
	folders := []models.Folder{
		{ID: "f1", Name: "Work Notes"},
		{ID: "f2", Name: "Ideas"},
	}

	if got := ResolvePersonalSlug("ideas", folders); got != "f2" {
		t.Errorf("ResolvePersonalSlug(ideas) = %q, want f2", got)
	}
	if got := ResolvePersonalSlug("missing", folders); got != models.SelectorAll {
		t.Errorf("ResolvePersonalSlug(missing) = %q, want %q", got, models.SelectorAll)
	}
}

func TestResolveCommunitySlug(t *testing.T) {
	community := []models.CommunityFolder{
		{ID: "Recipes", Name: "Recipes"},
	}

	if got := ResolveCommunitySlug("recipes", community); got != "Recipes" {
		t.Errorf("ResolveCommunitySlug(recipes) = %q, want Recipes", got)
	}
	if got := ResolveCommunitySlug("missing", community); got != models.SelectorPublicCommunity {
		t.Errorf("ResolveCommunitySlug(missing) = %q, want %q", got, models.SelectorPublicCommunity)
	}
}

package models

// ViewContext says whether the viewer is browsing their personal library or
// the public community library.
type ViewContext string

const (
	ViewPersonal  ViewContext = "personal"
	ViewCommunity ViewContext = "community"
)

// Sentinel folder selectors. Any other selector value is either a personal
// folder id or a community folder name, disambiguated by the view context.
const (
	SelectorAll             = "all"
	SelectorPublicCommunity = "public_community"
	SelectorMyPrompts       = "my_prompts"
)

// Selector is the navigation state that determines which prompts are
// visible. Folder and Context together map to exactly one URL path; Query is
// not part of the path.
type Selector struct {
	Folder  string
	Context ViewContext
	Query   string
}

package nav

// MemoryHistory is an in-process History for headless hosts and tests. It
// records every pushed entry like a browser history stack.
type MemoryHistory struct {
	entries []string
}

// NewMemoryHistory creates a history positioned at the given path.
func NewMemoryHistory(path string) *MemoryHistory {
	if path == "" {
		path = "/"
	}
	return &MemoryHistory{entries: []string{path}}
}

// Path returns the current entry.
func (h *MemoryHistory) Path() string {
	return h.entries[len(h.entries)-1]
}

// Push appends a new entry.
func (h *MemoryHistory) Push(path string) {
	h.entries = append(h.entries, path)
}

// Set replaces the current entry without growing the stack, mirroring a
// direct address-bar navigation.
func (h *MemoryHistory) Set(path string) {
	h.entries[len(h.entries)-1] = path
}

// Entries returns the recorded stack, oldest first.
func (h *MemoryHistory) Entries() []string {
	return h.entries
}

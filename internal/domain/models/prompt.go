package models

import (
	"time"
)

// FolderRef is the {id, name} summary of a prompt's folder, fetched alongside
// the prompt. It keeps prompts groupable by folder name in contexts where the
// viewer does not own the folder (community view).
type FolderRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Prompt is a prompt record. Folder is nil when the joined folder could not
// be projected (older records, or a folder the viewer cannot read).
type Prompt struct {
	ID        string     `json:"id" db:"id"`
	Title     string     `json:"title" db:"title"`
	Content   string     `json:"content" db:"content"`
	FolderID  string     `json:"folder_id" db:"folder_id"`
	Image     string     `json:"image,omitempty" db:"image"`
	OwnerID   string     `json:"owner_id" db:"owner_id"`
	IsPublic  bool       `json:"is_public" db:"is_public"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	Folder    *FolderRef `json:"folder,omitempty"`
}

// SavePromptRequest is the payload for creating or updating a prompt.
// An empty ID means create.
type SavePromptRequest struct {
	ID       string `json:"id,omitempty"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	FolderID string `json:"folder_id"`
	Image    string `json:"image,omitempty"`
	IsPublic bool   `json:"is_public"`
}

// PromptRecord is the persistence payload that crosses the store boundary.
// Every field is explicit; no open-ended patch maps.
type PromptRecord struct {
	Title    string
	Content  string
	FolderID string
	Image    string
	IsPublic bool
	OwnerID  string
}

// SaveResult tells callers where a saved prompt ended up so they can
// navigate to it.
type SaveResult struct {
	PromptID string `json:"prompt_id"`
	FolderID string `json:"folder_id"`
	IsPublic bool   `json:"is_public"`
}

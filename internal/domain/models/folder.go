package models

import (
	"time"
)

// Folder is a user-owned folder row. The backend assigns ID and CreatedAt.
type Folder struct {
	ID        string    `json:"id" db:"id"`
	OwnerID   string    `json:"owner_id" db:"owner_id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// CommunityFolder is a virtual grouping of public prompts that share a folder
// name. It has no backend row: its ID is the folder name itself, so it must
// never be used as a foreign key. The distinct type keeps call sites from
// mixing it up with a real Folder.
type CommunityFolder struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CreateFolderRequest is the payload for creating a folder.
type CreateFolderRequest struct {
	Name    string `json:"name"`
	OwnerID string `json:"-"`
}

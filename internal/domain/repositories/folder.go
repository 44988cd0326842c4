package repositories

import (
	"context"

	"promptbase/internal/domain/models"
)

// FolderRepository defines record-store access for folders.
type FolderRepository interface {
	// ListByOwner returns all folders owned by ownerID, ordered by creation
	// ascending. An empty result is an empty slice, never an error.
	ListByOwner(ctx context.Context, ownerID string) ([]models.Folder, error)

	// Insert stores a new folder and returns it with the backend-assigned id
	// and timestamp.
	Insert(ctx context.Context, req *models.CreateFolderRequest) (*models.Folder, error)

	// Delete removes the folder. The backend cascades deletion to prompts
	// referencing it.
	Delete(ctx context.Context, id, ownerID string) error
}

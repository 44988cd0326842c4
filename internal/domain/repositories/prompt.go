package repositories

import (
	"context"

	"promptbase/internal/domain/models"
)

// PromptRepository defines record-store access for prompts. Every read
// projects the {id, name} of the related folder onto the prompt.
type PromptRepository interface {
	// ListVisible returns the prompts the viewer may read, ordered by
	// creation descending. With a non-empty viewerID that is
	// (owner == viewer) OR public; anonymous viewers get public only.
	ListVisible(ctx context.Context, viewerID string) ([]models.Prompt, error)

	// Insert stores a new prompt and returns it with the backend-assigned id,
	// timestamp and joined folder summary.
	Insert(ctx context.Context, rec *models.PromptRecord) (*models.Prompt, error)

	// Update replaces the stored fields of the prompt and returns the stored
	// row with the joined folder re-fetched.
	Update(ctx context.Context, id string, rec *models.PromptRecord) (*models.Prompt, error)

	// Delete removes a single prompt owned by ownerID.
	Delete(ctx context.Context, id, ownerID string) error
}

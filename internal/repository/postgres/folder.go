package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"promptbase/internal/domain"
	"promptbase/internal/domain/models"
	"promptbase/internal/domain/repositories"
)

// PostgresFolderRepository implements FolderRepository on the Supabase
// Postgres database.
type PostgresFolderRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewFolderRepository creates a new folder repository.
func NewFolderRepository(config *RepositoryConfig) repositories.FolderRepository {
	return &PostgresFolderRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// ListByOwner returns the owner's folders ordered by creation ascending.
func (r *PostgresFolderRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT id, owner_id, name, created_at
		FROM %s
		WHERE owner_id = $1
		ORDER BY created_at ASC
	`, r.tables.Folders)

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	defer rows.Close()

	folders := []models.Folder{}
	for rows.Next() {
		var f models.Folder
		if err := rows.Scan(&f.ID, &f.OwnerID, &f.Name, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan folder: %w", err)
		}
		folders = append(folders, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}

	return folders, nil
}

// Insert stores a new folder, returning the backend-assigned id and
// timestamp.
func (r *PostgresFolderRepository) Insert(ctx context.Context, req *models.CreateFolderRequest) (*models.Folder, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (owner_id, name)
		VALUES ($1, $2)
		RETURNING id, created_at
	`, r.tables.Folders)

	folder := models.Folder{OwnerID: req.OwnerID, Name: req.Name}
	err := r.pool.QueryRow(ctx, query, req.OwnerID, req.Name).Scan(&folder.ID, &folder.CreatedAt)
	if err != nil {
		if isPgDuplicateError(err) {
			return nil, fmt.Errorf("folder %q: %w", req.Name, domain.ErrConflict)
		}
		return nil, fmt.Errorf("create folder: %w", err)
	}

	return &folder, nil
}

// Delete removes the folder; the ON DELETE CASCADE constraint removes its
// prompts with it.
func (r *PostgresFolderRepository) Delete(ctx context.Context, id, ownerID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1 AND owner_id = $2
	`, r.tables.Folders)

	result, err := r.pool.Exec(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete folder: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

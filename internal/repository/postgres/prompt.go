package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"promptbase/internal/domain"
	"promptbase/internal/domain/models"
	"promptbase/internal/domain/repositories"
)

// PostgresPromptRepository implements PromptRepository on the Supabase
// Postgres database. Every read left-joins the folder table so each prompt
// carries its {id, name} folder summary.
type PostgresPromptRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewPromptRepository creates a new prompt repository.
func NewPromptRepository(config *RepositoryConfig) repositories.PromptRepository {
	return &PostgresPromptRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const promptColumns = `
	p.id, p.title, p.content, p.folder_id, p.image, p.owner_id, p.is_public,
	p.created_at, f.id, f.name
`

// ListVisible returns the viewer's own prompts plus every public prompt,
// ordered by creation descending. Anonymous viewers get public prompts
// only.
func (r *PostgresPromptRepository) ListVisible(ctx context.Context, viewerID string) ([]models.Prompt, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if viewerID != "" {
		query := fmt.Sprintf(`
			SELECT %s
			FROM %s p
			LEFT JOIN %s f ON f.id = p.folder_id
			WHERE p.owner_id = $1 OR p.is_public = TRUE
			ORDER BY p.created_at DESC
		`, promptColumns, r.tables.Prompts, r.tables.Folders)
		rows, err = r.pool.Query(ctx, query, viewerID)
	} else {
		query := fmt.Sprintf(`
			SELECT %s
			FROM %s p
			LEFT JOIN %s f ON f.id = p.folder_id
			WHERE p.is_public = TRUE
			ORDER BY p.created_at DESC
		`, promptColumns, r.tables.Prompts, r.tables.Folders)
		rows, err = r.pool.Query(ctx, query)
	}
	if err != nil {
		return nil, fmt.Errorf("list prompts: %w", err)
	}
	defer rows.Close()

	prompts := []models.Prompt{}
	for rows.Next() {
		p, err := scanPrompt(rows)
		if err != nil {
			return nil, err
		}
		prompts = append(prompts, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list prompts: %w", err)
	}

	return prompts, nil
}

// Insert stores a new prompt and returns the stored row with its joined
// folder summary.
func (r *PostgresPromptRepository) Insert(ctx context.Context, rec *models.PromptRecord) (*models.Prompt, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (title, content, folder_id, image, owner_id, is_public)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, r.tables.Prompts)

	var id string
	err := r.pool.QueryRow(ctx, query,
		rec.Title, rec.Content, rec.FolderID, rec.Image, rec.OwnerID, rec.IsPublic,
	).Scan(&id)
	if err != nil {
		if isPgForeignKeyError(err) {
			return nil, fmt.Errorf("folder %s: %w", rec.FolderID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("create prompt: %w", err)
	}

	return r.getByID(ctx, id)
}

// Update replaces the stored fields and returns the row with the joined
// folder re-fetched.
func (r *PostgresPromptRepository) Update(ctx context.Context, id string, rec *models.PromptRecord) (*models.Prompt, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET title = $1, content = $2, folder_id = $3, image = $4, is_public = $5
		WHERE id = $6 AND owner_id = $7
	`, r.tables.Prompts)

	result, err := r.pool.Exec(ctx, query,
		rec.Title, rec.Content, rec.FolderID, rec.Image, rec.IsPublic, id, rec.OwnerID,
	)
	if err != nil {
		if isPgForeignKeyError(err) {
			return nil, fmt.Errorf("folder %s: %w", rec.FolderID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("update prompt: %w", err)
	}
	if result.RowsAffected() == 0 {
		return nil, fmt.Errorf("prompt %s: %w", id, domain.ErrNotFound)
	}

	return r.getByID(ctx, id)
}

// Delete removes a single prompt owned by ownerID.
func (r *PostgresPromptRepository) Delete(ctx context.Context, id, ownerID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1 AND owner_id = $2
	`, r.tables.Prompts)

	result, err := r.pool.Exec(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete prompt: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("prompt %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

func (r *PostgresPromptRepository) getByID(ctx context.Context, id string) (*models.Prompt, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s p
		LEFT JOIN %s f ON f.id = p.folder_id
		WHERE p.id = $1
	`, promptColumns, r.tables.Prompts, r.tables.Folders)

	row := r.pool.QueryRow(ctx, query, id)
	p, err := scanPrompt(row)
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("prompt %s: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}
	return p, nil
}

func scanPrompt(row pgx.Row) (*models.Prompt, error) {
	var (
		p       models.Prompt
		refID   *string
		refName *string
	)
	err := row.Scan(
		&p.ID, &p.Title, &p.Content, &p.FolderID, &p.Image, &p.OwnerID,
		&p.IsPublic, &p.CreatedAt, &refID, &refName,
	)
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("scan prompt: %w", err)
	}
	if refID != nil && refName != nil {
		p.Folder = &models.FolderRef{ID: *refID, Name: *refName}
	}
	return &p, nil
}

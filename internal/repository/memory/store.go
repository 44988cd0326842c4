// Package memory provides an in-memory record store used for local mode and
// tests. It implements the same repository interfaces as the postgres
// package, with uuid-assigned ids and the same visibility and ordering
// semantics.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"promptbase/internal/domain"
	"promptbase/internal/domain/models"
)

// Store holds folders and prompts in process memory. Unlike the core
// components it takes a mutex, because a host may share one store between
// several engines.
type Store struct {
	mu      sync.Mutex
	folders []models.Folder
	prompts []models.Prompt // newest first, matching the list ordering
	now     func() time.Time
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{now: time.Now}
}

// ListByOwner returns the owner's folders ordered by creation ascending.
func (s *Store) ListByOwner(ctx context.Context, ownerID string) ([]models.Folder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.Folder{}
	for _, f := range s.folders {
		if f.OwnerID == ownerID {
			out = append(out, f)
		}
	}
	return out, nil
}

// Insert stores a new folder with a generated id.
func (s *Store) Insert(ctx context.Context, req *models.CreateFolderRequest) (*models.Folder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	folder := models.Folder{
		ID:        uuid.NewString(),
		OwnerID:   req.OwnerID,
		Name:      req.Name,
		CreatedAt: s.now(),
	}
	s.folders = append(s.folders, folder)
	return &folder, nil
}

// Delete removes the folder and cascades to its prompts, mirroring the
// database foreign key constraint.
func (s *Store) Delete(ctx context.Context, id, ownerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, f := range s.folders {
		if f.ID == id && f.OwnerID == ownerID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}
	s.folders = append(s.folders[:idx], s.folders[idx+1:]...)

	kept := s.prompts[:0:0]
	for _, p := range s.prompts {
		if p.FolderID != id {
			kept = append(kept, p)
		}
	}
	s.prompts = kept
	return nil
}

// ListVisible returns the viewer's own prompts plus public prompts, newest
// first. Anonymous viewers (empty viewerID) get public prompts only.
func (s *Store) ListVisible(ctx context.Context, viewerID string) ([]models.Prompt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.Prompt{}
	for _, p := range s.prompts {
		if p.IsPublic || (viewerID != "" && p.OwnerID == viewerID) {
			out = append(out, p)
		}
	}
	return out, nil
}

// InsertPrompt stores a new prompt with a generated id and the joined folder
// summary attached.
func (s *Store) InsertPrompt(ctx context.Context, rec *models.PromptRecord) (*models.Prompt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	folder := s.folderByID(rec.FolderID)
	if folder == nil {
		return nil, fmt.Errorf("folder %s: %w", rec.FolderID, domain.ErrNotFound)
	}

	prompt := models.Prompt{
		ID:        uuid.NewString(),
		Title:     rec.Title,
		Content:   rec.Content,
		FolderID:  rec.FolderID,
		Image:     rec.Image,
		OwnerID:   rec.OwnerID,
		IsPublic:  rec.IsPublic,
		CreatedAt: s.now(),
		Folder:    &models.FolderRef{ID: folder.ID, Name: folder.Name},
	}
	s.prompts = append([]models.Prompt{prompt}, s.prompts...)
	return &prompt, nil
}

// UpdatePrompt replaces the stored fields and re-attaches the folder
// summary.
func (s *Store) UpdatePrompt(ctx context.Context, id string, rec *models.PromptRecord) (*models.Prompt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	folder := s.folderByID(rec.FolderID)
	if folder == nil {
		return nil, fmt.Errorf("folder %s: %w", rec.FolderID, domain.ErrNotFound)
	}

	for i := range s.prompts {
		if s.prompts[i].ID != id || s.prompts[i].OwnerID != rec.OwnerID {
			continue
		}
		p := &s.prompts[i]
		p.Title = rec.Title
		p.Content = rec.Content
		p.FolderID = rec.FolderID
		p.Image = rec.Image
		p.IsPublic = rec.IsPublic
		p.Folder = &models.FolderRef{ID: folder.ID, Name: folder.Name}
		out := *p
		return &out, nil
	}
	return nil, fmt.Errorf("prompt %s: %w", id, domain.ErrNotFound)
}

// DeletePrompt removes a single prompt owned by ownerID.
func (s *Store) DeletePrompt(ctx context.Context, id, ownerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.prompts {
		if p.ID == id && p.OwnerID == ownerID {
			s.prompts = append(s.prompts[:i], s.prompts[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("prompt %s: %w", id, domain.ErrNotFound)
}

func (s *Store) folderByID(id string) *models.Folder {
	for i := range s.folders {
		if s.folders[i].ID == id {
			return &s.folders[i]
		}
	}
	return nil
}

// Folders adapts the store to the FolderRepository interface.
func (s *Store) Folders() *FolderStore { return &FolderStore{s} }

// Prompts adapts the store to the PromptRepository interface.
func (s *Store) Prompts() *PromptStore { return &PromptStore{s} }

// FolderStore is the FolderRepository view of a Store.
type FolderStore struct{ *Store }

// PromptStore is the PromptRepository view of a Store. The method set is
// renamed because folder and prompt operations share the Store receiver.
type PromptStore struct{ store *Store }

func (p *PromptStore) ListVisible(ctx context.Context, viewerID string) ([]models.Prompt, error) {
	return p.store.ListVisible(ctx, viewerID)
}

func (p *PromptStore) Insert(ctx context.Context, rec *models.PromptRecord) (*models.Prompt, error) {
	return p.store.InsertPrompt(ctx, rec)
}

func (p *PromptStore) Update(ctx context.Context, id string, rec *models.PromptRecord) (*models.Prompt, error) {
	return p.store.UpdatePrompt(ctx, id, rec)
}

func (p *PromptStore) Delete(ctx context.Context, id, ownerID string) error {
	return p.store.DeletePrompt(ctx, id, ownerID)
}

package service

import (
	"context"
	"log/slog"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"promptbase/internal/cache"
	"promptbase/internal/domain"
	"promptbase/internal/domain/models"
	"promptbase/internal/domain/repositories"
)

// DefaultPromptImage is used when a prompt is saved without an image URL.
const DefaultPromptImage = "https://9gdj1dewg7.ufs.sh/f/MzCIEEnlPGFDqLuejTAO6xTMuqHPGhbIk5NKF8ARWaVQnU1J"

// AutoFolderName is the folder created implicitly when a user saves their
// first prompt without picking a folder.
const AutoFolderName = "General"

// Notifier surfaces user-facing messages for failed or rejected operations.
// Every failure is reported exactly once; retry is manual.
type Notifier interface {
	Notify(message string)
}

// Confirmer returns the user's decision for a destructive operation. It is
// an explicit confirmation step, not a particular blocking UI primitive.
type Confirmer interface {
	Confirm(message string) bool
}

// SessionSource exposes the current session to the orchestrator.
type SessionSource interface {
	Current() *models.Session
}

// Actions sequences multi-step writes against the record store and patches
// the cache on success. Failures never mutate the cache: local state only
// changes after the remote call has confirmed.
type Actions struct {
	folders   repositories.FolderRepository
	prompts   repositories.PromptRepository
	cache     *cache.Cache
	sessions  SessionSource
	notifier  Notifier
	confirmer Confirmer
	logger    *slog.Logger
}

// NewActions creates the action orchestrator.
func NewActions(
	folders repositories.FolderRepository,
	prompts repositories.PromptRepository,
	dataCache *cache.Cache,
	sessions SessionSource,
	notifier Notifier,
	confirmer Confirmer,
	logger *slog.Logger,
) *Actions {
	return &Actions{
		folders:   folders,
		prompts:   prompts,
		cache:     dataCache,
		sessions:  sessions,
		notifier:  notifier,
		confirmer: confirmer,
		logger:    logger,
	}
}

// CreateFolder inserts a folder for the current user and appends it to the
// cache. An empty name or a missing session aborts before any network call.
func (a *Actions) CreateFolder(ctx context.Context, name string) (*models.Folder, error) {
	session := a.sessions.Current()
	if session == nil {
		a.notifier.Notify("You must sign in to create folders.")
		return nil, &domain.UnauthorizedError{Message: "folder creation requires a session"}
	}

	req := &models.CreateFolderRequest{Name: strings.TrimSpace(name), OwnerID: session.UserID}
	if err := validateCreateFolder(req); err != nil {
		a.notifier.Notify("Folder name cannot be empty.")
		return nil, &domain.ValidationError{Message: err.Error()}
	}

	folder, err := a.folders.Insert(ctx, req)
	if err != nil {
		a.logger.Error("folder create failed", "name", req.Name, "error", err)
		a.notifier.Notify("Could not create folder. Please try again.")
		return nil, err
	}

	a.cache.ApplyFolderCreated(folder)
	a.logger.Info("folder created", "folder_id", folder.ID)
	return folder, nil
}

// DeleteFolder removes a folder after explicit confirmation, cascading the
// removal to its prompts both in the backend and in the cache. Returns true
// on success so callers can redirect away from a now-deleted active folder.
func (a *Actions) DeleteFolder(ctx context.Context, id string) bool {
	session := a.sessions.Current()
	if session == nil {
		return false
	}
	if !a.confirmer.Confirm("Delete this folder and every prompt inside it?") {
		return false
	}

	if err := a.folders.Delete(ctx, id, session.UserID); err != nil {
		a.logger.Error("folder delete failed", "folder_id", id, "error", err)
		a.notifier.Notify("Could not delete folder. Please try again.")
		return false
	}

	a.cache.ApplyFolderDeleted(id)
	a.logger.Info("folder deleted", "folder_id", id)
	return true
}

// SavePrompt creates or updates a prompt. When the request carries no folder
// and the user owns none, a folder named "General" is created first and used
// as the target, so the very first save needs no folder setup. Returns where
// the prompt ended up, or nil after the failure has been surfaced.
func (a *Actions) SavePrompt(ctx context.Context, req *models.SavePromptRequest) (*models.SaveResult, error) {
	session := a.sessions.Current()
	if session == nil {
		a.notifier.Notify("You must sign in to save prompts.")
		return nil, &domain.UnauthorizedError{Message: "saving prompts requires a session"}
	}

	if err := validateSavePrompt(req); err != nil {
		a.notifier.Notify("Title and content are required.")
		return nil, &domain.ValidationError{Message: err.Error()}
	}

	targetFolder := req.FolderID
	if targetFolder == "" && len(a.cache.Folders()) == 0 {
		folder, err := a.folders.Insert(ctx, &models.CreateFolderRequest{
			Name:    AutoFolderName,
			OwnerID: session.UserID,
		})
		if err != nil {
			a.logger.Error("default folder create failed", "error", err)
			a.notifier.Notify("Could not save prompt. Please try again.")
			return nil, err
		}
		a.cache.ApplyFolderCreated(folder)
		targetFolder = folder.ID
	}

	rec := &models.PromptRecord{
		Title:    req.Title,
		Content:  req.Content,
		FolderID: targetFolder,
		Image:    req.Image,
		IsPublic: req.IsPublic,
		OwnerID:  session.UserID,
	}
	if rec.Image == "" {
		rec.Image = DefaultPromptImage
	}

	var (
		saved *models.Prompt
		err   error
	)
	if req.ID != "" {
		saved, err = a.prompts.Update(ctx, req.ID, rec)
	} else {
		saved, err = a.prompts.Insert(ctx, rec)
	}
	if err != nil {
		a.logger.Error("prompt save failed", "prompt_id", req.ID, "error", err)
		a.notifier.Notify("Could not save prompt. Please try again.")
		return nil, err
	}

	if req.ID != "" {
		a.cache.ApplyPromptUpdated(saved)
	} else {
		a.cache.ApplyPromptCreated(saved)
	}

	a.logger.Info("prompt saved",
		"prompt_id", saved.ID,
		"folder_id", saved.FolderID,
		"is_public", saved.IsPublic,
	)
	return &models.SaveResult{
		PromptID: saved.ID,
		FolderID: saved.FolderID,
		IsPublic: saved.IsPublic,
	}, nil
}

// DeletePrompt removes a single prompt after explicit confirmation.
func (a *Actions) DeletePrompt(ctx context.Context, id string) bool {
	session := a.sessions.Current()
	if session == nil {
		return false
	}
	if !a.confirmer.Confirm("Delete this prompt?") {
		return false
	}

	if err := a.prompts.Delete(ctx, id, session.UserID); err != nil {
		a.logger.Error("prompt delete failed", "prompt_id", id, "error", err)
		a.notifier.Notify("Could not delete prompt. Please try again.")
		return false
	}

	a.cache.ApplyPromptDeleted(id)
	a.logger.Info("prompt deleted", "prompt_id", id)
	return true
}

func validateCreateFolder(req *models.CreateFolderRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Name,
			validation.Required,
			validation.Length(1, 100),
		),
		validation.Field(&req.OwnerID, validation.Required),
	)
}

func validateSavePrompt(req *models.SavePromptRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Title,
			validation.Required,
			validation.Length(1, 200),
		),
		validation.Field(&req.Content, validation.Required),
	)
}

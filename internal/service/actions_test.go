package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"promptbase/internal/cache"
	"promptbase/internal/domain"
	"promptbase/internal/domain/models"
	"promptbase/internal/repository/memory"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stubSessions struct {
	session *models.Session
}

func (s *stubSessions) Current() *models.Session { return s.session }

type recordingNotifier struct {
	messages []string
}

func (n *recordingNotifier) Notify(message string) {
	n.messages = append(n.messages, message)
}

type stubConfirmer struct {
	approve bool
	asked   bool
}

func (c *stubConfirmer) Confirm(message string) bool {
	c.asked = true
	return c.approve
}

type actionsFixture struct {
	store     *memory.Store
	cache     *cache.Cache
	sessions  *stubSessions
	notifier  *recordingNotifier
	confirmer *stubConfirmer
	actions   *Actions
}

func newActionsFixture(session *models.Session) *actionsFixture {
	store := memory.NewStore()
	logger := testLogger()
	dataCache := cache.New(store.Folders(), store.Prompts(), logger)
	sessions := &stubSessions{session: session}
	notifier := &recordingNotifier{}
	confirmer := &stubConfirmer{approve: true}

	f := &actionsFixture{
		store:     store,
		cache:     dataCache,
		sessions:  sessions,
		notifier:  notifier,
		confirmer: confirmer,
	}
	f.actions = NewActions(store.Folders(), store.Prompts(), dataCache, sessions, notifier, confirmer, logger)
	f.cache.Load(context.Background(), session, true)
	return f
}

func TestCreateFolder(t *testing.T) {
	f := newActionsFixture(&models.Session{UserID: "user1"})

	folder, err := f.actions.CreateFolder(context.Background(), "  Work Notes  ")
	if err != nil {
		t.Fatalf("CreateFolder: %v", err)
	}
	if folder.Name != "Work Notes" {
		t.Errorf("name = %q, want trimmed", folder.Name)
	}
	if folder.OwnerID != "user1" {
		t.Errorf("owner = %q, want user1", folder.OwnerID)
	}
	if len(f.cache.Folders()) != 1 || f.cache.Folders()[0].ID != folder.ID {
		t.Errorf("cache folders = %+v, want the new folder appended", f.cache.Folders())
	}
}

func TestCreateFolderRequiresSession(t *testing.T) {
	f := newActionsFixture(nil)

	_, err := f.actions.CreateFolder(context.Background(), "Work")

	var unauthorized *domain.UnauthorizedError
	if !errors.As(err, &unauthorized) {
		t.Fatalf("err = %v, want unauthorized", err)
	}
	if len(f.notifier.messages) != 1 {
		t.Errorf("notifications = %v, want exactly one", f.notifier.messages)
	}
	if len(f.cache.Folders()) != 0 {
		t.Error("cache changed on a rejected operation")
	}
}

func TestCreateFolderRejectsBlankName(t *testing.T) {
	f := newActionsFixture(&models.Session{UserID: "user1"})

	_, err := f.actions.CreateFolder(context.Background(), "   ")

	var invalid *domain.ValidationError
	if !errors.As(err, &invalid) {
		t.Fatalf("err = %v, want validation error", err)
	}
	if len(f.cache.Folders()) != 0 {
		t.Error("cache changed on a rejected operation")
	}
}

func TestSavePromptCreatesDefaultFolder(t *testing.T) {
	f := newActionsFixture(&models.Session{UserID: "user1"})

	result, err := f.actions.SavePrompt(context.Background(), &models.SavePromptRequest{
		Title:   "First Prompt",
		Content: "hello",
	})
	if err != nil {
		t.Fatalf("SavePrompt: %v", err)
	}

	folders := f.cache.Folders()
	if len(folders) != 1 || folders[0].Name != AutoFolderName {
		t.Fatalf("folders = %+v, want a single %q folder", folders, AutoFolderName)
	}
	if result.FolderID != folders[0].ID {
		t.Errorf("result folder = %q, want the auto-created folder %q", result.FolderID, folders[0].ID)
	}

	prompts := f.cache.Prompts()
	if len(prompts) != 1 {
		t.Fatalf("prompts = %+v, want the saved prompt cached", prompts)
	}
	if prompts[0].Image != DefaultPromptImage {
		t.Errorf("image = %q, want the default image applied", prompts[0].Image)
	}
}

func TestSavePromptSkipsDefaultFolderWhenOneExists(t *testing.T) {
	f := newActionsFixture(&models.Session{UserID: "user1"})
	folder, err := f.actions.CreateFolder(context.Background(), "Existing")
	if err != nil {
		t.Fatalf("CreateFolder: %v", err)
	}

	// No folder picked, but the user already has one: nothing is auto-created
	// and the save goes to the picked (empty) folder id, which fails.
	_, err = f.actions.SavePrompt(context.Background(), &models.SavePromptRequest{
		Title:   "T",
		Content: "c",
	})
	if err == nil {
		t.Fatal("expected an error for a save without a target folder")
	}
	if len(f.cache.Folders()) != 1 || f.cache.Folders()[0].ID != folder.ID {
		t.Errorf("folders = %+v, want no auto-created folder", f.cache.Folders())
	}
}

func TestSavePromptValidation(t *testing.T) {
	f := newActionsFixture(&models.Session{UserID: "user1"})

	tests := []struct {
		name string
		req  *models.SavePromptRequest
	}{
		{"missing title", &models.SavePromptRequest{Content: "c"}},
		{"missing content", &models.SavePromptRequest{Title: "t"}},
		{"title too long", &models.SavePromptRequest{Title: strings.Repeat("x", 201), Content: "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.actions.SavePrompt(context.Background(), tt.req)

			var invalid *domain.ValidationError
			if !errors.As(err, &invalid) {
				t.Errorf("err = %v, want validation error", err)
			}
			if len(f.cache.Prompts()) != 0 {
				t.Error("cache changed on a rejected save")
			}
		})
	}
}

func TestSavePromptUpdate(t *testing.T) {
	f := newActionsFixture(&models.Session{UserID: "user1"})

	created, err := f.actions.SavePrompt(context.Background(), &models.SavePromptRequest{
		Title:   "Original",
		Content: "v1",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	result, err := f.actions.SavePrompt(context.Background(), &models.SavePromptRequest{
		ID:       created.PromptID,
		Title:    "Edited",
		Content:  "v2",
		FolderID: created.FolderID,
		IsPublic: true,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if result.PromptID != created.PromptID {
		t.Errorf("update produced a new prompt id %q", result.PromptID)
	}

	prompts := f.cache.Prompts()
	if len(prompts) != 1 {
		t.Fatalf("prompts = %+v, want the one updated entry", prompts)
	}
	if prompts[0].Title != "Edited" || !prompts[0].IsPublic {
		t.Errorf("cached prompt = %+v, update not applied", prompts[0])
	}
}

func TestSavePromptFailureLeavesCacheUnchanged(t *testing.T) {
	f := newActionsFixture(&models.Session{UserID: "user1"})
	created, err := f.actions.SavePrompt(context.Background(), &models.SavePromptRequest{
		Title:   "Keep Me",
		Content: "v1",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Updating against a folder that does not exist fails remotely.
	_, err = f.actions.SavePrompt(context.Background(), &models.SavePromptRequest{
		ID:       created.PromptID,
		Title:    "Broken",
		Content:  "v2",
		FolderID: "no-such-folder",
	})
	if err == nil {
		t.Fatal("expected the remote failure to surface")
	}
	if got := f.cache.Prompts()[0].Title; got != "Keep Me" {
		t.Errorf("cached title = %q, failed save mutated the cache", got)
	}
	if len(f.notifier.messages) == 0 {
		t.Error("failure was not surfaced to the user")
	}
}

func TestDeleteFolderDeclined(t *testing.T) {
	f := newActionsFixture(&models.Session{UserID: "user1"})
	folder, _ := f.actions.CreateFolder(context.Background(), "Doomed")
	f.confirmer.approve = false

	if f.actions.DeleteFolder(context.Background(), folder.ID) {
		t.Fatal("declined confirmation must abort the delete")
	}
	if !f.confirmer.asked {
		t.Error("destructive operation skipped the confirmation step")
	}
	if len(f.cache.Folders()) != 1 {
		t.Error("folder removed despite declined confirmation")
	}
}

func TestDeleteFolderCascades(t *testing.T) {
	f := newActionsFixture(&models.Session{UserID: "user1"})
	folder, _ := f.actions.CreateFolder(context.Background(), "Doomed")
	_, err := f.actions.SavePrompt(context.Background(), &models.SavePromptRequest{
		Title: "T", Content: "c", FolderID: folder.ID,
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	if !f.actions.DeleteFolder(context.Background(), folder.ID) {
		t.Fatal("DeleteFolder failed")
	}
	if len(f.cache.Folders()) != 0 {
		t.Error("folder still cached")
	}
	if len(f.cache.Prompts()) != 0 {
		t.Error("cascade did not remove the folder's prompts from the cache")
	}
}

func TestDeletePromptRequiresSession(t *testing.T) {
	f := newActionsFixture(nil)

	if f.actions.DeletePrompt(context.Background(), "p1") {
		t.Error("anonymous delete must be rejected")
	}
	if f.confirmer.asked {
		t.Error("confirmation requested before the session check")
	}
}

func TestDeletePrompt(t *testing.T) {
	f := newActionsFixture(&models.Session{UserID: "user1"})
	created, err := f.actions.SavePrompt(context.Background(), &models.SavePromptRequest{
		Title: "T", Content: "c",
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	if !f.actions.DeletePrompt(context.Background(), created.PromptID) {
		t.Fatal("DeletePrompt failed")
	}
	if len(f.cache.Prompts()) != 0 {
		t.Errorf("prompts = %+v, want empty after delete", f.cache.Prompts())
	}
}

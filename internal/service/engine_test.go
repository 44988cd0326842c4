package service

import (
	"context"
	"testing"

	"promptbase/internal/auth"
	"promptbase/internal/domain/models"
	"promptbase/internal/nav"
	"promptbase/internal/repository/memory"
)

type engineFixture struct {
	store    *memory.Store
	history  *nav.MemoryHistory
	sessions *auth.Manager
	engine   *Engine
}

func newEngineFixture(t *testing.T, initialPath string, session *models.Session) *engineFixture {
	t.Helper()
	logger := testLogger()
	store := memory.NewStore()
	history := nav.NewMemoryHistory(initialPath)
	sessions := auth.NewManager(nil, nil, logger)

	engine := NewEngine(
		sessions,
		store.Folders(),
		store.Prompts(),
		history,
		&recordingNotifier{},
		&stubConfirmer{approve: true},
		logger,
	)
	if session != nil {
		sessions.Resume(session)
	}
	engine.Start(context.Background())

	return &engineFixture{store: store, history: history, sessions: sessions, engine: engine}
}

func TestEngineStartLoadsAndResolvesLocation(t *testing.T) {
	f := newEngineFixture(t, "/community", &models.Session{UserID: "user1"})

	sel := f.engine.Nav.Selector()
	if sel.Folder != models.SelectorPublicCommunity || sel.Context != models.ViewCommunity {
		t.Errorf("selector = %+v, want the community landing", sel)
	}
	if f.engine.Cache.Loading() {
		t.Error("cache still loading after Start")
	}
}

// A session resumed between engine construction and Start triggers a silent
// reload; its completion must not move the location before Start has parsed
// it.
func TestEngineSessionResumeBeforeStartKeepsDeepLink(t *testing.T) {
	logger := testLogger()
	store := memory.NewStore()
	history := nav.NewMemoryHistory("/community")
	sessions := auth.NewManager(nil, nil, logger)

	engine := NewEngine(
		sessions,
		store.Folders(),
		store.Prompts(),
		history,
		&recordingNotifier{},
		&stubConfirmer{approve: true},
		logger,
	)

	// The session listener is already registered, so this reloads the cache
	// before the initial location has been applied.
	sessions.Resume(&models.Session{UserID: "user1"})

	if history.Path() != "/community" {
		t.Fatalf("path = %q, reload overwrote the deep link before Start", history.Path())
	}

	engine.Start(context.Background())

	sel := engine.Nav.Selector()
	if sel.Folder != models.SelectorPublicCommunity || sel.Context != models.ViewCommunity {
		t.Errorf("selector = %+v, want the community landing", sel)
	}
}

func TestEngineSavePublicPromptNavigatesToCommunityFolder(t *testing.T) {
	f := newEngineFixture(t, "/", &models.Session{UserID: "user1"})

	folder, err := f.engine.Actions.CreateFolder(context.Background(), "Cool Recipes")
	if err != nil {
		t.Fatalf("CreateFolder: %v", err)
	}

	result, err := f.engine.SavePromptAndNavigate(context.Background(), &models.SavePromptRequest{
		Title:    "Pasta",
		Content:  "boil water",
		FolderID: folder.ID,
		IsPublic: true,
	})
	if err != nil {
		t.Fatalf("SavePromptAndNavigate: %v", err)
	}
	if !result.IsPublic {
		t.Fatal("result lost the public flag")
	}

	sel := f.engine.Nav.Selector()
	if sel.Context != models.ViewCommunity {
		t.Errorf("context = %q, want community after a public save", sel.Context)
	}
	// Community folders are keyed by name, not by the backend folder id.
	if sel.Folder != "Cool Recipes" {
		t.Errorf("selector folder = %q, want the community folder name", sel.Folder)
	}
	if f.history.Path() != "/community/cool-recipes" {
		t.Errorf("path = %q, want /community/cool-recipes", f.history.Path())
	}
}

func TestEngineSavePrivatePromptNavigatesToPersonalFolder(t *testing.T) {
	f := newEngineFixture(t, "/", &models.Session{UserID: "user1"})

	folder, err := f.engine.Actions.CreateFolder(context.Background(), "Work Notes")
	if err != nil {
		t.Fatalf("CreateFolder: %v", err)
	}

	_, err = f.engine.SavePromptAndNavigate(context.Background(), &models.SavePromptRequest{
		Title:    "Standup",
		Content:  "notes",
		FolderID: folder.ID,
	})
	if err != nil {
		t.Fatalf("SavePromptAndNavigate: %v", err)
	}

	sel := f.engine.Nav.Selector()
	if sel.Folder != folder.ID || sel.Context != models.ViewPersonal {
		t.Errorf("selector = %+v, want the personal folder by id", sel)
	}
	if f.history.Path() != "/my-prompts/work-notes" {
		t.Errorf("path = %q, want /my-prompts/work-notes", f.history.Path())
	}
}

func TestEngineFirstSaveLandsInDefaultFolder(t *testing.T) {
	f := newEngineFixture(t, "/", &models.Session{UserID: "user1"})

	result, err := f.engine.SavePromptAndNavigate(context.Background(), &models.SavePromptRequest{
		Title:   "First",
		Content: "c",
	})
	if err != nil {
		t.Fatalf("SavePromptAndNavigate: %v", err)
	}

	if sel := f.engine.Nav.Selector(); sel.Folder != result.FolderID {
		t.Errorf("selector folder = %q, want the auto-created folder %q", sel.Folder, result.FolderID)
	}
	if f.history.Path() != "/my-prompts/general" {
		t.Errorf("path = %q, want /my-prompts/general", f.history.Path())
	}
}

func TestEngineDeleteActiveFolderFallsBackToRoot(t *testing.T) {
	f := newEngineFixture(t, "/", &models.Session{UserID: "user1"})

	folder, _ := f.engine.Actions.CreateFolder(context.Background(), "Doomed")
	f.engine.Nav.Select(folder.ID, models.ViewPersonal)

	if !f.engine.DeleteFolderAndNavigate(context.Background(), folder.ID) {
		t.Fatal("DeleteFolderAndNavigate failed")
	}

	if sel := f.engine.Nav.Selector(); sel.Folder != models.SelectorAll {
		t.Errorf("selector = %+v, want the root selector after deleting the active folder", sel)
	}
	if f.history.Path() != "/" {
		t.Errorf("path = %q, want /", f.history.Path())
	}
}

func TestEngineDeleteInactiveFolderKeepsSelection(t *testing.T) {
	f := newEngineFixture(t, "/", &models.Session{UserID: "user1"})

	keep, _ := f.engine.Actions.CreateFolder(context.Background(), "Keep")
	doomed, _ := f.engine.Actions.CreateFolder(context.Background(), "Doomed")
	f.engine.Nav.Select(keep.ID, models.ViewPersonal)

	if !f.engine.DeleteFolderAndNavigate(context.Background(), doomed.ID) {
		t.Fatal("DeleteFolderAndNavigate failed")
	}
	if sel := f.engine.Nav.Selector(); sel.Folder != keep.ID {
		t.Errorf("selector = %+v, deleting another folder moved the selection", sel)
	}
}

func TestEngineFilteredPrompts(t *testing.T) {
	f := newEngineFixture(t, "/", &models.Session{UserID: "user1"})

	folder, _ := f.engine.Actions.CreateFolder(context.Background(), "Work")
	for _, title := range []string{"Alpha", "Beta"} {
		if _, err := f.engine.Actions.SavePrompt(context.Background(), &models.SavePromptRequest{
			Title: title, Content: "c", FolderID: folder.ID,
		}); err != nil {
			t.Fatalf("save %s: %v", title, err)
		}
	}

	f.engine.Nav.SetQuery("alpha")
	got := f.engine.FilteredPrompts()
	if len(got) != 1 || got[0].Title != "Alpha" {
		t.Errorf("FilteredPrompts() = %+v, want only Alpha", got)
	}
}

// Re-authentication reloads the data silently for the new identity.
func TestEngineSessionChangeReloads(t *testing.T) {
	f := newEngineFixture(t, "/", &models.Session{UserID: "user1"})

	if _, err := f.store.Insert(context.Background(), &models.CreateFolderRequest{
		Name: "Theirs", OwnerID: "user2",
	}); err != nil {
		t.Fatalf("seed folder: %v", err)
	}

	f.sessions.Resume(&models.Session{UserID: "user2"})

	folders := f.engine.Cache.Folders()
	if len(folders) != 1 || folders[0].Name != "Theirs" {
		t.Errorf("folders = %+v, want user2's data after the session change", folders)
	}
	if f.engine.Cache.Loading() {
		t.Error("session-change reload flashed the loading state")
	}
}

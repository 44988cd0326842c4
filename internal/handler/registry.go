package handler

import (
	"context"
	"log/slog"
	"sync"

	"promptbase/internal/auth"
	"promptbase/internal/domain/models"
	"promptbase/internal/domain/repositories"
	"promptbase/internal/nav"
	"promptbase/internal/service"
)

// hostedEngine is one viewer's engine plus the host-side plumbing around it.
// The engine core is single-goroutine by design, so every request against it
// runs under mu.
type hostedEngine struct {
	mu        sync.Mutex
	engine    *service.Engine
	history   *nav.MemoryHistory
	notifier  *messageBuffer
	confirmer *requestConfirmer
}

// messageBuffer collects the user-facing messages an operation produced so
// the handler can return them in the response.
type messageBuffer struct {
	messages []string
}

func (b *messageBuffer) Notify(message string) {
	b.messages = append(b.messages, message)
}

// Drain returns and clears the collected messages.
func (b *messageBuffer) Drain() []string {
	out := b.messages
	b.messages = nil
	return out
}

// requestConfirmer carries the confirmation decision of the current request.
// The handler sets it from the confirm query parameter while holding the
// engine lock.
type requestConfirmer struct {
	approved bool
}

func (c *requestConfirmer) Confirm(string) bool {
	return c.approved
}

// EngineRegistry creates and caches one engine per viewer. The anonymous
// viewer shares a single engine under the empty key.
type EngineRegistry struct {
	folders repositories.FolderRepository
	prompts repositories.PromptRepository
	logger  *slog.Logger

	mu      sync.Mutex
	engines map[string]*hostedEngine
}

// NewEngineRegistry creates an empty registry over the shared repositories.
func NewEngineRegistry(folders repositories.FolderRepository, prompts repositories.PromptRepository, logger *slog.Logger) *EngineRegistry {
	return &EngineRegistry{
		folders: folders,
		prompts: prompts,
		logger:  logger,
		engines: make(map[string]*hostedEngine),
	}
}

// engineFor returns the viewer's engine, creating and starting it on first
// use. Identity was already verified by the middleware, so the session is
// resumed rather than re-verified.
//
// The registry lock covers only map access; the first load runs under the
// per-engine lock, so one viewer's fetch cannot stall other viewers' first
// requests. Concurrent requests from the same viewer find the map entry and
// queue on the engine lock until the load completes.
func (reg *EngineRegistry) engineFor(ctx context.Context, userID, accessToken string) *hostedEngine {
	reg.mu.Lock()
	if hosted, ok := reg.engines[userID]; ok {
		reg.mu.Unlock()
		return hosted
	}

	sessions := auth.NewManager(nil, nil, reg.logger)
	if userID != "" {
		sessions.Resume(&models.Session{UserID: userID, AccessToken: accessToken})
	}

	history := nav.NewMemoryHistory("/")
	notifier := &messageBuffer{}
	confirmer := &requestConfirmer{}
	engine := service.NewEngine(sessions, reg.folders, reg.prompts, history, notifier, confirmer, reg.logger)

	hosted := &hostedEngine{
		engine:    engine,
		history:   history,
		notifier:  notifier,
		confirmer: confirmer,
	}
	hosted.mu.Lock()
	reg.engines[userID] = hosted
	reg.mu.Unlock()

	engine.Start(ctx)
	hosted.mu.Unlock()
	return hosted
}

// Invalidate drops a viewer's engine, forcing a fresh load on the next
// request. Used after sign-out.
func (reg *EngineRegistry) Invalidate(userID string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	delete(reg.engines, userID)
}

// Package saver implements write coalescing for budget documents.
//
// Cell edits arrive in bursts, one per keystroke blur. Instead of a storage
// write per edit, each edit supersedes the pending one and a single save runs
// after a quiet period. The in-memory document is the source of truth the
// whole time: reads consult the pending document before the repository, and a
// failed save keeps the document pending so the next successful save catches
// up. There is no retry loop.
package saver

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
)

// saveTimeout bounds the background write triggered by the quiet-period timer.
const saveTimeout = 10 * time.Second

type pendingSave struct {
	doc   *entity.BudgetDocument
	timer adapter.Timer
}

// DebouncedSaver implements adapter.BudgetStore on top of a BudgetRepository.
type DebouncedSaver struct {
	repo  adapter.BudgetRepository
	clock adapter.Clock
	quiet time.Duration

	mu      sync.Mutex
	pending map[uuid.UUID]*pendingSave
}

// New creates a DebouncedSaver. A non-positive quiet period disables
// coalescing: every Put writes through immediately.
func New(repo adapter.BudgetRepository, clock adapter.Clock, quiet time.Duration) *DebouncedSaver {
	return &DebouncedSaver{
		repo:    repo,
		clock:   clock,
		quiet:   quiet,
		pending: make(map[uuid.UUID]*pendingSave),
	}
}

// Get returns the user's current document: the pending in-memory one when a
// save is outstanding, otherwise whatever the repository holds.
func (s *DebouncedSaver) Get(ctx context.Context, userID uuid.UUID) (*entity.BudgetDocument, error) {
	s.mu.Lock()
	if p, ok := s.pending[userID]; ok {
		doc := p.doc.Clone()
		s.mu.Unlock()
		return doc, nil
	}
	s.mu.Unlock()

	doc, err := s.repo.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	doc.EnsureDefaults()
	return doc, nil
}

// Put schedules a debounced save. A later Put for the same user supersedes
// this one; only the final document after the quiet period reaches storage.
func (s *DebouncedSaver) Put(ctx context.Context, userID uuid.UUID, doc *entity.BudgetDocument) error {
	if s.quiet <= 0 {
		return s.PutNow(ctx, userID, doc)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if p, ok := s.pending[userID]; ok && p.timer != nil {
		p.timer.Stop()
	}
	p := &pendingSave{doc: doc.Clone()}
	p.timer = s.clock.AfterFunc(s.quiet, func() {
		s.flush(userID)
	})
	s.pending[userID] = p
	return nil
}

// PutNow cancels any pending save and writes the document through
// immediately. On storage failure the document stays pending in memory, so
// reads keep serving it and the next successful save catches up.
func (s *DebouncedSaver) PutNow(ctx context.Context, userID uuid.UUID, doc *entity.BudgetDocument) error {
	s.mu.Lock()
	if p, ok := s.pending[userID]; ok && p.timer != nil {
		p.timer.Stop()
	}
	clone := doc.Clone()
	s.pending[userID] = &pendingSave{doc: clone}
	s.mu.Unlock()

	if err := s.repo.Save(ctx, userID, clone, true); err != nil {
		slog.Warn("budget save failed, keeping document in memory",
			"user_id", userID, "error", err)
		return domainerror.NewBudgetError(
			domainerror.ErrCodeBudgetPersistence,
			"could not persist the budget; changes are kept and will be retried",
			domainerror.ErrBudgetPersistence,
		)
	}

	s.mu.Lock()
	if p, ok := s.pending[userID]; ok && p.doc == clone {
		delete(s.pending, userID)
	}
	s.mu.Unlock()
	return nil
}

// flush writes the pending document for one user. Runs off the quiet-period
// timer with its own context.
func (s *DebouncedSaver) flush(userID uuid.UUID) {
	s.mu.Lock()
	p, ok := s.pending[userID]
	s.mu.Unlock()
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()

	if err := s.repo.Save(ctx, userID, p.doc, true); err != nil {
		// Not persisted; the document stays pending and is retried when the
		// next edit schedules a save.
		slog.Warn("debounced budget save failed", "user_id", userID, "error", err)
		return
	}

	s.mu.Lock()
	if cur, ok := s.pending[userID]; ok && cur == p {
		delete(s.pending, userID)
	}
	s.mu.Unlock()
}

// Close flushes every pending document. Called on shutdown.
func (s *DebouncedSaver) Close(ctx context.Context) error {
	s.mu.Lock()
	users := make([]uuid.UUID, 0, len(s.pending))
	for userID, p := range s.pending {
		if p.timer != nil {
			p.timer.Stop()
		}
		users = append(users, userID)
	}
	s.mu.Unlock()

	var firstErr error
	for _, userID := range users {
		s.mu.Lock()
		p, ok := s.pending[userID]
		s.mu.Unlock()
		if !ok {
			continue
		}
		if err := s.repo.Save(ctx, userID, p.doc, true); err != nil {
			slog.Error("flush on close failed", "user_id", userID, "error", err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		s.mu.Lock()
		delete(s.pending, userID)
		s.mu.Unlock()
	}
	return firstErr
}

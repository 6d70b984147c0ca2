// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/domain/entity"
)

// BudgetRepository defines the storage collaborator contract for budget
// documents. Load returns domain ErrBudgetNotFound when the user has never
// saved a document.
type BudgetRepository interface {
	// Load retrieves the user's budget document.
	Load(ctx context.Context, userID uuid.UUID) (*entity.BudgetDocument, error)

	// Save persists the document. With merge set, only the known top-level
	// fields are overwritten; extra fields the store carries are left alone.
	Save(ctx context.Context, userID uuid.UUID, doc *entity.BudgetDocument, merge bool) error
}

// BudgetStore is the document store the use cases talk to. It fronts the
// BudgetRepository with write coalescing: Put schedules a debounced save that
// a later Put supersedes, PutNow writes through immediately. Get always sees
// the latest document, persisted or pending.
type BudgetStore interface {
	Get(ctx context.Context, userID uuid.UUID) (*entity.BudgetDocument, error)
	Put(ctx context.Context, userID uuid.UUID, doc *entity.BudgetDocument) error
	PutNow(ctx context.Context, userID uuid.UUID, doc *entity.BudgetDocument) error
}

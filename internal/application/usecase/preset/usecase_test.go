package preset

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
)

// memStore is an in-memory BudgetStore for use case tests.
type memStore struct {
	docs    map[uuid.UUID]*entity.BudgetDocument
	putNows int
}

func newMemStore() *memStore {
	return &memStore{docs: make(map[uuid.UUID]*entity.BudgetDocument)}
}

func (s *memStore) Get(_ context.Context, userID uuid.UUID) (*entity.BudgetDocument, error) {
	doc, ok := s.docs[userID]
	if !ok {
		return nil, domainerror.ErrBudgetNotFound
	}
	return doc.Clone(), nil
}

func (s *memStore) Put(_ context.Context, userID uuid.UUID, doc *entity.BudgetDocument) error {
	s.docs[userID] = doc.Clone()
	return nil
}

func (s *memStore) PutNow(_ context.Context, userID uuid.UUID, doc *entity.BudgetDocument) error {
	s.putNows++
	s.docs[userID] = doc.Clone()
	return nil
}

func TestAddPreset(t *testing.T) {
	t.Run("appends a new label", func(t *testing.T) {
		store := newMemStore()
		uc := NewAddPresetUseCase(store)
		userID := uuid.New()

		out, err := uc.Execute(context.Background(), AddPresetInput{UserID: userID, Label: "Investimentos"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !out.Added {
			t.Error("expected label to be reported as added")
		}
		if out.Presets[len(out.Presets)-1] != "Investimentos" {
			t.Errorf("expected new label at the end, got %v", out.Presets)
		}
		if !store.docs[userID].HasPreset("Investimentos") {
			t.Error("expected label to be persisted")
		}
	})

	t.Run("duplicate label is a no-op", func(t *testing.T) {
		store := newMemStore()
		uc := NewAddPresetUseCase(store)
		userID := uuid.New()

		out, err := uc.Execute(context.Background(), AddPresetInput{UserID: userID, Label: "Lazer"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Added {
			t.Error("expected duplicate label not to be added")
		}
		if len(out.Presets) != len(entity.DefaultPresets) {
			t.Errorf("expected preset list unchanged, got %v", out.Presets)
		}
	})

	t.Run("case matters for duplicates", func(t *testing.T) {
		store := newMemStore()
		uc := NewAddPresetUseCase(store)
		userID := uuid.New()

		out, err := uc.Execute(context.Background(), AddPresetInput{UserID: userID, Label: "lazer"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !out.Added {
			t.Error("expected lowercase variant to be a distinct label")
		}
	})

	t.Run("empty label is a no-op", func(t *testing.T) {
		store := newMemStore()
		uc := NewAddPresetUseCase(store)

		out, err := uc.Execute(context.Background(), AddPresetInput{UserID: uuid.New(), Label: "   "})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Added {
			t.Error("expected blank label not to be added")
		}
	})
}

func TestRemovePreset(t *testing.T) {
	t.Run("removes an unused label", func(t *testing.T) {
		store := newMemStore()
		uc := NewRemovePresetUseCase(store)
		userID := uuid.New()

		out, err := uc.Execute(context.Background(), RemovePresetInput{UserID: userID, Label: "Lazer"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, label := range out.Presets {
			if label == "Lazer" {
				t.Error("expected label to be gone")
			}
		}
	})

	t.Run("label in use cannot be removed", func(t *testing.T) {
		store := newMemStore()
		doc := entity.NewBudgetDocument()
		doc.Categories = append(doc.Categories, entity.NewCategory("Cinema", "Lazer"))
		userID := uuid.New()
		store.docs[userID] = doc
		uc := NewRemovePresetUseCase(store)

		_, err := uc.Execute(context.Background(), RemovePresetInput{UserID: userID, Label: "Lazer"})
		var budgetErr *domainerror.BudgetError
		if !errors.As(err, &budgetErr) || budgetErr.Code != domainerror.ErrCodePresetInUse {
			t.Fatalf("expected in-use error, got %v", err)
		}
		if !store.docs[userID].HasPreset("Lazer") {
			t.Error("expected label to survive the failed removal")
		}
	})

	t.Run("unknown label", func(t *testing.T) {
		store := newMemStore()
		uc := NewRemovePresetUseCase(store)

		_, err := uc.Execute(context.Background(), RemovePresetInput{UserID: uuid.New(), Label: "Inexistente"})
		var budgetErr *domainerror.BudgetError
		if !errors.As(err, &budgetErr) || budgetErr.Code != domainerror.ErrCodePresetNotFound {
			t.Fatalf("expected not-found error, got %v", err)
		}
	})
}

func TestToggleGroupTotal(t *testing.T) {
	store := newMemStore()
	uc := NewToggleGroupTotalUseCase(store, nil)
	userID := uuid.New()

	out, err := uc.Execute(context.Background(), ToggleGroupTotalInput{UserID: userID, Label: "Fixa", Show: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.ShowTotals["Fixa"] {
		t.Error("expected subtotal to be enabled")
	}

	out, err = uc.Execute(context.Background(), ToggleGroupTotalInput{UserID: userID, Label: "Fixa", Show: false})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.ShowTotals["Fixa"] {
		t.Error("expected subtotal to be disabled")
	}

	// Orphaned labels are valid toggle targets.
	out, err = uc.Execute(context.Background(), ToggleGroupTotalInput{UserID: userID, Label: "Antiga", Show: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.ShowTotals["Antiga"] {
		t.Error("expected orphaned label to be toggleable")
	}
}

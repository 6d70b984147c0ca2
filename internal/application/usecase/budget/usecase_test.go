package budget

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
	puts    int
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
	s.puts++
	s.docs[userID] = doc.Clone()
	return nil
}

func (s *memStore) PutNow(_ context.Context, userID uuid.UUID, doc *entity.BudgetDocument) error {
	s.putNows++
	s.docs[userID] = doc.Clone()
	return nil
}

// memUserRepo serves a single fixed user.
type memUserRepo struct {
	user *entity.User
}

func (r *memUserRepo) Create(context.Context, *entity.User) error { return nil }

func (r *memUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	if r.user == nil || r.user.ID != id {
		return nil, domainerror.ErrUserNotFound
	}
	return r.user, nil
}

func (r *memUserRepo) FindByEmail(context.Context, string) (*entity.User, error) {
	return r.user, nil
}

func (r *memUserRepo) ExistsByEmail(context.Context, string) (bool, error) { return false, nil }

func (r *memUserRepo) Update(_ context.Context, user *entity.User) error {
	r.user = user
	return nil
}

func freeUser() *entity.User {
	return entity.NewUser("user@example.com", "User", "hash")
}

func premiumUser() *entity.User {
	user := freeUser()
	user.IsPremium = true
	return user
}

func TestCreateCategory(t *testing.T) {
	t.Run("creates and sorts", func(t *testing.T) {
		store := newMemStore()
		user := premiumUser()
		uc := NewCreateCategoryUseCase(store, &memUserRepo{user: user}, nil)

		for _, spec := range []struct{ name, group string }{
			{"Aluguel", "Moradia"},
			{"Luz", "Fixa"},
		} {
			if _, err := uc.Execute(context.Background(), CreateCategoryInput{
				UserID: user.ID,
				Name:   spec.name,
				Type:   spec.group,
			}); err != nil {
				t.Fatalf("unexpected error creating %s: %v", spec.name, err)
			}
		}

		doc := store.docs[user.ID]
		if len(doc.Categories) != 2 {
			t.Fatalf("expected 2 categories, got %d", len(doc.Categories))
		}
		// Canonical order groups Fixa before Moradia.
		if doc.Categories[0].Type != "Fixa" || doc.Categories[1].Type != "Moradia" {
			t.Errorf("expected sorted order, got %s then %s",
				doc.Categories[0].Type, doc.Categories[1].Type)
		}
	})

	t.Run("free tier quota", func(t *testing.T) {
		store := newMemStore()
		user := freeUser()
		uc := NewCreateCategoryUseCase(store, &memUserRepo{user: user}, nil)

		for i := 0; i < entity.FreeCategoryLimit; i++ {
			if _, err := uc.Execute(context.Background(), CreateCategoryInput{
				UserID: user.ID,
				Name:   "Categoria " + string(rune('A'+i)),
				Type:   "Fixa",
			}); err != nil {
				t.Fatalf("unexpected error under the limit: %v", err)
			}
		}

		_, err := uc.Execute(context.Background(), CreateCategoryInput{
			UserID: user.ID,
			Name:   "Uma a mais",
			Type:   "Fixa",
		})
		var budgetErr *domainerror.BudgetError
		if !errors.As(err, &budgetErr) || budgetErr.Code != domainerror.ErrCodeCategoryQuotaExceeded {
			t.Fatalf("expected quota error, got %v", err)
		}
	})

	t.Run("quota check wins over name validation", func(t *testing.T) {
		store := newMemStore()
		user := freeUser()
		uc := NewCreateCategoryUseCase(store, &memUserRepo{user: user}, nil)

		for i := 0; i < entity.FreeCategoryLimit; i++ {
			if _, err := uc.Execute(context.Background(), CreateCategoryInput{
				UserID: user.ID,
				Name:   "Categoria " + string(rune('A'+i)),
				Type:   "Fixa",
			}); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}

		// Empty name at the quota: the quota error must win.
		_, err := uc.Execute(context.Background(), CreateCategoryInput{
			UserID: user.ID,
			Name:   "",
			Type:   "Fixa",
		})
		var budgetErr *domainerror.BudgetError
		if !errors.As(err, &budgetErr) || budgetErr.Code != domainerror.ErrCodeCategoryQuotaExceeded {
			t.Fatalf("expected quota error to take precedence, got %v", err)
		}
	})

	t.Run("duplicate name case-insensitive", func(t *testing.T) {
		store := newMemStore()
		user := premiumUser()
		uc := NewCreateCategoryUseCase(store, &memUserRepo{user: user}, nil)

		if _, err := uc.Execute(context.Background(), CreateCategoryInput{
			UserID: user.ID, Name: "Mercado", Type: "Variável",
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		_, err := uc.Execute(context.Background(), CreateCategoryInput{
			UserID: user.ID, Name: "MERCADO", Type: "Fixa",
		})
		var budgetErr *domainerror.BudgetError
		if !errors.As(err, &budgetErr) || budgetErr.Code != domainerror.ErrCodeCategoryNameExists {
			t.Fatalf("expected duplicate-name error, got %v", err)
		}
	})

	t.Run("unknown group", func(t *testing.T) {
		store := newMemStore()
		user := premiumUser()
		uc := NewCreateCategoryUseCase(store, &memUserRepo{user: user}, nil)

		_, err := uc.Execute(context.Background(), CreateCategoryInput{
			UserID: user.ID, Name: "Mercado", Type: "Inexistente",
		})
		var budgetErr *domainerror.BudgetError
		if !errors.As(err, &budgetErr) || budgetErr.Code != domainerror.ErrCodeUnknownGroup {
			t.Fatalf("expected unknown-group error, got %v", err)
		}
	})
}

func TestUpdateCategory(t *testing.T) {
	store := newMemStore()
	user := premiumUser()
	create := NewCreateCategoryUseCase(store, &memUserRepo{user: user}, nil)
	update := NewUpdateCategoryUseCase(store, nil)

	created, err := create.Execute(context.Background(), CreateCategoryInput{
		UserID: user.ID, Name: "Mercado", Type: "Variável",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("renames and regroups", func(t *testing.T) {
		out, err := update.Execute(context.Background(), UpdateCategoryInput{
			UserID:     user.ID,
			CategoryID: created.Category.ID,
			Name:       "Supermercado",
			Type:       "Fixa",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Category.Name != "Supermercado" || out.Category.Type != "Fixa" {
			t.Errorf("unexpected category after update: %+v", out.Category)
		}
		if out.Category.ID != created.Category.ID {
			t.Error("expected the id to be stable across updates")
		}
	})

	t.Run("can keep its own name", func(t *testing.T) {
		if _, err := update.Execute(context.Background(), UpdateCategoryInput{
			UserID:     user.ID,
			CategoryID: created.Category.ID,
			Name:       "Supermercado",
			Type:       "Fixa",
		}); err != nil {
			t.Fatalf("expected self-rename to succeed, got %v", err)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := update.Execute(context.Background(), UpdateCategoryInput{
			UserID:     user.ID,
			CategoryID: uuid.NewString(),
			Name:       "Qualquer",
			Type:       "Fixa",
		})
		var budgetErr *domainerror.BudgetError
		if !errors.As(err, &budgetErr) || budgetErr.Code != domainerror.ErrCodeCategoryNotFound {
			t.Fatalf("expected not-found error, got %v", err)
		}
	})
}

func TestDeleteCategoryRemovesExpenses(t *testing.T) {
	store := newMemStore()
	user := premiumUser()
	create := NewCreateCategoryUseCase(store, &memUserRepo{user: user}, nil)
	setCell := NewSetCellValueUseCase(store, nil)
	del := NewDeleteCategoryUseCase(store, nil)

	created, err := create.Execute(context.Background(), CreateCategoryInput{
		UserID: user.ID, Name: "Mercado", Type: "Variável",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := setCell.Execute(context.Background(), SetCellValueInput{
		UserID: user.ID, MonthIndex: 2, CategoryID: created.Category.ID, RawValue: "300",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := del.Execute(context.Background(), DeleteCategoryInput{
		UserID: user.ID, CategoryID: created.Category.ID,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	doc := store.docs[user.ID]
	if len(doc.Categories) != 0 {
		t.Error("expected category to be removed")
	}
	if _, ok := doc.Months[2].Expenses[created.Category.ID]; ok {
		t.Error("expected expense entries to be removed with the category")
	}
}

func TestSetCellValue(t *testing.T) {
	t.Run("income cell", func(t *testing.T) {
		store := newMemStore()
		uc := NewSetCellValueUseCase(store, nil)
		userID := uuid.New()

		out, err := uc.Execute(context.Background(), SetCellValueInput{
			UserID: userID, MonthIndex: 0, CategoryID: "", RawValue: "R$ 5.000,00",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.ParsedValue != 5000 {
			t.Errorf("expected parsed value 5000, got %v", out.ParsedValue)
		}
		if store.docs[userID].Months[0].Income != 5000 {
			t.Errorf("expected stored income 5000, got %v", store.docs[userID].Months[0].Income)
		}
	})

	t.Run("garbage stores zero", func(t *testing.T) {
		store := newMemStore()
		uc := NewSetCellValueUseCase(store, nil)
		userID := uuid.New()

		out, err := uc.Execute(context.Background(), SetCellValueInput{
			UserID: userID, MonthIndex: 0, CategoryID: "", RawValue: "abc",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.ParsedValue != 0 {
			t.Errorf("expected 0, got %v", out.ParsedValue)
		}
	})

	t.Run("invalid month index", func(t *testing.T) {
		uc := NewSetCellValueUseCase(newMemStore(), nil)

		for _, index := range []int{-1, 12, 100} {
			_, err := uc.Execute(context.Background(), SetCellValueInput{
				UserID: uuid.New(), MonthIndex: index, RawValue: "10",
			})
			var budgetErr *domainerror.BudgetError
			if !errors.As(err, &budgetErr) || budgetErr.Code != domainerror.ErrCodeInvalidMonthIndex {
				t.Fatalf("index %d: expected invalid-month error, got %v", index, err)
			}
		}
	})

	t.Run("unknown category", func(t *testing.T) {
		uc := NewSetCellValueUseCase(newMemStore(), nil)

		_, err := uc.Execute(context.Background(), SetCellValueInput{
			UserID: uuid.New(), MonthIndex: 0, CategoryID: "missing", RawValue: "10",
		})
		var budgetErr *domainerror.BudgetError
		if !errors.As(err, &budgetErr) || budgetErr.Code != domainerror.ErrCodeCategoryNotFound {
			t.Fatalf("expected not-found error, got %v", err)
		}
	})
}

func TestClearMonth(t *testing.T) {
	t.Run("premium clears", func(t *testing.T) {
		store := newMemStore()
		user := premiumUser()
		create := NewCreateCategoryUseCase(store, &memUserRepo{user: user}, nil)
		setCell := NewSetCellValueUseCase(store, nil)
		clear := NewClearMonthUseCase(store, &memUserRepo{user: user}, nil)

		created, err := create.Execute(context.Background(), CreateCategoryInput{
			UserID: user.ID, Name: "Mercado", Type: "Variável",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := setCell.Execute(context.Background(), SetCellValueInput{
			UserID: user.ID, MonthIndex: 4, CategoryID: created.Category.ID, RawValue: "500",
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := setCell.Execute(context.Background(), SetCellValueInput{
			UserID: user.ID, MonthIndex: 4, RawValue: "4000",
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if _, err := clear.Execute(context.Background(), ClearMonthInput{
			UserID: user.ID, MonthIndex: 4,
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		doc := store.docs[user.ID]
		if doc.Months[4].Income != 0 || len(doc.Months[4].Expenses) != 0 {
			t.Error("expected month to be zeroed")
		}
		if len(doc.Categories) != 1 {
			t.Error("expected categories to survive a month clear")
		}
	})

	t.Run("free tier denied", func(t *testing.T) {
		store := newMemStore()
		user := freeUser()
		clear := NewClearMonthUseCase(store, &memUserRepo{user: user}, nil)

		_, err := clear.Execute(context.Background(), ClearMonthInput{
			UserID: user.ID, MonthIndex: 0,
		})
		var premiumErr *domainerror.PremiumError
		if !errors.As(err, &premiumErr) || premiumErr.Code != domainerror.ErrCodePremiumRequired {
			t.Fatalf("expected premium-required error, got %v", err)
		}
	})
}

func TestResetDocument(t *testing.T) {
	store := newMemStore()
	user := premiumUser()
	create := NewCreateCategoryUseCase(store, &memUserRepo{user: user}, nil)
	reset := NewResetDocumentUseCase(store, nil)

	if _, err := create.Execute(context.Background(), CreateCategoryInput{
		UserID: user.ID, Name: "Mercado", Type: "Variável",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out, err := reset.Execute(context.Background(), ResetDocumentInput{UserID: user.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(out.Document.Categories) != 0 {
		t.Error("expected reset document to have no categories")
	}
	if len(out.Document.Presets) != len(entity.DefaultPresets) {
		t.Error("expected reset document to carry default presets")
	}
	if len(store.docs[user.ID].Categories) != 0 {
		t.Error("expected reset to be persisted")
	}
}

func TestGetBudgetSeedsDefault(t *testing.T) {
	store := newMemStore()
	uc := NewGetBudgetUseCase(store)
	userID := uuid.New()

	out, err := uc.Execute(context.Background(), GetBudgetInput{UserID: userID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Document.Presets) != len(entity.DefaultPresets) {
		t.Error("expected default presets on first access")
	}
	if store.putNows != 1 {
		t.Errorf("expected the seed to be persisted once, got %d writes", store.putNows)
	}
}

package saver

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
)

// fakeTimer records Stop calls; firing is driven by the fake clock.
type fakeTimer struct {
	f       func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	was := t.stopped
	t.stopped = true
	return !was
}

// fakeClock hands out timers that only fire when the test says so.
type fakeClock struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

func (c *fakeClock) Now() time.Time { return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC) }

func (c *fakeClock) AfterFunc(_ time.Duration, f func()) adapter.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{f: f}
	c.timers = append(c.timers, t)
	return t
}

// fireLast runs the most recently scheduled timer, as the quiet period
// elapsing would.
func (c *fakeClock) fireLast() {
	c.mu.Lock()
	if len(c.timers) == 0 {
		c.mu.Unlock()
		return
	}
	t := c.timers[len(c.timers)-1]
	c.mu.Unlock()
	t.f()
}

// fakeRepo is an in-memory BudgetRepository with a failure switch.
type fakeRepo struct {
	mu    sync.Mutex
	docs  map[uuid.UUID]*entity.BudgetDocument
	saves int
	fail  bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{docs: make(map[uuid.UUID]*entity.BudgetDocument)}
}

func (r *fakeRepo) Load(_ context.Context, userID uuid.UUID) (*entity.BudgetDocument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[userID]
	if !ok {
		return nil, domainerror.ErrBudgetNotFound
	}
	return doc.Clone(), nil
}

func (r *fakeRepo) Save(_ context.Context, userID uuid.UUID, doc *entity.BudgetDocument, _ bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saves++
	if r.fail {
		return errors.New("storage unavailable")
	}
	r.docs[userID] = doc.Clone()
	return nil
}

func (r *fakeRepo) saveCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saves
}

func docWithIncome(income float64) *entity.BudgetDocument {
	doc := entity.NewBudgetDocument()
	doc.Months[0].Income = income
	return doc
}

func TestPutDebouncesAndSupersedes(t *testing.T) {
	repo := newFakeRepo()
	clock := &fakeClock{}
	s := New(repo, clock, 2*time.Second)
	userID := uuid.New()

	// Three edits in a burst; only the last one should reach storage.
	for _, income := range []float64{100, 200, 300} {
		if err := s.Put(context.Background(), userID, docWithIncome(income)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if repo.saveCount() != 0 {
		t.Fatalf("expected no save before the quiet period, got %d", repo.saveCount())
	}

	// Reads see the pending document in the meantime.
	doc, err := s.Get(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Months[0].Income != 300 {
		t.Errorf("expected pending document, got income %v", doc.Months[0].Income)
	}

	clock.fireLast()

	if repo.saveCount() != 1 {
		t.Fatalf("expected exactly one save, got %d", repo.saveCount())
	}
	if repo.docs[userID].Months[0].Income != 300 {
		t.Errorf("expected last edit to win, got income %v", repo.docs[userID].Months[0].Income)
	}

	// Superseded timers were cancelled.
	if !clock.timers[0].stopped || !clock.timers[1].stopped {
		t.Error("expected earlier timers to be stopped")
	}

	// Pending entry cleared; Get now reads storage.
	if _, err := s.Get(context.Background(), userID); err != nil {
		t.Errorf("unexpected error reading after flush: %v", err)
	}
}

func TestPutNowWritesThrough(t *testing.T) {
	repo := newFakeRepo()
	clock := &fakeClock{}
	s := New(repo, clock, 2*time.Second)
	userID := uuid.New()

	if err := s.Put(context.Background(), userID, docWithIncome(100)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.PutNow(context.Background(), userID, docWithIncome(500)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if repo.saveCount() != 1 {
		t.Fatalf("expected one immediate save, got %d", repo.saveCount())
	}
	if repo.docs[userID].Months[0].Income != 500 {
		t.Errorf("expected PutNow document in storage, got income %v", repo.docs[userID].Months[0].Income)
	}
	if !clock.timers[0].stopped {
		t.Error("expected pending timer to be cancelled")
	}

	// Firing the cancelled timer's callback must not rewrite old state.
	clock.fireLast()
	if repo.saveCount() != 1 {
		t.Errorf("expected no extra save after flush, got %d", repo.saveCount())
	}
}

func TestPutNowFailureKeepsDocumentPending(t *testing.T) {
	repo := newFakeRepo()
	repo.fail = true
	clock := &fakeClock{}
	s := New(repo, clock, 2*time.Second)
	userID := uuid.New()

	err := s.PutNow(context.Background(), userID, docWithIncome(700))
	var budgetErr *domainerror.BudgetError
	if !errors.As(err, &budgetErr) || budgetErr.Code != domainerror.ErrCodeBudgetPersistence {
		t.Fatalf("expected persistence error, got %v", err)
	}

	// Memory stays the source of truth.
	doc, err := s.Get(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Months[0].Income != 700 {
		t.Errorf("expected failed save to keep serving from memory, got income %v", doc.Months[0].Income)
	}

	// Once storage recovers the next write catches up.
	repo.fail = false
	if err := s.PutNow(context.Background(), userID, doc); err != nil {
		t.Fatalf("unexpected error after recovery: %v", err)
	}
	if repo.docs[userID].Months[0].Income != 700 {
		t.Errorf("expected recovered save, got income %v", repo.docs[userID].Months[0].Income)
	}
}

func TestDebouncedFlushFailureKeepsPending(t *testing.T) {
	repo := newFakeRepo()
	repo.fail = true
	clock := &fakeClock{}
	s := New(repo, clock, 2*time.Second)
	userID := uuid.New()

	if err := s.Put(context.Background(), userID, docWithIncome(900)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	clock.fireLast()

	doc, err := s.Get(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Months[0].Income != 900 {
		t.Errorf("expected document to stay pending, got income %v", doc.Months[0].Income)
	}
}

func TestCloseFlushesPending(t *testing.T) {
	repo := newFakeRepo()
	clock := &fakeClock{}
	s := New(repo, clock, 2*time.Second)

	userA := uuid.New()
	userB := uuid.New()
	if err := s.Put(context.Background(), userA, docWithIncome(10)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Put(context.Background(), userB, docWithIncome(20)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := s.Close(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if repo.docs[userA] == nil || repo.docs[userA].Months[0].Income != 10 {
		t.Error("expected user A document to be flushed")
	}
	if repo.docs[userB] == nil || repo.docs[userB].Months[0].Income != 20 {
		t.Error("expected user B document to be flushed")
	}
}

func TestCloseReportsFlushFailure(t *testing.T) {
	repo := newFakeRepo()
	repo.fail = true
	clock := &fakeClock{}
	s := New(repo, clock, 2*time.Second)

	if err := s.Put(context.Background(), uuid.New(), docWithIncome(10)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Close(context.Background()); err == nil {
		t.Error("expected Close to surface the flush failure")
	}
}

func TestZeroQuietPeriodWritesThrough(t *testing.T) {
	repo := newFakeRepo()
	clock := &fakeClock{}
	s := New(repo, clock, 0)
	userID := uuid.New()

	if err := s.Put(context.Background(), userID, docWithIncome(50)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if repo.saveCount() != 1 {
		t.Fatalf("expected immediate save with zero quiet period, got %d", repo.saveCount())
	}
	if len(clock.timers) != 0 {
		t.Errorf("expected no timers, got %d", len(clock.timers))
	}
}

func TestGetSeedsDefaultsFromStorage(t *testing.T) {
	repo := newFakeRepo()
	userID := uuid.New()
	repo.docs[userID] = &entity.BudgetDocument{}
	s := New(repo, &fakeClock{}, time.Second)

	doc, err := s.Get(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Presets) != len(entity.DefaultPresets) {
		t.Errorf("expected defaults to be applied on load, got %v", doc.Presets)
	}
}

package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"ledger/internal/core"
	"ledger/internal/ledger"
	"ledger/internal/locale"
)

var (
	// ErrInvalidExpense wraps the field errors of a rejected submission.
	ErrInvalidExpense = errors.New("invalid expense")
	// ErrStorage means the slot could not be written and the change was undone.
	ErrStorage = errors.New("storage unavailable")
)

// LedgerService runs one user action at a time against the store:
// validate, mutate, persist, then render from the resulting state.
type LedgerService struct {
	mu        sync.Mutex
	store     *ledger.Store
	formatter *locale.Formatter
	now       func() time.Time
}

func NewLedgerService(store *ledger.Store, formatter *locale.Formatter, now func() time.Time) *LedgerService {
	if formatter == nil {
		formatter = locale.Default()
	}
	if now == nil {
		now = time.Now
	}
	return &LedgerService{
		store:     store,
		formatter: formatter,
		now:       now,
	}
}

// Load reads the persisted collection into memory. It never fails; an
// unreadable slot starts an empty ledger.
func (s *LedgerService) Load(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.store.Load(ctx))
}

// Submit validates the draft and, if it is valid, records and persists a new expense.
func (s *LedgerService) Submit(ctx context.Context, d core.Draft) (core.Expense, error) {
	e, err := d.Parse()
	if err != nil {
		slog.DebugContext(ctx, "Expense rejected", "error", err)
		return core.Expense{}, fmt.Errorf("%w: %w", ErrInvalidExpense, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.store.Records()
	e.ID = s.store.NextID()
	s.store.Add(e)

	if err := s.store.Persist(ctx); err != nil {
		s.store.Reset(before)
		slog.ErrorContext(ctx, "Failed to persist new expense, change reverted",
			"id", e.ID, "error", err)
		return core.Expense{}, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	slog.DebugContext(ctx, "Expense added",
		"id", e.ID,
		"name", e.Name,
		"amount", e.Amount.String(),
		"category", e.Category.String(),
		"date", e.Date.String())
	return e, nil
}

// Delete removes the expense with id. Unknown ids are not an error; removed
// reports whether anything changed.
func (s *LedgerService) Delete(ctx context.Context, id int64) (removed bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.store.Records()
	if !s.store.Remove(id) {
		slog.InfoContext(ctx, "Delete requested for unknown expense", "id", id)
		return false, nil
	}

	if err := s.store.Persist(ctx); err != nil {
		s.store.Reset(before)
		slog.ErrorContext(ctx, "Failed to persist deletion, change reverted", "id", id, "error", err)
		return false, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	slog.DebugContext(ctx, "Expense deleted", "id", id)
	return true, nil
}

// Records returns the canonical collection in insertion order.
func (s *LedgerService) Records() []core.Expense {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Records()
}

// Snapshot renders the current state into a view using the service clock.
func (s *LedgerService) Snapshot() LedgerView {
	s.mu.Lock()
	records := s.store.Records()
	s.mu.Unlock()
	return BuildView(records, s.now(), s.formatter)
}

// Today returns the current date in the form used by the date input.
func (s *LedgerService) Today() string {
	return core.Today(s.now()).String()
}

// Ping checks that the backing slot is reachable.
func (s *LedgerService) Ping(ctx context.Context) error {
	return s.store.Slot().Ping(ctx)
}

func (s *LedgerService) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Slot().Close(); err != nil {
		return fmt.Errorf("close slot: %w", err)
	}
	return nil
}

// Package ledger keeps the expense collection in memory and mirrors it to a
// storage slot after every mutation.
//
// The canonical collection is kept in insertion order. Display ordering is
// computed elsewhere and never written back.
package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"ledger/internal/core"
	"ledger/internal/storage"
)

// Store is not safe for concurrent use; callers serialise access.
type Store struct {
	slot    storage.Slot
	records []core.Expense
	lastID  int64
	now     func() time.Time
	logger  *slog.Logger
}

type Option func(*Store)

// WithClock replaces the wall clock used for id assignment.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

func New(slot storage.Slot, opts ...Option) *Store {
	s := &Store{
		slot:   slot,
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "ledger", "slot", slot.Name())
	return s
}

// Load replaces the in-memory collection with the slot contents.
// Missing, empty or unreadable data yields an empty collection.
func (s *Store) Load(ctx context.Context) []core.Expense {
	s.records = nil

	data, err := s.slot.Read(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to read slot, starting empty", "error", err)
		return s.Records()
	}
	if len(data) == 0 {
		s.logger.InfoContext(ctx, "Slot is empty, starting with no expenses")
		return s.Records()
	}

	records, err := decodeRecords(ctx, s.logger, data)
	if err != nil {
		s.logger.WarnContext(ctx, "Slot contents are not a valid expense list, starting empty", "error", err)
		return s.Records()
	}

	s.records = records
	for _, e := range records {
		if e.ID > s.lastID {
			s.lastID = e.ID
		}
	}

	s.logger.InfoContext(ctx, "Expenses loaded", "count", len(records))
	return s.Records()
}

// Persist overwrites the slot with the full collection.
func (s *Store) Persist(ctx context.Context) error {
	data, err := encodeRecords(s.records)
	if err != nil {
		return fmt.Errorf("encode expenses: %w", err)
	}
	if err := s.slot.Write(ctx, data); err != nil {
		return fmt.Errorf("persist expenses: %w", err)
	}
	return nil
}

// NextID returns a fresh identifier derived from the clock in milliseconds.
// Ids issued within the same millisecond, or after the clock moved back,
// continue from the last one.
func (s *Store) NextID() int64 {
	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

func (s *Store) Add(e core.Expense) {
	s.records = append(s.records, e)
	if e.ID > s.lastID {
		s.lastID = e.ID
	}
}

// Remove drops the record with the given id and reports whether one existed.
func (s *Store) Remove(id int64) bool {
	for i, e := range s.records {
		if e.ID == id {
			s.records = append(s.records[:i:i], s.records[i+1:]...)
			return true
		}
	}
	return false
}

// Records returns a copy of the collection in insertion order.
func (s *Store) Records() []core.Expense {
	out := make([]core.Expense, len(s.records))
	copy(out, s.records)
	return out
}

// Reset replaces the collection without touching the slot.
func (s *Store) Reset(records []core.Expense) {
	s.records = make([]core.Expense, len(records))
	copy(s.records, records)
}

func (s *Store) Len() int {
	return len(s.records)
}

// Slot exposes the backing slot for health checks.
func (s *Store) Slot() storage.Slot {
	return s.slot
}

// errMissingID marks stored records whose id is absent or not positive.
// Such rows could never be addressed by a delete.
var errMissingID = errors.New("missing or non-positive id")

// record is the stored shape of an expense.
type record struct {
	ID       int64       `json:"id"`
	Name     string      `json:"name"`
	Amount   json.Number `json:"amount"`
	Category string      `json:"category"`
	Date     string      `json:"date"`
}

func encodeRecords(expenses []core.Expense) ([]byte, error) {
	out := make([]record, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, record{
			ID:       e.ID,
			Name:     e.Name,
			Amount:   json.Number(e.Amount.String()),
			Category: e.Category.String(),
			Date:     e.Date.String(),
		})
	}
	return json.Marshal(out)
}

// decodeRecords fails only when data is not a JSON array. Individual
// entries that cannot be used are skipped and logged.
func decodeRecords(ctx context.Context, logger *slog.Logger, data []byte) ([]core.Expense, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	expenses := make([]core.Expense, 0, len(raw))
	seen := make(map[int64]bool, len(raw))
	for i, msg := range raw {
		var r record
		if err := json.Unmarshal(msg, &r); err != nil {
			logger.WarnContext(ctx, "Skipping unreadable stored expense", "index", i, "error", err)
			continue
		}
		e, folded, err := r.toExpense()
		if err != nil {
			logger.WarnContext(ctx, "Skipping invalid stored expense", "index", i, "id", r.ID, "error", err)
			continue
		}
		if folded {
			logger.WarnContext(ctx, "Stored expense has unknown category, filed under Other",
				"id", r.ID, "category", r.Category)
		}
		if seen[e.ID] {
			logger.WarnContext(ctx, "Skipping stored expense with duplicate id", "index", i, "id", e.ID)
			continue
		}
		seen[e.ID] = true
		expenses = append(expenses, e)
	}
	return expenses, nil
}

// toExpense reports folded when the stored category was replaced by Other.
func (r record) toExpense() (e core.Expense, folded bool, err error) {
	if r.ID <= 0 {
		return core.Expense{}, false, errMissingID
	}
	amount, err := core.ParseMoney(r.Amount.String())
	if err != nil {
		return core.Expense{}, false, err
	}
	date, err := core.ParseDate(r.Date)
	if err != nil {
		return core.Expense{}, false, err
	}
	category, err := core.ParseCategory(r.Category)
	if err != nil {
		category, folded = core.Other, true
	}
	e = core.Expense{
		ID:       r.ID,
		Name:     core.CleanText(r.Name),
		Amount:   amount,
		Category: category,
		Date:     date,
	}
	if err := e.Validate(); err != nil {
		return core.Expense{}, false, err
	}
	return e, folded, nil
}

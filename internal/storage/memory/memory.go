package memory

import (
	"context"
	"os"
	"sync"

	"ledger/internal/storage"
)

// Slot keeps the payload in process memory. Nothing survives a restart.
type Slot struct {
	mu      sync.Mutex
	name    string
	payload []byte
	writes  int
}

var _ storage.Slot = (*Slot)(nil)

func New(name string, seed []byte) *Slot {
	return &Slot{name: name, payload: clone(seed)}
}

// NewFromFile seeds the slot from a JSON file if it exists.
// A missing or unreadable file leaves the slot empty.
func NewFromFile(name, path string) *Slot {
	data, err := os.ReadFile(path)
	if err != nil {
		return New(name, nil)
	}
	return New(name, data)
}

func (s *Slot) Name() string {
	return s.name
}

func (s *Slot) Read(_ context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clone(s.payload), nil
}

func (s *Slot) Write(_ context.Context, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payload = clone(payload)
	s.writes++
	return nil
}

// Writes returns how many times the slot has been overwritten.
func (s *Slot) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

func (s *Slot) Ping(_ context.Context) error {
	return nil
}

func (s *Slot) Close() error {
	return nil
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	return append([]byte(nil), b...)
}

// Package storage holds the durable slot that mirrors the expense collection.
//
// A slot is a single named location holding the whole serialized collection.
// Every write replaces the previous payload; there is no partial update.
package storage

import (
	"context"
	"errors"
	"fmt"
	"regexp"
)

// DefaultSlotName is the slot used when none is configured.
const DefaultSlotName = "expenses"

// Slot is the durable mirror of the expense collection.
type Slot interface {
	// Name returns the slot name.
	Name() string

	// Read returns the stored payload, or nil with no error if the slot was never written.
	Read(ctx context.Context) ([]byte, error)

	// Write overwrites the slot with payload.
	Write(ctx context.Context, payload []byte) error

	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error

	// Close releases any resources held by the slot.
	Close() error
}

var ErrInvalidSlotName = errors.New("invalid slot name")

var slotNamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]{0,63}$`)

// ValidateSlotName checks that name is usable as a file name and a table key.
func ValidateSlotName(name string) error {
	if !slotNamePattern.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidSlotName, name)
	}
	return nil
}

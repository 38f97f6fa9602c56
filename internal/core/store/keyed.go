// Package store holds the in-memory repositories shared by the desk programs.
package store

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/rl1809/desk-suite/internal/core/domain"
)

// Keyed maps an integer id to exactly one stored item. One instance is created
// per concrete item type; mixed collections are not supported.
//
// Every successful mutation is assigned a version while the lock is held.
// Versions strictly increase and follow the clock in microseconds, so they
// order changes across goroutines and across process restarts.
type Keyed[T domain.StockItem] struct {
	mu      sync.RWMutex
	items   map[int]T
	order   []int
	now     func() time.Time
	version int64
}

// Change is the result of one mutation.
type Change[T domain.StockItem] struct {
	Item     T
	Quantity int
	Version  int64
}

func NewKeyed[T domain.StockItem]() *Keyed[T] {
	return NewKeyedWithClock[T](time.Now)
}

func NewKeyedWithClock[T domain.StockItem](now func() time.Time) *Keyed[T] {
	return &Keyed[T]{items: make(map[int]T), now: now}
}

// nextVersion must be called with the write lock held.
func (k *Keyed[T]) nextVersion() int64 {
	k.version = max(k.now().UnixMicro(), k.version+1)
	return k.version
}

func (k *Keyed[T]) Insert(item T) error {
	_, err := k.InsertChange(item)
	return err
}

func (k *Keyed[T]) InsertChange(item T) (Change[T], error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	id := item.ID()
	if _, ok := k.items[id]; ok {
		return Change[T]{}, fmt.Errorf("%w: id %d", ErrDuplicateKey, id)
	}
	k.items[id] = item
	k.order = append(k.order, id)
	return Change[T]{Item: item, Quantity: item.Quantity(), Version: k.nextVersion()}, nil
}

func (k *Keyed[T]) GetByID(id int) (T, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	item, ok := k.items[id]
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return item, nil
}

func (k *Keyed[T]) Remove(id int) error {
	_, err := k.RemoveChange(id)
	return err
}

// RemoveChange deletes id and reports the removed item. Quantity is zero.
func (k *Keyed[T]) RemoveChange(id int) (Change[T], error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	item, ok := k.items[id]
	if !ok {
		return Change[T]{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	delete(k.items, id)
	if i := slices.Index(k.order, id); i >= 0 {
		k.order = slices.Delete(k.order, i, i+1)
	}
	return Change[T]{Item: item, Version: k.nextVersion()}, nil
}

// ListAll returns a new slice on every call, in insertion order.
func (k *Keyed[T]) ListAll() []T {
	k.mu.RLock()
	defer k.mu.RUnlock()

	out := make([]T, 0, len(k.order))
	for _, id := range k.order {
		out = append(out, k.items[id])
	}
	return out
}

// UpdateQuantity validates the quantity before looking up the id, so a
// negative quantity on a missing id reports ErrInvalidQuantity.
func (k *Keyed[T]) UpdateQuantity(id, quantity int) error {
	if quantity < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidQuantity, quantity)
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	item, ok := k.items[id]
	if !ok {
		return fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	item.SetQuantity(quantity)
	k.nextVersion()
	return nil
}

// Adjust adds delta to an item's quantity as one step. A result below zero
// leaves the item unchanged.
func (k *Keyed[T]) Adjust(id, delta int) (Change[T], error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	item, ok := k.items[id]
	if !ok {
		return Change[T]{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	next := item.Quantity() + delta
	if next < 0 {
		return Change[T]{}, fmt.Errorf("%w: got %d", ErrInvalidQuantity, next)
	}
	item.SetQuantity(next)
	return Change[T]{Item: item, Quantity: next, Version: k.nextVersion()}, nil
}

func (k *Keyed[T]) Len() int {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return len(k.items)
}

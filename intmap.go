// Package intmap is a hash map from int32 keys to values of any type. It uses open
// addressing with linear probing over power-of-two sized tables, and stores keys,
// values and occupancy in flat slices so a large map is a handful of allocations
// rather than one per entry.
//
// Any int32 is a valid key, including 0, math.MinInt32 and math.MaxInt32. Entries
// can't be deleted, and an IntMap is not safe for concurrent use.
package intmap

import (
	"github.com/pkg/errors"
)

const (
	// DefaultCapacity is the initial capacity used by New.
	DefaultCapacity = 8
	// MinCapacity is the smallest table we allocate.
	MinCapacity = 4
	// MaxCapacity is the largest table we allocate. Doubling it still fits
	// comfortably in an int32.
	MaxCapacity = 1 << 28
)

// We grow once more than 1/loadFactor of the table would be in use, so the table is
// always at least half empty and every probe ends at an empty slot.
const loadFactor = 2

// IntMap maps int32 keys to values. Allocate it via New() or NewWithCapacity()
type IntMap[V any] struct {
	table       table[V]
	count       int
	grows       int
	maxCapacity int
}

// New creates an IntMap with DefaultCapacity slots. It will grow automatically when
// needed
func New[V any]() *IntMap[V] {
	m, _ := NewWithCapacity[V](DefaultCapacity)
	return m
}

// NewWithCapacity creates an IntMap whose table has capacity slots, rounded up to a
// power of two. capacity must be between 1 and MaxCapacity, otherwise an error
// wrapping ErrConfiguration is returned.
func NewWithCapacity[V any](capacity int) (*IntMap[V], error) {
	if capacity < 1 || capacity > MaxCapacity {
		return nil, errors.Wrapf(ErrConfiguration, "capacity %d is outside [1, %d]", capacity, MaxCapacity)
	}
	return &IntMap[V]{
		table:       newTable[V](roundCapacity(capacity)),
		maxCapacity: MaxCapacity,
	}, nil
}

// Len returns the number of entries stored
func (m *IntMap[V]) Len() int {
	return m.count
}

// Cap returns the number of slots in the table. This is always a power of two and
// always greater than Len
func (m *IntMap[V]) Cap() int {
	return m.table.len()
}

// Get returns the value stored for key. ok is false if key has never been Put.
func (m *IntMap[V]) Get(key int32) (value V, ok bool) {
	cursor, found := m.table.find(key)
	if !found {
		return value, false
	}
	return m.table.values[cursor], true
}

// Contains reports whether key is in the map
func (m *IntMap[V]) Contains(key int32) bool {
	_, found := m.table.find(key)
	return found
}

// Put stores value for key. If key was already present its previous value is
// returned with found set to true, and the size of the map does not change.
//
// If storing a new key would need the table to grow beyond MaxCapacity, Put returns
// an error wrapping ErrCapacityExceeded and the map is unchanged.
func (m *IntMap[V]) Put(key int32, value V) (prev V, found bool, err error) {
	cursor, found := m.table.find(key)
	if found {
		prev = m.table.values[cursor]
		m.table.values[cursor] = value
		return prev, true, nil
	}

	if m.needsGrow() {
		if err := m.grow(); err != nil {
			return prev, false, err
		}
		// The slot we found belongs to the old table
		cursor, _ = m.table.find(key)
	}

	m.table.set(cursor, key, value)
	m.count++
	return prev, false, nil
}

// needsGrow is true if one more entry would take the table over the load factor
func (m *IntMap[V]) needsGrow() bool {
	return (m.count+1)*loadFactor > m.table.len()
}

// grow doubles the table. Every entry is copied into the new table before it replaces
// the old one, so a failure leaves the map as it was.
func (m *IntMap[V]) grow() error {
	old := m.table
	newCap := old.len() * 2
	if newCap > m.maxCapacity {
		return errors.Wrapf(ErrCapacityExceeded, "cannot grow %d slots holding %d entries past %d", old.len(), m.count, m.maxCapacity)
	}

	newTable := newTable[V](newCap)
	for cursor := 0; cursor < old.len(); cursor++ {
		if old.occupied(cursor) {
			newTable.insertNew(old.keys[cursor], old.values[cursor])
		}
	}

	m.table = newTable
	m.grows++
	return nil
}

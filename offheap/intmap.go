// Package offheap is an off-heap int32 to int32 map. It behaves like intmap.IntMap, but
// its tables are allocated directly from the OS, so the GC neither scans nor
// accounts for them. This is useful for very large maps of IDs that live for the
// lifetime of a process.
//
// Memory is not released until Close is called.
package offheap

import (
	"math/bits"
	"reflect"
	"unsafe"

	"github.com/philpearl/intmap"
	"github.com/philpearl/mmap"
	"github.com/pkg/errors"
)

// Same headroom as intmap: the table is never more than half full
const loadFactor = 2

// IntMap is the off-heap map. Allocate it via New() or NewWithCapacity(), and Close it
// when done
type IntMap struct {
	table table
	count int
}

// New creates an IntMap with intmap.DefaultCapacity slots
func New() (*IntMap, error) {
	return NewWithCapacity(intmap.DefaultCapacity)
}

// NewWithCapacity creates an IntMap with at least capacity slots. The limits on
// capacity are the same as for intmap.NewWithCapacity
func NewWithCapacity(capacity int) (*IntMap, error) {
	if capacity < 1 || capacity > intmap.MaxCapacity {
		return nil, errors.Wrapf(intmap.ErrConfiguration, "capacity %d is outside [1, %d]", capacity, intmap.MaxCapacity)
	}
	if capacity < intmap.MinCapacity {
		capacity = intmap.MinCapacity
	}
	capacity = 1 << uint(bits.Len32(uint32(capacity-1)))

	var m IntMap
	if err := m.table.init(capacity); err != nil {
		return nil, err
	}
	return &m, nil
}

// Close releases the memory associated with the IntMap. The map must not be used
// afterwards
func (m *IntMap) Close() {
	m.table.close()
	m.count = 0
}

// Len returns the number of entries stored
func (m *IntMap) Len() int {
	return m.count
}

// Cap returns the number of slots in the table
func (m *IntMap) Cap() int {
	return m.table.len()
}

// Get returns the value stored for key
func (m *IntMap) Get(key int32) (int32, bool) {
	cursor, found := m.table.find(key)
	if !found {
		return 0, false
	}
	return m.table.values[cursor], true
}

// Put stores value for key, returning the previous value if key was already present.
func (m *IntMap) Put(key, value int32) (prev int32, found bool, err error) {
	cursor, found := m.table.find(key)
	if found {
		prev = m.table.values[cursor]
		m.table.values[cursor] = value
		return prev, true, nil
	}

	if (m.count+1)*loadFactor > m.table.len() {
		if err := m.grow(); err != nil {
			return 0, false, err
		}
		cursor, _ = m.table.find(key)
	}

	m.table.set(cursor, key, value)
	m.count++
	return 0, false, nil
}

func (m *IntMap) grow() error {
	newCap := m.table.len() * 2
	if newCap > intmap.MaxCapacity {
		return errors.Wrapf(intmap.ErrCapacityExceeded, "cannot grow %d slots holding %d entries", m.table.len(), m.count)
	}

	var newTable table
	if err := newTable.init(newCap); err != nil {
		return err
	}
	for cursor, used := range m.table.used {
		if used != 0 {
			newTable.insertNew(m.table.keys[cursor], m.table.values[cursor])
		}
	}

	// Only free the old table once everything is safely in the new one
	m.table.close()
	m.table = newTable
	return nil
}

// table is the off-heap equivalent of intmap's table. Occupancy is a byte per slot;
// mmap memory starts zeroed, so a fresh table is all empty.
type table struct {
	keys   []int32
	values []int32
	used   []uint8
}

func (t *table) init(cap int) error {
	var err error
	if t.keys, err = makeInt32Slice(cap); err != nil {
		return err
	}
	if t.values, err = makeInt32Slice(cap); err != nil {
		t.close()
		return err
	}
	if t.used, err = makeUint8Slice(cap); err != nil {
		t.close()
		return err
	}
	return nil
}

func (t table) len() int {
	return len(t.keys)
}

func (t table) find(key int32) (cursor int, found bool) {
	mask := t.len() - 1
	cursor = int(intmap.Hash(key)) & mask
	start := cursor
	for t.used[cursor] != 0 {
		if t.keys[cursor] == key {
			return cursor, true
		}
		cursor = (cursor + 1) & mask
		if cursor == start {
			panic("out of space!")
		}
	}
	return cursor, false
}

func (t table) insertNew(key, value int32) {
	cursor, _ := t.find(key)
	t.set(cursor, key, value)
}

func (t table) set(cursor int, key, value int32) {
	t.keys[cursor] = key
	t.values[cursor] = value
	t.used[cursor] = 1
}

func (t *table) close() {
	if t.keys != nil {
		mmap.Free(*(*reflect.SliceHeader)(unsafe.Pointer(&t.keys)), unsafe.Sizeof(int32(0)))
		t.keys = nil
	}
	if t.values != nil {
		mmap.Free(*(*reflect.SliceHeader)(unsafe.Pointer(&t.values)), unsafe.Sizeof(int32(0)))
		t.values = nil
	}
	if t.used != nil {
		mmap.Free(*(*reflect.SliceHeader)(unsafe.Pointer(&t.used)), unsafe.Sizeof(uint8(0)))
		t.used = nil
	}
}

func makeInt32Slice(size int) ([]int32, error) {
	slice, err := mmap.Alloc(unsafe.Sizeof(int32(0)), size)
	if err != nil {
		return nil, errors.Wrapf(err, "allocating %d int32 slots", size)
	}
	slice.Len = size
	return *(*[]int32)(unsafe.Pointer(&slice)), nil
}

func makeUint8Slice(size int) ([]uint8, error) {
	slice, err := mmap.Alloc(unsafe.Sizeof(uint8(0)), size)
	if err != nil {
		return nil, errors.Wrapf(err, "allocating %d occupancy bytes", size)
	}
	slice.Len = size
	return *(*[]uint8)(unsafe.Pointer(&slice)), nil
}

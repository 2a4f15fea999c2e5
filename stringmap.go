package intmap

import (
	"github.com/philpearl/stringbank"
	"github.com/pkg/errors"
)

// StringMap maps int32 keys to strings. The strings are copied into a stringbank, and
// the table only holds offsets into it, so a StringMap with millions of entries
// contains very few pointers for the GC to chase.
//
// Overwriting a key saves the new string but the old one stays in the bank.
type StringMap struct {
	sb    stringbank.Stringbank
	index *IntMap[int]
}

// NewStringMap creates a StringMap. cap is the initial capacity of the table, and has
// the same limits as for NewWithCapacity
func NewStringMap(cap int) (*StringMap, error) {
	index, err := NewWithCapacity[int](cap)
	if err != nil {
		return nil, errors.Wrap(err, "string map")
	}
	return &StringMap{index: index}, nil
}

// Len returns the number of keys stored
func (s *StringMap) Len() int {
	return s.index.Len()
}

// Cap returns the size of the underlying table
func (s *StringMap) Cap() int {
	return s.index.Cap()
}

// SymbolSize contains the approximate size of string storage. This will be an
// over-estimate and includes as yet unused and wasted space
func (s *StringMap) SymbolSize() int {
	return s.sb.Size()
}

// Get returns the string stored for key
func (s *StringMap) Get(key int32) (string, bool) {
	offset, ok := s.index.Get(key)
	if !ok {
		return "", false
	}
	return s.sb.Get(offset), true
}

// Put stores val for key, returning the previous string if there was one.
func (s *StringMap) Put(key int32, val string) (prev string, found bool, err error) {
	if offset, ok := s.index.Get(key); ok {
		prev = s.sb.Get(offset)
		if prev == val {
			// Nothing to do, and no need to waste space in the bank
			return prev, true, nil
		}
		// Overwrites never grow the table
		_, _, _ = s.index.Put(key, s.sb.Save(val))
		return prev, true, nil
	}

	// Make sure the key fits before we copy the string in
	if s.index.needsGrow() {
		if err := s.index.grow(); err != nil {
			return "", false, errors.Wrap(err, "string map")
		}
	}

	if _, _, err := s.index.Put(key, s.sb.Save(val)); err != nil {
		return "", false, errors.Wrap(err, "string map")
	}
	return "", false, nil
}

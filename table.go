package intmap

// table is one generation of the hash table. Keys and values are kept in separate
// slices, and occupancy is a bitset alongside them: every int32 is a valid key, so
// there is no key value we can reserve to mean "empty".
type table[V any] struct {
	keys   []int32
	values []V
	used   []uint64
}

func newTable[V any](capacity int) table[V] {
	return table[V]{
		keys:   make([]int32, capacity),
		values: make([]V, capacity),
		used:   make([]uint64, (capacity+63)/64),
	}
}

func (t table[V]) len() int {
	return len(t.keys)
}

func (t table[V]) occupied(cursor int) bool {
	return t.used[cursor>>6]&(1<<(uint(cursor)&63)) != 0
}

func (t table[V]) set(cursor int, key int32, value V) {
	t.keys[cursor] = key
	t.values[cursor] = value
	t.used[cursor>>6] |= 1 << (uint(cursor) & 63)
}

// find looks for key. If it is present it returns its slot and true. Otherwise it
// returns the empty slot where key would be stored.
func (t table[V]) find(key int32) (cursor int, found bool) {
	mask := t.len() - 1
	cursor = home(key, mask)
	start := cursor
	for t.occupied(cursor) {
		if t.keys[cursor] == key {
			return cursor, true
		}
		cursor = next(cursor, mask)
		if cursor == start {
			panic("out of space!")
		}
	}
	return cursor, false
}

// insertNew stores an entry that is known not to be in the table. It only looks for
// an empty slot, so it's what we use when copying entries into a larger table.
func (t table[V]) insertNew(key int32, value V) {
	mask := t.len() - 1
	cursor := home(key, mask)
	start := cursor
	for t.occupied(cursor) {
		cursor = next(cursor, mask)
		if cursor == start {
			panic("out of space (resize)!")
		}
	}
	t.set(cursor, key, value)
}

// probeLength is the number of slots visited to reach the entry at cursor.
func (t table[V]) probeLength(cursor int) int {
	mask := t.len() - 1
	return (cursor-home(t.keys[cursor], mask))&mask + 1
}

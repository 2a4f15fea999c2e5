package intmap

// Naive implementation of the same function, built on a Go map. Really just intended
// to compare against
type Naive[V any] struct {
	m map[int32]V
}

// NewNaive creates a new, basic implementation of the IntMap functions
func NewNaive[V any](cap int) *Naive[V] {
	return &Naive[V]{
		m: make(map[int32]V, cap),
	}
}

// Put stores value for key and returns any previous value
func (n *Naive[V]) Put(key int32, value V) (prev V, found bool) {
	prev, found = n.m[key]
	n.m[key] = value
	return prev, found
}

// Get retrieves the value stored for key
func (n *Naive[V]) Get(key int32) (V, bool) {
	v, ok := n.m[key]
	return v, ok
}

// Len returns the number of distinct keys stored
func (n *Naive[V]) Len() int {
	return len(n.m)
}

package intmap

// Stats describes the shape of an IntMap's table
type Stats struct {
	Size       int
	Capacity   int
	LoadFactor float32
	// MaxProbe is the most slots any Get for a present key has to look at
	MaxProbe int
	// Grows counts how many times the table has doubled
	Grows int
}

// Stats walks the table to gather statistics. It is O(Cap)
func (m *IntMap[V]) Stats() Stats {
	s := Stats{
		Size:       m.count,
		Capacity:   m.table.len(),
		LoadFactor: float32(m.count) / float32(m.table.len()),
		Grows:      m.grows,
	}
	for cursor := 0; cursor < m.table.len(); cursor++ {
		if !m.table.occupied(cursor) {
			continue
		}
		if l := m.table.probeLength(cursor); l > s.MaxProbe {
			s.MaxProbe = l
		}
	}
	return s
}

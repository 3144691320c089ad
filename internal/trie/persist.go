package trie

// NodeSnapshot is the exported-field mirror of node, the shape gob needs
// to serialize a tree cell (gob cannot encode unexported struct fields).
type NodeSnapshot struct {
	Base, Check, ID int
}

// Snapshot is the exported-field mirror of Tree, suitable for
// gob-encoding by a caller assembling a persisted image.
type Snapshot[E any] struct {
	Tree       []NodeSnapshot
	Storage    [][]E
	Capacities []uint8
	Cache      [rowLen]int
}

// Export converts t to its exported-field snapshot.
func (t *Tree[E]) Export() Snapshot[E] {
	nodes := make([]NodeSnapshot, len(t.tree))
	for i, n := range t.tree {
		nodes[i] = NodeSnapshot{Base: n.base, Check: n.check, ID: n.id}
	}

	storage := make([][]E, len(t.storage))
	copy(storage, t.storage)

	capacities := make([]uint8, len(t.capacities))
	copy(capacities, t.capacities)

	return Snapshot[E]{Tree: nodes, Storage: storage, Capacities: capacities, Cache: t.cache}
}

// Import rebuilds a Tree from a Snapshot produced by Export.
func Import[E any](s Snapshot[E]) *Tree[E] {
	nodes := make([]node, len(s.Tree))
	for i, n := range s.Tree {
		nodes[i] = node{base: n.Base, check: n.Check, id: n.ID}
	}

	storage := make([][]E, len(s.Storage))
	copy(storage, s.Storage)

	capacities := make([]uint8, len(s.Capacities))
	copy(capacities, s.Capacities)

	return &Tree[E]{tree: nodes, storage: storage, capacities: capacities, cache: s.Cache}
}

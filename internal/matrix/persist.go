package matrix

// Snapshot is the exported-field mirror of Matrix, suitable for
// gob-encoding by a caller assembling a persisted image.
type Snapshot struct {
	NLeft, NRight int
	Costs         []int16
}

// Export converts m to its exported-field snapshot.
func (m *Matrix) Export() Snapshot {
	costs := make([]int16, len(m.costs))
	copy(costs, m.costs)
	return Snapshot{NLeft: m.nLeft, NRight: m.nRight, Costs: costs}
}

// Import rebuilds a Matrix from a Snapshot produced by Export.
func Import(s Snapshot) *Matrix {
	costs := make([]int16, len(s.Costs))
	copy(costs, s.Costs)
	return &Matrix{nLeft: s.NLeft, nRight: s.NRight, costs: costs}
}

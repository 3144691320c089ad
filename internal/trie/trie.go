package trie

import (
	"sort"

	"github.com/bits-and-blooms/bitset"
)

const rowLen = 256

// row is one 256-wide slice of the tree, indexed by edge byte.
type row [rowLen]node

// blankRow returns a row with every cell blank.
func blankRow() row {
	var r row
	for i := range r {
		r[i] = blankNode()
	}
	return r
}

// Tree is a double-array trie mapping byte-string keys to buckets of
// values of type E. A bucket holds every value inserted under the same
// key, in insertion order, because two dictionary entries can share a
// surface form.
type Tree[E any] struct {
	tree       []node
	storage    [][]E
	capacities []uint8
	cache      [rowLen]int
}

// New returns an empty trie, ready for incremental Add calls.
func New[E any]() *Tree[E] {
	tree := make([]node, rowLen)
	for i := range tree {
		tree[i] = blankNode()
	}
	tree[0] = rootNode(0)

	return &Tree[E]{
		tree: tree,
		// index 0 is occupied by the root, the rest of the first block
		// is free; the off-by-one against a literal 255 blanks is a
		// deliberate, harmless pessimism carried over from the source
		// reference (capacities is a filtering hint, never load-bearing
		// for correctness — every candidate base is still verified cell
		// by cell in reallocateBase).
		capacities: []uint8{254},
	}
}

// explore walks way from the root and returns the index reached, or the
// number of bytes successfully consumed and the index at which the walk
// stopped.
func (t *Tree[E]) explore(way []byte) (idx int, consumed int, ok bool) {
	here := 0
	for i, b := range way {
		check := here
		if t.tree[here].base == sentinel {
			return check, i, false
		}
		here = t.tree[here].base ^ int(b)
		if here < 0 || here >= len(t.tree) || t.tree[here].check != check {
			return check, i, false
		}
	}
	return here, len(way), true
}

// Find returns the bucket of values stored under key, or ok=false if key
// was never inserted (including when key is a strict prefix of inserted
// keys but was never itself terminal).
func (t *Tree[E]) Find(key []byte) ([]E, bool) {
	idx, _, ok := t.explore(key)
	if !ok {
		return nil, false
	}

	id, hasID := t.tree[idx].storageID()
	if !hasID {
		return nil, false
	}

	return t.storage[id], true
}

// readRow collects every child cell currently attached to parentIdx into a
// 256-wide row indexed by edge byte.
func (t *Tree[E]) readRow(parentIdx int) row {
	r := blankRow()

	base := t.tree[parentIdx].base
	for i := 0; i < rowLen; i++ {
		if t.tree[base^i].check == parentIdx {
			r[i] = t.tree[base^i]
		}
	}

	return r
}

// eraseRow clears every child cell currently attached to parentIdx.
func (t *Tree[E]) eraseRow(parentIdx int) {
	base := t.tree[parentIdx].base
	for i := 0; i < rowLen; i++ {
		if t.tree[base^i].check == parentIdx {
			t.tree[base^i] = blankNode()
		}
	}
}

// countChildren returns the number of cells currently attached to
// parentIdx.
func (t *Tree[E]) countChildren(parentIdx int) int {
	cnt := 0
	base := t.tree[parentIdx].base
	for i := 0; i < rowLen; i++ {
		if t.tree[base^i].check == parentIdx {
			cnt++
		}
	}
	return cnt
}

// growTree doubles tree and capacities, padding both with blank/free
// values, and returns the old length as the new base for the caller's row.
func (t *Tree[E]) growTree() int {
	old := len(t.tree)

	grown := make([]node, old*2)
	copy(grown, t.tree)
	for i := old; i < len(grown); i++ {
		grown[i] = blankNode()
	}
	t.tree = grown

	grownCap := make([]uint8, len(t.capacities)*2)
	copy(grownCap, t.capacities)
	for i := len(t.capacities); i < len(grownCap); i++ {
		grownCap[i] = 255
	}
	t.capacities = grownCap

	return old
}

// reallocateBase finds a base such that tree[base^i] is blank for every i
// with mask bit i set, expanding the tree if no existing block has room.
func (t *Tree[E]) reallocateBase(mask *bitset.BitSet, cnt int) int {
	if cnt < 1 {
		cnt = 1
	}

	for block := t.cache[cnt-1]; block < len(t.capacities); block++ {
		if int(t.capacities[block]) < cnt {
			continue
		}

		for innerOffset := 0; innerOffset < rowLen; innerOffset++ {
			candidate := block<<8 | innerOffset
			safe := true

			for i := uint(0); i < rowLen; i++ {
				if mask.Test(i) && !t.tree[candidate^int(i)].isBlank() {
					safe = false
					break
				}
			}

			if safe {
				for k := cnt - 1; k < rowLen; k++ {
					if t.cache[k] < block {
						t.cache[k] = block
					}
				}
				return candidate
			}
		}
	}

	return t.growTree()
}

// maskOf returns the occupancy bitset (OR of both rows) and the number of
// set bits, for use as reallocateBase's mask/cnt arguments.
func maskOf(r, addition row) (*bitset.BitSet, int) {
	mask := bitset.New(rowLen)
	cnt := 0

	for i := range r {
		if !r[i].isBlank() || !addition[i].isBlank() {
			mask.Set(uint(i))
			cnt++
		}
	}

	return mask, cnt
}

// paste relocates row (the primary occupant row, whose existing children's
// check fields get fixed up to point at the new base) and addition (new
// cells being folded in with no descendants yet, so no fixup is needed) to
// a freshly allocated base. from is the base the primary row was
// previously reached through, needed to recompute each child's old
// absolute index for the fixup scan.
func (t *Tree[E]) paste(r, addition row, from int) int {
	mask, cnt := maskOf(r, addition)
	to := t.reallocateBase(mask, cnt)
	t.capacities[to>>8] -= uint8(cnt)

	for i := 0; i < rowLen; i++ {
		if r[i].isBlank() {
			continue
		}
		t.tree[to^i] = r[i]

		if r[i].base != sentinel {
			for j := 0; j < rowLen; j++ {
				if t.tree[r[i].base^j].check == from^i {
					t.tree[r[i].base^j].check = to ^ i
				}
			}
		}
	}

	for i := 0; i < rowLen; i++ {
		if !addition[i].isBlank() {
			t.tree[to^i] = addition[i]
		}
	}

	return to
}

// insertByPushOut resolves a conflict by relocating the row belonging to
// the stranger (the node currently occupying targetIdx, owned by some
// other parent) elsewhere, freeing targetIdx for the new child.
func (t *Tree[E]) insertByPushOut(targetIdx, parentIdx int) int {
	parent := t.tree[parentIdx]
	target := t.tree[targetIdx]

	if target.isBlank() {
		return targetIdx
	}

	oldBase := sentinel
	if parent.check >= 0 && parent.check < len(t.tree) {
		oldBase = t.tree[parent.check].base
	}

	r := t.readRow(target.check)
	t.eraseRow(target.check)

	parentMoved := t.tree[parentIdx].isBlank()

	// placeholder that keeps targetIdx non-blank, so reallocateBase cannot
	// hand it back to the stranger's relocated row; it is overwritten with
	// the new child below.
	t.tree[targetIdx] = node{base: sentinel, check: 0, id: sentinel}

	newBase := t.paste(r, blankRow(), t.tree[target.check].base)
	t.tree[target.check].base = newBase

	if parentMoved {
		// old_base ^ parent_idx is parent's offset relative to its old
		// base; re-applying that offset to the new base gives parent's
		// new absolute index, since A^B=C implies C^A=B and C^B=A.
		t.tree[targetIdx] = termNode(oldBase^parentIdx^newBase, sentinel)
	} else {
		t.tree[targetIdx] = termNode(parentIdx, sentinel)
	}

	return targetIdx
}

// insertBySlideBrothers resolves a conflict by relocating the row
// belonging to parentIdx's existing children (the "brothers"), together
// with the new child being injected via addition, to a fresh base.
func (t *Tree[E]) insertBySlideBrothers(targetIdx, parentIdx int) int {
	parent := t.tree[parentIdx]
	r := t.readRow(parentIdx)
	t.eraseRow(parentIdx)

	addition := blankRow()
	addition[parent.base^targetIdx] = node{base: sentinel, check: parentIdx, id: sentinel}

	newBase := t.paste(r, addition, parent.base)
	t.tree[parentIdx].base = newBase

	return targetIdx ^ parent.base ^ newBase
}

// Add inserts value under key, appending to the existing bucket if key was
// already present (preserving insertion order) or creating a new
// singleton bucket otherwise.
func (t *Tree[E]) Add(key []byte, value E) {
	parentIdx := 0

	for _, b := range key {
		if t.tree[parentIdx].base == sentinel {
			t.tree[parentIdx].base = 0
		}

		childIdx := t.tree[parentIdx].base ^ int(b)
		child := t.tree[childIdx]

		switch {
		case child.check == sentinel && child.base == sentinel:
			// free cell: attach directly.
			t.tree[childIdx] = node{base: sentinel, check: parentIdx, id: sentinel}
			parentIdx = childIdx

		case child.check == sentinel:
			// root edge case: child.base is meaningful (it's the root
			// itself reached via byte 0 aliasing), treat as a conflict.
			parentIdx = t.insertBySlideBrothers(childIdx, parentIdx)

		case child.check == parentIdx:
			// already our own child: just descend.
			parentIdx = childIdx

		default:
			brothers := t.countChildren(parentIdx)
			strangers := t.countChildren(child.check)
			if brothers > strangers {
				parentIdx = t.insertByPushOut(childIdx, parentIdx)
			} else {
				parentIdx = t.insertBySlideBrothers(childIdx, parentIdx)
			}
		}
	}

	if t.tree[parentIdx].id == sentinel {
		t.storage = append(t.storage, []E{value})
		t.tree[parentIdx].id = len(t.storage) - 1
	} else {
		id := t.tree[parentIdx].id
		t.storage[id] = append(t.storage[id], value)
	}
}

// Pair is one key/value pair for static construction.
type Pair[E any] struct {
	Key   []byte
	Value E
}

// KV returns a key/value pair suitable for BuildStatic.
func KV[E any](key []byte, value E) Pair[E] {
	return Pair[E]{Key: key, Value: value}
}

// BuildStatic bulk-constructs a trie from pairs, sorting them lexically by
// key first. Because the full sibling set at each depth is known up
// front, each row is allocated once with no conflict resolution, which is
// both denser and faster than repeated incremental Add calls.
func BuildStatic[E any](pairs []Pair[E]) *Tree[E] {
	sorted := make([]Pair[E], len(pairs))
	copy(sorted, pairs)
	// stable: pairs sharing a key must keep their relative order, since
	// a single key's storage bucket preserves insertion order.
	sort.SliceStable(sorted, func(i, j int) bool {
		return less(sorted[i].Key, sorted[j].Key)
	})

	tree := make([]node, rowLen)
	for i := range tree {
		tree[i] = blankNode()
	}
	// the root occupies index 0 from the start, so no row built below can
	// be allocated over it.
	tree[0] = rootNode(0)

	t := &Tree[E]{tree: tree, capacities: []uint8{254}}
	if len(sorted) == 0 {
		return t
	}

	base := t.buildRow(sorted, 0, 0)
	t.tree[0] = rootNode(base)

	return t
}

// less is the lexicographic byte-slice comparison used to sort static
// construction input.
func less(a, b []byte) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}

// domain returns the contiguous subrange of src (already sorted) whose
// byte at index selectIdx equals target and which has at least one more
// byte beyond selectIdx — keys that terminate exactly at selectIdx are
// handled as storage in the current row and must not recurse further.
func domain[E any](src []Pair[E], selectIdx int, target byte) []Pair[E] {
	begin, end := -1, -1
	for i, p := range src {
		if len(p.Key) > selectIdx+1 && p.Key[selectIdx] == target {
			if begin == -1 {
				begin = i
			}
		} else if begin != -1 {
			end = i
			break
		}
	}
	if begin == -1 {
		return nil
	}
	if end == -1 {
		end = len(src)
	}
	return src[begin:end]
}

// buildRow recursively constructs the row of children of parentIdx over
// src (sorted, every key sharing the same prefix up to selectIdx), and
// returns the row's base so the caller can install it into the parent
// cell.
func (t *Tree[E]) buildRow(src []Pair[E], selectIdx, parentIdx int) int {
	r := blankRow()

	var mask [rowLen]bool
	var needsSubtree [rowLen]bool
	before := -1
	cnt := 0

	for _, p := range src {
		b := int(p.Key[selectIdx])
		mask[b] = true

		if b > before {
			cnt++
			before = b
			r[b] = termNode(parentIdx, sentinel)
		}

		if len(p.Key) <= selectIdx+1 {
			if id, ok := r[b].storageID(); ok {
				t.storage[id] = append(t.storage[id], p.Value)
			} else {
				t.storage = append(t.storage, []E{p.Value})
				r[b] = termNode(parentIdx, len(t.storage)-1)
			}
		} else {
			needsSubtree[b] = true
		}
	}

	bitmask := bitset.New(rowLen)
	for i := 0; i < rowLen; i++ {
		if mask[i] {
			bitmask.Set(uint(i))
		}
	}
	base := t.reallocateBase(bitmask, cnt)
	t.capacities[base>>8] -= uint8(cnt)

	for i := 0; i < rowLen; i++ {
		if mask[i] {
			t.tree[i^base] = r[i]
		}
	}

	for i := 0; i < rowLen; i++ {
		if needsSubtree[i] {
			idx := i ^ base
			childBase := t.buildRow(domain(src, selectIdx, byte(i)), selectIdx+1, idx)
			t.tree[idx].base = childBase
		}
	}

	return base
}

// Package trie implements a byte-keyed double-array trie with multi-value
// buckets: a single key may map to more than one stored entry, because two
// dictionary entries can share an identical surface form but carry
// different morphological analyses.
//
// The double array itself ("tree") is a flat []node addressed by XOR:
// the child of node p on byte c lives at tree[p].base ^ c, and that
// child's check field must equal p. This makes every lookup step a single
// array dereference with no branching on the trie's shape.
package trie

// sentinel marks an unused base/check/id field. All three sentinels share
// one value; indices are plain ints (never negative otherwise), so -1 is a
// safe, idiomatic choice in place of the source's usize::MAX. A
// zero-valued node is not blank (it decodes as a sec cell), so fresh cells
// are filled with blankNode().
const sentinel = -1

// node is the packed representation of one trie cell. Its meaning depends
// on which fields equal sentinel:
//
//	blank: check == sentinel, base == sentinel, id == sentinel
//	root:  check == sentinel, base == some index, id == 0
//	sec:   check == parent,   base == child base, id == sentinel or a storage index
//	term:  check == parent,   base == sentinel,   id == storage index
type node struct {
	base  int
	check int
	id    int
}

// kind identifies the decoded variant of a node, mirroring the source's
// DecodedNode sum type.
type kind byte

const (
	kindBlank kind = iota
	kindRoot
	kindSec
	kindTerm
)

// decoded is the tagged-variant view of a node, used only by the tests,
// where branching on the kind is clearer than testing sentinels inline.
type decoded struct {
	kind  kind
	base  int // root, sec
	check int // sec, term
	id    int // term, sec-with-id
	hasID bool
}

func blankNode() node {
	return node{base: sentinel, check: sentinel, id: sentinel}
}

func rootNode(base int) node {
	return node{base: base, check: sentinel, id: 0}
}

func termNode(check, id int) node {
	return node{base: sentinel, check: check, id: id}
}

func secNodeNoID(check, base int) node {
	return node{base: base, check: check, id: sentinel}
}

func secNodeWithID(check, base, id int) node {
	return node{base: base, check: check, id: id}
}

// isBlank reports whether n is an unused cell.
func (n node) isBlank() bool {
	return n.check == sentinel && n.base == sentinel
}

// decode turns the packed node into its tagged-variant view.
func (n node) decode() decoded {
	if n.check == sentinel {
		if n.base == sentinel {
			return decoded{kind: kindBlank}
		}
		return decoded{kind: kindRoot, base: n.base}
	}
	if n.base == sentinel {
		return decoded{kind: kindTerm, check: n.check, id: n.id}
	}
	if n.id == sentinel {
		return decoded{kind: kindSec, check: n.check, base: n.base}
	}
	return decoded{kind: kindSec, check: n.check, base: n.base, id: n.id, hasID: true}
}

// encode is the inverse of decode, used by tests to check the round-trip
// property required of the node encoding.
func encode(d decoded) node {
	switch d.kind {
	case kindRoot:
		return rootNode(d.base)
	case kindTerm:
		return termNode(d.check, d.id)
	case kindSec:
		if d.hasID {
			return secNodeWithID(d.check, d.base, d.id)
		}
		return secNodeNoID(d.check, d.base)
	default:
		return blankNode()
	}
}

// storageID returns the storage bucket index for a node that terminates a
// key, and false otherwise. A term-shaped cell can still have id ==
// sentinel transiently — a leaf attachment point reached by some key's
// bytes that is not itself a stored key — so the id itself, not just the
// node's shape, decides presence.
func (n node) storageID() (int, bool) {
	if n.check == sentinel || n.id == sentinel {
		return 0, false
	}
	return n.id, true
}

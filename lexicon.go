package dartlex

import (
	"fmt"
	"io"

	"github.com/dartlex/dartlex/dict"
	"github.com/dartlex/dartlex/internal/matrix"
	"github.com/dartlex/dartlex/internal/trie"
)

// Lexicon is a built, read-only morphological dictionary: a double-array
// trie mapping surface byte strings to buckets of dict.Entry[T], plus the
// connection-cost matrix those entries' lid/rid index into. It is safe
// for concurrent use by multiple goroutines once built — Parse never
// mutates it.
type Lexicon[T any] struct {
	tree *trie.Tree[dict.Entry[T]]
	mat  *matrix.Matrix
}

// BuildText constructs a Lexicon from dictionary and matrix source text,
// using classify to turn each dictionary line into a (key, entry) pair.
// Entries whose lid/rid fall outside the matrix's dimensions are
// rejected with ErrDictParse, per spec.md section 6's requirement that
// the classifier's output ids be in range.
func BuildText[T any](dictSrc, matrixSrc io.Reader, classify dict.Classifier[T]) (*Lexicon[T], error) {
	mat, err := matrix.Parse(matrixSrc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMatrixParse, err)
	}

	keys, entries, err := dict.LoadText(dictSrc, classify)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDictParse, err)
	}

	pairs := make([]trie.Pair[dict.Entry[T]], len(keys))
	for i, k := range keys {
		e := entries[i]
		if int(e.LID) >= mat.NLeft() || int(e.RID) >= mat.NRight() {
			return nil, fmt.Errorf("%w: entry %q has lid=%d rid=%d out of range for %dx%d matrix",
				ErrDictParse, string(k), e.LID, e.RID, mat.NLeft(), mat.NRight())
		}
		pairs[i] = trie.KV(k, e)
	}

	return &Lexicon[T]{tree: trie.BuildStatic(pairs), mat: mat}, nil
}

// Build constructs a Lexicon directly from already-parsed keys and
// entries, bypassing text parsing — for callers that assemble entries
// programmatically rather than from dictionary source text.
func Build[T any](keys [][]byte, entries []dict.Entry[T], mat *matrix.Matrix) (*Lexicon[T], error) {
	if len(keys) != len(entries) {
		return nil, fmt.Errorf("dartlex: %d keys but %d entries", len(keys), len(entries))
	}

	pairs := make([]trie.Pair[dict.Entry[T]], len(keys))
	for i, k := range keys {
		pairs[i] = trie.KV(k, entries[i])
	}

	return &Lexicon[T]{tree: trie.BuildStatic(pairs), mat: mat}, nil
}

// Find returns the bucket of entries stored under key, or ok=false if key
// was never inserted.
func (l *Lexicon[T]) Find(key []byte) ([]dict.Entry[T], bool) {
	return l.tree.Find(key)
}

// Matrix returns the lexicon's connection-cost matrix.
func (l *Lexicon[T]) Matrix() *matrix.Matrix {
	return l.mat
}

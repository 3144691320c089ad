// Package dartlex performs morphological segmentation of byte-encoded
// text into a minimum-cost sequence of dictionary entries, using a
// double-array trie lexicon (internal/trie) and a connection-cost matrix
// (internal/matrix) between left/right context identifiers, solved with
// Viterbi dynamic programming.
//
// A Lexicon[T] is built once, from dictionary and matrix source text or
// from a previously persisted image, and is safe for concurrent read-only
// use thereafter; Parse never mutates it.
package dartlex

// Package dict turns dictionary source lines into trie keys and entries.
// The field layout is not fixed by the core segmenter: callers supply a
// Classifier, and this package's DefaultClassifier covers the common
// 5-field layout used by the reference scenarios.
package dict

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dartlex/dartlex/internal/posclass"
)

// ErrParse reports a malformed dictionary line: wrong field count, or a
// non-numeric lid/rid/cost.
var ErrParse = errors.New("dict: parse error")

// Entry is one dictionary word: its connection context ids, its
// generative cost, and an opaque payload carried through to query
// results.
type Entry[T any] struct {
	LID  uint16
	RID  uint16
	Cost int32
	Info T
}

// Classifier turns one dictionary line's comma-separated fields into a
// trie key and an Entry. It is the sole extension point for a caller's
// field layout; DefaultClassifier is one concrete implementation, not the
// only one.
type Classifier[T any] func(fields []string) ([]byte, Entry[T], error)

// FieldLayout names which comma-separated field of a dictionary line
// holds which value, so a caller whose source uses a different column
// order than the reference scenarios doesn't need to hand-write a whole
// Classifier. The zero value points every field at column 0; the
// reference layout surface,lid,rid,cost,gloss is DefaultLayout.
type FieldLayout struct {
	Surface int
	LID     int
	RID     int
	Cost    int
	Gloss   int
}

// DefaultLayout is the 5-field layout used throughout the reference
// scenarios: surface,lid,rid,cost,gloss.
var DefaultLayout = FieldLayout{Surface: 0, LID: 1, RID: 2, Cost: 3, Gloss: 4}

// Gloss is the payload produced by DefaultClassifier: the surface form
// plus a POS code derived from the gloss field's taxonomy segment, per
// the collapsed part-of-speech table in package posclass.
type Gloss struct {
	Surface string
	Class   posclass.Code
	Text    string
}

// NewClassifier builds a Classifier for layout: it requires the surface,
// lid, rid and cost fields to be present, parses lid/rid/cost, and calls
// build to produce the entry's payload. The Gloss field is not read here;
// only build sees it.
func NewClassifier[T any](layout FieldLayout, build func(fields []string, layout FieldLayout) (T, error)) Classifier[T] {
	return func(fields []string) ([]byte, Entry[T], error) {
		maxField := layout.Surface
		for _, f := range []int{layout.LID, layout.RID, layout.Cost} {
			if f > maxField {
				maxField = f
			}
		}
		if len(fields) <= maxField {
			return nil, Entry[T]{}, fmt.Errorf("%w: need at least %d fields, got %d", ErrParse, maxField+1, len(fields))
		}

		lid, err := strconv.ParseUint(strings.TrimSpace(fields[layout.LID]), 10, 16)
		if err != nil {
			return nil, Entry[T]{}, fmt.Errorf("%w: lid %q: %v", ErrParse, fields[layout.LID], err)
		}
		rid, err := strconv.ParseUint(strings.TrimSpace(fields[layout.RID]), 10, 16)
		if err != nil {
			return nil, Entry[T]{}, fmt.Errorf("%w: rid %q: %v", ErrParse, fields[layout.RID], err)
		}
		cost, err := strconv.ParseInt(strings.TrimSpace(fields[layout.Cost]), 10, 32)
		if err != nil {
			return nil, Entry[T]{}, fmt.Errorf("%w: cost %q: %v", ErrParse, fields[layout.Cost], err)
		}

		info, err := build(fields, layout)
		if err != nil {
			return nil, Entry[T]{}, err
		}

		return []byte(fields[layout.Surface]), Entry[T]{
			LID: uint16(lid), RID: uint16(rid), Cost: int32(cost), Info: info,
		}, nil
	}
}

// DefaultClassifier is the Classifier for DefaultLayout, producing a
// Gloss payload. The gloss field, when present, is split on "・" (the
// separator used by the reference dictionary) and its second segment (the
// word class) is looked up in posclass; a line without a gloss field
// produces an empty Gloss.Text and posclass.Other.
var DefaultClassifier Classifier[Gloss] = NewClassifier(DefaultLayout, func(fields []string, layout FieldLayout) (Gloss, error) {
	g := Gloss{Surface: fields[layout.Surface]}
	if layout.Gloss >= 0 && layout.Gloss < len(fields) {
		g.Text = fields[layout.Gloss]
		parts := strings.Split(g.Text, "・")
		if len(parts) >= 2 {
			g.Class = posclass.Lookup(parts[1])
		}
	}
	return g, nil
})

// LoadText reads one dictionary entry per line, comma-separated, via
// classify, and returns the parsed (key, entry) pairs in file order.
func LoadText[T any](r io.Reader, classify Classifier[T]) ([][]byte, []Entry[T], error) {
	var keys [][]byte
	var entries []Entry[T]

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Split(line, ",")
		key, entry, err := classify(fields)
		if err != nil {
			return nil, nil, fmt.Errorf("dict: line %d: %w", lineNo, err)
		}

		keys = append(keys, key)
		entries = append(entries, entry)
	}
	if err := sc.Err(); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	return keys, entries, nil
}

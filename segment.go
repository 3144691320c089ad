package dartlex

import "github.com/dartlex/dartlex/dict"

// dpRecord is one partial-path record at some end position: its total
// cost, the dictionary entry terminating the path there, and a
// back-pointer to the predecessor record that produced it. Back-pointers
// (rather than full path copies) are the permissible optimization named
// in spec.md section 4.3 — the final output is identical either way.
type dpRecord[T any] struct {
	totalCost int64
	word      *dict.Entry[T]
	prevEnd   int // -1 for a BOS-initialized record
	prevIdx   int
}

// Parse segments s into the minimum-cost sequence of dictionary entries'
// payloads. It returns ErrSegmentEmpty for an empty input and
// ErrSegmentNoPath when no complete segmentation exists (nothing covers
// position 0, or the lattice is disconnected before reaching the end).
func (l *Lexicon[T]) Parse(s []byte) ([]T, error) {
	n := len(s)
	if n == 0 {
		return nil, ErrSegmentEmpty
	}

	dp := make([][]dpRecord[T], n)

	for end := 1; end <= n; end++ {
		entries, ok := l.tree.Find(s[0:end])
		if !ok {
			continue
		}
		for i := range entries {
			w := &entries[i]
			cost := int64(l.mat.At(0, int(w.RID))) + int64(w.Cost)
			dp[end-1] = append(dp[end-1], dpRecord[T]{totalCost: cost, word: w, prevEnd: -1})
		}
	}

	for end := 2; end <= n; end++ {
		for begin := 1; begin < end; begin++ {
			entries, ok := l.tree.Find(s[begin:end])
			if !ok {
				continue
			}
			preds := dp[begin-1]
			if len(preds) == 0 {
				continue
			}

			for i := range entries {
				w := &entries[i]

				bestCost := int64(0)
				bestIdx := -1
				for pi, prev := range preds {
					c := prev.totalCost + int64(l.mat.At(int(prev.word.LID), int(w.RID))) + int64(w.Cost)
					if bestIdx == -1 || c < bestCost {
						bestCost = c
						bestIdx = pi
					}
				}

				dp[end-1] = append(dp[end-1], dpRecord[T]{
					totalCost: bestCost, word: w, prevEnd: begin - 1, prevIdx: bestIdx,
				})
			}
		}
	}

	final := dp[n-1]
	if len(final) == 0 {
		return nil, ErrSegmentNoPath
	}

	bestCost := int64(0)
	bestIdx := -1
	for i, rec := range final {
		c := rec.totalCost + int64(l.mat.At(int(rec.word.LID), 0))
		if bestIdx == -1 || c < bestCost {
			bestCost = c
			bestIdx = i
		}
	}

	return backtrace(dp, n-1, bestIdx), nil
}

// backtrace walks the back-pointer chain starting at dp[end][idx] to the
// BOS-initialized record at its root, collecting payloads in order.
func backtrace[T any](dp [][]dpRecord[T], end, idx int) []T {
	var reversed []T
	for {
		rec := dp[end][idx]
		reversed = append(reversed, rec.word.Info)
		if rec.prevEnd == -1 {
			break
		}
		end, idx = rec.prevEnd, rec.prevIdx
	}

	out := make([]T, len(reversed))
	for i, v := range reversed {
		out[len(reversed)-1-i] = v
	}
	return out
}

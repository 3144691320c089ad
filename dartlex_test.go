package dartlex

import (
	"bytes"
	"errors"
	"os"
	"reflect"
	"testing"

	"github.com/dartlex/dartlex/dict"
	"github.com/dartlex/dartlex/internal/matrix"
)

func openTestdata(t *testing.T, name string) *os.File {
	t.Helper()
	f, err := os.Open("testdata/" + name)
	if err != nil {
		t.Fatalf("open %s: %v", name, err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

func buildScenario3(t *testing.T) *Lexicon[dict.Gloss] {
	t.Helper()
	dictSrc := openTestdata(t, "dict.txt")
	matSrc := openTestdata(t, "matrix.txt")

	lex, err := BuildText(dictSrc, matSrc, dict.DefaultClassifier)
	if err != nil {
		t.Fatalf("BuildText: %v", err)
	}
	return lex
}

func TestParseScenario3(t *testing.T) {
	lex := buildScenario3(t)

	got, err := lex.Parse([]byte("東京都に住む"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	want := []string{
		"東京・名詞・トウキョウ",
		"都・接尾辞・ト",
		"に・助詞・ニ",
		"住む・動詞・スム",
	}

	gotText := make([]string, len(got))
	for i, g := range got {
		gotText[i] = g.Text
	}

	if !reflect.DeepEqual(gotText, want) {
		t.Fatalf("Parse = %v, want %v", gotText, want)
	}
}

func TestParseEmptyInput(t *testing.T) {
	lex := buildScenario3(t)

	_, err := lex.Parse(nil)
	if !errors.Is(err, ErrSegmentEmpty) {
		t.Fatalf("Parse(nil) error = %v, want ErrSegmentEmpty", err)
	}
}

func TestParseUnresolvable(t *testing.T) {
	lex := buildScenario3(t)

	_, err := lex.Parse([]byte("z"))
	if !errors.Is(err, ErrSegmentNoPath) {
		t.Fatalf("Parse(unresolvable) error = %v, want ErrSegmentNoPath", err)
	}
}

func TestPersistenceRoundTrip(t *testing.T) {
	lex := buildScenario3(t)

	var buf bytes.Buffer
	if err := Save(&buf, lex); err != nil {
		t.Fatalf("Save: %v", err)
	}

	restored, err := Load[dict.Gloss](&buf)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	keys := [][]byte{
		[]byte("東"), []byte("京"), []byte("京都"), []byte("東京"),
		[]byte("都"), []byte("に"), []byte("住む"),
	}
	for _, k := range keys {
		want, wantOK := lex.Find(k)
		got, gotOK := restored.Find(k)
		if wantOK != gotOK || !reflect.DeepEqual(want, got) {
			t.Fatalf("Find(%q): original=%v,%v restored=%v,%v", k, want, wantOK, got, gotOK)
		}
	}

	for l := 0; l < lex.Matrix().NLeft(); l++ {
		for r := 0; r < lex.Matrix().NRight(); r++ {
			if lex.Matrix().At(l, r) != restored.Matrix().At(l, r) {
				t.Fatalf("matrix.At(%d,%d) differs after round-trip", l, r)
			}
		}
	}

	got, err := restored.Parse([]byte("東京都に住む"))
	if err != nil {
		t.Fatalf("restored Parse: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("restored Parse len = %d, want 4", len(got))
	}
}

func TestCachingLexiconMatchesUnderlying(t *testing.T) {
	lex := buildScenario3(t)
	cached := NewCachingLexicon(lex, 16)

	input := []byte("東京都に住む")

	want, wantErr := lex.Parse(input)
	for i := 0; i < 3; i++ {
		got, err := cached.Parse(input)
		if err != wantErr {
			t.Fatalf("iteration %d: err = %v, want %v", i, err, wantErr)
		}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("iteration %d: got %v, want %v", i, got, want)
		}
	}
}

// TestSegmentationOptimality builds a dictionary where a greedy
// left-to-right match ("a"+"b") costs more than the less obvious whole
// match ("ab"), and checks the DP finds the globally cheaper path rather
// than the locally greedy one.
func TestSegmentationOptimality(t *testing.T) {
	// every word uses lid=rid=1 except a cheaper two-char word using
	// context 2, so the optimal split depends on the connection costs.
	matSrc := "3 3\n0 1 0\n1 1 5\n1 0 0\n0 2 -100\n2 1 -100\n2 0 0\n"
	mat, err := matrix.Parse(bytes.NewReader([]byte(matSrc)))
	if err != nil {
		t.Fatalf("matrix.Parse: %v", err)
	}

	type entry = dict.Entry[string]
	keys := [][]byte{[]byte("a"), []byte("b"), []byte("ab")}
	entries := []entry{
		{LID: 1, RID: 1, Cost: 10, Info: "a"},
		{LID: 1, RID: 1, Cost: 10, Info: "b"},
		{LID: 2, RID: 2, Cost: 1, Info: "ab"},
	}

	lex, err := Build(keys, entries, mat)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	got, err := lex.Parse([]byte("ab"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	// split "a"+"b": cost = at(0,1)+10 + at(1,1)+10 + at(1,0) = 0+10+5+10+0 = 25
	// whole "ab":    cost = at(0,2)+1 + at(2,0)              = -100+1+0 = -99
	if !reflect.DeepEqual(got, []string{"ab"}) {
		t.Fatalf("Parse(ab) = %v, want the cheaper single-word split [ab]", got)
	}
}

package trie

import "testing"

func TestNodeEncodeDecodeRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		d    decoded
	}{
		{"blank", decoded{kind: kindBlank}},
		{"root", decoded{kind: kindRoot, base: 129}},
		{"term", decoded{kind: kindTerm, check: 2158, id: 87}},
		{"sec-no-id", decoded{kind: kindSec, check: 52128, base: 59182}},
		{"sec-with-id", decoded{kind: kindSec, check: 711475, base: 365123, id: 214, hasID: true}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := encode(tc.d).decode()
			if got != tc.d {
				t.Fatalf("decode(encode(%+v)) = %+v, want %+v", tc.d, got, tc.d)
			}
		})
	}
}

func TestNodeConstructors(t *testing.T) {
	if got := rootNode(129).decode(); got != (decoded{kind: kindRoot, base: 129}) {
		t.Fatalf("rootNode: got %+v", got)
	}
	if got := termNode(2158, 87).decode(); got != (decoded{kind: kindTerm, check: 2158, id: 87}) {
		t.Fatalf("termNode: got %+v", got)
	}
	if got := secNodeNoID(1, 2).decode(); got != (decoded{kind: kindSec, check: 1, base: 2}) {
		t.Fatalf("secNodeNoID: got %+v", got)
	}
	if got := secNodeWithID(1, 2, 3).decode(); got != (decoded{kind: kindSec, check: 1, base: 2, id: 3, hasID: true}) {
		t.Fatalf("secNodeWithID: got %+v", got)
	}
	if !blankNode().isBlank() {
		t.Fatal("blankNode should be blank")
	}
	if rootNode(0).isBlank() {
		t.Fatal("rootNode should not be blank")
	}
}

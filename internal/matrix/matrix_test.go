package matrix

import (
	"errors"
	"strings"
	"testing"
)

func TestParseAccess(t *testing.T) {
	src := "9 8\n" +
		"0 7 -283\n0 1 -310\n8 1 -368\n1 2 -9617\n1 3 -1303\n" +
		"2 4 1220\n2 5 -3838\n3 4 1387\n3 5 -3573\n" +
		"4 4 -811\n4 5 -4811\n5 6 -12165\n6 6 -3547\n7 0 -409\n"

	m, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if m.NLeft() != 9 || m.NRight() != 8 {
		t.Fatalf("dims = %d x %d, want 9 x 8", m.NLeft(), m.NRight())
	}

	want := map[[2]int]int16{
		{0, 7}: -283, {0, 1}: -310, {8, 1}: -368, {1, 2}: -9617, {1, 3}: -1303,
		{2, 4}: 1220, {2, 5}: -3838, {3, 4}: 1387, {3, 5}: -3573,
		{4, 4}: -811, {4, 5}: -4811, {5, 6}: -12165, {6, 6}: -3547, {7, 0}: -409,
	}
	for lr, c := range want {
		if got := m.At(lr[0], lr[1]); got != c {
			t.Errorf("At(%d,%d) = %d, want %d", lr[0], lr[1], got, c)
		}
	}
	if got := m.At(0, 0); got != 0 {
		t.Errorf("At(0,0) = %d, want 0 (unset cell)", got)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []string{
		"",
		"3",
		"3 x\n",
		"2 2\n0 0 99999\n",
		"2 2\n5 0 1\n",
		"2 2\n0 5 1\n",
	}
	for _, src := range cases {
		if _, err := Parse(strings.NewReader(src)); !errors.Is(err, ErrParse) {
			t.Errorf("Parse(%q) error = %v, want ErrParse", src, err)
		}
	}
}

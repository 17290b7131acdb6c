package keyspace

import (
	"slices"
	"testing"
)

func TestStringsLengthTwo(t *testing.T) {
	got := slices.Collect(Strings(2))
	if len(got) != 676 {
		t.Fatalf("expected 676 strings, got %d", len(got))
	}
	if got[0] != "aa" || got[1] != "ab" || got[26] != "ba" || got[675] != "zz" {
		t.Fatalf("unexpected ordering: %v ... %v", got[:3], got[len(got)-1])
	}
	if !slices.IsSorted(got) {
		t.Fatalf("expected lexicographic order")
	}
}

func TestStringsRestartable(t *testing.T) {
	seq := Strings(3)
	first := slices.Collect(Take(seq, 3))
	second := slices.Collect(Take(seq, 3))
	if !slices.Equal(first, []string{"aaa", "aab", "aac"}) {
		t.Fatalf("unexpected first pass: %v", first)
	}
	if !slices.Equal(first, second) {
		t.Fatalf("expected restart, got %v then %v", first, second)
	}
}

func TestStringsEdgeLengths(t *testing.T) {
	if got := slices.Collect(Strings(0)); !slices.Equal(got, []string{""}) {
		t.Fatalf("expected single empty string, got %q", got)
	}
	if got := slices.Collect(Strings(-1)); len(got) != 0 {
		t.Fatalf("expected nothing for negative length, got %q", got)
	}
}

func TestTakeStopsEarly(t *testing.T) {
	// 26^12 values would never finish if Take did not stop the generator.
	got := slices.Collect(Take(Strings(12), 2))
	if !slices.Equal(got, []string{"aaaaaaaaaaaa", "aaaaaaaaaaab"}) {
		t.Fatalf("unexpected values: %v", got)
	}
}

func TestCount(t *testing.T) {
	n, err := Count(3)
	if err != nil || n != 17576 {
		t.Fatalf("expected 17576, got %d (%v)", n, err)
	}
	if _, err := Count(14); err == nil {
		t.Fatalf("expected overflow for length 14")
	}
	if _, err := Count(-1); err == nil {
		t.Fatalf("expected error for negative length")
	}
}

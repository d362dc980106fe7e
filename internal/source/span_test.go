package source

import "testing"

func TestSpanBasics(t *testing.T) {
	sp := Span{File: 1, Start: 3, End: 7}
	if sp.Empty() {
		t.Error("non-empty span reported Empty")
	}
	if sp.Len() != 4 {
		t.Errorf("Len = %d, want 4", sp.Len())
	}
	if got := sp.String(); got != "1:3-7" {
		t.Errorf("String = %q, want %q", got, "1:3-7")
	}

	empty := Span{File: 1, Start: 5, End: 5}
	if !empty.Empty() {
		t.Error("empty span not reported Empty")
	}
}

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Start: 4, End: 8}
	b := Span{File: 1, Start: 2, End: 6}
	got := a.Cover(b)
	if got.Start != 2 || got.End != 8 {
		t.Errorf("Cover = %v, want 1:2-8", got)
	}

	other := Span{File: 2, Start: 0, End: 100}
	if got := a.Cover(other); got != a {
		t.Errorf("Cover across files = %v, want %v", got, a)
	}
}

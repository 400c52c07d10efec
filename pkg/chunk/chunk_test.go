package chunk

import (
	"errors"
	"testing"
)

func TestKindRoundTrip(t *testing.T) {
	for _, k := range Kinds() {
		got, err := ParseKind(k.String())
		if err != nil {
			t.Errorf("ParseKind(%q): %v", k.String(), err)
		}
		if got != k {
			t.Errorf("ParseKind(%q) = %v, want %v", k.String(), got, k)
		}
	}
}

func TestParseKindUnknown(t *testing.T) {
	_, err := ParseKind("nonsense")
	if !errors.Is(err, ErrUnknownKind) {
		t.Errorf("err = %v, want ErrUnknownKind", err)
	}
}

func TestKindsExcludesNone(t *testing.T) {
	for _, k := range Kinds() {
		if k == KindNone {
			t.Fatal("Kinds() must not include KindNone")
		}
	}
}

func TestAddKeepsColumnOrder(t *testing.T) {
	d := NewDocument()
	d.Add(&Token{OrigLine: 1, Column: 9, Len: 1, Text: "c"})
	d.Add(&Token{OrigLine: 1, Column: 1, Len: 1, Text: "a"})
	d.Add(&Token{OrigLine: 1, Column: 5, Len: 1, Text: "b"})

	var got string
	for _, tok := range d.Line(1) {
		got += tok.Text
	}
	if got != "abc" {
		t.Errorf("line order = %q, want abc", got)
	}
}

func TestLineNumbersSorted(t *testing.T) {
	d := NewDocument()
	for _, n := range []int{7, 2, 9, 2, 1} {
		d.Add(&Token{OrigLine: n, Column: 1, Len: 1, Text: "x"})
	}
	want := []int{1, 2, 7, 9}
	got := d.LineNumbers()
	if len(got) != len(want) {
		t.Fatalf("lines = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("lines = %v, want %v", got, want)
		}
	}
	if d.Len() != 5 {
		t.Errorf("Len = %d, want 5", d.Len())
	}
}

func TestIndentToColumnRipplesRight(t *testing.T) {
	d := NewDocument()
	a := &Token{OrigLine: 1, Column: 1, Len: 3, Text: "foo"}
	b := &Token{OrigLine: 1, Column: 5, Len: 1, Text: "="}
	c := &Token{OrigLine: 1, Column: 7, Len: 1, Text: "1"}
	d.Add(a)
	d.Add(b)
	d.Add(c)

	d.IndentToColumn(b, 12)

	if b.Column != 12 {
		t.Errorf("b.Column = %d, want 12", b.Column)
	}
	// c keeps its original gap: 7 + (12-5) = 14.
	if c.Column != 14 {
		t.Errorf("c.Column = %d, want 14", c.Column)
	}
	if a.Column != 1 {
		t.Errorf("a.Column = %d, earlier tokens must not move", a.Column)
	}
}

func TestIndentToColumnClampsToPreviousEdge(t *testing.T) {
	d := NewDocument()
	a := &Token{OrigLine: 1, Column: 1, Len: 6, Text: "worddd"}
	b := &Token{OrigLine: 1, Column: 12, Len: 1, Text: "="}
	d.Add(a)
	d.Add(b)

	// Target 3 overlaps a (edge at 7); clamp to 8.
	d.IndentToColumn(b, 3)
	if b.Column != 8 {
		t.Errorf("b.Column = %d, want 8", b.Column)
	}
}

func TestIndentToColumnLeftClosesGap(t *testing.T) {
	d := NewDocument()
	a := &Token{OrigLine: 1, Column: 10, Len: 1, Text: "="}
	b := &Token{OrigLine: 1, Column: 20, Len: 1, Text: "1"}
	d.Add(a)
	d.Add(b)

	d.IndentToColumn(a, 4)
	if a.Column != 4 {
		t.Errorf("a.Column = %d, want 4", a.Column)
	}
	// b wants 14 but never below a's edge; 14 > 6 so it lands at 14.
	if b.Column != 14 {
		t.Errorf("b.Column = %d, want 14", b.Column)
	}
}

func TestIndentToColumnMinimumOne(t *testing.T) {
	d := NewDocument()
	a := &Token{OrigLine: 1, Column: 5, Len: 1, Text: "x"}
	d.Add(a)

	d.IndentToColumn(a, -3)
	if a.Column != 1 {
		t.Errorf("a.Column = %d, want 1", a.Column)
	}
}

func TestIndentToColumnForeignToken(t *testing.T) {
	d := NewDocument()
	d.Add(&Token{OrigLine: 1, Column: 1, Len: 1, Text: "x"})

	stray := &Token{OrigLine: 1, Column: 4, Len: 1, Text: "y"}
	d.IndentToColumn(stray, 9)
	if stray.Column != 4 {
		t.Errorf("foreign token moved to %d", stray.Column)
	}
}

func TestRender(t *testing.T) {
	d := NewDocument()
	d.Add(&Token{OrigLine: 1, Column: 1, Len: 1, Text: "x"})
	d.Add(&Token{OrigLine: 1, Column: 5, Len: 1, Text: "="})
	d.Add(&Token{OrigLine: 3, Column: 1, Len: 3, Text: "end"})

	want := "x   =\n\nend\n"
	if got := d.Render(); got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestRenderEmpty(t *testing.T) {
	if got := NewDocument().Render(); got != "" {
		t.Errorf("Render() = %q, want empty", got)
	}
}

func TestRecorderSkipsNoopMoves(t *testing.T) {
	rec := &Recorder{}
	tok := &Token{OrigLine: 2, Column: 5, Len: 1, Text: "=", Kind: KindAssign}

	rec.Apply(tok, 5)
	if rec.Pending() {
		t.Fatal("no-op move recorded")
	}

	rec.Apply(tok, 9)
	if len(rec.Shifts) != 1 {
		t.Fatalf("shifts = %d, want 1", len(rec.Shifts))
	}
	s := rec.Shifts[0]
	if s.Line != 2 || s.From != 5 || s.To != 9 || s.Kind != "assign" {
		t.Errorf("shift = %+v", s)
	}
	if tok.Column != 5 {
		t.Error("Recorder must not mutate the token")
	}
}

package chunk

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownKind is returned by [ParseKind] for unrecognized category names.
var ErrUnknownKind = errors.New("unknown alignment category")

// Kind identifies the alignment category a token belongs to. Categories
// are aligned independently: each enabled category gets its own engine
// session over the document.
type Kind int

const (
	// KindNone marks tokens that never participate in alignment.
	KindNone Kind = iota
	// KindAssign marks assignment operators ('=').
	KindAssign
	// KindEnumEqu marks '=' inside enum bodies.
	KindEnumEqu
	// KindVarDef marks variable names in declarations.
	KindVarDef
	// KindStructInit marks values in struct initializers.
	KindStructInit
	// KindBitColon marks the ':' in struct bit fields.
	KindBitColon
	// KindTypedef marks type names in single-line typedefs.
	KindTypedef
	// KindDefine marks the value part of preprocessor defines.
	KindDefine
	// KindRightComment marks trailing comments at end of line.
	KindRightComment
)

// kindNames maps kinds to their canonical names used in option files,
// JSON documents, and reports.
var kindNames = map[Kind]string{
	KindNone:         "none",
	KindAssign:       "assign",
	KindEnumEqu:      "enum_equ",
	KindVarDef:       "var_def",
	KindStructInit:   "struct_init",
	KindBitColon:     "bit_colon",
	KindTypedef:      "typedef",
	KindDefine:       "define",
	KindRightComment: "right_comment",
}

// String returns the canonical category name.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind resolves a canonical category name to its [Kind].
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return KindNone, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Kinds returns all alignable categories in their fixed pass order.
// The order is part of the engine contract: category passes mutate
// columns in this order so results are deterministic.
func Kinds() []Kind {
	return []Kind{
		KindAssign,
		KindEnumEqu,
		KindVarDef,
		KindStructInit,
		KindBitColon,
		KindTypedef,
		KindDefine,
		KindRightComment,
	}
}

// Token is the smallest formatting-relevant unit of source text.
//
// Column is 1-based and mutable: it is the only field the alignment
// engine ever writes, and only through an applier. Len is the width of
// the token in columns. OrigLine records where the token came from and is
// used for diagnostics only.
type Token struct {
	Column   int
	Len      int
	OrigLine int
	Text     string
	Kind     Kind
}

// End returns the column just past the token's trailing edge.
func (t *Token) End() int { return t.Column + t.Len }

// Document is an ordered token arena grouped by line. Tokens on a line
// are kept in column order. The document outlives any alignment session
// run against it.
type Document struct {
	lines map[int][]*Token
	order []int // sorted line numbers, rebuilt lazily
	dirty bool
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{lines: make(map[int][]*Token)}
}

// Add inserts a token into the document, keeping its line sorted by
// column. The document takes ownership of the token.
func (d *Document) Add(t *Token) {
	line := d.lines[t.OrigLine]
	i := sort.Search(len(line), func(i int) bool { return line[i].Column > t.Column })
	line = append(line, nil)
	copy(line[i+1:], line[i:])
	line[i] = t
	if _, seen := d.lines[t.OrigLine]; !seen {
		d.dirty = true
	}
	d.lines[t.OrigLine] = line
}

// LineNumbers returns the populated line numbers in ascending order.
func (d *Document) LineNumbers() []int {
	if d.dirty || d.order == nil {
		d.order = d.order[:0]
		for n := range d.lines {
			d.order = append(d.order, n)
		}
		sort.Ints(d.order)
		d.dirty = false
	}
	return d.order
}

// Line returns the tokens on the given line in column order.
func (d *Document) Line(n int) []*Token { return d.lines[n] }

// Tokens returns every token in (line, column) order.
func (d *Document) Tokens() []*Token {
	var out []*Token
	for _, n := range d.LineNumbers() {
		out = append(out, d.lines[n]...)
	}
	return out
}

// Len returns the number of tokens in the document.
func (d *Document) Len() int {
	total := 0
	for _, line := range d.lines {
		total += len(line)
	}
	return total
}

// IndentToColumn moves t to the target column and ripples the shift to
// later tokens on the same line. Tokens are never pushed left of the
// previous token's trailing edge plus one space, so relative order and a
// minimum gap survive any shift.
func (d *Document) IndentToColumn(t *Token, col int) {
	line, i := d.locate(t)
	if i < 0 {
		return
	}
	if col < 1 {
		col = 1
	}
	if i > 0 {
		if min := line[i-1].End() + 1; col < min {
			col = min
		}
	}
	delta := col - t.Column
	if delta == 0 {
		return
	}
	t.Column = col
	// Ripple right: preserve the original gap for a positive shift, and
	// close up to the minimum gap when moving left.
	prev := t
	for _, next := range line[i+1:] {
		want := next.Column + delta
		if min := prev.End() + 1; want < min {
			want = min
		}
		if want == next.Column {
			break
		}
		next.Column = want
		prev = next
	}
}

// Applier commits a column decision for a single token. The alignment
// engine invokes it once per committed token at flush time.
type Applier func(t *Token, col int)

// Render reconstructs the document as text, placing each token at its
// column. Lines with no tokens are rendered empty. Intended for CLI
// output and tests, not for byte-faithful round-trips of raw source.
func (d *Document) Render() string {
	nums := d.LineNumbers()
	if len(nums) == 0 {
		return ""
	}
	var b strings.Builder
	last := nums[len(nums)-1]
	for n := 1; n <= last; n++ {
		col := 1
		for _, t := range d.lines[n] {
			if t.Column > col {
				b.WriteString(strings.Repeat(" ", t.Column-col))
				col = t.Column
			}
			b.WriteString(t.Text)
			col += t.Len
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// locate finds t's line slice and index, or (nil, -1).
func (d *Document) locate(t *Token) ([]*Token, int) {
	line := d.lines[t.OrigLine]
	for i, cand := range line {
		if cand == t {
			return line, i
		}
	}
	return nil, -1
}

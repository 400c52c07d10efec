package align_test

import (
	"fmt"

	"github.com/matzehuels/colign/pkg/align"
	"github.com/matzehuels/colign/pkg/chunk"
)

func ExampleStack() {
	// Three assignment operators on consecutive lines. The engine
	// right-aligns all of them at the widest trailing edge.
	tokens := []*chunk.Token{
		{OrigLine: 1, Column: 5, Len: 1, Text: "="},
		{OrigLine: 2, Column: 9, Len: 1, Text: "="},
		{OrigLine: 3, Column: 7, Len: 1, Text: "="},
	}

	st := align.New(func(t *chunk.Token, col int) {
		fmt.Printf("line %d: %d -> %d\n", t.OrigLine, t.Column, col)
	}, nil)

	st.Start(2, 4)
	for _, tok := range tokens {
		st.AddNow(tok)
		st.NewLines(1)
	}
	st.End()
	// Output:
	// line 1: 5 -> 9
	// line 2: 9 -> 9
	// line 3: 7 -> 9
}

func ExampleStack_threshold() {
	// A column far outside the threshold window is deferred, not
	// dropped: it stays skipped and is discarded unaligned at End.
	near := &chunk.Token{OrigLine: 1, Column: 10, Len: 1, Text: "="}
	far := &chunk.Token{OrigLine: 2, Column: 40, Len: 1, Text: "="}

	st := align.New(func(t *chunk.Token, col int) {
		fmt.Printf("aligned line %d at %d\n", t.OrigLine, col)
	}, nil)

	st.Start(3, 2)
	st.Add(near, 1)
	st.Add(far, 2)
	st.End()
	// Output:
	// aligned line 1 at 10
}

// Package align implements the alignment stack, the streaming engine
// that decides which tokens across nearby lines should share a column.
//
// # Overview
//
// The engine consumes alignment candidates in source order, at most one
// per line, and groups them around a growing target column. Decisions are
// irrevocable once committed: the engine only ever sees a forward-moving
// window of the document, bounded by two knobs.
//
//   - span: the maximum gap, counted in newlines, between the last
//     accepted candidate and the current position before the pending
//     group is forced to commit.
//   - threshold: the maximum column deviation from the current target a
//     candidate may have and still be accepted directly. A threshold of
//     zero disables the check entirely.
//
// Candidates outside the threshold window are not dropped. They are held
// on a skipped stack and re-evaluated whenever the target column grows,
// because growth widens the window and may retroactively qualify them.
//
// # Sessions
//
// A [Stack] serves one session per alignment category over a contiguous
// region of a document:
//
//	st := align.New(doc.IndentToColumn, logger)
//	st.Start(3, 2)
//	for each eligible line {
//	    st.AddNow(tok)
//	    st.NewLines(1)
//	}
//	st.End()
//
// Committing a group right-aligns every member's trailing edge at the
// target column and invokes the applier once per token, in insertion
// order. Skipped entries that never reconciled into a committed group are
// discarded at [Stack.End]; that is intended behavior, not an error.
//
// The engine is single-threaded with no suspension points. Independent
// instances may run concurrently for distinct categories as long as their
// column mutations are serialized in source order.
package align

package align

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/colign/pkg/chunk"
)

// entry pairs a token reference with the sequence number of the line it
// was observed on. Entries live from Add until Flush, replay, or End.
type entry struct {
	tok    *chunk.Token
	seqnum int
}

// Stack is the alignment stack engine. The zero value is not usable;
// create one with [New] and open a session with [Stack.Start].
//
// A Stack is self-contained and has no concurrent callers: one instance
// serves one alignment category at a time, consuming candidates strictly
// in source order.
type Stack struct {
	aligned []entry // current group, insertion-ordered
	skipped []entry // threshold-rejected candidates, arrival-ordered

	span     int // max seqnum gap before a forced flush
	thresh   int // max column deviation for direct acceptance, 0 = disabled
	maxCol   int // current alignment target; 0 iff aligned is empty
	nlSeqnum int // seqnum of the most recently accepted entry
	seqnum   int // running newline counter

	apply  chunk.Applier
	logger *log.Logger
}

// New creates a stack that commits columns through apply. A nil apply
// discards decisions, which is only useful in tests. The logger is
// optional; nil disables tracing.
func New(apply chunk.Applier, logger *log.Logger) *Stack {
	if apply == nil {
		apply = func(*chunk.Token, int) {}
	}
	return &Stack{apply: apply, logger: logger}
}

// Start opens a session: both stacks are emptied and all counters reset.
// span bounds how many newlines a pending group may wait for the next
// qualifying candidate; thresh bounds column deviation (0 disables).
func (s *Stack) Start(span, thresh int) {
	s.trace("start", "span", span, "thresh", thresh)

	s.aligned = s.aligned[:0]
	s.skipped = s.skipped[:0]
	s.span = span
	s.thresh = thresh
	s.maxCol = 0
	s.nlSeqnum = 0
	s.seqnum = 0
}

// AddNow submits a candidate stamped with the current sequence number.
func (s *Stack) AddNow(tok *chunk.Token) {
	s.Add(tok, s.seqnum)
}

// Add submits an alignment candidate. A non-positive seqnum means
// "happening now" and is replaced with the running counter. Callers must
// submit at most one candidate per source line, with non-decreasing
// sequence numbers; violating that is a programming error in the caller,
// not a detectable fault here.
//
// An accepted candidate joins the current group and may grow the target
// column, which immediately re-evaluates every skipped candidate. A
// rejected candidate lands on the skipped stack; nothing is ever silently
// dropped by Add.
func (s *Stack) Add(tok *chunk.Token, seqnum int) {
	if seqnum <= 0 {
		seqnum = s.seqnum
	}

	// First candidate in a group and disabled tolerance both bypass the
	// window check. The conditions are distinct: keep them explicit.
	if s.maxCol == 0 || s.thresh == 0 ||
		(tok.Column <= s.maxCol+s.thresh && tok.Column >= s.maxCol-s.thresh) {
		if seqnum > s.nlSeqnum {
			s.nlSeqnum = seqnum
		}
		s.aligned = append(s.aligned, entry{tok, seqnum})

		if end := tok.End(); end > s.maxCol {
			s.trace("add aligned, target grows",
				"seqnum", seqnum, "nl_seqnum", s.nlSeqnum, "now", s.seqnum,
				"line", tok.OrigLine, "col", tok.Column, "max_col", end)
			s.maxCol = end

			// Growth widens the window: previously skipped entries may
			// now qualify.
			if len(s.skipped) > 0 {
				s.reAddSkipped()
			}
		} else {
			s.trace("add aligned",
				"seqnum", seqnum, "nl_seqnum", s.nlSeqnum, "now", s.seqnum,
				"line", tok.OrigLine, "col", tok.Column, "max_col", s.maxCol)
		}
	} else {
		s.skipped = append(s.skipped, entry{tok, seqnum})
		s.trace("add skipped",
			"seqnum", seqnum, "nl_seqnum", s.nlSeqnum, "now", s.seqnum,
			"line", tok.OrigLine, "col", tok.Column,
			"max_col", s.maxCol, "thresh", s.thresh)
	}
}

// NewLines advances the sequence counter by count. If the pending group
// has now waited longer than span since its last accepted entry, it is
// flushed. With nothing pending the counter is left untouched; an empty
// group cannot expire.
func (s *Stack) NewLines(count int) {
	if len(s.aligned) == 0 {
		return
	}
	s.seqnum += count
	if s.seqnum > s.nlSeqnum+s.span {
		s.trace("newlines force flush", "count", count, "seqnum", s.seqnum)
		s.Flush()
	}
}

// Flush commits the current group: every aligned token is right-aligned
// so its trailing edge sits at the target column, applied in insertion
// order. Skipped entries older than the committed group are discarded;
// the survivors immediately seed a new group.
func (s *Stack) Flush() {
	s.trace("flush", "aligned", len(s.aligned), "skipped", len(s.skipped), "max_col", s.maxCol)

	lastSeqnum := 0
	for _, e := range s.aligned {
		s.apply(e.tok, s.maxCol-e.tok.Len)
	}
	if n := len(s.aligned); n > 0 {
		lastSeqnum = s.aligned[n-1].seqnum
		s.aligned = s.aligned[:0]
	}
	s.maxCol = 0

	if len(s.skipped) == 0 {
		// Nothing pending: sync the counters so the next group starts
		// with a full span.
		s.nlSeqnum = s.seqnum
		return
	}

	// Entries older than the group we just committed will never qualify
	// again; drop them and replay the rest.
	kept := s.skipped[:0]
	for _, e := range s.skipped {
		if e.seqnum >= lastSeqnum {
			kept = append(kept, e)
		}
	}
	s.skipped = kept
	s.reAddSkipped()
}

// End closes the session, flushing any pending group. Skipped entries
// that never reconciled are permanently discarded unaligned.
func (s *Stack) End() {
	if len(s.aligned) > 0 {
		s.trace("end")
		s.Flush()
	}
	s.aligned = s.aligned[:0]
	s.skipped = s.skipped[:0]
}

// reAddSkipped replays the skipped stack through Add. Replay must run in
// ascending seqnum order so the nlSeqnum and target bookkeeping rebuild
// history forward; arrival order satisfies that given the caller's
// monotonic seqnum contract.
func (s *Stack) reAddSkipped() {
	if len(s.skipped) == 0 {
		return
	}
	scratch := make([]entry, len(s.skipped))
	copy(scratch, s.skipped)
	s.skipped = s.skipped[:0]

	for _, e := range scratch {
		s.trace("re-add skipped", "seqnum", e.seqnum, "line", e.tok.OrigLine)
		s.Add(e.tok, e.seqnum)
	}

	// The replayed group may already exceed the span.
	s.NewLines(0)
}

func (s *Stack) trace(msg string, kv ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, kv...)
	}
}

package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/colign/pkg/align"
	"github.com/matzehuels/colign/pkg/cache"
	"github.com/matzehuels/colign/pkg/chunk"
	"github.com/matzehuels/colign/pkg/errors"
	"github.com/matzehuels/colign/pkg/observability"
	"github.com/matzehuels/colign/pkg/options"
)

// Runner executes alignment runs with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store run results. Multiple goroutines can safely use the same Runner
// with different documents.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// cachedResult is the serialized form of a cached run.
type cachedResult struct {
	Document json.RawMessage `json:"document"`
	Shifts   []chunk.Shift   `json:"shifts"`
	Stats    Stats           `json:"stats"`
}

// Execute runs every enabled category pass over doc.
//
// Unless opts.DryRun is set, doc is mutated in place and also returned
// in the result. Results for non-dry runs are cached under the document
// and option hashes; a hit returns the cached document unmarshaled
// fresh and leaves doc untouched, so callers must read the result's
// Document rather than hold on to the input.
func (r *Runner) Execute(ctx context.Context, doc *chunk.Document, opts Options) (*Result, error) {
	if doc == nil {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "document is nil")
	}
	opts.setDefaults()
	if err := opts.Align.Validate(); err != nil {
		return nil, err
	}

	key, err := r.resultKey(doc, opts)
	if err != nil {
		return nil, err
	}

	if !opts.DryRun {
		if res, ok := r.lookup(ctx, key); ok {
			r.Logger.Debug("alignment result from cache", "key", key)
			return res, nil
		}
	}

	start := time.Now()
	result := &Result{Document: doc}

	for _, pass := range opts.Align.Passes() {
		ps := r.runPass(ctx, doc, pass, opts.DryRun, &result.Shifts)
		result.Stats.Passes = append(result.Stats.Passes, ps)
		result.Stats.Candidates += ps.Candidates
		result.Stats.Shifted += ps.Shifted
	}
	result.Stats.Duration = time.Since(start)

	r.Logger.Info("aligned document",
		"tokens", doc.Len(),
		"candidates", result.Stats.Candidates,
		"shifted", result.Stats.Shifted,
		"duration", result.Stats.Duration)

	if !opts.DryRun {
		r.store(ctx, key, result)
	}
	return result, nil
}

// runPass aligns one category across the document: one engine session,
// candidates fed in line order with newline events for the gaps.
func (r *Runner) runPass(ctx context.Context, doc *chunk.Document, pass options.Pass, dryRun bool, shifts *[]chunk.Shift) PassStats {
	start := time.Now()
	ps := PassStats{Category: pass.Kind.String()}

	rec := &chunk.Recorder{}
	apply := func(t *chunk.Token, col int) {
		ps.Aligned++
		rec.Apply(t, col)
		if !dryRun {
			doc.IndentToColumn(t, col)
		}
	}

	candidates := r.collect(doc, pass.Kind)
	observability.Engine().OnPassStart(ctx, ps.Category, len(candidates))

	st := align.New(apply, r.Logger)
	st.Start(pass.Span, pass.Thresh)
	prevLine := 0
	for _, c := range candidates {
		if c.tok.OrigLine > prevLine {
			st.NewLines(c.tok.OrigLine - prevLine)
			prevLine = c.tok.OrigLine
		}
		st.AddNow(c.tok)
	}
	st.End()

	ps.Candidates = len(candidates)
	ps.Shifted = len(rec.Shifts)
	ps.Discarded = ps.Candidates - ps.Aligned
	ps.Duration = time.Since(start)
	*shifts = append(*shifts, rec.Shifts...)

	if ps.Discarded > 0 {
		observability.Engine().OnDiscard(ctx, ps.Category, ps.Discarded)
	}
	observability.Engine().OnPassComplete(ctx, ps.Category, ps.Aligned, ps.Shifted, ps.Duration)
	return ps
}

type candidate struct {
	tok *chunk.Token
}

// collect picks at most one candidate per line: the first token of the
// pass's kind in column order. One-per-line is the engine's contract.
func (r *Runner) collect(doc *chunk.Document, kind chunk.Kind) []candidate {
	var out []candidate
	for _, n := range doc.LineNumbers() {
		for _, t := range doc.Line(n) {
			if t.Kind == kind {
				out = append(out, candidate{tok: t})
				break
			}
		}
	}
	return out
}

// resultKey derives the cache key from the document and option hashes.
func (r *Runner) resultKey(doc *chunk.Document, opts Options) (string, error) {
	docData, err := chunk.Marshal(doc)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "hash document")
	}
	optsData, err := json.Marshal(opts.Align)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "hash options")
	}
	return r.Keyer.ResultKey(cache.Hash(docData), cache.Hash(optsData)), nil
}

func (r *Runner) lookup(ctx context.Context, key string) (*Result, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache get failed", "err", err)
		return nil, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, "result")
		return nil, false
	}

	var cached cachedResult
	if err := json.Unmarshal(data, &cached); err != nil {
		r.Logger.Warn("cache entry corrupt, ignoring", "err", err)
		return nil, false
	}
	doc, err := chunk.Unmarshal(cached.Document)
	if err != nil {
		r.Logger.Warn("cached document corrupt, ignoring", "err", err)
		return nil, false
	}

	observability.Cache().OnCacheHit(ctx, "result")
	return &Result{
		Document:  doc,
		Shifts:    cached.Shifts,
		Stats:     cached.Stats,
		CacheInfo: CacheInfo{Hit: true},
	}, true
}

func (r *Runner) store(ctx context.Context, key string, result *Result) {
	docData, err := chunk.Marshal(result.Document)
	if err != nil {
		return
	}
	data, err := json.Marshal(cachedResult{
		Document: docData,
		Shifts:   result.Shifts,
		Stats:    result.Stats,
	})
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, DefaultCacheTTL); err != nil {
		r.Logger.Warn("cache set failed", "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, "result", len(data))
}

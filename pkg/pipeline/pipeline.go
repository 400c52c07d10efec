// Package pipeline drives the alignment engine over whole documents.
//
// This package implements the decode → align → apply pipeline shared by
// the CLI and the HTTP API. By centralizing this logic, both entry
// points behave identically and caching works the same everywhere.
//
// # Architecture
//
// An alignment run is a sequence of category passes. Each pass opens one
// engine session per category (assign, var_def, right_comment, …) and
// feeds it the document's candidates in line order, at most one per
// line. Passes run sequentially in a fixed category order, so column
// mutations are serialized in source order even though categories may
// touch overlapping lines; the final column of a token is
// order-sensitive.
//
// # Usage
//
// Create a Runner and execute a run:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, doc, pipeline.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(len(result.Shifts), "tokens moved")
//
// Dry runs record shifts without touching the document:
//
//	result, err := runner.Execute(ctx, doc, pipeline.Options{DryRun: true})
package pipeline

import (
	"time"

	"github.com/matzehuels/colign/pkg/chunk"
	"github.com/matzehuels/colign/pkg/options"
)

// DefaultCacheTTL is how long alignment results stay cached. Results
// are content-addressed, so the TTL only bounds cache growth.
const DefaultCacheTTL = 24 * time.Hour

// Options configures one alignment run.
type Options struct {
	// Align holds the named toggles. Nil means options.Default().
	Align *options.Options

	// DryRun records shifts without mutating the document.
	DryRun bool
}

// setDefaults fills unset fields.
func (o *Options) setDefaults() {
	if o.Align == nil {
		o.Align = options.Default()
	}
}

// PassStats describes one category pass.
type PassStats struct {
	Category   string        `json:"category"`
	Candidates int           `json:"candidates"`
	Aligned    int           `json:"aligned"`
	Shifted    int           `json:"shifted"`
	Discarded  int           `json:"discarded"`
	Duration   time.Duration `json:"duration"`
}

// Stats aggregates a whole run.
type Stats struct {
	Passes     []PassStats   `json:"passes"`
	Candidates int           `json:"candidates"`
	Shifted    int           `json:"shifted"`
	Duration   time.Duration `json:"duration"`
}

// CacheInfo reports whether the run was served from cache.
type CacheInfo struct {
	Hit bool `json:"hit"`
}

// Result is the outcome of an alignment run.
type Result struct {
	// Document is the aligned document. On a dry run it is the input
	// document, unmodified.
	Document *chunk.Document

	// Shifts lists every column change in pass order. On a dry run
	// these are the changes that would have been applied.
	Shifts []chunk.Shift

	Stats     Stats
	CacheInfo CacheInfo
}

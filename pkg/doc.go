// Package pkg provides the core libraries for colign column alignment.
//
// # Overview
//
// Colign aligns token columns across consecutive source lines: groups
// of assignments, variable names, trailing comments and similar
// constructs are moved to a shared column. The pkg directory is
// organized into:
//
//  1. [chunk] - Token and document model plus JSON serialization
//  2. [align] - The streaming alignment engine (one category session)
//  3. [options] - Named per-category toggles loaded from TOML
//  4. [pipeline] - Orchestration (decode → align → apply) with caching
//  5. [cache] - Result cache backends (file, memory, Redis, null)
//  6. [client] - HTTP client for the colign service
//
// # Architecture
//
// The typical data flow through colign:
//
//	Token document (JSON)
//	         ↓
//	    [chunk] package (decode, line/column model)
//	         ↓
//	    [pipeline] package (one pass per enabled category)
//	         ↓
//	    [align] package (group, threshold, flush decisions)
//	         ↓
//	    Aligned document + shift report
//
// # Quick Start
//
// Align a document with default options:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/colign/pkg/chunk"
//	    "github.com/matzehuels/colign/pkg/pipeline"
//	)
//
//	doc, _ := chunk.ReadDocumentFile("doc.json")
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, _ := runner.Execute(context.Background(), doc, pipeline.Options{})
//	fmt.Println(len(result.Shifts), "tokens moved")
//
// Drive the engine directly for a single category:
//
//	st := align.New(func(t *chunk.Token, col int) { t.Column = col }, nil)
//	st.Start(2, 0)
//	for _, tok := range candidates {
//	    st.AddNow(tok)
//	    st.NewLines(1)
//	}
//	st.End()
//
// # Supporting Packages
//
// [errors] - Structured errors with stable codes shared by CLI and API.
//
// [observability] - Hook registry for metrics and tracing backends.
//
// [httputil] - Retry with exponential backoff for transient failures.
//
// [buildinfo] - Version information injected at build time.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/align/...    # Engine only
//	go test -run Example       # Examples only
//
// [chunk]: https://pkg.go.dev/github.com/matzehuels/colign/pkg/chunk
// [align]: https://pkg.go.dev/github.com/matzehuels/colign/pkg/align
// [options]: https://pkg.go.dev/github.com/matzehuels/colign/pkg/options
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/colign/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/colign/pkg/cache
// [client]: https://pkg.go.dev/github.com/matzehuels/colign/pkg/client
// [errors]: https://pkg.go.dev/github.com/matzehuels/colign/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/colign/pkg/observability
// [httputil]: https://pkg.go.dev/github.com/matzehuels/colign/pkg/httputil
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/colign/pkg/buildinfo
package pkg

// Package chunk provides the token and document model consumed by the
// alignment engine.
//
// # Overview
//
// Colign never lexes source text. Documents arrive pre-tokenized: every
// token carries its line, column, and length, plus the alignment category
// it belongs to. The engine reads columns and lengths, decides which
// tokens should share a column, and writes columns back through an
// applier.
//
// A [Document] owns its tokens for the lifetime of a formatting run. The
// alignment engine only holds references into the document and never
// copies or frees token content.
//
// # Appliers
//
// Column decisions are committed through an [Applier]. The standard
// applier is [Document.IndentToColumn], which moves a token to its target
// column and ripples the shift to later tokens on the same line. A
// [Recorder] captures the same decisions as [Shift] records without
// touching the document, which backs dry-run and reporting surfaces.
//
// # Serialization
//
// Documents round-trip through a versioned JSON format via [Marshal],
// [Unmarshal], [ReadDocumentFile], and [WriteDocumentFile]. The format is
// the exchange currency of the CLI and the HTTP API.
package chunk

package chunk

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// FormatVersion is the current document serialization format version.
// Decoders accept only this version.
const FormatVersion = 1

// documentJSON is the canonical serialization envelope for documents.
// The format is human-readable and designed for round-trip fidelity:
// import → align → export → re-import produces identical results.
type documentJSON struct {
	Version int         `json:"version"`
	Tokens  []tokenJSON `json:"tokens"`
}

type tokenJSON struct {
	Line   int    `json:"line"`
	Column int    `json:"column"`
	Len    int    `json:"len,omitempty"` // defaults to len(text)
	Text   string `json:"text,omitempty"`
	Kind   string `json:"kind,omitempty"` // defaults to "none"
}

// Marshal converts a document to JSON bytes.
// Tokens are emitted in (line, column) order for deterministic output.
func Marshal(d *Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeDocumentTo(d, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes JSON bytes into a document.
func Unmarshal(data []byte) (*Document, error) {
	return ReadDocument(bytes.NewReader(data))
}

// WriteDocument writes a document as JSON to an io.Writer.
func WriteDocument(d *Document, w io.Writer) error {
	return writeDocumentTo(d, w)
}

// WriteDocumentFile writes a document to a JSON file.
// The file is created with 0644 permissions.
func WriteDocumentFile(d *Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeDocumentTo(d, f)
}

// ReadDocument decodes a JSON document from an io.Reader.
// Returns validation errors for malformed documents.
func ReadDocument(r io.Reader) (*Document, error) {
	var data documentJSON
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return fromJSON(data)
}

// ReadDocumentFile reads a JSON file and returns the decoded document.
func ReadDocumentFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadDocument(f)
}

func writeDocumentTo(d *Document, w io.Writer) error {
	out := documentJSON{Version: FormatVersion}
	for _, t := range d.Tokens() {
		tj := tokenJSON{
			Line:   t.OrigLine,
			Column: t.Column,
			Text:   t.Text,
		}
		if t.Len != len(t.Text) {
			tj.Len = t.Len
		}
		if t.Kind != KindNone {
			tj.Kind = t.Kind.String()
		}
		out.Tokens = append(out.Tokens, tj)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func fromJSON(data documentJSON) (*Document, error) {
	if data.Version != FormatVersion {
		return nil, fmt.Errorf("unsupported document version %d (want %d)", data.Version, FormatVersion)
	}
	d := NewDocument()
	for i, tj := range data.Tokens {
		if tj.Line < 1 {
			return nil, fmt.Errorf("token %d: line %d out of range", i, tj.Line)
		}
		if tj.Column < 1 {
			return nil, fmt.Errorf("token %d: column %d out of range", i, tj.Column)
		}
		length := tj.Len
		if length == 0 {
			length = len(tj.Text)
		}
		if length < 0 {
			return nil, fmt.Errorf("token %d: negative length %d", i, tj.Len)
		}
		kind := KindNone
		if tj.Kind != "" {
			k, err := ParseKind(tj.Kind)
			if err != nil {
				return nil, fmt.Errorf("token %d: %w", i, err)
			}
			kind = k
		}
		d.Add(&Token{
			Column:   tj.Column,
			Len:      length,
			OrigLine: tj.Line,
			Text:     tj.Text,
			Kind:     kind,
		})
	}
	return d, nil
}

// Package export writes stroke sequences out as JSON documents, PNG
// images and PDF pages.
package export

import (
	"encoding/json"
	"fmt"
	"io"

	"StrokePad/internal/sketch"
)

// DocumentVersion is the only document layout Load understands.
const DocumentVersion = 1

// Document is the on-disk form of one drawing. Strokes is the same array
// of 5-tuples consumers receive.
type Document struct {
	Version int             `json:"version"`
	Session string          `json:"session,omitempty"`
	Width   float64         `json:"width"`
	Height  float64         `json:"height"`
	Strokes sketch.Sequence `json:"strokes"`
}

// Save writes doc as indented JSON.
func Save(w io.Writer, doc Document) error {
	if doc.Version == 0 {
		doc.Version = DocumentVersion
	}
	if doc.Strokes == nil {
		doc.Strokes = sketch.Sequence{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}
	return nil
}

// Load reads a document written by Save and checks its strokes.
func Load(r io.Reader) (Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("decoding document: %w", err)
	}
	if doc.Version != DocumentVersion {
		return Document{}, fmt.Errorf("unsupported document version %d", doc.Version)
	}
	if err := doc.Strokes.Validate(); err != nil {
		return Document{}, err
	}
	if doc.Strokes == nil {
		doc.Strokes = sketch.Sequence{}
	}
	return doc, nil
}

package sink

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/matzehuels/classdiagram/pkg/diagram"
)

// WriteJSON encodes doc as indented JSON and writes it to w.
// The output can be read back with [ReadJSON].
func WriteJSON(w io.Writer, doc *diagram.Document) error {
	if doc == nil {
		return fmt.Errorf("encode: nil document")
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// RenderJSON is WriteJSON into a byte slice.
func RenderJSON(doc *diagram.Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ReadJSON decodes a document written by WriteJSON.
func ReadJSON(r io.Reader) (*diagram.Document, error) {
	var doc diagram.Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if doc.Types == nil {
		doc.Types = []diagram.TypeDescriptor{}
	}
	return &doc, nil
}

package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/arcview/pkg/render/visjs"
)

// WritePayload encodes a vis-network payload as indented JSON and writes it
// to w. The output is the exact body served at /api/graph.
func WritePayload(p visjs.Payload, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportPayload writes a payload to a JSON file at path.
func ExportPayload(p visjs.Payload, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WritePayload(p, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

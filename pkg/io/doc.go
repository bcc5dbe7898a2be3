// Package io reads the index and arcs files into a [graph.Graph] and writes
// the render payload back out as JSON.
//
// # Input Formats
//
// The index file maps vertex ids to labels, one vertex per line, label first:
//
//	example.com 0
//	example.org 1
//
// The arcs file lists directed edges as id pairs, one per line:
//
//	0 1
//	1 0
//
// Tokens are separated by any run of whitespace. Blank lines are skipped and
// do not count as vertices or edges; any other line must have exactly two
// tokens. Malformed lines fail with PARSE_ERROR and the returned error names
// the file and 1-based line number (see [errors.Location]).
//
// # Loading
//
// [Load] reads both files, validates the id space and edge endpoints through
// [graph.New], and returns the frozen graph. It never returns a partial graph:
//
//	g, err := io.Load("example_index", "example_arcs", graph.Options{})
//	if err != nil {
//	    return err // PARSE_ERROR, LOOKUP_ERROR or DUPLICATE_KEY
//	}
//
// [ReadIndex] and [ReadArcs] parse streams directly; the name argument is
// only used in error messages.
//
// # Export
//
// [WritePayload] and [ExportPayload] serialize a vis-network payload as
// indented JSON for use outside the explorer.
package io

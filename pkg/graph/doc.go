// Package graph provides the immutable vertex/edge model loaded from an
// index file and an arcs file.
//
// # Core Types
//
//   - [Vertex]: an externally numbered vertex with a display label
//   - [Edge]: a directed arc with a derived, render-stable [Edge.ID]
//   - [Graph]: the frozen collection of both, built once with [New]
//
// # Id Space
//
// Vertex ids are dense and zero-based: a graph with N vertices owns exactly
// the ids 0..N-1. [New] rejects sparse or shifted id spaces and edges whose
// endpoints fall outside that range, so a [Graph] never holds a dangling
// reference:
//
//	g, err := graph.New(map[int]string{0: "a", 1: "b"}, []graph.Arc{{Source: 0, Target: 1}}, graph.Options{})
//	label, _ := g.LabelOf(1) // "b"
//
// # Edge Ids
//
// Edge ids are "<source>_<target>". Repeated pairs collide; [Options.Duplicates]
// decides whether that is an error ([DuplicatesReject], the default) or whether
// later copies are disambiguated with a "#n" suffix ([DuplicatesKeep]).
//
// # Concurrency
//
// A Graph is never mutated after New returns and is safe for concurrent reads.
package graph

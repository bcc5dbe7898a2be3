package graph

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/matzehuels/arcview/pkg/errors"
)

// DuplicatePolicy controls how repeated (source, target) pairs are handled.
type DuplicatePolicy string

const (
	// DuplicatesReject fails construction with DUPLICATE_KEY on the first repeat.
	DuplicatesReject DuplicatePolicy = "reject"
	// DuplicatesKeep retains every arc and suffixes colliding ids with "#n".
	DuplicatesKeep DuplicatePolicy = "keep"
)

// ParseDuplicatePolicy converts a config or flag value to a DuplicatePolicy.
// The empty string selects DuplicatesReject.
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch DuplicatePolicy(s) {
	case "", DuplicatesReject:
		return DuplicatesReject, nil
	case DuplicatesKeep:
		return DuplicatesKeep, nil
	}
	return "", errors.New(errors.ErrCodeInvalidPolicy, "unknown duplicate policy %q (must be 'reject' or 'keep')", s)
}

// Options configures graph construction.
type Options struct {
	Duplicates DuplicatePolicy
}

// Vertex is a graph vertex. ID is assigned by the index file, never generated.
type Vertex struct {
	ID    int
	Label string
}

// Edge is a directed arc Source → Target.
type Edge struct {
	ID     string // "<source>_<target>", unique within a Graph
	Source int
	Target int
}

// Arc is an unvalidated edge as read from an arcs file.
// Line is the 1-based source line, used only in error messages (0 if unknown).
type Arc struct {
	Source int
	Target int
	Line   int
}

// EdgeID derives the render handle for an arc.
func EdgeID(source, target int) string {
	return strconv.Itoa(source) + "_" + strconv.Itoa(target)
}

// Graph is a read-only set of vertices and edges.
// The zero value is an empty graph; use New to build a populated one.
type Graph struct {
	labels []string // labels[id]
	edges  []Edge   // arcs file order
	out    []int    // out-degree by id
	in     []int    // in-degree by id
}

// New validates index and arcs and freezes them into a Graph.
//
// The vertex count is len(index) and every id in [0, len(index)) must be
// present, otherwise New returns LOOKUP_ERROR naming the first missing id.
// Every arc endpoint must fall inside that range (LOOKUP_ERROR). Repeated
// arcs are handled according to opts.Duplicates.
//
// No partially built Graph is returned alongside an error.
func New(index map[int]string, arcs []Arc, opts Options) (*Graph, error) {
	n := len(index)
	labels := make([]string, n)
	for id := range n {
		label, ok := index[id]
		if !ok {
			return nil, errors.New(errors.ErrCodeLookup,
				"vertex id %d missing: ids must be dense in [0, %d)", id, n)
		}
		labels[id] = label
	}

	g := &Graph{
		labels: labels,
		edges:  make([]Edge, 0, len(arcs)),
		out:    make([]int, n),
		in:     make([]int, n),
	}

	seen := make(map[string]int, len(arcs)) // base id -> occurrences
	firstLine := make(map[string]int, len(arcs))
	for i, a := range arcs {
		if err := g.checkEndpoint(a, i, a.Source, "source"); err != nil {
			return nil, err
		}
		if err := g.checkEndpoint(a, i, a.Target, "target"); err != nil {
			return nil, err
		}

		id := EdgeID(a.Source, a.Target)
		seen[id]++
		if k := seen[id]; k > 1 {
			if opts.Duplicates != DuplicatesKeep {
				return nil, errors.New(errors.ErrCodeDuplicateKey,
					"edge %s repeated at %s (first at %s)", id, arcPos(a, i), linePos(firstLine[id]))
			}
			id = fmt.Sprintf("%s#%d", id, k)
		} else {
			firstLine[id] = a.Line
		}

		g.edges = append(g.edges, Edge{ID: id, Source: a.Source, Target: a.Target})
		g.out[a.Source]++
		g.in[a.Target]++
	}

	return g, nil
}

func (g *Graph) checkEndpoint(a Arc, i, id int, role string) error {
	if id >= 0 && id < len(g.labels) {
		return nil
	}
	return errors.New(errors.ErrCodeLookup,
		"edge %d->%d at %s: %s %d not in [0, %d)", a.Source, a.Target, arcPos(a, i), role, id, len(g.labels))
}

func arcPos(a Arc, i int) string {
	if a.Line > 0 {
		return linePos(a.Line)
	}
	return fmt.Sprintf("arc #%d", i+1)
}

func linePos(line int) string {
	if line <= 0 {
		return "an earlier arc"
	}
	return fmt.Sprintf("line %d", line)
}

// VertexCount returns the number of vertices.
func (g *Graph) VertexCount() int { return len(g.labels) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// LabelOf returns the label of vertex id, or LOOKUP_ERROR if id is outside
// [0, VertexCount()).
func (g *Graph) LabelOf(id int) (string, error) {
	if id < 0 || id >= len(g.labels) {
		return "", errors.New(errors.ErrCodeLookup, "vertex %d not in [0, %d)", id, len(g.labels))
	}
	return g.labels[id], nil
}

// Vertex returns the vertex with the given id and true, or false if absent.
func (g *Graph) Vertex(id int) (Vertex, bool) {
	if id < 0 || id >= len(g.labels) {
		return Vertex{}, false
	}
	return Vertex{ID: id, Label: g.labels[id]}, true
}

// Vertices returns all vertices in ascending id order.
// The slice is a copy.
func (g *Graph) Vertices() []Vertex {
	vs := make([]Vertex, len(g.labels))
	for id, label := range g.labels {
		vs[id] = Vertex{ID: id, Label: label}
	}
	return vs
}

// Edges returns a copy of all edges in arcs file order.
// The order is stable across runs on the same input.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// OutDegree returns the number of edges leaving id, 0 if id is unknown.
func (g *Graph) OutDegree(id int) int {
	if id < 0 || id >= len(g.out) {
		return 0
	}
	return g.out[id]
}

// InDegree returns the number of edges entering id, 0 if id is unknown.
func (g *Graph) InDegree(id int) int {
	if id < 0 || id >= len(g.in) {
		return 0
	}
	return g.in[id]
}

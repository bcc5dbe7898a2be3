package visjs

import (
	"github.com/matzehuels/arcview/pkg/graph"
)

// Fixed rendering attributes shared by every node and edge.
const (
	NodeShape = "dot"
	NodeSize  = 7
	EdgeWidth = 2
)

// Node is a vis-network node.
type Node struct {
	ID    int    `json:"id"`
	Label string `json:"label"`
	Shape string `json:"shape"`
	Size  int    `json:"size"`
}

// Edge is a vis-network edge.
type Edge struct {
	ID    string `json:"id"`
	From  int    `json:"from"`
	To    int    `json:"to"`
	Width int    `json:"width"`
}

// Payload is the initial data set handed to the rendering surface.
type Payload struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// ToPayload builds the payload for g. Nodes ascend by vertex id and edges
// keep arcs file order, so the result is identical across runs on the same
// input. Slices are non-nil even for an empty graph.
func ToPayload(g *graph.Graph) Payload {
	vs := g.Vertices()
	es := g.Edges()

	p := Payload{
		Nodes: make([]Node, len(vs)),
		Edges: make([]Edge, len(es)),
	}
	for i, v := range vs {
		p.Nodes[i] = Node{ID: v.ID, Label: v.Label, Shape: NodeShape, Size: NodeSize}
	}
	for i, e := range es {
		p.Edges[i] = Edge{ID: e.ID, From: e.Source, To: e.Target, Width: EdgeWidth}
	}
	return p
}

// NodeOptions is the node section of the network options.
// A style patch replaces it wholesale.
type NodeOptions struct {
	Color string `json:"color,omitempty"`
}

// NetworkOptions configures the rendering surface.
type NetworkOptions struct {
	Height string       `json:"height"`
	Width  string       `json:"width"`
	Nodes  *NodeOptions `json:"nodes,omitempty"`
}

// DefaultOptions returns a 600px high, full-width surface with no node color.
func DefaultOptions() NetworkOptions {
	return NetworkOptions{Height: "600px", Width: "100%"}
}

// WithNodeColor returns a copy of o whose node color is code.
func (o NetworkOptions) WithNodeColor(code string) NetworkOptions {
	o.Nodes = &NodeOptions{Color: code}
	return o
}

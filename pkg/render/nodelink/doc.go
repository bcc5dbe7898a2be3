// Package nodelink renders a static node-link snapshot of the graph with
// Graphviz.
//
// The browser explorer lays the graph out live with vis-network physics. A
// snapshot is the offline counterpart: the same dots, labels and edges, laid
// out by a Graphviz engine and filled with the selected node color.
//
//	Graph → ToDOT() → DOT → RenderSVG() → SVG → render.Convert() → PNG/PDF
//
// # Layout Engines
//
// The Engine option selects the Graphviz layout:
//
//   - neato: Spring model (default), closest to vis-network physics
//   - dot: Hierarchical
//   - fdp: Force-directed
//   - circo: Circular
//   - twopi: Radial
//
// # Usage
//
//	dot := nodelink.ToDOT(g, nodelink.Options{Color: style.Green})
//	svg, err := nodelink.RenderSVG(ctx, dot)
package nodelink

// Package render holds output helpers shared by the renderers under it.
//
// The renderers produce SVG. [Convert] turns SVG into PNG or PDF through the
// rsvg-convert binary from librsvg, so the walk plotter and the static graph
// snapshot share one conversion path:
//
//	pdf, err := render.Convert(ctx, svg, render.PDF, 1)
//
// Subpackages:
//
//   - visjs: the vis-network payload served to the browser
//   - nodelink: static Graphviz snapshots of the graph
package render

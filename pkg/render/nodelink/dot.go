package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/arcview/pkg/errors"
	"github.com/matzehuels/arcview/pkg/graph"
	"github.com/matzehuels/arcview/pkg/render/visjs"
	"github.com/matzehuels/arcview/pkg/style"
)

// Engines lists the supported Graphviz layout engines.
var Engines = []string{"neato", "dot", "fdp", "circo", "twopi"}

// Options configures snapshot rendering.
type Options struct {
	// Color fills every node. The zero value is Red, the explorer's default.
	Color style.Color

	// Engine is the Graphviz layout engine. Empty means "neato".
	Engine string

	// Detailed appends the vertex id to every label.
	Detailed bool
}

// ValidateEngine fails with INVALID_INPUT for engines outside [Engines].
func ValidateEngine(engine string) error {
	if engine == "" {
		return nil
	}
	for _, e := range Engines {
		if e == engine {
			return nil
		}
	}
	return errors.New(errors.ErrCodeInvalidInput,
		"unknown layout engine %q (want one of %s)", engine, strings.Join(Engines, ", "))
}

// ToDOT converts g to Graphviz DOT. Nodes are small filled dots labelled
// outside the marker, and edges keep the arcs file order and the fixed
// payload width.
func ToDOT(g *graph.Graph, opts Options) string {
	engine := opts.Engine
	if engine == "" {
		engine = "neato"
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(&buf, "  layout=%s;\n", engine)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  overlap=false;\n")
	fmt.Fprintf(&buf, "  node [shape=circle, style=filled, label=\"\", width=%.2f, fixedsize=true, color=%q, fillcolor=%q, fontsize=10];\n",
		float64(visjs.NodeSize)/36, opts.Color.Code(), opts.Color.Code())
	fmt.Fprintf(&buf, "  edge [penwidth=%d, color=\"#848484\", arrowsize=0.6];\n", visjs.EdgeWidth)
	buf.WriteString("\n")

	for _, v := range g.Vertices() {
		fmt.Fprintf(&buf, "  n%d [xlabel=%q, tooltip=%q];\n", v.ID, fmtLabel(v, opts.Detailed), v.Label)
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		fmt.Fprintf(&buf, "  n%d -> n%d [id=%q];\n", e.Source, e.Target, e.ID)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(v graph.Vertex, detailed bool) string {
	if !detailed {
		return v.Label
	}
	return v.Label + "\n#" + strconv.Itoa(v.ID)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Convert the result with [render.Convert] for PNG or PDF.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root tag so the snapshot scales with its
// container instead of Graphviz's point-based width and height.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 %.2f %.2f" width="100%%" preserveAspectRatio="xMidYMid meet">`, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}

// Render produces the snapshot for g in one step.
func Render(ctx context.Context, g *graph.Graph, opts Options) ([]byte, error) {
	if err := ValidateEngine(opts.Engine); err != nil {
		return nil, err
	}
	return RenderSVG(ctx, ToDOT(g, opts))
}

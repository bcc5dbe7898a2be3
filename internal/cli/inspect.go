package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/arcview/pkg/graph"
)

// inspectOpts holds the command-line flags for the inspect command.
type inspectOpts struct {
	input  inputOpts
	vertex int  // vertex id to describe, -1 for none
	edges  int  // number of edges to list
	json   bool // machine-readable summary
}

// inspectSummary is the --json output of inspect.
type inspectSummary struct {
	Vertices int            `json:"vertices"`
	Edges    int            `json:"edges"`
	Vertex   *vertexSummary `json:"vertex,omitempty"`
	Sample   []edgeSummary  `json:"sample,omitempty"`
}

type edgeSummary struct {
	ID     string `json:"id"`
	Source int    `json:"source"`
	Target int    `json:"target"`
}

type vertexSummary struct {
	ID        int    `json:"id"`
	Label     string `json:"label"`
	InDegree  int    `json:"in_degree"`
	OutDegree int    `json:"out_degree"`
}

// inspectCommand creates the inspect command, which validates the input files
// and summarizes the graph without serving it.
func (c *CLI) inspectCommand() *cobra.Command {
	opts := inspectOpts{vertex: -1, edges: 10}

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Validate input files and summarize the graph",
		Example: `  arcview inspect -i example_index -a example_arcs
  arcview inspect -i index -a arcs --vertex 0 --edges 25`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	addInputFlags(cmd, &opts.input)
	cmd.Flags().IntVar(&opts.vertex, "vertex", opts.vertex, "describe the vertex with this id")
	cmd.Flags().IntVar(&opts.edges, "edges", opts.edges, "list the first n edges (0 for none)")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print the summary as JSON")

	return cmd
}

func (c *CLI) runInspect(ctx context.Context, w io.Writer, opts inspectOpts) error {
	g, err := c.loadGraph(ctx, opts.input)
	if err != nil {
		return err
	}

	summary := inspectSummary{Vertices: g.VertexCount(), Edges: g.EdgeCount()}
	if opts.vertex >= 0 {
		label, err := g.LabelOf(opts.vertex)
		if err != nil {
			return err
		}
		summary.Vertex = &vertexSummary{
			ID:        opts.vertex,
			Label:     label,
			InDegree:  g.InDegree(opts.vertex),
			OutDegree: g.OutDegree(opts.vertex),
		}
	}
	if opts.edges > 0 {
		edges := g.Edges()
		for _, e := range edges[:min(opts.edges, len(edges))] {
			summary.Sample = append(summary.Sample, edgeSummary{ID: e.ID, Source: e.Source, Target: e.Target})
		}
	}

	if opts.json {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}

	fmt.Fprintln(w, StyleTitle.Render("Graph"))
	printKeyValue(w, "Vertices", StyleNumber.Render(strconv.Itoa(summary.Vertices)))
	printKeyValue(w, "Edges", StyleNumber.Render(strconv.Itoa(summary.Edges)))
	if n := isolated(g); n > 0 {
		printKeyValue(w, "Isolated", StyleWarning.Render(strconv.Itoa(n)))
	}

	if v := summary.Vertex; v != nil {
		fmt.Fprintln(w)
		fmt.Fprintln(w, StyleTitle.Render(fmt.Sprintf("Vertex %d", v.ID)))
		printKeyValue(w, "Label", StyleHighlight.Render(v.Label))
		printKeyValue(w, "In", StyleNumber.Render(strconv.Itoa(v.InDegree)))
		printKeyValue(w, "Out", StyleNumber.Render(strconv.Itoa(v.OutDegree)))
	}

	if len(summary.Sample) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, edgeTable(g, summary.Sample))
		if rest := summary.Edges - len(summary.Sample); rest > 0 {
			fmt.Fprintln(w, StyleDim.Render(fmt.Sprintf("  … %d more", rest)))
		}
	}
	return nil
}

// isolated counts vertices without any incident edge.
func isolated(g *graph.Graph) int {
	n := 0
	for _, v := range g.Vertices() {
		if g.InDegree(v.ID)+g.OutDegree(v.ID) == 0 {
			n++
		}
	}
	return n
}

// edgeTable renders edges with their endpoint labels.
func edgeTable(g *graph.Graph, edges []edgeSummary) string {
	rows := make([][]string, 0, len(edges))
	for _, e := range edges {
		src, _ := g.LabelOf(e.Source)
		dst, _ := g.LabelOf(e.Target)
		rows = append(rows, []string{e.ID, src, dst})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Edge", "Source", "Target").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).Foreground(colorGray).Padding(0, 1)
			}
			return lipgloss.NewStyle().Foreground(colorWhite).Padding(0, 1)
		}).
		Render()
}

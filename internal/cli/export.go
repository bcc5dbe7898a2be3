package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/arcview/pkg/errors"
	"github.com/matzehuels/arcview/pkg/graph"
	"github.com/matzehuels/arcview/pkg/io"
	"github.com/matzehuels/arcview/pkg/render"
	"github.com/matzehuels/arcview/pkg/render/nodelink"
	"github.com/matzehuels/arcview/pkg/render/visjs"
)

const (
	formatJSON = "json" // vis-network payload
	formatDOT  = "dot"  // Graphviz source
)

// exportFormats lists every --format value in help order.
var exportFormats = []string{formatJSON, formatDOT, string(render.SVG), string(render.PNG), string(render.PDF)}

// exportOpts holds the command-line flags for the export command.
type exportOpts struct {
	input    inputOpts
	output   string  // output file, "-" for stdout
	format   string  // json, dot, svg, png or pdf
	color    string  // node color for static renderings
	engine   string  // Graphviz layout engine
	detailed bool    // append vertex ids to labels
	scale    float64 // PNG scale factor
}

// exportCommand creates the export command, which writes the graph as a
// vis-network payload or as a static node-link rendering.
func (c *CLI) exportCommand() *cobra.Command {
	opts := exportOpts{scale: 2}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the graph as JSON, DOT or a static rendering",
		Long: `Export the loaded graph without starting the explorer.

  json  the nodes/edges payload the explorer sends to the browser
  dot   Graphviz source with the selected node color
  svg   node-link rendering (Graphviz)
  png   node-link rendering (requires rsvg-convert)
  pdf   node-link rendering (requires rsvg-convert)

The format defaults to the output file's extension, then to json.`,
		Example: `  arcview export -i example_index -a example_arcs -o graph.json
  arcview export -i index -a arcs -o graph.svg --color Blue --engine fdp
  arcview export -i index -a arcs -f dot -o -`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExport(cmd.Context(), opts)
		},
	}

	addInputFlags(cmd, &opts.input)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", `output file ("-" for stdout)`)
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: "+strings.Join(exportFormats, ", "))
	cmd.Flags().StringVar(&opts.color, "color", "Red", "node color: Red, Green or Blue")
	cmd.Flags().StringVar(&opts.engine, "engine", "", "layout engine: "+strings.Join(nodelink.Engines, ", "))
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "append vertex ids to labels")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor")
	configurable(cmd, "color")

	return cmd
}

// resolveExportFormat picks the format from --format, then the output
// extension, then json.
func resolveExportFormat(format, output string) (string, error) {
	if format == "" {
		ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(output)), ".")
		if ext == "" || output == "-" {
			return formatJSON, nil
		}
		format = ext
	}
	format = strings.ToLower(format)
	for _, f := range exportFormats {
		if f == format {
			return f, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidFormat,
		"unsupported export format %q (want one of %s)", format, strings.Join(exportFormats, ", "))
}

func (c *CLI) runExport(ctx context.Context, opts exportOpts) error {
	format, err := resolveExportFormat(opts.format, opts.output)
	if err != nil {
		return err
	}
	color, err := parseColorFlag(opts.color)
	if err != nil {
		return err
	}
	if err := nodelink.ValidateEngine(opts.engine); err != nil {
		return err
	}

	g, err := c.loadGraph(ctx, opts.input)
	if err != nil {
		return err
	}

	output := opts.output
	if output == "" {
		output = "graph." + format
	}

	if format == formatJSON {
		if output == "-" {
			return io.WritePayload(visjs.ToPayload(g), os.Stdout)
		}
		if err := io.ExportPayload(visjs.ToPayload(g), output); err != nil {
			return err
		}
		c.Logger.Debugf("Wrote payload to %s", output)
		printSuccess("Exported %s", format)
		printFile(output)
		return nil
	}

	data, err := c.renderStatic(ctx, g, format, nodelink.Options{
		Color:    color,
		Engine:   opts.engine,
		Detailed: opts.detailed,
	}, opts.scale)
	if err != nil {
		return err
	}

	if output == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	c.Logger.Debugf("Generated %s: %d bytes", format, len(data))
	printSuccess("Exported %s", format)
	printFile(output)
	return nil
}

// renderStatic produces DOT source or a Graphviz rendering converted to format.
func (c *CLI) renderStatic(ctx context.Context, g *graph.Graph, format string, opts nodelink.Options, scale float64) ([]byte, error) {
	if format == formatDOT {
		return []byte(nodelink.ToDOT(g, opts)), nil
	}

	spinner := newSpinner(ctx, "Rendering node-link diagram...")
	spinner.Start()

	svg, err := nodelink.Render(ctx, g, opts)
	if err == nil {
		svg, err = render.Convert(ctx, svg, render.Format(format), scale)
	}
	if err != nil {
		spinner.StopWithError("Rendering failed")
		return nil, err
	}
	spinner.StopWithSuccess(fmt.Sprintf("Rendered %d vertices as %s", g.VertexCount(), format))
	return svg, nil
}

package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/arcview/pkg/errors"
	"github.com/matzehuels/arcview/pkg/explorer"
	"github.com/matzehuels/arcview/pkg/graph"
	"github.com/matzehuels/arcview/pkg/io"
	"github.com/matzehuels/arcview/pkg/style"
)

// inputOpts holds the flags that locate and load a graph.
type inputOpts struct {
	index      string // index file: "<label> <id>" per line
	arcs       string // arcs file: "<source> <target>" per line
	duplicates string // repeated arc policy: reject or keep
}

func addInputFlags(cmd *cobra.Command, opts *inputOpts) {
	cmd.Flags().StringVarP(&opts.index, "index", "i", "", "index file (label and id per line)")
	cmd.Flags().StringVarP(&opts.arcs, "arcs", "a", "", "arcs file (source and target id per line)")
	cmd.Flags().StringVar(&opts.duplicates, "duplicates", string(graph.DuplicatesReject),
		"repeated arcs: reject (fail) or keep (suffix ids with #n)")
	configurable(cmd, "index", "arcs", "duplicates")
}

// validate checks the flags before any file is opened.
func (o inputOpts) validate() (graph.Options, error) {
	if o.index == "" {
		return graph.Options{}, errors.New(errors.ErrCodeInvalidInput, "--index is required")
	}
	if o.arcs == "" {
		return graph.Options{}, errors.New(errors.ErrCodeInvalidInput, "--arcs is required")
	}
	policy, err := graph.ParseDuplicatePolicy(o.duplicates)
	if err != nil {
		return graph.Options{}, err
	}
	return graph.Options{Duplicates: policy}, nil
}

// loadGraph loads the graph behind a spinner. Any failure is fatal for the
// calling command; nothing is served from a partial graph.
func (c *CLI) loadGraph(ctx context.Context, opts inputOpts) (*graph.Graph, error) {
	gopts, err := opts.validate()
	if err != nil {
		return nil, err
	}

	prog := newProgress(c.Logger)
	spinner := newSpinner(ctx, "Loading graph...")
	spinner.Start()
	g, err := io.LoadContext(ctx, opts.index, opts.arcs, gopts)
	cancelled := spinner.Cancelled()
	spinner.Stop()
	if cancelled {
		return nil, ctx.Err()
	}
	if err != nil {
		return nil, err
	}

	prog.done(fmt.Sprintf("Loaded %d vertices, %d edges", g.VertexCount(), g.EdgeCount()))
	return g, nil
}

// loadApp loads the graph and wraps it in the explorer context.
func (c *CLI) loadApp(ctx context.Context, opts inputOpts, eopts explorer.Options) (*explorer.App, error) {
	g, err := c.loadGraph(ctx, opts)
	if err != nil {
		return nil, err
	}
	eopts.Logger = c.Logger
	return explorer.New(g, eopts)
}

// parseColorFlag resolves a --color value, defaulting to Red.
func parseColorFlag(s string) (style.Color, error) {
	if s == "" {
		return style.Red, nil
	}
	return style.Parse(s)
}

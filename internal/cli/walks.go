package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/arcview/pkg/errors"
	"github.com/matzehuels/arcview/pkg/render"
	"github.com/matzehuels/arcview/pkg/walks"
)

const (
	defaultWalkStep   = 3
	defaultWalkOutput = "walk.svg"
)

// walksOpts holds the command-line flags for the walks command.
type walksOpts struct {
	file   string  // walk log: one walk of integers per line
	step   int     // zero-based line to plot
	output string  // output file; format from extension
	text   bool    // print a terminal plot instead
	width  int     // terminal plot width
	scale  float64 // PNG scale factor
}

// walksCommand creates the walks command, which plots one line of a walk log
// as a stem plot.
func (c *CLI) walksCommand() *cobra.Command {
	opts := walksOpts{
		step:   defaultWalkStep,
		output: defaultWalkOutput,
		width:  80,
		scale:  2,
	}

	cmd := &cobra.Command{
		Use:   "walks",
		Short: "Plot one walk from a walk log",
		Long: `Read a log of integer sequences, one walk per line, and draw the
selected line as a stem plot: x is the position in the walk, y the value.

The output format follows the file extension (svg, png or pdf).`,
		Example: `  arcview walks --file walks.log
  arcview walks --file walks.log --step 0 -o walk.png
  arcview walks --file walks.log --text`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runWalks(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.file, "file", "", "walk log file")
	cmd.Flags().IntVar(&opts.step, "step", opts.step, "zero-based line to plot")
	cmd.Flags().StringVarP(&opts.output, "output", "o", opts.output, "output file (svg, png or pdf)")
	cmd.Flags().BoolVar(&opts.text, "text", false, "print the plot to the terminal")
	cmd.Flags().IntVar(&opts.width, "width", opts.width, "terminal plot width")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor")

	return cmd
}

func (c *CLI) runWalks(ctx context.Context, w io.Writer, opts walksOpts) error {
	if opts.file == "" {
		return errors.New(errors.ErrCodeInvalidInput, "--file is required")
	}

	rows, err := walks.LoadLog(opts.file)
	if err != nil {
		return err
	}
	walk, err := walks.Select(rows, opts.step)
	if err != nil {
		return err
	}
	c.Logger.Debugf("Selected walk %d (line %d, %d values) of %d", walk.Step, walk.Line, len(walk.Values), len(rows))

	if opts.text {
		fmt.Fprintln(w, walks.RenderText(walk, opts.width))
		return nil
	}

	format := render.FromPath(opts.output)
	data, err := render.Convert(ctx, walks.RenderSVG(walk), format, opts.scale)
	if err != nil {
		return err
	}
	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}

	printSuccess("Plotted walk %d (%d values)", walk.Step, len(walk.Values))
	printFile(opts.output)
	return nil
}

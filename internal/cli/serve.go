package cli

import (
	"context"
	"net"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/matzehuels/arcview/pkg/cache"
	"github.com/matzehuels/arcview/pkg/errors"
	"github.com/matzehuels/arcview/pkg/explorer"
	"github.com/matzehuels/arcview/pkg/observability"
	"github.com/matzehuels/arcview/pkg/render/visjs"
	"github.com/matzehuels/arcview/pkg/server"
)

const defaultAddr = ":8050"

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	input   inputOpts
	addr    string // listen address
	color   string // initial node color
	height  string // network height (CSS)
	width   string // network width (CSS)
	title   string // page title
	noCache bool   // render snapshots on every request
	metrics bool   // expose /metrics
}

// serveCommand creates the serve command, which loads the graph and runs the
// browser explorer until interrupted.
func (c *CLI) serveCommand() *cobra.Command {
	defaults := visjs.DefaultOptions()
	opts := serveOpts{
		addr:    defaultAddr,
		height:  defaults.Height,
		width:   defaults.Width,
		metrics: true,
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the interactive graph explorer",
		Long: `Load the index and arcs files and serve an interactive vis-network view.

The page offers a Red/Green/Blue node color control. Selections from any
browser tab, POST /api/style or "arcview pick --remote" are applied in order
and pushed to every open tab.`,
		Example: `  arcview serve --index example_index --arcs example_arcs
  arcview serve -i index -a arcs --addr 127.0.0.1:9000 --color Green`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	addInputFlags(cmd, &opts.input)
	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.color, "color", "Red", "initial node color: Red, Green or Blue")
	cmd.Flags().StringVar(&opts.height, "height", opts.height, "network height (CSS length)")
	cmd.Flags().StringVar(&opts.width, "width", opts.width, "network width (CSS length)")
	cmd.Flags().StringVar(&opts.title, "title", appName, "page title")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the snapshot cache")
	cmd.Flags().BoolVar(&opts.metrics, "metrics", opts.metrics, "expose Prometheus metrics on /metrics")
	configurable(cmd, "addr", "color", "height", "width")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	if err := errors.ValidateAddr(opts.addr); err != nil {
		return err
	}
	color, err := parseColorFlag(opts.color)
	if err != nil {
		return err
	}

	var gatherer prometheus.Gatherer
	if opts.metrics {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		prom := observability.NewPrometheus(reg)
		observability.SetLoadHooks(prom)
		observability.SetStyleHooks(prom)
		observability.SetHTTPHooks(prom)
		defer observability.Reset()
		gatherer = reg
	}

	app, err := c.loadApp(ctx, opts.input, explorer.Options{
		Color:   color,
		Network: visjs.NetworkOptions{Height: opts.height, Width: opts.width},
	})
	if err != nil {
		return err
	}

	var snapshots cache.Cache = cache.NewMemoryCache(32)
	if opts.noCache {
		snapshots = cache.NewNullCache()
	}
	defer snapshots.Close()

	srv := server.New(app, server.Config{
		Addr:     opts.addr,
		Logger:   c.Logger,
		Gatherer: gatherer,
		Cache:    snapshots,
		Title:    opts.title,
	})

	ln, err := srv.Listen()
	if err != nil {
		return errors.Wrap(errors.ErrCodeUnavailable, err, "listen on %s", opts.addr)
	}
	url := displayURL(ln.Addr().String())

	printStats(app.Graph.VertexCount(), app.Graph.EdgeCount(), color)
	printInfo("Explorer at %s", StyleLink.Render(url))
	printNextStep("Pick from a terminal", "arcview pick --remote "+url)
	printNewline()

	if err := srv.Serve(ctx, ln); err != nil {
		return err
	}
	printInfo("Explorer stopped")
	// Serve shuts down cleanly on cancel; report it so the process exits 130.
	return ctx.Err()
}

// displayURL turns a listen address into a browsable URL. Wildcard hosts
// are shown as localhost.
func displayURL(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "http://" + addr
	}
	switch host {
	case "", "0.0.0.0", "::":
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port)
}

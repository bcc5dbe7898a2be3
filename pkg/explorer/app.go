// Package explorer is the application context of the graph explorer.
//
// An [App] is built once at startup from the loaded graph. It holds the
// frozen graph, the vis-network payload derived from it and the style
// controller that owns the selected color. The server, the terminal picker
// and the export command all receive the same *App instead of reaching for
// process-wide state.
package explorer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/arcview/pkg/cache"
	"github.com/matzehuels/arcview/pkg/graph"
	"github.com/matzehuels/arcview/pkg/io"
	"github.com/matzehuels/arcview/pkg/render/visjs"
	"github.com/matzehuels/arcview/pkg/style"
)

// Options configures an App.
type Options struct {
	// Color is the initial node color. The zero value is Red.
	Color style.Color

	// Network sizes the rendering surface. Empty fields take
	// [visjs.DefaultOptions] values.
	Network visjs.NetworkOptions

	// Logger is used by the controller. Nil uses [log.Default].
	Logger *log.Logger
}

// App is the explorer's application context.
type App struct {
	Graph      *graph.Graph
	Controller *style.Controller
	Logger     *log.Logger

	payload     visjs.Payload
	payloadJSON []byte
	etag        string
	network     visjs.NetworkOptions
}

// New builds the App for g. The payload is computed and encoded here, once.
func New(g *graph.Graph, opts Options) (*App, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	if !opts.Color.Valid() {
		return nil, fmt.Errorf("initial color: %v is not selectable", opts.Color)
	}

	network := visjs.DefaultOptions()
	if opts.Network.Height != "" {
		network.Height = opts.Network.Height
	}
	if opts.Network.Width != "" {
		network.Width = opts.Network.Width
	}

	payload := visjs.ToPayload(g)
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}

	return &App{
		Graph:       g,
		Controller:  style.NewController(opts.Color, logger),
		Logger:      logger,
		payload:     payload,
		payloadJSON: data,
		etag:        cache.ETag(data),
		network:     network,
	}, nil
}

// Load reads the index and arcs files and builds the App.
func Load(ctx context.Context, indexPath, arcsPath string, gopts graph.Options, opts Options) (*App, error) {
	g, err := io.LoadContext(ctx, indexPath, arcsPath, gopts)
	if err != nil {
		return nil, err
	}
	return New(g, opts)
}

// Payload returns the topology payload. Callers must not modify its slices.
func (a *App) Payload() visjs.Payload { return a.payload }

// PayloadJSON returns the encoded payload and its entity tag.
func (a *App) PayloadJSON() (data []byte, etag string) { return a.payloadJSON, a.etag }

// NetworkOptions returns the surface options with the current node color.
func (a *App) NetworkOptions() visjs.NetworkOptions {
	return a.network.WithNodeColor(a.Controller.Current().Nodes.Color)
}

// Stats summarizes the loaded graph.
type Stats struct {
	Vertices int    `json:"vertices"`
	Edges    int    `json:"edges"`
	Color    string `json:"color"`
}

// Stats returns vertex and edge counts plus the selected color.
func (a *App) Stats() Stats {
	return Stats{
		Vertices: a.Graph.VertexCount(),
		Edges:    a.Graph.EdgeCount(),
		Color:    a.Controller.Color().String(),
	}
}

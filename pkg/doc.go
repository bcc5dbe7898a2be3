// Package pkg holds the arcview libraries.
//
// # Overview
//
// arcview loads a directed graph from two whitespace-separated text files,
// serves it as an interactive vis-network view and lets any connected
// surface change the node color. The packages split along that flow:
//
//  1. [graph] and [io] - the graph model and its file loader
//  2. [visjs] - the render payload and network options sent to the browser
//  3. [style] - the node colors, style patches and the single-consumer
//     controller that turns selections into patches
//  4. [explorer] - the application context built once at startup
//  5. [server] - HTTP, WebSocket and metrics endpoints
//  6. [nodelink] and [render] - static Graphviz snapshots and format conversion
//  7. [walks] - the walk log stem plotter
//
// Supporting packages: [errors] (coded errors), [cache] (snapshot cache and
// ETags), [observability] (hooks and Prometheus metrics), [httputil] (client
// retries) and [buildinfo] (version stamping).
//
// # Data Flow
//
//	index + arcs files
//	        ↓ io.Load
//	  graph.Graph ──→ visjs.ToPayload ──→ GET /api/graph
//	        ↓
//	  explorer.App
//	        ↓
//	selection (page, POST, WebSocket, pick) ──→ style.Controller ──→ style.Patch
//	                                                     ↓
//	                                        WebSocket broadcast to every tab
//
// [graph]: github.com/matzehuels/arcview/pkg/graph
// [io]: github.com/matzehuels/arcview/pkg/io
// [visjs]: github.com/matzehuels/arcview/pkg/render/visjs
// [style]: github.com/matzehuels/arcview/pkg/style
// [explorer]: github.com/matzehuels/arcview/pkg/explorer
// [server]: github.com/matzehuels/arcview/pkg/server
// [nodelink]: github.com/matzehuels/arcview/pkg/render/nodelink
// [render]: github.com/matzehuels/arcview/pkg/render
// [walks]: github.com/matzehuels/arcview/pkg/walks
// [errors]: github.com/matzehuels/arcview/pkg/errors
// [cache]: github.com/matzehuels/arcview/pkg/cache
// [observability]: github.com/matzehuels/arcview/pkg/observability
// [httputil]: github.com/matzehuels/arcview/pkg/httputil
// [buildinfo]: github.com/matzehuels/arcview/pkg/buildinfo
package pkg

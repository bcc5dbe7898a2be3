// Package server serves the explorer to a browser.
//
// The page at / renders the graph with vis-network and offers the Red, Green
// and Blue radio control. Topology is fetched once from /api/graph; after
// that only style patches travel, pushed over a WebSocket at /ws:
//
//	server → client  {"type":"patch","patch":{"nodes":{"color":"#00ff00"}}}
//	client → server  {"type":"select","color":"Green"}
//
// Every selection, whether it arrives over the socket or through
// POST /api/style, is published to the app's [style.Controller]. The
// server's hub is subscribed to the controller and fans each resulting patch
// out to all connected clients.
//
// # Routes
//
//	GET  /               vis-network page
//	GET  /api/graph      topology payload (ETag)
//	GET  /api/options    network options with the current node color
//	GET  /api/style      current patch
//	POST /api/style      {"color": "Green"} → patch
//	GET  /ws             patch stream
//	GET  /snapshot.svg   Graphviz snapshot in the current color
//	GET  /healthz        vertex and edge counts
//	GET  /metrics        Prometheus exposition, when a gatherer is configured
//
// [Server.Listen] binds the configured address. [Server.Serve] runs the HTTP
// server and the controller loop together on that listener and shuts both
// down when its context ends.
package server

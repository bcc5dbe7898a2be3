// Package style owns the explorer's single mutable value: the selected node
// color.
//
// A [Controller] consumes color selections from one channel, one at a time.
// For every selection it builds a [Patch] of the form
//
//	{"nodes": {"color": "#00ff00"}}
//
// and hands it to its registered sinks. A patch replaces the prior node
// color wholesale. It never carries edge styling, positions or topology, so
// the payload from [github.com/matzehuels/arcview/pkg/render/visjs] stays
// untouched for the life of the process.
//
// Selections arrive from any number of surfaces (HTTP, WebSocket, the
// terminal picker) but are serialized through the controller's loop:
//
//	ctl := style.NewController(style.Red, logger)
//	ctl.Subscribe(hub)
//	go ctl.Run(ctx, ctl.Inbox())
//
//	patch, err := ctl.Select(ctx, style.Green)
package style

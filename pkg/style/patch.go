package style

import "context"

// NodeStyle is the node section of a patch.
type NodeStyle struct {
	Color string `json:"color"`
}

// Patch is the incremental style update applied on top of the rendered
// payload. It only ever carries the node color.
type Patch struct {
	Nodes NodeStyle `json:"nodes"`
}

// PatchFor builds the patch selecting c.
func PatchFor(c Color) Patch {
	return Patch{Nodes: NodeStyle{Color: c.Code()}}
}

// Sink receives every patch the controller produces.
type Sink interface {
	Emit(ctx context.Context, p Patch) error
}

// SinkFunc adapts a function to [Sink].
type SinkFunc func(ctx context.Context, p Patch) error

// Emit calls f.
func (f SinkFunc) Emit(ctx context.Context, p Patch) error { return f(ctx, p) }

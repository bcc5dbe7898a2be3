// Package observability provides hooks for metrics and tracing.
//
// Libraries emit events through the registered hooks without depending on a
// metrics backend. The defaults are no-ops; the serve command registers the
// Prometheus implementation from [NewPrometheus] at startup.
//
// # Usage
//
// Register hooks at application startup:
//
//	prom := observability.NewPrometheus(prometheus.NewRegistry())
//	observability.SetLoadHooks(prom)
//	observability.SetStyleHooks(prom)
//	observability.SetHTTPHooks(prom)
//
// Libraries call hooks to emit events:
//
//	observability.Load().OnLoadStart(ctx, indexPath, arcsPath)
//	// ... parse files ...
//	observability.Load().OnLoadComplete(ctx, vertices, edges, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Load Hooks
// =============================================================================

// LoadHooks receives events from graph loading.
type LoadHooks interface {
	OnLoadStart(ctx context.Context, indexPath, arcsPath string)
	OnLoadComplete(ctx context.Context, vertices, edges int, duration time.Duration, err error)
}

// =============================================================================
// Style Hooks
// =============================================================================

// StyleHooks receives events from the style controller.
type StyleHooks interface {
	// OnSelect records a selection event entering the controller.
	OnSelect(ctx context.Context, color string)

	// OnPatch records a patch delivered to the rendering surface.
	OnPatch(ctx context.Context, color string, duration time.Duration)

	// OnEmitError records a failed patch delivery.
	OnEmitError(ctx context.Context, err error)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the explorer server.
type HTTPHooks interface {
	// OnResponse records a served HTTP request.
	OnResponse(ctx context.Context, method, route string, statusCode int, duration time.Duration)

	// OnClientConnect records a new patch stream subscriber.
	OnClientConnect(ctx context.Context)

	// OnClientDisconnect records a patch stream subscriber leaving.
	OnClientDisconnect(ctx context.Context)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopLoadHooks is a no-op implementation of LoadHooks.
type NoopLoadHooks struct{}

func (NoopLoadHooks) OnLoadStart(context.Context, string, string)                    {}
func (NoopLoadHooks) OnLoadComplete(context.Context, int, int, time.Duration, error) {}

// NoopStyleHooks is a no-op implementation of StyleHooks.
type NoopStyleHooks struct{}

func (NoopStyleHooks) OnSelect(context.Context, string)               {}
func (NoopStyleHooks) OnPatch(context.Context, string, time.Duration) {}
func (NoopStyleHooks) OnEmitError(context.Context, error)             {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnClientConnect(context.Context)                                {}
func (NoopHTTPHooks) OnClientDisconnect(context.Context)                             {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	loadHooks  LoadHooks  = NoopLoadHooks{}
	styleHooks StyleHooks = NoopStyleHooks{}
	httpHooks  HTTPHooks  = NoopHTTPHooks{}
	hooksMu    sync.RWMutex
)

// SetLoadHooks registers custom load hooks.
// This should be called once at application startup before loading.
func SetLoadHooks(h LoadHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		loadHooks = h
	}
}

// SetStyleHooks registers custom style hooks.
func SetStyleHooks(h StyleHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		styleHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Load returns the registered load hooks.
func Load() LoadHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return loadHooks
}

// Style returns the registered style hooks.
func Style() StyleHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return styleHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	loadHooks = NoopLoadHooks{}
	styleHooks = NoopStyleHooks{}
	httpHooks = NoopHTTPHooks{}
}

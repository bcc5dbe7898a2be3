// Package visjs converts a [graph.Graph] into the payload consumed by the
// vis-network rendering surface.
//
// The payload carries topology plus fixed visual attributes only: every node
// is a "dot" of size 7 and every edge has width 2. All per-session visual
// change happens through style patches layered on top by the
// [github.com/matzehuels/arcview/pkg/style] controller, so the payload is
// computed once at startup and never regenerated:
//
//	p := visjs.ToPayload(g)
//	// {"nodes":[{"id":0,"label":"a","shape":"dot","size":7}, ...],
//	//  "edges":[{"id":"0_1","from":0,"to":1,"width":2}, ...]}
//
// [NetworkOptions] is the surface configuration a style patch targets.
package visjs

package io

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/arcview/pkg/graph"
	"github.com/matzehuels/arcview/pkg/render/visjs"
)

func TestWritePayload(t *testing.T) {
	g, err := graph.New(map[int]string{0: "a", 1: "b"}, []graph.Arc{{Source: 1, Target: 0}}, graph.Options{})
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := WritePayload(visjs.ToPayload(g), &buf); err != nil {
		t.Fatal(err)
	}

	if !bytes.Contains(buf.Bytes(), []byte("\n  \"nodes\"")) {
		t.Errorf("output not indented:\n%s", buf.String())
	}

	var got visjs.Payload
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if len(got.Nodes) != 2 || got.Nodes[1].Label != "b" {
		t.Errorf("nodes = %+v", got.Nodes)
	}
	if len(got.Edges) != 1 || got.Edges[0].ID != "1_0" {
		t.Errorf("edges = %+v", got.Edges)
	}
}

func TestExportPayload(t *testing.T) {
	index, arcs := writeFiles(t, "a 0\nb 1\nc 2\n", "0 1\n1 2\n")
	g, err := Load(index, arcs, graph.Options{})
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "payload.json")
	if err := ExportPayload(visjs.ToPayload(g), path); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var got visjs.Payload
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if len(got.Nodes) != 3 || len(got.Edges) != 2 {
		t.Errorf("got %d nodes, %d edges", len(got.Nodes), len(got.Edges))
	}
}

func TestExportPayloadBadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "payload.json")
	if err := ExportPayload(visjs.Payload{}, path); err == nil {
		t.Error("expected error for missing directory")
	}
}

package nodelink_test

import (
	"context"
	"fmt"

	"github.com/matzehuels/arcview/pkg/graph"
	"github.com/matzehuels/arcview/pkg/render/nodelink"
	"github.com/matzehuels/arcview/pkg/style"
)

func ExampleToDOT() {
	g, _ := graph.New(map[int]string{0: "a", 1: "b"}, []graph.Arc{{Source: 0, Target: 1}}, graph.Options{})

	dot := nodelink.ToDOT(g, nodelink.Options{Color: style.Green, Engine: "dot"})
	fmt.Print(dot)
	// Output:
	// digraph G {
	//   layout=dot;
	//   bgcolor="transparent";
	//   overlap=false;
	//   node [shape=circle, style=filled, label="", width=0.19, fixedsize=true, color="#00ff00", fillcolor="#00ff00", fontsize=10];
	//   edge [penwidth=2, color="#848484", arrowsize=0.6];
	//
	//   n0 [xlabel="a", tooltip="a"];
	//   n1 [xlabel="b", tooltip="b"];
	//
	//   n0 -> n1 [id="0_1"];
	// }
}

func ExampleRenderSVG() {
	g, _ := graph.New(map[int]string{0: "web", 1: "api"}, []graph.Arc{{Source: 0, Target: 1}}, graph.Options{})

	// Render to SVG (requires Graphviz)
	svg, err := nodelink.RenderSVG(context.Background(), nodelink.ToDOT(g, nodelink.Options{}))
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	fmt.Printf("Generated SVG (%d bytes)\n", len(svg))
	// Output varies based on Graphviz installation
}

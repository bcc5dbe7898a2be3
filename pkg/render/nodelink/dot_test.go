package nodelink

import (
	"strings"
	"testing"

	"github.com/matzehuels/arcview/pkg/errors"
	"github.com/matzehuels/arcview/pkg/graph"
	"github.com/matzehuels/arcview/pkg/style"
)

func testGraph(t *testing.T) *graph.Graph {
	t.Helper()
	g, err := graph.New(
		map[int]string{0: "a", 1: "b", 2: "c"},
		[]graph.Arc{{Source: 0, Target: 1}, {Source: 1, Target: 2}},
		graph.Options{},
	)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestToDOT_Basic(t *testing.T) {
	dot := ToDOT(testGraph(t), Options{})

	for _, want := range []string{
		"digraph G",
		"layout=neato;",
		`n0 [xlabel="a"`,
		`n2 [xlabel="c"`,
		`n0 -> n1 [id="0_1"];`,
		`n1 -> n2 [id="1_2"];`,
		"penwidth=2",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() output missing %q:\n%s", want, dot)
		}
	}
}

func TestToDOT_Color(t *testing.T) {
	tests := []struct {
		color style.Color
		code  string
	}{
		{style.Red, "#ff0000"},
		{style.Green, "#00ff00"},
		{style.Blue, "#0000ff"},
	}
	for _, tt := range tests {
		t.Run(tt.color.String(), func(t *testing.T) {
			dot := ToDOT(testGraph(t), Options{Color: tt.color})
			if !strings.Contains(dot, `fillcolor="`+tt.code+`"`) {
				t.Errorf("ToDOT() missing fill %s", tt.code)
			}
		})
	}
}

func TestToDOT_ColorOnlyChangesFill(t *testing.T) {
	g := testGraph(t)
	red := ToDOT(g, Options{Color: style.Red})
	green := ToDOT(g, Options{Color: style.Green})
	if strings.ReplaceAll(red, "#ff0000", "#00ff00") != green {
		t.Error("changing color altered more than the node fill")
	}
}

func TestToDOT_Detailed(t *testing.T) {
	dot := ToDOT(testGraph(t), Options{Detailed: true})
	if !strings.Contains(dot, `xlabel="b\n#1"`) {
		t.Errorf("detailed output missing id:\n%s", dot)
	}
}

func TestToDOT_Engine(t *testing.T) {
	dot := ToDOT(testGraph(t), Options{Engine: "dot"})
	if !strings.Contains(dot, "layout=dot;") {
		t.Error("engine not applied")
	}
}

func TestToDOT_QuotesLabels(t *testing.T) {
	g, err := graph.New(map[int]string{0: `say"hi"`}, nil, graph.Options{})
	if err != nil {
		t.Fatal(err)
	}
	dot := ToDOT(g, Options{})
	if !strings.Contains(dot, `xlabel="say\"hi\""`) {
		t.Errorf("label not escaped:\n%s", dot)
	}
}

func TestValidateEngine(t *testing.T) {
	for _, e := range append([]string{""}, Engines...) {
		if err := ValidateEngine(e); err != nil {
			t.Errorf("ValidateEngine(%q) = %v", e, err)
		}
	}
	if err := ValidateEngine("sfdp3d"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("ValidateEngine(sfdp3d) = %v, want INVALID_INPUT", err)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="62pt" height="116pt" viewBox="0.00 0.00 62.00 116.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.Contains(out, `viewBox="0 0 62.00 116.00"`) || strings.Contains(out, "62pt") {
		t.Errorf("normalizeViewBox() = %s", out)
	}
	if !strings.HasSuffix(out, "<g/></svg>") {
		t.Errorf("body changed: %s", out)
	}

	plain := []byte("<svg><g/></svg>")
	if string(normalizeViewBox(plain)) != string(plain) {
		t.Error("svg without viewBox was modified")
	}
}

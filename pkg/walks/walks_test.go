package walks

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/matzehuels/arcview/pkg/errors"
)

const sample = "0 3 3 7 2\n\n1 1 4 0 0\n-2 5\n9\n"

func TestReadLog(t *testing.T) {
	rows, err := ReadLog(strings.NewReader(sample), "dist.log")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 4 {
		t.Fatalf("rows = %d, want 4 (blank line skipped)", len(rows))
	}
	if rows[1].Line != 3 {
		t.Errorf("rows[1].Line = %d, want 3", rows[1].Line)
	}
	if got := rows[2].Values; len(got) != 2 || got[0] != -2 || got[1] != 5 {
		t.Errorf("rows[2] = %v", got)
	}
}

func TestReadLogParseError(t *testing.T) {
	_, err := ReadLog(strings.NewReader("1 2\n3 x 4\n"), "dist.log")
	if !errors.Is(err, errors.ErrCodeParse) {
		t.Fatalf("err = %v, want PARSE_ERROR", err)
	}
	file, line, ok := errors.Location(err)
	if !ok || file != "dist.log" || line != 2 {
		t.Errorf("Location() = %q, %d, %v", file, line, ok)
	}
}

func TestLoadLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dist.log")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}
	rows, err := LoadLog(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 4 {
		t.Errorf("rows = %d", len(rows))
	}

	if _, err := LoadLog(filepath.Join(t.TempDir(), "missing.log")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file err = %v", err)
	}
}

func TestSelect(t *testing.T) {
	rows, _ := ReadLog(strings.NewReader(sample), "dist.log")

	tests := []struct {
		step    int
		want    []int
		wantErr bool
	}{
		{0, []int{0, 3, 3, 7, 2}, false},
		{1, []int{1, 1, 4, 0, 0}, false},
		{3, []int{9}, false},
		{4, nil, true},
		{-1, nil, true},
	}
	for _, tt := range tests {
		w, err := Select(rows, tt.step)
		if tt.wantErr {
			if !errors.Is(err, errors.ErrCodeLookup) {
				t.Errorf("Select(%d) err = %v, want LOOKUP_ERROR", tt.step, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("Select(%d): %v", tt.step, err)
		}
		if w.Step != tt.step || len(w.Values) != len(tt.want) {
			t.Fatalf("Select(%d) = %+v", tt.step, w)
		}
		for i := range tt.want {
			if w.Values[i] != tt.want[i] {
				t.Errorf("Select(%d)[%d] = %d, want %d", tt.step, i, w.Values[i], tt.want[i])
			}
		}
	}
}

func TestBounds(t *testing.T) {
	tests := []struct {
		values []int
		lo, hi int
	}{
		{[]int{3, 7, 2}, 0, 7},
		{[]int{-4, -1}, -4, 0},
		{[]int{-2, 5}, -2, 5},
		{nil, 0, 0},
	}
	for _, tt := range tests {
		lo, hi := Walk{Values: tt.values}.Bounds()
		if lo != tt.lo || hi != tt.hi {
			t.Errorf("Bounds(%v) = %d, %d; want %d, %d", tt.values, lo, hi, tt.lo, tt.hi)
		}
	}
}

func TestRenderSVG(t *testing.T) {
	w := Walk{Step: 1, Line: 3, Values: []int{0, 3, 3, 7, 2}}
	svg := string(RenderSVG(w, WithColor("#00ff00")))

	if !strings.HasPrefix(svg, "<svg ") || !strings.HasSuffix(svg, "</svg>\n") {
		t.Fatal("not an svg document")
	}
	if n := strings.Count(svg, "<circle "); n != 5 {
		t.Errorf("markers = %d, want 5", n)
	}
	if n := strings.Count(svg, `stroke="#00ff00" stroke-width="1.5"`); n != 5 {
		t.Errorf("stems = %d, want 5", n)
	}
	if !strings.Contains(svg, `class="baseline"`) {
		t.Error("missing baseline")
	}
	if !strings.Contains(svg, "walk 1 (line 3)") {
		t.Error("missing default title")
	}
	for i, v := range w.Values {
		if !strings.Contains(svg, "<title>"+strconv.Itoa(i)+": "+strconv.Itoa(v)+"</title>") {
			t.Errorf("missing marker for position %d", i)
		}
	}
}

func TestRenderSVGStemsStartAtBaseline(t *testing.T) {
	// Values span [-2, 2] on the default 720x400 canvas, so the baseline
	// sits at y=200 between the top (40) and bottom (360) margins.
	svg := string(RenderSVG(Walk{Values: []int{-2, 2}}))
	for _, want := range []string{
		`<line x1="56.0" y1="200.0" x2="56.0" y2="360.0" stroke="#1f77b4"`,
		`<line x1="696.0" y1="200.0" x2="696.0" y2="40.0" stroke="#1f77b4"`,
		`<line class="baseline" x1="56.0" y1="200.0" x2="696.0" y2="200.0"`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("missing %s", want)
		}
	}
}

func TestRenderSVGOptions(t *testing.T) {
	svg := string(RenderSVG(Walk{Values: []int{1, 2}},
		WithSize(400, 300), WithBaseline("#333333")))

	if !strings.Contains(svg, `width="400" height="300"`) {
		t.Error("size not applied")
	}
	if !strings.Contains(svg, `stroke="#333333" stroke-width="1.5"/>`) {
		t.Error("baseline color not applied")
	}
	if strings.Contains(svg, "#d62728") {
		t.Error("default baseline color still present")
	}
}

func TestRenderSVGEscapesTitle(t *testing.T) {
	svg := string(RenderSVG(Walk{Values: []int{1}}, WithTitle("<walk & co>")))
	if !strings.Contains(svg, "&lt;walk &amp; co&gt;") {
		t.Error("title not escaped")
	}
}

func TestTicks(t *testing.T) {
	tests := []struct {
		lo, hi int
		want   []int
	}{
		{0, 0, []int{0}},
		{0, 1, []int{0, 1}},
		{0, 4, []int{0, 1, 2, 3, 4}},
		{-3, 7, []int{-3, -1, 1, 3, 5, 7}},
	}
	for _, tt := range tests {
		got := ticks(tt.lo, tt.hi)
		if len(got) != len(tt.want) {
			t.Errorf("ticks(%d, %d) = %v, want %v", tt.lo, tt.hi, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("ticks(%d, %d) = %v, want %v", tt.lo, tt.hi, got, tt.want)
				break
			}
		}
	}
}

func TestRenderText(t *testing.T) {
	w := Walk{Values: []int{0, 3, -1, 7}}
	out := RenderText(w, 20)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("lines = %d, want 4:\n%s", len(lines), out)
	}
	for i, l := range lines {
		if strings.Count(l, "●") != 1 {
			t.Errorf("line %d has %d markers: %q", i, strings.Count(l, "●"), l)
		}
		if !strings.HasSuffix(l, strconv.Itoa(w.Values[i])) {
			t.Errorf("line %d = %q, want value suffix %d", i, l, w.Values[i])
		}
	}
}

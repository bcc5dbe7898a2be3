package walks

import (
	"bytes"
	"fmt"
	"html"
	"strconv"
)

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	width, height float64
	title         string
	stemColor     string
	baseColor     string
}

func WithSize(width, height float64) SVGOption {
	return func(r *svgRenderer) { r.width, r.height = width, height }
}
func WithTitle(title string) SVGOption    { return func(r *svgRenderer) { r.title = title } }
func WithColor(color string) SVGOption    { return func(r *svgRenderer) { r.stemColor = color } }
func WithBaseline(color string) SVGOption { return func(r *svgRenderer) { r.baseColor = color } }

const (
	marginLeft   = 56.0
	marginRight  = 24.0
	marginTop    = 40.0
	marginBottom = 40.0
	markerRadius = 3.5
)

// RenderSVG draws w as a stem plot: one vertical stem from the zero baseline
// to each value, capped by a marker, at x = position.
func RenderSVG(w Walk, opts ...SVGOption) []byte {
	r := svgRenderer{
		width:     720,
		height:    400,
		stemColor: "#1f77b4",
		baseColor: "#d62728",
	}
	for _, o := range opts {
		o(&r)
	}
	if r.title == "" {
		r.title = fmt.Sprintf("walk %d (line %d)", w.Step, w.Line)
	}

	lo, hi := w.Bounds()
	if lo == hi {
		hi = lo + 1
	}
	plotW := r.width - marginLeft - marginRight
	plotH := r.height - marginTop - marginBottom

	n := len(w.Values)
	xOf := func(i int) float64 {
		if n <= 1 {
			return marginLeft + plotW/2
		}
		return marginLeft + plotW*float64(i)/float64(n-1)
	}
	yOf := func(v int) float64 {
		return marginTop + plotH*float64(hi-v)/float64(hi-lo)
	}
	base := yOf(0)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.0f %.0f" width="%.0f" height="%.0f">`+"\n",
		r.width, r.height, r.width, r.height)
	buf.WriteString(`  <rect width="100%" height="100%" fill="white"/>` + "\n")
	fmt.Fprintf(&buf, `  <text x="%.1f" y="%.1f" font-family="sans-serif" font-size="14" text-anchor="middle">%s</text>`+"\n",
		r.width/2, marginTop/2+5, html.EscapeString(r.title))

	renderAxes(&buf, r, lo, hi, n, xOf, yOf)

	buf.WriteString(`  <g class="stems">` + "\n")
	for i, v := range w.Values {
		x, y := xOf(i), yOf(v)
		fmt.Fprintf(&buf, `    <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="1.5"/>`+"\n",
			x, base, x, y, r.stemColor)
		fmt.Fprintf(&buf, `    <circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"><title>%d: %d</title></circle>`+"\n",
			x, y, markerRadius, r.stemColor, i, v)
	}
	buf.WriteString("  </g>\n")

	fmt.Fprintf(&buf, `  <line class="baseline" x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="1.5"/>`+"\n",
		marginLeft, base, marginLeft+plotW, base, r.baseColor)

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderAxes(buf *bytes.Buffer, r svgRenderer, lo, hi, n int, xOf func(int) float64, yOf func(int) float64) {
	left, right := marginLeft, r.width-marginRight
	top, bottom := marginTop, r.height-marginBottom

	buf.WriteString(`  <g class="axes" stroke="#444" font-family="sans-serif" font-size="11">` + "\n")
	fmt.Fprintf(buf, `    <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>`+"\n", left, top, left, bottom)
	fmt.Fprintf(buf, `    <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>`+"\n", left, bottom, right, bottom)

	for _, v := range ticks(lo, hi) {
		y := yOf(v)
		fmt.Fprintf(buf, `    <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>`+"\n", left-4, y, left, y)
		fmt.Fprintf(buf, `    <text x="%.1f" y="%.1f" stroke="none" text-anchor="end">%d</text>`+"\n", left-6, y+4, v)
	}
	if n > 0 {
		for _, i := range ticks(0, n-1) {
			x := xOf(i)
			fmt.Fprintf(buf, `    <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>`+"\n", x, bottom, x, bottom+4)
			fmt.Fprintf(buf, `    <text x="%.1f" y="%.1f" stroke="none" text-anchor="middle">%s</text>`+"\n", x, bottom+16, strconv.Itoa(i))
		}
	}
	buf.WriteString("  </g>\n")
}

// ticks picks at most six evenly spaced integers spanning [lo, hi],
// always including both ends.
func ticks(lo, hi int) []int {
	if hi <= lo {
		return []int{lo}
	}
	step := max(1, (hi-lo+4)/5)
	var out []int
	for v := lo; v < hi; v += step {
		out = append(out, v)
	}
	if len(out) > 0 && hi-out[len(out)-1] < step/2 {
		out = out[:len(out)-1]
	}
	return append(out, hi)
}

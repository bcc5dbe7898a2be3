package walks

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	stemStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	markerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	axisStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	baseStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
)

// RenderText draws w as a terminal stem plot turned on its side: one row per
// position, with the stem running from the zero column to the value.
// width is the number of plot columns; values below 8 use 40.
func RenderText(w Walk, width int) string {
	if width < 8 {
		width = 40
	}
	lo, hi := w.Bounds()
	if lo == hi {
		hi = lo + 1
	}
	col := func(v int) int {
		return (v - lo) * (width - 1) / (hi - lo)
	}
	zero := col(0)
	idxWidth := len(fmt.Sprint(max(len(w.Values)-1, 0)))

	var b strings.Builder
	for i, v := range w.Values {
		c := col(v)
		row := make([]string, width)
		for j := range row {
			row[j] = " "
		}
		from, to := min(zero, c), max(zero, c)
		for j := from; j <= to; j++ {
			row[j] = stemStyle.Render("─")
		}
		row[zero] = baseStyle.Render("│")
		row[c] = markerStyle.Render("●")

		fmt.Fprintf(&b, "%s %s%s %s\n",
			axisStyle.Render(fmt.Sprintf("%*d", idxWidth, i)),
			axisStyle.Render("┤"),
			strings.Join(row, ""),
			valueStyle.Render(fmt.Sprint(v)))
	}
	return b.String()
}

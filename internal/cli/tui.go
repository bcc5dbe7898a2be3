package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/arcview/pkg/errors"
	"github.com/matzehuels/arcview/pkg/style"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// ColorPickerModel - Interactive color selection
// =============================================================================

// pickResultMsg carries the outcome of one applied selection.
type pickResultMsg struct {
	color style.Color
	patch style.Patch
	err   error
}

// ColorPickerModel is the bubbletea model for the node color picker.
// Enter applies the highlighted color and keeps the picker open.
type ColorPickerModel struct {
	Colors  []style.Color
	Cursor  int
	Current style.Color
	Last    *style.Patch
	Err     error
	Applied int

	apply selectFunc
	busy  bool
}

// NewColorPickerModel creates a picker with the cursor on current.
func NewColorPickerModel(current style.Color, apply selectFunc) ColorPickerModel {
	m := ColorPickerModel{
		Colors:  style.Colors,
		Current: current,
		apply:   apply,
	}
	for i, col := range m.Colors {
		if col == current {
			m.Cursor = i
		}
	}
	return m
}

func (m ColorPickerModel) Init() tea.Cmd {
	return nil
}

func (m ColorPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch key := msg.String(); key {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Colors)-1 {
				m.Cursor++
			}
		case "1", "2", "3":
			if i := int(key[0] - '1'); i < len(m.Colors) {
				m.Cursor = i
			}
		case "enter", " ":
			if m.busy {
				return m, nil
			}
			m.busy = true
			col, apply := m.Colors[m.Cursor], m.apply
			return m, func() tea.Msg {
				patch, err := apply(col)
				return pickResultMsg{color: col, patch: patch, err: err}
			}
		}
	case pickResultMsg:
		m.busy = false
		if msg.err != nil {
			m.Err = msg.err
			return m, nil
		}
		m.Err = nil
		m.Current = msg.color
		m.Last = &msg.patch
		m.Applied++
	}
	return m, nil
}

func (m ColorPickerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Node Color"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ apply  q quit"))
	b.WriteString("\n\n")

	for i, col := range m.Colors {
		cursor := "  "
		nameStyle := listNormalStyle
		if i == m.Cursor {
			cursor = "▸ "
			nameStyle = listSelectedStyle
		}
		line := cursor + swatch(col) + " " + nameStyle.Render(fmt.Sprintf("%-6s", col.String())) +
			" " + listDimStyle.Render(col.Code())
		if col == m.Current {
			line += " " + styleIconSuccess.Render(iconSuccess)
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n")
	switch {
	case m.busy:
		b.WriteString(listDimStyle.Render("applying..."))
	case m.Err != nil:
		b.WriteString(styleIconError.Render(iconError) + " " + errors.UserMessage(m.Err))
	case m.Last != nil:
		data, _ := json.Marshal(m.Last)
		b.WriteString(listDimStyle.Render("patch " + string(data)))
	}
	b.WriteString("\n")
	return b.String()
}

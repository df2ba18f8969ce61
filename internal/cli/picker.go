package cli

import (
	"fmt"
	"os"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/canvaskit/canvashtml/pkg/errors"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// canvasListModel is the bubbletea model for interactive canvas file selection.
type canvasListModel struct {
	Files    []string
	Cursor   int
	Selected string
}

func newCanvasListModel(files []string) canvasListModel {
	return canvasListModel{Files: files}
}

func (m canvasListModel) Init() tea.Cmd {
	return nil
}

func (m canvasListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Files)-1 {
				m.Cursor++
			}
		case "enter":
			m.Selected = m.Files[m.Cursor]
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m canvasListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Canvas File"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	for i, f := range m.Files {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		line := cursor + f
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Files))))
	return b.String()
}

// findCanvasFiles lists the .canvas files directly under dir, sorted by name.
func findCanvasFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), canvasExt) {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

// pickCanvasFile selects a canvas file from dir. A single match is used
// directly; multiple matches open an interactive list.
func pickCanvasFile(dir string) (string, error) {
	files, err := findCanvasFiles(dir)
	if err != nil {
		return "", err
	}
	switch len(files) {
	case 0:
		return "", errors.New(errors.ErrCodeFileNotFound, "no %s files found in %s", canvasExt, dir)
	case 1:
		printInfo("Using %s", files[0])
		return files[0], nil
	}

	model := newCanvasListModel(files)
	p := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	final, err := p.Run()
	if err != nil {
		return "", err
	}

	m, ok := final.(canvasListModel)
	if !ok || m.Selected == "" {
		return "", errors.New(errors.ErrCodeInvalidInput, "no canvas file selected")
	}
	return m.Selected, nil
}

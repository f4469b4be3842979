// Command example is a minimal terminal program exercising the
// controller package: a single scrollable, word-wrapped multi-line
// input field. Grounded on the teacher's adapter-bubbletea/example/main.go
// bubbletea harness.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rjsamson/tbuffer/controller"
)

var (
	borderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
	statusStyle = lipgloss.NewStyle().Faint(true)
)

type model struct {
	ctrl   *controller.Controller
	width  int
	height int
}

func newModel() model {
	caps := controller.DefaultHostCapabilities()
	return model{ctrl: controller.New("", 0, caps)}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.ctrl.SetViewport(controller.Viewport{Width: msg.Width - 4, Height: msg.Height - 4})
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyCtrlX:
			m.ctrl.OpenInExternalEditor("")
			return m, nil
		}
		m.ctrl.HandleInput(msg)
		return m, nil
	}
	return m, nil
}

func (m model) View() string {
	body := ""
	for _, line := range m.ctrl.ViewportLines() {
		body += line + "\n"
	}
	status := statusStyle.Render(fmt.Sprintf(
		"cursor %+v  scroll %d  ctrl+x: external editor  ctrl+z/y: undo/redo  ctrl+c: quit",
		m.ctrl.Cursor(), m.ctrl.ScrollRow(),
	))
	return borderStyle.Width(m.width - 2).Render(body) + "\n" + status
}

func main() {
	p := tea.NewProgram(newModel(), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "tbuffer:", err)
		os.Exit(1)
	}
}

package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	overlay "github.com/rmhubbert/bubbletea-overlay"
)

// View satisfies tea.Model.
func (m Model) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}

	if m.showHelp {
		help := helpBox{}
		background := mainView{model: &m}
		o := overlay.New(
			help,
			background,
			overlay.Center,
			overlay.Center,
			0,
			0,
		)
		return o.View()
	}

	return m.renderFull()
}

func (m Model) renderFull() string {
	header := m.renderHeader()
	content := m.renderContent()
	status := m.renderStatus()

	return lipgloss.JoinVertical(lipgloss.Left, header, content, status)
}

func (m Model) renderHeader() string {
	return headerStyle.Width(m.width).Render(fmt.Sprintf("pmemblockview — %s", pathStyle.Render(m.poolPath)))
}

func (m Model) renderContent() string {
	listBox := paneStyle
	detailBox := paneStyle
	if m.focusedPane == ChunkPane {
		listBox = activePaneStyle
	} else {
		detailBox = activePaneStyle
	}

	left := listBox.Render(m.chunks.View())
	right := detailBox.Render(m.detail.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func (m Model) renderStatus() string {
	filter := "all"
	if m.usedOnly {
		filter = "used-only"
	}
	msg := m.statusMessage
	if msg == "" {
		msg = "? for help"
	}
	return statusStyle.Width(m.width).Render(fmt.Sprintf("%s  |  filter: %s", msg, filter))
}

// mainView wraps the root Model for use as the overlay background: its
// Update is a no-op because the real Update lives on Model itself, and
// the overlay only ever calls View on it.
type mainView struct {
	model *Model
}

func (v mainView) Init() tea.Cmd { return nil }

func (v mainView) Update(msg tea.Msg) (tea.Model, tea.Cmd) { return v, nil }

func (v mainView) View() string {
	return v.model.renderFull()
}

// helpBox is the foreground content shown by the '?' overlay.
type helpBox struct{}

func (h helpBox) Init() tea.Cmd { return nil }

func (h helpBox) Update(msg tea.Msg) (tea.Model, tea.Cmd) { return h, nil }

func (h helpBox) View() string {
	lines := []string{
		helpTitleStyle.Render("pmemblockview help"),
		"",
		helpLine("↑/k ↓/j", "move selection"),
		helpLine("pgup/pgdn", "page through chunks"),
		helpLine("g / G", "first / last chunk"),
		helpLine("tab", "switch focus"),
		helpLine("u", "toggle used-only filter"),
		helpLine("y", "copy selected chunk's offset"),
		helpLine("r", "reread pool from disk"),
		helpLine("?", "toggle this help"),
		helpLine("q", "quit"),
	}
	body := ""
	for i, l := range lines {
		if i > 0 {
			body += "\n"
		}
		body += l
	}
	return helpBoxStyle.Render(body)
}

func helpLine(k, desc string) string {
	return fmt.Sprintf("  %s  %s", helpKeyStyle.Render(k), helpStyle.Render(desc))
}

package main

import (
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kilnsys/pmemblock/cmd/pmemblockview/logger"
)

const (
	headerHeight = 3
	statusHeight = 2
)

// Update satisfies tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.chunks, cmd = m.chunks.Update(msg)
	return m, cmd
}

// layout resizes the list and viewport to fit the current terminal size,
// split roughly 40/60 between the chunk list and the detail pane.
func (m *Model) layout() {
	contentHeight := m.height - headerHeight - statusHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	listWidth := m.width * 2 / 5
	detailWidth := m.width - listWidth

	m.chunks.SetSize(listWidth, contentHeight)
	m.detail.Width = detailWidth
	m.detail.Height = contentHeight
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.Tab):
		if m.focusedPane == ChunkPane {
			m.focusedPane = DetailPane
		} else {
			m.focusedPane = ChunkPane
		}
		return m, nil

	case key.Matches(msg, m.keys.UsedOnly):
		m.usedOnly = !m.usedOnly
		m.reload()
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		m.reload()
		m.statusMessage = "reloaded"
		return m, nil

	case key.Matches(msg, m.keys.Copy):
		if item, ok := m.chunks.SelectedItem().(chunkRow); ok {
			off := offsetString(m.pool, item)
			if err := clipboard.WriteAll(off); err != nil {
				logger.Warn("clipboard write failed", "error", err)
				m.statusMessage = "copy failed: " + err.Error()
			} else {
				m.statusMessage = "copied " + off
			}
		}
		return m, nil
	}

	if m.focusedPane == ChunkPane {
		var cmd tea.Cmd
		m.chunks, cmd = m.chunks.Update(msg)
		m.refreshDetail()
		return m, cmd
	}

	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

package main

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kilnsys/pmemblock/block"
	"github.com/kilnsys/pmemblock/cmd/pmemblockview/logger"
	"github.com/kilnsys/pmemblock/pool"
)

// Pane identifies which half of the split view has keyboard focus.
type Pane int

const (
	ChunkPane Pane = iota
	DetailPane
)

// Model is the pmemblockview TUI's root state.
type Model struct {
	poolPath string
	pool     *pool.Pool

	chunks   list.Model
	detail   viewport.Model
	keys     KeyMap
	usedOnly bool

	focusedPane Pane
	width       int
	height      int

	showHelp      bool
	statusMessage string

	err error
}

// NewModel opens poolPath and builds the initial chunk list.
func NewModel(poolPath string) Model {
	m := Model{
		poolPath: poolPath,
		keys:     DefaultKeyMap(),
	}

	p, err := pool.Open(poolPath)
	if err != nil {
		m.err = fmt.Errorf("opening pool: %w", err)
		return m
	}
	m.pool = p

	delegate := list.NewDefaultDelegate()
	m.chunks = list.New(nil, delegate, 0, 0)
	m.chunks.Title = "Chunks"
	m.chunks.SetShowStatusBar(false)
	m.chunks.SetShowHelp(false)

	m.detail = viewport.New(0, 0)

	m.reload()
	return m
}

// reload re-walks the pool's chunk headers and rebuilds the list. Useful
// after an external process has mutated the pool file (the 'r' key).
func (m *Model) reload() {
	if m.pool == nil {
		return
	}
	rows := walkChunks(m.pool)

	items := make([]list.Item, 0, len(rows))
	for _, r := range rows {
		if m.usedOnly && r.Header.Type == block.ChunkTypeFree {
			continue
		}
		items = append(items, r)
	}
	m.chunks.SetItems(items)
	m.refreshDetail()
}

func (m *Model) refreshDetail() {
	item, ok := m.chunks.SelectedItem().(chunkRow)
	if !ok {
		m.detail.SetContent("(no chunk selected)")
		return
	}
	m.detail.SetContent(detailText(m.pool, item))
}

// Close releases the underlying pool mapping.
func (m Model) Close() error {
	if m.pool == nil {
		return nil
	}
	return m.pool.Close()
}

// Init satisfies tea.Model.
func (m Model) Init() tea.Cmd {
	logger.Info("pmemblockview started", "pool", m.poolPath)
	return nil
}

package preview

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Update handles incoming messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		bodyHeight := max(m.height-lipgloss.Height(m.renderHeader())-lipgloss.Height(m.renderFooter()), 1)
		if !m.ready {
			m.viewport = viewport.New(m.width, bodyHeight)
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = bodyHeight
		}
		m.syncContent(false)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	// Ticks stop once the reload finished.
	case spinner.TickMsg:
		if !m.reloading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case pagesLoadedMsg:
		m.reloading = false
		m.err = nil
		m.pages = msg.pages
		if m.current >= len(m.pages) {
			m.current = max(len(m.pages)-1, 0)
		}
		m.syncContent(false)
		return m, nil

	case loadErrorMsg:
		m.reloading = false
		m.err = msg.err
		return m, nil
	}

	if m.ready {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return m, tea.Quit

	case "tab", "right", "l":
		if len(m.pages) > 0 {
			m.current = (m.current + 1) % len(m.pages)
			m.syncContent(true)
		}
		return m, nil

	case "shift+tab", "left", "h":
		if len(m.pages) > 0 {
			m.current = (m.current - 1 + len(m.pages)) % len(m.pages)
			m.syncContent(true)
		}
		return m, nil

	case "r":
		if m.loader == nil || m.reloading {
			return m, nil
		}
		m.reloading = true
		return m, tea.Batch(loadCmd(m.loader), m.spinner.Tick)
	}

	if m.ready {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

// syncContent puts the current page into the viewport. The scroll position
// is kept on reloads and reset when switching pages.
func (m *Model) syncContent(top bool) {
	if !m.ready {
		return
	}
	page, _ := m.Current()
	m.viewport.SetContent(page.Body)
	if top {
		m.viewport.GotoTop()
	}
}

func loadCmd(loader Loader) tea.Cmd {
	return func() tea.Msg {
		pages, err := loader()
		if err != nil {
			return loadErrorMsg{err: err}
		}
		return pagesLoadedMsg{pages: pages}
	}
}

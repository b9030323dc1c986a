package preview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the current model state
func (m Model) View() string {
	if !m.ready {
		return "Initializing preview..."
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.viewport.View(),
		m.renderFooter(),
	)
}

func (m Model) renderHeader() string {
	tabs := make([]string, 0, len(m.pages)+1)
	tabs = append(tabs, titleStyle.Render("gridtheme preview"))
	for i, page := range m.pages {
		if i == m.current {
			tabs = append(tabs, activeTabStyle.Render(page.Title))
			continue
		}
		tabs = append(tabs, tabStyle.Render(page.Title))
	}
	header := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	if m.width > 0 {
		return headerStyle.Width(m.width).Render(header)
	}
	return headerStyle.Render(header)
}

func (m Model) renderFooter() string {
	var parts []string
	if m.ready {
		parts = append(parts, fmt.Sprintf("%3.f%%", m.viewport.ScrollPercent()*100))
	}
	help := "↑/↓ scroll • tab next • shift+tab previous • q quit"
	if m.loader != nil {
		help = "↑/↓ scroll • tab next • shift+tab previous • r reload • q quit"
	}
	parts = append(parts, help)
	if m.reloading {
		parts = append(parts, m.spinner.View()+" reloading...")
	}

	footer := strings.Join(parts, "  ")
	if m.err != nil {
		footer = errorBannerStyle.Render("reload failed: "+m.err.Error()) + "\n" + footer
	}
	if m.width > 0 {
		return footerStyle.Width(m.width).Render(footer)
	}
	return footerStyle.Render(footer)
}

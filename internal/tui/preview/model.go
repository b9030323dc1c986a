// Package preview shows rendered grids in a scrollable terminal view.
package preview

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// Page is one rendered document, usually one grid.
type Page struct {
	Title string
	Body  string
}

// Loader renders the pages again, for example after theme files changed.
type Loader func() ([]Page, error)

// Model is the preview model.
type Model struct {
	pages   []Page
	current int
	loader  Loader

	viewport viewport.Model
	ready    bool

	spinner   spinner.Model
	reloading bool
	err       error

	width  int
	height int
}

// New creates a preview of pages. loader may be nil, which disables reloads.
func New(pages []Page, loader Loader) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	return Model{pages: pages, loader: loader, spinner: s}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Current returns the page on screen.
func (m Model) Current() (Page, bool) {
	if m.current < 0 || m.current >= len(m.pages) {
		return Page{}, false
	}
	return m.pages[m.current], true
}

// Err returns the last reload error.
func (m Model) Err() error {
	return m.err
}

// Run starts the preview on the alternate screen and blocks until it quits.
func Run(pages []Page, loader Loader, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	_, err := tea.NewProgram(New(pages, loader), opts...).Run()
	return err
}

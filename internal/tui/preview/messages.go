package preview

// pagesLoadedMsg carries freshly rendered pages.
type pagesLoadedMsg struct {
	pages []Page
}

// loadErrorMsg reports a failed reload.
type loadErrorMsg struct {
	err error
}

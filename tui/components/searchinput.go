package components

// SearchInput renders the search prompt. view is the text input's own
// rendering, cursor included.
func SearchInput(view string, width int) string {
	return RenderInfoBox("Search", []string{" " + view}, width, true)
}

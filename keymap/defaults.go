package keymap

// BrowsingHelp is the order actions are listed in the help overlay.
var BrowsingHelp = []Action{
	ActionMoveUp, ActionMoveDown, ActionPageUp, ActionPageDown, ActionTop, ActionBottom,
	ActionActivate, ActionBack, ActionHome, ActionOpenSearch, ActionRecommendations,
	ActionRefresh, ActionCopyLink, ActionDownload, ActionChannelLive, ActionHelp,
	ActionQuit, ActionForceQuit,
}

// SearchingHelp lists the actions shown while a query is being typed.
var SearchingHelp = []Action{ActionConfirm, ActionCancel, ActionBackspace, ActionForceQuit}

// NewDefaultRegistry returns the built-in bindings.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()

	r.Register(ContextGlobal, "ctrl+c", ActionForceQuit)

	r.Register(ContextBrowsing, "q", ActionQuit)
	r.RegisterMultiple(ContextBrowsing, []string{"k", "up"}, ActionMoveUp)
	r.RegisterMultiple(ContextBrowsing, []string{"j", "down"}, ActionMoveDown)
	r.RegisterMultiple(ContextBrowsing, []string{"pgup", "ctrl+u"}, ActionPageUp)
	r.RegisterMultiple(ContextBrowsing, []string{"pgdown", "ctrl+d"}, ActionPageDown)
	r.RegisterMultiple(ContextBrowsing, []string{"g", "home"}, ActionTop)
	r.RegisterMultiple(ContextBrowsing, []string{"G", "end"}, ActionBottom)
	r.RegisterMultiple(ContextBrowsing, []string{"l", "right", "enter"}, ActionActivate)
	r.RegisterMultiple(ContextBrowsing, []string{"b", "left", "backspace"}, ActionBack)
	r.Register(ContextBrowsing, "h", ActionHome)
	r.RegisterMultiple(ContextBrowsing, []string{"s", "/"}, ActionOpenSearch)
	r.Register(ContextBrowsing, "n", ActionRecommendations)
	r.Register(ContextBrowsing, "r", ActionRefresh)
	r.Register(ContextBrowsing, "y", ActionCopyLink)
	r.Register(ContextBrowsing, "d", ActionDownload)
	r.Register(ContextBrowsing, "c", ActionChannelLive)
	r.Register(ContextBrowsing, "?", ActionHelp)

	r.Register(ContextSearching, "enter", ActionConfirm)
	r.Register(ContextSearching, "esc", ActionCancel)
	r.Register(ContextSearching, "backspace", ActionBackspace)

	return r
}

// Package keymap resolves key presses to logical actions, per input state.
package keymap

// Action is a logical input event.
type Action string

// Context is the input state a binding applies in.
type Context string

const (
	ContextGlobal    Context = "global"    // checked after the active context
	ContextBrowsing  Context = "browsing"  // moving through pages
	ContextSearching Context = "searching" // editing a search query
)

const (
	ActionQuit      Action = "quit"
	ActionForceQuit Action = "force_quit"

	ActionMoveUp   Action = "move_up"
	ActionMoveDown Action = "move_down"
	ActionPageUp   Action = "page_up"
	ActionPageDown Action = "page_down"
	ActionTop      Action = "top"
	ActionBottom   Action = "bottom"

	ActionActivate        Action = "activate"
	ActionBack            Action = "back"
	ActionHome            Action = "home"
	ActionOpenSearch      Action = "open_search"
	ActionRecommendations Action = "recommendations"
	ActionRefresh         Action = "refresh"
	ActionCopyLink        Action = "copy_link"
	ActionDownload        Action = "download"
	ActionChannelLive     Action = "channel_live"
	ActionHelp            Action = "help"

	ActionConfirm   Action = "confirm"
	ActionCancel    Action = "cancel"
	ActionBackspace Action = "backspace"
)

// descriptions are the help texts, and double as the set of known actions.
var descriptions = map[Action]string{
	ActionQuit:            "quit",
	ActionForceQuit:       "quit immediately",
	ActionMoveUp:          "up",
	ActionMoveDown:        "down",
	ActionPageUp:          "half page up",
	ActionPageDown:        "half page down",
	ActionTop:             "first item",
	ActionBottom:          "last item",
	ActionActivate:        "open / play",
	ActionBack:            "back",
	ActionHome:            "home",
	ActionOpenSearch:      "search",
	ActionRecommendations: "recommendations",
	ActionRefresh:         "refresh",
	ActionCopyLink:        "copy link",
	ActionDownload:        "download",
	ActionChannelLive:     "channel live stream",
	ActionHelp:            "toggle help",
	ActionConfirm:         "run search",
	ActionCancel:          "cancel",
	ActionBackspace:       "delete char",
}

// Description returns the help text for an action.
func (a Action) Description() string {
	return descriptions[a]
}

// Known reports whether a is a defined action.
func (a Action) Known() bool {
	_, ok := descriptions[a]
	return ok
}

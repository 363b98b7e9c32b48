package keybinds

// Action represents a user action that can be triggered by a keybinding
type Action string

// Context represents the context in which keybindings are active
type Context string

const (
	ContextGlobal  Context = "global"  // Available everywhere
	ContextInput   Context = "input"   // Query input focused
	ContextArticle Context = "article" // Article viewport focused
)

const (
	// Global actions
	ActionQuit      Action = "quit"       // Quit application
	ActionQuitForce Action = "quit_force" // Force quit (ctrl+c)

	// Request actions
	ActionSubmit      Action = "submit"       // Send the current query
	ActionSwitchFocus Action = "switch_focus" // Toggle input/article focus

	// Article navigation
	ActionScrollUp   Action = "scroll_up"
	ActionScrollDown Action = "scroll_down"
	ActionPageUp     Action = "page_up"
	ActionPageDown   Action = "page_down"
	ActionGoToTop    Action = "go_to_top"
	ActionGoToBottom Action = "go_to_bottom"

	// Article operations
	ActionCopyURL     Action = "copy_url"     // Copy source URL to clipboard
	ActionSaveArticle Action = "save_article" // Export article as markdown
	ActionToggleHelp  Action = "toggle_help"  // Show/hide help
)

// Contexts lists every known context.
func Contexts() []Context {
	return []Context{ContextGlobal, ContextInput, ContextArticle}
}

// Actions lists every known action.
func Actions() []Action {
	return []Action{
		ActionQuit, ActionQuitForce,
		ActionSubmit, ActionSwitchFocus,
		ActionScrollUp, ActionScrollDown, ActionPageUp, ActionPageDown,
		ActionGoToTop, ActionGoToBottom,
		ActionCopyURL, ActionSaveArticle, ActionToggleHelp,
	}
}

// IsKnownAction reports whether a is one of the defined actions.
func IsKnownAction(a Action) bool {
	for _, known := range Actions() {
		if known == a {
			return true
		}
	}
	return false
}

// IsKnownContext reports whether c is one of the defined contexts.
func IsKnownContext(c Context) bool {
	for _, known := range Contexts() {
		if known == c {
			return true
		}
	}
	return false
}

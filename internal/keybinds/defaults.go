package keybinds

// NewDefaultRegistry creates a registry with all default keybindings
func NewDefaultRegistry() *Registry {
	r := NewRegistry()

	registerGlobalBindings(r)
	registerInputBindings(r)
	registerArticleBindings(r)

	return r
}

// registerGlobalBindings sets up bindings available in all modes
func registerGlobalBindings(r *Registry) {
	r.Register(ContextGlobal, "ctrl+c", ActionQuitForce)
	r.Register(ContextGlobal, "esc", ActionQuit)
	r.Register(ContextGlobal, "tab", ActionSwitchFocus)
	r.Register(ContextGlobal, "ctrl+s", ActionSaveArticle)
}

// registerInputBindings covers the query input. Printable keys are left
// unbound so they reach the text input.
func registerInputBindings(r *Registry) {
	r.Register(ContextInput, "enter", ActionSubmit)
	r.Register(ContextInput, "ctrl+y", ActionCopyURL)
	r.Register(ContextInput, "pgup", ActionPageUp)
	r.Register(ContextInput, "pgdown", ActionPageDown)
}

// registerArticleBindings covers the article viewport
func registerArticleBindings(r *Registry) {
	r.Register(ContextArticle, "enter", ActionSubmit)
	r.RegisterMultiple(ContextArticle, []string{"up", "k"}, ActionScrollUp)
	r.RegisterMultiple(ContextArticle, []string{"down", "j"}, ActionScrollDown)
	r.RegisterMultiple(ContextArticle, []string{"pgup", "ctrl+u"}, ActionPageUp)
	r.RegisterMultiple(ContextArticle, []string{"pgdown", "ctrl+d", " "}, ActionPageDown)
	r.RegisterMultiple(ContextArticle, []string{"g", "home"}, ActionGoToTop)
	r.RegisterMultiple(ContextArticle, []string{"G", "end"}, ActionGoToBottom)
	r.Register(ContextArticle, "y", ActionCopyURL)
	r.Register(ContextArticle, "?", ActionToggleHelp)
	r.Register(ContextArticle, "q", ActionQuit)
}

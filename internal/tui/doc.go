/*
Package tui implements the terminal user interface for MetaWrite.

# Architecture

The TUI follows the Bubble Tea Model-Update-View pattern:
  - model.go: Model struct, message types, Update and View
  - keys.go: keyboard input routed through the keybinds.Registry
  - actions.go: side effects (generation request, clipboard, export)
  - render.go: styles and rendering of the request states

# Request lifecycle

The Model does not own the request state. It drives a panel.Panel:
submitting calls Panel.Begin synchronously, so the Loading view appears on
the same frame, then runs Panel.Run inside a tea.Cmd goroutine. When that
command returns, requestDoneMsg makes the Model re-read the panel state.
A newer submit cancels the older request; the older completion is
discarded by the panel and only triggers a redundant refresh here.

# Focus

Two areas take focus: the query input and the article viewport. Keys are
matched in the keybinds context of the focused area first, then global.
Unmatched keys in the input go to the text input, so printable characters
are never swallowed by bindings.
*/
package tui

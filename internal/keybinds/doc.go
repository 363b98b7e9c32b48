/*
Package keybinds provides customizable keyboard binding management for the
MetaWrite terminal client.

# Key Concepts

Contexts:
  - Global: bindings available everywhere (quit, force quit)
  - Input: the query text input has focus
  - Article: the generated article viewport has focus

A key bound in a specific context shadows the same key in the global
context.

Actions are string constants (ActionSubmit, ActionCopyURL, ...). The same
action may be reachable from several keys.

# Configuration

Users override defaults in ~/.metawrite/keybinds.jsonc. The file is JSON
with comments allowed; each section maps an action to a comma separated
list of keys:

	{
	  // submit with ctrl+g instead of enter
	  "input": { "submit": "ctrl+g" },
	  "article": { "copy_url": "c,y" }
	}

Overriding an action replaces every default key for that action in that
context. Unknown actions and contexts are rejected.
*/
package keybinds

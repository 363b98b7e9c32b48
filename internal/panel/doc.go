/*
Package panel implements the RequestPanel: the query being edited and the
state of the one request that may be in flight.

# States

RequestState is a closed set of variants, exactly one active at a time:

	Idle -> Loading -> Succeeded(Article)
	                -> Failed(Message)
	Succeeded | Failed -> Loading
	Loading -> Loading              (a newer submit supersedes the old one)

Begin performs the transition to Loading synchronously, before any network
work, and clears the previous Article or error. Complete performs the final
transition; it never leaves the panel in Loading.

# Ordering

Every Begin hands out a Ticket with an increasing sequence number and cancels
the context of the ticket it supersedes. Only the latest ticket may complete,
so a slow response that arrives after a newer submit is dropped instead of
overwriting the newer state.

# Concurrency

Panel is safe for concurrent use. The TUI calls Begin on its event loop and
Run inside a tea.Cmd goroutine; the CLI calls Submit and blocks.
*/
package panel

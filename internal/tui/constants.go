package tui

import "time"

// UI Layout Constants

const (
	// HeaderLines is the title line plus a blank line
	HeaderLines = 2

	// InputBoxLines is the bordered query input (border + line + border)
	InputBoxLines = 3

	// StatusBarLines is the footer
	StatusBarLines = 1

	// ResultHeaderLines are the "Articolo Generato" and source lines plus a blank line
	ResultHeaderLines = 3

	// ViewportBorderWidth is the width consumed by the result box borders
	ViewportBorderWidth = 2

	// ViewportPaddingHorizontal is the result box padding (left + right)
	ViewportPaddingHorizontal = 2

	// MinViewportHeight keeps the article readable on tiny terminals
	MinViewportHeight = 3

	// MinContentWidth is the narrowest wrap width
	MinContentWidth = 20

	// StatusMaxLength truncates footer messages
	StatusMaxLength = 100

	// StatusTimeout clears status messages after a while
	StatusTimeout = 4 * time.Second
)

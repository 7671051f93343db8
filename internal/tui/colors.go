package tui

// Theme colors. Hex values need a truecolor terminal; lipgloss degrades them.
const (
	ColorBorder = "#3F3A4A"

	ColorPrimaryText   = "#ECE8E1"
	ColorSecondaryText = "#B7AFA3" // warm grey
	ColorDisabledText  = "#736B62"
	ColorPlaceholder   = ColorSecondaryText
	ColorHelpText      = "240" // ANSI 256

	// Tomato accents
	ColorAccentMain   = "#E4572E"
	ColorAccentBright = "#FF8C61"

	ColorError   = "#EF4444"
	ColorSuccess = "#4CAF50"
	ColorWarning = "#F2A541"
)

package styles

import "github.com/charmbracelet/lipgloss"

// Color palette, dark mode optimized, semantic colors
var (
	// Primary semantic colors
	Accent  = lipgloss.Color("#7C3AED") // violet-500 - highlights, interactive
	Success = lipgloss.Color("#10B981") // emerald-500 - won, approved
	Warning = lipgloss.Color("#F59E0B") // amber-500 - pending, in progress
	Error   = lipgloss.Color("#EF4444") // red-500 - errors, lost, rejected
	Info    = lipgloss.Color("#3B82F6") // blue-500 - record ids
	Muted   = lipgloss.Color("#6B7280") // gray-500 - secondary text

	// Text colors
	TextPrimary = lipgloss.Color("#F9FAFB") // gray-50 - main text

	// Background colors
	BgHighlight = lipgloss.Color("#1F2937") // gray-800 - cursor row
	BgSelected  = lipgloss.Color("#2E1065") // violet-950 - checked rows
)

// Semantic color aliases for record statuses
var (
	ColorNew       = Info
	ColorContacted = Accent
	ColorQualified = Warning
	ColorWon       = Success
	ColorLost      = Muted

	ColorPending  = Warning
	ColorApproved = Success
	ColorRejected = Error

	ColorID     = Info
	ColorAmount = TextPrimary
)

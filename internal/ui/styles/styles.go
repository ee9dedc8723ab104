package styles

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Symbols - Unicode with ASCII fallbacks
const (
	SymbolSuccess       = "✓"
	SymbolError         = "✗"
	SymbolWarning       = "⚠"
	SymbolInfo          = "●"
	SymbolPending       = "○"
	SymbolArrow         = "→"
	SymbolChecked       = "☑"
	SymbolUnchecked     = "☐"
	SymbolIndeterminate = "▣"
	SymbolSortAsc       = "▲"
	SymbolSortDesc      = "▼"
)

// NoColor checks if colors should be disabled
func NoColor() bool {
	return os.Getenv("NO_COLOR") != "" || os.Getenv("ERPGRID_NO_COLOR") != ""
}

// IsAccessible checks if accessibility mode is enabled
// When enabled: no animations, no spinner, simplified output
func IsAccessible() bool {
	return os.Getenv("ERPGRID_ACCESSIBLE") == "1" || os.Getenv("ERPGRID_ACCESSIBLE") == "true"
}

var Bold = lipgloss.NewStyle().Bold(true)

// Semantic styles - use these instead of raw colors
var (
	// Message types
	SuccessStyle = lipgloss.NewStyle().Foreground(Success)
	ErrorStyle   = lipgloss.NewStyle().Foreground(Error)
	WarningStyle = lipgloss.NewStyle().Foreground(Warning)
	MutedStyle   = lipgloss.NewStyle().Foreground(Muted)

	// Record display
	IDStyle     = lipgloss.NewStyle().Foreground(ColorID)
	AmountStyle = lipgloss.NewStyle().Foreground(ColorAmount)
	HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(TextPrimary)

	// Interactive TUI
	SelectedStyle = lipgloss.NewStyle().
			Background(BgHighlight).
			Foreground(TextPrimary)
	CheckedStyle = lipgloss.NewStyle().
			Background(BgSelected)
	ActiveColumnStyle = lipgloss.NewStyle().Foreground(Accent).Bold(true)
	CurrentPageStyle  = lipgloss.NewStyle().Foreground(Accent).Bold(true).Underline(true)
)

var statusColors = map[string]lipgloss.Color{
	"new":       ColorNew,
	"contacted": ColorContacted,
	"qualified": ColorQualified,
	"won":       ColorWon,
	"lost":      ColorLost,
	"pending":   ColorPending,
	"approved":  ColorApproved,
	"rejected":  ColorRejected,
}

// ═══════════════════════════════════════════════════════════════════════════
// Render functions - centralized formatting with NoColor support
// ═══════════════════════════════════════════════════════════════════════════

// render applies a style if colors are enabled
func render(s lipgloss.Style, text string) string {
	if NoColor() {
		return text
	}
	return s.Render(text)
}

// ID formats a record id
func ID(id string) string {
	return render(IDStyle, id)
}

// Amount formats a numeric cell
func Amount(v string) string {
	return render(AmountStyle, v)
}

// Status colors a status label by its raw value. Unknown statuses are
// returned as is.
func Status(raw, label string) string {
	c, ok := statusColors[strings.ToLower(raw)]
	if !ok {
		return label
	}
	return render(lipgloss.NewStyle().Foreground(c), label)
}

// Checkbox renders a tri-state checkbox. ASCII is used without colors.
func Checkbox(state string) string {
	ascii := NoColor() || IsAccessible()
	switch state {
	case "checked":
		if ascii {
			return "[x]"
		}
		return render(ActiveColumnStyle, SymbolChecked)
	case "indeterminate":
		if ascii {
			return "[-]"
		}
		return render(ActiveColumnStyle, SymbolIndeterminate)
	}
	if ascii {
		return "[ ]"
	}
	return SymbolUnchecked
}

// SortIndicator renders the arrow of a sort direction name.
func SortIndicator(dir string) string {
	switch dir {
	case "asc":
		if NoColor() {
			return "^"
		}
		return SymbolSortAsc
	case "desc":
		if NoColor() {
			return "v"
		}
		return SymbolSortDesc
	}
	return ""
}

// ═══════════════════════════════════════════════════════════════════════════
// Message formatters - structured output
// ═══════════════════════════════════════════════════════════════════════════

// SuccessMsg formats a success message with checkmark
func SuccessMsg(msg string) string {
	symbol := SymbolSuccess
	if NoColor() {
		symbol = "+"
	}
	return fmt.Sprintf("%s %s", render(SuccessStyle, symbol), msg)
}

// ErrorMsg formats an error message
func ErrorMsg(title string) string {
	return render(ErrorStyle, "Error: "+title)
}

// WarningMsg formats a warning message
func WarningMsg(msg string) string {
	symbol := SymbolWarning
	if NoColor() {
		symbol = "!"
	}
	return fmt.Sprintf("%s %s", render(WarningStyle, symbol), msg)
}

// MutedMsg formats muted/secondary text
func MutedMsg(msg string) string {
	return render(MutedStyle, msg)
}

// ═══════════════════════════════════════════════════════════════════════════
// Section formatters - consistent output structure
// ═══════════════════════════════════════════════════════════════════════════

// SectionHeader formats a section header
func SectionHeader(title string) string {
	return render(Bold, title)
}

// ═══════════════════════════════════════════════════════════════════════════
// Color functions - simple string coloring (non-printf versions)
// ═══════════════════════════════════════════════════════════════════════════

func Green(s string) string       { return render(SuccessStyle, s) }
func Mute(s string) string        { return render(MutedStyle, s) }
func SuccessText(s string) string { return render(SuccessStyle, s) }
func ErrorText(s string) string   { return render(ErrorStyle, s) }

// Printf-style color functions
func Greenf(format string, a ...any) string { return Green(fmt.Sprintf(format, a...)) }
func Mutef(format string, a ...any) string  { return Mute(fmt.Sprintf(format, a...)) }
func Boldf(format string, a ...any) string  { return render(Bold, fmt.Sprintf(format, a...)) }

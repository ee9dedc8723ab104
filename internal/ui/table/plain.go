package table

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/imgajeed76/erpgrid/internal/grid"
	"github.com/imgajeed76/erpgrid/internal/ui/styles"
)

// NoResults is what an empty view shows instead of rows.
const NoResults = "No results"

// PrintJSONResults outputs results as a JSON array of objects keyed by
// column key. Empty values become null.
func PrintJSONResults(s Sheet) error {
	results := make([]map[string]any, len(s.Values))

	for i, row := range s.Values {
		obj := make(map[string]any, len(s.Keys))
		for j, key := range s.Keys {
			if j < len(row) && row[j] != "" {
				obj[key] = row[j]
			} else {
				obj[key] = nil
			}
		}
		results[i] = obj
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

// PrintPlainTable prints a properly aligned table for non-TTY output.
// Shows full content without truncation.
func PrintPlainTable(s Sheet) {
	if len(s.Columns) == 0 || len(s.Cells) == 0 {
		fmt.Println(styles.MutedMsg(NoResults))
		return
	}

	// widths are measured in cells so styled and wide runes line up
	colWidths := make([]int, len(s.Columns))
	for i, name := range s.Columns {
		colWidths[i] = ansi.StringWidth(name)
	}
	for _, row := range s.Cells {
		for i, val := range row {
			if i < len(colWidths) && ansi.StringWidth(val) > colWidths[i] {
				colWidths[i] = ansi.StringWidth(val)
			}
		}
	}

	for i, name := range s.Columns {
		if i > 0 {
			fmt.Print("  ")
		}
		fmt.Print(pad(name, colWidths[i]))
	}
	fmt.Println()

	for i, w := range colWidths {
		if i > 0 {
			fmt.Print("  ")
		}
		fmt.Print(strings.Repeat("─", w))
	}
	fmt.Println()

	for _, row := range s.Cells {
		for i, val := range row {
			if i >= len(colWidths) {
				break
			}
			if i > 0 {
				fmt.Print("  ")
			}
			fmt.Print(pad(val, colWidths[i]))
		}
		fmt.Println()
	}
}

// PrintPageFooter prints the page position and the page-number window.
func PrintPageFooter[R any](p grid.PageResult[R], window []int) {
	if p.Empty() {
		return
	}
	fmt.Println()
	fmt.Println(PageFooter(p, window, false))
}

// PageFooter renders "page 2 of 5 (43 rows)  ‹ 1 [2] 3 4 5 ›". Styled marks
// the current page with color instead of brackets.
func PageFooter[R any](p grid.PageResult[R], window []int, styled bool) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "page %d of %d (%d rows)", p.CurrentPage, p.TotalPages, p.Total)
	if p.TotalPages <= 1 {
		return sb.String()
	}
	sb.WriteString("  ")
	if p.CurrentPage > 1 {
		sb.WriteString("‹ ")
	}
	for i, n := range window {
		if i > 0 {
			sb.WriteString(" ")
		}
		label := strconv.Itoa(n)
		switch {
		case n != p.CurrentPage:
			sb.WriteString(label)
		case styled && !styles.NoColor():
			sb.WriteString(styles.CurrentPageStyle.Render(label))
		default:
			sb.WriteString("[" + label + "]")
		}
	}
	if p.CurrentPage < p.TotalPages {
		sb.WriteString(" ›")
	}
	return sb.String()
}

// pad adds spaces to reach the desired width (no truncation).
func pad(s string, width int) string {
	w := ansi.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// PadOrTruncate pads or truncates to exact width (for TUI table).
func PadOrTruncate(s string, width int) string {
	if ansi.StringWidth(s) > width {
		return ansi.Truncate(s, width, "…")
	}
	return pad(s, width)
}

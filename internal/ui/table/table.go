// Package table renders grid engines. It supports an interactive TUI
// (paging, sorting, filtering, selection and row actions), plain text
// tables, JSON output, and raw tab-separated output.
//
// Every list command of erpgrid goes through DisplayResults.
package table

import (
	"fmt"
	"os"
	"strings"

	"github.com/imgajeed76/erpgrid/internal/grid"
	"go.uber.org/zap"
	"golang.org/x/term"
)

// DisplayOptions controls how results are rendered.
type DisplayOptions[R any] struct {
	// JSON outputs results as a JSON array of objects.
	JSON bool
	// Raw outputs results as tab-separated values (for piping).
	Raw bool
	// NoPager forces plain table output even on a TTY.
	NoPager bool
	// All prints every filtered row instead of the current page.
	All bool
	// ColWidth caps cell width in the TUI. Zero means defaultColWidth.
	ColWidth int
	// Updates delivers replacement row sets while the TUI runs.
	Updates <-chan []R
	Logger  *zap.Logger
}

// Sheet is a rendered snapshot of rows: column keys and labels, display
// cells for tables and raw text for JSON.
type Sheet struct {
	Keys    []string
	Columns []string
	Cells   [][]string
	Values  [][]string
}

// SheetOf renders rows over the visible columns of e.
func SheetOf[R any](e *grid.Engine[R], rows []R) Sheet {
	cols := e.VisibleColumns()
	s := Sheet{
		Keys:    make([]string, len(cols)),
		Columns: make([]string, len(cols)),
		Cells:   make([][]string, len(rows)),
		Values:  make([][]string, len(rows)),
	}
	for i, c := range cols {
		s.Keys[i] = c.Key
		s.Columns[i] = c.Title()
	}
	for i, r := range rows {
		cells := make([]string, len(cols))
		values := make([]string, len(cols))
		for j, c := range cols {
			cells[j] = c.Display(r)
			values[j] = c.Text(r)
		}
		s.Cells[i] = cells
		s.Values[i] = values
	}
	return s
}

// DisplayResults picks the right output mode based on options and environment,
// then renders the engine's view. The title is shown in the interactive TUI
// header; for non-interactive modes it is ignored.
func DisplayResults[R any](title string, e *grid.Engine[R], opts DisplayOptions[R]) error {
	rows := e.Page().Rows
	if opts.All {
		rows = e.Filtered()
	}

	if opts.Raw {
		PrintRaw(SheetOf(e, rows))
		return nil
	}

	if opts.JSON {
		return PrintJSONResults(SheetOf(e, rows))
	}

	isTTY := term.IsTerminal(int(os.Stdout.Fd()))

	if !isTTY || opts.NoPager || e.Total() == 0 {
		PrintPlainTable(SheetOf(e, rows))
		if !opts.All {
			PrintPageFooter(e.Page(), e.PageNumbers())
		}
		if err := e.FilterErr(); err != nil {
			return err
		}
		return nil
	}

	return RunGrid(title, e, opts)
}

// PrintRaw prints display cells as tab-separated lines.
func PrintRaw(s Sheet) {
	for _, row := range s.Values {
		fmt.Println(strings.Join(row, "\t"))
	}
}

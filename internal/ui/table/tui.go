package table

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/imgajeed76/erpgrid/internal/grid"
	"github.com/imgajeed76/erpgrid/internal/ui/styles"
	"go.uber.org/zap"
)

// ═══════════════════════════════════════════════════════════════════════════
// Constants
// ═══════════════════════════════════════════════════════════════════════════

const (
	defaultColWidth = 20
	minColWidth     = 3
	checkColWidth   = 3
)

// pageSizes are the steps +/- move through.
var pageSizes = []int{5, 10, 20, 50, 100}

// Grid mode
type gridMode int

const (
	modeNormal gridMode = iota
	modeSearch          // "/" global query, applied live
	modeFilter          // "f" filter on the cursor column, applied live
	modeExpr            // ":" expression, applied on enter
	modeDetail          // record detail modal
)

// Exit mode: what to do after quitting the viewer
type exitMode int

const (
	exitNormal exitMode = iota
	exitJSON
	exitRaw
	exitPlain
)

// ═══════════════════════════════════════════════════════════════════════════
// Model
// ═══════════════════════════════════════════════════════════════════════════

type gridModel[R any] struct {
	title    string
	engine   *grid.Engine[R]
	log      *zap.Logger
	updates  <-chan []R
	colWidth int

	cursor    int // row on the current page
	colCursor int // index into the visible columns
	scrollX   int // horizontal scroll offset in cells
	scrollY   int // first rendered row of the page
	width     int
	height    int
	ready     bool

	mode      gridMode
	input     textinput.Model
	filterKey string // column edited in modeFilter
	detail    viewport.Model
	exitMode  exitMode

	// Status message (flash notification, e.g. after yank)
	statusMsg   string
	statusErr   bool
	statusUntil time.Time
}

// ═══════════════════════════════════════════════════════════════════════════
// Key Bindings
// ═══════════════════════════════════════════════════════════════════════════

type gridKeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Left        key.Binding
	Right       key.Binding
	Sort        key.Binding
	Hide        key.Binding
	ShowAll     key.Binding
	Search      key.Binding
	Filter      key.Binding
	Expr        key.Binding
	Clear       key.Binding
	Select      key.Binding
	SelectPage  key.Binding
	SelectAll   key.Binding
	Unselect    key.Binding
	NextPage    key.Binding
	PrevPage    key.Binding
	FirstPage   key.Binding
	LastPage    key.Binding
	Bigger      key.Binding
	Smaller     key.Binding
	View        key.Binding
	Edit        key.Binding
	Delete      key.Binding
	Confirm     key.Binding
	Cancel      key.Binding
	YankCell    key.Binding
	YankRow     key.Binding
	ExportJSON  key.Binding
	ExportRaw   key.Binding
	ExportPlain key.Binding
	Quit        key.Binding
	Close       key.Binding
}

var gridKeys = gridKeyMap{
	Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Left:        key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "prev column")),
	Right:       key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "next column")),
	Sort:        key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
	Hide:        key.NewBinding(key.WithKeys("H"), key.WithHelp("H", "hide column")),
	ShowAll:     key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "show all columns")),
	Search:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	Filter:      key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filter column")),
	Expr:        key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "where")),
	Clear:       key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear filters")),
	Select:      key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "select")),
	SelectPage:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "select page")),
	SelectAll:   key.NewBinding(key.WithKeys("A"), key.WithHelp("A", "select all")),
	Unselect:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear selection")),
	NextPage:    key.NewBinding(key.WithKeys("n", "pgdown"), key.WithHelp("n", "next page")),
	PrevPage:    key.NewBinding(key.WithKeys("p", "pgup"), key.WithHelp("p", "prev page")),
	FirstPage:   key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "first page")),
	LastPage:    key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "last page")),
	Bigger:      key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "more rows")),
	Smaller:     key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "fewer rows")),
	View:        key.NewBinding(key.WithKeys("enter", "v"), key.WithHelp("enter", "view")),
	Edit:        key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
	Delete:      key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	Confirm:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "confirm")),
	Cancel:      key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n", "cancel")),
	YankCell:    key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy cell")),
	YankRow:     key.NewBinding(key.WithKeys("Y"), key.WithHelp("Y", "copy row")),
	ExportJSON:  key.NewBinding(key.WithKeys("J"), key.WithHelp("J", "print as JSON")),
	ExportRaw:   key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "print raw")),
	ExportPlain: key.NewBinding(key.WithKeys("P"), key.WithHelp("P", "print table")),
	Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	Close:       key.NewBinding(key.WithKeys("q", "esc", "enter"), key.WithHelp("esc", "close")),
}

// ═══════════════════════════════════════════════════════════════════════════
// Entry Point
// ═══════════════════════════════════════════════════════════════════════════

// RunGrid launches the interactive viewer over e. It blocks until the user
// quits. If the user requests an export (J/R/P), the filtered rows are
// printed to stdout after the TUI exits.
func RunGrid[R any](title string, e *grid.Engine[R], opts DisplayOptions[R]) error {
	m := newGridModel(title, e, opts)

	p := tea.NewProgram(m, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	// Check if user requested output after exit
	if fm, ok := finalModel.(gridModel[R]); ok {
		sheet := SheetOf(e, e.Filtered())
		switch fm.exitMode {
		case exitJSON:
			return PrintJSONResults(sheet)
		case exitRaw:
			PrintRaw(sheet)
		case exitPlain:
			PrintPlainTable(sheet)
		}
	}

	return nil
}

func newGridModel[R any](title string, e *grid.Engine[R], opts DisplayOptions[R]) gridModel[R] {
	ti := textinput.New()
	ti.CharLimit = 200
	ti.Width = 40

	width := opts.ColWidth
	if width <= 0 {
		width = defaultColWidth
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return gridModel[R]{
		title:    title,
		engine:   e,
		log:      log,
		updates:  opts.Updates,
		colWidth: max(width, minColWidth),
		input:    ti,
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Bubble Tea Interface
// ═══════════════════════════════════════════════════════════════════════════

// rowsMsg carries a reloaded row set from DisplayOptions.Updates.
type rowsMsg[R any] struct{ rows []R }

type updatesClosedMsg struct{}

func (m gridModel[R]) Init() tea.Cmd {
	return m.waitForRows()
}

func (m gridModel[R]) waitForRows() tea.Cmd {
	if m.updates == nil {
		return nil
	}
	ch := m.updates
	return func() tea.Msg {
		rows, ok := <-ch
		if !ok {
			return updatesClosedMsg{}
		}
		return rowsMsg[R]{rows: rows}
	}
}

func (m gridModel[R]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.detail.Width = msg.Width
		m.detail.Height = max(msg.Height-2, 1)

	case statusClearMsg:
		// Clear the flash message if it has expired
		if !m.statusUntil.IsZero() && time.Now().After(m.statusUntil) {
			m.statusMsg = ""
			m.statusUntil = time.Time{}
		}
		return m, nil

	case rowsMsg[R]:
		d := grid.DiffRows(m.engine.Store(), m.engine.Columns(), msg.rows)
		m.engine.SetRows(msg.rows)
		m.clampCursor()
		m.log.Debug("grid reloaded", zap.Int("rows", len(msg.rows)),
			zap.Int("added", len(d.Added)), zap.Int("removed", len(d.Removed)), zap.Int("changed", len(d.Changed)))
		status := fmt.Sprintf("Reloaded %d records", len(msg.rows))
		if !d.Empty() {
			status += fmt.Sprintf(" (+%d -%d ~%d)", len(d.Added), len(d.Removed), len(d.Changed))
		}
		return m, tea.Batch(m.setStatus(status), m.waitForRows())

	case updatesClosedMsg:
		m.updates = nil
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeSearch, modeFilter, modeExpr:
			return m.updateInput(msg)
		case modeDetail:
			return m.updateDetail(msg)
		}
		if _, pending := m.engine.PendingDelete(); pending {
			return m.updateConfirm(msg)
		}
		return m.updateNormal(msg)
	}

	return m, nil
}

func (m gridModel[R]) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	e := m.engine
	cols := e.VisibleColumns()

	switch {
	case key.Matches(msg, gridKeys.Quit):
		return m, tea.Quit

	case key.Matches(msg, gridKeys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.ensureRowVisible()
		}

	case key.Matches(msg, gridKeys.Down):
		if m.cursor < len(e.Page().Rows)-1 {
			m.cursor++
			m.ensureRowVisible()
		}

	case key.Matches(msg, gridKeys.Left):
		if m.colCursor > 0 {
			m.colCursor--
			m.ensureColVisible()
		}

	case key.Matches(msg, gridKeys.Right):
		if m.colCursor < len(cols)-1 {
			m.colCursor++
			m.ensureColVisible()
		}

	case key.Matches(msg, gridKeys.Sort):
		col, ok := m.cursorColumn()
		if !ok {
			return m, nil
		}
		if !col.Sortable {
			return m, m.setError(fmt.Sprintf("%s is not sortable", col.Title()))
		}
		e.ToggleSort(col.Key)
		m.clampCursor()

	case key.Matches(msg, gridKeys.Hide):
		col, ok := m.cursorColumn()
		if !ok {
			return m, nil
		}
		if err := e.ToggleHidden(col.Key); err != nil {
			return m, m.setError(err.Error())
		}
		m.clampCursor()

	case key.Matches(msg, gridKeys.ShowAll):
		for _, c := range e.Columns() {
			if e.Hidden(c.Key) {
				_ = e.SetHidden(c.Key, false)
			}
		}

	case key.Matches(msg, gridKeys.Search):
		return m.openInput(modeSearch, "", e.FilterState().Query)

	case key.Matches(msg, gridKeys.Filter):
		col, ok := m.cursorColumn()
		if !ok {
			return m, nil
		}
		return m.openInput(modeFilter, col.Key, e.FilterState().Value(col.Key))

	case key.Matches(msg, gridKeys.Expr):
		return m.openInput(modeExpr, "", e.FilterState().Expr)

	case key.Matches(msg, gridKeys.Clear):
		e.ClearFilters()
		m.clampCursor()

	case key.Matches(msg, gridKeys.Select):
		if r, ok := m.cursorRow(); ok {
			e.Dispatch(grid.ActionSelect, r)
		}

	case key.Matches(msg, gridKeys.SelectPage):
		e.ToggleAllOnPage()

	case key.Matches(msg, gridKeys.SelectAll):
		e.ToggleAllFiltered()

	case key.Matches(msg, gridKeys.Unselect):
		e.ClearSelection()

	case key.Matches(msg, gridKeys.NextPage):
		e.NextPage()
		m.resetRows()

	case key.Matches(msg, gridKeys.PrevPage):
		e.PrevPage()
		m.resetRows()

	case key.Matches(msg, gridKeys.FirstPage):
		e.FirstPage()
		m.resetRows()

	case key.Matches(msg, gridKeys.LastPage):
		e.LastPage()
		m.resetRows()

	case key.Matches(msg, gridKeys.Bigger):
		_ = e.SetPageSize(stepPageSize(e.PageSize(), 1))
		m.resetRows()

	case key.Matches(msg, gridKeys.Smaller):
		_ = e.SetPageSize(stepPageSize(e.PageSize(), -1))
		m.resetRows()

	case key.Matches(msg, gridKeys.View):
		r, ok := m.cursorRow()
		if !ok {
			return m, nil
		}
		e.Dispatch(grid.ActionView, r)
		return m.openDetail(r)

	case key.Matches(msg, gridKeys.Edit):
		if r, ok := m.cursorRow(); ok {
			e.Dispatch(grid.ActionEdit, r)
			return m, m.setStatus(fmt.Sprintf("Edit requested: %s", e.ID(r)))
		}

	case key.Matches(msg, gridKeys.Delete):
		if r, ok := m.cursorRow(); ok {
			e.Dispatch(grid.ActionDelete, r)
		}

	case key.Matches(msg, gridKeys.YankCell):
		return m, m.yankCell()

	case key.Matches(msg, gridKeys.YankRow):
		return m, m.yankRow()

	case key.Matches(msg, gridKeys.ExportJSON):
		m.exitMode = exitJSON
		return m, tea.Quit

	case key.Matches(msg, gridKeys.ExportRaw):
		m.exitMode = exitRaw
		return m, tea.Quit

	case key.Matches(msg, gridKeys.ExportPlain):
		m.exitMode = exitPlain
		return m, tea.Quit
	}

	return m, nil
}

// updateConfirm handles the delete confirmation. Any other key is ignored
// until the user answers.
func (m gridModel[R]) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	id, _ := m.engine.PendingDelete()
	switch {
	case key.Matches(msg, gridKeys.Confirm):
		if err := m.engine.ConfirmDelete(); err != nil {
			return m, m.setError(fmt.Sprintf("delete %s: %s", id, err))
		}
		m.clampCursor()
		return m, m.setStatus(fmt.Sprintf("Deleted %s", id))
	case key.Matches(msg, gridKeys.Cancel):
		m.engine.CancelDelete()
		return m, m.setStatus("Delete canceled")
	case msg.String() == "ctrl+c":
		m.engine.CancelDelete()
		return m, tea.Quit
	}
	return m, nil
}

// ═══════════════════════════════════════════════════════════════════════════
// Prompts (search, column filter, expression)
// ═══════════════════════════════════════════════════════════════════════════

func (m gridModel[R]) openInput(mode gridMode, filterKey, value string) (tea.Model, tea.Cmd) {
	m.mode = mode
	m.filterKey = filterKey
	switch mode {
	case modeSearch:
		m.input.Placeholder = "search..."
	case modeFilter:
		m.input.Placeholder = filterKey + "..."
	case modeExpr:
		m.input.Placeholder = "value > 1000 && status == 'won'"
	}
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Focus()
	return m, textinput.Blink
}

func (m gridModel[R]) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	e := m.engine
	switch msg.Type {
	case tea.KeyEsc:
		// esc drops what the prompt controls; an expression is left as it was
		switch m.mode {
		case modeSearch:
			e.SetQuery("")
		case modeFilter:
			e.SetColumnFilter(m.filterKey, "")
		}
		m.closeInput()
		return m, nil
	case tea.KeyEnter:
		mode := m.mode
		value := m.input.Value()
		m.closeInput()
		if mode == modeExpr {
			if err := e.SetExpr(value); err != nil {
				return m, m.setError(err.Error())
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	// Live filter as user types
	switch m.mode {
	case modeSearch:
		e.SetQuery(m.input.Value())
	case modeFilter:
		e.SetColumnFilter(m.filterKey, m.input.Value())
	}
	m.resetRows()

	return m, cmd
}

func (m *gridModel[R]) closeInput() {
	m.mode = modeNormal
	m.filterKey = ""
	m.input.Blur()
	m.resetRows()
}

// ═══════════════════════════════════════════════════════════════════════════
// Detail modal
// ═══════════════════════════════════════════════════════════════════════════

func (m gridModel[R]) openDetail(r R) (tea.Model, tea.Cmd) {
	out, err := renderDetail(m.engine, r, m.width)
	if err != nil {
		return m, m.setError(fmt.Sprintf("render: %s", err))
	}
	m.detail = viewport.New(m.width, max(m.height-2, 1))
	m.detail.SetContent(out)
	m.mode = modeDetail
	return m, nil
}

func (m gridModel[R]) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, gridKeys.Close) {
		m.mode = modeNormal
		return m, nil
	}
	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

// DetailMarkdown describes one record as a markdown field table. Hidden
// columns are included.
func DetailMarkdown[R any](e *grid.Engine[R], r R) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", e.ID(r))
	sb.WriteString("| Field | Value |\n|---|---|\n")
	for _, c := range e.Columns() {
		v := strings.ReplaceAll(c.Display(r), "|", `\|`)
		fmt.Fprintf(&sb, "| %s | %s |\n", c.Title(), v)
	}
	return sb.String()
}

func renderDetail[R any](e *grid.Engine[R], r R, width int) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(max(width-4, 20))}
	if styles.NoColor() {
		opts = append(opts, glamour.WithStandardStyle("notty"))
	} else {
		opts = append(opts, glamour.WithStandardStyle("dark"))
	}
	tr, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", err
	}
	return tr.Render(DetailMarkdown(e, r))
}

// ═══════════════════════════════════════════════════════════════════════════
// Row / Column Helpers
// ═══════════════════════════════════════════════════════════════════════════

func (m gridModel[R]) cursorRow() (R, bool) {
	rows := m.engine.Page().Rows
	if m.cursor < 0 || m.cursor >= len(rows) {
		var zero R
		return zero, false
	}
	return rows[m.cursor], true
}

func (m gridModel[R]) cursorColumn() (grid.Column[R], bool) {
	cols := m.engine.VisibleColumns()
	if m.colCursor < 0 || m.colCursor >= len(cols) {
		return grid.Column[R]{}, false
	}
	return cols[m.colCursor], true
}

// resetRows moves the cursor back to the top of the page.
func (m *gridModel[R]) resetRows() {
	m.cursor = 0
	m.scrollY = 0
}

// clampCursor keeps both cursors inside the current page and columns after
// the view changed underneath them.
func (m *gridModel[R]) clampCursor() {
	n := len(m.engine.Page().Rows)
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	cols := len(m.engine.VisibleColumns())
	if m.colCursor >= cols {
		m.colCursor = cols - 1
	}
	if m.colCursor < 0 {
		m.colCursor = 0
	}
	m.ensureRowVisible()
	m.ensureColVisible()
}

func stepPageSize(current, dir int) int {
	if dir > 0 {
		for _, s := range pageSizes {
			if s > current {
				return s
			}
		}
		return current
	}
	for i := len(pageSizes) - 1; i >= 0; i-- {
		if pageSizes[i] < current {
			return pageSizes[i]
		}
	}
	return current
}

// colWidths sizes each visible column to its widest cell on the page,
// capped at the configured column width.
func (m gridModel[R]) colWidths(s Sheet) []int {
	widths := make([]int, len(s.Columns))
	for i, name := range s.Columns {
		widths[i] = ansi.StringWidth(name) + 2 // room for the sort arrow
	}
	for _, row := range s.Cells {
		for i, v := range row {
			if w := ansi.StringWidth(v); w > widths[i] {
				widths[i] = w
			}
		}
	}
	for i := range widths {
		widths[i] = min(max(widths[i], minColWidth), m.colWidth)
	}
	return widths
}

func colStartX(widths []int, idx int) int {
	x := checkColWidth + 1
	for i := 0; i < idx && i < len(widths); i++ {
		x += widths[i] + 2 // +2 for column separator spacing
	}
	return x
}

// ═══════════════════════════════════════════════════════════════════════════
// Status Message (flash notification)
// ═══════════════════════════════════════════════════════════════════════════

type statusClearMsg struct{}

const statusDuration = 2 * time.Second

// setStatus sets a temporary status message that auto-clears.
func (m *gridModel[R]) setStatus(msg string) tea.Cmd {
	m.statusMsg = msg
	m.statusErr = false
	m.statusUntil = time.Now().Add(statusDuration)
	return tea.Tick(statusDuration, func(t time.Time) tea.Msg {
		return statusClearMsg{}
	})
}

// setError flashes a failure. Failures never leave the viewer.
func (m *gridModel[R]) setError(msg string) tea.Cmd {
	cmd := m.setStatus(msg)
	m.statusErr = true
	m.log.Debug("grid flash error", zap.String("message", msg))
	return cmd
}

// ═══════════════════════════════════════════════════════════════════════════
// Clipboard (yank)
// ═══════════════════════════════════════════════════════════════════════════

var errNothingToCopy = errors.New("nothing to copy")

// yankCell copies the raw value under the cursor to the system clipboard.
func (m *gridModel[R]) yankCell() tea.Cmd {
	r, ok := m.cursorRow()
	col, okCol := m.cursorColumn()
	if !ok || !okCol {
		return m.setError(errNothingToCopy.Error())
	}
	val := col.Text(r)
	if err := clipboard.WriteAll(val); err != nil {
		return m.setError(fmt.Sprintf("clipboard error: %s", err))
	}
	return m.setStatus(fmt.Sprintf("Copied: %s", ansi.Truncate(val, 40, "…")))
}

// yankRow copies the visible cells of the cursor row, tab-separated.
func (m *gridModel[R]) yankRow() tea.Cmd {
	r, ok := m.cursorRow()
	if !ok {
		return m.setError(errNothingToCopy.Error())
	}
	s := SheetOf(m.engine, []R{r})
	if err := clipboard.WriteAll(strings.Join(s.Values[0], "\t")); err != nil {
		return m.setError(fmt.Sprintf("clipboard error: %s", err))
	}
	return m.setStatus(fmt.Sprintf("Copied row (%d columns)", len(s.Values[0])))
}

// ═══════════════════════════════════════════════════════════════════════════
// Scroll Helpers
// ═══════════════════════════════════════════════════════════════════════════

func (m *gridModel[R]) ensureRowVisible() {
	visibleRows := m.visibleRowCount()
	if m.cursor < m.scrollY {
		m.scrollY = m.cursor
	} else if m.cursor >= m.scrollY+visibleRows {
		m.scrollY = m.cursor - visibleRows + 1
	}
}

func (m *gridModel[R]) ensureColVisible() {
	widths := m.colWidths(SheetOf(m.engine, m.engine.Page().Rows))
	if m.colCursor >= len(widths) {
		m.scrollX = 0
		return
	}
	start := colStartX(widths, m.colCursor)
	end := start + widths[m.colCursor]
	viewportWidth := m.width - 2

	if start < m.scrollX {
		m.scrollX = start
	} else if end > m.scrollX+viewportWidth {
		m.scrollX = end - viewportWidth
	}
	if m.colCursor == 0 || m.scrollX < 0 {
		m.scrollX = 0
	}
}

func (m gridModel[R]) visibleRowCount() int {
	count := m.height - 6 // title, prompt, header, separator, blank, footer
	if count < 1 {
		count = 1
	}
	return count
}

// ═══════════════════════════════════════════════════════════════════════════
// View
// ═══════════════════════════════════════════════════════════════════════════

func (m gridModel[R]) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.mode == modeDetail {
		return m.detail.View() + "\n" + styles.MutedMsg("↑↓ scroll  esc close")
	}

	e := m.engine
	var sb strings.Builder

	sb.WriteString(m.renderTitle())
	sb.WriteString("\n")
	sb.WriteString(m.renderPrompt())
	sb.WriteString("\n")

	page := e.Page()
	if page.Empty() {
		sb.WriteString(styles.MutedMsg(NoResults))
		sb.WriteString("\n")
	} else {
		sb.WriteString(m.renderTable(page.Rows))
	}

	// Footer
	sb.WriteString("\n")
	sb.WriteString(PageFooter(page, e.PageNumbers(), true))
	sb.WriteString("\n")
	sb.WriteString(m.renderFooter())

	return sb.String()
}

func (m gridModel[R]) renderTitle() string {
	e := m.engine
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(styles.Accent)

	var title string
	if total, all := e.Total(), len(e.Rows()); total != all {
		title = fmt.Sprintf("%s: %d/%d records", m.title, total, all)
	} else {
		title = fmt.Sprintf("%s: %d records", m.title, all)
	}
	out := headerStyle.Render(title)

	var info []string
	if n := e.SelectedCount(); n > 0 {
		info = append(info, fmt.Sprintf("%d selected", n))
	}
	if s := e.SortState(); s.Active() {
		info = append(info, "sort "+s.String())
	}
	var hidden []string
	for _, c := range e.Columns() {
		if e.Hidden(c.Key) {
			hidden = append(hidden, c.Key+"-")
		}
	}
	if len(hidden) > 0 {
		info = append(info, strings.Join(hidden, ", "))
	}
	if len(info) > 0 {
		out += styles.MutedMsg(fmt.Sprintf("  [%s]", strings.Join(info, "  ")))
	}
	return out
}

// renderPrompt shows the active input or a summary of the filters.
func (m gridModel[R]) renderPrompt() string {
	switch m.mode {
	case modeSearch:
		return "/" + m.input.View()
	case modeFilter:
		return m.filterKey + "=" + m.input.View()
	case modeExpr:
		return ":" + m.input.View()
	}

	f := m.engine.FilterState()
	var parts []string
	if f.Query != "" {
		parts = append(parts, fmt.Sprintf("search: %s", f.Query))
	}
	for _, cf := range f.Columns {
		parts = append(parts, fmt.Sprintf("%s=%s", cf.Key, cf.Value))
	}
	if f.Expr != "" {
		parts = append(parts, fmt.Sprintf("where: %s", f.Expr))
	}
	out := styles.MutedMsg(strings.Join(parts, "  "))
	if err := m.engine.FilterErr(); err != nil {
		out += "  " + styles.ErrorText(err.Error())
	}
	return out
}

func (m gridModel[R]) renderFooter() string {
	if id, pending := m.engine.PendingDelete(); pending {
		return styles.WarningMsg(fmt.Sprintf("Delete %s? y confirm  n cancel", id))
	}
	if m.statusMsg != "" && time.Now().Before(m.statusUntil) {
		if m.statusErr {
			return styles.ErrorText(m.statusMsg)
		}
		return styles.SuccessMsg(m.statusMsg)
	}
	switch m.mode {
	case modeSearch, modeFilter:
		return styles.MutedMsg("enter confirm  esc clear")
	case modeExpr:
		return styles.MutedMsg("enter apply  esc cancel")
	}
	return styles.MutedMsg("s sort  / search  f filter  : where  space/a/A select  x unselect  n/p page  +/- size  enter view  e edit  d delete  y copy  J/R/P export  q quit")
}

// ═══════════════════════════════════════════════════════════════════════════
// Render Table
// ═══════════════════════════════════════════════════════════════════════════

func (m gridModel[R]) renderTable(rows []R) string {
	e := m.engine
	cols := e.VisibleColumns()
	if len(cols) == 0 {
		return "No columns\n"
	}
	sheet := SheetOf(e, rows)
	widths := m.colWidths(sheet)
	viewportWidth := m.width - 2
	sortState := e.SortState()

	var sb strings.Builder

	// Header
	var header strings.Builder
	header.WriteString(pad(styles.Checkbox(e.HeaderState().String()), checkColWidth))
	for i, c := range cols {
		header.WriteString("  ")
		label := c.Title()
		if arrow := styles.SortIndicator(sortState.Direction(c.Key).String()); arrow != "" {
			label += " " + arrow
		}
		label = PadOrTruncate(label, widths[i])
		if i == m.colCursor {
			label = styles.ActiveColumnStyle.Render(label)
		} else {
			label = styles.HeaderStyle.Render(label)
		}
		header.WriteString(label)
	}
	sb.WriteString(cut(header.String(), m.scrollX, viewportWidth))
	sb.WriteString("\n")

	// Separator
	var sep strings.Builder
	sep.WriteString(strings.Repeat("─", checkColWidth))
	for _, w := range widths {
		sep.WriteString("  ")
		sep.WriteString(strings.Repeat("─", w))
	}
	sb.WriteString(styles.MutedMsg(cut(sep.String(), m.scrollX, viewportWidth)))
	sb.WriteString("\n")

	end := min(m.scrollY+m.visibleRowCount(), len(rows))
	for idx := m.scrollY; idx < end; idx++ {
		r := rows[idx]
		state := "unchecked"
		if e.IsSelected(e.ID(r)) {
			state = "checked"
		}
		isCursor := idx == m.cursor

		var line strings.Builder
		line.WriteString(pad(styles.Checkbox(state), checkColWidth))
		for i, c := range cols {
			line.WriteString("  ")
			cell := PadOrTruncate(sheet.Cells[idx][i], widths[i])
			if !isCursor {
				cell = styleCell(c.Key, c.Value(r), c.Text(r), cell)
			}
			line.WriteString(cell)
		}
		out := cut(line.String(), m.scrollX, viewportWidth)
		switch {
		case isCursor:
			out = styles.SelectedStyle.Render(ansi.Strip(out))
		case state == "checked" && !styles.NoColor():
			out = styles.CheckedStyle.Render(out)
		}
		sb.WriteString(out)
		sb.WriteString("\n")
	}

	return sb.String()
}

func styleCell(key string, v any, text, cell string) string {
	switch key {
	case "id":
		return styles.ID(cell)
	case "status":
		return styles.Status(text, cell)
	}
	switch v.(type) {
	case int, int64, float64:
		return styles.Amount(cell)
	}
	return cell
}

// cut slices a styled line to the horizontal viewport.
func cut(s string, startX, width int) string {
	if width <= 0 {
		return ""
	}
	return pad(ansi.Cut(s, startX, startX+width), width)
}

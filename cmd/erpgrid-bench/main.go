package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/imgajeed76/erpgrid/internal/grid"
	"github.com/imgajeed76/erpgrid/internal/records"
	"github.com/imgajeed76/erpgrid/internal/ui/styles"
	"golang.org/x/term"
)

// ═══════════════════════════════════════════════════════════════════════════
// erpgrid-bench: pipeline timings for the table engine
//
// Usage:
//   erpgrid-bench [--rows 1000,10000] [--runs 5] [--json [path]] [--report path]
//
// Builds lead tables of the requested sizes, runs each scenario through
// filter, sort and paginate, and reports the median time per refresh.
// ═══════════════════════════════════════════════════════════════════════════

// isTTY is true when stdout is a terminal and accessibility mode is off
var isTTY bool

func init() {
	isTTY = term.IsTerminal(int(os.Stdout.Fd())) && !styles.IsAccessible()
}

var (
	stBold  = lipgloss.NewStyle().Bold(true)
	stDim   = lipgloss.NewStyle().Foreground(styles.Muted)
	stError = lipgloss.NewStyle().Foreground(styles.Error)
)

// render applies a lipgloss style, respecting NoColor
func render(s lipgloss.Style, text string) string {
	if styles.NoColor() {
		return text
	}
	return s.Render(text)
}

type cliArgs struct {
	rows       []int
	runs       int
	jsonMode   bool
	jsonPath   string
	reportPath string
}

// scenario mutates a fresh engine; the refresh it triggers is what is timed.
type scenario struct {
	name  string
	apply func(e *grid.Engine[records.Lead])
}

var scenarios = []scenario{
	{"unfiltered", func(e *grid.Engine[records.Lead]) {}},
	{"column filter", func(e *grid.Engine[records.Lead]) { e.SetColumnFilter("status", "won") }},
	{"query prefix", func(e *grid.Engine[records.Lead]) { e.SetQuery("acme") }},
	{"query scattered", func(e *grid.Engine[records.Lead]) { e.SetQuery("nwtr") }},
	{"expression", func(e *grid.Engine[records.Lead]) { _ = e.SetExpr("value > 100000 && status != 'lost'") }},
	{"all filters", func(e *grid.Engine[records.Lead]) {
		_ = e.SetFilterState(grid.FilterState{
			Columns: []grid.ColumnFilter{{Key: "source", Value: "website"}},
			Query:   "co",
			Expr:    "value > 50000",
		})
	}},
	{"sort value desc", func(e *grid.Engine[records.Lead]) {
		e.SetSort(grid.SortState{{Key: "value", Direction: grid.Desc}})
	}},
	{"query + sort + last page", func(e *grid.Engine[records.Lead]) {
		e.SetQuery("a")
		e.SetSort(grid.SortState{{Key: "company", Direction: grid.Asc}})
		e.LastPage()
	}},
}

type benchResult struct {
	Scenario string `json:"scenario"`
	Rows     int    `json:"rows"`
	Matched  int    `json:"matched"`
	MedianNS int64  `json:"median_ns"`
	Error    string `json:"error,omitempty"`
}

func main() {
	args := parseArgs()

	var results []benchResult
	for _, n := range args.rows {
		leads := syntheticLeads(n)
		for _, sc := range scenarios {
			r := run(sc, leads, args.runs)
			results = append(results, r)
			if isTTY && !args.jsonMode {
				fmt.Printf("\r\033[K  %s %s", render(stDim, strconv.Itoa(n)), sc.name)
			}
		}
	}
	if isTTY && !args.jsonMode {
		fmt.Print("\r\033[K")
	}

	if args.jsonMode {
		writeJSONOutput(results, args.jsonPath)
	} else {
		printSummaryTable(results)
	}

	if args.reportPath != "" {
		if err := writeMarkdownReport(args.reportPath, args.runs, results); err != nil {
			fatalMsg("Failed to write report: %v", err)
		}
		if !args.jsonMode {
			fmt.Printf("\n  %s\n\n", styles.SuccessMsg(fmt.Sprintf("Report written to %s", args.reportPath)))
		}
	}
}

func parseArgs() cliArgs {
	args := cliArgs{rows: []int{1000, 10000}, runs: 5}
	osArgs := os.Args[1:]

	for i := 0; i < len(osArgs); i++ {
		switch osArgs[i] {
		case "--rows", "-n":
			if i+1 < len(osArgs) {
				i++
				args.rows = nil
				for _, s := range strings.Split(osArgs[i], ",") {
					n, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || n < 1 {
						fatalMsg("--rows requires positive integers, got: %s", s)
					}
					args.rows = append(args.rows, n)
				}
			}
		case "--runs":
			if i+1 < len(osArgs) {
				i++
				n, err := strconv.Atoi(osArgs[i])
				if err != nil || n < 1 {
					fatalMsg("--runs requires a positive integer, got: %s", osArgs[i])
				}
				args.runs = n
			}
		case "--json", "-j":
			args.jsonMode = true
			// Check if next arg is a path (not a flag)
			if i+1 < len(osArgs) && !strings.HasPrefix(osArgs[i+1], "-") {
				i++
				args.jsonPath = osArgs[i]
			}
		case "--report", "-r":
			if i+1 < len(osArgs) {
				i++
				args.reportPath = osArgs[i]
			}
		case "--no-color":
			_ = os.Setenv("ERPGRID_NO_COLOR", "1")
		case "--help", "-h":
			printUsage()
			os.Exit(0)
		default:
			fatalMsg("unknown argument: %s", osArgs[i])
		}
	}
	return args
}

func printUsage() {
	fmt.Printf(`%s - pipeline timings for the erpgrid table engine

%s
  erpgrid-bench [options]

%s
  --rows, -n <n,n,...>    Table sizes to benchmark (default: 1000,10000)
  --runs <n>              Runs per scenario, the median is reported (default: 5)
  --report, -r <path>     Write a markdown report
  --json, -j [path]       JSON output (file path or stdout if omitted)
  --no-color              Disable colored output
  --help, -h              Show this help

`,
		render(stBold, "erpgrid-bench"),
		render(stBold, "Usage:"),
		render(stBold, "Options:"))
}

// syntheticLeads repeats the sample leads until there are n, with unique ids.
func syntheticLeads(n int) []records.Lead {
	base := records.Builtin().Leads
	out := make([]records.Lead, n)
	for i := range out {
		l := base[i%len(base)]
		l.ID = fmt.Sprintf("LD-%07d", i+1)
		l.Value += float64(i % 97)
		out[i] = l
	}
	return out
}

func run(sc scenario, leads []records.Lead, runs int) benchResult {
	res := benchResult{Scenario: sc.name, Rows: len(leads)}
	times := make([]int64, 0, runs)

	for i := 0; i < runs; i++ {
		e, err := grid.New(grid.Options[records.Lead]{
			Columns: records.LeadColumns(),
			ID:      records.LeadID,
			Rows:    leads,
		})
		if err != nil {
			res.Error = err.Error()
			return res
		}
		sc.apply(e)

		start := time.Now()
		p := e.Page()
		times = append(times, time.Since(start).Nanoseconds())
		res.Matched = p.Total
	}

	slices.Sort(times)
	res.MedianNS = times[len(times)/2]
	return res
}

func formatDuration(ns int64) string {
	return time.Duration(ns).Round(time.Microsecond).String()
}

func printSummaryTable(results []benchResult) {
	fmt.Println()
	fmt.Println(styles.SectionHeader("  Summary"))
	fmt.Println()

	fmt.Printf("  %-26s %8s %8s %12s\n", "Scenario", "Rows", "Matched", "Median")
	fmt.Printf("  %s\n", render(stDim, strings.Repeat("─", 58)))

	for _, r := range results {
		if r.Error != "" {
			fmt.Printf("  %-26s %8d %s\n", r.Scenario, r.Rows, render(stError, r.Error))
			continue
		}
		fmt.Printf("  %-26s %8d %8d %12s\n", r.Scenario, r.Rows, r.Matched, formatDuration(r.MedianNS))
	}
	fmt.Println()
}

// ═══════════════════════════════════════════════════════════════════════════
// JSON output
// ═══════════════════════════════════════════════════════════════════════════

func writeJSONOutput(results []benchResult, path string) {
	var w *os.File
	if path == "" {
		w = os.Stdout
	} else {
		var err error
		w, err = os.Create(path)
		if err != nil {
			fatalMsg("Failed to create JSON file: %v", err)
		}
		defer w.Close()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(results)
}

// ═══════════════════════════════════════════════════════════════════════════
// Markdown report generation
// ═══════════════════════════════════════════════════════════════════════════

func writeMarkdownReport(path string, runs int, results []benchResult) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	defer w.Flush()

	p := func(format string, args ...any) {
		fmt.Fprintf(w, format+"\n", args...)
	}

	p("# erpgrid-bench Pipeline Report")
	p("")
	p("**Date:** %s", time.Now().Format("2006-01-02 15:04:05"))
	p("**Runs per scenario:** %d (median reported)", runs)
	p("")
	p("| Scenario | Rows | Matched | Median |")
	p("|:---------|-----:|--------:|-------:|")
	for _, r := range results {
		if r.Error != "" {
			p("| %s | %d | error: %s | |", r.Scenario, r.Rows, r.Error)
			continue
		}
		p("| %s | %d | %d | %s |", r.Scenario, r.Rows, r.Matched, formatDuration(r.MedianNS))
	}
	return nil
}

func fatalMsg(format string, args ...any) {
	fmt.Fprintln(os.Stderr, styles.ErrorMsg(fmt.Sprintf(format, args...)))
	os.Exit(1)
}

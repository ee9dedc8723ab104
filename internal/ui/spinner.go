package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/imgajeed76/erpgrid/internal/ui/styles"
	"github.com/imgajeed76/erpgrid/internal/upload"
	"github.com/imgajeed76/erpgrid/internal/util"
	"golang.org/x/term"
)

// Spinner provides a simple animated spinner for long operations
type Spinner struct {
	message string
	done    chan struct{}
	stopped chan struct{}
	once    sync.Once
}

// NewSpinner creates a new spinner with the given message
func NewSpinner(message string) *Spinner {
	return &Spinner{
		message: message,
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
}

// Start begins the spinner animation in the background
func (s *Spinner) Start() {
	// Accessible mode or non-TTY: just print static message to stderr
	if styles.IsAccessible() || !isTTY(os.Stderr) {
		fmt.Fprintln(os.Stderr, s.message+"...")
		close(s.stopped)
		return
	}

	go func() {
		defer close(s.stopped)
		frames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
		style := lipgloss.NewStyle().Foreground(styles.Accent)
		i := 0
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		for {
			select {
			case <-s.done:
				// Clear the spinner line
				fmt.Fprint(os.Stderr, "\r\033[K")
				return
			case <-ticker.C:
				frame := style.Render(frames[i%len(frames)])
				fmt.Fprintf(os.Stderr, "\r%s %s", frame, s.message)
				i++
			}
		}
	}()
}

// Stop stops the spinner and waits for its line to be cleared.
func (s *Spinner) Stop() {
	s.once.Do(func() { close(s.done) })
	<-s.stopped
}

// Error stops the spinner and shows an error message
func (s *Spinner) Error(msg string) {
	s.Stop()
	fmt.Fprintln(os.Stderr, styles.ErrorMsg(msg))
}

func isTTY(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// ══════════════════════════════════════════════════════════════════════════
// Upload progress
// ══════════════════════════════════════════════════════════════════════════

const barWidth = 30

// Bar renders a percent as a fixed-width bar.
func Bar(percent int) string {
	percent = min(max(percent, 0), 100)
	filled := percent * barWidth / 100
	if styles.NoColor() {
		return "[" + strings.Repeat("#", filled) + strings.Repeat(".", barWidth-filled) + "]"
	}
	return lipgloss.NewStyle().Foreground(styles.Success).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(styles.Muted).Render(strings.Repeat("░", barWidth-filled))
}

// ProgressLine renders one task's state.
func ProgressLine(p upload.Progress) string {
	label := fmt.Sprintf("%s %s", styles.Mute(util.ShortID(p.TaskID)), util.Truncate(p.Item.Name, 28))
	switch {
	case p.Done && p.Err != nil:
		return fmt.Sprintf("%s %s %s", label, Bar(p.Percent), styles.ErrorText(p.Err.Error()))
	case p.Done:
		return fmt.Sprintf("%s %s %s", label, Bar(p.Percent), styles.SuccessText("done"))
	}
	return fmt.Sprintf("%s %s %3d%%", label, Bar(p.Percent), p.Percent)
}

// WatchUploads draws one progress line per task until every task is done
// and returns the final progress of each, in task order. On a TTY the lines
// are redrawn in place; otherwise a line is printed at every 10% step.
func WatchUploads(w io.Writer, tasks []*upload.Task) []upload.Progress {
	type update struct {
		i int
		p upload.Progress
	}
	merged := make(chan update)
	var wg sync.WaitGroup
	for i, t := range tasks {
		i, t := i, t
		wg.Add(1)
		go func() {
			defer wg.Done()
			for p := range t.Progress() {
				merged <- update{i: i, p: p}
			}
		}()
	}
	go func() {
		wg.Wait()
		close(merged)
	}()

	last := make([]upload.Progress, len(tasks))
	for i, t := range tasks {
		last[i] = upload.Progress{TaskID: t.ID, Item: t.Item}
	}

	live := !styles.IsAccessible()
	if f, ok := w.(*os.File); !ok || !isTTY(f) {
		live = false
	}

	drawn := false
	for u := range merged {
		prev := last[u.i]
		last[u.i] = u.p
		if live {
			if drawn {
				fmt.Fprintf(w, "\033[%dA", len(last))
			}
			for _, p := range last {
				fmt.Fprintf(w, "\r\033[K%s\n", ProgressLine(p))
			}
			drawn = true
			continue
		}
		// Print every 10% to avoid spam
		if u.p.Done || u.p.Percent/10 != prev.Percent/10 {
			fmt.Fprintln(w, ProgressLine(u.p))
		}
	}
	return last
}

package sequence

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Observer receives diagnostic output from the step runner and from
// individual steps.
type Observer interface {
	// Info reports progress.
	Info(format string, v ...interface{})

	// Success reports a completed step or sequence.
	Success(format string, v ...interface{})

	// Warn reports a skipped guard or an ignored best-effort failure.
	Warn(format string, v ...interface{})

	// Error reports a fatal step failure.
	Error(format string, v ...interface{})
}

var (
	colorGreen  = lipgloss.Color("#22c55e")
	colorRed    = lipgloss.Color("#ef4444")
	colorYellow = lipgloss.Color("#eab308")
	colorBlue   = lipgloss.Color("#3b82f6")

	infoStyle    = lipgloss.NewStyle().Foreground(colorBlue)
	successStyle = lipgloss.NewStyle().Foreground(colorGreen)
	warnStyle    = lipgloss.NewStyle().Foreground(colorYellow)
	errorStyle   = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
)

const (
	infoMark    = "[..]"
	successMark = "[OK]"
	warnMark    = "[??]"
	errorMark   = "[!!]"
)

// ConsoleObserver writes marker-prefixed lines to a writer. Markers are
// colored when the writer is an interactive terminal.
type ConsoleObserver struct {
	mu     sync.Mutex
	out    io.Writer
	styled bool
}

// NewConsoleObserver returns an Observer writing to stdout.
func NewConsoleObserver() *ConsoleObserver {
	return &ConsoleObserver{
		out:    os.Stdout,
		styled: isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()),
	}
}

// NewWriterObserver returns an unstyled Observer writing to w.
func NewWriterObserver(w io.Writer) *ConsoleObserver {
	return &ConsoleObserver{out: w}
}

// Info implements Observer.
func (o *ConsoleObserver) Info(format string, v ...interface{}) {
	o.print(infoMark, infoStyle, format, v...)
}

// Success implements Observer.
func (o *ConsoleObserver) Success(format string, v ...interface{}) {
	o.print(successMark, successStyle, format, v...)
}

// Warn implements Observer.
func (o *ConsoleObserver) Warn(format string, v ...interface{}) {
	o.print(warnMark, warnStyle, format, v...)
}

// Error implements Observer.
func (o *ConsoleObserver) Error(format string, v ...interface{}) {
	o.print(errorMark, errorStyle, format, v...)
}

func (o *ConsoleObserver) print(mark string, style lipgloss.Style, format string, v ...interface{}) {
	if o.styled {
		mark = style.Render(mark)
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	fmt.Fprintf(o.out, "%s %s\n", mark, fmt.Sprintf(format, v...))
}

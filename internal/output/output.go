package output

import (
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/schollz/progressbar/v3"
)

// Logger prints progress lines for a scaffolding run.
type Logger struct {
	Out   io.Writer
	Err   io.Writer
	Debug bool

	mu sync.Mutex
}

// New returns a logger writing to the color-aware stdout and stderr.
func New(debug bool) *Logger {
	return &Logger{
		Out:   color.Output,
		Err:   color.Error,
		Debug: debug,
	}
}

// Discard returns a logger that prints nothing.
func Discard() *Logger {
	return &Logger{Out: io.Discard, Err: io.Discard}
}

func (l *Logger) out() io.Writer {
	if l == nil || l.Out == nil {
		return io.Discard
	}
	return l.Out
}

func (l *Logger) err() io.Writer {
	if l == nil || l.Err == nil {
		return io.Discard
	}
	return l.Err
}

// Info prints a general informational message.
func (l *Logger) Info(format string, a ...any) {
	fmt.Fprintf(l.out(), format+"\n", a...)
}

// Success prints a green progress line.
func (l *Logger) Success(format string, a ...any) {
	color.New(color.FgGreen).Fprintf(l.out(), "✅ "+format+"\n", a...)
}

// Step announces that a pipeline step has started.
func (l *Logger) Step(format string, a ...any) {
	color.New(color.Bold, color.FgCyan).Fprintf(l.out(), "📦 "+format+"\n", a...)
}

// Warning prints a cautionary message.
func (l *Logger) Warning(format string, a ...any) {
	color.New(color.FgYellow).Fprintf(l.err(), "⚠️  "+format+"\n", a...)
}

// Error prints a red error line.
func (l *Logger) Error(format string, a ...any) {
	color.New(color.Bold, color.FgRed).Fprintf(l.err(), "❌ "+format+"\n", a...)
}

// Debugf prints only when debug output is enabled.
func (l *Logger) Debugf(format string, a ...any) {
	if l == nil || !l.Debug {
		return
	}
	color.New(color.FgMagenta).Fprintf(l.out(), "🔍 "+format+"\n", a...)
}

// Stdout prints one line of child process output. Safe for concurrent use
// with Stderr.
func (l *Logger) Stdout(line string) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.out(), line)
}

// Stderr prints one line of child process error output in red.
func (l *Logger) Stderr(line string) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	color.New(color.FgRed).Fprintln(l.err(), line)
}

// Versions renders the pinned package versions as a table.
func (l *Logger) Versions(pinned map[string]string) {
	if len(pinned) == 0 {
		return
	}
	names := make([]string, 0, len(pinned))
	for name := range pinned {
		names = append(names, name)
	}
	sort.Strings(names)

	t := table.NewWriter()
	t.SetOutputMirror(l.out())
	t.AppendHeader(table.Row{"Package", "Version"})
	for _, name := range names {
		t.AppendRow(table.Row{name, pinned[name]})
	}
	t.SetStyle(table.StyleLight)
	t.Render()
}

// ProgressBar creates a bar for a known number of operations. It renders
// nothing when the logger has no terminal output.
func (l *Logger) ProgressBar(total int, description string) *progressbar.ProgressBar {
	w := l.out()
	if w != color.Output || color.NoColor {
		w = io.Discard
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription(fmt.Sprintf("[cyan][%s][reset] ", description)),
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
}

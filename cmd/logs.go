package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/olimci/depcat/pkg/diagnostic"
)

type logPrinter struct {
	out io.Writer
	mu  sync.Mutex

	levelStyles  map[diagnostic.Level]lipgloss.Style
	moduleStyle  lipgloss.Style
	subjectStyle lipgloss.Style
}

func newLogPrinter(out io.Writer) *logPrinter {
	p := &logPrinter{out: out}

	if !isTerminal(out) {
		return p
	}

	p.levelStyles = map[diagnostic.Level]lipgloss.Style{
		diagnostic.LevelDebug:   lipgloss.NewStyle().Foreground(lipgloss.Color("#6c7086")), // muted
		diagnostic.LevelInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("#89b4fa")), // blue
		diagnostic.LevelWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("#f9e2af")), // yellow
		diagnostic.LevelError:   lipgloss.NewStyle().Foreground(lipgloss.Color("#f38ba8")), // red
	}
	p.moduleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#a6adc8"))  // grey
	p.subjectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#cdd6f4")) // text
	return p
}

func (p *logPrinter) Print(d diagnostic.Diagnostic) {
	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintln(p.out, p.format(d))
}

func (p *logPrinter) format(d diagnostic.Diagnostic) string {
	level, module, subject := d.Level.String(), d.Module, d.Subject
	if style, ok := p.levelStyles[d.Level]; ok {
		level = style.Render(level)
		if module != "" {
			module = p.moduleStyle.Render(module)
		}
		if subject != "" {
			subject = p.subjectStyle.Render(subject)
		}
	}

	var b strings.Builder
	b.WriteString(level)
	if module != "" {
		b.WriteString(" [")
		b.WriteString(module)
		b.WriteString("]")
	}
	b.WriteString(": ")

	if subject != "" {
		b.WriteString(subject)
		b.WriteString(": ")
	}

	b.WriteString(d.Message)
	if d.Err != nil {
		b.WriteString(": ")
		b.WriteString(d.Err.Error())
	}

	return b.String()
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

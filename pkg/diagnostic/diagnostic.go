package diagnostic

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Level represents the severity of a diagnostic.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarning
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// ParseLevel converts a string to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warning", "warn":
		return LevelWarning, nil
	case "error", "err":
		return LevelError, nil
	default:
		return LevelDebug, fmt.Errorf("unknown level: %s", s)
	}
}

// Diagnostic is a single finding reported while loading a manifest or
// evaluating dependency requests.
type Diagnostic struct {
	Level   Level
	Module  string // module that declared the request, if any
	Subject string // coordinate, property key or file path
	Message string
	Err     error
}

func (d Diagnostic) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] ", d.Level)
	if d.Module != "" {
		fmt.Fprintf(&b, "(%s) ", d.Module)
	}
	if d.Subject != "" {
		b.WriteString(d.Subject)
		b.WriteString(": ")
	}
	b.WriteString(d.Message)
	if d.Err != nil {
		fmt.Fprintf(&b, ": %v", d.Err)
	}
	return b.String()
}

// Sink receives diagnostics.
type Sink interface {
	Report(d Diagnostic)
}

// Collector is the default thread-safe Sink. It keeps what it receives so
// the caller can summarise a run, and can be cleared between watch passes.
type Collector struct {
	mu          sync.RWMutex
	diagnostics []Diagnostic
	minLevel    Level

	onReport func(Diagnostic)
}

// CollectorOption configures a Collector.
type CollectorOption func(*Collector)

// WithMinLevel drops diagnostics below level.
func WithMinLevel(level Level) CollectorOption {
	return func(c *Collector) {
		c.minLevel = level
	}
}

// WithOnReport sets a callback invoked for every collected diagnostic.
// The callback runs outside the collector's lock.
func WithOnReport(fn func(Diagnostic)) CollectorOption {
	return func(c *Collector) {
		c.onReport = fn
	}
}

// NewCollector creates a Collector. By default every level is kept.
func NewCollector(opts ...CollectorOption) *Collector {
	c := &Collector{
		minLevel: LevelDebug,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Collector) Report(d Diagnostic) {
	if d.Level < c.minLevel {
		return
	}

	c.mu.Lock()
	c.diagnostics = append(c.diagnostics, d)
	callback := c.onReport
	c.mu.Unlock()

	if callback != nil {
		callback(d)
	}
}

func (c *Collector) Diagnostics() []Diagnostic {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.diagnostics)
}

// HasLevel reports whether any diagnostic at or above level was collected.
func (c *Collector) HasLevel(level Level) bool {
	return slices.ContainsFunc(c.Diagnostics(), func(d Diagnostic) bool {
		return d.Level >= level
	})
}

func (c *Collector) Clear() {
	c.mu.Lock()
	c.diagnostics = nil
	c.mu.Unlock()
}

// CountByLevel returns the number of diagnostics per level.
func (c *Collector) CountByLevel() map[Level]int {
	counts := make(map[Level]int)
	for _, d := range c.Diagnostics() {
		counts[d.Level]++
	}
	return counts
}

// Summary renders counts, most severe first, e.g. "1 error(s), 2 warning(s)".
func (c *Collector) Summary() string {
	counts := c.CountByLevel()
	if len(counts) == 0 {
		return "no diagnostics"
	}

	var parts []string
	for _, level := range []Level{LevelError, LevelWarning, LevelInfo, LevelDebug} {
		if n := counts[level]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s(s)", n, level))
		}
	}
	return strings.Join(parts, ", ")
}

type noopSink struct{}

func (noopSink) Report(Diagnostic) {}

// Discard returns a Sink that drops everything.
func Discard() Sink {
	return noopSink{}
}

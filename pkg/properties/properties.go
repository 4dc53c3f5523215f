// Package properties reads and writes flat key/value property files, the
// format dependency manifests are authored in.
package properties

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/olimci/depcat/pkg/diagnostic"
	"gopkg.in/ini.v1"
)

var (
	ErrSyntax  = errors.New("malformed properties")
	ErrSection = errors.New("section headers are not allowed in properties")
)

// Property is a single key=value entry.
type Property struct {
	Key   string
	Value string
}

// Properties is an ordered list of properties. Keys are unique and appear in
// the order they were first declared.
type Properties []Property

func (p Properties) Len() int {
	return len(p)
}

func (p Properties) Keys() []string {
	keys := make([]string, len(p))
	for i, prop := range p {
		keys[i] = prop.Key
	}
	return keys
}

// Get returns the value of key.
func (p Properties) Get(key string) (string, bool) {
	for _, prop := range p {
		if prop.Key == key {
			return prop.Value, true
		}
	}
	return "", false
}

// Format writes the properties as key=value lines.
func (p Properties) Format(w io.Writer) error {
	for _, prop := range p {
		if _, err := fmt.Fprintf(w, "%s=%s\n", prop.Key, prop.Value); err != nil {
			return err
		}
	}
	return nil
}

func (p Properties) String() string {
	var b strings.Builder
	_ = p.Format(&b)
	return b.String()
}

type options struct {
	sink   diagnostic.Sink
	source string
}

func (o *options) apply(opts ...Option) *options {
	for _, opt := range opts {
		opt(o)
	}
	return o
}

type Option func(*options)

// WithSink reports keys that are declared more than once.
func WithSink(sink diagnostic.Sink) Option {
	return func(o *options) {
		o.sink = sink
	}
}

// WithSource names the text being read in diagnostics, usually a file path.
func WithSource(name string) Option {
	return func(o *options) {
		o.source = name
	}
}

// Read parses properties text. Blank lines and lines starting with '#', '!'
// or ';' are ignored, keys and values are separated by '=' or ':'. Values
// are kept verbatim, quotes included. A key declared more than once keeps
// its last value.
func Read(text string, opts ...Option) (Properties, error) {
	o := (&options{sink: diagnostic.Discard()}).apply(opts...)

	f, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment:        true,
		AllowShadows:               true,
		AllowDuplicateShadowValues: true,
		PreserveSurroundedQuote:    true,
		KeyValueDelimiters:         "=:",
	}, []byte(bangComments(text)))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSyntax, err)
	}

	for _, sec := range f.Sections() {
		if sec.Name() != ini.DefaultSection {
			return nil, fmt.Errorf("%w: [%s]", ErrSection, sec.Name())
		}
	}

	sec := f.Section(ini.DefaultSection)
	out := make(Properties, 0, len(sec.Keys()))
	for _, name := range sec.KeyStrings() {
		key := sec.Key(name)
		value := key.Value()

		if values := key.ValueWithShadows(); len(values) > 1 {
			value = values[len(values)-1]
			o.sink.Report(diagnostic.Diagnostic{
				Level:   diagnostic.LevelWarning,
				Subject: name,
				Message: fmt.Sprintf("property declared %d times in %s, using last value %q", len(values), o.sourceName(), value),
			})
		}

		out = append(out, Property{Key: name, Value: value})
	}

	return out, nil
}

func (o *options) sourceName() string {
	if o.source == "" {
		return "manifest"
	}
	return o.source
}

// bangComments rewrites '!' comment lines, which ini does not know, as '#'
// comments.
func bangComments(text string) string {
	if !strings.Contains(text, "!") {
		return text
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		if strings.HasPrefix(trimmed, "!") {
			lines[i] = "#" + trimmed[1:]
		}
	}
	return strings.Join(lines, "\n")
}

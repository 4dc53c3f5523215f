package check

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/olimci/depcat/pkg/policy"
	"gopkg.in/yaml.v3"
)

// Format is an output format for reports and listings.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

var ErrUnknownFormat = errors.New("unknown format")

var Formats = []Format{FormatText, FormatJSON, FormatYAML, FormatTOML}

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatYAML, FormatTOML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("%w: %q (want text, json, yaml or toml)", ErrUnknownFormat, s)
	}
}

// Report holds the outcome of a check.
type Report struct {
	Strictness policy.Strictness
	Manifest   string
	Results    []Result

	failOnWarn bool
}

// Summary counts results by decision.
type Summary struct {
	Accepted int `json:"accepted" yaml:"accepted" toml:"accepted"`
	Rejected int `json:"rejected" yaml:"rejected" toml:"rejected"`
	Warned   int `json:"warned" yaml:"warned" toml:"warned"`
}

func (s Summary) String() string {
	return fmt.Sprintf("%d accepted, %d rejected, %d warned", s.Accepted, s.Rejected, s.Warned)
}

func (r *Report) Summary() Summary {
	var s Summary
	for _, res := range r.Results {
		switch res.Decision.Kind {
		case policy.Accept:
			s.Accepted++
		case policy.Reject:
			s.Rejected++
		case policy.Warn:
			s.Warned++
		}
	}
	return s
}

// Err joins every rejection. If warnings were asked to fail the check and
// the strictness lets them escalate, it also reports ErrWarningsAsErrors.
func (r *Report) Err() error {
	var errs []error
	warned := 0
	for _, res := range r.Results {
		switch res.Decision.Kind {
		case policy.Reject:
			errs = append(errs, fmt.Errorf("%s: %w", res.Module, res.Decision.Err()))
		case policy.Warn:
			warned++
		}
	}

	if r.failOnWarn && warned > 0 && r.Strictness.Escalates() {
		errs = append(errs, fmt.Errorf("%w: %d warning(s) at strictness %s", ErrWarningsAsErrors, warned, r.Strictness))
	}

	return errors.Join(errs...)
}

type reportDoc struct {
	Strictness string      `json:"strictness" yaml:"strictness" toml:"strictness"`
	Manifest   string      `json:"manifest,omitempty" yaml:"manifest,omitempty" toml:"manifest,omitempty"`
	Summary    Summary     `json:"summary" yaml:"summary" toml:"summary"`
	Results    []resultDoc `json:"results" yaml:"results" toml:"results"`
}

type resultDoc struct {
	Module    string `json:"module" yaml:"module" toml:"module"`
	Group     string `json:"group" yaml:"group" toml:"group"`
	Name      string `json:"name" yaml:"name" toml:"name"`
	Requested string `json:"requested,omitempty" yaml:"requested,omitempty" toml:"requested,omitempty"`
	Decision  string `json:"decision" yaml:"decision" toml:"decision"`
	Version   string `json:"version,omitempty" yaml:"version,omitempty" toml:"version,omitempty"`
	Message   string `json:"message,omitempty" yaml:"message,omitempty" toml:"message,omitempty"`
}

func (r *Report) doc() reportDoc {
	doc := reportDoc{
		Strictness: r.Strictness.String(),
		Manifest:   r.Manifest,
		Summary:    r.Summary(),
		Results:    make([]resultDoc, len(r.Results)),
	}
	for i, res := range r.Results {
		doc.Results[i] = resultDoc{
			Module:    res.Module,
			Group:     res.Request.Group,
			Name:      res.Request.Name,
			Requested: strings.TrimSpace(res.Request.Version),
			Decision:  res.Decision.Kind.String(),
			Version:   res.Version(),
			Message:   res.Decision.Message,
		}
	}
	return doc
}

// Write renders the report.
func (r *Report) Write(w io.Writer, format Format) error {
	if format == FormatText || format == "" {
		return r.writeText(w)
	}
	return Encode(w, format, r.doc())
}

func (r *Report) writeText(w io.Writer) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("MODULE", "DEPENDENCY", "DECISION", "VERSION", "MESSAGE")

	for _, res := range r.Results {
		t.Row(res.Module, res.Request.String(), res.Decision.Kind.String(), res.Version(), res.Decision.Message)
	}

	if len(r.Results) > 0 {
		if _, err := fmt.Fprintln(w, t.String()); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%s (strictness %s)\n", r.Summary(), r.Strictness)
	return err
}

// Encode writes v in a structured format.
func Encode(w io.Writer, format Format, v any) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case FormatTOML:
		return toml.NewEncoder(w).Encode(v)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/olimci/depcat/pkg/check"
	"github.com/olimci/depcat/pkg/manifest"
	"github.com/urfave/cli/v3"
)

type listing struct {
	Manifest     string                      `json:"manifest" yaml:"manifest" toml:"manifest"`
	Dependencies []manifest.DependencyRecord `json:"dependencies" yaml:"dependencies" toml:"dependencies"`
}

func runList(ctx context.Context, cmd *cli.Command) error {
	format, err := check.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	dir, err := projectDir(cmd)
	if err != nil {
		return err
	}

	loc, err := locateManifest(cmd, dir)
	if err != nil {
		return err
	}

	m, err := loadManifest(loc, newSink(cmd))
	if err != nil {
		return err
	}

	if format != check.FormatText {
		return check.Encode(os.Stdout, format, listing{
			Manifest:     m.Source(),
			Dependencies: m.Records(),
		})
	}
	return writeListText(os.Stdout, m)
}

func writeListText(w io.Writer, m *manifest.Manifest) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("GROUP", "NAME", "VERSION")

	for _, r := range m.Records() {
		t.Row(r.Group, r.Name, r.Version)
	}

	if m.Len() > 0 {
		if _, err := fmt.Fprintln(w, t.String()); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%d dependencies in %s\n", m.Len(), m.Source())
	return err
}

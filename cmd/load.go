package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/olimci/depcat/pkg/diagnostic"
	"github.com/olimci/depcat/pkg/locate"
	"github.com/olimci/depcat/pkg/manifest"
	"github.com/olimci/depcat/pkg/policy"
	"github.com/olimci/depcat/pkg/properties"
	"github.com/urfave/cli/v3"
)

// projectDir returns the absolute --project directory.
func projectDir(cmd *cli.Command) (string, error) {
	dir := strings.TrimSpace(cmd.String("project"))
	if dir == "" {
		dir = "."
	}
	return filepath.Abs(dir)
}

// locateManifest honours --manifest, falling back to the location search.
func locateManifest(cmd *cli.Command, dir string) (locate.Location, error) {
	if p := strings.TrimSpace(cmd.String("manifest")); p != "" {
		abs, err := filepath.Abs(p)
		if err != nil {
			return locate.Location{}, err
		}
		return locate.Location{Path: abs, Source: locate.SourceFlag, Origin: "--manifest"}, nil
	}
	return locate.Manifest(dir, locate.OS())
}

func resolveStrictness(cmd *cli.Command, dir string) (policy.Strictness, error) {
	level, src, err := locate.Strictness(dir, locate.OS(), cmd.String("strictness"))
	if err != nil {
		return policy.Strict, err
	}
	log.Debug("strictness", "level", level, "source", src)
	return level, nil
}

// loadManifest reads, parses and builds the manifest at loc. Duplicate keys
// and coordinates are reported to sink.
func loadManifest(loc locate.Location, sink diagnostic.Sink) (*manifest.Manifest, error) {
	text, err := os.ReadFile(loc.Path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	records, err := manifest.ParseText(string(text),
		properties.WithSink(sink),
		properties.WithSource(loc.Path),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", loc.Path, err)
	}

	m, err := manifest.Build(records,
		manifest.WithSink(sink),
		manifest.WithSource(loc.Path),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", loc.Path, err)
	}

	log.Debug("manifest loaded", "path", loc.Path, "source", loc.Source, "entries", m.Len())
	return m, nil
}

// newSink builds the collector that streams diagnostics to stderr at or
// above the --log-level.
func newSink(cmd *cli.Command) *diagnostic.Collector {
	min, err := diagnostic.ParseLevel(cmd.String("log-level"))
	if err != nil {
		min = diagnostic.LevelInfo
	}
	printer := newLogPrinter(os.Stderr)
	return diagnostic.NewCollector(
		diagnostic.WithMinLevel(min),
		diagnostic.WithOnReport(printer.Print),
	)
}

// logDiagnostics prints one summary line for the diagnostics of a run.
func logDiagnostics(sink *diagnostic.Collector) {
	if sink.HasLevel(diagnostic.LevelWarning) {
		log.Warn("diagnostics", "summary", sink.Summary())
		return
	}
	log.Debug("diagnostics", "summary", sink.Summary())
}

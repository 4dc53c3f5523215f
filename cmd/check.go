package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/olimci/depcat/pkg/check"
	"github.com/olimci/depcat/pkg/config"
	"github.com/olimci/depcat/pkg/diagnostic"
	"github.com/olimci/depcat/pkg/metrics"
	"github.com/olimci/depcat/pkg/utils/fileutils"
	"github.com/olimci/depcat/pkg/watcher"
	"github.com/olimci/depcat/pkg/workspace"
	"github.com/urfave/cli/v3"
)

var ErrUnknownModule = errors.New("unknown module")

func runCheck(ctx context.Context, cmd *cli.Command) error {
	if _, err := check.ParseFormat(cmd.String("format")); err != nil {
		return err
	}

	sink := newSink(cmd)
	if cmd.Bool("watch") {
		return runCheckWatch(ctx, cmd, sink)
	}

	_, err := checkOnce(ctx, cmd, sink)
	logDiagnostics(sink)
	return err
}

// checkSettings are the run options that fall back to the root config's
// [check] table when their flag is unset.
type checkSettings struct {
	Workers    int
	FailOnWarn bool
}

func resolveCheckSettings(cmd *cli.Command, cfg *config.Config) checkSettings {
	s := checkSettings{
		Workers:    cfg.Check.Workers,
		FailOnWarn: cfg.Check.FailOnWarn,
	}
	if n := int(cmd.Int("workers")); n > 0 {
		s.Workers = n
	}
	if cmd.IsSet("fail-on-warn") {
		s.FailOnWarn = cmd.Bool("fail-on-warn")
	}
	return s
}

// selectModules narrows the workspace to --module when it is set.
func selectModules(cmd *cli.Command, ws *workspace.Workspace) ([]*workspace.Module, error) {
	name := strings.TrimSpace(cmd.String("module"))
	if name == "" {
		return ws.Modules, nil
	}
	m, ok := ws.Module(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownModule, name)
	}
	return []*workspace.Module{m}, nil
}

// checkOnce loads the workspace and manifest, runs the check and writes the
// report. It returns the manifest path that was used.
func checkOnce(ctx context.Context, cmd *cli.Command, sink diagnostic.Sink) (string, error) {
	format, err := check.ParseFormat(cmd.String("format"))
	if err != nil {
		return "", err
	}

	dir, err := projectDir(cmd)
	if err != nil {
		return "", err
	}

	ws, err := workspace.Load(dir)
	if err != nil {
		return "", err
	}
	log.Debug("workspace loaded", "modules", len(ws.Modules), "requests", ws.RequestCount())

	modules, err := selectModules(cmd, ws)
	if err != nil {
		return "", err
	}

	level, err := resolveStrictness(cmd, dir)
	if err != nil {
		return "", err
	}

	loc, err := locateManifest(cmd, dir)
	if err != nil {
		return "", err
	}

	m, err := loadManifest(loc, sink)
	if err != nil {
		return loc.Path, err
	}

	if cmd.Bool("lint") {
		if n := check.Lint(m, sink); n > 0 {
			log.Debug("lint", "findings", n)
		}
	}

	var rec *metrics.Recorder
	metricsFile := strings.TrimSpace(cmd.String("metrics-file"))
	if metricsFile != "" {
		rec = metrics.New()
		rec.SetManifestEntries(m.Len())
	}

	settings := resolveCheckSettings(cmd, ws.Root)
	opts := []check.Option{
		check.WithSink(sink),
		check.WithFailOnWarn(settings.FailOnWarn),
		check.WithMaxWorkers(settings.Workers),
	}
	if rec != nil {
		opts = append(opts, check.WithRecorder(rec))
	}

	report, err := check.Run(ctx, m, level, check.TargetsOf(modules), opts...)
	if err != nil {
		return loc.Path, err
	}

	if err := writeReport(cmd.String("out"), report, format); err != nil {
		return loc.Path, err
	}

	if rec != nil {
		if err := rec.WriteTextfile(metricsFile); err != nil {
			return loc.Path, fmt.Errorf("writing metrics: %w", err)
		}
	}

	return loc.Path, report.Err()
}

func writeReport(out string, report *check.Report, format check.Format) error {
	out = strings.TrimSpace(out)
	if out == "" {
		return report.Write(os.Stdout, format)
	}

	var buf bytes.Buffer
	if err := report.Write(&buf, format); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return err
	}
	changed, err := fileutils.AtomicUpdate(out, func(w io.Writer) error {
		_, err := w.Write(buf.Bytes())
		return err
	})
	if err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	if changed {
		log.Info("report written", "path", out)
	} else {
		log.Debug("report unchanged", "path", out)
	}
	return nil
}

func runCheckWatch(ctx context.Context, cmd *cli.Command, sink *diagnostic.Collector) error {
	dir, err := projectDir(cmd)
	if err != nil {
		return err
	}

	// targets runs on the watcher goroutine
	var manifestPath atomic.Value
	manifestPath.Store("")

	path, err := checkOnce(ctx, cmd, sink)
	manifestPath.Store(path)
	logCheckResult(sink, err)

	targets := func() ([]string, []string, error) {
		ws, err := workspace.Load(dir)
		if err != nil {
			return nil, nil, err
		}
		paths, globs := ws.WatchedPaths()
		if p := manifestPath.Load().(string); p != "" {
			paths = append(paths, p)
		}
		return paths, globs, nil
	}

	w, err := watcher.New(dir, targets, cmd.Duration("debounce"))
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Start(ctx); err != nil {
		return err
	}

	log.Info("watching for changes", "files", len(w.Files()))

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-w.Events:
			log.Info("re-checking", "reason", ev.Reason)
			sink.Clear()
			path, err := checkOnce(ctx, cmd, sink)
			if path != "" {
				manifestPath.Store(path)
			}
			logCheckResult(sink, err)
		case err := <-w.Errors:
			log.Warn("watcher", "err", err)
		}
	}
}

func logCheckResult(sink *diagnostic.Collector, err error) {
	logDiagnostics(sink)
	if err != nil {
		log.Error("check failed", "err", err)
		return
	}
	log.Info("check passed")
}

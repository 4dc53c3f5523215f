package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/olimci/depcat/pkg/config"
	"github.com/olimci/depcat/pkg/manifest"
	"github.com/olimci/depcat/pkg/policy"
	"github.com/olimci/depcat/pkg/utils/fileutils"
	"github.com/olimci/depcat/pkg/version"
	"github.com/urfave/cli/v3"
)

var ErrConfigExists = errors.New("config already exists (use --force to overwrite)")

// exampleRecords seeds a freshly created manifest.
var exampleRecords = []manifest.DependencyRecord{
	{Group: "junit", Name: "junit", Version: "4.13.2"},
	{Group: "org.slf4j", Name: "slf4j-api", Version: "2.0.13"},
}

type initParams struct {
	Dir        string
	Name       string
	Manifest   string
	Strictness string
	Force      bool
}

func runInit(ctx context.Context, cmd *cli.Command) error {
	target := "."
	if cmd.NArg() > 0 {
		target = cmd.Args().First()
	}

	dir, err := filepath.Abs(target)
	if err != nil {
		return fmt.Errorf("resolving target directory: %w", err)
	}

	params := initParams{
		Dir:        dir,
		Name:       strings.TrimSpace(cmd.String("name")),
		Manifest:   strings.TrimSpace(cmd.String("manifest")),
		Strictness: strings.TrimSpace(cmd.String("strictness")),
		Force:      cmd.Bool("force"),
	}
	if params.Name == "" {
		params.Name = filepath.Base(dir)
	}

	if !cmd.Bool("yes") && isTerminal(os.Stdin) {
		res, err := runInitInteractive(ctx, params)
		if err != nil {
			return err
		}
		if res.Cancelled {
			log.Info("init cancelled")
			return nil
		}
		params = res.Params
	}

	return writeProject(params, os.Stdout)
}

func writeProject(params initParams, out io.Writer) error {
	level, err := policy.ParseStrictness(params.Strictness)
	if err != nil {
		return err
	}
	if params.Manifest == "" || filepath.IsAbs(params.Manifest) {
		return fmt.Errorf("manifest path must be relative to the project, got %q", params.Manifest)
	}

	cfgPath := filepath.Join(params.Dir, config.Filenames[0])
	if existing, err := config.Find(params.Dir); err == nil && !params.Force {
		return fmt.Errorf("%s: %w", existing, ErrConfigExists)
	}

	cfg := config.DefaultConfig()
	cfg.Depcat.Version = ">= " + version.String()
	cfg.Project.Name = params.Name
	cfg.Manifest.Path = filepath.ToSlash(params.Manifest)
	cfg.Manifest.Strictness = level.String()

	if err := os.MkdirAll(params.Dir, 0o755); err != nil {
		return err
	}
	if err := cfg.Save(cfgPath); err != nil {
		return fmt.Errorf("writing %s: %w", cfgPath, err)
	}
	fmt.Fprintf(out, "created %s\n", cfgPath)

	manifestPath := filepath.Join(params.Dir, filepath.FromSlash(params.Manifest))
	if _, err := os.Stat(manifestPath); err == nil {
		fmt.Fprintf(out, "kept existing %s\n", manifestPath)
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(manifestPath), 0o755); err != nil {
		return err
	}
	err = fileutils.AtomicWrite(manifestPath, func(w io.Writer) error {
		return manifest.ToProperties(exampleRecords).Format(w)
	})
	if err != nil {
		return fmt.Errorf("writing %s: %w", manifestPath, err)
	}
	fmt.Fprintf(out, "created %s\n", manifestPath)

	return nil
}

package cmd

import (
	"context"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/olimci/depcat/pkg/check"
	"github.com/olimci/depcat/pkg/version"
	"github.com/urfave/cli/v3"
)

var Version = version.String()

func Execute(ctx context.Context, args []string) error {
	app := &cli.Command{
		Name:  "depcat",
		Usage: "Keep dependency versions in one manifest and enforce it across modules",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Usage:   "log level (debug, info, warn, error)",
				Sources: cli.EnvVars("DEPCAT_LOG_LEVEL"),
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "version",
				Usage:  "print version",
				Action: runVersion,
			},
			{
				Name:      "init",
				Usage:     "Create a depcat.toml and an example manifest",
				ArgsUsage: "[directory]",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Project name (defaults to directory name)"},
					&cli.StringFlag{Name: "manifest", Aliases: []string{"m"}, Value: "dependencies.properties", Usage: "Manifest path, relative to the project"},
					&cli.StringFlag{Name: "strictness", Aliases: []string{"s"}, Value: "strict", Usage: "strict, loosely or loose"},
					&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "Accept defaults without prompting"},
					&cli.BoolFlag{Name: "force", Aliases: []string{"f"}, Usage: "Overwrite an existing depcat.toml"},
				},
				Action: runInit,
			},
			{
				Name:   "list",
				Usage:  "Print the manifest entries",
				Flags:  append(manifestFlags(), formatFlag()),
				Action: runList,
			},
			{
				Name:      "resolve",
				Usage:     "Evaluate group:name[:version] requests against the manifest",
				ArgsUsage: "COORD...",
				Flags:     append(manifestFlags(), strictnessFlag(), formatFlag()),
				Action:    runResolve,
			},
			{
				Name:   "check",
				Usage:  "Check every module of the workspace against the manifest",
				Flags:  checkFlags(),
				Action: runCheck,
			},
		},
	}

	return app.Run(ctx, args)
}

func setupLogger(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	level, err := log.ParseLevel(cmd.String("log-level"))
	if err != nil {
		return ctx, err
	}

	log.SetDefault(log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: false,
		Prefix:          "depcat",
	}))
	return ctx, nil
}

func manifestFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "project", Aliases: []string{"p"}, Value: ".", Usage: "project directory"},
		&cli.StringFlag{Name: "manifest", Aliases: []string{"m"}, Usage: "manifest file (skips the location search)"},
	}
}

func strictnessFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "strictness",
		Aliases: []string{"s"},
		Usage:   "strict, loosely or loose (overrides DEPCAT_STRICTNESS and config)",
	}
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"o"},
		Value:   string(check.FormatText),
		Usage:   "output format (text, json, yaml, toml)",
	}
}

func checkFlags() []cli.Flag {
	return append(manifestFlags(),
		strictnessFlag(),
		formatFlag(),
		&cli.BoolFlag{Name: "fail-on-warn", Usage: "treat warnings as errors (loosely only)", Sources: cli.EnvVars("DEPCAT_FAIL_ON_WARN")},
		&cli.StringFlag{Name: "out", Usage: "write the report to a file instead of stdout"},
		&cli.StringFlag{Name: "metrics-file", Usage: "write prometheus metrics to a textfile", Sources: cli.EnvVars("DEPCAT_METRICS_FILE")},
		&cli.StringFlag{Name: "module", Usage: "check only the named workspace module"},
		&cli.IntFlag{Name: "workers", Aliases: []string{"j"}, Usage: "max concurrent resolutions (0 uses config, then one per CPU)"},
		&cli.BoolFlag{Name: "watch", Aliases: []string{"w"}, Usage: "re-run the check when the manifest or configs change"},
		&cli.DurationFlag{Name: "debounce", Value: 250 * time.Millisecond, Usage: "debounce window for --watch"},
		&cli.BoolFlag{Name: "lint", Usage: "report manifest versions that are not semantic versions"},
	)
}

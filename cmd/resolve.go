package cmd

import (
	"context"
	"errors"
	"os"

	"github.com/olimci/depcat/pkg/check"
	"github.com/olimci/depcat/pkg/policy"
	"github.com/urfave/cli/v3"
)

var ErrNoRequests = errors.New("no dependencies given (want group:name[:version])")

// cliModule names the target for requests given on the command line.
const cliModule = "cli"

func runResolve(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() == 0 {
		return ErrNoRequests
	}

	format, err := check.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	reqs := make([]policy.Request, 0, cmd.NArg())
	for _, arg := range cmd.Args().Slice() {
		req, err := policy.ParseRequest(arg)
		if err != nil {
			return err
		}
		reqs = append(reqs, req)
	}

	dir, err := projectDir(cmd)
	if err != nil {
		return err
	}

	level, err := resolveStrictness(cmd, dir)
	if err != nil {
		return err
	}

	loc, err := locateManifest(cmd, dir)
	if err != nil {
		return err
	}

	sink := newSink(cmd)
	m, err := loadManifest(loc, sink)
	if err != nil {
		return err
	}

	report, err := check.Run(ctx, m, level, []check.Target{{Module: cliModule, Requests: reqs}},
		check.WithSink(sink),
	)
	if err != nil {
		return err
	}
	logDiagnostics(sink)

	if err := report.Write(os.Stdout, format); err != nil {
		return err
	}
	return report.Err()
}

// Package check applies the resolution policy to every dependency a
// workspace declares.
package check

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/olimci/depcat/pkg/diagnostic"
	"github.com/olimci/depcat/pkg/manifest"
	"github.com/olimci/depcat/pkg/policy"
	"github.com/olimci/depcat/pkg/workspace"
	"golang.org/x/sync/errgroup"
)

var ErrWarningsAsErrors = errors.New("warnings treated as errors")

// Target is a named set of requests, usually one workspace module.
type Target struct {
	Module   string
	Requests []policy.Request
}

// TargetsOf converts workspace modules to targets.
func TargetsOf(modules []*workspace.Module) []Target {
	out := make([]Target, len(modules))
	for i, m := range modules {
		out[i] = Target{Module: m.Name, Requests: m.Requests()}
	}
	return out
}

// Result is the decision for one request.
type Result struct {
	Module   string
	Request  policy.Request
	Decision policy.Decision
}

// Version is the version the dependency resolves to: the manifest version
// when accepted, the caller's own version when warned, empty when rejected.
func (r Result) Version() string {
	switch r.Decision.Kind {
	case policy.Accept:
		return r.Decision.Version
	case policy.Warn:
		return r.Request.Version
	default:
		return ""
	}
}

type job struct {
	slot   int
	module string
	req    policy.Request
}

// Run resolves every request of every target against m. Requests are
// resolved concurrently, but results keep target order, then declaration
// order.
func Run(ctx context.Context, m *manifest.Manifest, level policy.Strictness, targets []Target, opts ...Option) (*Report, error) {
	o := defaultOptions().apply(opts...)
	start := time.Now()

	var jobs []job
	for _, t := range targets {
		for _, req := range t.Requests {
			jobs = append(jobs, job{slot: len(jobs), module: t.Module, req: req})
		}
	}

	results := make([]Result, len(jobs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(o.maxWorkers)

	for _, j := range jobs {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			d := policy.Resolve(j.req, m, level)
			results[j.slot] = Result{Module: j.module, Request: j.req, Decision: d}

			o.sink.Report(diagnose(j.module, j.req, d, level))
			if o.recorder != nil {
				o.recorder.ObserveDecision(d, level)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("check: %w", err)
	}
	if o.recorder != nil {
		o.recorder.ObserveCheck(time.Since(start))
	}

	return &Report{
		Strictness: level,
		Manifest:   m.Source(),
		Results:    results,
		failOnWarn: o.failOnWarn,
	}, nil
}

func diagnose(module string, req policy.Request, d policy.Decision, level policy.Strictness) diagnostic.Diagnostic {
	diag := diagnostic.Diagnostic{Module: module}

	// reject and warn messages already name the coordinate
	switch d.Kind {
	case policy.Accept:
		diag.Level = diagnostic.LevelDebug
		diag.Subject = req.Coordinate()
		diag.Message = "resolved to " + d.Version
	case policy.Reject:
		diag.Level = diagnostic.LevelError
		diag.Message = d.Message
		diag.Err = d.Reason
	case policy.Warn:
		diag.Level = diagnostic.LevelInfo
		if level.Escalates() {
			diag.Level = diagnostic.LevelWarning
		}
		diag.Message = d.Message
	}

	return diag
}

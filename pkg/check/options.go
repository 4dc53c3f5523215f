package check

import (
	"runtime"
	"time"

	"github.com/olimci/depcat/pkg/diagnostic"
	"github.com/olimci/depcat/pkg/policy"
)

// Recorder observes decisions, e.g. a *metrics.Recorder.
type Recorder interface {
	ObserveDecision(d policy.Decision, level policy.Strictness)
	ObserveCheck(d time.Duration)
}

func defaultOptions() *options {
	return &options{
		maxWorkers: runtime.NumCPU(),
		sink:       diagnostic.Discard(),
	}
}

type options struct {
	maxWorkers int
	sink       diagnostic.Sink
	failOnWarn bool
	recorder   Recorder
}

func (o *options) apply(opts ...Option) *options {
	for _, opt := range opts {
		opt(o)
	}

	return o
}

type Option func(*options)

// WithMaxWorkers bounds the number of requests resolved at once. Values
// below 1 keep the default of one worker per CPU.
func WithMaxWorkers(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxWorkers = n
		}
	}
}

// WithSink receives a diagnostic for every decision.
func WithSink(sink diagnostic.Sink) Option {
	return func(o *options) {
		if sink != nil {
			o.sink = sink
		}
	}
}

// WithFailOnWarn makes warnings fail the report at levels whose warnings
// escalate.
func WithFailOnWarn(fail bool) Option {
	return func(o *options) {
		o.failOnWarn = fail
	}
}

func WithRecorder(r Recorder) Option {
	return func(o *options) {
		o.recorder = r
	}
}

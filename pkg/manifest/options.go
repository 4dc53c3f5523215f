package manifest

import "github.com/olimci/depcat/pkg/diagnostic"

func defaultOptions() *options {
	return &options{
		sink: diagnostic.Discard(),
	}
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

// WithSink receives warnings about coordinates declared more than once.
func WithSink(sink diagnostic.Sink) Option {
	return func(o *options) {
		if sink != nil {
			o.sink = sink
		}
	}
}

// WithSource records where the manifest was read from.
func WithSource(path string) Option {
	return func(o *options) {
		o.source = path
	}
}

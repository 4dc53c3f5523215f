package policy

import "fmt"

// Kind tags a Decision.
type Kind int

const (
	Accept Kind = iota
	Reject
	Warn
)

func (k Kind) String() string {
	switch k {
	case Accept:
		return "accept"
	case Reject:
		return "reject"
	case Warn:
		return "warn"
	default:
		return "unknown"
	}
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Decision is the outcome of resolving one Request.
//
// Accept carries the manifest Version. Reject carries a Reason, one of
// ErrVersionProvided or ErrDependencyNotFound. Reject and Warn carry a
// Message naming the coordinate.
type Decision struct {
	Kind    Kind
	Version string
	Reason  error
	Message string
}

// Err returns nil unless the decision is a rejection.
func (d Decision) Err() error {
	if d.Kind != Reject {
		return nil
	}
	return fmt.Errorf("%w: %s", d.Reason, d.Message)
}

func (d Decision) String() string {
	switch d.Kind {
	case Accept:
		return "accept " + d.Version
	default:
		return d.Kind.String() + ": " + d.Message
	}
}

func accept(version string) Decision {
	return Decision{Kind: Accept, Version: version}
}

func reject(reason error, format string, args ...any) Decision {
	return Decision{Kind: Reject, Reason: reason, Message: fmt.Sprintf(format, args...)}
}

func warn(format string, args ...any) Decision {
	return Decision{Kind: Warn, Message: fmt.Sprintf(format, args...)}
}

package manifest

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmpty               = errors.New("manifest declares no properties")
	ErrUnevenPropertyCount = errors.New("uneven property count")
	ErrMismatchedPair      = errors.New("mismatched pair")
	ErrNotAPair            = errors.New("not a group/version pair")
	ErrInvalidRecord       = errors.New("invalid dependency record")
)

// ParseError describes why manifest properties could not be turned into
// records. Err is one of the parse sentinels.
type ParseError struct {
	Err   error
	Keys  []string // offending property keys, in input order
	Index int      // zero-based pair index, -1 when not tied to a pair
	Count int      // total property count
}

func (e *ParseError) Error() string {
	switch {
	case len(e.Keys) > 0:
		return fmt.Sprintf("parse manifest: %v: pair %d (%s)", e.Err, e.Index, quoteKeys(e.Keys))
	case e.Count > 0:
		return fmt.Sprintf("parse manifest: %v: %d properties", e.Err, e.Count)
	default:
		return fmt.Sprintf("parse manifest: %v", e.Err)
	}
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// BuildError names the record that failed validation.
type BuildError struct {
	Err    error
	Record DependencyRecord
	Index  int
	Reason string
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("build manifest: %v: record %d %s: %s", e.Err, e.Index, e.Record, e.Reason)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

func quoteKeys(keys []string) string {
	quoted := make([]string, len(keys))
	for i, k := range keys {
		quoted[i] = fmt.Sprintf("%q", k)
	}
	return strings.Join(quoted, ", ")
}

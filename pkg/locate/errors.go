package locate

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNoManifestSource     = errors.New("no manifest source configured")
	ErrManifestUnresolvable = errors.New("manifest path does not resolve to a file")
)

// Error reports a failed manifest search along with every candidate tried.
type Error struct {
	Err   error
	Dir   string
	Tried []Candidate
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "locate manifest from %s: %v", e.Dir, e.Err)
	if errors.Is(e.Err, ErrNoManifestSource) {
		fmt.Fprintf(&b, " (set %s or manifest.path in a depcat config)", EnvManifest)
	}
	for _, c := range e.Tried {
		fmt.Fprintf(&b, "\n  tried %s", c)
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

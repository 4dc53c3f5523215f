package policy

import (
	"fmt"
	"strings"
)

// Request is one dependency coordinate a module declared. An empty Version
// means the caller expects the manifest to supply it.
type Request struct {
	Group   string `json:"group" yaml:"group" toml:"group"`
	Name    string `json:"name" yaml:"name" toml:"name"`
	Version string `json:"version,omitempty" yaml:"version,omitempty" toml:"version,omitempty"`
}

// HasVersion reports whether the caller supplied a version.
func (r Request) HasVersion() bool {
	return strings.TrimSpace(r.Version) != ""
}

// Coordinate renders group:name.
func (r Request) Coordinate() string {
	return r.Group + ":" + r.Name
}

// String renders group:name[:version].
func (r Request) String() string {
	if !r.HasVersion() {
		return r.Coordinate()
	}
	return r.Coordinate() + ":" + strings.TrimSpace(r.Version)
}

// ParseRequest parses group:name or group:name:version.
func ParseRequest(s string) (Request, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return Request{}, fmt.Errorf("%w: %q (want group:name[:version])", ErrInvalidRequest, s)
	}
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	if parts[0] == "" || parts[1] == "" {
		return Request{}, fmt.Errorf("%w: %q has an empty group or name", ErrInvalidRequest, s)
	}

	r := Request{Group: parts[0], Name: parts[1]}
	if len(parts) == 3 {
		r.Version = parts[2]
	}
	return r, nil
}

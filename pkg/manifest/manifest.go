// Package manifest parses dependency manifests and indexes the canonical
// version of each artifact.
package manifest

import (
	"fmt"
	"strings"

	"github.com/olimci/depcat/pkg/diagnostic"
)

// Manifest is an immutable (group, name) → version index. It is safe for
// concurrent use once built. A nil *Manifest behaves as an empty manifest.
type Manifest struct {
	index  map[Coordinate]string
	order  []Coordinate
	source string
}

// Build validates every record and indexes them. If any record is invalid
// nothing is indexed. A coordinate declared twice keeps its last version and
// a warning is reported to the configured sink.
func Build(records []DependencyRecord, opts ...Option) (*Manifest, error) {
	o := defaultOptions().apply(opts...)

	for i, r := range records {
		if reason := validateRecord(r); reason != "" {
			return nil, &BuildError{Err: ErrInvalidRecord, Record: r, Index: i, Reason: reason}
		}
	}

	index, order, conflicts := indexRecords(records)
	for _, c := range order {
		versions, ok := conflicts[c]
		if !ok {
			continue
		}
		o.sink.Report(diagnostic.Diagnostic{
			Level:   diagnostic.LevelWarning,
			Subject: c.String(),
			Message: fmt.Sprintf("declared %d times (versions %s), using %s", len(versions), strings.Join(versions, ", "), versions[len(versions)-1]),
		})
	}

	return &Manifest{
		index:  index,
		order:  order,
		source: o.source,
	}, nil
}

// Lookup returns the canonical version for group:name.
func (m *Manifest) Lookup(group, name string) (string, bool) {
	if m == nil {
		return "", false
	}
	v, ok := m.index[Coordinate{Group: group, Name: name}]
	return v, ok
}

func (m *Manifest) Len() int {
	if m == nil {
		return 0
	}
	return len(m.order)
}

// Records returns a copy of the indexed records, in the order their
// coordinates were first declared.
func (m *Manifest) Records() []DependencyRecord {
	if m == nil {
		return nil
	}
	out := make([]DependencyRecord, len(m.order))
	for i, c := range m.order {
		out[i] = DependencyRecord{Group: c.Group, Name: c.Name, Version: m.index[c]}
	}
	return out
}

func (m *Manifest) Coordinates() []Coordinate {
	if m == nil {
		return nil
	}
	out := make([]Coordinate, len(m.order))
	copy(out, m.order)
	return out
}

// Source is the path the manifest was read from, if known.
func (m *Manifest) Source() string {
	if m == nil {
		return ""
	}
	return m.source
}

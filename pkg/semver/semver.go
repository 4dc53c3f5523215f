// Package semver wraps github.com/Masterminds/semver/v3 for the two places
// depcat needs it: the [depcat] version constraint and manifest linting.
package semver

import (
	"fmt"

	mm "github.com/Masterminds/semver/v3"
)

// Version is a semantic version. The zero Version satisfies nothing.
type Version struct {
	v *mm.Version
}

// Constraint is a version range such as ">=0.1.0 <1.0.0" or "^1.2".
type Constraint struct {
	c *mm.Constraints
}

func ParseVersion(raw string) (Version, error) {
	v, err := mm.NewVersion(raw)
	if err != nil {
		return Version{}, fmt.Errorf("semver: parse version %q: %w", raw, err)
	}
	return Version{v: v}, nil
}

func MustParseVersion(raw string) Version {
	v, err := ParseVersion(raw)
	if err != nil {
		panic(err)
	}
	return v
}

// Valid reports whether raw parses as a semantic version. Missing minor and
// patch components are tolerated, as in "1.2".
func Valid(raw string) bool {
	_, err := mm.NewVersion(raw)
	return err == nil
}

func (v Version) String() string {
	if v.v == nil {
		return ""
	}
	return v.v.String()
}

func ParseConstraint(raw string) (Constraint, error) {
	c, err := mm.NewConstraint(raw)
	if err != nil {
		return Constraint{}, fmt.Errorf("semver: parse constraint %q: %w", raw, err)
	}
	return Constraint{c: c}, nil
}

// Allows reports whether v falls inside the constraint.
func (c Constraint) Allows(v Version) bool {
	return v.v != nil && c.c != nil && c.c.Check(v.v)
}

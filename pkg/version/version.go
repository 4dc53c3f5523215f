package version

import (
	"errors"
	"fmt"

	"github.com/olimci/depcat/pkg/semver"
)

// Version is for storing the version of depcat
const (
	Major = 0
	Minor = 3
	Patch = 0
)

var ErrIncompatible = errors.New("incompatible depcat version")

func Current() semver.Version {
	return semver.MustParseVersion(String())
}

// String gives you the string representation of the version
func String() string {
	return fmt.Sprintf("%d.%d.%d", Major, Minor, Patch)
}

// Check verifies that the running depcat satisfies a project's version
// constraint. An empty constraint accepts any version.
func Check(constraint string) error {
	return CheckVersion(Current(), constraint)
}

func CheckVersion(v semver.Version, constraint string) error {
	if constraint == "" {
		return nil
	}

	c, err := semver.ParseConstraint(constraint)
	if err != nil {
		return err
	}
	if !c.Allows(v) {
		return fmt.Errorf("%w: running %s, project requires %s", ErrIncompatible, v, constraint)
	}
	return nil
}

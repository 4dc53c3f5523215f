// Package policy decides whether a dependency request is served by the
// manifest, rejected, or let through with a warning.
package policy

import "github.com/olimci/depcat/pkg/manifest"

// Resolve evaluates req against m at the given strictness.
//
// A managed coordinate is accepted with the manifest version, unless the
// request carries its own version, which is always rejected. An unmanaged
// coordinate is rejected under Strict and warned about otherwise.
//
// Resolve has no side effects and is safe for concurrent use.
func Resolve(req Request, m *manifest.Manifest, level Strictness) Decision {
	version, managed := m.Lookup(req.Group, req.Name)

	switch {
	case managed && req.HasVersion():
		return reject(ErrVersionProvided,
			"%s is managed by the manifest at %s; remove the explicit version %s",
			req.Coordinate(), version, req.Version)
	case managed:
		return accept(version)
	case level == Strict:
		return reject(ErrDependencyNotFound,
			"%s is not declared in the manifest", req.Coordinate())
	default:
		return warn("%s not found in the manifest; assuming transitive", req.Coordinate())
	}
}

// Package locate finds the dependency manifest and the strictness level for
// a project directory.
package locate

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/olimci/depcat/pkg/config"
	"github.com/olimci/depcat/pkg/policy"
)

// Source names where a setting came from.
type Source string

const (
	SourceFlag     Source = "flag"
	SourceEnv      Source = "env"
	SourceDotenv   Source = "dotenv"
	SourceProject  Source = "project"
	SourceAncestor Source = "ancestor"
	SourceDefault  Source = "default"
)

// Candidate is one manifest path considered during the search.
type Candidate struct {
	Path   string
	Source Source
	Origin string // variable name or config file that supplied Path
	Reason string // why the candidate was rejected
}

func (c Candidate) String() string {
	s := fmt.Sprintf("%s %s: %s", c.Source, c.Origin, c.Path)
	if c.Reason != "" {
		s += " (" + c.Reason + ")"
	}
	return s
}

// Location is a resolved manifest path.
type Location struct {
	Path   string
	Source Source
	Origin string
}

// Manifest searches for the manifest of the project in dir. The search
// order is DEPCAT_MANIFEST (process environment, then dir/.env), the depcat
// config in dir, then configs in each ancestor directory, nearest first.
// Relative paths resolve against dir for variables and against the config
// file's directory for configs. The first candidate that is an existing
// regular file wins.
func Manifest(dir string, env Env) (Location, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return Location{}, err
	}

	var tried []Candidate
	check := func(c Candidate) (Location, bool) {
		if reason := checkFile(c.Path); reason != "" {
			c.Reason = reason
			tried = append(tried, c)
			return Location{}, false
		}
		return Location{Path: c.Path, Source: c.Source, Origin: c.Origin}, true
	}

	v, src, err := lookupVar(dir, env, EnvManifest)
	if err != nil {
		return Location{}, err
	}
	if v != "" {
		if loc, ok := check(Candidate{Path: absFrom(dir, v), Source: src, Origin: EnvManifest}); ok {
			return loc, nil
		}
	}

	var found Location
	err = walkConfigs(dir, func(cfg *config.Config, src Source) bool {
		p := cfg.ManifestPath()
		if p == "" {
			return false
		}
		loc, ok := check(Candidate{Path: p, Source: src, Origin: cfg.Path})
		if ok {
			found = loc
		}
		return ok
	})
	switch {
	case err != nil:
		return Location{}, err
	case found.Path != "":
		return found, nil
	case len(tried) == 0:
		return Location{}, &Error{Err: ErrNoManifestSource, Dir: dir}
	default:
		return Location{}, &Error{Err: ErrManifestUnresolvable, Dir: dir, Tried: tried}
	}
}

// Strictness resolves the strictness level for dir. The search order is
// override (usually a flag), DEPCAT_STRICTNESS, the depcat config in dir,
// configs in ancestor directories, then Strict.
func Strictness(dir string, env Env, override string) (policy.Strictness, Source, error) {
	if override != "" {
		level, err := policy.ParseStrictness(override)
		return level, SourceFlag, err
	}

	dir, err := filepath.Abs(dir)
	if err != nil {
		return policy.Strict, "", err
	}

	v, src, err := lookupVar(dir, env, EnvStrictness)
	if err != nil {
		return policy.Strict, "", err
	}
	if v != "" {
		level, err := policy.ParseStrictness(v)
		if err != nil {
			return policy.Strict, src, fmt.Errorf("%s: %w", EnvStrictness, err)
		}
		return level, src, nil
	}

	level, found := policy.Strict, SourceDefault
	err = walkConfigs(dir, func(cfg *config.Config, src Source) bool {
		l, ok := cfg.Strictness()
		if ok {
			level, found = l, src
		}
		return ok
	})
	if err != nil {
		return policy.Strict, "", err
	}
	return level, found, nil
}

// walkConfigs calls fn with the config in dir and then each ancestor's,
// until fn returns true. Directories without a config are skipped.
func walkConfigs(dir string, fn func(cfg *config.Config, src Source) bool) error {
	src := SourceProject
	for {
		cfg, err := config.LoadDir(dir)
		switch {
		case errors.Is(err, config.ErrNotFound):
		case err != nil:
			return err
		default:
			if fn(cfg, src) {
				return nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return nil
		}
		dir, src = parent, SourceAncestor
	}
}

func absFrom(dir, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(dir, p)
}

func checkFile(p string) string {
	info, err := os.Stat(p)
	switch {
	case err != nil:
		return "not found"
	case !info.Mode().IsRegular():
		return "not a regular file"
	default:
		return ""
	}
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/olimci/depcat/pkg/policy"
	"github.com/olimci/depcat/pkg/semver"
)

var (
	ErrNotFound = errors.New("no depcat config found")
	ErrInvalid  = errors.New("invalid config")
)

// Filenames lists the config file names depcat recognises, in lookup order.
var Filenames = []string{"depcat.toml", "depcat.yaml", "depcat.yml", "depcat.json"}

// Config represents a depcat.toml project file.
type Config struct {
	Depcat       ConfigDepcat       `toml:"depcat" yaml:"depcat" json:"depcat"`
	Project      ConfigProject      `toml:"project" yaml:"project" json:"project"`
	Manifest     ConfigManifest     `toml:"manifest" yaml:"manifest" json:"manifest"`
	Check        ConfigCheck        `toml:"check" yaml:"check" json:"check"`
	Dependencies []ConfigDependency `toml:"dependencies,omitempty" yaml:"dependencies,omitempty" json:"dependencies,omitempty"`

	// Path is the file the config was loaded from.
	Path string `toml:"-" yaml:"-" json:"-"`
}

type ConfigDepcat struct {
	// Version is a semver constraint the running depcat must satisfy.
	Version string `toml:"version,omitempty" yaml:"version,omitempty" json:"version,omitempty"`
}

type ConfigProject struct {
	Name     string   `toml:"name" yaml:"name" json:"name"`
	Modules  []string `toml:"modules,omitempty" yaml:"modules,omitempty" json:"modules,omitempty"`
	Requires []string `toml:"requires,omitempty" yaml:"requires,omitempty" json:"requires,omitempty"`
}

type ConfigManifest struct {
	Path       string `toml:"path,omitempty" yaml:"path,omitempty" json:"path,omitempty"`
	Strictness string `toml:"strictness,omitempty" yaml:"strictness,omitempty" json:"strictness,omitempty"`
}

type ConfigCheck struct {
	FailOnWarn bool `toml:"fail_on_warn" yaml:"fail_on_warn" json:"fail_on_warn"`
	Workers    int  `toml:"workers" yaml:"workers" json:"workers"`
}

type ConfigDependency struct {
	Group   string `toml:"group" yaml:"group" json:"group"`
	Name    string `toml:"name" yaml:"name" json:"name"`
	Version string `toml:"version,omitempty" yaml:"version,omitempty" json:"version,omitempty"`
}

// DefaultConfig constructs a new Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Project: ConfigProject{
			Modules:  []string{},
			Requires: []string{},
		},
	}
}

// Load loads a Config from a file. The format is picked from the extension.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if err := decodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	cfg.Path = abs

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return cfg, nil
}

// Find returns the path of the config file in dir.
func Find(dir string) (string, error) {
	for _, name := range Filenames {
		p := filepath.Join(dir, name)
		if info, err := os.Stat(p); err == nil && info.Mode().IsRegular() {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w in %s", ErrNotFound, dir)
}

// LoadDir finds and loads the config file in dir.
func LoadDir(dir string) (*Config, error) {
	path, err := Find(dir)
	if err != nil {
		return nil, err
	}
	return Load(path)
}

// Validate normalises defaults and validates the Config.
func (c *Config) Validate() error {
	c.Depcat.Version = strings.TrimSpace(c.Depcat.Version)
	if c.Depcat.Version != "" {
		if _, err := semver.ParseConstraint(c.Depcat.Version); err != nil {
			return fmt.Errorf("%w: depcat.version: %w", ErrInvalid, err)
		}
	}

	c.Project.Name = strings.TrimSpace(c.Project.Name)
	if c.Project.Name == "" && c.Path != "" {
		c.Project.Name = filepath.Base(c.Dir())
	}
	for i, glob := range c.Project.Modules {
		glob = filepath.ToSlash(strings.TrimSpace(glob))
		if glob == "" {
			return fmt.Errorf("%w: project.modules[%d] is empty", ErrInvalid, i)
		}
		if filepath.IsAbs(glob) {
			return fmt.Errorf("%w: project.modules[%d] must be relative (got %q)", ErrInvalid, i, glob)
		}
		c.Project.Modules[i] = glob
	}
	for i, raw := range c.Project.Requires {
		if _, err := policy.ParseRequest(raw); err != nil {
			return fmt.Errorf("%w: project.requires[%d]: %w", ErrInvalid, i, err)
		}
	}

	c.Manifest.Path = strings.TrimSpace(c.Manifest.Path)
	c.Manifest.Strictness = strings.TrimSpace(c.Manifest.Strictness)
	if c.Manifest.Strictness != "" {
		if _, err := policy.ParseStrictness(c.Manifest.Strictness); err != nil {
			return fmt.Errorf("%w: manifest.strictness: %w", ErrInvalid, err)
		}
	}

	if c.Check.Workers < 0 {
		return fmt.Errorf("%w: check.workers must be >= 0 (got %d)", ErrInvalid, c.Check.Workers)
	}

	for i := range c.Dependencies {
		d := &c.Dependencies[i]
		d.Group = strings.TrimSpace(d.Group)
		d.Name = strings.TrimSpace(d.Name)
		d.Version = strings.TrimSpace(d.Version)
		if d.Group == "" || d.Name == "" {
			return fmt.Errorf("%w: dependencies[%d] needs a group and a name", ErrInvalid, i)
		}
	}

	return nil
}

// Dir is the directory containing the config file.
func (c *Config) Dir() string {
	if c.Path == "" {
		return "."
	}
	return filepath.Dir(c.Path)
}

// Resolve makes a config-relative path absolute.
func (c *Config) Resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Dir(), filepath.FromSlash(p))
}

// ManifestPath is the absolute manifest path, or "" if the config names none.
func (c *Config) ManifestPath() string {
	return c.Resolve(c.Manifest.Path)
}

// Strictness returns the configured level and whether one was set.
func (c *Config) Strictness() (policy.Strictness, bool) {
	if c.Manifest.Strictness == "" {
		return policy.Strict, false
	}
	level, err := policy.ParseStrictness(c.Manifest.Strictness)
	if err != nil {
		return policy.Strict, false
	}
	return level, true
}

// Declarations returns the dependencies the project declares: the
// [[dependencies]] tables first, then project.requires.
func (c *Config) Declarations() []policy.Request {
	out := make([]policy.Request, 0, len(c.Dependencies)+len(c.Project.Requires))
	for _, d := range c.Dependencies {
		out = append(out, policy.Request{Group: d.Group, Name: d.Name, Version: d.Version})
	}
	for _, raw := range c.Project.Requires {
		if r, err := policy.ParseRequest(raw); err == nil {
			out = append(out, r)
		}
	}
	return out
}

// WatchedPaths returns the files and globs whose changes invalidate a check
// of this project.
func (c *Config) WatchedPaths() (paths []string, globs []string) {
	paths = make([]string, 0, 2)
	globs = make([]string, 0, len(c.Project.Modules))

	if c.Path != "" {
		paths = append(paths, c.Path)
	}
	if p := c.ManifestPath(); p != "" {
		paths = append(paths, p)
	}
	for _, glob := range c.Project.Modules {
		globs = append(globs, glob+"/depcat.*")
	}

	return paths, globs
}

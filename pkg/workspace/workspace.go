// Package workspace discovers the modules of a project and the dependencies
// each one declares.
package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/olimci/depcat/pkg/config"
	"github.com/olimci/depcat/pkg/policy"
	"github.com/olimci/depcat/pkg/utils/set"
	"github.com/olimci/depcat/pkg/version"
)

var ErrBadPattern = errors.New("bad module pattern")

// Module is one project directory with its own depcat config.
type Module struct {
	Name       string
	Dir        string
	ConfigPath string
	Config     *config.Config
}

// Requests returns the dependencies the module declares, in declaration
// order.
func (m *Module) Requests() []policy.Request {
	return m.Config.Declarations()
}

// Workspace is a root project and its modules.
type Workspace struct {
	Root    *config.Config
	Modules []*Module
}

// Load reads the depcat config in dir and every module matched by its
// project.modules globs. The root is always the first module; the rest
// follow glob order, each glob's matches sorted, duplicates dropped.
func Load(dir string) (*Workspace, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	root, err := config.LoadDir(dir)
	if err != nil {
		return nil, err
	}
	if err := version.Check(root.Depcat.Version); err != nil {
		return nil, fmt.Errorf("%s: %w", root.Path, err)
	}

	ws := &Workspace{Root: root}
	ws.Modules = append(ws.Modules, newModule(root, root))

	dirs, err := expandModules(root.Dir(), root.Project.Modules)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", root.Path, err)
	}

	for _, moduleDir := range dirs {
		cfg, err := config.LoadDir(moduleDir)
		if err != nil {
			return nil, err
		}
		if err := version.Check(cfg.Depcat.Version); err != nil {
			return nil, fmt.Errorf("%s: %w", cfg.Path, err)
		}
		ws.Modules = append(ws.Modules, newModule(root, cfg))
	}

	return ws, nil
}

// RequestCount is the number of requests across all modules.
func (ws *Workspace) RequestCount() int {
	n := 0
	for _, m := range ws.Modules {
		n += len(m.Requests())
	}
	return n
}

// Module returns the module with the given name.
func (ws *Workspace) Module(name string) (*Module, bool) {
	i := slices.IndexFunc(ws.Modules, func(m *Module) bool { return m.Name == name })
	if i < 0 {
		return nil, false
	}
	return ws.Modules[i], true
}

// WatchedPaths returns every config file, the manifest paths they name, and
// the module globs, relative to the root directory.
func (ws *Workspace) WatchedPaths() (paths []string, globs []string) {
	seen := set.New[string]()
	for _, m := range ws.Modules {
		p, _ := m.Config.WatchedPaths()
		for _, path := range p {
			seen.Add(path)
		}
	}
	_, globs = ws.Root.WatchedPaths()
	return seen.Values(), globs
}

func newModule(root, cfg *config.Config) *Module {
	name := cfg.Project.Name
	if name == "" {
		if rel, err := filepath.Rel(root.Dir(), cfg.Dir()); err == nil {
			name = filepath.ToSlash(rel)
		}
	}
	return &Module{
		Name:       name,
		Dir:        cfg.Dir(),
		ConfigPath: cfg.Path,
		Config:     cfg,
	}
}

// expandModules resolves module globs to directories holding a depcat
// config.
func expandModules(root string, patterns []string) ([]string, error) {
	fsys := os.DirFS(root)
	dirs := set.New[string]()

	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("%w: %q", ErrBadPattern, pattern)
		}

		matches, err := doublestar.Glob(fsys, pattern)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrBadPattern, pattern, err)
		}
		slices.Sort(matches)

		for _, match := range matches {
			dir := filepath.Join(root, filepath.FromSlash(match))
			if dir == root {
				continue
			}
			if info, err := os.Stat(dir); err != nil || !info.IsDir() {
				continue
			}
			if _, err := config.Find(dir); err != nil {
				continue
			}
			dirs.Add(dir)
		}
	}

	return dirs.Values(), nil
}

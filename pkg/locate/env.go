package locate

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

const (
	EnvManifest   = "DEPCAT_MANIFEST"
	EnvStrictness = "DEPCAT_STRICTNESS"

	dotenvFile = ".env"
)

// Env looks up environment variables.
type Env interface {
	Lookup(key string) (string, bool)
}

// EnvFunc adapts a function such as os.LookupEnv to Env.
type EnvFunc func(key string) (string, bool)

func (f EnvFunc) Lookup(key string) (string, bool) {
	return f(key)
}

// MapEnv is a fixed environment, mostly useful in tests.
type MapEnv map[string]string

func (m MapEnv) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// OS returns the process environment.
func OS() Env {
	return EnvFunc(os.LookupEnv)
}

// lookupVar reads key from env, falling back to the .env file in dir.
// Empty values count as unset.
func lookupVar(dir string, env Env, key string) (string, Source, error) {
	if env != nil {
		if v, ok := env.Lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v), SourceEnv, nil
		}
	}

	vars, err := godotenv.Read(filepath.Join(dir, dotenvFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", "", nil
		}
		return "", "", fmt.Errorf("read %s: %w", filepath.Join(dir, dotenvFile), err)
	}
	if v := strings.TrimSpace(vars[key]); v != "" {
		return v, SourceDotenv, nil
	}
	return "", "", nil
}

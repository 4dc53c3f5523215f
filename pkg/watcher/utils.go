package watcher

import (
	"path/filepath"
	"strings"
)

func lazySend[T any](ch chan<- T, value T) {
	select {
	case ch <- value:
	default:
	}
}

func isConfigFile(path string) bool {
	return strings.HasPrefix(filepath.Base(path), "depcat.")
}

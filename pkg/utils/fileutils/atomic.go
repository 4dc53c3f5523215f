package fileutils

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
)

// AtomicWrite writes a file via a temporary file in the same directory, so
// readers never observe a partial write.
func AtomicWrite(path string, gen func(w io.Writer) error) error {
	_, err := atomicWrite(path, gen, false)
	return err
}

// AtomicUpdate is AtomicWrite, but leaves the file untouched when the new
// content is identical. It reports whether the file changed.
func AtomicUpdate(path string, gen func(w io.Writer) error) (bool, error) {
	return atomicWrite(path, gen, true)
}

func atomicWrite(path string, gen func(w io.Writer) error, skipSame bool) (bool, error) {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	var buf bytes.Buffer
	if err := gen(&buf); err != nil {
		return false, err
	}

	if skipSame {
		if old, err := os.ReadFile(path); err == nil && bytes.Equal(old, buf.Bytes()) {
			return false, nil
		}
	}

	tmp, err := os.CreateTemp(dir, "."+base+".tmp-*")
	if err != nil {
		return false, err
	}
	defer func(tmp *os.File) {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
	}(tmp)

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		return false, err
	}
	if err := tmp.Sync(); err != nil {
		return false, err
	}
	if err := tmp.Close(); err != nil {
		return false, err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return false, err
	}
	if df, err := os.Open(dir); err == nil {
		_ = df.Sync()
		_ = df.Close()
	}

	return true, nil
}

//go:build windows

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
)

// instanceLock approximates the unix flock with O_EXCL file creation.
type instanceLock struct {
	path string
}

func acquireLock(path string) (*instanceLock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("lock %s: %w", path, err)
	}
	f.Close()
	return &instanceLock{path: path}, nil
}

func (l *instanceLock) release() {
	_ = os.Remove(l.path)
}

// Package storage implements the vault interface on a local directory tree.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	defaultDirPermissions  = 0o750
	defaultFilePermissions = 0o600
	invalidCharReplacement = "_"
)

// ErrPathOutsideVault is returned when a vault-relative path escapes the
// vault root.
var ErrPathOutsideVault = errors.New("path escapes vault root")

// DirVault exposes one directory tree as a note vault. All paths passed to
// its methods are vault-relative and slash-separated.
type DirVault struct {
	root string
}

// NewDirVault creates a vault rooted at dir, creating the directory if it
// does not exist.
func NewDirVault(dir string) (*DirVault, error) {
	mkdirErr := os.MkdirAll(dir, defaultDirPermissions)
	if mkdirErr != nil {
		return nil, fmt.Errorf("failed to create vault root %s: %w", dir, mkdirErr)
	}

	absRoot, absErr := filepath.Abs(dir)
	if absErr != nil {
		return nil, fmt.Errorf("failed to resolve vault root %s: %w", dir, absErr)
	}

	return &DirVault{root: absRoot}, nil
}

// Root returns the absolute path of the vault root directory.
func (v *DirVault) Root() string {
	return v.root
}

// ReadNote returns the raw content of a note.
func (v *DirVault) ReadNote(path string) (string, error) {
	fullPath, pathErr := v.resolve(path)
	if pathErr != nil {
		return "", pathErr
	}

	data, readErr := os.ReadFile(fullPath)
	if readErr != nil {
		return "", fmt.Errorf("failed to read note %s: %w", path, readErr)
	}

	return string(data), nil
}

// ReplaceNote overwrites a note's content as a single operation, creating
// parent folders as needed.
func (v *DirVault) ReplaceNote(path, content string) error {
	fullPath, pathErr := v.resolve(path)
	if pathErr != nil {
		return pathErr
	}

	mkdirErr := os.MkdirAll(filepath.Dir(fullPath), defaultDirPermissions)
	if mkdirErr != nil {
		return fmt.Errorf("failed to create parent folders for %s: %w", path, mkdirErr)
	}

	writeErr := os.WriteFile(fullPath, []byte(content), defaultFilePermissions)
	if writeErr != nil {
		return fmt.Errorf("failed to replace note %s: %w", path, writeErr)
	}

	return nil
}

// Exists reports whether a file exists at the given path.
func (v *DirVault) Exists(path string) bool {
	fullPath, pathErr := v.resolve(path)
	if pathErr != nil {
		return false
	}

	_, statErr := os.Stat(fullPath)

	return statErr == nil
}

// ReadBinary returns the bytes of a binary file.
func (v *DirVault) ReadBinary(path string) ([]byte, error) {
	fullPath, pathErr := v.resolve(path)
	if pathErr != nil {
		return nil, pathErr
	}

	data, readErr := os.ReadFile(fullPath)
	if readErr != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, readErr)
	}

	return data, nil
}

// WriteBinary writes a binary file, creating parent folders as needed. An
// existing file at the path is deleted first, so stale artifacts never
// survive a rewrite.
func (v *DirVault) WriteBinary(path string, data []byte) error {
	fullPath, pathErr := v.resolve(path)
	if pathErr != nil {
		return pathErr
	}

	mkdirErr := os.MkdirAll(filepath.Dir(fullPath), defaultDirPermissions)
	if mkdirErr != nil {
		return fmt.Errorf("failed to create parent folders for %s: %w", path, mkdirErr)
	}

	deleteErr := v.Delete(path)
	if deleteErr != nil {
		return deleteErr
	}

	writeErr := os.WriteFile(fullPath, data, defaultFilePermissions)
	if writeErr != nil {
		return fmt.Errorf("failed to write file %s: %w", path, writeErr)
	}

	return nil
}

// Delete removes a file. Deleting a missing file is not an error.
func (v *DirVault) Delete(path string) error {
	fullPath, pathErr := v.resolve(path)
	if pathErr != nil {
		return pathErr
	}

	removeErr := os.Remove(fullPath)
	if removeErr != nil && !os.IsNotExist(removeErr) {
		return fmt.Errorf("failed to delete file %s: %w", path, removeErr)
	}

	return nil
}

// resolve maps a vault-relative path onto the filesystem and rejects paths
// that climb out of the root.
func (v *DirVault) resolve(path string) (string, error) {
	fullPath := filepath.Join(v.root, filepath.FromSlash(path))

	if fullPath != v.root && !strings.HasPrefix(fullPath, v.root+string(os.PathSeparator)) {
		return "", fmt.Errorf("%w: %s", ErrPathOutsideVault, path)
	}

	return fullPath, nil
}

// SanitizeFilename removes or replaces characters that are invalid in most
// filesystems.
func SanitizeFilename(filename string) string {
	replacer := strings.NewReplacer(
		"<", invalidCharReplacement,
		">", invalidCharReplacement,
		":", invalidCharReplacement,
		"\"", invalidCharReplacement,
		"/", invalidCharReplacement,
		"\\", invalidCharReplacement,
		"|", invalidCharReplacement,
		"?", invalidCharReplacement,
		"*", invalidCharReplacement,
	)

	return replacer.Replace(filename)
}

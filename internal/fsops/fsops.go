package fsops

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// TempSuffix names the intermediate sibling used while relocating a tree.
const TempSuffix = "_relocating"

// FilesystemError reports a missing path, a conflicting path, or an OS-level
// failure while mutating the project tree.
type FilesystemError struct {
	Op   string
	Path string
	Err  error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FilesystemError) Unwrap() error {
	return e.Err
}

var (
	// ErrSourceMissing indicates the tree to relocate does not exist.
	ErrSourceMissing = errors.New("source does not exist")
	// ErrPathExists indicates a rename target is already taken.
	ErrPathExists = errors.New("path already exists")
)

// Clear removes the tree at path. A missing path is not an error.
func Clear(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return &FilesystemError{Op: "clear", Path: path, Err: err}
	}
	return nil
}

// Relocate moves source to destination through a temporary sibling name so
// that destination may live inside source (src -> src/render).
//
// The move is not crash-safe: if the process dies between the two renames the
// tree is left at source+TempSuffix.
func Relocate(source, destination string) error {
	source = filepath.Clean(source)
	destination = filepath.Clean(destination)
	temp := source + TempSuffix

	if _, err := os.Stat(source); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &FilesystemError{Op: "relocate", Path: source, Err: ErrSourceMissing}
		}
		return &FilesystemError{Op: "relocate", Path: source, Err: err}
	}
	if err := ensureAbsent(temp); err != nil {
		return err
	}
	if !within(destination, source) {
		if err := ensureAbsent(destination); err != nil {
			return err
		}
	}

	if err := os.Rename(source, temp); err != nil {
		return &FilesystemError{Op: "rename", Path: source, Err: err}
	}

	if err := os.MkdirAll(filepath.Dir(destination), 0755); err != nil {
		return &FilesystemError{Op: "mkdir", Path: filepath.Dir(destination), Err: err}
	}
	if err := ensureAbsent(destination); err != nil {
		return err
	}
	if err := os.Rename(temp, destination); err != nil {
		return &FilesystemError{Op: "rename", Path: temp, Err: err}
	}
	return nil
}

func ensureAbsent(path string) error {
	_, err := os.Lstat(path)
	switch {
	case err == nil:
		return &FilesystemError{Op: "relocate", Path: path, Err: ErrPathExists}
	case errors.Is(err, fs.ErrNotExist):
		return nil
	default:
		return &FilesystemError{Op: "stat", Path: path, Err: err}
	}
}

func within(path, root string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

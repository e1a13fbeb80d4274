package templates

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/barisgit/ngx-electron/internal/fsops"
	"github.com/barisgit/ngx-electron/templates"
)

// Source returns the template root to inject: the embedded default when dir
// is empty, otherwise the on-disk directory.
func Source(dir string) (fs.FS, error) {
	if dir == "" {
		return templates.Default(), nil
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, &fsops.FilesystemError{Op: "open templates", Path: dir, Err: err}
	}
	if !info.IsDir() {
		return nil, &fsops.FilesystemError{Op: "open templates", Path: dir, Err: fmt.Errorf("not a directory")}
	}
	return os.DirFS(dir), nil
}

// Inject copies every file and directory of fsys into projectRoot, replacing
// files that already exist. Files are copied verbatim.
func Inject(fsys fs.FS, projectRoot string) error {
	return fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return &fsops.FilesystemError{Op: "walk templates", Path: path, Err: err}
		}

		target := filepath.Join(projectRoot, filepath.FromSlash(path))
		if d.IsDir() {
			if err := os.MkdirAll(target, 0755); err != nil {
				return &fsops.FilesystemError{Op: "mkdir", Path: target, Err: err}
			}
			return nil
		}

		return copyFile(fsys, path, target)
	})
}

// Files lists the regular files of fsys, slash-separated.
func Files(fsys fs.FS) ([]string, error) {
	var files []string
	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

func copyFile(fsys fs.FS, path, target string) error {
	src, err := fsys.Open(path)
	if err != nil {
		return &fsops.FilesystemError{Op: "open template", Path: path, Err: err}
	}
	defer src.Close()

	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return &fsops.FilesystemError{Op: "mkdir", Path: filepath.Dir(target), Err: err}
	}

	dst, err := os.Create(target)
	if err != nil {
		return &fsops.FilesystemError{Op: "create", Path: target, Err: err}
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return &fsops.FilesystemError{Op: "copy", Path: target, Err: err}
	}
	if err := dst.Close(); err != nil {
		return &fsops.FilesystemError{Op: "close", Path: target, Err: err}
	}
	return nil
}

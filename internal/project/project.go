package project

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Descriptor identifies a single scaffolding run: the project name doubles as
// the target directory name inside WorkingDirectory.
type Descriptor struct {
	Name             string
	WorkingDirectory string
}

// New builds a descriptor, resolving workingDirectory to an absolute path.
func New(name, workingDirectory string) (Descriptor, error) {
	abs, err := filepath.Abs(workingDirectory)
	if err != nil {
		return Descriptor{}, fmt.Errorf("resolve working directory %s: %w", workingDirectory, err)
	}
	d := Descriptor{Name: strings.TrimSpace(name), WorkingDirectory: abs}
	if err := d.Validate(); err != nil {
		return Descriptor{}, err
	}
	return d, nil
}

// Validate reports whether the descriptor can safely address a directory.
func (d Descriptor) Validate() error {
	switch d.Name {
	case "":
		return errors.New("project name cannot be empty")
	case ".", "..":
		return fmt.Errorf("invalid project name %q", d.Name)
	}
	if strings.ContainsAny(d.Name, `/\`) {
		return fmt.Errorf("invalid project name %q (path separators are not allowed)", d.Name)
	}
	if !filepath.IsAbs(d.WorkingDirectory) {
		return fmt.Errorf("working directory must be absolute: %q", d.WorkingDirectory)
	}
	return nil
}

// Root is the project directory the generator creates.
func (d Descriptor) Root() string {
	return filepath.Join(d.WorkingDirectory, d.Name)
}

// Path resolves a slash-separated, project-relative path.
func (d Descriptor) Path(rel string) string {
	return filepath.Join(d.Root(), filepath.FromSlash(rel))
}

package manifest

import (
	"os"

	"github.com/barisgit/ngx-electron/internal/fsops"
)

// RewriteTSConfig copies the TypeScript config at from to to, replacing the
// source folder literal with the renderer folder, then removes from.
// The file is treated as text, so comments survive untouched by a JSON parser.
func RewriteTSConfig(from, to, sourceDir, rendererDir string) error {
	data, err := os.ReadFile(from)
	if err != nil {
		return &fsops.FilesystemError{Op: "read", Path: from, Err: err}
	}

	rewritten := ReplaceFolder(string(data), sourceDir, rendererDir)
	if err := os.WriteFile(to, []byte(rewritten), 0644); err != nil {
		return &fsops.FilesystemError{Op: "write", Path: to, Err: err}
	}

	if from == to {
		return nil
	}
	if err := os.Remove(from); err != nil {
		return &fsops.FilesystemError{Op: "remove", Path: from, Err: err}
	}
	return nil
}

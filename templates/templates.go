// Package templates embeds the files injected into every scaffolded project.
package templates

import (
	"embed"
	"io/fs"
)

//go:embed all:default
var defaultFS embed.FS

// Default returns the built-in main-process scaffolding, rooted so that
// paths are relative to the project directory.
func Default() fs.FS {
	sub, err := fs.Sub(defaultFS, "default")
	if err != nil {
		panic(err)
	}
	return sub
}

package manifest

import (
	"context"
	"sort"
)

// VersionResolver looks up the latest published version of a package.
type VersionResolver interface {
	Latest(ctx context.Context, name string) (string, error)
}

// Script is one entry of the package manifest's scripts mapping.
type Script struct {
	Name    string
	Command string
}

// PackageOptions describes the package manifest rewrite.
type PackageOptions struct {
	// Tooling lists packages added to devDependencies at their latest version.
	Tooling []string
	// Scripts replaces the scripts mapping, in order.
	Scripts []Script
	// OnResolved is called after each tooling version is resolved.
	OnResolved func(name, version string)
}

// RewritePackageManifest moves runtime dependencies into devDependencies,
// pins the desktop tooling, and replaces the scripts. Versions are resolved
// before anything is written, so a lookup failure leaves the file untouched.
// It returns the pinned version range for each tooling package.
func RewritePackageManifest(ctx context.Context, path string, opts PackageOptions, versions VersionResolver) (map[string]string, error) {
	doc, err := Load(path)
	if err != nil {
		return nil, err
	}

	pinned := make(map[string]string, len(opts.Tooling))
	for _, name := range opts.Tooling {
		version, err := versions.Latest(ctx, name)
		if err != nil {
			return nil, err
		}
		pinned[name] = "^" + version
		if opts.OnResolved != nil {
			opts.OnResolved(name, version)
		}
	}

	dev := NewDocument()
	for _, key := range []string{"dependencies", "devDependencies"} {
		if deps, ok := doc.Object(key); ok {
			for _, name := range deps.Keys() {
				v, _ := deps.Get(name)
				dev.Set(name, v)
			}
		}
	}
	for _, name := range opts.Tooling {
		dev.Set(name, pinned[name])
	}
	dev.SortKeys(sort.Strings)

	doc.SetObject("dependencies", NewDocument())
	doc.SetObject("devDependencies", dev)

	scripts := NewDocument()
	for _, s := range opts.Scripts {
		scripts.Set(s.Name, s.Command)
	}
	doc.SetObject("scripts", scripts)

	if err := Save(path, doc); err != nil {
		return nil, err
	}
	return pinned, nil
}

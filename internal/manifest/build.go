package manifest

import (
	"errors"
	"fmt"
)

// BuildOptions describes how the build manifest is pointed at the
// desktop-aware builder.
type BuildOptions struct {
	SourceDir             string
	RendererDir           string
	BuildBuilder          string
	ServeBuilder          string
	TSConfig              string
	MainProcess           string
	MainProcessTSConfig   string
	MainProcessOutputName string
}

// RewriteBuildManifest rewrites the source folder references of the build
// manifest at path and switches the default project's build and serve targets
// to the desktop-aware builders.
func RewriteBuildManifest(path string, opts BuildOptions) error {
	doc, err := Load(path)
	if err != nil {
		return err
	}

	raw, err := doc.Bytes()
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	rewritten := ReplaceFolder(string(raw), opts.SourceDir+"/", opts.RendererDir+"/")
	doc, err = Parse([]byte(rewritten))
	if err != nil {
		return &ConfigParseError{Path: path, Err: err}
	}

	if err := applyBuilders(doc, opts); err != nil {
		return &ConfigParseError{Path: path, Err: err}
	}

	return Save(path, doc)
}

func applyBuilders(doc *Document, opts BuildOptions) error {
	projects, ok := doc.Object("projects")
	if !ok {
		return errors.New(`missing "projects" object`)
	}
	name, err := DefaultProject(doc)
	if err != nil {
		return err
	}
	project, ok := projects.Object(name)
	if !ok {
		return fmt.Errorf("project %q is not an object", name)
	}
	architect, ok := project.Object("architect")
	if !ok {
		return fmt.Errorf(`project %q has no "architect" object`, name)
	}

	project.Set("sourceRoot", opts.RendererDir)

	build := architect.ObjectOrNew("build")
	build.Set("builder", opts.BuildBuilder)
	options := build.ObjectOrNew("options")
	options.Set("tsConfig", opts.TSConfig)
	options.Set("mainProcess", opts.MainProcess)
	options.Set("mainProcessTsConfig", opts.MainProcessTSConfig)
	options.Set("mainProcessOutputName", opts.MainProcessOutputName)
	build.SetObject("options", options)
	architect.SetObject("build", build)

	serve := architect.ObjectOrNew("serve")
	serve.Set("builder", opts.ServeBuilder)
	architect.SetObject("serve", serve)

	project.SetObject("architect", architect)
	projects.SetObject(name, project)
	doc.SetObject("projects", projects)
	return nil
}

// DefaultProject names the sub-project the rewrite targets: defaultProject
// when it is set and present, otherwise the first project in the manifest.
func DefaultProject(doc *Document) (string, error) {
	projects, ok := doc.Object("projects")
	if !ok {
		return "", errors.New(`missing "projects" object`)
	}
	if name, ok := doc.StringValue("defaultProject"); ok && name != "" {
		if _, exists := projects.Get(name); exists {
			return name, nil
		}
		return "", fmt.Errorf("defaultProject %q is not listed in projects", name)
	}
	keys := projects.Keys()
	if len(keys) == 0 {
		return "", errors.New("no projects defined")
	}
	return keys[0], nil
}

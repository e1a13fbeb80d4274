package pipeline

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/barisgit/ngx-electron/config"
	"github.com/barisgit/ngx-electron/internal/fsops"
	"github.com/barisgit/ngx-electron/internal/generator"
	"github.com/barisgit/ngx-electron/internal/manifest"
	"github.com/barisgit/ngx-electron/internal/output"
	"github.com/barisgit/ngx-electron/internal/project"
	"github.com/barisgit/ngx-electron/internal/templates"
)

// State is a position in the scaffolding state machine. Each step is a state;
// a run ends in StateSucceeded or StateFailed.
type State string

const (
	StateClearTarget      State = "clear-target"
	StateGenerateProject  State = "generate-project"
	StateRelocateRenderer State = "relocate-renderer"
	StateEditConfigs      State = "edit-configs"
	StateInjectTemplates  State = "inject-templates"
	StateSucceeded        State = "succeeded"
	StateFailed           State = "failed"
)

// Steps lists the step states in execution order.
var Steps = []State{
	StateClearTarget,
	StateGenerateProject,
	StateRelocateRenderer,
	StateEditConfigs,
	StateInjectTemplates,
}

// StepError reports the step that failed. The underlying error keeps its kind.
type StepError struct {
	Step State
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Result describes a finished run.
type Result struct {
	// State is StateSucceeded or StateFailed.
	State State
	// Trace holds every state visited, in order, including the terminal one.
	Trace []State
	// FailedStep is set when State is StateFailed.
	FailedStep State
	// Pinned maps each tooling package to the version range written to the
	// package manifest.
	Pinned map[string]string
	Err    error
}

// Layout holds the project-relative paths the steps operate on.
type Layout struct {
	SourceDir       string
	RendererDir     string
	BuildManifest   string
	PackageManifest string
	AppTSConfig     string
	RenderTSConfig  string
}

// Pipeline turns a freshly generated project into a desktop project.
type Pipeline struct {
	Generator generator.Generator
	Versions  manifest.VersionResolver
	Templates fs.FS
	Layout    Layout
	Build     manifest.BuildOptions
	Package   manifest.PackageOptions
	Log       *output.Logger
}

// New wires a pipeline from the scaffolder configuration.
func New(cfg *config.Config, gen generator.Generator, versions manifest.VersionResolver, tmpl fs.FS, log *output.Logger) *Pipeline {
	return &Pipeline{
		Generator: gen,
		Versions:  versions,
		Templates: tmpl,
		Layout: Layout{
			SourceDir:       cfg.Layout.SourceDir,
			RendererDir:     cfg.Layout.RendererDir,
			BuildManifest:   cfg.Layout.BuildManifest,
			PackageManifest: cfg.Layout.PackageManifest,
			AppTSConfig:     cfg.Layout.AppTSConfig,
			RenderTSConfig:  cfg.Layout.RenderTSConfig,
		},
		Build: manifest.BuildOptions{
			SourceDir:             cfg.Layout.SourceDir,
			RendererDir:           cfg.Layout.RendererDir,
			BuildBuilder:          cfg.Builder.Build,
			ServeBuilder:          cfg.Builder.Serve,
			TSConfig:              cfg.Layout.RenderTSConfig,
			MainProcess:           cfg.Layout.MainEntry,
			MainProcessTSConfig:   cfg.Layout.MainTSConfig,
			MainProcessOutputName: cfg.Builder.MainOutputName,
		},
		Package: manifest.PackageOptions{
			Tooling: cfg.Tooling,
			Scripts: Scripts(cfg.Scripts),
		},
		Log: log,
	}
}

// Scripts returns the canonical scripts in the order they are written.
func Scripts(s config.ScriptsConfig) []manifest.Script {
	return []manifest.Script{
		{Name: "serve", Command: s.Serve},
		{Name: "build", Command: s.Build},
		{Name: "postinstall", Command: s.PostInstall},
		{Name: "postuninstall", Command: s.PostUninstall},
	}
}

type step struct {
	state State
	title string
	done  string
	run   func(ctx context.Context, desc project.Descriptor, res *Result) error
}

func (p *Pipeline) steps() []step {
	return []step{
		{StateClearTarget, "Clearing target directory", "Target directory ready", p.clearTarget},
		{StateGenerateProject, "Generating Angular project", "Angular project generated", p.generateProject},
		{StateRelocateRenderer, "Moving sources into the renderer folder", "Renderer sources relocated", p.relocateRenderer},
		{StateEditConfigs, "Updating project configuration", "Project configuration updated", p.editConfigs},
		{StateInjectTemplates, "Adding main process files", "Main process files added", p.injectTemplates},
	}
}

// Run executes every step in order and stops at the first failure. Completed
// steps are never rolled back. The returned error, if any, is a *StepError
// and is also stored in the result.
func (p *Pipeline) Run(ctx context.Context, desc project.Descriptor) (*Result, error) {
	res := &Result{}
	if err := desc.Validate(); err != nil {
		res.Trace = append(res.Trace, StateClearTarget)
		return p.fail(res, StateClearTarget, err)
	}

	for _, s := range p.steps() {
		res.Trace = append(res.Trace, s.state)
		p.Log.Step("%s...", s.title)
		p.Log.Debugf("state %s", s.state)

		if err := ctx.Err(); err != nil {
			return p.fail(res, s.state, err)
		}
		if err := s.run(ctx, desc, res); err != nil {
			return p.fail(res, s.state, err)
		}
		p.Log.Success("%s", s.done)
	}

	res.State = StateSucceeded
	res.Trace = append(res.Trace, StateSucceeded)
	return res, nil
}

func (p *Pipeline) fail(res *Result, step State, err error) (*Result, error) {
	stepErr := &StepError{Step: step, Err: err}
	res.State = StateFailed
	res.FailedStep = step
	res.Err = stepErr
	res.Trace = append(res.Trace, StateFailed)
	p.Log.Error("Step %s failed: %v", step, err)
	return res, stepErr
}

func (p *Pipeline) clearTarget(_ context.Context, desc project.Descriptor, _ *Result) error {
	p.Log.Debugf("removing %s", desc.Root())
	return fsops.Clear(desc.Root())
}

func (p *Pipeline) generateProject(ctx context.Context, desc project.Descriptor, _ *Result) error {
	if p.Generator == nil {
		return fmt.Errorf("no project generator configured")
	}
	return p.Generator.Generate(ctx, desc)
}

func (p *Pipeline) relocateRenderer(_ context.Context, desc project.Descriptor, _ *Result) error {
	source := desc.Path(p.Layout.SourceDir)
	destination := desc.Path(p.Layout.RendererDir)
	p.Log.Debugf("moving %s to %s", source, destination)
	return fsops.Relocate(source, destination)
}

// editConfigs rewrites the build manifest, then the package manifest, then
// the TypeScript config. An error stops the sequence; earlier edits stay.
func (p *Pipeline) editConfigs(ctx context.Context, desc project.Descriptor, res *Result) error {
	buildPath := desc.Path(p.Layout.BuildManifest)
	if err := manifest.RewriteBuildManifest(buildPath, p.Build); err != nil {
		return err
	}
	p.Log.Debugf("rewrote %s", buildPath)

	if p.Versions == nil {
		return fmt.Errorf("no version resolver configured")
	}
	opts := p.Package
	bar := p.Log.ProgressBar(len(opts.Tooling), "Resolving versions")
	onResolved := opts.OnResolved
	opts.OnResolved = func(name, version string) {
		_ = bar.Add(1)
		p.Log.Debugf("%s@%s", name, version)
		if onResolved != nil {
			onResolved(name, version)
		}
	}
	pinned, err := manifest.RewritePackageManifest(ctx, desc.Path(p.Layout.PackageManifest), opts, p.Versions)
	_ = bar.Finish()
	if err != nil {
		return err
	}
	res.Pinned = pinned

	return manifest.RewriteTSConfig(
		desc.Path(p.Layout.AppTSConfig),
		desc.Path(p.Layout.RenderTSConfig),
		p.Layout.SourceDir,
		p.Layout.RendererDir,
	)
}

func (p *Pipeline) injectTemplates(_ context.Context, desc project.Descriptor, _ *Result) error {
	if p.Templates == nil {
		return fmt.Errorf("no templates configured")
	}
	if err := templates.Inject(p.Templates, desc.Root()); err != nil {
		return err
	}
	if p.Log != nil && p.Log.Debug {
		files, err := templates.Files(p.Templates)
		if err != nil {
			return err
		}
		for _, f := range files {
			p.Log.Debugf("added %s", f)
		}
	}
	return nil
}

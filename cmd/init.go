package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/barisgit/ngx-electron/config"
	"github.com/barisgit/ngx-electron/internal/generator"
	"github.com/barisgit/ngx-electron/internal/output"
	"github.com/barisgit/ngx-electron/internal/pipeline"
	"github.com/barisgit/ngx-electron/internal/project"
	"github.com/barisgit/ngx-electron/internal/registry"
	"github.com/barisgit/ngx-electron/internal/templates"
)

// ErrAborted is returned when the user declines to overwrite an existing
// project directory.
var ErrAborted = errors.New("aborted by user")

// isInteractive reports whether prompts can be shown.
var isInteractive = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

func InitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "init [project-name]",
		Aliases: []string{"i"},
		Short:   "Create a new Angular + Electron project",
		Long: `Generate an Angular project with the Angular CLI, move its sources into
src/render, switch its builders to @miup/ngx-electron-builder and add an
Electron main process entry point.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runInit,
	}

	cmd.Flags().String("cwd", "", "Directory to create the project in (default: current directory)")
	cmd.Flags().BoolP("force", "f", false, "Delete an existing project directory without asking")
	cmd.Flags().String("config", "", "Path to "+config.FileName+" (default: <cwd>/"+config.FileName+")")
	cmd.Flags().String("registry", "", "npm registry used to resolve tooling versions")
	cmd.Flags().Bool("debug", false, "Enable debug logging")

	return cmd
}

func runInit(cmd *cobra.Command, args []string) error {
	debug, _ := cmd.Flags().GetBool("debug")
	cwd, _ := cmd.Flags().GetString("cwd")
	force, _ := cmd.Flags().GetBool("force")
	configPath, _ := cmd.Flags().GetString("config")
	registryURL, _ := cmd.Flags().GetString("registry")

	var projectName string
	if len(args) > 0 {
		projectName = args[0]
	} else if isInteractive() {
		prompt := &survey.Input{
			Message: "Project name:",
			Default: "my-electron-app",
		}
		if err := survey.AskOne(prompt, &projectName); err != nil {
			return err
		}
	} else {
		return errors.New("project name is required")
	}

	if cwd == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}
		cwd = wd
	}
	desc, err := project.New(projectName, cwd)
	if err != nil {
		return err
	}

	log := output.New(debug)
	if out := cmd.OutOrStdout(); out != os.Stdout {
		log.Out = out
	}
	if errOut := cmd.ErrOrStderr(); errOut != os.Stderr {
		log.Err = errOut
	}

	cfg, err := loadConfig(desc.WorkingDirectory, configPath, registryURL)
	if err != nil {
		return err
	}
	log.Debugf("registry %s", cfg.Registry.URL)

	if err := confirmOverwrite(desc, force, log); err != nil {
		return err
	}

	tmpl, err := templateSource(desc.WorkingDirectory, cfg.Templates.Dir)
	if err != nil {
		return err
	}

	gen := &generator.AngularCLI{
		Command:   cfg.Generator.Command,
		ExtraArgs: cfg.Generator.ExtraArgs,
		PTY:       cfg.Generator.UsePTY(term.IsTerminal(int(os.Stdout.Fd()))),
		Sink:      log,
	}
	log.Debugf("generator: %s", gen.Spec(desc))
	resolver := registry.New(cfg.Registry.URL, cfg.Registry.Timeout)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("🚀 Creating %s in %s", desc.Name, desc.WorkingDirectory)
	res, err := pipeline.New(cfg, gen, resolver, tmpl, log).Run(ctx, desc)
	if err != nil {
		return err
	}

	log.Info("\n🎉 Created %s successfully!\n", desc.Name)
	log.Versions(res.Pinned)
	log.Info("\nNext steps:")
	log.Info("  cd %s", desc.Name)
	log.Info("  npm install")
	log.Info("  npm run serve\n")

	return nil
}

// loadConfig reads the scaffolder config and applies environment and flag
// overrides, in that order.
func loadConfig(workingDir, path, registryURL string) (*config.Config, error) {
	if path == "" {
		path = filepath.Join(workingDir, config.FileName)
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, err
	}

	env, err := config.LoadEnv(workingDir)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv(env)
	if registryURL != "" {
		cfg.Registry.URL = registryURL
	}

	if errs := cfg.Validate(); errs.HasErrors() {
		return nil, errs
	}
	return cfg, nil
}

func confirmOverwrite(desc project.Descriptor, force bool, log *output.Logger) error {
	if _, err := os.Stat(desc.Root()); os.IsNotExist(err) {
		return nil
	}
	if force {
		log.Warning("Replacing existing directory %s", desc.Root())
		return nil
	}
	if !isInteractive() {
		return fmt.Errorf("directory %s already exists (use --force to overwrite it)", desc.Root())
	}

	overwrite := false
	prompt := &survey.Confirm{
		Message: fmt.Sprintf("Directory %s already exists. Delete it and continue?", desc.Root()),
		Default: false,
	}
	if err := survey.AskOne(prompt, &overwrite); err != nil {
		return err
	}
	if !overwrite {
		return ErrAborted
	}
	return nil
}

func templateSource(workingDir, dir string) (fs.FS, error) {
	if dir != "" && !filepath.IsAbs(dir) {
		dir = filepath.Join(workingDir, dir)
	}
	return templates.Source(dir)
}

package config

import (
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the optional per-directory configuration file.
const FileName = "ngx-electron.yaml"

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("config validation error in field '%s': %s (value: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors represents multiple validation errors
type ValidationErrors []ValidationError

func (errs ValidationErrors) Error() string {
	if len(errs) == 0 {
		return "no validation errors"
	}

	var messages []string
	for _, err := range errs {
		messages = append(messages, err.Error())
	}
	return strings.Join(messages, "; ")
}

func (errs ValidationErrors) HasErrors() bool {
	return len(errs) > 0
}

// ConfigLoadOptions provides options for loading configuration
type ConfigLoadOptions struct {
	Path              string
	AllowMissing      bool
	ValidateStructure bool
	ApplyDefaults     bool
	Quiet             bool
}

// DefaultLoadOptions returns the options used by the CLI: a missing file
// falls back to the built-in defaults.
func DefaultLoadOptions() ConfigLoadOptions {
	return ConfigLoadOptions{
		Path:              FileName,
		AllowMissing:      true,
		ValidateStructure: true,
		ApplyDefaults:     true,
		Quiet:             true,
	}
}

// ConfigManager handles configuration loading, validation, and defaults
type ConfigManager struct {
	options ConfigLoadOptions
}

// NewConfigManager creates a new configuration manager
func NewConfigManager(options ConfigLoadOptions) *ConfigManager {
	return &ConfigManager{
		options: options,
	}
}

// LoadConfig loads and validates the configuration
func (cm *ConfigManager) LoadConfig() (*Config, error) {
	return cm.LoadConfigFromPath(cm.options.Path)
}

// LoadConfigFromPath loads configuration from a specific path
func (cm *ConfigManager) LoadConfigFromPath(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if cm.options.AllowMissing {
			if !cm.options.Quiet {
				fmt.Printf("⚠️  Configuration file not found at %s, using defaults\n", path)
			}
			return Default(), nil
		}
		return nil, fmt.Errorf("configuration file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %s: %w", path, err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %s: %w\n\nPlease check your YAML syntax", path, err)
	}

	if cm.options.ApplyDefaults {
		config.applyDefaults()
	}

	if cm.options.ValidateStructure {
		if errs := config.Validate(); errs.HasErrors() {
			return nil, fmt.Errorf("configuration validation failed:\n%s", formatValidationErrors(errs))
		}
	}

	return &config, nil
}

// Validate checks every field the pipeline depends on.
func (c *Config) Validate() ValidationErrors {
	var errors ValidationErrors

	if c.Generator.Command == "" {
		errors = append(errors, ValidationError{
			Field:   "generator.command",
			Value:   c.Generator.Command,
			Message: "generator command cannot be empty",
		})
	}

	validPTY := []string{PTYAuto, PTYAlways, PTYNever}
	if !contains(validPTY, c.Generator.PTY) {
		errors = append(errors, ValidationError{
			Field:   "generator.pty",
			Value:   c.Generator.PTY,
			Message: fmt.Sprintf("unsupported pty mode '%s', valid options are: %s", c.Generator.PTY, strings.Join(validPTY, ", ")),
		})
	}

	layout := []struct{ field, value string }{
		{"layout.source_dir", c.Layout.SourceDir},
		{"layout.renderer_dir", c.Layout.RendererDir},
		{"layout.build_manifest", c.Layout.BuildManifest},
		{"layout.package_manifest", c.Layout.PackageManifest},
		{"layout.app_tsconfig", c.Layout.AppTSConfig},
		{"layout.render_tsconfig", c.Layout.RenderTSConfig},
		{"layout.main_tsconfig", c.Layout.MainTSConfig},
		{"layout.main_entry", c.Layout.MainEntry},
	}
	for _, l := range layout {
		if msg := checkRelative(l.value); msg != "" {
			errors = append(errors, ValidationError{Field: l.field, Value: l.value, Message: msg})
		}
	}

	if c.Layout.SourceDir != "" && path.Clean(c.Layout.SourceDir) == path.Clean(c.Layout.RendererDir) {
		errors = append(errors, ValidationError{
			Field:   "layout.renderer_dir",
			Value:   c.Layout.RendererDir,
			Message: "renderer directory must differ from the source directory",
		})
	}

	if c.Builder.Build == "" {
		errors = append(errors, ValidationError{
			Field:   "builder.build",
			Value:   c.Builder.Build,
			Message: "build builder identifier cannot be empty",
		})
	}
	if c.Builder.Serve == "" {
		errors = append(errors, ValidationError{
			Field:   "builder.serve",
			Value:   c.Builder.Serve,
			Message: "serve builder identifier cannot be empty",
		})
	}

	if u, err := url.Parse(c.Registry.URL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errors = append(errors, ValidationError{
			Field:   "registry.url",
			Value:   c.Registry.URL,
			Message: "registry URL must be an absolute http(s) URL",
		})
	}
	if c.Registry.Timeout < 0 {
		errors = append(errors, ValidationError{
			Field:   "registry.timeout",
			Value:   c.Registry.Timeout,
			Message: "registry timeout cannot be negative",
		})
	}

	for i, name := range c.Tooling {
		if strings.TrimSpace(name) == "" {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("tooling[%d]", i),
				Value:   name,
				Message: "tooling package name cannot be empty",
			})
		}
	}

	if c.Scripts.Serve == "" {
		errors = append(errors, ValidationError{
			Field:   "scripts.serve",
			Value:   c.Scripts.Serve,
			Message: "serve script cannot be empty",
		})
	}
	if c.Scripts.Build == "" {
		errors = append(errors, ValidationError{
			Field:   "scripts.build",
			Value:   c.Scripts.Build,
			Message: "build script cannot be empty",
		})
	}

	return errors
}

func checkRelative(p string) string {
	switch {
	case p == "":
		return "path cannot be empty"
	case filepath.IsAbs(p) || strings.HasPrefix(p, "/"):
		return "path must be relative to the project root"
	case path.Clean(p) == ".." || strings.HasPrefix(path.Clean(p), "../"):
		return "path must stay inside the project root"
	}
	return ""
}

// formatValidationErrors formats validation errors in a user-friendly way
func formatValidationErrors(errors ValidationErrors) string {
	var lines []string
	for i, err := range errors {
		lines = append(lines, fmt.Sprintf("  %d. %s", i+1, err.Error()))
	}
	return strings.Join(lines, "\n")
}

// LoadConfig loads configuration from path, using defaults if it is missing.
func LoadConfig(path string) (*Config, error) {
	options := DefaultLoadOptions()
	options.Path = path
	return NewConfigManager(options).LoadConfig()
}

// Helper functions

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

// PTY modes for the generator process.
const (
	PTYAuto   = "auto"
	PTYAlways = "always"
	PTYNever  = "never"
)

// Config holds the scaffolder settings.
type Config struct {
	Generator GeneratorConfig `yaml:"generator"`
	Layout    LayoutConfig    `yaml:"layout"`
	Builder   BuilderConfig   `yaml:"builder"`
	Registry  RegistryConfig  `yaml:"registry"`
	Tooling   []string        `yaml:"tooling"`
	Scripts   ScriptsConfig   `yaml:"scripts"`
	Templates TemplatesConfig `yaml:"templates"`
}

// GeneratorConfig controls how `ng new` is run.
type GeneratorConfig struct {
	Command   string   `yaml:"command"`
	ExtraArgs []string `yaml:"extra_args,omitempty"`
	PTY       string   `yaml:"pty"` // "auto", "always", "never"
}

// UsePTY reports whether the generator should run on a pseudo-terminal.
func (g GeneratorConfig) UsePTY(terminal bool) bool {
	switch g.PTY {
	case PTYAlways:
		return true
	case PTYNever:
		return false
	default:
		return terminal
	}
}

// LayoutConfig names the project-relative paths the pipeline touches.
// All paths are slash-separated.
type LayoutConfig struct {
	SourceDir       string `yaml:"source_dir"`
	RendererDir     string `yaml:"renderer_dir"`
	BuildManifest   string `yaml:"build_manifest"`
	PackageManifest string `yaml:"package_manifest"`
	AppTSConfig     string `yaml:"app_tsconfig"`
	RenderTSConfig  string `yaml:"render_tsconfig"`
	MainTSConfig    string `yaml:"main_tsconfig"`
	MainEntry       string `yaml:"main_entry"`
}

// BuilderConfig names the desktop-aware builders.
type BuilderConfig struct {
	Build          string `yaml:"build"`
	Serve          string `yaml:"serve"`
	MainOutputName string `yaml:"main_output_name"`
}

// RegistryConfig points at the npm registry used for version lookups.
type RegistryConfig struct {
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"`
}

// ScriptsConfig is the canonical scripts mapping written to package.json.
type ScriptsConfig struct {
	Serve         string `yaml:"serve"`
	Build         string `yaml:"build"`
	PostInstall   string `yaml:"postinstall"`
	PostUninstall string `yaml:"postuninstall"`
}

// TemplatesConfig selects the injected main-process files. An empty Dir uses
// the templates built into the binary.
type TemplatesConfig struct {
	Dir string `yaml:"dir,omitempty"`
}

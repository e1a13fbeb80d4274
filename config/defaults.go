package config

import "time"

// Default values written into the generated project.
const (
	DefaultGeneratorCommand = "ng"
	DefaultRegistryURL      = "https://registry.npmjs.org"
	DefaultRegistryTimeout  = 30 * time.Second

	DefaultBuildBuilder   = "@miup/ngx-electron-builder:build"
	DefaultServeBuilder   = "@miup/ngx-electron-builder:dev-server"
	DefaultMainOutputName = "main.js"
)

// DefaultTooling lists the desktop tooling packages pinned into devDependencies.
var DefaultTooling = []string{
	"@miup/ngx-electron-builder",
	"electron-builder",
	"electron",
}

// Default returns the built-in configuration.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// applyDefaults fills every unset field.
func (c *Config) applyDefaults() {
	if c.Generator.Command == "" {
		c.Generator.Command = DefaultGeneratorCommand
	}
	if c.Generator.PTY == "" {
		c.Generator.PTY = PTYAuto
	}

	if c.Layout.SourceDir == "" {
		c.Layout.SourceDir = "src"
	}
	if c.Layout.RendererDir == "" {
		c.Layout.RendererDir = c.Layout.SourceDir + "/render"
	}
	if c.Layout.BuildManifest == "" {
		c.Layout.BuildManifest = "angular.json"
	}
	if c.Layout.PackageManifest == "" {
		c.Layout.PackageManifest = "package.json"
	}
	if c.Layout.AppTSConfig == "" {
		c.Layout.AppTSConfig = "tsconfig.app.json"
	}
	if c.Layout.RenderTSConfig == "" {
		c.Layout.RenderTSConfig = "tsconfig.render.json"
	}
	if c.Layout.MainTSConfig == "" {
		c.Layout.MainTSConfig = "tsconfig.main.json"
	}
	if c.Layout.MainEntry == "" {
		c.Layout.MainEntry = c.Layout.SourceDir + "/main/index.ts"
	}

	if c.Builder.Build == "" {
		c.Builder.Build = DefaultBuildBuilder
	}
	if c.Builder.Serve == "" {
		c.Builder.Serve = DefaultServeBuilder
	}
	if c.Builder.MainOutputName == "" {
		c.Builder.MainOutputName = DefaultMainOutputName
	}

	if c.Registry.URL == "" {
		c.Registry.URL = DefaultRegistryURL
	}
	if c.Registry.Timeout == 0 {
		c.Registry.Timeout = DefaultRegistryTimeout
	}

	if len(c.Tooling) == 0 {
		c.Tooling = append([]string(nil), DefaultTooling...)
	}

	if c.Scripts.Serve == "" {
		c.Scripts.Serve = "ng serve"
	}
	if c.Scripts.Build == "" {
		c.Scripts.Build = "ng build"
	}
	if c.Scripts.PostInstall == "" {
		c.Scripts.PostInstall = "electron-builder install-app-deps"
	}
	if c.Scripts.PostUninstall == "" {
		c.Scripts.PostUninstall = "electron-builder install-app-deps"
	}
}

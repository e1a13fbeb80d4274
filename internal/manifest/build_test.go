package manifest

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func testBuildOptions() BuildOptions {
	return BuildOptions{
		SourceDir:             "src",
		RendererDir:           "src/render",
		BuildBuilder:          "@miup/ngx-electron-builder:build",
		ServeBuilder:          "@miup/ngx-electron-builder:dev-server",
		TSConfig:              "tsconfig.render.json",
		MainProcess:           "src/main/index.ts",
		MainProcessTSConfig:   "tsconfig.main.json",
		MainProcessOutputName: "main.js",
	}
}

func buildTarget(t *testing.T, path, target string) *Document {
	t.Helper()
	doc, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	projects, _ := doc.Object("projects")
	project, ok := projects.Object("demo-app")
	if !ok {
		t.Fatal("Expected demo-app project")
	}
	architect, _ := project.Object("architect")
	tgt, ok := architect.Object(target)
	if !ok {
		t.Fatalf("Expected %s target", target)
	}
	return tgt
}

func TestRewriteBuildManifest(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "angular.json", stockAngularJSON)

	if err := RewriteBuildManifest(path, testBuildOptions()); err != nil {
		t.Fatalf("RewriteBuildManifest failed: %v", err)
	}

	build := buildTarget(t, path, "build")
	if builder, _ := build.StringValue("builder"); builder != "@miup/ngx-electron-builder:build" {
		t.Errorf("Expected desktop build builder, got %q", builder)
	}
	options, _ := build.Object("options")

	got := map[string]string{}
	for _, key := range []string{"index", "main", "polyfills", "outputPath", "tsConfig", "mainProcess", "mainProcessTsConfig", "mainProcessOutputName", "inlineStyleLanguage"} {
		got[key], _ = options.StringValue(key)
	}
	want := map[string]string{
		"index":                 "src/render/index.html",
		"main":                  "src/render/main.ts",
		"polyfills":             "src/render/polyfills.ts",
		"outputPath":            "dist/demo-app",
		"tsConfig":              "tsconfig.render.json",
		"mainProcess":           "src/main/index.ts",
		"mainProcessTsConfig":   "tsconfig.main.json",
		"mainProcessOutputName": "main.js",
		"inlineStyleLanguage":   "scss",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("build options mismatch (-want +got):\n%s", diff)
	}

	serve := buildTarget(t, path, "serve")
	if builder, _ := serve.StringValue("builder"); builder != "@miup/ngx-electron-builder:dev-server" {
		t.Errorf("Expected desktop serve builder, got %q", builder)
	}
	if v, ok := serve.StringValue("defaultConfiguration"); !ok || v != "development" {
		t.Errorf("Expected existing serve fields to survive, got %q", v)
	}

	content := readFile(t, path)
	if !strings.Contains(content, `"sourceRoot": "src/render"`) {
		t.Errorf("Expected sourceRoot to point at renderer folder:\n%s", content)
	}
	if !strings.Contains(content, `"src/render/favicon.ico"`) {
		t.Errorf("Expected nested array paths rewritten:\n%s", content)
	}
	if strings.Index(content, `"$schema"`) > strings.Index(content, `"projects"`) {
		t.Errorf("Expected top-level key order preserved:\n%s", content)
	}
}

func TestRewriteBuildManifestTwiceDoesNotNest(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "angular.json", `{
  "projects": {
    "demo-app": {
      "architect": {
        "build": {"options": {"main": "src/main.ts"}}
      }
    }
  }
}
`)

	for i := 0; i < 2; i++ {
		if err := RewriteBuildManifest(path, testBuildOptions()); err != nil {
			t.Fatalf("pass %d failed: %v", i+1, err)
		}
	}

	content := readFile(t, path)
	if strings.Count(content, "src/render/") != 1 {
		t.Errorf("Expected src/render/ exactly once, got:\n%s", content)
	}
	if strings.Contains(content, "src/render/render") {
		t.Errorf("Expected no double substitution, got:\n%s", content)
	}
}

func TestDefaultProject(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"explicit", `{"projects": {"a": {}, "b": {}}, "defaultProject": "b"}`, "b", false},
		{"first in order", `{"projects": {"zeta": {}, "alpha": {}}}`, "zeta", false},
		{"unknown default", `{"projects": {"a": {}}, "defaultProject": "x"}`, "", true},
		{"no projects", `{"projects": {}}`, "", true},
		{"missing projects", `{}`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse([]byte(tt.input))
			if err != nil {
				t.Fatal(err)
			}
			got, err := DefaultProject(doc)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DefaultProject() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("DefaultProject() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRewriteBuildManifestStructureErrors(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "angular.json", `{"projects": {"demo-app": {"root": ""}}}`)

	err := RewriteBuildManifest(path, testBuildOptions())
	var parseErr *ConfigParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("Expected ConfigParseError for missing architect, got %v", err)
	}
}

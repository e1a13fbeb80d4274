package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/barisgit/ngx-electron/internal/fsops"
)

func TestRewriteTSConfig(t *testing.T) {
	dir := t.TempDir()
	from := writeFixture(t, dir, "tsconfig.app.json", stockTSConfigApp)
	to := filepath.Join(dir, "tsconfig.render.json")

	if err := RewriteTSConfig(from, to, "src", "src/render"); err != nil {
		t.Fatalf("RewriteTSConfig failed: %v", err)
	}

	if _, err := os.Stat(from); !os.IsNotExist(err) {
		t.Errorf("Expected %s to be removed, stat err = %v", from, err)
	}

	content := readFile(t, to)
	for _, want := range []string{`"src/render/main.ts"`, `"src/render/polyfills.ts"`, `"src/render/**/*.d.ts"`, "/* To learn more"} {
		if !strings.Contains(content, want) {
			t.Errorf("Expected %s in rewritten config:\n%s", want, content)
		}
	}
	if strings.Contains(content, "render/render") {
		t.Errorf("Expected single substitution:\n%s", content)
	}
}

func TestRewriteTSConfigRewritesRendererPrefixedNames(t *testing.T) {
	dir := t.TempDir()
	from := writeFixture(t, dir, "tsconfig.app.json", `{"files": ["src/main.ts", "src/renderer-shim.d.ts"]}`)
	to := filepath.Join(dir, "tsconfig.render.json")

	if err := RewriteTSConfig(from, to, "src", "src/render"); err != nil {
		t.Fatalf("RewriteTSConfig failed: %v", err)
	}

	want := `{"files": ["src/render/main.ts", "src/render/renderer-shim.d.ts"]}`
	if got := readFile(t, to); got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}
}

func TestRewriteTSConfigMissingSource(t *testing.T) {
	dir := t.TempDir()

	err := RewriteTSConfig(filepath.Join(dir, "tsconfig.app.json"), filepath.Join(dir, "tsconfig.render.json"), "src", "src/render")
	var fsErr *fsops.FilesystemError
	if !errors.As(err, &fsErr) {
		t.Fatalf("Expected FilesystemError, got %v", err)
	}
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// EnvFile is read from the working directory when present.
const EnvFile = ".env"

// RegistryEnv overrides registry.url.
const RegistryEnv = "NPM_CONFIG_REGISTRY"

// LoadEnv merges <workingDir>/.env with the process environment. Process
// variables take precedence. The process environment is never modified.
func LoadEnv(workingDir string) (map[string]string, error) {
	env := map[string]string{}

	path := filepath.Join(workingDir, EnvFile)
	if _, err := os.Stat(path); err == nil {
		values, err := godotenv.Read(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		for k, v := range values {
			env[k] = v
		}
	}

	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if ok {
			env[k] = v
		}
	}
	return env, nil
}

// ApplyEnv applies environment overrides. npm exports the lower-case form to
// lifecycle scripts, so both spellings are honoured.
func (c *Config) ApplyEnv(env map[string]string) {
	for _, key := range []string{RegistryEnv, strings.ToLower(RegistryEnv)} {
		if v := strings.TrimSpace(env[key]); v != "" {
			c.Registry.URL = strings.TrimSuffix(v, "/")
			return
		}
	}
}

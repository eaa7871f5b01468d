// Package config loads odev's layered configuration: embedded defaults,
// then an optional odev.toml in the working directory, then ODEV_*
// environment variables.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	odeverr "github.com/odoo-devkit/odev/pkg/errors"
)

// ConfigFileName is the per-project override file probed in the working directory
const ConfigFileName = "odev.toml"

// EnvPrefix is the prefix for environment variable overrides
const EnvPrefix = "ODEV_"

// Upstream holds the upstream endpoints consulted during bootstrap
type Upstream struct {
	// RepoAPI is the repository metadata endpoint whose default branch
	// names the latest Odoo major version
	RepoAPI string `koanf:"repo_api"`
	// InstallScript is the engine convenience-install script URL
	InstallScript string `koanf:"install_script"`
}

// Compose holds orchestration manifest settings
type Compose struct {
	// Manifest is the preferred manifest filename; compose.yml is probed
	// as a fallback
	Manifest string `koanf:"manifest"`
	// EnvFile is the version env file written for compose to consume
	EnvFile string `koanf:"env_file"`
}

// Scaffold holds addon directory scaffolding settings
type Scaffold struct {
	// Root is the directory the per-version trees are created under
	Root string `koanf:"root"`
	// Subdirs are the per-version addon directories
	Subdirs []string `koanf:"subdirs"`
}

// HTTP holds settings for the one-shot metadata and download requests
type HTTP struct {
	Timeout time.Duration `koanf:"timeout"`
}

// Config is the fully resolved odev configuration
type Config struct {
	Upstream Upstream `koanf:"upstream"`
	Compose  Compose  `koanf:"compose"`
	Scaffold Scaffold `koanf:"scaffold"`
	HTTP     HTTP     `koanf:"http"`
}

// Default returns the embedded default configuration
func Default() *Config {
	cfg, err := load("")
	if err != nil {
		// The embedded defaults are validated by tests; a parse failure
		// here is a build defect, not a runtime condition.
		panic(err)
	}
	return cfg
}

// Load resolves configuration for the given working directory
func Load(workDir string) (*Config, error) {
	return load(workDir)
}

func load(workDir string) (*Config, error) {
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(rawbytes.Provider(defaultConfig), toml.Parser()); err != nil {
		return nil, odeverr.Wrap(err, odeverr.ErrConfigParse, "failed to load embedded defaults")
	}

	// 2. Working-directory override file, if present
	if workDir != "" {
		path := filepath.Join(workDir, ConfigFileName)
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, odeverr.Wrapf(err, odeverr.ErrConfigLoad, "failed to load %s", path)
			}
		}
	}

	// 3. Environment overrides: ODEV_UPSTREAM_REPO_API -> upstream.repo_api
	if err := k.Load(env.Provider(EnvPrefix, ".", envKeyToPath), nil); err != nil {
		return nil, odeverr.Wrap(err, odeverr.ErrConfigLoad, "failed to load environment overrides")
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, odeverr.Wrap(err, odeverr.ErrConfigParse, "failed to unmarshal configuration")
	}
	return &cfg, nil
}

// envKeyToPath maps ODEV_SECTION_SOME_KEY to section.some_key. Only the
// first underscore separates the section, the rest belong to the key.
func envKeyToPath(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.Replace(s, "_", ".", 1)
}

// ManifestCandidates returns the manifest filenames probed in order
func (c *Config) ManifestCandidates() []string {
	candidates := []string{c.Compose.Manifest}
	if c.Compose.Manifest != "compose.yml" {
		candidates = append(candidates, "compose.yml")
	}
	return candidates
}

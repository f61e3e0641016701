// Package config loads the optional relm.yaml project file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	relmerrors "github.com/go-drift/relm/pkg/errors"
	"github.com/go-drift/relm/pkg/state"
)

// FileName is the project configuration file.
const FileName = "relm.yaml"

// Version is the library version checked against engine.version.
var Version = "v0.1.0"

// Config represents the optional relm.yaml configuration.
type Config struct {
	App     AppConfig     `yaml:"app"`
	Engine  EngineConfig  `yaml:"engine"`
	State   StateConfig   `yaml:"state"`
	Effects EffectsConfig `yaml:"effects"`
	Errors  ErrorsConfig  `yaml:"errors"`
}

// AppConfig contains application metadata.
type AppConfig struct {
	Name string `yaml:"name,omitempty"`
}

// EngineConfig pins the library version the project was written for.
type EngineConfig struct {
	Version string `yaml:"version,omitempty"`
}

// StateConfig tunes state updates.
type StateConfig struct {
	MaxPasses int `yaml:"max_passes,omitempty"`
}

// EffectsConfig controls visual effects. Enabled defaults to true.
type EffectsConfig struct {
	Enabled *bool `yaml:"enabled,omitempty"`
}

// ErrorsConfig controls diagnostics.
type ErrorsConfig struct {
	Verbose bool `yaml:"verbose,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Root           string
	ModulePath     string
	AppName        string
	EngineVersion  string
	MaxPasses      int
	EffectsEnabled bool
	Verbose        bool
}

// Parse decodes relm.yaml content.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}
	return &cfg, nil
}

// Starter returns the configuration written by "relm init": the project
// name, this library's version and the defaults spelled out.
func Starter(appName string) *Config {
	enabled := true
	return &Config{
		App:     AppConfig{Name: appName},
		Engine:  EngineConfig{Version: Version},
		State:   StateConfig{MaxPasses: state.DefaultMaxPasses},
		Effects: EffectsConfig{Enabled: &enabled},
	}
}

// Write stores cfg as relm.yaml in dir. An existing file is an error.
func Write(dir string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", FileName, err)
	}
	f, err := os.OpenFile(filepath.Join(dir, FileName), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// LoadOptional reads relm.yaml from dir if present.
func LoadOptional(dir string) (*Config, error) {
	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}
	return Parse(data)
}

// Resolve loads relm.yaml (if present) from dir and resolves defaults.
// Failures are *errors.ReactiveError values of kind KindConfig.
func Resolve(dir string) (*Resolved, error) {
	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, configError(err)
	}
	r, err := cfg.resolve(dir, modulePath(dir))
	if err != nil {
		return nil, configError(err)
	}
	return r, nil
}

func configError(err error) error {
	return &relmerrors.ReactiveError{Op: "config.Resolve", Kind: relmerrors.KindConfig, Err: err}
}

func (cfg *Config) resolve(dir, modPath string) (*Resolved, error) {
	appName := strings.TrimSpace(cfg.App.Name)
	if appName == "" {
		appName = defaultAppName(modPath, dir)
	}

	engineVersion := strings.TrimSpace(cfg.Engine.Version)
	if engineVersion == "" {
		engineVersion = "latest"
	}
	if err := CheckEngineVersion(engineVersion); err != nil {
		return nil, err
	}

	maxPasses := cfg.State.MaxPasses
	if maxPasses < 0 {
		return nil, fmt.Errorf("state.max_passes must not be negative (got %d)", maxPasses)
	}
	if maxPasses == 0 {
		maxPasses = state.DefaultMaxPasses
	}

	effects := true
	if cfg.Effects.Enabled != nil {
		effects = *cfg.Effects.Enabled
	}

	return &Resolved{
		Root:           dir,
		ModulePath:     modPath,
		AppName:        appName,
		EngineVersion:  engineVersion,
		MaxPasses:      maxPasses,
		EffectsEnabled: effects,
		Verbose:        cfg.Errors.Verbose,
	}, nil
}

// CheckEngineVersion reports whether a project pinned to required can run
// on this library. "latest" always can. Otherwise required must be a
// semantic version with the same major version (and, before v1, the same
// minor version) that is not newer than Version.
func CheckEngineVersion(required string) error {
	if required == "latest" {
		return nil
	}
	v := required
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return fmt.Errorf("engine.version %q is not a valid semantic version", required)
	}
	if semver.Major(v) != semver.Major(Version) ||
		(semver.Major(v) == "v0" && semver.MajorMinor(v) != semver.MajorMinor(Version)) {
		return fmt.Errorf("engine.version %s is incompatible with library %s", required, Version)
	}
	if semver.Compare(v, Version) > 0 {
		return fmt.Errorf("engine.version %s is newer than library %s", required, Version)
	}
	return nil
}

// Handler returns the error handler the configuration asks for.
func (r *Resolved) Handler() *relmerrors.LogHandler {
	return &relmerrors.LogHandler{Verbose: r.Verbose}
}

// FindProjectRoot walks up from dir to the nearest directory holding
// relm.yaml or go.mod. It returns dir itself when neither is found.
func FindProjectRoot(dir string) string {
	for cur := dir; ; {
		for _, name := range []string{FileName, "go.mod"} {
			if _, err := os.Stat(filepath.Join(cur, name)); err == nil {
				return cur
			}
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return dir
		}
		cur = parent
	}
}

// modulePath returns the module path declared in dir's go.mod, or "".
func modulePath(dir string) string {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return ""
	}
	return modfile.ModulePath(data)
}

func defaultAppName(modPath, dir string) string {
	base := filepath.Base(dir)
	if modPath != "" {
		if prefix, _, ok := module.SplitPathVersion(modPath); ok {
			parts := strings.Split(prefix, "/")
			base = parts[len(parts)-1]
		}
	}
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "relm_app"
	}
	return base
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	goyaml "gopkg.in/yaml.v3"

	"github.com/gorewood/gitcc/internal/conventional"
	"github.com/gorewood/gitcc/internal/output"
)

// RepoFile is the per-repository config file, looked up at the repo root.
const RepoFile = ".git-cc.yaml"

// EnvPrefix prefixes every environment override.
// GIT_CC_FORMAT__WRAP_WIDTH → format.wrap_width.
const EnvPrefix = "GIT_CC_"

// Config is the merged git-cc configuration.
type Config struct {
	Types  conventional.TypeSet `json:"types"  koanf:"types"  yaml:"types"  validate:"required,min=1,unique=Name,dive"`
	Format conventional.Options `json:"format" koanf:"format" yaml:"format"`
	Prompt PromptConfig         `json:"prompt" koanf:"prompt" yaml:"prompt"`
	Log    LogConfig            `json:"log"    koanf:"log"    yaml:"log"`

	// Sources lists the files that contributed, in load order.
	Sources []string `json:"-" koanf:"-" yaml:"-"`
}

// PromptConfig controls the interactive collector.
type PromptConfig struct {
	Accessible       bool `json:"accessible"        koanf:"accessible"        yaml:"accessible"`
	Confirm          bool `json:"confirm"           koanf:"confirm"           yaml:"confirm"`
	ScopeSuggestions bool `json:"scope_suggestions" koanf:"scope_suggestions" yaml:"scope_suggestions"`
	HistoryDepth     int  `json:"history_depth"     koanf:"history_depth"     yaml:"history_depth"     validate:"gte=0"`
}

// LogConfig controls the stderr logger.
type LogConfig struct {
	Level string `json:"level" koanf:"level" yaml:"level" validate:"oneof=debug info warn error"`
}

// Defaults returns a Config with the built-in values.
func Defaults() *Config {
	return &Config{
		Types:  conventional.DefaultTypes(),
		Format: conventional.DefaultOptions(),
		Prompt: PromptConfig{
			ScopeSuggestions: true,
			HistoryDepth:     200,
		},
		Log: LogConfig{Level: "warn"},
	}
}

// Formatter builds the message formatter for this configuration.
func (c *Config) Formatter() conventional.Formatter {
	return conventional.NewFormatter(c.Types, c.Format)
}

// Load merges defaults, the global config file, <repoRoot>/.git-cc.yaml and
// GIT_CC_* environment variables, later sources overriding earlier ones.
// Missing files are skipped; an empty repoRoot skips the repository file.
func Load(repoRoot string) (*Config, error) {
	k := koanf.New(".")
	cfg := Defaults()

	paths := []string{GlobalFile()}
	if repoRoot != "" {
		paths = append(paths, filepath.Join(repoRoot, RepoFile))
	}
	for _, path := range paths {
		loaded, err := loadFile(k, path)
		if err != nil {
			return nil, err
		}
		if loaded {
			cfg.Sources = append(cfg.Sources, path)
		}
	}

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(s, EnvPrefix)
		s = strings.ToLower(s)
		return strings.ReplaceAll(s, "__", ".")
	}), nil)
	if err != nil {
		return nil, output.NewSystemErrorWithCause("loading environment overrides", err)
	}

	// A configured type list replaces the defaults rather than being merged
	// into them element by element.
	if k.Exists("types") {
		cfg.Types = nil
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, output.NewSystemErrorWithCause("decoding configuration: "+err.Error(), err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(k *koanf.Koanf, path string) (bool, error) {
	if path == "" {
		return false, nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return false, output.NewSystemErrorWithCause(fmt.Sprintf("loading config file %s", path), err)
	}
	return true, nil
}

// Validate checks the configuration with the same validator used for
// commit messages.
func (c *Config) Validate() error {
	if err := conventional.NewValidate().Struct(c); err != nil {
		return output.NewSystemErrorWithCause("invalid configuration: "+conventional.DescribeError(err), err)
	}
	return nil
}

// Marshal renders the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := goyaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	return data, nil
}

// WriteFile writes c to path, creating parent directories. It refuses to
// replace an existing file unless force is set.
func (c *Config) WriteFile(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return output.NewConflictError(path + " already exists; use --force to overwrite")
		}
	}

	data, err := c.Marshal()
	if err != nil {
		return output.NewSystemErrorWithCause("encoding config", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return output.NewSystemErrorWithCause("creating "+filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // config file is meant to be readable
		return output.NewSystemErrorWithCause("writing "+path, err)
	}
	return nil
}

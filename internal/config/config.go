// Package config loads and validates go-chordsheet YAML configuration files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-chordsheet/internal/fileutil"
	"github.com/alnah/go-chordsheet/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxPathLength        = 4096
	MaxStyleLength       = 100
	MaxWrapperLength     = 64
	MaxPageSizeLength    = 10 // "letter", "a4", "legal"
	MaxOrientationLength = 10 // "portrait", "landscape"
	MaxLevelLength       = 10
)

// AppDirName is the directory under the user config dir searched by LoadConfig.
const AppDirName = "go-chordsheet"

// Config holds all configuration for song sheet generation.
type Config struct {
	Input   InputConfig   `yaml:"input"`
	Output  OutputConfig  `yaml:"output"`
	CSS     CSSConfig     `yaml:"css"`
	Chords  ChordsConfig  `yaml:"chords"`
	Wrapper WrapperConfig `yaml:"wrapper"`
	Assets  AssetsConfig  `yaml:"assets"`
	Page    PageConfig    `yaml:"page"`
	Log     LogConfig     `yaml:"log"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // empty = must specify
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // empty = next to the source
}

// CSSConfig defines styling options.
type CSSConfig struct {
	Style string `yaml:"style"` // style name, CSS file path, or empty for the default
}

// ChordsConfig points at a user chord dictionary.
type ChordsConfig struct {
	File    string `yaml:"file"`
	Replace bool   `yaml:"replace"` // use the file alone instead of overlaying the built-in table
}

// WrapperConfig overrides the markup that encloses preformatted song blocks.
// Both fields must be set together.
type WrapperConfig struct {
	Open  string `yaml:"open"`
	Close string `yaml:"close"`
}

// AssetsConfig defines where custom styles are looked up.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // contains styles/{name}.css
}

// PageConfig defines PDF page layout.
type PageConfig struct {
	Size        string  `yaml:"size"`
	Orientation string  `yaml:"orientation"`
	Margin      float64 `yaml:"margin"` // inches
}

// LogConfig defines CLI logging.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

var validLogLevels = map[string]bool{"": true, "debug": true, "info": true, "warn": true, "error": true}

// Validate checks field lengths and value ranges.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"input.defaultDir", c.Input.DefaultDir, MaxPathLength},
		{"output.defaultDir", c.Output.DefaultDir, MaxPathLength},
		{"css.style", c.CSS.Style, MaxPathLength},
		{"chords.file", c.Chords.File, MaxPathLength},
		{"wrapper.open", c.Wrapper.Open, MaxWrapperLength},
		{"wrapper.close", c.Wrapper.Close, MaxWrapperLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"page.size", c.Page.Size, MaxPageSizeLength},
		{"page.orientation", c.Page.Orientation, MaxOrientationLength},
		{"log.level", c.Log.Level, MaxLevelLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if (c.Wrapper.Open == "") != (c.Wrapper.Close == "") {
		return fmt.Errorf("%w: wrapper.open and wrapper.close must be set together", ErrInvalidValue)
	}
	if c.Page.Margin < 0 {
		return fmt.Errorf("%w: page.margin must not be negative, got %.2f", ErrInvalidValue, c.Page.Margin)
	}
	if !validLogLevels[strings.ToLower(c.Log.Level)] {
		return fmt.Errorf("%w: log.level %q (want debug, info, warn or error)", ErrInvalidValue, c.Log.Level)
	}
	return nil
}

func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads a config by name or path.
// A value containing a path separator is read directly; otherwise
// {name}.yaml and {name}.yml are searched in the working directory, then in
// the user config directory under AppDirName.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		if configPath, err = resolveConfigPath(nameOrPath); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// SearchPaths returns the candidate files LoadConfig tries for name.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(dir, AppDirName, name+ext))
		}
	}
	return paths
}

func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}

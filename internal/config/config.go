// Package config holds the persisted application configuration consumed by
// the exporter: rendering style locations, highlight settings, and export
// defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-mdexport/internal/fileutil"
	"github.com/alnah/go-mdexport/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
)

// DefaultAppName is used in exported page titles when no name is configured.
const DefaultAppName = "mdexport"

// DefaultCodeBlockStyle is the chroma style applied to fenced code blocks.
const DefaultCodeBlockStyle = "github"

// Config holds all configuration for document export.
type Config struct {
	App      AppConfig      `yaml:"app"`
	Markdown MarkdownConfig `yaml:"markdown"`
	Export   ExportConfig   `yaml:"export"`
}

// AppConfig identifies the hosting application.
type AppConfig struct {
	Name string `yaml:"name"` // Appended to exported page titles (empty = DefaultAppName)
}

// MarkdownConfig defines how markdown documents are rendered.
type MarkdownConfig struct {
	RenderingStyleFile       string `yaml:"renderingStyleFile"`       // CSS file path or embedded style name (empty = "default")
	SyntaxHighlightStyleFile string `yaml:"syntaxHighlightStyleFile"` // CSS file path or embedded style name (empty = "highlight")
	CodeBlockStyle           string `yaml:"codeBlockStyle"`           // Chroma style name for fenced code blocks
	TransparentBackground    bool   `yaml:"transparentBackground"`    // Render with a transparent page background
}

// ExportConfig defines export defaults applied when the caller does not
// specify per-export options.
type ExportConfig struct {
	EmbedStyles     bool `yaml:"embedStyles"`
	CompletePage    bool `yaml:"completePage"`
	EmbedImages     bool `yaml:"embedImages"`
	AddOutlinePanel bool `yaml:"addOutlinePanel"`
}

// Default returns the configuration used when no config file is present.
func Default() *Config {
	return &Config{
		App: AppConfig{Name: DefaultAppName},
		Markdown: MarkdownConfig{
			RenderingStyleFile:       "",
			SyntaxHighlightStyleFile: "",
			CodeBlockStyle:           DefaultCodeBlockStyle,
			TransparentBackground:    false,
		},
		Export: ExportConfig{
			EmbedStyles:  true,
			CompletePage: true,
		},
	}
}

// AppName returns the configured application name or the default.
func (c *Config) AppName() string {
	if c == nil || c.App.Name == "" {
		return DefaultAppName
	}
	return c.App.Name
}

// Load reads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func Load(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
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

	cfg := Default()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	return cfg, nil
}

// SearchPaths returns the locations Load visits for a config name, in
// search order: current directory first, then the user config directory,
// each with .yaml and .yml extensions.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, "mdexport", name+ext))
		}
	}
	return paths
}

// resolveConfigPath searches for a config file by name in standard locations.
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}

// fileExists checks if a path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// Package assets holds the embedded HTML skeletons and stylesheets shipped
// with the module. Styles are also reachable from exported documents through
// qrc: URLs, which resolve against the same embedded filesystem.
package assets

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

//go:embed styles templates
var content embed.FS

// Sentinel errors for asset loading.
var (
	ErrStyleNotFound    = errors.New("style not found")
	ErrTemplateNotFound = errors.New("template not found")
	ErrInvalidAssetName = errors.New("invalid asset name")
)

// Content returns the embedded asset filesystem. Paths are rooted at
// "styles/" and "templates/".
func Content() fs.FS {
	return content
}

// Style loads an embedded CSS style by name (without the .css extension).
func Style(name string) (string, error) {
	if err := validateAssetName(name); err != nil {
		return "", err
	}
	data, err := content.ReadFile("styles/" + name + ".css")
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrStyleNotFound, name)
	}
	return string(data), nil
}

// Template loads an embedded HTML skeleton by name (without the .html extension).
func Template(name string) (string, error) {
	if err := validateAssetName(name); err != nil {
		return "", err
	}
	data, err := content.ReadFile("templates/" + name + ".html")
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
	}
	return string(data), nil
}

// validateAssetName rejects names that could escape the asset directories.
func validateAssetName(name string) error {
	if name == "" || strings.ContainsAny(name, "/\\") || strings.Contains(name, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}

// Package templates holds files compiled into the adaptive binary.
package templates

import (
	"embed"
	"io/fs"
)

//go:embed config.yaml
var files embed.FS

// DefaultConfigPath is the name of the default configuration inside FS.
const DefaultConfigPath = "config.yaml"

// FS returns the embedded files.
func FS() fs.FS {
	return files
}

// DefaultConfig returns the commented default configuration.
func DefaultConfig() ([]byte, error) {
	return files.ReadFile(DefaultConfigPath)
}

package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultListsFile is the default threat lists file name.
const DefaultListsFile = "lists.yaml"

// LoadListsFile loads threat list overrides from a YAML file.
// If the file does not exist, it returns ErrListsNotFound. Callers should
// treat that as "use the defaults" unless the path was given explicitly.
func LoadListsFile(path string) (ListsData, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided lists path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return ListsData{}, ErrListsNotFound
		}
		return ListsData{}, err
	}

	var ld ListsData
	if err := yaml.Unmarshal(data, &ld); err != nil {
		return ListsData{}, err
	}
	return ld, nil
}

// FindListsFile searches for the threat lists file in the following order:
//  1. If listsPath is specified, use it directly
//  2. Look for lists.yaml in the current directory
//  3. Look for lists.yaml in the XDG config directory
//
// Returns the path if found, or empty string if not found.
func FindListsFile(listsPath string) string {
	if listsPath != "" {
		if _, err := os.Stat(listsPath); err == nil {
			return listsPath
		}
		return ""
	}

	if cwd, err := os.Getwd(); err == nil {
		p := filepath.Join(cwd, DefaultListsFile)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	p := filepath.Join(XDGConfigDir(), DefaultListsFile)
	if _, err := os.Stat(p); err == nil {
		return p
	}

	return ""
}

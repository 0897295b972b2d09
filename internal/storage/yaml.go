// Package storage is a thin YAML-file persistence wrapper.
package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type YAMLFile struct {
	path string
}

func NewYAMLFile(path string) *YAMLFile {
	return &YAMLFile{path: path}
}

func (y *YAMLFile) Path() string {
	return y.path
}

// LoadOrCreate fills dest from the file; a missing file leaves dest at its
// zero value without error.
func (y *YAMLFile) LoadOrCreate(dest any) error {
	data, err := os.ReadFile(y.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read file: %w", err)
	}
	if err := yaml.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("parse yaml: %w", err)
	}
	return nil
}

func (y *YAMLFile) Save(data any) error {
	if err := os.MkdirAll(filepath.Dir(y.path), 0700); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	out, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(y.path, out, 0600); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/embercheck/embercheck/internal/domain"
	"gopkg.in/yaml.v3"
)

const fileName = ".embercheck.yaml"

// YAMLLoader implements domain.ConfigLoader by reading .embercheck.yaml.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads .embercheck.yaml from rootPath.
// Returns DefaultProjectConfig if the file does not exist.
func (l *YAMLLoader) Load(rootPath string) (domain.ProjectConfig, error) {
	data, err := os.ReadFile(filepath.Join(rootPath, fileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.DefaultProjectConfig(), nil
		}
		return domain.ProjectConfig{}, err
	}

	var cfg domain.ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("parsing %s: %w", fileName, err)
	}

	if err := cfg.Validate(); err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("invalid %s: %w", fileName, err)
	}

	return cfg, nil
}

// Package corpus loads rule corpora from YAML files.
package corpus

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/embercheck/embercheck/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed default_rules.yaml
var defaultRules []byte

// YAMLLoader implements domain.CorpusLoader by reading a rules YAML file.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// corpusFile is the on-disk corpus shape.
type corpusFile struct {
	Version int           `yaml:"version"`
	Rules   []domain.Rule `yaml:"rules"`
}

// Load reads and validates a corpus. An empty path selects the embedded
// default corpus. Any failure is reported as domain.ErrMalformedCorpus.
func (l *YAMLLoader) Load(path string) (*domain.Corpus, error) {
	data := defaultRules
	source := "embedded corpus"

	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: reading %s: %v", domain.ErrMalformedCorpus, path, err)
		}
		source = path
	}

	var cf corpusFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", domain.ErrMalformedCorpus, source, err)
	}
	if len(cf.Rules) == 0 {
		return nil, fmt.Errorf("%w: %s contains no rules", domain.ErrMalformedCorpus, source)
	}

	return domain.NewCorpus(cf.Rules)
}

package application

import (
	"fmt"

	"github.com/embercheck/embercheck/internal/domain"
)

// RulesService exposes the corpus for listing, explaining, and validating.
type RulesService struct {
	corpusLoader domain.CorpusLoader
}

func NewRulesService(corpusLoader domain.CorpusLoader) *RulesService {
	return &RulesService{corpusLoader: corpusLoader}
}

// ListRules loads the corpus at rulesPath (or the default for "").
func (s *RulesService) ListRules(rulesPath string) (*domain.Corpus, error) {
	return s.corpusLoader.Load(rulesPath)
}

// ExplainRule returns a single rule by id.
func (s *RulesService) ExplainRule(rulesPath, id string) (domain.Rule, error) {
	corpus, err := s.corpusLoader.Load(rulesPath)
	if err != nil {
		return domain.Rule{}, err
	}
	rule, ok := corpus.Lookup(id)
	if !ok {
		return domain.Rule{}, fmt.Errorf("%w: %q", domain.ErrRuleNotFound, id)
	}
	return rule, nil
}

// ValidateCorpus loads a corpus file and reports its rule counts. The load
// already enforces the full corpus contract, so success means valid.
func (s *RulesService) ValidateCorpus(path string) (total, enforced int, err error) {
	corpus, err := s.corpusLoader.Load(path)
	if err != nil {
		return 0, 0, err
	}
	return corpus.Len(), len(corpus.Enforced()), nil
}

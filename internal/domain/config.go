package domain

import (
	"fmt"
	"time"
)

// Defaults applied when .embercheck.yaml is absent or leaves fields unset.
const (
	DefaultFailOn      = ImpactCritical
	DefaultFileTimeout = 5 * time.Second
)

// DefaultInclude selects the source files analyzed when no include globs are
// configured. Authored app code only; templates are covered by advisory rules.
var DefaultInclude = []string{"**/*.js", "**/*.ts"}

// ProjectConfig holds target-level configuration loaded from .embercheck.yaml.
type ProjectConfig struct {
	Include       []string `yaml:"include"        json:"include,omitempty"`
	Exclude       []string `yaml:"exclude"        json:"exclude,omitempty"`
	DisabledRules []string `yaml:"disabled_rules" json:"disabled_rules,omitempty"`
	Concurrency   int      `yaml:"concurrency"    json:"concurrency,omitempty"`
	FailOn        string   `yaml:"fail_on"        json:"fail_on,omitempty"`
	FileTimeoutMS int      `yaml:"file_timeout_ms" json:"file_timeout_ms,omitempty"`
}

// DefaultProjectConfig returns a zero-value config that changes nothing.
func DefaultProjectConfig() ProjectConfig {
	return ProjectConfig{}
}

// Validate checks the config for invalid values and returns a descriptive error.
func (c ProjectConfig) Validate() error {
	// 1. fail_on must be a known impact or empty
	if c.FailOn != "" {
		if _, err := ParseImpact(c.FailOn); err != nil {
			return fmt.Errorf("invalid fail_on: %w", err)
		}
	}

	// 2. concurrency must not be negative (0 means auto)
	if c.Concurrency < 0 {
		return fmt.Errorf("concurrency must be >= 0 (got %d)", c.Concurrency)
	}

	// 3. file timeout must not be negative (0 means default)
	if c.FileTimeoutMS < 0 {
		return fmt.Errorf("file_timeout_ms must be >= 0 (got %d)", c.FileTimeoutMS)
	}

	// 4. disabled rule ids must be non-empty
	for i, id := range c.DisabledRules {
		if id == "" {
			return fmt.Errorf("disabled_rules[%d] is empty", i)
		}
	}

	// 5. globs must be non-empty
	for i, g := range c.Include {
		if g == "" {
			return fmt.Errorf("include[%d] is empty", i)
		}
	}
	for i, g := range c.Exclude {
		if g == "" {
			return fmt.Errorf("exclude[%d] is empty", i)
		}
	}

	return nil
}

// EffectiveInclude returns the configured include globs or the defaults.
func (c ProjectConfig) EffectiveInclude() []string {
	if len(c.Include) > 0 {
		return c.Include
	}
	return DefaultInclude
}

// EffectiveFailOn returns the configured threshold or the default.
func (c ProjectConfig) EffectiveFailOn() Impact {
	if c.FailOn == "" {
		return DefaultFailOn
	}
	return Impact(c.FailOn)
}

// EffectiveFileTimeout returns the per-file analysis budget.
func (c ProjectConfig) EffectiveFileTimeout() time.Duration {
	if c.FileTimeoutMS == 0 {
		return DefaultFileTimeout
	}
	return time.Duration(c.FileTimeoutMS) * time.Millisecond
}

// IsDisabledRule reports whether the rule id is excluded from matching.
func (c ProjectConfig) IsDisabledRule(id string) bool {
	for _, d := range c.DisabledRules {
		if d == id {
			return true
		}
	}
	return false
}

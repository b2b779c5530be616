// Package sarif renders scan reports as SARIF 2.1.0 for CI annotation.
package sarif

import (
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"

	"github.com/embercheck/embercheck/internal/domain"
)

const (
	toolName     = "embercheck"
	toolInfoURI  = "https://github.com/embercheck/embercheck"
	sarifVersion = "2.1.0"
	sarifSchema  = "https://schemastore.azurewebsites.net/schemas/json/sarif-2.1.0-rtm.5.json"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type sarifLog struct {
	Schema  string `json:"$schema"`
	Version string `json:"version"`
	Runs    []run  `json:"runs"`
}

type run struct {
	Tool    tool     `json:"tool"`
	Results []result `json:"results"`
}

type tool struct {
	Driver driver `json:"driver"`
}

type driver struct {
	Name           string          `json:"name"`
	Version        string          `json:"version,omitempty"`
	InformationURI string          `json:"informationUri"`
	Rules          []reportingRule `json:"rules"`
}

type reportingRule struct {
	ID               string  `json:"id"`
	Name             string  `json:"name,omitempty"`
	ShortDescription message `json:"shortDescription"`
	FullDescription  message `json:"fullDescription,omitempty"`
}

type result struct {
	RuleID    string     `json:"ruleId"`
	Level     string     `json:"level"`
	Message   message    `json:"message"`
	Locations []location `json:"locations"`
}

type message struct {
	Text string `json:"text"`
}

type location struct {
	PhysicalLocation physicalLocation `json:"physicalLocation"`
}

type physicalLocation struct {
	ArtifactLocation artifactLocation `json:"artifactLocation"`
	Region           region           `json:"region"`
}

type artifactLocation struct {
	URI string `json:"uri"`
}

type region struct {
	StartLine int `json:"startLine"`
	EndLine   int `json:"endLine,omitempty"`
}

// Write renders the report's findings as one SARIF run. Only rules that
// produced findings are listed in the driver, keeping the log compact.
func Write(w io.Writer, report *domain.Report, corpus *domain.Corpus, version string) error {
	seen := make(map[string]bool)
	var rules []reportingRule
	var results []result

	for _, f := range report.Findings {
		if !seen[f.RuleID] {
			seen[f.RuleID] = true
			rr := reportingRule{
				ID:               f.RuleID,
				ShortDescription: message{Text: f.Message},
			}
			if rule, ok := corpus.Lookup(f.RuleID); ok {
				rr.FullDescription = message{Text: rule.Rationale}
			}
			rules = append(rules, rr)
		}

		results = append(results, result{
			RuleID:  f.RuleID,
			Level:   level(f.Impact),
			Message: message{Text: f.Message},
			Locations: []location{{
				PhysicalLocation: physicalLocation{
					ArtifactLocation: artifactLocation{URI: f.File},
					Region:           region{StartLine: f.StartLine, EndLine: f.EndLine},
				},
			}},
		})
	}
	if results == nil {
		results = []result{}
	}
	if rules == nil {
		rules = []reportingRule{}
	}

	log := sarifLog{
		Schema:  sarifSchema,
		Version: sarifVersion,
		Runs: []run{{
			Tool: tool{Driver: driver{
				Name:           toolName,
				Version:        version,
				InformationURI: toolInfoURI,
				Rules:          rules,
			}},
			Results: results,
		}},
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(log); err != nil {
		return fmt.Errorf("encoding sarif: %w", err)
	}
	return nil
}

func level(impact domain.Impact) string {
	switch impact {
	case domain.ImpactCritical:
		return "error"
	case domain.ImpactHigh:
		return "warning"
	default:
		return "note"
	}
}

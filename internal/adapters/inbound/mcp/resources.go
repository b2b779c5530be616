package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/embercheck/embercheck/internal/adapters/outbound/corpus"
	"github.com/embercheck/embercheck/internal/application"
)

// registerResources registers all embercheck MCP resources on the given server.
func registerResources(s *server.MCPServer, projectPath string) {
	// 1. embercheck://report - latest scan of the project
	s.AddResource(
		mcplib.NewResource(
			"embercheck://report",
			"Scan Report",
			mcplib.WithResourceDescription("Full rule-corpus scan report for the project"),
			mcplib.WithMIMEType("application/json"),
		),
		handleReportResource(projectPath),
	)

	// 2. embercheck://rules - the active rule corpus
	s.AddResource(
		mcplib.NewResource(
			"embercheck://rules",
			"Rule Corpus",
			mcplib.WithResourceDescription("All rules in the built-in corpus"),
			mcplib.WithMIMEType("application/json"),
		),
		handleRulesResource(),
	)

	// 3. embercheck://rules/{id} - one rule by id (resource template)
	s.AddResourceTemplate(
		mcplib.NewResourceTemplate(
			"embercheck://rules/{id}",
			"Rule",
			mcplib.WithTemplateDescription("One rule with snippets and rationale"),
			mcplib.WithTemplateMIMEType("application/json"),
		),
		handleRuleResource(),
	)
}

func handleReportResource(projectPath string) server.ResourceHandlerFunc {
	return func(ctx context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		report, err := newScanService().Scan(ctx, projectPath, application.ScanOptions{})
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}

		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling report: %w", err)
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      "embercheck://report",
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}

func handleRulesResource() server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		loaded, err := corpus.New().Load("")
		if err != nil {
			return nil, fmt.Errorf("loading corpus failed: %w", err)
		}

		data, err := json.MarshalIndent(loaded.Rules(), "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling rules: %w", err)
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      "embercheck://rules",
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}

func handleRuleResource() server.ResourceTemplateHandlerFunc {
	return func(_ context.Context, request mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		id, ok := request.Params.Arguments["id"].(string)
		if !ok || id == "" {
			return nil, fmt.Errorf("rule id is required")
		}

		rule, err := application.NewRulesService(corpus.New()).ExplainRule("", id)
		if err != nil {
			return nil, fmt.Errorf("explain failed: %w", err)
		}

		data, err := json.MarshalIndent(rule, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling rule: %w", err)
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      request.Params.URI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}

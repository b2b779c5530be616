package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/embercheck/embercheck/internal/adapters/outbound/config"
	"github.com/embercheck/embercheck/internal/adapters/outbound/corpus"
	"github.com/embercheck/embercheck/internal/adapters/outbound/gitinfo"
	"github.com/embercheck/embercheck/internal/adapters/outbound/history"
	"github.com/embercheck/embercheck/internal/adapters/outbound/parser"
	"github.com/embercheck/embercheck/internal/adapters/outbound/scanner"
	"github.com/embercheck/embercheck/internal/application"
	"github.com/embercheck/embercheck/internal/domain"
	"github.com/embercheck/embercheck/internal/domain/match"
	"github.com/embercheck/embercheck/internal/observability"
)

// registerTools registers all embercheck MCP tools on the given server.
func registerTools(s *server.MCPServer, projectPath string) {
	// 1. embercheck_scan
	s.AddTool(
		mcplib.NewTool("embercheck_scan",
			mcplib.WithDescription("Scan the project against the Ember best-practice rule corpus and return the full report as JSON"),
			mcplib.WithString("rules", mcplib.Description("Path to a rule corpus file (default: built-in corpus)")),
		),
		handleScan(projectPath),
	)

	// 2. embercheck_list_rules
	s.AddTool(
		mcplib.NewTool("embercheck_list_rules",
			mcplib.WithDescription("List all rules in the corpus with id, category, impact, and enforcement mode"),
			mcplib.WithString("rules", mcplib.Description("Path to a rule corpus file (default: built-in corpus)")),
		),
		handleListRules(),
	)

	// 3. embercheck_explain_rule
	s.AddTool(
		mcplib.NewTool("embercheck_explain_rule",
			mcplib.WithDescription("Return one rule with its incorrect/correct snippets and rationale"),
			mcplib.WithString("id",
				mcplib.Required(),
				mcplib.Description("Rule id, e.g. components/no-send-action"),
			),
		),
		handleExplainRule(),
	)

	// 4. embercheck_check_file
	s.AddTool(
		mcplib.NewTool("embercheck_check_file",
			mcplib.WithDescription("Check a single file in the project and return its findings"),
			mcplib.WithString("file",
				mcplib.Required(),
				mcplib.Description("Relative path to the file to check"),
			),
		),
		handleCheckFile(projectPath),
	)
}

// newScanService creates the standard set of outbound adapters and the scan
// service wired over them.
func newScanService() *application.ScanService {
	return application.NewScanService(
		corpus.New(),
		scanner.New(),
		parser.New(),
		config.New(),
		gitinfo.New(),
		history.New(),
		observability.GetLogger(),
	)
}

func handleScan(projectPath string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		rulesPath, _ := request.GetArguments()["rules"].(string)

		report, err := newScanService().Scan(ctx, projectPath, application.ScanOptions{RulesPath: rulesPath})
		if err != nil {
			return errorResult(fmt.Sprintf("scan failed: %v", err)), nil
		}
		return jsonResult(report)
	}
}

func handleListRules() server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		rulesPath, _ := request.GetArguments()["rules"].(string)

		loaded, err := application.NewRulesService(corpus.New()).ListRules(rulesPath)
		if err != nil {
			return errorResult(fmt.Sprintf("loading corpus failed: %v", err)), nil
		}
		return jsonResult(loaded.Rules())
	}
}

func handleExplainRule() server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		rule, err := application.NewRulesService(corpus.New()).ExplainRule("", id)
		if err != nil {
			return errorResult(fmt.Sprintf("explain failed: %v", err)), nil
		}
		return jsonResult(rule)
	}
}

func handleCheckFile(projectPath string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		file, err := request.RequireString("file")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		loaded, err := corpus.New().Load("")
		if err != nil {
			return errorResult(fmt.Sprintf("loading corpus failed: %v", err)), nil
		}

		src, err := os.ReadFile(filepath.Join(projectPath, filepath.FromSlash(file)))
		if err != nil {
			return errorResult(fmt.Sprintf("reading file failed: %v", err)), nil
		}

		parsed, err := parser.New().Parse(ctx, file, src)
		if err != nil {
			return errorResult(fmt.Sprintf("parsing failed: %v", err)), nil
		}

		type fileFindings struct {
			File     string           `json:"file"`
			Findings []domain.Finding `json:"findings"`
		}

		result := fileFindings{File: file, Findings: []domain.Finding{}}
		for _, rule := range loaded.Enforced() {
			for _, span := range match.Match(rule, parsed) {
				result.Findings = append(result.Findings, domain.Finding{
					RuleID:     rule.ID,
					Category:   rule.Category,
					Impact:     rule.Impact,
					File:       file,
					StartLine:  span.StartLine,
					EndLine:    span.EndLine,
					Message:    rule.Title,
					Suggestion: rule.Correct,
				})
			}
		}

		return jsonResult(result)
	}
}

// jsonResult marshals v to JSON and returns it as a text content result.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}

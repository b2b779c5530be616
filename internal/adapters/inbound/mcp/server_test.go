package mcp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mcpadapter "github.com/embercheck/embercheck/internal/adapters/inbound/mcp"
)

func TestNewEmberCheckMCPServer(t *testing.T) {
	s := mcpadapter.NewEmberCheckMCPServer(".")
	require.NotNil(t, s)
}

func TestMCPServerHasTools(t *testing.T) {
	s := mcpadapter.NewEmberCheckMCPServer(".")
	require.NotNil(t, s)

	tools := s.ListTools()
	require.NotNil(t, tools)

	expectedTools := []string{
		"embercheck_scan",
		"embercheck_list_rules",
		"embercheck_explain_rule",
		"embercheck_check_file",
	}

	for _, name := range expectedTools {
		_, exists := tools[name]
		assert.True(t, exists, "tool %q should be registered", name)
	}

	assert.Len(t, tools, len(expectedTools), "should have exactly %d tools", len(expectedTools))
}
